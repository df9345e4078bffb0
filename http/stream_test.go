package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/chatlens"
	chatlenshttp "github.com/fwojciec/chatlens/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analysisRequest() *chatlens.AnalysisRequest {
	return &chatlens.AnalysisRequest{
		Messages: []chatlens.Message{
			{Role: chatlens.RoleUser, Content: "fix my loop"},
			{Role: chatlens.RoleModel, Content: "use range"},
		},
		Settings: chatlens.Settings{LLMModel: "qwen2.5"},
	}
}

func TestStreamAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("reports statuses and returns final output", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/analyze", r.URL.Path)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/x-ndjson")
			_, _ = w.Write([]byte(`{"status":"Preprocessing & Embedding..."}` + "\n\n" +
				`{"status":"Analyzing Deviations..."}` + "\n" +
				`{"final_output":"User wanted X."}` + "\n"))
		}))
		defer server.Close()

		var statuses []string
		a := chatlenshttp.NewStreamAnalyzer(server.URL+"/", nil)

		out, err := a.Analyze(context.Background(), analysisRequest(), func(s string) { statuses = append(statuses, s) })

		require.NoError(t, err)
		assert.Equal(t, "User wanted X.", out)
		assert.Equal(t, []string{"Preprocessing & Embedding...", "Analyzing Deviations..."}, statuses)
		assert.Equal(t, "qwen2.5", got["model_name"])
		assert.Equal(t, "local", got["embedding_provider"])
		assert.Nil(t, got["api_key"])
		assert.Equal(t, []any{
			map[string]any{"role": "user", "content": "fix my loop"},
			map[string]any{"role": "model", "content": "use range"},
		}, got["conversation"])
	})

	t.Run("returns backend error line", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"Preprocessing & Embedding..."}` + "\n" + `{"error":"ollama unreachable"}` + "\n"))
		}))
		defer server.Close()

		_, err := chatlenshttp.NewStreamAnalyzer(server.URL, nil).Analyze(context.Background(), analysisRequest(), nil)

		assert.Equal(t, chatlens.EINTERNAL, chatlens.ErrorCode(err))
		assert.Equal(t, "ollama unreachable", chatlens.ErrorMessage(err))
	})

	t.Run("handles long final output", func(t *testing.T) {
		t.Parallel()

		report := strings.Repeat("a", 200*1024)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"final_output": report})
		}))
		defer server.Close()

		out, err := chatlenshttp.NewStreamAnalyzer(server.URL, nil).Analyze(context.Background(), analysisRequest(), nil)

		require.NoError(t, err)
		assert.Equal(t, report, out)
	})

	t.Run("fails when stream ends without output", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"Analyzing Deviations..."}` + "\n"))
		}))
		defer server.Close()

		_, err := chatlenshttp.NewStreamAnalyzer(server.URL, nil).Analyze(context.Background(), analysisRequest(), nil)

		assert.Contains(t, chatlens.ErrorMessage(err), "without output")
	})

	t.Run("fails on malformed line", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json\n"))
		}))
		defer server.Close()

		_, err := chatlenshttp.NewStreamAnalyzer(server.URL, nil).Analyze(context.Background(), analysisRequest(), nil)

		assert.Equal(t, chatlens.EINTERNAL, chatlens.ErrorCode(err))
	})

	t.Run("fails on non-200 status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer server.Close()

		_, err := chatlenshttp.NewStreamAnalyzer(server.URL, nil).Analyze(context.Background(), analysisRequest(), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "422")
	})

	t.Run("rejects empty conversation before sending", func(t *testing.T) {
		t.Parallel()

		a := chatlenshttp.NewStreamAnalyzer("http://127.0.0.1:1", nil)

		_, err := a.Analyze(context.Background(), &chatlens.AnalysisRequest{}, nil)

		assert.Equal(t, chatlens.EINVALID, chatlens.ErrorCode(err))
	})
}
