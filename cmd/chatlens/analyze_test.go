package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/chatlens"
	main "github.com/fwojciec/chatlens/cmd/chatlens"
	"github.com/fwojciec/chatlens/extract"
	"github.com/fwojciec/chatlens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCmd_Run(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (string, error) {
			return chatgptPage, nil
		},
	}
	settings := &mock.SettingsService{
		FindSettingsFn: func(_ context.Context) (*chatlens.Settings, error) {
			s := chatlens.DefaultSettings()
			return &s, nil
		},
	}

	t.Run("prints report and saves it", func(t *testing.T) {
		t.Parallel()

		var gotReq *chatlens.AnalysisRequest
		analyzer := &mock.Analyzer{
			AnalyzeFn: func(_ context.Context, req *chatlens.AnalysisRequest, status chatlens.StatusFunc) (string, error) {
				gotReq = req
				status("Analyzing Deviations...")
				return "## Deviations\nnone", nil
			},
		}
		var saved *chatlens.Report
		reports := &mock.ReportService{
			CreateReportFn: func(_ context.Context, r *chatlens.Report) error {
				r.ID = "rep-1"
				saved = r
				return nil
			},
		}
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Detector:  extract.NewDefaultDetector(),
			Collector: newCollector(fetcher),
			Analyzer:  analyzer,
			Settings:  settings,
			Reports:   reports,
		}

		cmd := &main.AnalyzeCmd{Target: "https://chatgpt.com/c/1"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "## Deviations\nnone\n", stdout.String())
		assert.Contains(t, stderr.String(), "Analyzing Deviations...")
		assert.Contains(t, stderr.String(), "Saved report rep-1")

		require.NotNil(t, gotReq)
		assert.Len(t, gotReq.Messages, 2)
		assert.Equal(t, chatlens.DefaultSettings(), gotReq.Settings)

		require.NotNil(t, saved)
		assert.Equal(t, "https://chatgpt.com/c/1", saved.Source)
		assert.Equal(t, chatlens.SiteChatGPT, saved.Site)
		assert.Equal(t, 2, saved.MessageCount)
		assert.Equal(t, chatlens.HashConversation(gotReq.Messages), saved.ConversationHash)
	})

	t.Run("skips saving with no-save", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.Analyzer{
			AnalyzeFn: func(_ context.Context, _ *chatlens.AnalysisRequest, _ chatlens.StatusFunc) (string, error) {
				return "report", nil
			},
		}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Detector:  extract.NewDefaultDetector(),
			Collector: newCollector(fetcher),
			Analyzer:  analyzer,
			Settings:  settings,
		}

		cmd := &main.AnalyzeCmd{Target: "https://chatgpt.com/c/1", NoSave: true}
		require.NoError(t, cmd.Run(deps))
	})

	t.Run("fails on empty conversation without calling analyzer", func(t *testing.T) {
		t.Parallel()

		empty := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html><body></body></html>", nil
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Detector:  extract.NewDefaultDetector(),
			Collector: newCollector(empty),
			Analyzer:  &mock.Analyzer{},
			Settings:  settings,
		}

		cmd := &main.AnalyzeCmd{Target: "https://chatgpt.com/c/1"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, chatlens.ENOTFOUND, chatlens.ErrorCode(err))
		assert.Contains(t, stderr.String(), "No conversation found. Please ensure the chat is loaded.")
	})

	t.Run("fails on unsupported host", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Detector:  extract.NewDefaultDetector(),
			Collector: newCollector(fetcher),
			Analyzer:  &mock.Analyzer{},
			Settings:  settings,
		}

		cmd := &main.AnalyzeCmd{Target: "https://example.com/chat"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, chatlens.EUNSUPPORTED, chatlens.ErrorCode(err))
		assert.Contains(t, stderr.String(), "Hostname not supported: example.com")
	})

	t.Run("reports analyzer errors", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.Analyzer{
			AnalyzeFn: func(_ context.Context, _ *chatlens.AnalysisRequest, _ chatlens.StatusFunc) (string, error) {
				return "", chatlens.Errorf(chatlens.ETIMEOUT, "Analysis timed out. Try a shorter conversation.")
			},
		}
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Detector:  extract.NewDefaultDetector(),
			Collector: newCollector(fetcher),
			Analyzer:  analyzer,
			Settings:  settings,
		}

		cmd := &main.AnalyzeCmd{Target: "https://chatgpt.com/c/1"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "Analysis timed out. Try a shorter conversation.")
	})
}
