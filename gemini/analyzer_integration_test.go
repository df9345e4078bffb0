//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/chatlens"
	"github.com/fwojciec/chatlens/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestAnalyzer_Integration_ReturnsReport(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)

	var statuses []string
	report, err := gemini.NewAnalyzer(client).Analyze(ctx, &chatlens.AnalysisRequest{Messages: conversation()}, func(s string) {
		statuses = append(statuses, s)
	})

	require.NoError(t, err)
	assert.Contains(t, report, "Deviation")
	assert.NotEmpty(t, statuses)
}
