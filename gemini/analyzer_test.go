package gemini_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/chatlens"
	"github.com/fwojciec/chatlens/gemini"
	"github.com/fwojciec/chatlens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conversation() []chatlens.Message {
	return []chatlens.Message{
		{Role: chatlens.RoleUser, Content: "Summarize this in French"},
		{Role: chatlens.RoleModel, Content: "Here is a summary in English."},
	}
}

func TestAnalyzer_Analyze_RejectsEmptyConversation(t *testing.T) {
	t.Parallel()

	a := gemini.NewAnalyzer(nil) // nil client ok, request never sent

	_, err := a.Analyze(context.Background(), &chatlens.AnalysisRequest{}, nil)

	assert.Equal(t, chatlens.EINVALID, chatlens.ErrorCode(err))
}

func TestAnalyzer_Analyze_RejectsOversizeTranscript(t *testing.T) {
	t.Parallel()

	var counted string
	counter := &mock.TokenCounter{
		CountTokensFn: func(_ context.Context, text string) (int, error) {
			counted = text
			return 101, nil
		},
	}
	a := gemini.NewAnalyzer(nil, gemini.WithTokenLimit(counter, 100))

	_, err := a.Analyze(context.Background(), &chatlens.AnalysisRequest{Messages: conversation()}, nil)

	require.Error(t, err)
	assert.Equal(t, chatlens.EINVALID, chatlens.ErrorCode(err))
	assert.Contains(t, chatlens.ErrorMessage(err), "limit is 100")
	assert.Equal(t, gemini.BuildTranscript(conversation()), counted)
}

func TestAnalyzer_Analyze_PropagatesCounterError(t *testing.T) {
	t.Parallel()

	counter := &mock.TokenCounter{
		CountTokensFn: func(context.Context, string) (int, error) {
			return 0, errors.New("tokenizer unavailable")
		},
	}
	a := gemini.NewAnalyzer(nil, gemini.WithTokenLimit(counter, 100))

	_, err := a.Analyze(context.Background(), &chatlens.AnalysisRequest{Messages: conversation()}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tokenizer unavailable")
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "Deviation Analysis")
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "Reconstructed Prompt")
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.1, *config.Temperature, 0.001)
}

func TestBuildTranscript(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"USER:\nSummarize this in French\n\nMODEL:\nHere is a summary in English.",
		gemini.BuildTranscript(conversation()),
	)
	assert.Empty(t, gemini.BuildTranscript(nil))
}

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildUserPrompt("USER:\nhi")

	assert.Equal(t, "<conversation>\nUSER:\nhi\n</conversation>", prompt)
	assert.NotContains(t, prompt, "expert in conversation analysis")
}
