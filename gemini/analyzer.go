// Package gemini analyzes conversations directly with Google Gemini, without
// a separate analysis backend.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/chatlens"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for analysis.
const DefaultModel = "gemini-2.5-flash"

// DefaultMaxTokens is the transcript budget enforced when a TokenCounter is set.
const DefaultMaxTokens = 900_000

// Ensure Analyzer implements chatlens.Analyzer at compile time.
var _ chatlens.Analyzer = (*Analyzer)(nil)

// Analyzer implements chatlens.Analyzer using Google Gemini. It produces the
// same report structure as the analysis backend in a single model call.
type Analyzer struct {
	client    *genai.Client
	model     string
	counter   chatlens.TokenCounter
	maxTokens int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithModel overrides DefaultModel.
func WithModel(model string) Option {
	return func(a *Analyzer) {
		a.model = model
	}
}

// WithTokenLimit rejects transcripts counted above max before they are sent.
func WithTokenLimit(counter chatlens.TokenCounter, max int) Option {
	return func(a *Analyzer) {
		a.counter = counter
		a.maxTokens = max
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(client *genai.Client, opts ...Option) *Analyzer {
	a := &Analyzer{client: client, model: DefaultModel, maxTokens: DefaultMaxTokens}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze returns a deviation report for the conversation.
func (a *Analyzer) Analyze(ctx context.Context, req *chatlens.AnalysisRequest, status chatlens.StatusFunc) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	if status == nil {
		status = func(string) {}
	}

	transcript := BuildTranscript(req.Messages)
	if a.counter != nil {
		n, err := a.counter.CountTokens(ctx, transcript)
		if err != nil {
			return "", fmt.Errorf("counting tokens: %w", err)
		}
		if n > a.maxTokens {
			return "", chatlens.Errorf(chatlens.EINVALID, "conversation is %d tokens, limit is %d. Try a shorter conversation.", n, a.maxTokens)
		}
	}

	status(chatlens.AnalysisStages[len(chatlens.AnalysisStages)-1])
	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{genai.NewContentFromText(BuildUserPrompt(transcript), "user")},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", chatlens.Errorf(chatlens.EINTERNAL, "gemini returned nil result")
	}

	out := strings.TrimSpace(result.Text())
	if out == "" {
		return "", chatlens.Errorf(chatlens.EINTERNAL, "gemini returned empty report")
	}
	return out, nil
}

const systemInstruction = `You are an expert in conversation analysis and prompt engineering.
The user of a chat assistant is unhappy with the model's answers and wants to know how the model deviated from what they asked.

Write a report with exactly these sections:

## 1. Summary
Describe the flow of the conversation in at most 300 words: "User wanted X. Model provided Y. User corrected with Z..."

## 2. Deviation Analysis
Compare the user's intent with the model's output. Name the specific places where the model missed expectations on tone, format or depth.

## 3. User Intent & Expectation
State what the user actually wanted, and list explicit "Don't Deviate Into" constraints.

## 4. Reconstructed Prompt (For a New Session)
Give one prompt the user can paste into a new chat to get the result they wanted. Include a role, the task, the context, negative constraints and the output format.

Be critical. Do not restate the conversation; analyze where the interaction failed or succeeded.`

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		Temperature: &temp,
	}
}

// BuildTranscript renders messages as role-labelled blocks in order.
func BuildTranscript(messages []chatlens.Message) string {
	var sb strings.Builder
	for i, m := range messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "%s:\n%s", strings.ToUpper(string(m.Role)), m.Content)
	}
	return sb.String()
}

// BuildUserPrompt wraps the transcript for the model.
func BuildUserPrompt(transcript string) string {
	return "<conversation>\n" + transcript + "\n</conversation>"
}
