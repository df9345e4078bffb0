package mock

import (
	"context"

	"github.com/fwojciec/chatlens"
)

// Compile-time interface verification.
var (
	_ chatlens.Analyzer     = (*Analyzer)(nil)
	_ chatlens.TokenCounter = (*TokenCounter)(nil)
)

// Analyzer is a mock implementation of chatlens.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, req *chatlens.AnalysisRequest, status chatlens.StatusFunc) (string, error)
}

func (a *Analyzer) Analyze(ctx context.Context, req *chatlens.AnalysisRequest, status chatlens.StatusFunc) (string, error) {
	return a.AnalyzeFn(ctx, req, status)
}

// TokenCounter is a mock implementation of chatlens.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
