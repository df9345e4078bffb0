package chatlens

import "context"

// TranscriptStore saves scrape results for a batch of targets.
// Saves are staged and become visible together on Commit.
type TranscriptStore interface {
	// Save stages the result scraped from source.
	Save(ctx context.Context, source string, result *Result) error

	// Commit publishes all staged results, replacing any previous batch.
	Commit() error

	// Abort discards staged results.
	Abort() error
}
