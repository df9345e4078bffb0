package mock

import (
	"context"

	"github.com/fwojciec/chatlens"
)

var _ chatlens.TranscriptStore = (*TranscriptStore)(nil)

// TranscriptStore is a mock implementation of chatlens.TranscriptStore.
type TranscriptStore struct {
	SaveFn   func(ctx context.Context, source string, result *chatlens.Result) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *TranscriptStore) Save(ctx context.Context, source string, result *chatlens.Result) error {
	return s.SaveFn(ctx, source, result)
}

func (s *TranscriptStore) Commit() error {
	return s.CommitFn()
}

func (s *TranscriptStore) Abort() error {
	return s.AbortFn()
}
