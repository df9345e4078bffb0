package rod_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/chatlens/mock"
	"github.com/fwojciec/chatlens/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs url and size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		next := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html>chat</html>", nil
			},
		}
		f := rod.NewLoggingFetcher(next, slog.New(slog.NewTextHandler(&buf, nil)))

		html, err := f.Fetch(context.Background(), "https://chatgpt.com/c/1")

		require.NoError(t, err)
		assert.Equal(t, "<html>chat</html>", html)
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "url=https://chatgpt.com/c/1")
		assert.Contains(t, buf.String(), "bytes=17")
	})

	t.Run("logs failures at warn level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		next := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", errors.New("net::ERR_NAME_NOT_RESOLVED")
			},
		}
		f := rod.NewLoggingFetcher(next, slog.New(slog.NewTextHandler(&buf, nil)))

		_, err := f.Fetch(context.Background(), "https://claude.ai")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "ERR_NAME_NOT_RESOLVED")
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	closed := false
	next := &mock.Fetcher{CloseFn: func() error { closed = true; return nil }}

	require.NoError(t, rod.NewLoggingFetcher(next, slog.Default()).Close())
	assert.True(t, closed)
}
