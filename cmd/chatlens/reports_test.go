package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/chatlens"
	main "github.com/fwojciec/chatlens/cmd/chatlens"
	"github.com/fwojciec/chatlens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportsCmd_Run(t *testing.T) {
	t.Parallel()

	report := &chatlens.Report{
		ID:           "rep-1",
		Source:       "https://claude.ai/chat/1",
		Site:         chatlens.SiteClaude,
		MessageCount: 4,
		Output:       "## Summary\nfine",
		CreatedAt:    time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}

	t.Run("lists reports with filter", func(t *testing.T) {
		t.Parallel()

		var got chatlens.ReportFilter
		reports := &mock.ReportService{
			FindReportsFn: func(_ context.Context, f chatlens.ReportFilter) ([]*chatlens.Report, error) {
				got = f
				return []*chatlens.Report{report}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Reports: reports}

		err := (&main.ReportsCmd{Site: "claude.ai", Limit: 5}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.Site)
		assert.Equal(t, chatlens.SiteClaude, *got.Site)
		assert.Equal(t, 5, got.Limit)
		assert.Contains(t, stdout.String(), "rep-1")
		assert.Contains(t, stdout.String(), "2026-03-01 09:30:00")
		assert.Contains(t, stdout.String(), "4 msgs")
		assert.Contains(t, stdout.String(), "https://claude.ai/chat/1")
	})

	t.Run("shows hint when empty", func(t *testing.T) {
		t.Parallel()

		reports := &mock.ReportService{
			FindReportsFn: func(_ context.Context, _ chatlens.ReportFilter) ([]*chatlens.Report, error) {
				return nil, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Reports: reports}

		require.NoError(t, (&main.ReportsCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "No reports found")
	})

	t.Run("shows one report in full", func(t *testing.T) {
		t.Parallel()

		reports := &mock.ReportService{
			FindReportByIDFn: func(_ context.Context, id string) (*chatlens.Report, error) {
				assert.Equal(t, "rep-1", id)
				return report, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Reports: reports}

		require.NoError(t, (&main.ReportsCmd{ID: "rep-1"}).Run(deps))
		assert.Contains(t, stdout.String(), "## Summary\nfine")
	})

	t.Run("returns not found", func(t *testing.T) {
		t.Parallel()

		reports := &mock.ReportService{
			FindReportByIDFn: func(_ context.Context, _ string) (*chatlens.Report, error) {
				return nil, chatlens.Errorf(chatlens.ENOTFOUND, "report not found")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Reports: reports}

		err := (&main.ReportsCmd{ID: "nope"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, chatlens.ENOTFOUND, chatlens.ErrorCode(err))
		assert.Contains(t, stderr.String(), "report not found")
	})
}
