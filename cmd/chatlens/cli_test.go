package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/chatlens/cmd/chatlens"
	"github.com/fwojciec/chatlens/collect"
	"github.com/fwojciec/chatlens/extract"
	"github.com/fwojciec/chatlens/goquery"
	"github.com/fwojciec/chatlens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range []string{"scrape", "analyze", "config", "reports", "sites"} {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ParsesRateFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"scrape", "https://claude.ai/chat/1", "--rate", "2", "--host-rate", "claude.ai=0.5"})
	require.NoError(t, err)

	assert.Equal(t, 2.0, cli.Scrape.Rate)
	assert.Equal(t, map[string]float64{"claude.ai": 0.5}, cli.Scrape.HostRate)
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "scrape")
	assert.Contains(t, helpOutput, "analyze")
}

func TestMain_Run_NoArgsReturnsError(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_Sites(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"sites"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, "chatgpt.com\ngemini.google.com\nperplexity.ai\nclaude.ai\ndeepseek.com\n", stdout.String())
}

func TestMain_Run_ConfigUsesDatabase(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"config", "set", "--llm-model", "mistral"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	stdout.Reset()
	err = m.Run(context.Background(), []string{"config", "show"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "llm_model        mistral")
	assert.Contains(t, stdout.String(), "embedding_model  nomic-embed-text:latest")
}

// newCollector returns a collector that fetches through f and extracts
// with the real site strategies.
func newCollector(f *mock.Fetcher) *collect.Collector {
	return &collect.Collector{
		Fetcher:     f,
		Parser:      goquery.NewParser(),
		Scraper:     extract.NewScraper(extract.NewDefaultDetector()),
		RetryDelays: []time.Duration{},
	}
}

const chatgptPage = `<html><body>
<div data-message-author-role="user">Write a haiku</div>
<div data-message-author-role="assistant">Autumn moonlight</div>
</body></html>`
