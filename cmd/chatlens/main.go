package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/chatlens"
	"github.com/fwojciec/chatlens/collect"
	"github.com/fwojciec/chatlens/extract"
	"github.com/fwojciec/chatlens/fs"
	"github.com/fwojciec/chatlens/gemini"
	"github.com/fwojciec/chatlens/goquery"
	chatlenshttp "github.com/fwojciec/chatlens/http"
	"github.com/fwojciec/chatlens/rod"
	chatslog "github.com/fwojciec/chatlens/slog"
	"github.com/fwojciec/chatlens/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		NewStore: func(dir string) chatlens.TranscriptStore {
			return fs.NewFileStore(filepath.Dir(dir), filepath.Base(dir))
		},
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("chatlens"),
		kong.Description("Extract chat transcripts from AI assistant pages and analyze where the model deviated"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'chatlens --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = slog.New(slog.DiscardHandler)
	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	var detector chatlens.SiteDetector = extract.NewDefaultDetector()
	if cli.Verbose {
		detector = chatslog.NewLoggingDetector(detector, deps.Logger)
	}
	deps.Detector = detector

	if cmd == "analyze" || cmd == "config" || cmd == "reports" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set CHATLENS_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		deps.Settings = sqlite.NewSettingsService(m.DB)
		deps.Reports = sqlite.NewReportService(m.DB)
	}

	switch cmd {
	case "scrape":
		collector, closeFn, err := m.newCollector(cli.Scrape.FetchFlags, cli.Scrape.Targets, deps, cli.Verbose, stderr)
		if err != nil {
			return err
		}
		defer closeFn()
		collector.Concurrency = cli.Scrape.Concurrency
		deps.Collector = collector

	case "analyze":
		collector, closeFn, err := m.newCollector(cli.Analyze.FetchFlags, []string{cli.Analyze.Target}, deps, cli.Verbose, stderr)
		if err != nil {
			return err
		}
		defer closeFn()
		deps.Collector = collector

		analyzer, err := newAnalyzer(ctx, &cli.Analyze, stderr)
		if err != nil {
			return err
		}
		if cli.Verbose {
			analyzer = chatslog.NewLoggingAnalyzer(analyzer, deps.Logger)
		}
		deps.Analyzer = analyzer
	}

	return kongCtx.Run(deps)
}

// newCollector wires the fetch pipeline. A browser is only started when a
// URL target needs one.
func (m *Main) newCollector(flags FetchFlags, sources []string, deps *Dependencies, verbose bool, stderr io.Writer) (*collect.Collector, func(), error) {
	var fetcher chatlens.Fetcher
	if flags.Static || !anyURL(sources) {
		fetcher = chatlenshttp.NewFetcher(chatlenshttp.WithTimeout(flags.Timeout))
	} else {
		opts := []rod.Option{
			rod.WithFetchTimeout(flags.Timeout),
			rod.WithRenderDelay(flags.RenderDelay),
		}
		if flags.Profile != "" {
			opts = append(opts, rod.WithUserDataDir(flags.Profile))
		}
		if flags.Browser != "" {
			opts = append(opts, rod.WithControlURL(flags.Browser))
		}
		f, err := rod.NewFetcher(opts...)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or use --static")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	}
	if verbose {
		fetcher = rod.NewLoggingFetcher(fetcher, deps.Logger)
	}

	var scraper chatlens.Scraper = extract.NewScraper(deps.Detector)
	if verbose {
		scraper = chatslog.NewLoggingScraper(scraper, deps.Logger)
	}

	var limits []collect.LimiterOption
	for host, rps := range flags.HostRate {
		limits = append(limits, collect.WithHostRate(host, rps))
	}

	collector := &collect.Collector{
		Fetcher:     fetcher,
		Parser:      goquery.NewParser(),
		Scraper:     scraper,
		RateLimiter: collect.NewDomainLimiter(flags.Rate, limits...),
	}
	return collector, func() { _ = fetcher.Close() }, nil
}

func anyURL(sources []string) bool {
	for _, s := range sources {
		if (collect.Target{Source: s}).IsURL() {
			return true
		}
	}
	return false
}

// tokenizerModel is used for token counting. The local tokenizer does not
// cover every model Gemini serves.
const tokenizerModel = "gemini-2.5-flash"

func newAnalyzer(ctx context.Context, c *AnalyzeCmd, stderr io.Writer) (chatlens.Analyzer, error) {
	switch c.Mode {
	case "job":
		if c.ProjectID == "" || c.FunctionID == "" {
			fmt.Fprintln(stderr, "Hint: Set CHATLENS_PROJECT_ID and CHATLENS_FUNCTION_ID, or pass --project-id and --function-id")
			return nil, chatlens.Errorf(chatlens.EINVALID, "job mode requires a project and function ID")
		}
		return chatlenshttp.NewJobAnalyzer(c.BackendURL, c.ProjectID, c.FunctionID), nil

	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		counter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create token counter: %w", err)
		}
		return gemini.NewAnalyzer(client, gemini.WithTokenLimit(counter, gemini.DefaultMaxTokens)), nil

	default:
		return chatlenshttp.NewStreamAnalyzer(c.BackendURL, nil), nil
	}
}

func defaultDBPath() string {
	if path := os.Getenv("CHATLENS_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "chatlens.db"
	}
	dir := filepath.Join(home, ".chatlens")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "chatlens.db")
}
