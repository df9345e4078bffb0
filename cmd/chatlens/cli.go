package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/chatlens"
	"github.com/fwojciec/chatlens/collect"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Detector  chatlens.SiteDetector
	Collector *collect.Collector
	Analyzer  chatlens.Analyzer
	Settings  chatlens.SettingsService
	Reports   chatlens.ReportService

	// NewStore opens a transcript store writing to dir.
	NewStore func(dir string) chatlens.TranscriptStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log fetches, site detection and analysis to stderr"`

	Scrape  ScrapeCmd  `cmd:"" help:"Extract conversations from chat pages as JSON"`
	Analyze AnalyzeCmd `cmd:"" help:"Extract a conversation and send it for deviation analysis"`
	Config  ConfigCmd  `cmd:"" help:"Show or change analysis settings"`
	Reports ReportsCmd `cmd:"" help:"List saved analysis reports, or show one"`
	Sites   SitesCmd   `cmd:"" help:"List supported chat sites"`
}

// FetchFlags controls how targets are loaded.
type FetchFlags struct {
	Host        string        `help:"Host to scrape as. Required for saved HTML files"`
	Static      bool          `help:"Fetch with plain HTTP instead of a browser"`
	Timeout     time.Duration `default:"60s" help:"Per-page timeout"`
	RenderDelay time.Duration `default:"2s" help:"Wait after page load for streamed messages"`
	Profile     string        `type:"path" help:"Chrome profile directory with logged-in sessions"`
	Browser     string        `help:"DevTools URL of a running browser to attach to"`

	Rate     float64            `default:"1" help:"Requests per second to each chat host (0 disables)"`
	HostRate map[string]float64 `help:"Per-host request rates, e.g. claude.ai=0.5"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Targets     []string `arg:"" help:"Chat URLs or saved HTML files"`
	Out         string   `type:"path" help:"Also save each result as JSON under this directory"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`

	FetchFlags `embed:""`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	Target     string `arg:"" help:"Chat URL or saved HTML file"`
	Mode       string `enum:"stream,job,gemini" default:"stream" help:"Analysis backend: stream, job or gemini"`
	BackendURL string `name:"backend-url" env:"CHATLENS_BACKEND_URL" default:"http://127.0.0.1:8000" help:"Analysis server or job endpoint URL"`
	ProjectID  string `name:"project-id" env:"CHATLENS_PROJECT_ID" help:"Job backend project ID"`
	FunctionID string `name:"function-id" env:"CHATLENS_FUNCTION_ID" help:"Job backend function ID"`
	NoSave     bool   `help:"Do not save the report to history"`

	FetchFlags `embed:""`
}

// ConfigCmd is the "config" subcommand.
type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" default:"1" help:"Show analysis settings"`
	Set  ConfigSetCmd  `cmd:"" help:"Change analysis settings"`
}

// ConfigShowCmd is the "config show" subcommand.
type ConfigShowCmd struct{}

// ConfigSetCmd is the "config set" subcommand.
type ConfigSetCmd struct {
	EmbeddingModel string `help:"Embedding model used by the backend"`
	LLMModel       string `name:"llm-model" help:"Chat model used by the backend"`
	Reset          bool   `help:"Restore defaults"`
}

// ReportsCmd is the "reports" subcommand.
type ReportsCmd struct {
	ID    string `arg:"" optional:"" help:"Report ID to show in full"`
	Site  string `help:"Only reports for this site identifier"`
	Limit int    `short:"n" default:"20" help:"Maximum reports to list"`
}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct{}
