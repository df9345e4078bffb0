// Package slog provides logging decorators for chatlens services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/chatlens"
)

// Ensure decorators implement chatlens interfaces.
var (
	_ chatlens.SiteDetector = (*LoggingDetector)(nil)
	_ chatlens.Scraper      = (*LoggingScraper)(nil)
	_ chatlens.Analyzer     = (*LoggingAnalyzer)(nil)
)

// LoggingDetector wraps a SiteDetector with logging for host resolution.
type LoggingDetector struct {
	next   chatlens.SiteDetector
	logger *slog.Logger
}

// NewLoggingDetector creates a new LoggingDetector.
func NewLoggingDetector(next chatlens.SiteDetector, logger *slog.Logger) *LoggingDetector {
	return &LoggingDetector{next: next, logger: logger}
}

// Detect resolves the strategy for host and logs the matched site.
func (d *LoggingDetector) Detect(host string) chatlens.Strategy {
	begin := time.Now()
	strategy := d.next.Detect(host)
	name := "(unsupported)"
	if strategy != nil {
		name = strategy.Name()
	}
	d.logger.Info("site detection",
		"host", host,
		"site", name,
		"duration", time.Since(begin),
	)
	return strategy
}

// Match delegates to the wrapped detector.
func (d *LoggingDetector) Match(host string) (chatlens.Site, bool) {
	return d.next.Match(host)
}

// Sites delegates to the wrapped detector.
func (d *LoggingDetector) Sites() []chatlens.Site {
	return d.next.Sites()
}

// LoggingScraper wraps a Scraper with logging of each extraction.
type LoggingScraper struct {
	next   chatlens.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next chatlens.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the outcome.
func (s *LoggingScraper) Scrape(page chatlens.Page) *chatlens.Result {
	begin := time.Now()
	result := s.next.Scrape(page)

	host := ""
	if page != nil {
		host = page.Host()
	}
	attrs := []any{"host", host, "duration", time.Since(begin)}
	if result.IsError() {
		s.logger.Warn("scrape", append(attrs, "err", result.Err)...)
		return result
	}
	s.logger.Info("scrape", append(attrs, "messages", result.Conversation.Len())...)
	return result
}

// LoggingAnalyzer wraps an Analyzer with logging of status updates and the
// final outcome.
type LoggingAnalyzer struct {
	next   chatlens.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next chatlens.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze logs each status update before forwarding it to status.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, req *chatlens.AnalysisRequest, status chatlens.StatusFunc) (report string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		a.logger.Log(ctx, level, "analyze",
			"messages", len(req.Messages),
			"bytes", len(report),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	return a.next.Analyze(ctx, req, func(s string) {
		a.logger.Debug("analysis status", "status", s)
		if status != nil {
			status(s)
		}
	})
}
