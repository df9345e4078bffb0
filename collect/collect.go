// Package collect scrapes many chat pages concurrently. It coordinates
// fetching, per-domain rate limiting, retries and extraction, and reports
// outcomes in input order.
package collect

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/chatlens"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of targets processed at once.
const DefaultConcurrency = 4

// Collector scrapes a batch of targets.
type Collector struct {
	Fetcher     chatlens.Fetcher
	Parser      chatlens.PageParser
	Scraper     chatlens.Scraper
	RateLimiter chatlens.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration

	// ReadFile loads saved pages. Defaults to os.ReadFile.
	ReadFile func(path string) ([]byte, error)
}

// Target is one page to scrape: a URL, or the path of a saved HTML file.
type Target struct {
	Source string

	// Host overrides the host derived from Source. Required for files.
	Host string
}

// IsURL reports whether the target is fetched rather than read from disk.
func (t Target) IsURL() bool {
	return strings.HasPrefix(t.Source, "http://") || strings.HasPrefix(t.Source, "https://")
}

// Outcome is the result of collecting one target. Err is set when the page
// could not be obtained; otherwise Result holds the scrape result, which may
// itself be an error result.
type Outcome struct {
	Target Target
	Host   string
	Result *chatlens.Result
	Err    error
}

// Failed reports whether the outcome carries no usable conversation.
func (o Outcome) Failed() bool {
	return o.Err != nil || o.Result == nil || o.Result.IsError()
}

// ProgressEvent reports progress during a collection.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Source    string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting collection progress.
type ProgressFunc func(event ProgressEvent)

// invalidSchemes are browser-internal pages that never hold a conversation.
var invalidSchemes = []string{"chrome:", "edge:", "about:", "file:"}

// ValidateTarget rejects sources that cannot be scraped.
func ValidateTarget(source string) error {
	if strings.TrimSpace(source) == "" {
		return chatlens.Errorf(chatlens.EINVALID, "target required")
	}
	lower := strings.ToLower(source)
	for _, s := range invalidSchemes {
		if strings.HasPrefix(lower, s) {
			return chatlens.Errorf(chatlens.EINVALID, "Cannot analyze this page type.")
		}
	}
	return nil
}

type indexed struct {
	position int
	outcome  Outcome
}

// Collect processes every target and returns one outcome per target in
// input order. A failing target never stops the batch; Collect returns an
// error only when ctx is canceled.
func (c *Collector) Collect(ctx context.Context, targets []Target, progress ProgressFunc) ([]Outcome, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(targets)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan indexed, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, target := range targets {
			g.Go(func() error {
				resultCh <- indexed{position: i, outcome: c.collectOne(gctx, target)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	outcomes := make([]Outcome, total)
	var completed atomic.Int64
	for r := range resultCh {
		outcomes[r.position] = r.outcome
		ev := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Add(1)),
			Total:     total,
			Source:    r.outcome.Target.Source,
		}
		if r.outcome.Failed() {
			ev.Type = ProgressFailed
			ev.Error = r.outcome.failure()
		}
		progress(ev)
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	if err := ctx.Err(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

func (o Outcome) failure() error {
	switch {
	case o.Err != nil:
		return o.Err
	case o.Result == nil:
		return chatlens.Errorf(chatlens.EINTERNAL, "no result")
	default:
		return chatlens.Errorf(chatlens.EINTERNAL, "%s", o.Result.Err)
	}
}

// collectOne obtains the page for target and scrapes it.
func (c *Collector) collectOne(ctx context.Context, target Target) Outcome {
	out := Outcome{Target: target}

	if err := ValidateTarget(target.Source); err != nil {
		out.Err = err
		return out
	}

	html, host, err := c.load(ctx, target)
	if err != nil {
		out.Err = err
		return out
	}
	out.Host = host

	page, err := c.Parser.Parse(host, html)
	if err != nil {
		out.Err = err
		return out
	}

	out.Result = c.Scraper.Scrape(page)
	return out
}

// load returns the page HTML and the host it should be scraped as.
func (c *Collector) load(ctx context.Context, target Target) (html, host string, err error) {
	host = strings.ToLower(target.Host)

	if !target.IsURL() {
		if host == "" {
			return "", "", chatlens.Errorf(chatlens.EINVALID, "host required for file target %s", target.Source)
		}
		readFile := c.ReadFile
		if readFile == nil {
			readFile = os.ReadFile
		}
		b, err := readFile(target.Source)
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", target.Source, err)
		}
		return string(b), host, nil
	}

	urlHost, err := chatlens.HostFromURL(target.Source)
	if err != nil {
		return "", "", err
	}
	if host == "" {
		host = urlHost
	}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, urlHost); err != nil {
			return "", "", err
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err = FetchWithRetryDelays(ctx, target.Source, c.Fetcher.Fetch, nil, delays)
	if err != nil {
		return "", "", err
	}
	return html, host, nil
}
