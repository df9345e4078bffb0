// Package rod renders live chat pages in Chrome through go-rod.
package rod

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/chatlens"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements chatlens.Fetcher at compile time.
var _ chatlens.Fetcher = (*Fetcher)(nil)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 60 * time.Second

// DefaultRenderDelay is how long Fetch waits after the load event. Chat
// applications stream the transcript in after the document loads.
const DefaultRenderDelay = 2 * time.Second

// Fetcher retrieves rendered HTML from chat pages using Chrome.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher

	fetchTimeout time.Duration
	renderDelay  time.Duration
	userDataDir  string
	controlURL   string
	headless     bool

	mu     sync.Mutex
	closed bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page timeout. Defaults to 60s.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithRenderDelay sets the wait after the load event. Defaults to 2s.
func WithRenderDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.renderDelay = d
	}
}

// WithUserDataDir launches Chrome with an existing profile directory so
// that logged-in sessions are reused. A profile implies a visible browser.
func WithUserDataDir(dir string) Option {
	return func(f *Fetcher) {
		f.userDataDir = dir
		f.headless = false
	}
}

// WithControlURL attaches to an already running browser instead of
// launching one. Close leaves an attached browser running.
func WithControlURL(u string) Option {
	return func(f *Fetcher) {
		f.controlURL = u
	}
}

// NewFetcher creates a new Fetcher. Unless WithControlURL is given it
// launches Chrome; Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found, launched or reached.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout: DefaultFetchTimeout,
		renderDelay:  DefaultRenderDelay,
		headless:     true,
	}
	for _, opt := range opts {
		opt(f)
	}

	u := f.controlURL
	if u == "" {
		l := launcher.New().
			Set("disable-background-timer-throttling").
			Set("disable-renderer-backgrounding").
			Leakless(true).
			Headless(f.headless)
		if f.userDataDir != "" {
			l = l.UserDataDir(f.userDataDir)
		}
		var err error
		if u, err = l.Launch(); err != nil {
			return nil, fmt.Errorf("launching browser: %w", err)
		}
		f.launcher = l
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		if f.launcher != nil {
			f.launcher.Kill()
		}
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	f.browser = browser

	return f, nil
}

// Fetch navigates to the URL, waits for the page to settle, and returns the
// rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if closed {
		return "", chatlens.Errorf(chatlens.EINVALID, "fetcher is closed")
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("waiting for %s: %w", url, err)
	}

	if f.renderDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.renderDelay):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading html: %w", err)
	}
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true

	// An attached browser belongs to someone else.
	if f.launcher == nil {
		return nil
	}
	err := f.browser.Close()
	f.launcher.Kill()
	return err
}

// LauncherPID returns the process ID of the launched browser, or 0 when the
// Fetcher attached to an existing one.
func (f *Fetcher) LauncherPID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.launcher == nil || f.closed {
		return 0
	}
	return f.launcher.PID()
}
