package extract

import (
	"errors"
	"fmt"

	"github.com/fwojciec/chatlens"
)

var _ chatlens.Scraper = (*Scraper)(nil)

// Scraper is the extraction entry point. It resolves a strategy for the
// page host and runs it, converting every failure into an error result.
type Scraper struct {
	detector chatlens.SiteDetector
}

// NewScraper creates a new Scraper.
func NewScraper(detector chatlens.SiteDetector) *Scraper {
	return &Scraper{detector: detector}
}

// Scrape extracts the conversation from page. Strategy errors and panics
// raised while reading the page become "Script Error" results; no partial
// conversation is returned.
func (s *Scraper) Scrape(page chatlens.Page) (result *chatlens.Result) {
	if page == nil {
		return chatlens.NewErrorResult(chatlens.ScriptErrorPrefix + "page unavailable")
	}

	defer func() {
		if r := recover(); r != nil {
			result = chatlens.NewErrorResult(chatlens.ScriptErrorPrefix + panicMessage(r))
		}
	}()

	host := page.Host()
	strategy := s.detector.Detect(host)
	if strategy == nil {
		return chatlens.NewErrorResult(chatlens.UnsupportedPrefix + host)
	}

	root, err := page.Root()
	if err != nil {
		return chatlens.NewErrorResult(chatlens.ScriptErrorPrefix + faultMessage(err))
	}

	conv, err := strategy.Extract(root)
	if err != nil {
		return chatlens.NewErrorResult(chatlens.ScriptErrorPrefix + faultMessage(err))
	}
	return chatlens.NewConversationResult(conv)
}

// faultMessage prefers the application message over the wrapped error text.
func faultMessage(err error) string {
	var e *chatlens.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func panicMessage(r any) string {
	if err, ok := r.(error); ok {
		return faultMessage(err)
	}
	return fmt.Sprint(r)
}
