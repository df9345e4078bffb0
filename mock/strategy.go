package mock

import "github.com/fwojciec/chatlens"

// Compile-time interface verification.
var (
	_ chatlens.Strategy     = (*Strategy)(nil)
	_ chatlens.SiteDetector = (*SiteDetector)(nil)
	_ chatlens.Scraper      = (*Scraper)(nil)
)

// Strategy is a mock implementation of chatlens.Strategy.
type Strategy struct {
	NameFn    func() string
	ExtractFn func(root chatlens.Node) (*chatlens.Conversation, error)
}

func (s *Strategy) Name() string {
	return s.NameFn()
}

func (s *Strategy) Extract(root chatlens.Node) (*chatlens.Conversation, error) {
	return s.ExtractFn(root)
}

// SiteDetector is a mock implementation of chatlens.SiteDetector.
type SiteDetector struct {
	DetectFn func(host string) chatlens.Strategy
	MatchFn  func(host string) (chatlens.Site, bool)
	SitesFn  func() []chatlens.Site
}

func (d *SiteDetector) Detect(host string) chatlens.Strategy {
	return d.DetectFn(host)
}

func (d *SiteDetector) Match(host string) (chatlens.Site, bool) {
	return d.MatchFn(host)
}

func (d *SiteDetector) Sites() []chatlens.Site {
	return d.SitesFn()
}

// Scraper is a mock implementation of chatlens.Scraper.
type Scraper struct {
	ScrapeFn func(page chatlens.Page) *chatlens.Result
}

func (s *Scraper) Scrape(page chatlens.Page) *chatlens.Result {
	return s.ScrapeFn(page)
}
