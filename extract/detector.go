package extract

import (
	"strings"

	"github.com/fwojciec/chatlens"
)

var _ chatlens.SiteDetector = (*Detector)(nil)

// Entry binds a site identifier to its strategy.
type Entry struct {
	Site     chatlens.Site
	Strategy chatlens.Strategy
}

// Detector maps hostnames to strategies by substring containment, so
// "chat.chatgpt.com" resolves to the chatgpt.com strategy. When several
// identifiers occur in the same host the longest one wins, and among equal
// lengths the first registered. The table is fixed at construction.
type Detector struct {
	entries []Entry
}

// NewDetector creates a Detector over the given entries.
func NewDetector(entries ...Entry) *Detector {
	return &Detector{entries: append([]Entry(nil), entries...)}
}

// NewDefaultDetector creates a Detector with every built-in site strategy.
func NewDefaultDetector() *Detector {
	return NewDetector(
		Entry{Site: chatlens.SiteChatGPT, Strategy: NewChatGPTStrategy()},
		Entry{Site: chatlens.SiteGemini, Strategy: NewGeminiStrategy()},
		Entry{Site: chatlens.SitePerplexity, Strategy: NewPerplexityStrategy()},
		Entry{Site: chatlens.SiteClaude, Strategy: NewClaudeStrategy()},
		Entry{Site: chatlens.SiteDeepseek, Strategy: NewDeepseekStrategy()},
	)
}

// Detect returns the strategy for host, or nil if no site matches.
func (d *Detector) Detect(host string) chatlens.Strategy {
	if e, ok := d.match(host); ok {
		return e.Strategy
	}
	return nil
}

// Match returns the site identifier matching host.
func (d *Detector) Match(host string) (chatlens.Site, bool) {
	e, ok := d.match(host)
	return e.Site, ok
}

// Sites returns the registered site identifiers in registration order.
func (d *Detector) Sites() []chatlens.Site {
	sites := make([]chatlens.Site, len(d.entries))
	for i, e := range d.entries {
		sites[i] = e.Site
	}
	return sites
}

func (d *Detector) match(host string) (Entry, bool) {
	host = strings.ToLower(host)
	var best Entry
	found := false
	for _, e := range d.entries {
		id := strings.ToLower(string(e.Site))
		if id == "" || !strings.Contains(host, id) {
			continue
		}
		if !found || len(id) > len(best.Site) {
			best = e
			found = true
		}
	}
	return best, found
}
