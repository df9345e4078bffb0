package chatlens

// Site is a host identifier matched by substring containment against a
// page's hostname.
type Site string

// Supported chat sites.
const (
	SiteChatGPT    Site = "chatgpt.com"
	SiteGemini     Site = "gemini.google.com"
	SitePerplexity Site = "perplexity.ai"
	SiteClaude     Site = "claude.ai"
	SiteDeepseek   Site = "deepseek.com"
)

// Strategy extracts a conversation from one chat site's markup.
type Strategy interface {
	// Name returns the strategy identifier (e.g., "chatgpt").
	Name() string

	// Extract walks the document and returns the conversation in document
	// order. Finding no messages is not an error; it returns an empty
	// conversation.
	Extract(root Node) (*Conversation, error)
}

// SiteDetector maps hostnames to extraction strategies.
type SiteDetector interface {
	// Detect returns the strategy for a hostname, or nil if no registered
	// site matches.
	Detect(host string) Strategy

	// Match returns the site identifier that Detect would resolve host to.
	Match(host string) (Site, bool)

	// Sites returns the registered site identifiers in registration order.
	Sites() []Site
}

// Scraper is the extraction entry point.
type Scraper interface {
	// Scrape extracts the conversation from a page. It never fails: faults
	// are reported through the result's error field.
	Scrape(page Page) *Result
}
