package chatlens

// Node is a read-only handle to one element of a page's document tree.
// It is the only capability set extraction strategies depend on, so they can
// run against a parsed HTML snapshot or an in-memory fake alike.
type Node interface {
	// Find returns descendants matching a CSS selector, in document order.
	// An invalid selector matches nothing.
	Find(pattern string) []Node

	// Attr returns the named attribute and whether it is present.
	Attr(name string) (string, bool)

	// HasClass reports whether the class attribute contains the token.
	HasClass(class string) bool

	// Text returns the rendered plain text of the node, with line breaks
	// where block elements and <br> tags would break lines.
	Text() string
}

// Page is a chat page captured for extraction.
type Page interface {
	// Host returns the page hostname, e.g. "chatgpt.com".
	Host() string

	// Root returns the document root. The error reports a page whose
	// structure could not be read.
	Root() (Node, error)
}

// PageParser builds a Page from an HTML snapshot of host.
type PageParser interface {
	Parse(host, html string) (Page, error)
}
