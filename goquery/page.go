// Package goquery provides a chatlens.Page implementation over parsed HTML
// snapshots, using goquery for selector queries.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/chatlens"
)

// Ensure types implement chatlens interfaces at compile time.
var (
	_ chatlens.Page       = (*Page)(nil)
	_ chatlens.Node       = (*Node)(nil)
	_ chatlens.PageParser = (*Parser)(nil)
)

// Page is a parsed HTML snapshot of a chat page.
type Page struct {
	host string
	doc  *goquery.Document
	err  error
}

// NewPage parses html captured from host. Parse failures surface from Root.
func NewPage(host, html string) *Page {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	return &Page{host: host, doc: doc, err: err}
}

// Host returns the page hostname.
func (p *Page) Host() string {
	return p.host
}

// Root returns the document root.
func (p *Page) Root() (chatlens.Node, error) {
	if p.err != nil {
		return nil, chatlens.Errorf(chatlens.EINVALID, "failed to parse HTML: %v", p.err)
	}
	return &Node{sel: p.doc.Selection}, nil
}

// Parser creates Pages from HTML snapshots.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse returns a Page for html captured from host.
func (p *Parser) Parse(host, html string) (chatlens.Page, error) {
	page := NewPage(host, html)
	if page.err != nil {
		return nil, chatlens.Errorf(chatlens.EINVALID, "failed to parse HTML: %v", page.err)
	}
	return page, nil
}

// Node wraps a single-element goquery selection.
type Node struct {
	sel *goquery.Selection
}

// Find returns descendants matching a CSS selector, in document order.
func (n *Node) Find(pattern string) []chatlens.Node {
	sel := n.sel.Find(pattern)
	nodes := make([]chatlens.Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &Node{sel: s})
	})
	return nodes
}

// Attr returns the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

// HasClass reports whether the node carries the class token.
func (n *Node) HasClass(class string) bool {
	return n.sel.HasClass(class)
}

// Text returns the rendered plain text of the node.
func (n *Node) Text() string {
	if len(n.sel.Nodes) == 0 {
		return ""
	}
	return RenderText(n.sel.Nodes[0])
}
