package mock

import "github.com/fwojciec/chatlens"

// Compile-time interface verification.
var (
	_ chatlens.Node       = (*Node)(nil)
	_ chatlens.Page       = (*Page)(nil)
	_ chatlens.PageParser = (*PageParser)(nil)
)

// Node is a mock implementation of chatlens.Node.
type Node struct {
	FindFn     func(pattern string) []chatlens.Node
	AttrFn     func(name string) (string, bool)
	HasClassFn func(class string) bool
	TextFn     func() string
}

func (n *Node) Find(pattern string) []chatlens.Node {
	return n.FindFn(pattern)
}

func (n *Node) Attr(name string) (string, bool) {
	return n.AttrFn(name)
}

func (n *Node) HasClass(class string) bool {
	return n.HasClassFn(class)
}

func (n *Node) Text() string {
	return n.TextFn()
}

// Page is a mock implementation of chatlens.Page.
type Page struct {
	HostFn func() string
	RootFn func() (chatlens.Node, error)
}

func (p *Page) Host() string {
	return p.HostFn()
}

func (p *Page) Root() (chatlens.Node, error) {
	return p.RootFn()
}

// PageParser is a mock implementation of chatlens.PageParser.
type PageParser struct {
	ParseFn func(host, html string) (chatlens.Page, error)
}

func (p *PageParser) Parse(host, html string) (chatlens.Page, error) {
	return p.ParseFn(host, html)
}
