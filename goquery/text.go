package goquery

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockBreaks lists elements that start and end on their own line, with the
// number of line breaks placed around them.
var blockBreaks = map[atom.Atom]int{
	atom.P: 2, atom.H1: 2, atom.H2: 2, atom.H3: 2, atom.H4: 2, atom.H5: 2, atom.H6: 2,
	atom.Address: 1, atom.Article: 1, atom.Aside: 1, atom.Blockquote: 1,
	atom.Dd: 1, atom.Details: 1, atom.Div: 1, atom.Dl: 1, atom.Dt: 1,
	atom.Fieldset: 1, atom.Figcaption: 1, atom.Figure: 1, atom.Footer: 1,
	atom.Form: 1, atom.Header: 1, atom.Hr: 1, atom.Li: 1, atom.Main: 1,
	atom.Nav: 1, atom.Ol: 1, atom.Pre: 1, atom.Section: 1, atom.Summary: 1,
	atom.Table: 1, atom.Tr: 1, atom.Ul: 1,
}

// skipped elements contribute no rendered text.
var skipped = map[atom.Atom]bool{
	atom.Head: true, atom.Script: true, atom.Style: true, atom.Noscript: true,
	atom.Template: true, atom.Svg: true,
}

// RenderText approximates the browser's innerText for n: whitespace in text
// collapses to single spaces except inside <pre>, block elements sit on
// their own lines, <br> breaks the line, and hidden or non-rendered
// elements are omitted. The result is trimmed.
func RenderText(n *html.Node) string {
	w := &textWriter{}
	w.walk(n, false)
	return strings.TrimSpace(w.b.String())
}

type textWriter struct {
	b strings.Builder
}

func (w *textWriter) walk(n *html.Node, pre bool) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data, pre)
		return
	case html.ElementNode:
		if skipped[n.DataAtom] || hasAttr(n, "hidden") {
			return
		}
		if n.DataAtom == atom.Br {
			w.newline()
			return
		}
		if n.DataAtom == atom.Pre || n.DataAtom == atom.Textarea {
			pre = true
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}

	breaks := blockBreaks[n.DataAtom]
	if n.Type != html.ElementNode {
		breaks = 0
	}
	w.breakLines(breaks)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, pre)
	}
	if n.DataAtom == atom.Td || n.DataAtom == atom.Th {
		w.text(" ", false)
	}
	w.breakLines(breaks)
}

// text writes s, collapsing whitespace unless pre is set.
func (w *textWriter) text(s string, pre bool) {
	if pre {
		w.b.WriteString(s)
		return
	}
	collapsed := strings.Join(strings.Fields(s), " ")
	if collapsed == "" {
		if s != "" && !w.atLineStart() && !strings.HasSuffix(w.b.String(), " ") {
			w.b.WriteByte(' ')
		}
		return
	}
	if isSpace(s[0]) && !w.atLineStart() && !strings.HasSuffix(w.b.String(), " ") {
		w.b.WriteByte(' ')
	}
	w.b.WriteString(collapsed)
	if isSpace(s[len(s)-1]) {
		w.b.WriteByte(' ')
	}
}

// newline ends the current line unconditionally.
func (w *textWriter) newline() {
	w.trimTrailingSpaces()
	w.b.WriteByte('\n')
}

// breakLines ensures the output ends with at least n line breaks, unless
// nothing has been written yet.
func (w *textWriter) breakLines(n int) {
	if n == 0 || w.b.Len() == 0 {
		return
	}
	w.trimTrailingSpaces()
	s := w.b.String()
	have := len(s) - len(strings.TrimRight(s, "\n"))
	for ; have < n; have++ {
		w.b.WriteByte('\n')
	}
}

func (w *textWriter) atLineStart() bool {
	s := w.b.String()
	return s == "" || strings.HasSuffix(s, "\n")
}

func (w *textWriter) trimTrailingSpaces() {
	s := w.b.String()
	trimmed := strings.TrimRight(s, " \t")
	if len(trimmed) != len(s) {
		w.b.Reset()
		w.b.WriteString(trimmed)
	}
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
