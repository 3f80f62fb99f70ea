package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"top-movers-server/internal/market"
)

// DOMSurface draws into a results container and a status element of a
// parsed HTML document.
type DOMSurface struct {
	results *html.Node
	status  *html.Node
}

func NewDOMSurface(results, status *html.Node) *DOMSurface {
	return &DOMSurface{results: results, status: status}
}

func (s *DOMSurface) Reset() {
	removeChildren(s.results)
}

func (s *DOMSurface) AppendTable(title string, rows []market.Quote) {
	wrapper := element(atom.Section, "table-wrapper")

	heading := element(atom.H2, "table-title")
	heading.AppendChild(text(title))
	wrapper.AppendChild(heading)

	table := element(atom.Table, "movers-table")

	thead := element(atom.Thead, "")
	headRow := element(atom.Tr, "")
	for _, col := range Columns {
		th := element(atom.Th, "")
		th.Attr = append(th.Attr, html.Attribute{Key: "scope", Val: "col"})
		th.AppendChild(text(col))
		headRow.AppendChild(th)
	}
	thead.AppendChild(headRow)
	table.AppendChild(thead)

	tbody := element(atom.Tbody, "")
	for _, q := range rows {
		tr := element(atom.Tr, "")
		for i, cell := range Cells(q) {
			td := element(atom.Td, "")
			td.Attr = append(td.Attr, html.Attribute{Key: "data-label", Val: Columns[i]})
			td.AppendChild(text(cell))
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)

	wrapper.AppendChild(table)
	s.results.AppendChild(wrapper)
}

func (s *DOMSurface) ShowError(message string) {
	removeChildren(s.results)
	div := element(atom.Div, "error-message")
	div.AppendChild(text(message))
	s.results.AppendChild(div)
}

func (s *DOMSurface) SetStatus(t string) {
	removeChildren(s.status)
	if t != "" {
		s.status.AppendChild(text(t))
	}
}

// Page is the HTML shell the renderer fills in. The shell is parsed fresh
// for every request so concurrent renders never share a tree.
type Page struct {
	shell []byte
}

func NewPage(shell []byte) *Page {
	return &Page{shell: shell}
}

func LoadPage(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	return NewPage(data), nil
}

// Render writes the page after one renderer invocation. A nil limit means
// the initial load: the #limit field's own value is used. If the shell lacks
// #controls, #limit, #results or #status it is written unchanged and no tool
// call is made.
func (p *Page) Render(ctx context.Context, w io.Writer, r *Renderer, limit *string) error {
	doc, err := html.Parse(bytes.NewReader(p.shell))
	if err != nil {
		return fmt.Errorf("parse page: %w", err)
	}

	form := findByID(doc, "controls")
	field := findByID(doc, "limit")
	results := findByID(doc, "results")
	status := findByID(doc, "status")
	if form == nil || field == nil || results == nil || status == nil {
		return html.Render(w, doc)
	}

	raw := attr(field, "value")
	if limit != nil {
		raw = *limit
		setAttr(field, "value", raw)
	}

	_ = r.Invoke(ctx, NewDOMSurface(results, status), raw)
	return html.Render(w, doc)
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
