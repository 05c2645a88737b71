package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Node is the small slice of DOM querying the extractor relies on.
type Node interface {
	// SelectOne returns the first descendant matching selector in document order.
	SelectOne(selector string) (Node, bool)
	// SelectAll returns all descendants matching selector in document order.
	SelectAll(selector string) []Node
	// Text returns the combined text content of the node and its descendants.
	Text() string
	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)
}

type selectionNode struct {
	sel *goquery.Selection
}

// Parse parses an HTML document and returns its root node.
func Parse(html string) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return selectionNode{sel: doc.Selection}, nil
}

func (n selectionNode) SelectOne(selector string) (Node, bool) {
	found := n.sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, false
	}
	return selectionNode{sel: found}, true
}

func (n selectionNode) SelectAll(selector string) []Node {
	found := n.sel.Find(selector)
	nodes := make([]Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, selectionNode{sel: s})
	})
	return nodes
}

func (n selectionNode) Text() string {
	return n.sel.Text()
}

func (n selectionNode) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}
