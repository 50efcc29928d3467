package styling

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/jonathan/resume-studio/internal/richtext"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// ErrEmptyRange is returned when start == end.
	ErrEmptyRange = errors.New("empty text range")
	// ErrRangeBounds is returned when the range does not fit the text content.
	ErrRangeBounds = errors.New("text range out of bounds")
)

// FontSize returns the canonical inline style for a point size.
func FontSize(sizePt float64) string {
	return "font-size: " + FormatPoints(sizePt)
}

// WrapRange wraps the text between rune offsets [start, end) of markup's text
// content in a single <span style="...">. Elements crossing a boundary are
// split so the result stays well formed.
func WrapRange(markup string, start, end int, style string) (string, error) {
	if start == end {
		return "", ErrEmptyRange
	}
	nodes, err := richtext.ParseFragment(markup)
	if err != nil {
		return "", fmt.Errorf("failed to parse markup: %w", err)
	}

	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	total := textLen(root)
	if start < 0 || end > total || start > end {
		return "", fmt.Errorf("%w: [%d, %d) of %d", ErrRangeBounds, start, end, total)
	}

	first := splitAt(root, start)
	last := splitAt(root, end)

	span := &html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
		Attr:     []html.Attribute{{Key: "style", Val: style}},
	}
	root.InsertBefore(span, first)
	for n := first; n != nil && n != last; {
		next := n.NextSibling
		root.RemoveChild(n)
		span.AppendChild(n)
		n = next
	}

	var out []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return richtext.WriteNodes(out), nil
}

func textLen(n *html.Node) int {
	if n.Type == html.TextNode {
		return utf8.RuneCountInString(n.Data)
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += textLen(c)
	}
	return total
}

// splitAt splits the tree under root so that text offset off starts a direct
// child of root, and returns that child. It returns nil when off is the end
// of the text.
func splitAt(root *html.Node, off int) *html.Node {
	text, local := findText(root, off)
	if text == nil {
		return nil
	}

	cur := text
	if local > 0 {
		runes := []rune(text.Data)
		rest := &html.Node{Type: html.TextNode, Data: string(runes[local:])}
		text.Data = string(runes[:local])
		text.Parent.InsertBefore(rest, text.NextSibling)
		cur = rest
	}

	for cur.Parent != root {
		parent := cur.Parent
		if cur == parent.FirstChild {
			cur = parent
			continue
		}
		clone := &html.Node{
			Type:     parent.Type,
			Data:     parent.Data,
			DataAtom: parent.DataAtom,
			Attr:     append([]html.Attribute(nil), parent.Attr...),
		}
		for n := cur; n != nil; {
			next := n.NextSibling
			parent.RemoveChild(n)
			clone.AppendChild(n)
			n = next
		}
		parent.Parent.InsertBefore(clone, parent.NextSibling)
		cur = clone
	}
	return cur
}

// findText returns the text node holding offset off and the rune offset
// within it.
func findText(n *html.Node, off int) (*html.Node, int) {
	acc := 0
	var found *html.Node
	var local int
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.TextNode {
			l := utf8.RuneCountInString(n.Data)
			if off < acc+l {
				found, local = n, off-acc
				return true
			}
			acc += l
			return false
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(n)
	return found, local
}
