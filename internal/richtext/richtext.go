// Package richtext sanitizes and serializes the inline markup stored in rich
// résumé fields.
package richtext

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// inline elements kept by SanitizeRich. Anything else is unwrapped.
var richElements = map[atom.Atom]bool{
	atom.Span:   true,
	atom.B:      true,
	atom.Strong: true,
	atom.I:      true,
	atom.Em:     true,
	atom.U:      true,
	atom.Br:     true,
	atom.Sub:    true,
	atom.Sup:    true,
}

// elements dropped together with their content.
var droppedElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Iframe:   true,
	atom.Object:   true,
	atom.Template: true,
}

var fontSizeRe = regexp.MustCompile(`(?i)font-size\s*:\s*([0-9]*\.?[0-9]+)\s*(pt|px|em|rem|%)`)

// ParseFragment parses markup as the children of a <div>.
func ParseFragment(markup string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	return html.ParseFragment(strings.NewReader(markup), ctx)
}

// SanitizeRich normalizes user-edited markup for a rich field. Only inline
// formatting survives; spans keep nothing but a font-size declaration. The
// output is canonical: sanitizing it again returns it unchanged.
func SanitizeRich(markup string) string {
	if markup == "" {
		return ""
	}
	nodes, err := ParseFragment(markup)
	if err != nil {
		return html.EscapeString(markup)
	}
	var sb strings.Builder
	for _, n := range nodes {
		writeRich(&sb, n)
	}
	return sb.String()
}

// WriteNodes serializes nodes in the canonical form used by SanitizeRich,
// without filtering.
func WriteNodes(nodes []*html.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		writeNode(&sb, n)
	}
	return sb.String()
}

// PlainText returns the text content of markup, tags removed and entities decoded.
func PlainText(markup string) string {
	nodes, err := ParseFragment(markup)
	if err != nil {
		return markup
	}
	var sb strings.Builder
	for _, n := range nodes {
		collectText(&sb, n)
	}
	return sb.String()
}

func collectText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
	case html.ElementNode:
		if n.DataAtom == atom.Br {
			sb.WriteString("\n")
			return
		}
		if droppedElements[n.DataAtom] {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(sb, c)
	}
}

func writeRich(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		escapeText(sb, n.Data)
		return
	case html.ElementNode:
	default:
		return
	}

	if droppedElements[n.DataAtom] {
		return
	}
	if !richElements[n.DataAtom] {
		writeRichChildren(sb, n)
		return
	}
	if n.DataAtom == atom.Br {
		sb.WriteString("<br>")
		return
	}
	if n.DataAtom == atom.Span {
		style, ok := FontSizeStyle(attr(n, "style"))
		if !ok {
			writeRichChildren(sb, n)
			return
		}
		sb.WriteString(`<span style="`)
		sb.WriteString(style)
		sb.WriteString(`">`)
		writeRichChildren(sb, n)
		sb.WriteString("</span>")
		return
	}
	sb.WriteString("<" + n.Data + ">")
	writeRichChildren(sb, n)
	sb.WriteString("</" + n.Data + ">")
}

func writeRichChildren(sb *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeRich(sb, c)
	}
}

func writeNode(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		escapeText(sb, n.Data)
	case html.ElementNode:
		sb.WriteString("<" + n.Data)
		for _, a := range n.Attr {
			sb.WriteString(" " + a.Key + `="`)
			sb.WriteString(strings.NewReplacer("&", "&amp;", `"`, "&quot;").Replace(a.Val))
			sb.WriteString(`"`)
		}
		sb.WriteString(">")
		if n.DataAtom == atom.Br {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNode(sb, c)
		}
		sb.WriteString("</" + n.Data + ">")
	}
}

// FontSizeStyle extracts a font-size declaration from a style attribute and
// returns it in canonical form ("font-size: 12pt").
func FontSizeStyle(style string) (string, bool) {
	m := fontSizeRe.FindStringSubmatch(style)
	if m == nil {
		return "", false
	}
	size, err := strconv.ParseFloat(m[1], 64)
	if err != nil || size <= 0 {
		return "", false
	}
	return fmt.Sprintf("font-size: %s%s", strconv.FormatFloat(size, 'f', -1, 64), strings.ToLower(m[2])), true
}

// escapeText escapes the minimum needed for text to reparse identically.
// An ampersand is only escaped when the text after it would decode as a
// character reference, so "A & B" and "R&D" are stored as typed.
func escapeText(sb *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '&':
			if isCharRef(s[i:]) {
				sb.WriteString("&amp;")
			} else {
				sb.WriteByte('&')
			}
		default:
			sb.WriteByte(c)
		}
	}
}

// isCharRef reports whether s, which starts with '&', begins with something
// the HTML tokenizer decodes as a character reference. Legacy names without a
// semicolon ("&copy", "&LT") count; unknown names ("&D", "&T") do not.
func isCharRef(s string) bool {
	end := 1
	if end < len(s) && s[end] == '#' {
		end++
	}
	for end < len(s) && isRefChar(s[end]) {
		end++
	}
	if end < len(s) && s[end] == ';' {
		end++
	}
	token := s[:end]
	return len(token) > 1 && html.UnescapeString(token) != token
}

func isRefChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
