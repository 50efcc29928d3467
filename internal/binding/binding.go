// Package binding connects rendered editable nodes to document leaves: it
// scans a rendered page for bound nodes, captures their content by field
// policy and writes edits back through field references.
package binding

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-studio/internal/fieldpath"
	"github.com/jonathan/resume-studio/internal/richtext"
	"github.com/jonathan/resume-studio/internal/types"
)

// PathAttr is the attribute carrying a node's field path.
const PathAttr = "data-path"

// FormatAttr is the attribute carrying the node's capture policy.
const FormatAttr = "data-format"

// Node is one bound node found in a rendered page.
type Node struct {
	Path   string
	Format string
	Value  string
}

// Edit is one committed write: the value that was stored at Path.
type Edit struct {
	Path  string `json:"path" validate:"required"`
	Value string `json:"value"`
}

// Scan finds every node carrying a path attribute and captures its content:
// inner markup for rich nodes, text for plain ones. Nodes are returned in
// document order; a path may appear more than once.
func Scan(r io.Reader) ([]Node, error) {
	dom, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	var nodes []Node
	var scanErr error
	dom.Find("[" + PathAttr + "]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		n := Node{Path: s.AttrOr(PathAttr, ""), Format: s.AttrOr(FormatAttr, fieldpath.Plain.String())}
		if n.Format == fieldpath.Rich.String() {
			inner, err := s.Html()
			if err != nil {
				scanErr = fmt.Errorf("failed to read markup of %q: %w", n.Path, err)
				return false
			}
			n.Value = inner
		} else {
			n.Value = s.Text()
		}
		nodes = append(nodes, n)
		return true
	})
	if scanErr != nil {
		return nil, scanErr
	}
	return nodes, nil
}

// Project converts captured content to the stored form for a policy. Rich
// content is sanitized; plain content is stored verbatim.
func Project(policy fieldpath.Policy, raw string) string {
	if policy == fieldpath.Rich {
		return richtext.SanitizeRich(raw)
	}
	return raw
}

// Apply resolves path against doc and stores raw, projected by the field's
// policy. The document is untouched when the path does not resolve.
func Apply(doc *types.Document, path, raw string) (Edit, error) {
	ref, err := fieldpath.ParseRef(doc, path)
	if err != nil {
		return Edit{}, err
	}
	value := Project(ref.Policy(), raw)
	if err := ref.Set(doc, value); err != nil {
		return Edit{}, err
	}
	return Edit{Path: ref.String(), Value: value}, nil
}

// ApplyAll applies nodes in order; later nodes with the same path win.
// It stops at the first path that fails to resolve.
func ApplyAll(doc *types.Document, nodes []Node) ([]Edit, error) {
	edits := make([]Edit, 0, len(nodes))
	for _, n := range nodes {
		e, err := Apply(doc, n.Path, n.Value)
		if err != nil {
			return edits, err
		}
		edits = append(edits, e)
	}
	return edits, nil
}

// ScanLayout reads the section order a rendered page was composed with,
// from the reorder panel when present and from the column sections
// otherwise. ok is false when the page carries neither.
func ScanLayout(r io.Reader) (layout types.Layout, ok bool, err error) {
	dom, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return types.Layout{}, false, fmt.Errorf("failed to parse page: %w", err)
	}

	keys := func(sel string) []string {
		var out []string
		dom.Find(sel).Each(func(_ int, s *goquery.Selection) {
			out = append(out, s.AttrOr("data-key", ""))
		})
		return out
	}

	layout.Left, layout.Right = keys("#list-left li[data-key]"), keys("#list-right li[data-key]")
	if len(layout.Left)+len(layout.Right) == 0 {
		layout.Left, layout.Right = keys("#col-left section[data-key]"), keys("#col-right section[data-key]")
	}
	if len(layout.Left)+len(layout.Right) == 0 {
		return types.Layout{}, false, nil
	}
	return layout, true, nil
}
