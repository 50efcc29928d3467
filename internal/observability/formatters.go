// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-studio/internal/binding"
	"github.com/jonathan/resume-studio/internal/fieldpath"
	"github.com/jonathan/resume-studio/internal/richtext"
	"github.com/jonathan/resume-studio/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4)))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s to the box's inner width, counting runes.
func pad(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= boxWidth-4 {
		return s
	}
	return s + strings.Repeat(" ", boxWidth-4-n)
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-3]) + "..."
}

// PrintDocument outputs a human-readable summary of a résumé document.
func (p *Printer) PrintDocument(doc *types.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", doc.Profile.Name))
	if doc.Profile.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", doc.Profile.Title))
	}
	if doc.Profile.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", doc.Profile.Email))
	}
	sb.WriteString(fmt.Sprintf("Scale:    %g\n", doc.EffectiveFontScale()))
	sb.WriteString("\n")

	sb.WriteString("Sections:\n")
	for _, key := range []string{
		types.SectionSummary, types.SectionExperience, types.SectionEducation,
		types.SectionSkills, types.SectionProjects, types.SectionEngagements,
	} {
		line := fmt.Sprintf("  • %-12s %q", key, doc.Title(key))
		if n, ok := doc.ItemCount(key); ok {
			line += fmt.Sprintf("  %d item(s)", n)
		} else if key == types.SectionSummary && doc.Summary == "" {
			line += "  (empty)"
		}
		sb.WriteString(line + "\n")
	}

	if len(doc.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		count := min(len(doc.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := doc.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s (%d bullets)\n", plain(exp.Role), plain(exp.Company), len(exp.Bullets)))
		}
		if len(doc.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Experience)-maxItemsToShow))
		}
	}

	p.printBox("RESUME DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLayout outputs both columns of the effective layout, flagging keys
// that no section renderer knows and keys listed more than once.
func (p *Printer) PrintLayout(doc *types.Document) {
	if doc == nil {
		return
	}

	layout := doc.EffectiveLayout()
	seen := make(map[string]int)
	for _, key := range layout.Keys() {
		seen[key]++
	}

	var sb strings.Builder
	column := func(name string, keys []string) {
		sb.WriteString(name + ":\n")
		if len(keys) == 0 {
			sb.WriteString("  (empty)\n")
		}
		for i, key := range keys {
			line := fmt.Sprintf("  %d. %s", i+1, key)
			if !types.IsSection(key) {
				line += "  [unknown, renders empty]"
			}
			if seen[key] > 1 {
				line += "  [duplicate]"
			}
			sb.WriteString(line + "\n")
		}
	}
	column("Left", layout.Left)
	column("Right", layout.Right)

	p.printBox("LAYOUT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRenderFailures outputs the sections that rendered empty after a failure.
func (p *Printer) PrintRenderFailures(failed []string) {
	if len(failed) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d section(s) failed and rendered empty:\n", len(failed)))
	for _, key := range failed {
		sb.WriteString(fmt.Sprintf("  • %s\n", key))
	}

	p.printBox("RENDER FAILURES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBindings outputs the bound nodes found in a rendered page.
func (p *Printer) PrintBindings(nodes []binding.Node) {
	if len(nodes) == 0 {
		return
	}

	rich := 0
	for _, n := range nodes {
		if n.Format == fieldpath.Rich.String() {
			rich++
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Bound nodes: %d (%d rich, %d plain)\n\n", len(nodes), rich, len(nodes)-rich))

	count := min(len(nodes), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  %s = %q\n", nodes[i].Path, plain(nodes[i].Value)))
	}
	if len(nodes) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(nodes)-maxItemsToShow))
	}

	p.printBox("BOUND FIELDS", strings.TrimSuffix(sb.String(), "\n"))
}

func plain(markup string) string {
	return strings.Join(strings.Fields(richtext.PlainText(markup)), " ")
}
