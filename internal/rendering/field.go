package rendering

import (
	"html"
	"html/template"

	"github.com/jonathan/resume-studio/internal/fieldpath"
	"github.com/jonathan/resume-studio/internal/richtext"
	"github.com/jonathan/resume-studio/internal/types"
)

// Mode selects viewer or editor output.
type Mode int

const (
	// ModeViewer renders a static read-only page.
	ModeViewer Mode = iota
	// ModeEditor tags every leaf with data-path and makes it contenteditable.
	ModeEditor
)

func (m Mode) String() string {
	if m == ModeEditor {
		return "editor"
	}
	return "viewer"
}

// Field is one rendered leaf value.
type Field struct {
	Path     string
	Policy   fieldpath.Policy
	Value    string
	Editable bool
}

// Attrs returns the binding attributes for the node holding the field. Viewer
// fields have none.
func (f Field) Attrs() template.HTMLAttr {
	if !f.Editable || f.Path == "" {
		return ""
	}
	return template.HTMLAttr(`data-path="` + html.EscapeString(f.Path) + `" data-format="` +
		f.Policy.String() + `" contenteditable="true"`)
}

// Content returns the node body: sanitized markup for rich fields, text
// (escaped by the template) for plain ones.
func (f Field) Content() any {
	if f.Policy == fieldpath.Rich {
		return template.HTML(richtext.SanitizeRich(f.Value)) //nolint:gosec // sanitized above
	}
	return f.Value
}

// Empty reports whether the field has no value.
func (f Field) Empty() bool {
	return f.Value == ""
}

// fieldBuilder builds Fields from validated references and keeps the first
// construction error, so a renderer can build a whole view and check once.
type fieldBuilder struct {
	doc  *types.Document
	mode Mode
	err  error
}

func (b *fieldBuilder) field(ref fieldpath.Ref, err error) Field {
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return Field{}
	}
	value, err := ref.Get(b.doc)
	if err != nil && b.err == nil {
		b.err = err
	}
	return Field{
		Path:     ref.String(),
		Policy:   ref.Policy(),
		Value:    value,
		Editable: b.mode == ModeEditor,
	}
}

func (b *fieldBuilder) profile(name string) Field {
	return b.field(fieldpath.Profile(name))
}

func (b *fieldBuilder) summary() Field {
	return b.field(fieldpath.Summary(), nil)
}

func (b *fieldBuilder) item(section string, index int, name string) Field {
	return b.field(fieldpath.Item(b.doc, section, index, name))
}

func (b *fieldBuilder) bullets(section string, index int, n int) []Field {
	fields := make([]Field, 0, n)
	for j := 0; j < n; j++ {
		fields = append(fields, b.field(fieldpath.Bullet(b.doc, section, index, j)))
	}
	return fields
}

// title builds the editable section header. Keys that cannot form a title
// path still render, just without binding.
func (b *fieldBuilder) title(key string) Field {
	f := Field{Value: b.doc.Title(key), Policy: fieldpath.Plain}
	ref, err := fieldpath.Title(key)
	if err != nil {
		return f
	}
	f.Path = ref.String()
	f.Editable = b.mode == ModeEditor
	return f
}
