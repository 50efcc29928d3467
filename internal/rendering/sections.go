package rendering

import (
	"html/template"
	"io"
	"strconv"

	"github.com/jonathan/resume-studio/internal/types"
)

// SectionRenderer renders the body of one section.
type SectionRenderer interface {
	Render(w io.Writer, doc *types.Document, key string, mode Mode) error
}

// sectionFunc adapts a function to SectionRenderer.
type sectionFunc func(w io.Writer, doc *types.Document, key string, mode Mode) error

// Render calls f.
func (f sectionFunc) Render(w io.Writer, doc *types.Document, key string, mode Mode) error {
	return f(w, doc, key, mode)
}

// templateSection builds a view model and executes the named template.
type templateSection struct {
	tmpl  *template.Template
	name  string
	build func(b *fieldBuilder, key string) any
}

func (s templateSection) Render(w io.Writer, doc *types.Document, key string, mode Mode) error {
	b := &fieldBuilder{doc: doc, mode: mode}
	view := s.build(b, key)
	if b.err != nil {
		return &RenderError{Section: key, Message: "failed to bind fields", Cause: b.err}
	}
	if err := s.tmpl.ExecuteTemplate(w, s.name, view); err != nil {
		return &TemplateError{Message: "failed to execute section template " + s.name, Cause: err}
	}
	return nil
}

func defaultSections(tmpl *template.Template) map[string]SectionRenderer {
	return map[string]SectionRenderer{
		types.SectionSummary:     templateSection{tmpl: tmpl, name: "summary", build: buildSummary},
		types.SectionExperience:  templateSection{tmpl: tmpl, name: "experience", build: buildExperience},
		types.SectionEducation:   templateSection{tmpl: tmpl, name: "education", build: buildEducation},
		types.SectionSkills:      templateSection{tmpl: tmpl, name: "skills", build: buildSkills},
		types.SectionProjects:    templateSection{tmpl: tmpl, name: "projects", build: buildProjects},
		types.SectionEngagements: templateSection{tmpl: tmpl, name: "engagements", build: buildEngagements},
	}
}

type summaryView struct {
	Text Field
}

func buildSummary(b *fieldBuilder, _ string) any {
	return summaryView{Text: b.summary()}
}

type experienceView struct {
	Editable bool
	Items    []experienceItem
}

type experienceItem struct {
	Role, Duration, Company, Location, Description Field
	Bullets                                        []Field
	AddBullet                                      string
}

func buildExperience(b *fieldBuilder, key string) any {
	view := experienceView{Editable: b.mode == ModeEditor}
	for i, e := range b.doc.Experience {
		view.Items = append(view.Items, experienceItem{
			Role:        b.item(key, i, "role"),
			Duration:    b.item(key, i, "duration"),
			Company:     b.item(key, i, "company"),
			Location:    b.item(key, i, "location"),
			Description: b.item(key, i, "description"),
			Bullets:     b.bullets(key, i, len(e.Bullets)),
			AddBullet:   key + "." + strconv.Itoa(i),
		})
	}
	return view
}

type educationItem struct {
	Degree, Institution, Location, Year, Details Field
}

func buildEducation(b *fieldBuilder, key string) any {
	var items []educationItem
	for i := range b.doc.Education {
		items = append(items, educationItem{
			Degree:      b.item(key, i, "degree"),
			Institution: b.item(key, i, "institution"),
			Location:    b.item(key, i, "location"),
			Year:        b.item(key, i, "year"),
			Details:     b.item(key, i, "details"),
		})
	}
	return struct{ Items []educationItem }{items}
}

type skillItem struct {
	Category, Items Field
}

func buildSkills(b *fieldBuilder, key string) any {
	var items []skillItem
	for i := range b.doc.Skills {
		items = append(items, skillItem{
			Category: b.item(key, i, "category"),
			Items:    b.item(key, i, "items"),
		})
	}
	return struct{ Items []skillItem }{items}
}

type projectView struct {
	Editable bool
	Items    []projectItem
}

type projectItem struct {
	Title, Subtitle, Duration, Description Field
	Bullets                                []Field
	AddBullet                              string
}

func buildProjects(b *fieldBuilder, key string) any {
	view := projectView{Editable: b.mode == ModeEditor}
	for i, p := range b.doc.Projects {
		view.Items = append(view.Items, projectItem{
			Title:       b.item(key, i, "title"),
			Subtitle:    b.item(key, i, "subtitle"),
			Duration:    b.item(key, i, "duration"),
			Description: b.item(key, i, "description"),
			Bullets:     b.bullets(key, i, len(p.Bullets)),
			AddBullet:   key + "." + strconv.Itoa(i),
		})
	}
	return view
}

type engagementItem struct {
	Title, Description Field
}

func buildEngagements(b *fieldBuilder, key string) any {
	var items []engagementItem
	for i := range b.doc.Engagements {
		items = append(items, engagementItem{
			Title:       b.item(key, i, "title"),
			Description: b.item(key, i, "description"),
		})
	}
	return struct{ Items []engagementItem }{items}
}
