// Package types provides type definitions for the résumé document shared by the
// renderers, the editor session and the export paths.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// Section keys. A section key names both the top-level document member and the
// entry used in settings.titles and settings.layout.
const (
	SectionSummary     = "summary"
	SectionExperience  = "experience"
	SectionEducation   = "education"
	SectionSkills      = "skills"
	SectionProjects    = "projects"
	SectionEngagements = "engagements"
)

// DefaultFontScale is the multiplier used when settings.fontScale is absent.
const DefaultFontScale = 1.0

// Conventional slider bounds for settings.fontScale.
const (
	MinFontScale = 0.8
	MaxFontScale = 1.3
)

// Document is the full résumé tree loaded from resume.json.
type Document struct {
	Profile     Profile      `json:"profile"`
	Summary     string       `json:"summary"`
	Experience  []Experience `json:"experience" validate:"dive"`
	Education   []Education  `json:"education"`
	Skills      []Skill      `json:"skills"`
	Projects    []Project    `json:"projects"`
	Engagements []Engagement `json:"engagements"`
	Settings    Settings     `json:"settings"`
}

// Profile holds the header fields.
type Profile struct {
	Name     string `json:"name" validate:"required"`
	Title    string `json:"title"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	LinkedIn string `json:"linkedin"`
}

// Experience is one role in the experience section.
type Experience struct {
	Role        string   `json:"role" validate:"required"`
	Company     string   `json:"company"`
	Duration    string   `json:"duration"`
	Location    string   `json:"location"`
	Description string   `json:"description,omitempty"`
	Bullets     []string `json:"bullets"`
}

// Education is one entry in the education section.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Location    string `json:"location"`
	Year        string `json:"year"`
	Details     string `json:"details"`
}

// Skill is one category line in the skills section. Items is a single
// free-form string, not a list.
type Skill struct {
	Category string `json:"category"`
	Items    string `json:"items"`
}

// Project is one entry in the projects section.
type Project struct {
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Duration    string   `json:"duration"`
	Description string   `json:"description"`
	Bullets     []string `json:"bullets,omitempty"`
}

// Engagement is one entry in the engagements section. Description may
// contain newlines.
type Engagement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Settings holds presentation state persisted alongside the content.
type Settings struct {
	Titles    map[string]string `json:"titles"`
	Layout    Layout            `json:"layout"`
	FontScale float64           `json:"fontScale" validate:"gte=0"`
}

// Layout is the ordered assignment of section keys to the two columns.
type Layout struct {
	Left  []string `json:"left"`
	Right []string `json:"right"`
}

// DefaultLayout returns the column assignment used when a document carries none.
func DefaultLayout() Layout {
	return Layout{
		Left:  []string{SectionSummary, SectionExperience},
		Right: []string{SectionEducation, SectionSkills, SectionProjects, SectionEngagements},
	}
}

// Keys returns left then right, in order, duplicates included.
func (l Layout) Keys() []string {
	keys := make([]string, 0, len(l.Left)+len(l.Right))
	keys = append(keys, l.Left...)
	return append(keys, l.Right...)
}

// EffectiveLayout returns settings.layout, or DefaultLayout when both columns are empty.
func (d *Document) EffectiveLayout() Layout {
	if len(d.Settings.Layout.Left) == 0 && len(d.Settings.Layout.Right) == 0 {
		return DefaultLayout()
	}
	return d.Settings.Layout
}

// EffectiveFontScale returns settings.fontScale, or DefaultFontScale when unset.
func (d *Document) EffectiveFontScale() float64 {
	if d.Settings.FontScale <= 0 {
		return DefaultFontScale
	}
	return d.Settings.FontScale
}

// Title resolves the display label for a section key, falling back to the key itself.
func (d *Document) Title(key string) string {
	if t, ok := d.Settings.Titles[key]; ok && t != "" {
		return t
	}
	return key
}

// SetTitle stores a display label, allocating the titles map if needed.
func (d *Document) SetTitle(key, title string) {
	if d.Settings.Titles == nil {
		d.Settings.Titles = make(map[string]string)
	}
	d.Settings.Titles[key] = title
}

// ItemCount returns the number of items in a list section. ok is false for
// keys that do not name a list section.
func (d *Document) ItemCount(key string) (n int, ok bool) {
	switch key {
	case SectionExperience:
		return len(d.Experience), true
	case SectionEducation:
		return len(d.Education), true
	case SectionSkills:
		return len(d.Skills), true
	case SectionProjects:
		return len(d.Projects), true
	case SectionEngagements:
		return len(d.Engagements), true
	default:
		return 0, false
	}
}

// IsSection reports whether key names a renderable section.
func IsSection(key string) bool {
	switch key {
	case SectionSummary, SectionExperience, SectionEducation, SectionSkills, SectionProjects, SectionEngagements:
		return true
	}
	return false
}

// Validate checks struct-level constraints. Loading does not call it; strict
// mode and the validate command do.
func (d *Document) Validate() error {
	validate := validator.New()
	return validate.Struct(d)
}
