package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/url"
	"strings"

	"github.com/jonathan/resume-studio/internal/styling"
	"github.com/jonathan/resume-studio/internal/types"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets/resume.css
var baseCSS string

//go:embed assets/print.css
var printCSS string

// PrintCSS returns the print-media stylesheet shipped with every page.
func PrintCSS() string {
	return printCSS
}

// Renderer holds the parsed templates and the section renderer registry.
// It is safe for concurrent use once constructed; register is not.
type Renderer struct {
	tmpl     *template.Template
	sections map[string]SectionRenderer
}

// New parses the embedded templates and registers the built-in sections.
func New() (*Renderer, error) {
	tmpl, err := template.New("resume").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse templates", Cause: err}
	}
	return &Renderer{tmpl: tmpl, sections: defaultSections(tmpl)}, nil
}

// register installs or replaces the renderer for a section key.
func (r *Renderer) register(key string, s SectionRenderer) {
	r.sections[key] = s
}

// Columns is the composed body of both columns.
type Columns struct {
	Left   template.HTML
	Right  template.HTML
	Failed []string
}

type sectionView struct {
	Key    string
	Title  Field
	Body   template.HTML
	Failed bool
}

// Compose renders every section named by the effective layout, left column
// first. A key listed twice renders twice. A key with no registered renderer
// renders as an empty section. A section whose renderer fails is logged and
// rendered empty so the rest of the layout still renders.
func (r *Renderer) Compose(doc *types.Document, mode Mode) *Columns {
	layout := doc.EffectiveLayout()
	cols := &Columns{}

	var left, right bytes.Buffer
	for _, key := range layout.Left {
		if !r.writeSection(&left, doc, key, mode) {
			cols.Failed = append(cols.Failed, key)
		}
	}
	for _, key := range layout.Right {
		if !r.writeSection(&right, doc, key, mode) {
			cols.Failed = append(cols.Failed, key)
		}
	}

	cols.Left = template.HTML(left.String())   //nolint:gosec // produced by html/template
	cols.Right = template.HTML(right.String()) //nolint:gosec // produced by html/template
	return cols
}

// writeSection reports false when the section body failed to render.
func (r *Renderer) writeSection(w io.Writer, doc *types.Document, key string, mode Mode) bool {
	b := &fieldBuilder{doc: doc, mode: mode}
	view := sectionView{Key: key, Title: b.title(key)}

	body, err := r.renderBody(doc, key, mode)
	if err != nil {
		log.Printf("[render] section %q failed: %v", key, err)
		view.Failed = true
	} else {
		view.Body = body
	}

	if err := r.tmpl.ExecuteTemplate(w, "section", view); err != nil {
		log.Printf("[render] section %q wrapper failed: %v", key, err)
		return false
	}
	return !view.Failed
}

func (r *Renderer) renderBody(doc *types.Document, key string, mode Mode) (body template.HTML, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &RenderError{Section: key, Message: fmt.Sprintf("panic: %v", rec)}
		}
	}()

	s, ok := r.sections[key]
	if !ok {
		return "", nil
	}
	var buf bytes.Buffer
	if err := s.Render(&buf, doc, key, mode); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //nolint:gosec // produced by html/template
}

// PageOptions configures RenderPage.
type PageOptions struct {
	Mode Mode
}

type reorderItem struct {
	Key   string
	Label string
}

type pageView struct {
	Mode          string
	Editable      bool
	Name, Title   Field
	Phone, Email  Field
	LinkedIn      Field
	LinkedInLabel string
	Left, Right   template.HTML
	BaseCSS       template.CSS
	PrintCSS      template.CSS
	ScaleCSS      template.CSS
	FontScale     float64
	MinScale      float64
	MaxScale      float64
	Reorder       struct{ Left, Right []reorderItem }
}

// RenderPage writes a complete HTML page for doc and returns the composed
// columns, including any sections that failed.
func (r *Renderer) RenderPage(w io.Writer, doc *types.Document, opts PageOptions) (*Columns, error) {
	cols := r.Compose(doc, opts.Mode)

	b := &fieldBuilder{doc: doc, mode: opts.Mode}
	view := pageView{
		Mode:          opts.Mode.String(),
		Editable:      opts.Mode == ModeEditor,
		Name:          b.profile("name"),
		Title:         b.profile("title"),
		Phone:         b.profile("phone"),
		Email:         b.profile("email"),
		LinkedIn:      b.profile("linkedin"),
		LinkedInLabel: LinkedInLabel(doc.Profile.LinkedIn),
		Left:          cols.Left,
		Right:         cols.Right,
		BaseCSS:       template.CSS(baseCSS),                                           //nolint:gosec // embedded asset
		PrintCSS:      template.CSS(printCSS),                                          //nolint:gosec // embedded asset
		ScaleCSS:      template.CSS(styling.ScaleStylesheet(doc.EffectiveFontScale())), //nolint:gosec // generated from numbers
		FontScale:     doc.EffectiveFontScale(),
		MinScale:      types.MinFontScale,
		MaxScale:      types.MaxFontScale,
	}
	if b.err != nil {
		return cols, &RenderError{Message: "failed to bind header fields", Cause: b.err}
	}

	layout := doc.EffectiveLayout()
	for _, key := range layout.Left {
		view.Reorder.Left = append(view.Reorder.Left, reorderItem{Key: key, Label: reorderLabel(doc, key)})
	}
	for _, key := range layout.Right {
		view.Reorder.Right = append(view.Reorder.Right, reorderItem{Key: key, Label: reorderLabel(doc, key)})
	}

	if err := r.tmpl.ExecuteTemplate(w, "page.html", view); err != nil {
		return cols, &TemplateError{Message: "failed to execute page template", Cause: err}
	}
	return cols, nil
}

// RenderString renders a page to a string.
func (r *Renderer) RenderString(doc *types.Document, opts PageOptions) (string, error) {
	var sb strings.Builder
	if _, err := r.RenderPage(&sb, doc, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// reorderLabel is the reorder panel label: the configured title, else the
// upper-cased key.
func reorderLabel(doc *types.Document, key string) string {
	if t := doc.Settings.Titles[key]; t != "" {
		return t
	}
	return strings.ToUpper(key)
}

// LinkedInLabel shortens a profile URL for display ("linkedin.com/in/name").
func LinkedInLabel(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	host := strings.TrimPrefix(u.Host, "www.")
	return host + strings.TrimSuffix(u.Path, "/")
}
