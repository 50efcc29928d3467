package editor

import (
	"fmt"
	"log"
	"math"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/binding"
	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/fieldpath"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/styling"
	"github.com/jonathan/resume-studio/internal/types"
)

// PlaceholderBullet is the text of a newly added bullet.
const PlaceholderBullet = "New bullet"

// Editor is one editing session. All operations are serialized, so the
// document has a single writer at a time.
type Editor struct {
	id       uuid.UUID
	mu       sync.Mutex
	doc      *types.Document
	renderer *rendering.Renderer
}

// New starts a session over doc. The editor takes ownership of doc.
func New(doc *types.Document, renderer *rendering.Renderer) *Editor {
	return &Editor{id: uuid.New(), doc: doc, renderer: renderer}
}

// ID identifies the session in logs.
func (e *Editor) ID() uuid.UUID {
	return e.id
}

// Snapshot returns a deep copy of the current document.
func (e *Editor) Snapshot() (*types.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return export.Clone(e.doc)
}

// Render renders the current document as a full page.
func (e *Editor) Render(mode rendering.Mode) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.renderer.RenderString(e.doc, rendering.PageOptions{Mode: mode})
}

// ApplyEdit commits one blur event: raw content captured from the node at path.
func (e *Editor) ApplyEdit(path, raw string) (binding.Edit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	edit, err := binding.Apply(e.doc, path, raw)
	if err != nil {
		log.Printf("[editor] session=%s edit %q rejected: %v", e.id, path, err)
		return binding.Edit{}, err
	}
	return edit, nil
}

// Reorder commits pending edits, then replaces the layout. left and right
// together must hold exactly the keys of the current layout; otherwise
// nothing changes.
func (e *Editor) Reorder(left, right []string, pending []binding.Edit) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	current := e.doc.EffectiveLayout().Keys()
	next := types.Layout{Left: slices.Clone(left), Right: slices.Clone(right)}
	if !sameKeys(current, next.Keys()) {
		return fmt.Errorf("%w: have %v, got %v", ErrLayoutMismatch, current, next.Keys())
	}

	e.applyPending(pending)

	if next.Left == nil {
		next.Left = []string{}
	}
	if next.Right == nil {
		next.Right = []string{}
	}
	e.doc.Settings.Layout = next
	return nil
}

// applyPending writes edits the page had not committed yet. Callers hold mu.
func (e *Editor) applyPending(pending []binding.Edit) {
	for _, p := range pending {
		if _, err := binding.Apply(e.doc, p.Path, p.Value); err != nil {
			log.Printf("[editor] session=%s pending edit %q dropped: %v", e.id, p.Path, err)
		}
	}
}

// sameKeys reports whether a and b hold the same keys with the same
// multiplicity.
func sameKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, k := range a {
		counts[k]++
	}
	for _, k := range b {
		counts[k]--
		if counts[k] < 0 {
			return false
		}
	}
	return true
}

// SetScale stores factor in settings.fontScale and returns the stylesheet
// for it.
func (e *Editor) SetScale(factor float64) (string, error) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return "", fmt.Errorf("%w: %v", ErrInvalidScale, factor)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.Settings.FontScale = factor
	return styling.ScaleStylesheet(factor), nil
}

// Selection addresses a text range inside one bound node, in rune offsets
// into the node's text content. Pending carries the node's unsaved content,
// which the offsets were measured against.
type Selection struct {
	Path    string         `json:"path"`
	Start   int            `json:"start" validate:"gte=0"`
	End     int            `json:"end" validate:"gte=0"`
	Pending []binding.Edit `json:"pending,omitempty" validate:"dive"`
}

// ApplyToSelection wraps the selected text in a font-size span and stores
// the node's new markup. Offsets refer to the node's pending content when the
// page sent one; pending edits are committed only when the wrap succeeds.
// Selections in plain fields are outside the stylable region.
func (e *Editor) ApplyToSelection(sel Selection, sizePt float64) (binding.Edit, error) {
	if sel.Path == "" || sel.Start == sel.End {
		return binding.Edit{}, ErrNoSelection
	}
	if sizePt <= 0 || math.IsNaN(sizePt) || math.IsInf(sizePt, 0) {
		return binding.Edit{}, fmt.Errorf("invalid font size: %v", sizePt)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ref, err := fieldpath.ParseRef(e.doc, sel.Path)
	if err != nil {
		return binding.Edit{}, fmt.Errorf("%w: %v", ErrOutsideRegion, err)
	}
	if ref.Policy() != fieldpath.Rich {
		return binding.Edit{}, fmt.Errorf("%w: %s does not support styling", ErrOutsideRegion, sel.Path)
	}

	current, err := ref.Get(e.doc)
	if err != nil {
		return binding.Edit{}, fmt.Errorf("%w: %v", ErrOutsideRegion, err)
	}
	for _, p := range sel.Pending {
		if p.Path == sel.Path || p.Path == ref.String() {
			current = binding.Project(fieldpath.Rich, p.Value)
		}
	}
	wrapped, err := styling.WrapRange(current, sel.Start, sel.End, styling.FontSize(sizePt))
	if err != nil {
		return binding.Edit{}, fmt.Errorf("%w: %v", ErrOutsideRegion, err)
	}

	e.applyPending(sel.Pending)
	edit, err := binding.Apply(e.doc, sel.Path, wrapped)
	if err != nil {
		return binding.Edit{}, err
	}
	log.Printf("[editor] session=%s styled %s [%d,%d) at %s", e.id, sel.Path, sel.Start, sel.End, styling.FormatPoints(sizePt))
	return edit, nil
}

// AddBullet appends PlaceholderBullet to item index of section and returns
// the new bullet's path. Callers must re-render before trusting other paths.
func (e *Editor) AddBullet(section string, index int) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var bullets *[]string
	switch section {
	case types.SectionExperience:
		if index < 0 || index >= len(e.doc.Experience) {
			return "", fmt.Errorf("%w: %s.%d", fieldpath.ErrOutOfRange, section, index)
		}
		bullets = &e.doc.Experience[index].Bullets
	case types.SectionProjects:
		if index < 0 || index >= len(e.doc.Projects) {
			return "", fmt.Errorf("%w: %s.%d", fieldpath.ErrOutOfRange, section, index)
		}
		bullets = &e.doc.Projects[index].Bullets
	default:
		return "", fmt.Errorf("%w: %s", ErrNoBullets, section)
	}

	*bullets = append(*bullets, PlaceholderBullet)
	ref, err := fieldpath.Bullet(e.doc, section, index, len(*bullets)-1)
	if err != nil {
		return "", err
	}
	return ref.String(), nil
}

// Download serializes the current document the way the download button saves it.
func (e *Editor) Download() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return export.MarshalDocument(e.doc)
}
