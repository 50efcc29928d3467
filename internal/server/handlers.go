package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/resume-studio/internal/binding"
	"github.com/jonathan/resume-studio/internal/editor"
	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/types"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// FieldRequest is one blur event: the captured content of a bound node.
type FieldRequest struct {
	Path  string `json:"path" validate:"required"`
	Value string `json:"value"`
}

// LayoutRequest is a completed drag. Pending carries the focused node's
// unsaved content so the re-render does not discard it.
type LayoutRequest struct {
	Left    []string       `json:"left" validate:"dive,required"`
	Right   []string       `json:"right" validate:"dive,required"`
	Pending []binding.Edit `json:"pending" validate:"dive"`
}

// LayoutResponse echoes the stored layout.
type LayoutResponse struct {
	Left  []string `json:"left"`
	Right []string `json:"right"`
}

// ScaleRequest sets the global font scale.
type ScaleRequest struct {
	Factor float64 `json:"factor" validate:"gt=0"`
}

// ScaleResponse carries the stored factor and the stylesheet to swap in.
type ScaleResponse struct {
	Factor float64 `json:"factor"`
	CSS    string  `json:"css"`
}

// SelectionRequest sizes a text range inside one bound node. An empty path
// means nothing was selected. Pending carries the node's content as the
// browser has it, so the offsets apply to the same text.
type SelectionRequest struct {
	Path    string         `json:"path"`
	Start   int            `json:"start" validate:"gte=0"`
	End     int            `json:"end" validate:"gte=0"`
	SizePt  float64        `json:"size_pt" validate:"gt=0,lte=200"`
	Pending []binding.Edit `json:"pending" validate:"dive"`
}

// BulletRequest appends a bullet to one experience or project item.
type BulletRequest struct {
	Section string `json:"section" validate:"required"`
	Index   int    `json:"index" validate:"gte=0"`
}

// BulletResponse carries the new bullet's path.
type BulletResponse struct {
	Path string `json:"path"`
}

// decode reads a JSON body into v and validates its tags.
func (s *Server) decode(r *http.Request, w http.ResponseWriter, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Field: "(body)", Message: "invalid JSON: " + err.Error()}
	}
	if err := s.validate.Struct(v); err != nil {
		return validationError(err)
	}
	return nil
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, mode rendering.Mode) {
	page, err := s.editor.Render(mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write([]byte(page)); err != nil {
		log.Printf("[server] error writing page: %v", err)
	}
}

// handleEditorPage serves the editable page
func (s *Server) handleEditorPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, rendering.ModeEditor)
}

// handleViewerPage serves the read-only page
func (s *Server) handleViewerPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, rendering.ModeViewer)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok", "session": s.editor.ID().String()})
}

// handleDocument downloads the current document as resume.json
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	data, err := s.editor.Download()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.DownloadFilename))
	if _, err := w.Write(data); err != nil {
		log.Printf("[server] error writing document: %v", err)
	}
}

// handleFields commits one edited node
func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	var req FieldRequest
	if err := s.decode(r, w, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	edit, err := s.editor.ApplyEdit(req.Path, req.Value)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, edit)
}

// handleLayout stores a new section order
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if err := s.decode(r, w, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.editor.Reorder(req.Left, req.Right, req.Pending); err != nil {
		s.writeError(w, r, err)
		return
	}

	doc, err := s.editor.Snapshot()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	layout := doc.EffectiveLayout()
	s.jsonResponse(w, http.StatusOK, LayoutResponse{Left: layout.Left, Right: layout.Right})
}

// handleScale stores the global font scale, clamped to the slider range
func (s *Server) handleScale(w http.ResponseWriter, r *http.Request) {
	var req ScaleRequest
	if err := s.decode(r, w, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	factor := min(max(req.Factor, types.MinFontScale), types.MaxFontScale)
	css, err := s.editor.SetScale(factor)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ScaleResponse{Factor: factor, CSS: css})
}

// handleSelection applies a font size to the selected range
func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if err := s.decode(r, w, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	sel := editor.Selection{Path: req.Path, Start: req.Start, End: req.End, Pending: req.Pending}
	edit, err := s.editor.ApplyToSelection(sel, req.SizePt)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, edit)
}

// handleBullets appends a placeholder bullet
func (s *Server) handleBullets(w http.ResponseWriter, r *http.Request) {
	var req BulletRequest
	if err := s.decode(r, w, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	path, err := s.editor.AddBullet(req.Section, req.Index)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, BulletResponse{Path: path})
}

// handleExportPDF prints the viewer page through headless Chrome
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if !s.pdfSlots.TryAcquire(1) {
		w.Header().Set("Retry-After", "5")
		s.writeError(w, r, ErrBusy)
		return
	}
	defer s.pdfSlots.Release(1)

	page, err := s.editor.Render(rendering.ModeViewer)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	pdf, err := export.PDF(r.Context(), page, s.pdfOptions)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("[server] error writing PDF: %v", err)
	}
}
