// Package export writes résumé documents out: the JSON download and the
// PDF print.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-studio/internal/types"
)

// DownloadFilename is the fixed name of the JSON download.
const DownloadFilename = "resume.json"

// Error represents a failed export
type Error struct {
	Format  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s export error: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s export error: %s", e.Format, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// MarshalDocument encodes doc as JSON indented with four spaces. HTML
// characters are written as-is since rich fields hold markup.
func MarshalDocument(doc *types.Document) ([]byte, error) {
	return MarshalIndented(doc)
}

// MarshalIndented encodes any JSON value in the download format. The CLI
// uses it for raw trees that bypass the typed document.
func MarshalIndented(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, &Error{Format: "json", Message: "failed to encode document", Cause: err}
	}
	return buf.Bytes(), nil
}

// Clone returns a deep copy of doc.
func Clone(doc *types.Document) (*types.Document, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to copy document: %w", err)
	}
	var out types.Document
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to copy document: %w", err)
	}
	return &out, nil
}
