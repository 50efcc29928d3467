// Package editor owns the single mutable résumé document of an editing
// session and implements every state transition the editor page can trigger.
package editor

import "errors"

var (
	// ErrNoSelection is returned by ApplyToSelection when nothing is selected.
	ErrNoSelection = errors.New("please select some text first")
	// ErrOutsideRegion is returned when a selection is not inside a stylable
	// résumé field.
	ErrOutsideRegion = errors.New("please select text inside the resume")
	// ErrLayoutMismatch is returned when a reorder would add or drop sections.
	ErrLayoutMismatch = errors.New("layout must contain exactly the current sections")
	// ErrInvalidScale is returned for non-positive or non-finite scale factors.
	ErrInvalidScale = errors.New("font scale must be a positive number")
	// ErrNoBullets is returned when adding a bullet to a section without bullets.
	ErrNoBullets = errors.New("section has no bullet lists")
)

// UserError marks errors that should be shown to the user as a notice.
func UserError(err error) bool {
	return errors.Is(err, ErrNoSelection) || errors.Is(err, ErrOutsideRegion)
}
