package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-studio/internal/editor"
	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/fieldpath"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrBusy indicates every PDF export slot is taken.
var ErrBusy = errors.New("PDF export is busy, try again shortly")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var resolveErr *fieldpath.ResolveError
	var exportErr *export.Error

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case editor.UserError(err), errors.Is(err, editor.ErrInvalidScale):
		return http.StatusUnprocessableEntity
	case errors.Is(err, editor.ErrLayoutMismatch):
		return http.StatusConflict
	case errors.As(err, &resolveErr), errors.Is(err, fieldpath.ErrOutOfRange), errors.Is(err, editor.ErrNoBullets):
		return http.StatusBadRequest
	case errors.Is(err, ErrBusy):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &exportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// noticeText returns the user-facing sentence for a notice error, without
// the diagnostic detail wrapped around it.
func noticeText(err error) string {
	for _, sentinel := range []error{editor.ErrNoSelection, editor.ErrOutsideRegion, editor.ErrInvalidScale} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

// validationError converts the first struct validation failure into an
// ErrValidation.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: fe.Field(), Message: fmt.Sprintf("failed %q check", fe.Tag())}
	}
	return &ErrValidation{Field: "(body)", Message: err.Error()}
}
