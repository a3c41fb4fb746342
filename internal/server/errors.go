package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/archinews-creator/internal/content"
	"github.com/jonathan/archinews-creator/internal/framing"
	"github.com/jonathan/archinews-creator/internal/session"
	"github.com/jonathan/archinews-creator/internal/store"
	"github.com/jonathan/archinews-creator/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		reqErr    *ErrValidation
		recordErr *types.ValidationError
		decodeErr *framing.DecodeError
		genErr    *content.GenerationError
	)

	switch {
	case errors.As(err, &reqErr), errors.As(err, &recordErr), errors.As(err, &decodeErr):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound), errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNoProject), errors.Is(err, session.ErrNoImage),
		errors.Is(err, session.ErrNoContent), errors.Is(err, session.ErrNoCaption):
		return http.StatusConflict
	case errors.As(err, &genErr):
		return http.StatusBadGateway
	default:
		// store.StorageError and anything unexpected
		return http.StatusInternalServerError
	}
}
