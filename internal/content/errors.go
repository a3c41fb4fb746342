package content

import (
	"fmt"

	"github.com/jonathan/archinews-creator/internal/types"
)

// GenerationError reports a website copy generation that failed for one length.
// The whole batch is discarded when it is returned.
type GenerationError struct {
	Label   types.LengthLabel
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	prefix := "generation error"
	if e.Label != "" {
		prefix = fmt.Sprintf("generation error (%s)", e.Label)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
