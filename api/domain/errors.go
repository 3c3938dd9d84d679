package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalid indicates malformed input, e.g. an unrecognized quality value.
	ErrInvalid = errors.New("invalid")

	// ErrConflict indicates a uniqueness violation, e.g. a duplicate model name.
	ErrConflict = errors.New("conflict")
)

// GenerationError wraps a failure of the generation gateway for one
// combination. Inside a comparison batch it is downgraded to a skipped
// combination and never aborts the batch.
type GenerationError struct {
	ModelName string
	Err       error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation with model %s: %v", e.ModelName, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
