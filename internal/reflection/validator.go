package reflection

import (
	"errors"
	"strings"
)

const (
	EmptyReflectionMessage = "Please enter your reflection text"
	GenericFailureMessage  = "Failed to analyze emotion. Please check if the backend server is running."
)

var (
	ErrEmptyReflection    = errors.New(EmptyReflectionMessage)
	ErrSubmissionInFlight = errors.New("a reflection is already being analyzed")
	ErrSuperseded         = errors.New("submission superseded before its response arrived")
)

// Validate gates submission on emptiness only; it never alters raw.
func Validate(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return ErrEmptyReflection
	}
	return nil
}
