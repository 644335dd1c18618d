package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrWizardNotFound indicates the wizard doesn't exist.
	ErrWizardNotFound = errors.New("wizard not found")
	// ErrInvalidStep indicates the operation is not allowed in the current step.
	ErrInvalidStep = errors.New("operation not allowed in current step")
	// ErrBusy indicates a generation request is already in flight.
	ErrBusy = errors.New("contract generation already in progress")
)

// GenerationError is returned when submitting the form did not produce a
// draft. Message is the localized text shown to the user.
type GenerationError struct {
	Err        error
	MessageKey string
	Message    string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.MessageKey, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
