package contract

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidForm indicates required form fields are missing.
	ErrInvalidForm = errors.New("invalid contract form")
	// ErrInvalidSignature indicates a malformed signature stroke or pad.
	ErrInvalidSignature = errors.New("invalid signature")
)

// FormError lists the required fields that were left blank.
type FormError struct {
	Missing []string
}

func (e *FormError) Error() string {
	return ErrInvalidForm.Error() + ": missing " + strings.Join(e.Missing, ", ")
}

func (e *FormError) Unwrap() error {
	return ErrInvalidForm
}
