package dashboard

import "errors"

var (
	// ErrInvalidFilter indicates a filter bound that is not a date.
	ErrInvalidFilter = errors.New("invalid dashboard filter")
	// ErrInvalidInput indicates an incomplete save request.
	ErrInvalidInput = errors.New("invalid dashboard contract")
)
