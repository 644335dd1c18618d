package generation

import "errors"

var (
	// ErrGenerationFailed indicates the generation service could not be
	// reached or returned an error.
	ErrGenerationFailed = errors.New("contract generation failed")
	// ErrEmptyResult indicates the service replied without a usable draft.
	ErrEmptyResult = errors.New("contract generation returned no result")
	// ErrNotConfigured indicates no API credential was supplied. It is a
	// generation failure from the caller's point of view.
	ErrNotConfigured = errors.New("generation service not configured: set QONTRACT_GEMINI_API_KEY")
)
