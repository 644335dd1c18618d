// Package apierror maps domain errors to the codes and localized messages
// returned by the REST API and the MCP tools.
package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rpggio/qontract/internal/domain/catalog"
	"github.com/rpggio/qontract/internal/domain/contract"
	"github.com/rpggio/qontract/internal/domain/dashboard"
	"github.com/rpggio/qontract/internal/domain/workflow"
	"github.com/rpggio/qontract/internal/export"
	"github.com/rpggio/qontract/internal/generation"
	"github.com/rpggio/qontract/internal/localization"
)

// Error codes.
const (
	CodeWizardNotFound   = "WIZARD_NOT_FOUND"
	CodeTemplateNotFound = "TEMPLATE_NOT_FOUND"
	CodeInvalidStep      = "INVALID_STEP"
	CodeInvalidForm      = "INVALID_FORM"
	CodeBusy             = "BUSY"
	CodeGenerationFailed = "GENERATION_FAILED"
	CodeEmptyResult      = "EMPTY_RESULT"
	CodeNotConfigured    = "NOT_CONFIGURED"
	CodeInvalidFilter    = "INVALID_FILTER"
	CodeInvalidLanguage  = "INVALID_LANGUAGE"
	CodeInvalidSignature = "INVALID_SIGNATURE"
	CodeDocumentTooLong  = "DOCUMENT_TOO_LONG"
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeInternal         = "INTERNAL"
)

// Translator looks up localized strings.
type Translator interface {
	T(lang localization.Language, key string) string
}

// APIError is the error body sent to clients.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
	Status       int    `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type rule struct {
	target error
	code   string
	status int
	key    string
	hint   string
}

var rules = []rule{
	{workflow.ErrWizardNotFound, CodeWizardNotFound, http.StatusNotFound, "errorNotFound", "Start a new contract"},
	{catalog.ErrTemplateNotFound, CodeTemplateNotFound, http.StatusNotFound, "errorNotFound", "Call list_templates for valid IDs"},
	{workflow.ErrInvalidStep, CodeInvalidStep, http.StatusConflict, "errorInvalidStep", "Fetch the draft to see its current step"},
	{workflow.ErrBusy, CodeBusy, http.StatusConflict, "errorBusy", "Wait for the running generation to finish"},
	{contract.ErrInvalidForm, CodeInvalidForm, http.StatusUnprocessableEntity, "errorRequiredFields", ""},
	{contract.ErrInvalidSignature, CodeInvalidSignature, http.StatusBadRequest, "errorInvalidSignature", "Points must lie in the unit square"},
	{export.ErrDoesNotFit, CodeDocumentTooLong, http.StatusUnprocessableEntity, "errorDocumentTooLong", "Shorten the clauses or additional terms and generate again"},
	{dashboard.ErrInvalidFilter, CodeInvalidFilter, http.StatusBadRequest, "errorInvalidFilter", ""},
	{dashboard.ErrInvalidInput, CodeInvalidRequest, http.StatusBadRequest, "errorInvalidRequest", ""},
	{localization.ErrUnsupportedLanguage, CodeInvalidLanguage, http.StatusBadRequest, "errorInvalidLanguage", "Use id or en"},
	{generation.ErrNotConfigured, CodeNotConfigured, http.StatusServiceUnavailable, "errorNotConfigured", "Set QONTRACT_GEMINI_API_KEY"},
	{generation.ErrEmptyResult, CodeEmptyResult, http.StatusBadGateway, "errorGeneratingCheckInput", ""},
	{generation.ErrGenerationFailed, CodeGenerationFailed, http.StatusBadGateway, "errorGenerating", ""},
}

// Map converts err to an APIError with a message in lang. Unknown errors
// map to INTERNAL.
func Map(err error, lang localization.Language, messages Translator) *APIError {
	if err == nil {
		return nil
	}

	for _, r := range rules {
		if !errors.Is(err, r.target) {
			continue
		}
		apiErr := &APIError{
			Code:         r.code,
			Status:       r.status,
			Message:      messages.T(lang, r.key),
			RecoveryHint: r.hint,
		}
		var formErr *contract.FormError
		if errors.As(err, &formErr) {
			apiErr.Details = map[string]any{"missing": formErr.Missing}
		}
		var genErr *workflow.GenerationError
		if errors.As(err, &genErr) && genErr.Message != "" {
			apiErr.Message = genErr.Message
		}
		return apiErr
	}

	var genErr *workflow.GenerationError
	if errors.As(err, &genErr) {
		return &APIError{Code: CodeGenerationFailed, Status: http.StatusBadGateway, Message: genErr.Message}
	}
	return Internal(lang, messages)
}

// Internal is the error returned for failures clients cannot act on.
func Internal(lang localization.Language, messages Translator) *APIError {
	return &APIError{
		Code:    CodeInternal,
		Status:  http.StatusInternalServerError,
		Message: messages.T(lang, "errorInternal"),
	}
}

// InvalidRequest reports a malformed request body or parameter.
func InvalidRequest(lang localization.Language, messages Translator, details any) *APIError {
	return &APIError{
		Code:    CodeInvalidRequest,
		Status:  http.StatusBadRequest,
		Message: messages.T(lang, "errorInvalidRequest"),
		Details: details,
	}
}
