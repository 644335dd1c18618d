package mcp

import (
	"github.com/rpggio/qontract/internal/apierror"
	"github.com/rpggio/qontract/internal/localization"
)

// toolError maps a domain error to an APIError. The SDK reports it to the
// client as a tool result with isError set and text "CODE: message".
func (h *handler) toolError(err error, lang localization.Language) error {
	apiErr := apierror.Map(err, lang, h.messages)
	if apiErr.Code == apierror.CodeInternal {
		h.logger.Error("tool call failed", "error", err)
	}
	return apiErr
}
