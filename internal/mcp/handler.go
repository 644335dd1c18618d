package mcp

import (
	"context"
	"encoding/base64"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/qontract/internal/domain/catalog"
	"github.com/rpggio/qontract/internal/domain/contract"
	"github.com/rpggio/qontract/internal/domain/dashboard"
	"github.com/rpggio/qontract/internal/domain/workflow"
	"github.com/rpggio/qontract/internal/localization"
)

// handler adapts tool calls to the domain services.
type handler struct {
	wizards   WizardService
	contracts ContractService
	messages  Messages
	logger    *slog.Logger
}

// language resolves an optional language argument. Unknown codes are an
// error rather than a silent fallback.
func (h *handler) language(code string) (localization.Language, error) {
	if code == "" {
		return h.messages.Default(), nil
	}
	return localization.ParseLanguage(code)
}

func (h *handler) listTemplates(_ context.Context, _ *sdkmcp.CallToolRequest, in LanguageParams) (*sdkmcp.CallToolResult, TemplatesResponse, error) {
	lang, err := h.language(in.Language)
	if err != nil {
		return nil, TemplatesResponse{}, h.toolError(err, h.messages.Default())
	}
	return nil, TemplatesResponse{Language: lang, Templates: catalog.Localized(lang)}, nil
}

func (h *handler) getLabels(_ context.Context, _ *sdkmcp.CallToolRequest, in LanguageParams) (*sdkmcp.CallToolResult, LabelsResponse, error) {
	lang, err := h.language(in.Language)
	if err != nil {
		return nil, LabelsResponse{}, h.toolError(err, h.messages.Default())
	}
	return nil, LabelsResponse{Language: lang, Labels: h.messages.Labels(lang)}, nil
}

func (h *handler) listContracts(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListContractsParams) (*sdkmcp.CallToolResult, ContractsResponse, error) {
	lang := h.messages.Default()
	q, err := dashboard.ParseQuery(in.Query, in.Start, in.End)
	if err != nil {
		return nil, ContractsResponse{}, h.toolError(err, lang)
	}
	contracts, err := h.contracts.List(ctx, getTenantID(ctx), q)
	if err != nil {
		return nil, ContractsResponse{}, h.toolError(err, lang)
	}
	resp := make([]ContractSummary, 0, len(contracts))
	for _, c := range contracts {
		resp = append(resp, newContractSummary(c))
	}
	return nil, ContractsResponse{Contracts: resp}, nil
}

func (h *handler) startContract(ctx context.Context, _ *sdkmcp.CallToolRequest, in LanguageParams) (*sdkmcp.CallToolResult, DraftResponse, error) {
	lang, err := h.language(in.Language)
	if err != nil {
		return nil, DraftResponse{}, h.toolError(err, h.messages.Default())
	}
	w, err := h.wizards.Start(ctx, getTenantID(ctx), lang)
	return h.view(w, err)
}

func (h *handler) getDraft(ctx context.Context, _ *sdkmcp.CallToolRequest, in WizardParams) (*sdkmcp.CallToolResult, DraftResponse, error) {
	w, err := h.wizards.Get(ctx, getTenantID(ctx), in.WizardID)
	return h.view(w, err)
}

func (h *handler) selectTemplate(ctx context.Context, _ *sdkmcp.CallToolRequest, in SelectTemplateParams) (*sdkmcp.CallToolResult, DraftResponse, error) {
	w, err := h.wizards.SelectTemplate(ctx, getTenantID(ctx), in.WizardID, in.TemplateID)
	return h.view(w, err)
}

func (h *handler) submitForm(ctx context.Context, _ *sdkmcp.CallToolRequest, in SubmitFormParams) (*sdkmcp.CallToolResult, DraftResponse, error) {
	w, err := h.wizards.SubmitForm(ctx, getTenantID(ctx), in.WizardID, in.Form)
	return h.view(w, err)
}

func (h *handler) goBack(ctx context.Context, _ *sdkmcp.CallToolRequest, in WizardParams) (*sdkmcp.CallToolResult, DraftResponse, error) {
	w, err := h.wizards.Back(ctx, getTenantID(ctx), in.WizardID)
	return h.view(w, err)
}

func (h *handler) setLanguage(ctx context.Context, _ *sdkmcp.CallToolRequest, in SetLanguageParams) (*sdkmcp.CallToolResult, DraftResponse, error) {
	lang, err := localization.ParseLanguage(in.Language)
	if err != nil {
		return nil, DraftResponse{}, h.toolError(err, h.messages.Default())
	}
	w, err := h.wizards.SetLanguage(ctx, getTenantID(ctx), in.WizardID, lang)
	return h.view(w, err)
}

func (h *handler) addStroke(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddStrokeParams) (*sdkmcp.CallToolResult, DraftResponse, error) {
	pad, err := contract.ParsePad(in.Pad)
	if err != nil {
		return nil, DraftResponse{}, h.toolError(err, h.messages.Default())
	}
	w, err := h.wizards.AddStroke(ctx, getTenantID(ctx), in.WizardID, pad, contract.Stroke{Points: in.Points})
	return h.view(w, err)
}

func (h *handler) clearSignature(ctx context.Context, _ *sdkmcp.CallToolRequest, in PadParams) (*sdkmcp.CallToolResult, DraftResponse, error) {
	pad, err := contract.ParsePad(in.Pad)
	if err != nil {
		return nil, DraftResponse{}, h.toolError(err, h.messages.Default())
	}
	w, err := h.wizards.ClearSignature(ctx, getTenantID(ctx), in.WizardID, pad)
	return h.view(w, err)
}

func (h *handler) exportContract(ctx context.Context, _ *sdkmcp.CallToolRequest, in WizardParams) (*sdkmcp.CallToolResult, ExportResponse, error) {
	data, err := h.wizards.Export(ctx, getTenantID(ctx), in.WizardID)
	if err != nil {
		return nil, ExportResponse{}, h.toolError(err, h.messages.Default())
	}
	return nil, ExportResponse{
		Filename: "kontrak.pdf",
		MIMEType: "application/pdf",
		Size:     len(data),
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}

func (h *handler) saveContract(ctx context.Context, _ *sdkmcp.CallToolRequest, in WizardParams) (*sdkmcp.CallToolResult, SaveResponse, error) {
	saved, err := h.wizards.Save(ctx, getTenantID(ctx), in.WizardID)
	if err != nil {
		return nil, SaveResponse{}, h.toolError(err, h.messages.Default())
	}
	return nil, SaveResponse{Contract: newContractSummary(*saved)}, nil
}

func (h *handler) view(w *workflow.Wizard, err error) (*sdkmcp.CallToolResult, DraftResponse, error) {
	if err != nil {
		return nil, DraftResponse{}, h.toolError(err, h.messages.Default())
	}
	return nil, newDraftResponse(h.wizards.View(w)), nil
}
