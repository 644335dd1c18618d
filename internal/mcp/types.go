package mcp

import (
	"time"

	"github.com/rpggio/qontract/internal/domain/catalog"
	"github.com/rpggio/qontract/internal/domain/contract"
	"github.com/rpggio/qontract/internal/domain/dashboard"
	"github.com/rpggio/qontract/internal/domain/workflow"
	"github.com/rpggio/qontract/internal/localization"
)

type LanguageParams struct {
	Language string `json:"language,omitempty" jsonschema:"id (Indonesian, default) or en"`
}

type ListContractsParams struct {
	Query string `json:"query,omitempty" jsonschema:"case-insensitive text matched against title and parties"`
	Start string `json:"start,omitempty" jsonschema:"earliest contract date, YYYY-MM-DD"`
	End   string `json:"end,omitempty" jsonschema:"latest contract date, YYYY-MM-DD, inclusive"`
}

type WizardParams struct {
	WizardID string `json:"wizard_id" jsonschema:"draft ID returned by start_contract"`
}

type SelectTemplateParams struct {
	WizardID   string `json:"wizard_id"`
	TemplateID string `json:"template_id" jsonschema:"one of the IDs returned by list_templates"`
}

type SubmitFormParams struct {
	WizardID string            `json:"wizard_id"`
	Form     contract.FormData `json:"form"`
}

type SetLanguageParams struct {
	WizardID string `json:"wizard_id"`
	Language string `json:"language" jsonschema:"id or en"`
}

type AddStrokeParams struct {
	WizardID string           `json:"wizard_id"`
	Pad      string           `json:"pad" jsonschema:"party_one or party_two"`
	Points   []contract.Point `json:"points" jsonschema:"pen positions normalised to 0..1 on both axes"`
}

type PadParams struct {
	WizardID string `json:"wizard_id"`
	Pad      string `json:"pad" jsonschema:"party_one or party_two"`
}

type TemplatesResponse struct {
	Language  localization.Language `json:"language"`
	Templates []catalog.View        `json:"templates"`
}

type ContractsResponse struct {
	Contracts []ContractSummary `json:"contracts"`
}

type LabelsResponse struct {
	Language localization.Language `json:"language"`
	Labels   map[string]string     `json:"labels"`
}

type ExportResponse struct {
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type"`
	Size     int    `json:"size"`
	Data     string `json:"data" jsonschema:"base64-encoded document"`
}

type SaveResponse struct {
	Contract ContractSummary `json:"contract"`
}

// DraftResponse is a wizard view with timestamps rendered as RFC 3339 text.
type DraftResponse struct {
	ID              string                      `json:"id"`
	Step            workflow.Step               `json:"step"`
	StepTitle       string                      `json:"step_title"`
	StepDescription string                      `json:"step_description"`
	Language        localization.Language       `json:"language"`
	Template        *catalog.View               `json:"template,omitempty"`
	Form            *contract.FormData          `json:"form,omitempty"`
	Contract        *contract.GeneratedContract `json:"contract,omitempty"`
	Signatures      contract.Signatures         `json:"signatures"`
	Busy            bool                        `json:"busy"`
	UpdatedAt       string                      `json:"updated_at"`
}

// ContractSummary is a dashboard row.
type ContractSummary struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Parties string           `json:"parties"`
	Date    string           `json:"date"`
	Status  dashboard.Status `json:"status"`
}

func newDraftResponse(v workflow.View) DraftResponse {
	return DraftResponse{
		ID:              v.ID,
		Step:            v.Step,
		StepTitle:       v.StepTitle,
		StepDescription: v.StepDescription,
		Language:        v.Language,
		Template:        v.Template,
		Form:            v.Form,
		Contract:        v.Contract,
		Signatures:      v.Signatures,
		Busy:            v.Busy,
		UpdatedAt:       v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func newContractSummary(c dashboard.Contract) ContractSummary {
	return ContractSummary{
		ID:      c.ID,
		Title:   c.Title,
		Parties: c.Parties,
		Date:    c.Date,
		Status:  c.Status,
	}
}
