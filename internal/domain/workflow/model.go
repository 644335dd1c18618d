package workflow

import (
	"time"

	"github.com/rpggio/qontract/internal/domain/catalog"
	"github.com/rpggio/qontract/internal/domain/contract"
	"github.com/rpggio/qontract/internal/localization"
)

// Step is a stage of the contract creation wizard.
type Step string

const (
	StepTemplateSelection Step = "template_selection"
	StepFormEntry         Step = "form_entry"
	StepPreview           Step = "preview"
)

// Wizard is one contract creation in progress.
type Wizard struct {
	ID         string                      `json:"id"`
	TenantID   string                      `json:"tenant_id"`
	Step       Step                        `json:"step"`
	Language   localization.Language       `json:"language"`
	TemplateID string                      `json:"template_id,omitempty"`
	Form       *contract.FormData          `json:"form,omitempty"`
	Contract   *contract.GeneratedContract `json:"contract,omitempty"`
	Signatures contract.Signatures         `json:"signatures"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

// inPreview reports whether the wizard holds a complete draft.
func (w *Wizard) inPreview() bool {
	return w.Step == StepPreview && w.Contract != nil && w.Form != nil
}

// View is a wizard rendered for the presentation layer in its language.
type View struct {
	ID              string                      `json:"id"`
	Step            Step                        `json:"step"`
	StepTitle       string                      `json:"step_title"`
	StepDescription string                      `json:"step_description"`
	Language        localization.Language       `json:"language"`
	Template        *catalog.View               `json:"template,omitempty"`
	Form            *contract.FormData          `json:"form,omitempty"`
	Contract        *contract.GeneratedContract `json:"contract,omitempty"`
	Signatures      contract.Signatures         `json:"signatures"`
	Busy            bool                        `json:"busy"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

var stepKeys = map[Step][2]string{
	StepTemplateSelection: {"step1", "step1Description"},
	StepFormEntry:         {"step2", "step2Description"},
	StepPreview:           {"step3", "step3Description"},
}
