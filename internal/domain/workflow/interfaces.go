package workflow

import (
	"context"

	"github.com/rpggio/qontract/internal/domain/catalog"
	"github.com/rpggio/qontract/internal/domain/contract"
	"github.com/rpggio/qontract/internal/domain/dashboard"
	"github.com/rpggio/qontract/internal/localization"
)

// Repository provides persistence for wizards.
type Repository interface {
	Create(ctx context.Context, tenantID string, w *Wizard) error
	Get(ctx context.Context, tenantID, id string) (*Wizard, error)
	Update(ctx context.Context, tenantID string, w *Wizard) error
	Delete(ctx context.Context, tenantID, id string) error
}

// Generator produces a contract draft.
type Generator interface {
	Generate(ctx context.Context, form contract.FormData, tmpl catalog.Template, lang localization.Language) (*contract.GeneratedContract, error)
}

// Exporter renders a signed draft to a document.
type Exporter interface {
	Render(doc contract.GeneratedContract, sigs contract.Signatures) ([]byte, error)
}

// ContractSaver stores a finished contract on the dashboard.
type ContractSaver interface {
	Save(ctx context.Context, tenantID string, req dashboard.SaveRequest) (*dashboard.Contract, error)
}

// Translator looks up localized strings.
type Translator interface {
	T(lang localization.Language, key string) string
}
