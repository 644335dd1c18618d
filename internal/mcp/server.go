package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/qontract/internal/domain/contract"
	"github.com/rpggio/qontract/internal/domain/dashboard"
	"github.com/rpggio/qontract/internal/domain/workflow"
	"github.com/rpggio/qontract/internal/localization"
)

// WizardService defines wizard operations needed by MCP.
type WizardService interface {
	Start(ctx context.Context, tenantID string, lang localization.Language) (*workflow.Wizard, error)
	Get(ctx context.Context, tenantID, id string) (*workflow.Wizard, error)
	SelectTemplate(ctx context.Context, tenantID, id, templateID string) (*workflow.Wizard, error)
	SubmitForm(ctx context.Context, tenantID, id string, form contract.FormData) (*workflow.Wizard, error)
	Back(ctx context.Context, tenantID, id string) (*workflow.Wizard, error)
	SetLanguage(ctx context.Context, tenantID, id string, lang localization.Language) (*workflow.Wizard, error)
	AddStroke(ctx context.Context, tenantID, id string, pad contract.Pad, stroke contract.Stroke) (*workflow.Wizard, error)
	ClearSignature(ctx context.Context, tenantID, id string, pad contract.Pad) (*workflow.Wizard, error)
	Export(ctx context.Context, tenantID, id string) ([]byte, error)
	Save(ctx context.Context, tenantID, id string) (*dashboard.Contract, error)
	View(w *workflow.Wizard) workflow.View
}

// ContractService defines dashboard operations needed by MCP.
type ContractService interface {
	List(ctx context.Context, tenantID string, q dashboard.Query) ([]dashboard.Contract, error)
}

// Messages provides the localized string tables.
type Messages interface {
	T(lang localization.Language, key string) string
	Labels(lang localization.Language) map[string]string
	Default() localization.Language
}

// Services contains all domain services needed by MCP.
type Services struct {
	Wizards   WizardService
	Contracts ContractService
	Messages  Messages
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      TenantResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	Version       string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "qontract",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio is a local single-user transport and never authenticates.
	if cfg.TransportMode == "stdio" || !cfg.AuthEnabled {
		server.AddReceivingMiddleware(noAuthMiddleware(defaultTenant))
	} else {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, &handler{
		wizards:   cfg.Services.Wizards,
		contracts: cfg.Services.Contracts,
		messages:  cfg.Services.Messages,
		logger:    cfg.Logger,
	})

	return server
}
