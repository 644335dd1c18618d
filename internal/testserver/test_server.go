// Package testserver runs the full HTTP stack on an isolated database for
// end-to-end tests.
package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/qontract/internal/domain/catalog"
	"github.com/rpggio/qontract/internal/domain/contract"
	"github.com/rpggio/qontract/internal/domain/dashboard"
	"github.com/rpggio/qontract/internal/domain/workflow"
	"github.com/rpggio/qontract/internal/export"
	"github.com/rpggio/qontract/internal/localization"
	"github.com/rpggio/qontract/internal/mcp"
	"github.com/rpggio/qontract/internal/repository"
	"github.com/rpggio/qontract/internal/sqlite"
	"github.com/rpggio/qontract/internal/transport"
)

// GeneratorFunc adapts a function to workflow.Generator.
type GeneratorFunc func(ctx context.Context, form contract.FormData, tmpl catalog.Template, lang localization.Language) (*contract.GeneratedContract, error)

func (f GeneratorFunc) Generate(ctx context.Context, form contract.FormData, tmpl catalog.Template, lang localization.Language) (*contract.GeneratedContract, error) {
	return f(ctx, form, tmpl, lang)
}

// Options configures a TestServer.
type Options struct {
	// Generator replaces the Gemini client. Defaults to StubGenerator.
	Generator workflow.Generator
	// Token and TenantID enable bearer authentication when Token is set.
	Token    string
	TenantID string
}

type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	APIKeys  repository.APIKeyRepository
	Token    string
	TenantID string
}

func New(t *testing.T, opts Options) *TestServer {
	t.Helper()

	db, err := sqlite.New(filepath.Join(t.TempDir(), "qontract.db"))
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	messages, err := localization.NewManager(localization.Indonesian)
	require.NoError(t, err)

	generator := opts.Generator
	if generator == nil {
		generator = StubGenerator()
	}

	var apiKeys repository.APIKeyRepository = sqlite.NewAPIKeyRepository(db)
	contractSvc := dashboard.NewService(sqlite.NewContractRepository(db), nil)
	wizardSvc := workflow.NewService(
		sqlite.NewWizardRepository(db),
		generator,
		export.NewRenderer(),
		contractSvc,
		messages,
		nil,
	)

	authEnabled := opts.Token != ""
	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Wizards:   wizardSvc,
			Contracts: contractSvc,
			Messages:  messages,
		},
		Resolver:      apiKeys,
		AuthEnabled:   authEnabled,
		TransportMode: "http",
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{Stateless: true},
	)

	cfg := transport.Config{
		Wizards:   wizardSvc,
		Contracts: contractSvc,
		Messages:  messages,
		MCP:       mcpHandler,
	}
	if authEnabled {
		cfg.Auth = transport.AuthMiddleware(apiKeys)
	}
	server := httptest.NewServer(transport.NewServer(cfg))

	ts := &TestServer{
		Server:   server,
		DB:       db,
		APIKeys:  apiKeys,
		Token:    opts.Token,
		TenantID: opts.TenantID,
	}
	if authEnabled {
		require.NoError(t, ts.AddAPIKey(opts.Token, opts.TenantID))
	}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

func (ts *TestServer) AddAPIKey(token, tenantID string) error {
	return ts.APIKeys.AddAPIKey(context.Background(), token, tenantID, "test")
}

// StubGenerator returns a deterministic draft built from the form.
func StubGenerator() workflow.Generator {
	return GeneratorFunc(func(_ context.Context, form contract.FormData, tmpl catalog.Template, lang localization.Language) (*contract.GeneratedContract, error) {
		return &contract.GeneratedContract{
			Title:   "PERJANJIAN " + tmpl.TitleIn(lang),
			Opening: "Pada hari ini telah disepakati perjanjian antara:",
			Parties: []contract.Party{
				{ID: "PIHAK PERTAMA", Details: form.PartyOneName + ", " + form.PartyOnePosition + ", " + form.PartyOneAddress},
				{ID: "PIHAK KEDUA", Details: form.PartyTwoName + ", " + form.PartyTwoPosition + ", " + form.PartyTwoAddress},
			},
			Preamble: "Para pihak sepakat sebagai berikut.",
			Clauses: []contract.Clause{
				{Title: "Pasal 1", Content: form.Scope},
				{Title: "Pasal 2", Content: "Nilai kontrak Rp " + form.Value},
			},
			Closing: "Demikian perjanjian ini dibuat.",
			Signatures: []contract.SignatureLine{
				{Party: "PIHAK PERTAMA", Name: form.PartyOneName},
				{Party: "PIHAK KEDUA", Name: form.PartyTwoName},
			},
		}, nil
	})
}
