package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/qontract/internal/domain/contract"
	"github.com/rpggio/qontract/internal/domain/dashboard"
	"github.com/rpggio/qontract/internal/domain/workflow"
	"github.com/rpggio/qontract/internal/generation"
	"github.com/rpggio/qontract/internal/localization"
)

type wizardStub struct {
	startFn    func(context.Context, string, localization.Language) (*workflow.Wizard, error)
	getFn      func(context.Context, string, string) (*workflow.Wizard, error)
	selectFn   func(context.Context, string, string, string) (*workflow.Wizard, error)
	submitFn   func(context.Context, string, string, contract.FormData) (*workflow.Wizard, error)
	backFn     func(context.Context, string, string) (*workflow.Wizard, error)
	languageFn func(context.Context, string, string, localization.Language) (*workflow.Wizard, error)
	strokeFn   func(context.Context, string, string, contract.Pad, contract.Stroke) (*workflow.Wizard, error)
	clearFn    func(context.Context, string, string, contract.Pad) (*workflow.Wizard, error)
	exportFn   func(context.Context, string, string) ([]byte, error)
	saveFn     func(context.Context, string, string) (*dashboard.Contract, error)
}

func (s wizardStub) Start(ctx context.Context, tenantID string, lang localization.Language) (*workflow.Wizard, error) {
	return s.startFn(ctx, tenantID, lang)
}
func (s wizardStub) Get(ctx context.Context, tenantID, id string) (*workflow.Wizard, error) {
	return s.getFn(ctx, tenantID, id)
}
func (s wizardStub) SelectTemplate(ctx context.Context, tenantID, id, templateID string) (*workflow.Wizard, error) {
	return s.selectFn(ctx, tenantID, id, templateID)
}
func (s wizardStub) SubmitForm(ctx context.Context, tenantID, id string, form contract.FormData) (*workflow.Wizard, error) {
	return s.submitFn(ctx, tenantID, id, form)
}
func (s wizardStub) Back(ctx context.Context, tenantID, id string) (*workflow.Wizard, error) {
	return s.backFn(ctx, tenantID, id)
}
func (s wizardStub) SetLanguage(ctx context.Context, tenantID, id string, lang localization.Language) (*workflow.Wizard, error) {
	return s.languageFn(ctx, tenantID, id, lang)
}
func (s wizardStub) AddStroke(ctx context.Context, tenantID, id string, pad contract.Pad, stroke contract.Stroke) (*workflow.Wizard, error) {
	return s.strokeFn(ctx, tenantID, id, pad, stroke)
}
func (s wizardStub) ClearSignature(ctx context.Context, tenantID, id string, pad contract.Pad) (*workflow.Wizard, error) {
	return s.clearFn(ctx, tenantID, id, pad)
}
func (s wizardStub) Export(ctx context.Context, tenantID, id string) ([]byte, error) {
	return s.exportFn(ctx, tenantID, id)
}
func (s wizardStub) Save(ctx context.Context, tenantID, id string) (*dashboard.Contract, error) {
	return s.saveFn(ctx, tenantID, id)
}
func (s wizardStub) View(w *workflow.Wizard) workflow.View {
	return workflow.View{ID: w.ID, Step: w.Step, Language: w.Language, Form: w.Form, Contract: w.Contract, Signatures: w.Signatures, UpdatedAt: w.UpdatedAt}
}

type contractStub struct {
	listFn func(context.Context, string, dashboard.Query) ([]dashboard.Contract, error)
}

func (s contractStub) List(ctx context.Context, tenantID string, q dashboard.Query) ([]dashboard.Contract, error) {
	return s.listFn(ctx, tenantID, q)
}

func newMessages(t *testing.T) *localization.Manager {
	t.Helper()
	m, err := localization.NewManager(localization.Indonesian)
	require.NoError(t, err)
	return m
}

// connect serves cfg over in-memory transports and returns the client side.
func connect(t *testing.T, cfg Config) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := NewServer(cfg)
	st, ct := sdkmcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = cs.Close()
		_ = ss.Wait()
	})
	return cs
}

func callTool(t *testing.T, cs *sdkmcp.ClientSession, name string, args map[string]any, out any) *sdkmcp.CallToolResult {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	if out != nil && !res.IsError {
		data, err := json.Marshal(res.StructuredContent)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, out))
	}
	return res
}

func errorText(t *testing.T, res *sdkmcp.CallToolResult) string {
	t.Helper()
	require.True(t, res.IsError)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func previewWizard(id string) *workflow.Wizard {
	return &workflow.Wizard{
		ID:        id,
		Step:      workflow.StepPreview,
		Language:  localization.English,
		Form:      &contract.FormData{PartyOneName: "Budi", PartyTwoName: "Sari"},
		Contract:  &contract.GeneratedContract{Title: "RENTAL AGREEMENT"},
		UpdatedAt: time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestServer_RegistersTools(t *testing.T) {
	cs := connect(t, Config{Services: Services{Messages: newMessages(t)}})

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	require.Equal(t, []string{
		"add_signature_stroke", "clear_signature", "export_contract", "get_contract_draft",
		"get_labels", "go_back", "list_contracts", "list_templates", "save_contract",
		"select_template", "set_language", "start_contract", "submit_form",
	}, names)
}

func TestTools_CatalogAndLabels(t *testing.T) {
	messages := newMessages(t)
	cs := connect(t, Config{Services: Services{Messages: messages}})

	var templates TemplatesResponse
	callTool(t, cs, "list_templates", map[string]any{"language": "en"}, &templates)
	require.Equal(t, localization.English, templates.Language)
	require.Len(t, templates.Templates, 3)
	require.Equal(t, "Freelance Project", templates.Templates[0].Title)

	var labels LabelsResponse
	callTool(t, cs, "get_labels", map[string]any{}, &labels)
	require.Equal(t, localization.Indonesian, labels.Language)
	require.Equal(t, messages.Labels(localization.Indonesian), labels.Labels)

	res := callTool(t, cs, "get_labels", map[string]any{"language": "fr"}, nil)
	require.Contains(t, errorText(t, res), "INVALID_LANGUAGE")
}

func TestTools_ListContracts(t *testing.T) {
	var gotTenant string
	var gotQuery dashboard.Query
	cs := connect(t, Config{Services: Services{
		Messages:  newMessages(t),
		Contracts: contractStub{listFn: func(_ context.Context, tenantID string, q dashboard.Query) ([]dashboard.Contract, error) {
			gotTenant = tenantID
			gotQuery = q
			return []dashboard.Contract{{ID: "C002", Title: "Perjanjian Kerjasama Supplier", Date: "2024-07-15", Status: dashboard.StatusActive}}, nil
		}},
	}})

	var resp ContractsResponse
	callTool(t, cs, "list_contracts", map[string]any{"query": "supplier", "start": "2024-01-01"}, &resp)
	require.Equal(t, defaultTenant, gotTenant)
	require.Equal(t, "supplier", gotQuery.Term)
	require.NotNil(t, gotQuery.Start)
	require.Nil(t, gotQuery.End)
	require.Len(t, resp.Contracts, 1)
	require.Equal(t, "C002", resp.Contracts[0].ID)

	res := callTool(t, cs, "list_contracts", map[string]any{"end": "15/07/2024"}, nil)
	require.Contains(t, errorText(t, res), "INVALID_FILTER")
}

func TestTools_DraftFlow(t *testing.T) {
	var submitted contract.FormData
	var stroke contract.Stroke
	var strokePad contract.Pad

	wizards := wizardStub{
		startFn: func(_ context.Context, tenantID string, lang localization.Language) (*workflow.Wizard, error) {
			require.Equal(t, defaultTenant, tenantID)
			return &workflow.Wizard{ID: "w1", Step: workflow.StepTemplateSelection, Language: lang}, nil
		},
		selectFn: func(_ context.Context, _ string, id, templateID string) (*workflow.Wizard, error) {
			require.Equal(t, "equipment_rental", templateID)
			return &workflow.Wizard{ID: id, Step: workflow.StepFormEntry, TemplateID: templateID}, nil
		},
		submitFn: func(_ context.Context, _ string, id string, form contract.FormData) (*workflow.Wizard, error) {
			submitted = form
			return previewWizard(id), nil
		},
		strokeFn: func(_ context.Context, _ string, id string, pad contract.Pad, s contract.Stroke) (*workflow.Wizard, error) {
			strokePad, stroke = pad, s
			return previewWizard(id), nil
		},
		exportFn: func(_ context.Context, _ string, _ string) ([]byte, error) {
			return []byte("%PDF-1.3 test"), nil
		},
		saveFn: func(_ context.Context, _ string, _ string) (*dashboard.Contract, error) {
			return &dashboard.Contract{ID: "x1", Title: "RENTAL AGREEMENT", Parties: "Budi & Sari", Date: "2024-08-01", Status: dashboard.StatusActive}, nil
		},
	}
	cs := connect(t, Config{Services: Services{Wizards: wizards, Messages: newMessages(t)}})

	var draft DraftResponse
	callTool(t, cs, "start_contract", map[string]any{"language": "en"}, &draft)
	require.Equal(t, "w1", draft.ID)
	require.Equal(t, workflow.StepTemplateSelection, draft.Step)
	require.Equal(t, localization.English, draft.Language)

	callTool(t, cs, "select_template", map[string]any{"wizard_id": "w1", "template_id": "equipment_rental"}, &draft)
	require.Equal(t, workflow.StepFormEntry, draft.Step)

	form := map[string]any{
		"party_one_name": "Budi", "party_one_position": "Owner", "party_one_address": "Jakarta",
		"party_two_name": "Sari", "party_two_position": "Manager", "party_two_address": "Bogor",
		"project_title": "Sewa Kamera", "scope": "Kamera dan lensa", "value": "2000000",
		"start_date": "2024-08-01", "end_date": "2024-08-10",
	}
	callTool(t, cs, "submit_form", map[string]any{"wizard_id": "w1", "form": form}, &draft)
	require.Equal(t, workflow.StepPreview, draft.Step)
	require.Equal(t, "RENTAL AGREEMENT", draft.Contract.Title)
	require.Equal(t, "2024-08-01T09:00:00Z", draft.UpdatedAt)
	require.Equal(t, "Sewa Kamera", submitted.ProjectTitle)
	require.Empty(t, submitted.AdditionalTerms)

	callTool(t, cs, "add_signature_stroke", map[string]any{
		"wizard_id": "w1",
		"pad":       "party_two",
		"points":    []map[string]any{{"x": 0.1, "y": 0.2}, {"x": 0.4, "y": 0.5}},
	}, &draft)
	require.Equal(t, contract.PadPartyTwo, strokePad)
	require.Len(t, stroke.Points, 2)

	var exported ExportResponse
	callTool(t, cs, "export_contract", map[string]any{"wizard_id": "w1"}, &exported)
	require.Equal(t, "kontrak.pdf", exported.Filename)
	require.Equal(t, "application/pdf", exported.MIMEType)
	data, err := base64.StdEncoding.DecodeString(exported.Data)
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.3 test", string(data))
	require.Equal(t, len(data), exported.Size)

	var saved SaveResponse
	callTool(t, cs, "save_contract", map[string]any{"wizard_id": "w1"}, &saved)
	require.Equal(t, "x1", saved.Contract.ID)
	require.Equal(t, "Budi & Sari", saved.Contract.Parties)
}

func TestTools_ErrorMapping(t *testing.T) {
	wizards := wizardStub{
		getFn: func(context.Context, string, string) (*workflow.Wizard, error) {
			return nil, workflow.ErrWizardNotFound
		},
		submitFn: func(context.Context, string, string, contract.FormData) (*workflow.Wizard, error) {
			return nil, workflow.ErrBusy
		},
		backFn: func(context.Context, string, string) (*workflow.Wizard, error) {
			return nil, errors.New("database is locked")
		},
	}
	cs := connect(t, Config{Services: Services{Wizards: wizards, Messages: newMessages(t)}})

	res := callTool(t, cs, "get_contract_draft", map[string]any{"wizard_id": "missing"}, nil)
	require.Contains(t, errorText(t, res), "WIZARD_NOT_FOUND")

	res = callTool(t, cs, "submit_form", map[string]any{"wizard_id": "w1", "form": map[string]any{
		"party_one_name": "", "party_one_position": "", "party_one_address": "",
		"party_two_name": "", "party_two_position": "", "party_two_address": "",
		"project_title": "", "scope": "", "value": "", "start_date": "", "end_date": "",
	}}, nil)
	require.Contains(t, errorText(t, res), "BUSY")

	res = callTool(t, cs, "go_back", map[string]any{"wizard_id": "w1"}, nil)
	text := errorText(t, res)
	require.Contains(t, text, "INTERNAL")
	require.NotContains(t, text, "database is locked")

	res = callTool(t, cs, "clear_signature", map[string]any{"wizard_id": "w1", "pad": "witness"}, nil)
	require.Contains(t, errorText(t, res), "INVALID_SIGNATURE")
}

func TestHandler_GenerationErrorMessage(t *testing.T) {
	h := &handler{
		wizards: wizardStub{submitFn: func(context.Context, string, string, contract.FormData) (*workflow.Wizard, error) {
			return nil, &workflow.GenerationError{
				Err:        fmt.Errorf("%w: upstream timeout", generation.ErrGenerationFailed),
				MessageKey: "errorGenerating",
				Message:    "Gagal membuat kontrak. Silakan coba lagi.",
			}
		}},
		messages: newMessages(t),
		logger:   slog.New(slog.DiscardHandler),
	}

	_, _, err := h.submitForm(context.Background(), nil, SubmitFormParams{WizardID: "w1"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "GENERATION_FAILED")
	require.Contains(t, err.Error(), "Gagal membuat kontrak. Silakan coba lagi.")
}

func TestAuth_RequiredOverHTTPOnly(t *testing.T) {
	cs := connect(t, Config{
		Services:      Services{Messages: newMessages(t)},
		AuthEnabled:   true,
		TransportMode: "http",
	})

	_, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: "list_templates", Arguments: map[string]any{}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unauthorized")
}
