package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rpggio/qontract/internal/apierror"
	"github.com/rpggio/qontract/internal/domain/catalog"
	"github.com/rpggio/qontract/internal/domain/contract"
	"github.com/rpggio/qontract/internal/domain/dashboard"
	"github.com/rpggio/qontract/internal/domain/workflow"
	"github.com/rpggio/qontract/internal/localization"
)

// WizardService defines the wizard operations needed by the API.
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

// ContractService defines the dashboard operations needed by the API.
type ContractService interface {
	List(ctx context.Context, tenantID string, q dashboard.Query) ([]dashboard.Contract, error)
}

// Messages provides the localized string tables.
type Messages interface {
	LanguageResolver
	T(lang localization.Language, key string) string
	Labels(lang localization.Language) map[string]string
	Default() localization.Language
}

// Config wires the API to its services.
type Config struct {
	Wizards   WizardService
	Contracts ContractService
	Messages  Messages
	// Auth authenticates requests. Nil assigns every request to DefaultTenant.
	Auth func(http.Handler) http.Handler
	// MCP, when set, is mounted at /mcp. It authenticates on its own.
	MCP    http.Handler
	Logger *slog.Logger
}

// Server serves the REST API.
type Server struct {
	wizards   WizardService
	contracts ContractService
	messages  Messages
	logger    *slog.Logger
}

// NewServer creates an HTTP router with middleware. /health is public,
// everything under /api is tenant scoped.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{
		wizards:   cfg.Wizards,
		contracts: cfg.Contracts,
		messages:  cfg.Messages,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", srv.handleHealth)
	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	auth := cfg.Auth
	if auth == nil {
		auth = StaticTenantMiddleware(DefaultTenant)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(auth)
		r.Use(LanguageMiddleware(cfg.Messages))

		r.Get("/labels", srv.handleLabels)
		r.Get("/templates", srv.handleTemplates)
		r.Get("/contracts", srv.handleListContracts)

		r.Post("/wizards", srv.handleStartWizard)
		r.Route("/wizards/{id}", func(r chi.Router) {
			r.Get("/", srv.handleGetWizard)
			r.Post("/template", srv.handleSelectTemplate)
			r.Post("/form", srv.handleSubmitForm)
			r.Post("/back", srv.handleBack)
			r.Put("/language", srv.handleSetLanguage)
			r.Post("/signatures/{pad}/strokes", srv.handleAddStroke)
			r.Delete("/signatures/{pad}", srv.handleClearSignature)
			r.Get("/export", srv.handleExport)
			r.Post("/save", srv.handleSave)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleLabels(w http.ResponseWriter, r *http.Request) {
	lang := s.language(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"language": lang,
		"labels":   s.messages.Labels(lang),
	})
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"templates": catalog.Localized(s.language(r)),
	})
}

func (s *Server) handleListContracts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q, err := dashboard.ParseQuery(params.Get("q"), params.Get("start"), params.Get("end"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	contracts, err := s.contracts.List(r.Context(), tenantID(r), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if contracts == nil {
		contracts = []dashboard.Contract{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"contracts": contracts})
}

type languageRequest struct {
	Language string `json:"language"`
}

func (s *Server) handleStartWizard(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			s.writeInvalidRequest(w, r, err)
			return
		}
	}

	lang := s.language(r)
	if req.Language != "" {
		parsed, err := localization.ParseLanguage(req.Language)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		lang = parsed
	}

	wiz, err := s.wizards.Start(r.Context(), tenantID(r), lang)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.wizards.View(wiz))
}

func (s *Server) handleGetWizard(w http.ResponseWriter, r *http.Request) {
	wiz, err := s.wizards.Get(r.Context(), tenantID(r), chi.URLParam(r, "id"))
	s.writeWizard(w, r, wiz, err)
}

type templateRequest struct {
	TemplateID string `json:"template_id"`
}

func (s *Server) handleSelectTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeInvalidRequest(w, r, err)
		return
	}
	wiz, err := s.wizards.SelectTemplate(r.Context(), tenantID(r), chi.URLParam(r, "id"), req.TemplateID)
	s.writeWizard(w, r, wiz, err)
}

func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	var form contract.FormData
	if err := decodeJSON(r, &form); err != nil {
		s.writeInvalidRequest(w, r, err)
		return
	}
	wiz, err := s.wizards.SubmitForm(r.Context(), tenantID(r), chi.URLParam(r, "id"), form)
	s.writeWizard(w, r, wiz, err)
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	wiz, err := s.wizards.Back(r.Context(), tenantID(r), chi.URLParam(r, "id"))
	s.writeWizard(w, r, wiz, err)
}

func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeInvalidRequest(w, r, err)
		return
	}
	lang, err := localization.ParseLanguage(req.Language)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	wiz, err := s.wizards.SetLanguage(r.Context(), tenantID(r), chi.URLParam(r, "id"), lang)
	s.writeWizard(w, r, wiz, err)
}

func (s *Server) handleAddStroke(w http.ResponseWriter, r *http.Request) {
	pad, err := contract.ParsePad(chi.URLParam(r, "pad"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var stroke contract.Stroke
	if err := decodeJSON(r, &stroke); err != nil {
		s.writeInvalidRequest(w, r, err)
		return
	}
	wiz, err := s.wizards.AddStroke(r.Context(), tenantID(r), chi.URLParam(r, "id"), pad, stroke)
	s.writeWizard(w, r, wiz, err)
}

func (s *Server) handleClearSignature(w http.ResponseWriter, r *http.Request) {
	pad, err := contract.ParsePad(chi.URLParam(r, "pad"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	wiz, err := s.wizards.ClearSignature(r.Context(), tenantID(r), chi.URLParam(r, "id"), pad)
	s.writeWizard(w, r, wiz, err)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.wizards.Export(r.Context(), tenantID(r), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="kontrak.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	saved, err := s.wizards.Save(r.Context(), tenantID(r), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"contract": saved})
}

func (s *Server) writeWizard(w http.ResponseWriter, r *http.Request, wiz *workflow.Wizard, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.wizards.View(wiz))
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := apierror.Map(err, s.language(r), s.messages)
	if apiErr.Code == apierror.CodeInternal {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, apiErr.Status, errorResponse{Error: apiErr})
}

func (s *Server) writeInvalidRequest(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := apierror.InvalidRequest(s.language(r), s.messages, err.Error())
	writeJSON(w, apiErr.Status, errorResponse{Error: apiErr})
}

func tenantID(r *http.Request) string {
	id, _ := TenantFromContext(r.Context())
	return id
}

// language is the request's resolved language, or the configured default
// outside the language middleware.
func (s *Server) language(r *http.Request) localization.Language {
	if lang, ok := localization.FromContext(r.Context()); ok {
		return lang
	}
	return s.messages.Default()
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(started),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
