package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/rpggio/qontract/internal/domain/catalog"
	"github.com/rpggio/qontract/internal/domain/contract"
	"github.com/rpggio/qontract/internal/localization"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Generator produces a contract draft from a filled form.
type Generator interface {
	Generate(ctx context.Context, form contract.FormData, tmpl catalog.Template, lang localization.Language) (*contract.GeneratedContract, error)
}

// ContentGenerator is the subset of the Gemini models API used here.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config configures the Gemini client.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client calls Gemini with a fixed structured-output schema.
type Client struct {
	models  ContentGenerator
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// New builds a Gemini-backed generator. Without an API key it returns a
// generator that fails every call with ErrNotConfigured and logs a warning
// once.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (Generator, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		logger.Warn("gemini api key not set, contract generation disabled")
		return Unconfigured{}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return NewClient(client.Models, cfg, logger), nil
}

// NewClient wraps an existing models API.
func NewClient(models ContentGenerator, cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		models:  models,
		model:   model,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// Generate sends a single generation request. Service errors are reported
// as ErrGenerationFailed, blank or unparseable replies as ErrEmptyResult.
func (c *Client) Generate(ctx context.Context, form contract.FormData, tmpl catalog.Template, lang localization.Language) (*contract.GeneratedContract, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	prompt := BuildPrompt(form, tmpl, lang)
	started := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   contractSchema(),
		},
	)
	if err != nil {
		c.logger.Error("gemini generate content failed", "model", c.model, "template", tmpl.ID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	c.logger.Debug("gemini generate content", "model", c.model, "template", tmpl.ID, "duration", time.Since(started))
	return ParseContract(resp.Text())
}

// ParseContract decodes a JSON reply into a contract draft.
func ParseContract(text string) (*contract.GeneratedContract, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyResult
	}

	var doc *contract.GeneratedContract
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyResult, err)
	}
	if doc == nil {
		return nil, ErrEmptyResult
	}
	return doc, nil
}

// Unconfigured is the generator used when no API key is available.
type Unconfigured struct{}

// Generate always fails with ErrNotConfigured.
func (Unconfigured) Generate(context.Context, contract.FormData, catalog.Template, localization.Language) (*contract.GeneratedContract, error) {
	return nil, ErrNotConfigured
}
