package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rpggio/qontract/internal/domain/catalog"
	"github.com/rpggio/qontract/internal/domain/contract"
	"github.com/rpggio/qontract/internal/domain/dashboard"
	"github.com/rpggio/qontract/internal/generation"
	"github.com/rpggio/qontract/internal/localization"
	"github.com/rpggio/qontract/internal/repository"
)

// Service drives contract creation wizards.
type Service struct {
	wizards   Repository
	generator Generator
	exporter  Exporter
	saver     ContractSaver
	messages  Translator
	logger    *slog.Logger
	now       func() time.Time

	mu       sync.Mutex
	inflight map[string]struct{}
	locks    map[string]*wizardLock
}

type wizardLock struct {
	mu   sync.Mutex
	refs int
}

// NewService creates a new workflow service.
func NewService(
	wizards Repository,
	generator Generator,
	exporter Exporter,
	saver ContractSaver,
	messages Translator,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		wizards:   wizards,
		generator: generator,
		exporter:  exporter,
		saver:     saver,
		messages:  messages,
		logger:    logger,
		now:       time.Now,
		inflight:  make(map[string]struct{}),
		locks:     make(map[string]*wizardLock),
	}
}

// Start opens a new wizard at template selection.
func (s *Service) Start(ctx context.Context, tenantID string, lang localization.Language) (*Wizard, error) {
	if _, err := localization.ParseLanguage(string(lang)); err != nil {
		return nil, err
	}

	now := s.now()
	w := &Wizard{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Step:      StepTemplateSelection,
		Language:  lang,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.wizards.Create(ctx, tenantID, w); err != nil {
		return nil, fmt.Errorf("creating wizard: %w", err)
	}
	return w, nil
}

// Get fetches a wizard by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Wizard, error) {
	w, err := s.wizards.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWizardNotFound
		}
		return nil, fmt.Errorf("getting wizard: %w", err)
	}
	return w, nil
}

// SelectTemplate records the chosen template and moves to form entry.
func (s *Service) SelectTemplate(ctx context.Context, tenantID, id, templateID string) (*Wizard, error) {
	return s.mutate(ctx, tenantID, id, func(w *Wizard) error {
		if w.Step != StepTemplateSelection {
			return ErrInvalidStep
		}
		if _, err := catalog.Get(templateID); err != nil {
			return err
		}
		w.TemplateID = templateID
		w.Step = StepFormEntry
		return nil
	})
}

// SubmitForm validates the form, generates a draft and moves to preview.
// On failure the wizard is left unchanged and a *GenerationError carries
// the localized message.
func (s *Service) SubmitForm(ctx context.Context, tenantID, id string, form contract.FormData) (*Wizard, error) {
	w, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if w.Step != StepFormEntry {
		return nil, ErrInvalidStep
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	tmpl, err := catalog.Get(w.TemplateID)
	if err != nil {
		return nil, err
	}

	if !s.begin(id) {
		return nil, ErrBusy
	}
	defer s.end(id)

	doc, err := s.generator.Generate(ctx, form, tmpl, w.Language)
	if err != nil {
		return nil, s.generationError(w, err)
	}

	// The wizard may have moved while the request was in flight.
	current, err := s.mutate(ctx, tenantID, id, func(current *Wizard) error {
		if current.Step != StepFormEntry || current.TemplateID != w.TemplateID {
			return ErrInvalidStep
		}
		current.Form = &form
		current.Contract = doc
		current.Signatures = contract.Signatures{}
		current.Step = StepPreview
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("contract draft generated", "tenant_id", tenantID, "wizard_id", id, "template", tmpl.ID, "clauses", len(doc.Clauses))
	return current, nil
}

func (s *Service) generationError(w *Wizard, err error) error {
	key := "errorGenerating"
	if errors.Is(err, generation.ErrEmptyResult) {
		key = "errorGeneratingCheckInput"
	}
	s.logger.Warn("contract generation failed", "wizard_id", w.ID, "template", w.TemplateID, "error", err)
	return &GenerationError{
		Err:        err,
		MessageKey: key,
		Message:    s.messages.T(w.Language, key),
	}
}

// Back moves one step back, discarding the state of the step being left.
func (s *Service) Back(ctx context.Context, tenantID, id string) (*Wizard, error) {
	return s.mutate(ctx, tenantID, id, func(w *Wizard) error {
		switch w.Step {
		case StepFormEntry:
			if s.isBusy(id) {
				return ErrBusy
			}
			w.TemplateID = ""
			w.Step = StepTemplateSelection
		case StepPreview:
			w.Form = nil
			w.Contract = nil
			w.Signatures = contract.Signatures{}
			w.Step = StepFormEntry
		default:
			return ErrInvalidStep
		}
		return nil
	})
}

// SetLanguage switches the wizard's language. Form and draft are untouched.
func (s *Service) SetLanguage(ctx context.Context, tenantID, id string, lang localization.Language) (*Wizard, error) {
	if _, err := localization.ParseLanguage(string(lang)); err != nil {
		return nil, err
	}
	return s.mutate(ctx, tenantID, id, func(w *Wizard) error {
		w.Language = lang
		return nil
	})
}

// AddStroke appends a pen stroke to a signature pad.
func (s *Service) AddStroke(ctx context.Context, tenantID, id string, pad contract.Pad, stroke contract.Stroke) (*Wizard, error) {
	return s.mutate(ctx, tenantID, id, func(w *Wizard) error {
		if !w.inPreview() {
			return ErrInvalidStep
		}
		return w.Signatures.Add(pad, stroke)
	})
}

// ClearSignature erases one signature pad.
func (s *Service) ClearSignature(ctx context.Context, tenantID, id string, pad contract.Pad) (*Wizard, error) {
	return s.mutate(ctx, tenantID, id, func(w *Wizard) error {
		if !w.inPreview() {
			return ErrInvalidStep
		}
		return w.Signatures.Clear(pad)
	})
}

// Export renders the previewed draft with its signatures.
func (s *Service) Export(ctx context.Context, tenantID, id string) ([]byte, error) {
	w, err := s.previewWizard(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	data, err := s.exporter.Render(*w.Contract, w.Signatures)
	if err != nil {
		return nil, fmt.Errorf("exporting contract: %w", err)
	}
	return data, nil
}

// Save stores the previewed draft on the dashboard and closes the wizard.
func (s *Service) Save(ctx context.Context, tenantID, id string) (*dashboard.Contract, error) {
	unlock := s.lock(id)
	defer unlock()

	w, err := s.previewWizard(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	saved, err := s.saver.Save(ctx, tenantID, dashboard.SaveRequest{
		Title:   w.Contract.Title,
		Parties: w.Form.Parties(),
		Date:    w.Form.StartDate,
	})
	if err != nil {
		return nil, err
	}
	if err := s.wizards.Delete(ctx, tenantID, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("closing wizard: %w", err)
	}
	return saved, nil
}

// View renders a wizard in its language.
func (s *Service) View(w *Wizard) View {
	keys := stepKeys[w.Step]
	v := View{
		ID:              w.ID,
		Step:            w.Step,
		StepTitle:       s.messages.T(w.Language, keys[0]),
		StepDescription: s.messages.T(w.Language, keys[1]),
		Language:        w.Language,
		Form:            w.Form,
		Contract:        w.Contract,
		Signatures:      w.Signatures,
		Busy:            s.isBusy(w.ID),
		UpdatedAt:       w.UpdatedAt,
	}
	if tmpl, err := catalog.Get(w.TemplateID); err == nil {
		tv := tmpl.Localize(w.Language)
		v.Template = &tv
	}
	return v
}

func (s *Service) previewWizard(ctx context.Context, tenantID, id string) (*Wizard, error) {
	w, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !w.inPreview() {
		return nil, ErrInvalidStep
	}
	return w, nil
}

// mutate applies fn to the stored wizard and saves the result. Mutations
// of one wizard never interleave.
func (s *Service) mutate(ctx context.Context, tenantID, id string, fn func(*Wizard) error) (*Wizard, error) {
	unlock := s.lock(id)
	defer unlock()

	w, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := fn(w); err != nil {
		return nil, err
	}
	if err := s.save(ctx, tenantID, w); err != nil {
		return nil, err
	}
	return w, nil
}

// lock holds the per-wizard mutex until the returned func is called.
func (s *Service) lock(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &wizardLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		defer s.mu.Unlock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
	}
}

func (s *Service) save(ctx context.Context, tenantID string, w *Wizard) error {
	w.UpdatedAt = s.now()
	if err := s.wizards.Update(ctx, tenantID, w); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWizardNotFound
		}
		return fmt.Errorf("updating wizard: %w", err)
	}
	return nil
}

func (s *Service) begin(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inflight[id]; ok {
		return false
	}
	s.inflight[id] = struct{}{}
	return true
}

func (s *Service) end(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
}

func (s *Service) isBusy(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inflight[id]
	return ok
}
