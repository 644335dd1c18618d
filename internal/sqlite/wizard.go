package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rpggio/qontract/internal/domain/contract"
	"github.com/rpggio/qontract/internal/domain/workflow"
	"github.com/rpggio/qontract/internal/localization"
	"github.com/rpggio/qontract/internal/repository"
)

// WizardRepository implements workflow.Repository for SQLite
type WizardRepository struct {
	db *DB
}

// NewWizardRepository creates a new WizardRepository
func NewWizardRepository(db *DB) *WizardRepository {
	return &WizardRepository{db: db}
}

// Create inserts a new wizard
func (r *WizardRepository) Create(ctx context.Context, tenantID string, w *workflow.Wizard) error {
	form, doc, sigs, err := encodeWizard(w)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO wizards (
			id, tenant_id, step, language, template_id,
			form, contract, signatures, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		w.ID,
		tenantID,
		w.Step,
		w.Language,
		w.TemplateID,
		form,
		doc,
		sigs,
		w.CreatedAt,
		w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create wizard: %w", err)
	}
	return nil
}

// Get retrieves a wizard by ID
func (r *WizardRepository) Get(ctx context.Context, tenantID, id string) (*workflow.Wizard, error) {
	query := `
		SELECT
			id, tenant_id, step, language, template_id,
			form, contract, signatures, created_at, updated_at
		FROM wizards
		WHERE id = ? AND tenant_id = ?
	`

	var w workflow.Wizard
	var step, lang string
	var templateID, form, doc sql.NullString
	var sigs string
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&w.ID,
		&w.TenantID,
		&step,
		&lang,
		&templateID,
		&form,
		&doc,
		&sigs,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wizard: %w", err)
	}

	w.Step = workflow.Step(step)
	w.Language = localization.Language(lang)
	w.TemplateID = templateID.String

	if form.Valid && form.String != "" {
		w.Form = &contract.FormData{}
		if err := json.Unmarshal([]byte(form.String), w.Form); err != nil {
			return nil, fmt.Errorf("failed to decode wizard form: %w", err)
		}
	}
	if doc.Valid && doc.String != "" {
		w.Contract = &contract.GeneratedContract{}
		if err := json.Unmarshal([]byte(doc.String), w.Contract); err != nil {
			return nil, fmt.Errorf("failed to decode wizard contract: %w", err)
		}
	}
	if sigs != "" {
		if err := json.Unmarshal([]byte(sigs), &w.Signatures); err != nil {
			return nil, fmt.Errorf("failed to decode wizard signatures: %w", err)
		}
	}

	return &w, nil
}

// Update overwrites a wizard's state
func (r *WizardRepository) Update(ctx context.Context, tenantID string, w *workflow.Wizard) error {
	form, doc, sigs, err := encodeWizard(w)
	if err != nil {
		return err
	}

	query := `
		UPDATE wizards
		SET step = ?, language = ?, template_id = ?,
		    form = ?, contract = ?, signatures = ?, updated_at = ?
		WHERE id = ? AND tenant_id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		w.Step,
		w.Language,
		w.TemplateID,
		form,
		doc,
		sigs,
		w.UpdatedAt,
		w.ID,
		tenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update wizard: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a wizard
func (r *WizardRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM wizards WHERE id = ? AND tenant_id = ?`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete wizard: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func encodeWizard(w *workflow.Wizard) (form, doc sql.NullString, sigs string, err error) {
	if w.Form != nil {
		data, err := json.Marshal(w.Form)
		if err != nil {
			return form, doc, "", fmt.Errorf("failed to encode wizard form: %w", err)
		}
		form = sql.NullString{String: string(data), Valid: true}
	}
	if w.Contract != nil {
		data, err := json.Marshal(w.Contract)
		if err != nil {
			return form, doc, "", fmt.Errorf("failed to encode wizard contract: %w", err)
		}
		doc = sql.NullString{String: string(data), Valid: true}
	}
	data, err := json.Marshal(w.Signatures)
	if err != nil {
		return form, doc, "", fmt.Errorf("failed to encode wizard signatures: %w", err)
	}
	return form, doc, string(data), nil
}
