package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/qontract/internal/domain/dashboard"
	"github.com/rpggio/qontract/internal/repository"
)

// ContractRepository implements dashboard.Repository for SQLite
type ContractRepository struct {
	db *DB
}

// NewContractRepository creates a new ContractRepository
func NewContractRepository(db *DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// Create stores a saved contract
func (r *ContractRepository) Create(ctx context.Context, tenantID string, c *dashboard.Contract) error {
	query := `
		INSERT INTO contracts (id, tenant_id, title, parties, date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		tenantID,
		c.Title,
		c.Parties,
		c.Date,
		c.Status,
		c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

// List returns a tenant's saved contracts, newest first
func (r *ContractRepository) List(ctx context.Context, tenantID string) ([]dashboard.Contract, error) {
	query := `
		SELECT id, tenant_id, title, parties, date, status, created_at
		FROM contracts
		WHERE tenant_id = ?
		ORDER BY created_at DESC, rowid DESC
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var contracts []dashboard.Contract
	for rows.Next() {
		var c dashboard.Contract
		var status string
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Title, &c.Parties, &c.Date, &status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		c.Status = dashboard.Status(status)
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contracts: %w", err)
	}

	return contracts, nil
}
