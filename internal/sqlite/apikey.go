package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rpggio/qontract/internal/repository"
)

var _ repository.APIKeyRepository = (*APIKeyRepository)(nil)

// APIKeyRepository stores hashed bearer tokens
type APIKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new APIKeyRepository
func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// AddAPIKey registers a token for a tenant. Re-adding a token rebinds it.
func (r *APIKeyRepository) AddAPIKey(ctx context.Context, token, tenantID, description string) error {
	if token == "" || tenantID == "" {
		return fmt.Errorf("api key: token and tenant are required")
	}
	query := `
		INSERT INTO api_keys (key_hash, tenant_id, description)
		VALUES (?, ?, ?)
		ON CONFLICT(key_hash) DO UPDATE SET tenant_id = excluded.tenant_id, description = excluded.description
	`
	if _, err := r.db.ExecContext(ctx, query, HashToken(token), tenantID, description); err != nil {
		return fmt.Errorf("failed to add api key: %w", err)
	}
	return nil
}

// ResolveTenant returns the tenant owning token and records its use.
func (r *APIKeyRepository) ResolveTenant(ctx context.Context, token string) (string, error) {
	hash := HashToken(token)
	var tenantID string
	err := r.db.QueryRowContext(ctx, `SELECT tenant_id FROM api_keys WHERE key_hash = ?`, hash).Scan(&tenantID)
	if err == sql.ErrNoRows || (err == nil && tenantID == "") {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve api key: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE api_keys SET last_used = ? WHERE key_hash = ?`, time.Now(), hash); err != nil {
		return "", fmt.Errorf("failed to touch api key: %w", err)
	}
	return tenantID, nil
}

// HashToken returns the stored form of a bearer token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
