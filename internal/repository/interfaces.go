package repository

import "context"

// APIKeyRepository resolves bearer tokens to tenants. Domain repositories
// are declared next to the services that consume them.
type APIKeyRepository interface {
	AddAPIKey(ctx context.Context, token, tenantID, description string) error
	ResolveTenant(ctx context.Context, token string) (string, error)
}
