package dashboard

import "context"

// Repository provides persistence for saved contracts.
type Repository interface {
	Create(ctx context.Context, tenantID string, c *Contract) error
	List(ctx context.Context, tenantID string) ([]Contract, error)
}
