package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rs/xid"
)

// Service lists and saves dashboard contracts.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new dashboard service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// List returns the seed contracts followed by the tenant's saved ones,
// filtered by q.
func (s *Service) List(ctx context.Context, tenantID string, q Query) ([]Contract, error) {
	saved, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	all := append(Seeds(), saved...)
	return Filter(all, q), nil
}

// Save stores a contract produced by the creation workflow as an active row.
func (s *Service) Save(ctx context.Context, tenantID string, req SaveRequest) (*Contract, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrInvalidInput
	}

	now := s.now()
	date := strings.TrimSpace(req.Date)
	if _, err := time.Parse(DateLayout, date); err != nil {
		date = now.Format(DateLayout)
	}

	c := &Contract{
		ID:        xid.New().String(),
		TenantID:  tenantID,
		Title:     req.Title,
		Parties:   req.Parties,
		Date:      date,
		Status:    StatusActive,
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, tenantID, c); err != nil {
		return nil, fmt.Errorf("saving contract: %w", err)
	}

	s.logger.Info("contract saved", "tenant_id", tenantID, "contract_id", c.ID)
	return c, nil
}
