package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rpggio/qontract/internal/domain/dashboard"
	"github.com/rpggio/qontract/internal/domain/workflow"
)

// WizardRepository is a mock for workflow.Repository.
type WizardRepository struct {
	mock.Mock
}

func (m *WizardRepository) Create(ctx context.Context, tenantID string, w *workflow.Wizard) error {
	args := m.Called(ctx, tenantID, w)
	return args.Error(0)
}

func (m *WizardRepository) Get(ctx context.Context, tenantID, id string) (*workflow.Wizard, error) {
	args := m.Called(ctx, tenantID, id)
	if w, ok := args.Get(0).(*workflow.Wizard); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *WizardRepository) Update(ctx context.Context, tenantID string, w *workflow.Wizard) error {
	args := m.Called(ctx, tenantID, w)
	return args.Error(0)
}

func (m *WizardRepository) Delete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// ContractRepository is a mock for dashboard.Repository.
type ContractRepository struct {
	mock.Mock
}

func (m *ContractRepository) Create(ctx context.Context, tenantID string, c *dashboard.Contract) error {
	args := m.Called(ctx, tenantID, c)
	return args.Error(0)
}

func (m *ContractRepository) List(ctx context.Context, tenantID string) ([]dashboard.Contract, error) {
	args := m.Called(ctx, tenantID)
	if list, ok := args.Get(0).([]dashboard.Contract); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// APIKeyRepository is a mock for repository.APIKeyRepository.
type APIKeyRepository struct {
	mock.Mock
}

func (m *APIKeyRepository) AddAPIKey(ctx context.Context, token, tenantID, description string) error {
	args := m.Called(ctx, token, tenantID, description)
	return args.Error(0)
}

func (m *APIKeyRepository) ResolveTenant(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}
