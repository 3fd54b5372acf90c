package services

import (
	"context"
	"fmt"

	"github.com/andreprog02/saas-sst/internal/models"
	"github.com/andreprog02/saas-sst/internal/repositories"
)

// tenantService implements TenantService
type tenantService struct {
	tenants repositories.TenantRepository
}

// NewTenantService creates a new tenant service
func NewTenantService(tenants repositories.TenantRepository) TenantService {
	return &tenantService{tenants: tenants}
}

// ResolveActive returns the tenant when it exists and is active
func (s *tenantService) ResolveActive(ctx context.Context, tenantID string) (*models.Tenant, error) {
	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant %s: %w", tenantID, err)
	}
	if !tenant.IsActive {
		return nil, fmt.Errorf("tenant %s: %w", tenantID, ErrTenantInactive)
	}
	return tenant, nil
}
