package repositories

import (
	"context"

	"github.com/andreprog02/saas-sst/internal/database"
	"github.com/andreprog02/saas-sst/internal/models"
)

// tenantRepository implements TenantRepository
type tenantRepository struct {
	db *database.Connection
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *database.Connection) TenantRepository {
	return &tenantRepository{db: db}
}

// Create creates a new tenant
func (r *tenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	return r.db.WithContext(ctx).Create(tenant).Error
}

// GetByID retrieves a tenant by ID
func (r *tenantRepository) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := first(r.db.WithContext(ctx), &tenant, "id = ?", id); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GetAll retrieves all tenants
func (r *tenantRepository) GetAll(ctx context.Context) ([]*models.Tenant, error) {
	var tenants []*models.Tenant
	err := r.db.WithContext(ctx).Order("trade_name").Find(&tenants).Error
	return tenants, err
}

// Update updates an existing tenant
func (r *tenantRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	return r.db.WithContext(ctx).Save(tenant).Error
}

// Delete soft deletes a tenant
func (r *tenantRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Tenant{}, "id = ?", id).Error
}
