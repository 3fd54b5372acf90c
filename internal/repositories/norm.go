package repositories

import (
	"context"

	"github.com/andreprog02/saas-sst/internal/database"
	"github.com/andreprog02/saas-sst/internal/models"
)

// normRepository implements NormRepository
type normRepository struct {
	db *database.Connection
}

// NewNormRepository creates a new regulatory norm repository
func NewNormRepository(db *database.Connection) NormRepository {
	return &normRepository{db: db}
}

// GetAll retrieves the catalog ordered by code
func (r *normRepository) GetAll(ctx context.Context) ([]*models.RegulatoryNorm, error) {
	var norms []*models.RegulatoryNorm
	err := r.db.WithContext(ctx).Order("code").Find(&norms).Error
	return norms, err
}

// GetByID retrieves a norm by ID
func (r *normRepository) GetByID(ctx context.Context, id string) (*models.RegulatoryNorm, error) {
	var norm models.RegulatoryNorm
	if err := first(r.db.WithContext(ctx), &norm, "id = ?", id); err != nil {
		return nil, err
	}
	return &norm, nil
}

// GetByCode retrieves a norm by its code
func (r *normRepository) GetByCode(ctx context.Context, code string) (*models.RegulatoryNorm, error) {
	var norm models.RegulatoryNorm
	if err := first(r.db.WithContext(ctx), &norm, "code = ?", code); err != nil {
		return nil, err
	}
	return &norm, nil
}

// Seed inserts the norms whose code is not yet present and returns how many were created
func (r *normRepository) Seed(ctx context.Context, norms []models.RegulatoryNorm) (int, error) {
	created := 0
	for _, n := range norms {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.RegulatoryNorm{}).Where("code = ?", n.Code).Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}
		norm := n
		if err := r.db.WithContext(ctx).Create(&norm).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
