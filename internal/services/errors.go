package services

import (
	"errors"

	"github.com/andreprog02/saas-sst/internal/repositories"
)

// Common service errors
var (
	ErrNotFound            = repositories.ErrNotFound
	ErrEmployeeNotEligible = errors.New("employee is not eligible")
	ErrAssetNotFound       = errors.New("asset not found")
	ErrTenantInactive      = errors.New("tenant is inactive")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrCacheMiss           = errors.New("cache miss")
)
