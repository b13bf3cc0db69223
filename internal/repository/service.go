package repository

import (
	"context"

	"github.com/aqabadeal-png/canroad/internal/domain"
)

// ServiceRepository defines the storage operations for the service catalog.
type ServiceRepository interface {
	// GetByID retrieves a catalog row by ID.
	GetByID(ctx context.Context, id string) (*domain.Service, error)

	// GetAll retrieves the catalog in insertion order.
	GetAll(ctx context.Context) ([]*domain.Service, error)

	// Create stores a new catalog row.
	Create(ctx context.Context, svc *domain.Service) error

	// Update replaces an existing catalog row.
	Update(ctx context.Context, svc *domain.Service) error
}
