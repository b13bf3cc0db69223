package repository

import (
	"context"

	"github.com/aqabadeal-png/canroad/internal/domain"
)

// UserRepository defines the storage operations for user accounts.
type UserRepository interface {
	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email (case-insensitive).
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetAll retrieves all users.
	GetAll(ctx context.Context) ([]*domain.User, error)

	// GetByRole retrieves all users holding the given role.
	GetByRole(ctx context.Context, role domain.UserRole) ([]*domain.User, error)

	// Create stores a new user.
	Create(ctx context.Context, user *domain.User) error

	// Update replaces an existing user.
	Update(ctx context.Context, user *domain.User) error
}
