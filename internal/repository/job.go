package repository

import (
	"context"

	"github.com/aqabadeal-png/canroad/internal/domain"
)

// JobRepository defines the storage operations for jobs.
type JobRepository interface {
	// Create stores a new job.
	Create(ctx context.Context, job *domain.Job) error

	// GetByID retrieves a job by ID.
	GetByID(ctx context.Context, id string) (*domain.Job, error)

	// GetAll retrieves all jobs, newest first.
	GetAll(ctx context.Context) ([]*domain.Job, error)

	// Update replaces an existing job.
	Update(ctx context.Context, job *domain.Job) error

	// CountActive returns the number of jobs in a non-terminal status.
	CountActive(ctx context.Context) (int, error)

	// GetActiveByCustomer returns the customer's single non-terminal job,
	// or ErrNotFound.
	GetActiveByCustomer(ctx context.Context, customerID string) (*domain.Job, error)
}
