package memory

import (
	"context"
	"sync"

	"github.com/aqabadeal-png/canroad/internal/domain"
	"github.com/aqabadeal-png/canroad/internal/repository"
)

// ServiceRepository is an in-memory implementation of
// repository.ServiceRepository. Insertion order is preserved so the
// catalog renders the way it was seeded.
type ServiceRepository struct {
	mu       sync.RWMutex
	services map[string]*domain.Service
	order    []string
}

// NewServiceRepository creates an empty in-memory service catalog.
func NewServiceRepository() *ServiceRepository {
	return &ServiceRepository{services: make(map[string]*domain.Service)}
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	svc, ok := r.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *svc
	return &cp, nil
}

func (r *ServiceRepository) GetAll(ctx context.Context) ([]*domain.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.Service, 0, len(r.order))
	for _, id := range r.order {
		cp := *r.services[id]
		result = append(result, &cp)
	}
	return result, nil
}

func (r *ServiceRepository) Create(ctx context.Context, svc *domain.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.services[svc.ID]; !exists {
		r.order = append(r.order, svc.ID)
	}
	cp := *svc
	r.services[svc.ID] = &cp
	return nil
}

func (r *ServiceRepository) Update(ctx context.Context, svc *domain.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[svc.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *svc
	r.services[svc.ID] = &cp
	return nil
}

var _ repository.ServiceRepository = (*ServiceRepository)(nil)
