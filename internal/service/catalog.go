package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/aqabadeal-png/canroad/internal/domain"
	"github.com/aqabadeal-png/canroad/internal/repository"
)

// EstimateRefresher re-derives live estimates after a catalog change.
type EstimateRefresher interface {
	RefreshAll(ctx context.Context)
}

// CatalogService manages the service catalog. Admins may add custom
// services; pricing picks up changes through the refresher.
type CatalogService struct {
	repo      repository.ServiceRepository
	refresher EstimateRefresher
}

// NewCatalogService creates a new CatalogService. The refresher may be
// nil.
func NewCatalogService(repo repository.ServiceRepository, refresher EstimateRefresher) *CatalogService {
	return &CatalogService{repo: repo, refresher: refresher}
}

// List returns the catalog in display order.
func (s *CatalogService) List(ctx context.Context) ([]*domain.Service, error) {
	return s.repo.GetAll(ctx)
}

// Get returns one catalog row.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Service, error) {
	return s.repo.GetByID(ctx, id)
}

// Add creates a catalog row. An empty id gets a generated one; custom ids
// are allowed but must be unused.
func (s *CatalogService) Add(ctx context.Context, svc domain.Service) (*domain.Service, error) {
	if err := validateService(svc); err != nil {
		return nil, err
	}

	if svc.ID == "" {
		svc.ID = "svc-" + uuid.New().String()
	} else if _, err := s.repo.GetByID(ctx, svc.ID); err == nil {
		return nil, ErrServiceExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if err := s.repo.Create(ctx, &svc); err != nil {
		return nil, err
	}
	s.refresh(ctx)
	return &svc, nil
}

// Update replaces a catalog row.
func (s *CatalogService) Update(ctx context.Context, svc domain.Service) (*domain.Service, error) {
	if err := validateService(svc); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &svc); err != nil {
		return nil, err
	}
	s.refresh(ctx)
	return &svc, nil
}

func (s *CatalogService) refresh(ctx context.Context) {
	if s.refresher != nil {
		s.refresher.RefreshAll(ctx)
	}
}

func validateService(svc domain.Service) error {
	if svc.Title == "" {
		return ErrInvalidServiceTitle
	}
	if svc.BasePrice < 0 {
		return ErrInvalidBasePrice
	}
	return nil
}
