// Package systems is the catalog layer: it fetches system records through
// the resource client and applies the view-local search/category filter.
// The client is a pass-through cache of the backend's view; nothing here is
// persisted.
package systems

import (
	"context"

	"github.com/rbmoura/sysportal/internal/client/models"
)

// API is the slice of the backend surface the catalog needs.
type API interface {
	ListSystems(ctx context.Context) ([]models.System, error)
	GetSystem(ctx context.Context, id string) (*models.System, error)
	UpdateSystem(ctx context.Context, id string, patch models.SystemPatch) (*models.System, error)
	DeleteSystem(ctx context.Context, id string) error
}

type Service struct {
	api API
}

func NewService(api API) *Service {
	return &Service{api: api}
}

func (s *Service) List(ctx context.Context) ([]models.System, error) {
	return s.api.ListSystems(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.System, error) {
	return s.api.GetSystem(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, patch models.SystemPatch) (*models.System, error) {
	return s.api.UpdateSystem(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.api.DeleteSystem(ctx, id)
}
