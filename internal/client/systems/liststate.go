package systems

import (
	"context"

	"github.com/rbmoura/sysportal/internal/client/models"
)

// ListState is the in-memory copy of the catalog held by the list view
// between a fetch and navigating away. An entry leaves the list only after
// the backend confirms its deletion with a 2xx; a failed delete (404
// included) keeps the entry in place.
type ListState struct {
	svc     *Service
	Systems []models.System
}

// NewListState fetches the catalog and returns the view state around it.
func NewListState(ctx context.Context, svc *Service) (*ListState, error) {
	list, err := svc.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListState{svc: svc, Systems: list}, nil
}

// Delete asks the backend to remove the record and, only on success, drops
// it from the in-memory list.
func (st *ListState) Delete(ctx context.Context, id string) error {
	if err := st.svc.Delete(ctx, id); err != nil {
		return err
	}
	for i, sys := range st.Systems {
		if sys.ID == id {
			st.Systems = append(st.Systems[:i], st.Systems[i+1:]...)
			break
		}
	}
	return nil
}

// Find returns the listed record with the given id, if present.
func (st *ListState) Find(id string) (models.System, bool) {
	for _, sys := range st.Systems {
		if sys.ID == id {
			return sys, true
		}
	}
	return models.System{}, false
}
