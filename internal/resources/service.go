package resources

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/shared"
)

// Service wraps resource business rules. Responses are always the
// role-filtered view; raw records never leave the package.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get fetches one resource projected for the actor.
func (s *Service) Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*ResourceView, error) {
	if !authz.CanViewResources(actor.EffectiveRole) {
		return nil, fmt.Errorf("get resource: %w", shared.ErrForbidden)
	}
	res, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	view := NewResourceView(actor, *res)
	return &view, nil
}

// List returns resource views for a project. DefaultID is the actor's
// own resource when one is linked, for picker preselection.
func (s *Service) List(ctx context.Context, actor authz.Actor, req ListResourcesRequest) ([]ResourceView, *uuid.UUID, int, error) {
	if !authz.CanViewResources(actor.EffectiveRole) {
		return nil, nil, 0, fmt.Errorf("list resources: %w", shared.ErrForbidden)
	}
	resources, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, nil, 0, err
	}

	var defaultID *uuid.UUID
	views := make([]ResourceView, 0, len(resources))
	for _, res := range resources {
		view := NewResourceView(actor, res)
		if view.IsOwn && defaultID == nil {
			id := res.ID
			defaultID = &id
		}
		views = append(views, view)
	}
	return views, defaultID, total, nil
}

// Create adds a resource to the project rate card.
func (s *Service) Create(ctx context.Context, actor authz.Actor, req CreateResourceRequest) (*ResourceView, error) {
	if !authz.CanAddResource(actor.EffectiveRole) {
		return nil, fmt.Errorf("create resource: %w", shared.ErrForbidden)
	}

	res := Resource{
		ID:           uuid.New(),
		ProjectID:    req.ProjectID,
		Name:         req.Name,
		UserID:       req.UserID,
		ResourceType: req.ResourceType,
		SellPrice:    req.SellPrice,
		CostPrice:    req.CostPrice,
		Margin:       req.SellPrice - req.CostPrice,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, res); err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}
	view := NewResourceView(actor, res)
	return &view, nil
}

// Update edits a resource. Ownership grants nothing; this is a
// supplier-side operation.
func (s *Service) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req UpdateResourceRequest) (*ResourceView, error) {
	if !authz.CanEditResource(actor.EffectiveRole) {
		return nil, fmt.Errorf("update resource: %w", shared.ErrForbidden)
	}
	res, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		res.Name = *req.Name
	}
	if req.UserID != nil {
		res.UserID = *req.UserID
	}
	if req.ResourceType != nil {
		res.ResourceType = *req.ResourceType
	}
	if req.SellPrice != nil {
		res.SellPrice = *req.SellPrice
	}
	if req.CostPrice != nil {
		res.CostPrice = *req.CostPrice
	}
	res.Margin = res.SellPrice - res.CostPrice
	if req.Active != nil {
		res.Active = *req.Active
	}
	if err := s.repo.Update(ctx, *res); err != nil {
		return nil, fmt.Errorf("update resource: %w", err)
	}
	view := NewResourceView(actor, *res)
	return &view, nil
}

// Delete removes a resource.
func (s *Service) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if !authz.CanDeleteResource(actor.EffectiveRole) {
		return fmt.Errorf("delete resource: %w", shared.ErrForbidden)
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
