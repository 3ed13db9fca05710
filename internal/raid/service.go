package raid

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/shared"
)

// SettingsSource yields the workflow settings for a project.
type SettingsSource interface {
	Get(ctx context.Context, projectID uuid.UUID) *authz.Settings
}

// Service wraps RAID log business rules.
type Service struct {
	repo     Repository
	settings SettingsSource
}

// NewService constructs a Service.
func NewService(repo Repository, settings SettingsSource) *Service {
	return &Service{repo: repo, settings: settings}
}

// Get fetches one RAID item.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repo.Get(ctx, id)
}

// List returns RAID item views for a project with per-record allowed
// actions evaluated for the actor.
func (s *Service) List(ctx context.Context, actor authz.Actor, req ListItemsRequest) ([]ItemView, int, error) {
	if !authz.CanViewRaid(actor.EffectiveRole) {
		return nil, 0, fmt.Errorf("list raid items: %w", shared.ErrForbidden)
	}
	items, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	views := make([]ItemView, 0, len(items))
	for _, i := range items {
		views = append(views, NewItemView(actor, i))
	}
	return views, total, nil
}

// Create adds an item to the log. Unless assigned elsewhere, the item
// is owned by its creator.
func (s *Service) Create(ctx context.Context, actor authz.Actor, req CreateItemRequest) (*Item, error) {
	if !authz.CanAddRaid(actor.EffectiveRole) {
		return nil, fmt.Errorf("create raid item: %w", shared.ErrForbidden)
	}
	if !authz.IsFeatureEnabled(s.settings.Get(ctx, req.ProjectID), authz.FeatureRaid) {
		return nil, fmt.Errorf("create raid item: feature disabled: %w", shared.ErrForbidden)
	}

	owner := req.OwnerUserID
	if owner == 0 {
		owner = actor.UserID
	}
	item := Item{
		ID:          uuid.New(),
		ProjectID:   req.ProjectID,
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Severity:    req.Severity,
		Open:        true,
		OwnerUserID: owner,
		CreatedBy:   actor.UserID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create raid item: %w", err)
	}
	return &item, nil
}

// Update edits an item. Managers may edit anything; owners maintain
// their own items.
func (s *Service) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req UpdateItemRequest) (*Item, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditRaidItem(actor, item.GuardState()) {
		return nil, fmt.Errorf("update raid item: %w", shared.ErrForbidden)
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Severity != nil {
		item.Severity = *req.Severity
	}
	if req.OwnerUserID != nil {
		item.OwnerUserID = *req.OwnerUserID
	}
	if req.Open != nil && *req.Open != item.Open {
		item.Open = *req.Open
		if item.Open {
			item.ClosedAt = nil
		} else {
			now := time.Now().UTC()
			item.ClosedAt = &now
		}
	}
	if err := s.repo.Update(ctx, *item); err != nil {
		return nil, fmt.Errorf("update raid item: %w", err)
	}
	return item, nil
}

// Delete removes an item from the log. Ownership grants nothing here;
// removal stays with the supplier side.
func (s *Service) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanDeleteRaidItem(actor, item.GuardState()) {
		return fmt.Errorf("delete raid item: %w", shared.ErrForbidden)
	}
	return s.repo.Delete(ctx, id)
}
