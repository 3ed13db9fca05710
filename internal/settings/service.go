package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
)

// Service resolves and updates per-project workflow settings. It is
// the only place that knows about storage and caching; callers receive
// an *authz.Settings and hand it straight to the resolver, which owns
// every defaulting rule.
type Service struct {
	repo   Repository
	cache  *Cache
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, cache *Cache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// Get returns the project's settings. An unconfigured project returns
// nil settings, which the resolver reads as all defaults. Storage
// failures also resolve to nil so permission evaluation stays on the
// safe path instead of erroring the request.
func (s *Service) Get(ctx context.Context, projectID uuid.UUID) *authz.Settings {
	if projectID == uuid.Nil {
		return nil
	}
	if cached, ok := s.cache.Get(ctx, projectID); ok {
		return cached
	}
	loaded, err := s.repo.Load(ctx, projectID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) && s.logger != nil {
			s.logger.Warn("load project settings", slog.Any("error", err), slog.String("project_id", projectID.String()))
		}
		return nil
	}
	if err := s.cache.Set(ctx, projectID, loaded); err != nil && s.logger != nil {
		s.logger.Warn("cache project settings", slog.Any("error", err))
	}
	return loaded
}

// Update validates and replaces the project's configuration, then
// invalidates the cache.
func (s *Service) Update(ctx context.Context, projectID uuid.UUID, settings *authz.Settings) error {
	if projectID == uuid.Nil {
		return errors.New("settings: project id required")
	}
	if settings == nil {
		return errors.New("settings: configuration required")
	}
	for entity, mode := range settings.Approvals {
		if _, ok := authz.ParseAuthorityMode(string(mode)); !ok {
			return fmt.Errorf("settings: unknown approval authority %q for %s", mode, entity)
		}
	}
	if err := s.repo.Replace(ctx, projectID, settings); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	if err := s.cache.Invalidate(ctx, projectID); err != nil && s.logger != nil {
		s.logger.Warn("invalidate settings cache", slog.Any("error", err))
	}
	return nil
}

// Warm loads settings for the given projects into the cache. Used by
// the background warmup job; failures are logged and skipped.
func (s *Service) Warm(ctx context.Context, projectIDs []uuid.UUID) {
	for _, id := range projectIDs {
		if _, ok := s.cache.Get(ctx, id); ok {
			continue
		}
		loaded, err := s.repo.Load(ctx, id)
		if err != nil {
			continue
		}
		if err := s.cache.Set(ctx, id, loaded); err != nil && s.logger != nil {
			s.logger.Warn("warm settings cache", slog.Any("error", err))
		}
	}
}
