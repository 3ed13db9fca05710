package settings

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tracklane/tracklane/internal/authz"
)

// Cache keeps resolved project settings in Redis so that permission
// evaluation on every render does not hit Postgres. Entries are
// short-lived and invalidated on update; a cache miss or a Redis
// outage just falls through to the repository.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a Cache.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

type cachedSettings struct {
	Features  map[authz.Feature]bool               `json:"features"`
	Approvals map[authz.Entity]authz.AuthorityMode `json:"approvals"`
}

// Get returns the cached settings, ok=false on miss or error.
func (c *Cache) Get(ctx context.Context, projectID uuid.UUID) (*authz.Settings, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, c.key(projectID)).Bytes()
	if err != nil {
		return nil, false
	}
	var stored cachedSettings
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, false
	}
	return &authz.Settings{Features: stored.Features, Approvals: stored.Approvals}, true
}

// Set stores the settings under the project key.
func (c *Cache) Set(ctx context.Context, projectID uuid.UUID, settings *authz.Settings) error {
	if c == nil || c.client == nil || settings == nil {
		return nil
	}
	data, err := json.Marshal(cachedSettings{Features: settings.Features, Approvals: settings.Approvals})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(projectID), data, c.ttl).Err()
}

// Invalidate drops the cached entry after an update.
func (c *Cache) Invalidate(ctx context.Context, projectID uuid.UUID) error {
	if c == nil || c.client == nil {
		return nil
	}
	err := c.client.Del(ctx, c.key(projectID)).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

func (c *Cache) key(projectID uuid.UUID) string {
	return "project_settings:" + projectID.String()
}
