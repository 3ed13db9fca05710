package settings

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/platform/db"
)

// ErrNotFound indicates the project has no settings rows at all. The
// service treats this as "unconfigured" and resolves defaults; it is
// never surfaced to callers as a failure.
var ErrNotFound = errors.New("settings: not found")

// Key prefixes used in project_settings rows. A project's workflow
// configuration is a flat key/value list so adding a governed entity
// or feature needs no migration.
const (
	keyPrefixFeature  = "feature."
	keyPrefixApproval = "approval."
)

// Repository defines persistence for per-project workflow settings.
type Repository interface {
	Load(ctx context.Context, projectID uuid.UUID) (*authz.Settings, error)
	Replace(ctx context.Context, projectID uuid.UUID, settings *authz.Settings) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Load reads all settings rows for the project and folds them into the
// resolver's shape. Unknown keys are skipped; unknown values are kept
// raw, the resolver fails them closed.
func (r *PGRepository) Load(ctx context.Context, projectID uuid.UUID) (*authz.Settings, error) {
	rows, err := r.pool.Query(ctx, `SELECT setting_key, setting_value FROM project_settings WHERE project_id = $1`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := &authz.Settings{
		Features:  make(map[authz.Feature]bool),
		Approvals: make(map[authz.Entity]authz.AuthorityMode),
	}
	found := false
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		found = true
		switch {
		case strings.HasPrefix(key, keyPrefixFeature):
			feature := authz.Feature(strings.TrimPrefix(key, keyPrefixFeature))
			settings.Features[feature] = value != "false"
		case strings.HasPrefix(key, keyPrefixApproval):
			entity := authz.Entity(strings.TrimPrefix(key, keyPrefixApproval))
			settings.Approvals[entity] = authz.AuthorityMode(value)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return settings, nil
}

// Replace swaps the project's settings rows for the given
// configuration in one transaction.
func (r *PGRepository) Replace(ctx context.Context, projectID uuid.UUID, settings *authz.Settings) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM project_settings WHERE project_id = $1`, projectID); err != nil {
			return err
		}
		for feature, enabled := range settings.Features {
			value := "true"
			if !enabled {
				value = "false"
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO project_settings (project_id, setting_key, setting_value) VALUES ($1, $2, $3)`,
				projectID, keyPrefixFeature+string(feature), value); err != nil {
				return err
			}
		}
		for entity, mode := range settings.Approvals {
			if _, err := tx.Exec(ctx,
				`INSERT INTO project_settings (project_id, setting_key, setting_value) VALUES ($1, $2, $3)`,
				projectID, keyPrefixApproval+string(entity), string(mode)); err != nil {
				return err
			}
		}
		return nil
	})
}

var _ Repository = (*PGRepository)(nil)
