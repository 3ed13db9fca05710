package approvals

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Action enumerates approval history actions.
type Action string

const (
	// ActionSubmit marks a submit-for-approval transition.
	ActionSubmit Action = "SUBMIT"
	// ActionApprove marks an approval.
	ActionApprove Action = "APPROVE"
	// ActionReject marks a rejection.
	ActionReject Action = "REJECT"
	// ActionReturn marks a deliverable returned for more work.
	ActionReturn Action = "RETURN"
	// ActionDeliver marks a deliverable closed out.
	ActionDeliver Action = "DELIVER"
)

// Entry is a single approval history record. ActorID is always the
// real user, never an impersonated identity.
type Entry struct {
	ID      int64
	Entity  string
	RefID   uuid.UUID
	ActorID int64
	Action  Action
	Note    string
	At      time.Time
}

// Recorder persists approval history.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
	List(ctx context.Context, entity string, ref uuid.UUID) ([]Entry, error)
}

// PGRecorder implements Recorder on PostgreSQL.
type PGRecorder struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewRecorder constructs a PGRecorder.
func NewRecorder(pool *pgxpool.Pool, logger *slog.Logger) *PGRecorder {
	return &PGRecorder{pool: pool, logger: logger}
}

// Record writes an approval entry.
func (r *PGRecorder) Record(ctx context.Context, entry Entry) error {
	if r == nil {
		return errors.New("approval recorder not initialised")
	}
	if entry.Entity == "" {
		return errors.New("approval entity required")
	}
	if entry.ActorID == 0 {
		return errors.New("approval actor required")
	}
	if entry.RefID == uuid.Nil {
		return errors.New("approval ref id required")
	}
	if entry.Action == "" {
		return errors.New("approval action required")
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO approval_history (entity, ref_id, actor_id, action, note, at)
VALUES ($1, $2, $3, $4, $5, COALESCE(NULLIF($6, '0001-01-01'::timestamptz), NOW()))`,
		entry.Entity, entry.RefID, entry.ActorID, string(entry.Action), entry.Note, entry.At)
	if err != nil {
		r.logger.Error("record approval", slog.Any("error", err))
		return err
	}
	return nil
}

// List returns the approval history for one record, oldest first.
func (r *PGRecorder) List(ctx context.Context, entity string, ref uuid.UUID) ([]Entry, error) {
	if r == nil {
		return nil, errors.New("approval recorder not initialised")
	}
	rows, err := r.pool.Query(ctx, `SELECT id, entity, ref_id, actor_id, action, note, at
FROM approval_history WHERE entity=$1 AND ref_id=$2 ORDER BY at ASC`, entity, ref)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var e Entry
		var action string
		if err := rows.Scan(&e.ID, &e.Entity, &e.RefID, &e.ActorID, &action, &e.Note, &e.At); err != nil {
			return nil, err
		}
		e.Action = Action(action)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

var _ Recorder = (*PGRecorder)(nil)
