package approvals

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/identity"
	"github.com/tracklane/tracklane/internal/platform/httpx"
	"github.com/tracklane/tracklane/internal/shared"
)

// SettingsSource yields the workflow settings for a project.
type SettingsSource interface {
	Get(ctx context.Context, projectID uuid.UUID) *authz.Settings
}

// Handler serves the approvals inbox and history endpoints.
type Handler struct {
	logger   *slog.Logger
	inbox    Inbox
	settings SettingsSource
	recorder Recorder
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, inbox Inbox, settings SettingsSource, recorder Recorder) *Handler {
	return &Handler{logger: logger, inbox: inbox, settings: settings, recorder: recorder}
}

// MountRoutes registers the approvals endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(identity.RequireUser)
		r.Get("/projects/{projectID}/approvals", h.Pending)
		r.Get("/approvals/{entity}/{refID}/history", h.History)
	})
}

// Pending lists all records across entity types the actor may decide
// on right now.
func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Project", "project id must be a UUID")
		return
	}
	actor := shared.ActorFromContext(r.Context())
	settings := h.settings.Get(r.Context(), projectID)

	view, err := h.inbox.Pending(r.Context(), actor, settings, projectID)
	if err != nil {
		h.logger.Error("approvals inbox", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

type historyEntry struct {
	ActorID int64     `json:"actor_id"`
	Action  Action    `json:"action"`
	Note    string    `json:"note,omitempty"`
	At      time.Time `json:"at"`
}

var historyEntities = map[string]bool{
	"expense":     true,
	"timesheet":   true,
	"deliverable": true,
}

// History returns the approval trail for a single record, newest
// first.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	if !historyEntities[entity] {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Entity", "unknown entity "+entity)
		return
	}
	refID, err := uuid.Parse(chi.URLParam(r, "refID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Reference", "reference id must be a UUID")
		return
	}

	entries, err := h.recorder.List(r.Context(), entity, refID)
	if err != nil {
		h.logger.Error("approvals history", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]historyEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyEntry{ActorID: e.ActorID, Action: e.Action, Note: e.Note, At: e.At})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"entries": out})
}
