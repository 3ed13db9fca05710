package impersonation

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/shared"
)

func testSession(t *testing.T) *shared.Session {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	manager := shared.NewSessionManager(client, "tracklane_session", "secret", time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := manager.Load(context.Background(), req)
	require.NoError(t, err)
	return sess
}

func requestWith(method, target, body string, sess *shared.Session, actor authz.Actor) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	ctx := shared.ContextWithSession(req.Context(), sess)
	ctx = shared.ContextWithActor(ctx, actor)
	return req.WithContext(ctx)
}

func newTestHandler() *Handler {
	return NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStartRequiresOrgLevelAdmin(t *testing.T) {
	h := newTestHandler()
	sess := testSession(t)
	actor := authz.ResolveActor(&authz.Identity{UserID: 7}, nil, &authz.ProjectAssignment{Role: authz.RoleSupplierPM}, nil)

	rec := httptest.NewRecorder()
	h.Start(rec, requestWith(http.MethodPost, "/impersonation", `{"role":"viewer"}`, sess, actor))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, sess.ImpersonatedRole())
}

func TestStartSetsSessionOverride(t *testing.T) {
	h := newTestHandler()
	sess := testSession(t)
	actor := authz.ResolveActor(&authz.Identity{UserID: 1, IsSystemAdmin: true}, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.Start(rec, requestWith(http.MethodPost, "/impersonation", `{"role":"customer_finance"}`, sess, actor))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "customer_finance", sess.ImpersonatedRole())

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Active)
	assert.Equal(t, "customer_finance", resp.EffectiveRole)
	assert.Equal(t, "admin", resp.ActualRole)
}

func TestStartRejectsUnknownRole(t *testing.T) {
	h := newTestHandler()
	sess := testSession(t)
	actor := authz.ResolveActor(&authz.Identity{UserID: 1, IsSystemAdmin: true}, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.Start(rec, requestWith(http.MethodPost, "/impersonation", `{"role":"superuser"}`, sess, actor))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, sess.ImpersonatedRole())
}

func TestStopClearsOverride(t *testing.T) {
	h := newTestHandler()
	sess := testSession(t)
	sess.SetImpersonatedRole("viewer")
	actor := authz.ResolveActor(&authz.Identity{UserID: 1, IsSystemAdmin: true}, nil, nil,
		&authz.Impersonation{Active: true, Role: authz.RoleViewer, Authorized: true})

	rec := httptest.NewRecorder()
	h.Stop(rec, requestWith(http.MethodDelete, "/impersonation", "", sess, actor))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, sess.ImpersonatedRole())
}

func TestStatusReportsActualAndEffective(t *testing.T) {
	h := newTestHandler()
	sess := testSession(t)
	sess.SetImpersonatedRole("contributor")
	actor := authz.ResolveActor(&authz.Identity{UserID: 1, IsSystemAdmin: true}, nil, nil,
		&authz.Impersonation{Active: true, Role: authz.RoleContributor, Authorized: true})

	rec := httptest.NewRecorder()
	h.Status(rec, requestWith(http.MethodGet, "/impersonation", "", sess, actor))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Active)
	assert.Equal(t, "contributor", resp.Role)
	assert.Equal(t, "admin", resp.ActualRole)
	assert.Equal(t, "contributor", resp.EffectiveRole)
}
