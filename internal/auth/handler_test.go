package auth_test

import (
	"context"
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
	"golang.org/x/crypto/bcrypt"

	"github.com/tracklane/tracklane/internal/auth"
	"github.com/tracklane/tracklane/internal/shared"
)

type stubRepo struct {
	user     *auth.User
	sessions map[string]int64
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, shared.ErrNotFound
	}
	return s.user, nil
}

func (s *stubRepo) CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	if s.sessions == nil {
		s.sessions = make(map[string]int64)
	}
	s.sessions[id] = userID
	return nil
}

func (s *stubRepo) DeleteSession(ctx context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func newHandler(t *testing.T, repo auth.Repository) (*auth.Handler, *shared.SessionManager) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := shared.NewSessionManager(client, "test_session", "secret", time.Hour, false)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewHandler(logger, auth.NewService(repo), sessions), sessions
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func doLogin(t *testing.T, h *auth.Handler, sessions *shared.SessionManager, body string) (*httptest.ResponseRecorder, *shared.Session) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	sess, err := sessions.Load(req.Context(), req)
	require.NoError(t, err)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	return rec, sess
}

func TestLoginSuccess(t *testing.T) {
	repo := &stubRepo{user: &auth.User{
		ID:           42,
		Email:        "pm@example.com",
		PasswordHash: hashPassword(t, "correct-horse"),
		IsActive:     true,
	}}
	h, sessions := newHandler(t, repo)

	rec, sess := doLogin(t, h, sessions, `{"email":"pm@example.com","password":"correct-horse"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", sess.User())
	assert.Len(t, repo.sessions, 1)
}

func TestLoginBadPassword(t *testing.T) {
	repo := &stubRepo{user: &auth.User{
		ID:           42,
		Email:        "pm@example.com",
		PasswordHash: hashPassword(t, "correct-horse"),
		IsActive:     true,
	}}
	h, sessions := newHandler(t, repo)

	rec, sess := doLogin(t, h, sessions, `{"email":"pm@example.com","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, sess.User())
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := &stubRepo{user: &auth.User{
		ID:           42,
		Email:        "pm@example.com",
		PasswordHash: hashPassword(t, "correct-horse"),
		IsActive:     false,
	}}
	h, sessions := newHandler(t, repo)

	rec, _ := doLogin(t, h, sessions, `{"email":"pm@example.com","password":"correct-horse"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginValidation(t *testing.T) {
	h, sessions := newHandler(t, &stubRepo{})

	rec, _ := doLogin(t, h, sessions, `{"email":"not-an-email","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutDestroysSession(t *testing.T) {
	repo := &stubRepo{user: &auth.User{
		ID:           42,
		Email:        "pm@example.com",
		PasswordHash: hashPassword(t, "correct-horse"),
		IsActive:     true,
	}, sessions: map[string]int64{}}
	h, sessions := newHandler(t, repo)

	_, sess := doLogin(t, h, sessions, `{"email":"pm@example.com","password":"correct-horse"}`)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	rec := httptest.NewRecorder()
	h.Logout(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, repo.sessions)
}
