package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"skybook/internal/logger"
	"skybook/internal/models"
	"skybook/internal/session"
)

type memoryStore struct {
	sessions map[string]session.Session
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: make(map[string]session.Session)}
}

func (m *memoryStore) Create(_ context.Context, s session.Session) (string, error) {
	token := uuid.New().String()
	m.sessions[token] = s
	return token, nil
}

func (m *memoryStore) Get(_ context.Context, token string) (*session.Session, error) {
	s, ok := m.sessions[token]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memoryStore) Refresh(_ context.Context, token string, s session.Session) error {
	m.sessions[token] = s
	return nil
}

func (m *memoryStore) Delete(_ context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

const cookieName = "session_token"

func setupProtectedRouter(store session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", SessionAuth(store, cookieName), func(c *gin.Context) {
		// Read through the logger's typed key; request logging relies on
		// the middleware storing the user id under the same key.
		userID, _ := logger.UserIDFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	r.GET("/admin", SessionAuth(store, cookieName), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestSessionAuthRejectsMissingCookie(t *testing.T) {
	r := setupProtectedRouter(newMemoryStore())

	req, _ := http.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSessionAuthRejectsUnknownToken(t *testing.T) {
	r := setupProtectedRouter(newMemoryStore())

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "not-a-session"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSessionAuthAcceptsValidSession(t *testing.T) {
	store := newMemoryStore()
	token, err := store.Create(context.Background(), session.Session{
		UserID: 42,
		Role:   models.RoleUser,
	})
	assert.NoError(t, err)

	r := setupProtectedRouter(store)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestRequireAdminRejectsRegularUser(t *testing.T) {
	store := newMemoryStore()
	token, _ := store.Create(context.Background(), session.Session{
		UserID: 42,
		Role:   models.RoleUser,
	})

	r := setupProtectedRouter(store)

	req, _ := http.NewRequest("GET", "/admin", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminAcceptsAdmin(t *testing.T) {
	store := newMemoryStore()
	token, _ := store.Create(context.Background(), session.Session{
		UserID: 1,
		Role:   models.RoleAdmin,
	})

	r := setupProtectedRouter(store)

	req, _ := http.NewRequest("GET", "/admin", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionDeleteEndsAccess(t *testing.T) {
	store := newMemoryStore()
	token, _ := store.Create(context.Background(), session.Session{
		UserID: 7,
		Role:   models.RoleUser,
	})
	assert.NoError(t, store.Delete(context.Background(), token))

	r := setupProtectedRouter(store)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
