package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/pferate/puppy-website/internal/constants"
	"github.com/pferate/puppy-website/internal/identity"
	"github.com/pferate/puppy-website/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubVerifier struct {
	tokens map[string]*models.User
}

func (s stubVerifier) VerifyAuthToken(token string) *models.User {
	return s.tokens[token]
}

type stubGroupChecker struct {
	groups []models.Group
	err    error
	calls  int
}

func (s *stubGroupChecker) InGroups(p identity.Principal, names []string, requireAll bool) ([]models.Group, error) {
	s.calls++
	return s.groups, s.err
}

var testUsers = map[uint64]*models.User{
	1: {ID: 1, Email: "admin@puppy", Username: "admin"},
	2: {ID: 2, Email: "pat@puppy", Username: "pat"},
}

func newTestManager() *identity.Manager {
	return identity.NewManager(func(id uint64) (*models.User, error) {
		if id == 99 {
			return nil, errors.New("connection refused")
		}
		user, ok := testUsers[id]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		return user, nil
	}, nil)
}

func newTestRouter(sessionUserID interface{}, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.Use(func(c *gin.Context) {
		if sessionUserID != nil {
			sessions.Default(c).Set(constants.ContextKeyUserID, sessionUserID)
		}
		c.Next()
	})
	r.Use(LoadPrincipal(newTestManager(), stubVerifier{tokens: map[string]*models.User{"good-token": testUsers[2]}}))
	r.Use(handlers...)
	r.GET("/whoami", func(c *gin.Context) {
		user, ok := GetUser(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, user.Username)
	})
	return r
}

func doGet(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoadPrincipal(t *testing.T) {
	tests := []struct {
		name      string
		sessionID interface{}
		header    string
		want      string
	}{
		{"anonymous", nil, "", "anonymous"},
		{"session user", uint64(1), "", "admin"},
		{"session user stored as int", 2, "", "pat"},
		{"deleted session user", uint64(42), "", "anonymous"},
		{"bearer token", nil, "Bearer good-token", "pat"},
		{"lowercase scheme", nil, "bearer good-token", "pat"},
		{"bad token", nil, "Bearer bad-token", "anonymous"},
		{"basic scheme ignored", nil, "Basic good-token", "anonymous"},
		{"session wins over token", uint64(1), "Bearer good-token", "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(newTestRouter(tt.sessionID), tt.header)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestLoadPrincipal_LoaderFailure(t *testing.T) {
	w := doGet(newTestRouter(uint64(99)), "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireAuth(t *testing.T) {
	w := doGet(newTestRouter(nil, RequireAuth()), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doGet(newTestRouter(uint64(1), RequireAuth()), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireGroups(t *testing.T) {
	member := &stubGroupChecker{groups: []models.Group{{ID: 1, Name: "Administrator"}}}
	w := doGet(newTestRouter(uint64(1), RequireAdministrator(member)), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, member.calls)

	outsider := &stubGroupChecker{}
	w = doGet(newTestRouter(uint64(2), RequireGroups(outsider, []string{"Moderator"}, true)), "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	anonymous := &stubGroupChecker{groups: []models.Group{{ID: 1}}}
	w = doGet(newTestRouter(nil, RequireAdministrator(anonymous)), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, anonymous.calls)

	failing := &stubGroupChecker{err: errors.New("db down")}
	w = doGet(newTestRouter(uint64(1), RequireAdministrator(failing)), "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetUserID(c)
	assert.False(t, ok)

	c.Set(constants.ContextKeyUserID, -1)
	_, ok = GetUserID(c)
	assert.False(t, ok)

	c.Set(constants.ContextKeyUserID, uint64(7))
	id, ok := GetUserID(c)
	assert.True(t, ok)
	assert.Equal(t, uint64(7), id)
}
