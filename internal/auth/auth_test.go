package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestAuthenticator(t *testing.T, now time.Time) *Authenticator {
	t.Helper()
	a, err := NewAuthenticator("test-secret")
	require.NoError(t, err)
	a.now = func() time.Time { return now }
	return a
}

func TestNewAuthenticator_RequiresSecret(t *testing.T) {
	_, err := NewAuthenticator("  ")
	require.Error(t, err)
}

func TestIssueAndParse(t *testing.T) {
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	a := newTestAuthenticator(t, now)

	token, err := a.Issue(Identity{UserID: "ana", Name: "Ana Souza", CanManageLimits: true}, time.Hour)
	require.NoError(t, err)

	id, err := a.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "ana", Name: "Ana Souza", CanManageLimits: true}, id)

	a.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = a.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Rejects(t *testing.T) {
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	a := newTestAuthenticator(t, now)

	other := newTestAuthenticator(t, now)
	other.secret = []byte("another-secret")
	foreign, err := other.Issue(Identity{UserID: "ana"}, time.Hour)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "ana"}).SignedString(a.secret)
	require.NoError(t, err)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": now.Add(time.Hour).Unix(),
	}).SignedString(a.secret)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "ana",
		"exp": now.Add(time.Hour).Unix(),
	}).SignedString(a.secret)
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":         "not-a-token",
		"wrong secret":    foreign,
		"missing exp":     noExp,
		"missing sub":     noSub,
		"wrong algorithm": hs512,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := a.Parse(token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidToken))
		})
	}
}

func newRouter(a *Authenticator) *gin.Engine {
	r := gin.New()
	api := r.Group("/api", a.Middleware())
	api.GET("/me", func(c *gin.Context) {
		id, _ := FromContext(c)
		c.JSON(http.StatusOK, gin.H{"sub": id.UserID})
	})
	api.GET("/admin", RequireManager(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestMiddleware(t *testing.T) {
	now := time.Now()
	a := newTestAuthenticator(t, now)
	staff, err := a.Issue(Identity{UserID: "ana"}, time.Hour)
	require.NoError(t, err)
	manager, err := a.Issue(Identity{UserID: "chefe", CanManageLimits: true}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		status int
		code   string
	}{
		{name: "no header", path: "/api/me", status: http.StatusUnauthorized, code: "unauthorized"},
		{name: "wrong scheme", path: "/api/me", header: "Basic " + staff, status: http.StatusUnauthorized, code: "unauthorized"},
		{name: "bad token", path: "/api/me", header: "Bearer abc", status: http.StatusUnauthorized, code: "unauthorized"},
		{name: "staff", path: "/api/me", header: "Bearer " + staff, status: http.StatusOK},
		{name: "staff on admin", path: "/api/admin", header: "Bearer " + staff, status: http.StatusForbidden, code: "forbidden"},
		{name: "manager on admin", path: "/api/admin", header: "bearer " + manager, status: http.StatusNoContent},
	}

	router := newRouter(a)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.code, body["code"])
			}
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"sub":"ana"}`, rec.Body.String())
			}
		})
	}
}
