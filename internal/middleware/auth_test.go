package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"ecommerce-api/internal/auth"
	"ecommerce-api/internal/config"
)

func newTokens() *auth.TokenManager {
	return auth.NewTokenManager(config.AuthConfig{
		JWTSecret: "middleware-test",
		Issuer:    "ecommerce-api",
		Audience:  "ecommerce-clients",
		TokenTTL:  time.Hour,
	})
}

func newProtectedRouter(tokens *auth.TokenManager, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddleware(tokens))
	r.Use(extra...)
	r.GET("/protected", func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "role": c.GetString(ContextRole)})
	})
	return r
}

func TestJWTAuthMiddleware_Success(t *testing.T) {
	tokens := newTokens()
	r := newProtectedRouter(tokens)

	token, err := tokens.Generate(auth.Subject{ID: 1, FullName: "Alice", Email: "alice@example.com", Role: "user"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"id":1,"role":"user"}`, w.Body.String())
}

func TestJWTAuthMiddleware_QueryToken(t *testing.T) {
	tokens := newTokens()
	r := newProtectedRouter(tokens)

	token, err := tokens.Generate(auth.Subject{ID: 2, Email: "bob@example.com", Role: "user"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	r := newProtectedRouter(newTokens())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestJWTAuthMiddleware_InvalidToken(t *testing.T) {
	r := newProtectedRouter(newTokens())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	tokens := newTokens()
	r := newProtectedRouter(tokens, RequireRole("admin"))

	userToken, err := tokens.Generate(auth.Subject{ID: 3, Email: "user@example.com", Role: "user"})
	require.NoError(t, err)
	adminToken, err := tokens.Generate(auth.Subject{ID: 4, Email: "admin@example.com", Role: "admin"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
