package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubValidator struct {
	claims *TokenClaims
	err    error
}

func (v *stubValidator) ValidateToken(_ context.Context, _ string) (*TokenClaims, error) {
	return v.claims, v.err
}

func runAuth(t *testing.T, validator TokenValidator, header string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.GET("/protected", AuthMiddleware(validator), func(c *gin.Context) {
		id, ok := UserID(c)
		assert.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	w := runAuth(t, &stubValidator{}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	w := runAuth(t, &stubValidator{}, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = runAuth(t, &stubValidator{}, "Bearer")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	w := runAuth(t, &stubValidator{err: errors.New("session expired")}, "Bearer dead-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "session expired")
}

func TestAuthMiddlewarePassesClaims(t *testing.T) {
	id := uuid.New()
	w := runAuth(t, &stubValidator{claims: &TokenClaims{UserID: id}}, "Bearer good-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id.String())
}
