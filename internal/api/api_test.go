package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/plateup/backend/internal/service"
	"github.com/plateup/backend/internal/testhelpers"
)

// testEnv wires handlers onto a bare gin engine backed by an in-memory
// database and session store.
type testEnv struct {
	engine *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	sessions := testhelpers.NewMemorySessionStore()
	auth := service.NewAuthService(db, sessions, "test-secret", time.Hour)
	recipes := service.NewRecipeService(db)
	profiles := service.NewProfileService(db)

	engine := gin.New()
	v1 := engine.Group("/api/v1")
	NewAuthHandler(auth).RegisterRoutes(v1)
	NewRecipeHandler(recipes, auth, nil).RegisterRoutes(v1)
	NewProfileHandler(profiles, auth).RegisterRoutes(v1)

	return &testEnv{engine: engine, db: db, auth: auth}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}

// register creates an account and returns its token. The username comes
// from the email so accounts in one test never collide.
func (e *testEnv) register(t *testing.T, email string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		FirstName: "Marco",
		LastName:  "Rossi",
		Username:  strings.SplitN(email, "@", 2)[0],
		Email:     email,
		Password:  "sufficiently-long",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
