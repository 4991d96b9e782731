package middleware_test

import (
  "net/http"
  "net/http/httptest"
  "testing"
  "time"

  "github.com/gin-gonic/gin"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "github.com/parley-ai/parley-backend/internal/logger"
  "github.com/parley-ai/parley-backend/internal/middleware"
  "github.com/parley-ai/parley-backend/internal/requestdata"
  "github.com/parley-ai/parley-backend/internal/services"
)

func newGatedRouter(t *testing.T) (*gin.Engine, services.AuthService) {
  t.Helper()
  gin.SetMode(gin.TestMode)
  log, err := logger.New("development")
  require.NoError(t, err)
  authService := services.NewAuthService(log, "test-secret")
  am := middleware.NewAuthMiddleware(log, authService)

  router := gin.New()
  router.GET("/whoami", am.RequireAuth(), func(c *gin.Context) {
    rd := requestdata.GetRequestData(c.Request.Context())
    c.String(http.StatusOK, rd.UserID)
  })
  return router, authService
}

func TestRequireAuthBearerHeader(t *testing.T) {
  router, as := newGatedRouter(t)
  token, err := as.IssueToken("user_42", "", time.Hour)
  require.NoError(t, err)

  req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
  req.Header.Set("Authorization", "Bearer "+token)
  w := httptest.NewRecorder()
  router.ServeHTTP(w, req)

  assert.Equal(t, http.StatusOK, w.Code)
  assert.Equal(t, "user_42", w.Body.String())
}

func TestRequireAuthQueryToken(t *testing.T) {
  router, as := newGatedRouter(t)
  token, err := as.IssueToken("user_42", "", time.Hour)
  require.NoError(t, err)

  req := httptest.NewRequest(http.MethodGet, "/whoami?token="+token, nil)
  w := httptest.NewRecorder()
  router.ServeHTTP(w, req)

  assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthRejections(t *testing.T) {
  router, _ := newGatedRouter(t)

  tests := []struct {
    name   string
    header string
  }{
    {name: "missing", header: ""},
    {name: "malformed scheme", header: "Token abc"},
    {name: "garbage token", header: "Bearer not.a.jwt"},
  }
  for _, tt := range tests {
    t.Run(tt.name, func(t *testing.T) {
      req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
      if tt.header != "" {
        req.Header.Set("Authorization", tt.header)
      }
      w := httptest.NewRecorder()
      router.ServeHTTP(w, req)
      assert.Equal(t, http.StatusUnauthorized, w.Code)
    })
  }
}
