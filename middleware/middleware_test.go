package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"listener-api/helper"
	"listener-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAuthService struct {
	users map[string]*models.User
}

func (s *stubAuthService) Register(context.Context, models.RegisterRequest) (*models.User, error) {
	return nil, nil
}

func (s *stubAuthService) Login(context.Context, models.LoginRequest) (*models.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthService) Logout(context.Context, string, *models.User) (*models.LogoutResponse, error) {
	return nil, nil
}

func (s *stubAuthService) Authenticate(_ context.Context, token string) (*models.User, error) {
	user, ok := s.users[token]
	if !ok {
		return nil, models.ErrorUnauthorized{Message: "Could not validate credentials"}
	}
	return user, nil
}

func (s *stubAuthService) EnsureSuperuser(context.Context, string, string, string) error {
	return nil
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, user.Username+":"+CurrentToken(c))
	})
	r.GET("/", handlers...)
	return r
}

func get(r http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	h := helper.NewHTTPHelper(nil)
	auth := &stubAuthService{users: map[string]*models.User{
		"good":     {ID: 1, Username: "ada", IsActive: true},
		"inactive": {ID: 2, Username: "bob", IsActive: false},
		"super":    {ID: 3, Username: "root", IsActive: true, IsSuperuser: true},
	}}

	r := newEngine(AuthMiddleware(auth, h))
	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer ").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer unknown").Code)

	w := get(r, "bearer good")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ada:good", w.Body.String())

	active := newEngine(AuthMiddleware(auth, h), RequireActive(h))
	assert.Equal(t, http.StatusOK, get(active, "Bearer good").Code)
	assert.Equal(t, http.StatusBadRequest, get(active, "Bearer inactive").Code)

	super := newEngine(AuthMiddleware(auth, h), RequireSuperuser(h))
	assert.Equal(t, http.StatusForbidden, get(super, "Bearer good").Code)
	assert.Equal(t, http.StatusBadRequest, get(super, "Bearer inactive").Code)
	assert.Equal(t, http.StatusOK, get(super, "Bearer super").Code)
}

func TestRequireActiveWithoutUser(t *testing.T) {
	h := helper.NewHTTPHelper(nil)
	r := newEngine(RequireActive(h))
	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
}

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "keys have separate buckets")

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
}

func TestRateLimiterSweepsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	rl.Allow("b")
	require.Len(t, rl.clients, 2)

	now = now.Add(limiterIdleTTL + time.Minute)
	rl.Allow("c")
	assert.Len(t, rl.clients, 1)
	assert.Contains(t, rl.clients, "c")
}

func TestRateLimiterMiddleware(t *testing.T) {
	h := helper.NewHTTPHelper(nil)
	rl := NewRateLimiter(0.001, 1)
	r := newEngine(rl.Middleware(h))

	assert.Equal(t, http.StatusOK, get(r, "").Code)
	w := get(r, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CORS([]string{"https://app.example.com/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCORSWildcard(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"*"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://anything.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics("test")

	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()), m.Middleware())
	r.GET("/songs/:song_id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/songs/7", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "test_http_requests_total")
	assert.True(t, strings.Contains(body, `path="/songs/:song_id"`), "route template is used as the path label")
}
