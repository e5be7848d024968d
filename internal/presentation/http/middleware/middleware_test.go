package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/shopdash-api/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, remoteAddr, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterPerClientIP(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	t.Cleanup(rl.Stop)

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, "10.0.0.1:1234", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, "10.0.0.1:1234", "").Code)

	w := serve(r, "10.0.0.1:1234", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	// another client has its own budget
	assert.Equal(t, http.StatusOK, serve(r, "10.0.0.2:1234", "").Code)
}

func TestRateLimiterKeysByUser(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 1})
	t.Cleanup(rl.Stop)

	user := uuid.New()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", user)
		}
		c.Next()
	})
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, "10.0.0.1:1", "x").Code)
	// same user from a different address shares the limiter
	assert.Equal(t, http.StatusTooManyRequests, serve(r, "10.0.0.2:1", "x").Code)
	// the anonymous request from the first address is keyed by IP
	assert.Equal(t, http.StatusOK, serve(r, "10.0.0.1:1", "").Code)
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, BurstSize: 1, EntryTTL: time.Minute})
	t.Cleanup(rl.Stop)

	rl.getLimiter("ip:a")
	rl.cleanup(time.Now())
	assert.Len(t, rl.limiters, 1)

	rl.cleanup(time.Now().Add(2 * time.Minute))
	assert.Empty(t, rl.limiters)
}

func TestRateLimiterStopEndsCleanupLoop(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, BurstSize: 1, CleanupInterval: time.Millisecond})

	rl.Stop()
	select {
	case <-rl.done:
	default:
		t.Fatal("cleanup loop still running after Stop")
	}

	// a second Stop is a no-op
	rl.Stop()
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("secret", time.Hour, time.Hour)
	id := uuid.New()
	token, err := jwtManager.GenerateAccessToken(id, "a@example.com", []string{"admin"})
	require.NoError(t, err)

	var seen uuid.UUID
	r := gin.New()
	r.Use(AuthMiddleware(jwtManager))
	r.GET("/", func(c *gin.Context) {
		seen = c.MustGet("user_id").(uuid.UUID)
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusUnauthorized, serve(r, "10.0.0.1:1", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "10.0.0.1:1", "garbage").Code)

	require.Equal(t, http.StatusOK, serve(r, "10.0.0.1:1", token).Code)
	assert.Equal(t, id, seen)
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_roles", []string{c.GetHeader("X-Role")})
		c.Next()
	})
	r.GET("/", RequireRole("admin"), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Role", "viewer")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Role", "admin")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoggerMiddlewareSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(LoggerMiddleware(nil))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "req-123", w.Body.String())
}
