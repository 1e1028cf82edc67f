package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimitRouter(l *RateLimiter) *gin.Engine {
	r := gin.New()
	h := l.Handler()
	r.POST("/leads", h, func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.POST("/auth/login", h, func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func post(r http.Handler, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_BurstThen429(t *testing.T) {
	l := NewRateLimiter(0.5, 2)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	r := setupRateLimitRouter(l)

	assert.Equal(t, http.StatusCreated, post(r, "/leads", "10.0.0.1").Code)
	assert.Equal(t, http.StatusCreated, post(r, "/leads", "10.0.0.1").Code)

	w := post(r, "/leads", "10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "too many requests")

	now = now.Add(2 * time.Second)
	assert.Equal(t, http.StatusCreated, post(r, "/leads", "10.0.0.1").Code, "a token refills after 1/rps")
}

func TestRateLimiter_SeparateBuckets(t *testing.T) {
	l := NewRateLimiter(1, 1)
	now := time.Now()
	l.now = func() time.Time { return now }
	r := setupRateLimitRouter(l)

	assert.Equal(t, http.StatusCreated, post(r, "/leads", "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, post(r, "/leads", "10.0.0.1").Code)

	assert.Equal(t, http.StatusCreated, post(r, "/leads", "10.0.0.2").Code, "other clients are unaffected")
	assert.Equal(t, http.StatusOK, post(r, "/auth/login", "10.0.0.1").Code, "other routes are unaffected")
}

func TestRateLimiter_SweepsIdleVisitors(t *testing.T) {
	l := NewRateLimiter(1, 1)
	now := time.Now()
	l.now = func() time.Time { return now }

	l.allow("a")
	l.allow("b")
	require.Len(t, l.visitors, 2)

	now = now.Add(visitorIdleTTL + time.Minute)
	l.allow("c")
	assert.Len(t, l.visitors, 1)
	assert.Contains(t, l.visitors, "c")
}

func TestNewRateLimiter_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { NewRateLimiter(0, 1) })
	assert.Panics(t, func() { NewRateLimiter(1, 0) })
}
