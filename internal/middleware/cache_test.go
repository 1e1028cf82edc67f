package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cacheFixture struct {
	mr     *miniredis.Miniredis
	router *gin.Engine
	hits   int
	status int
}

func newCacheFixture(t *testing.T) *cacheFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	f := &cacheFixture{mr: mr, status: http.StatusOK}
	rc := NewResponseCache(rdb, "test:", "/api/v1", time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil))).
		Skip("/api/v1/projects/slug/:slug")

	r := gin.New()
	api := r.Group("/api/v1", rc.Handler())
	api.GET("/faqs", func(c *gin.Context) {
		f.hits++
		c.JSON(f.status, gin.H{"n": f.hits})
	})
	api.PATCH("/faqs/reorder", func(c *gin.Context) { c.Status(http.StatusOK) })
	api.POST("/faqs", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	api.GET("/projects", func(c *gin.Context) {
		f.hits++
		c.JSON(http.StatusOK, gin.H{"n": f.hits})
	})
	api.GET("/projects/slug/:slug", func(c *gin.Context) {
		f.hits++
		c.JSON(http.StatusOK, gin.H{"n": f.hits})
	})
	r.GET("/health", func(c *gin.Context) {
		f.hits++
		c.Status(http.StatusOK)
	})
	f.router = r
	return f
}

func (f *cacheFixture) do(method, path string, auth bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if auth {
		req.Header.Set("Authorization", "Bearer x")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestResponseCache_HitAfterMiss(t *testing.T) {
	f := newCacheFixture(t)

	first := f.do(http.MethodGet, "/api/v1/faqs?page=1", false)
	second := f.do(http.MethodGet, "/api/v1/faqs?page=1", false)

	assert.Equal(t, "MISS", first.Header().Get(cacheHeader))
	assert.Equal(t, "HIT", second.Header().Get(cacheHeader))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", second.Header().Get("Content-Type"))
	assert.Equal(t, 1, f.hits)
}

func TestResponseCache_QueryIsPartOfKey(t *testing.T) {
	f := newCacheFixture(t)

	f.do(http.MethodGet, "/api/v1/faqs?page=1", false)
	w := f.do(http.MethodGet, "/api/v1/faqs?page=2", false)

	assert.Equal(t, "MISS", w.Header().Get(cacheHeader))
	assert.Equal(t, 2, f.hits)
}

func TestResponseCache_WriteInvalidatesResource(t *testing.T) {
	f := newCacheFixture(t)

	f.do(http.MethodGet, "/api/v1/faqs", false)
	f.do(http.MethodGet, "/api/v1/projects", false)
	require.Equal(t, http.StatusOK, f.do(http.MethodPatch, "/api/v1/faqs/reorder", true).Code)

	w := f.do(http.MethodGet, "/api/v1/faqs", false)
	assert.Equal(t, "MISS", w.Header().Get(cacheHeader))
	assert.JSONEq(t, `{"n":3}`, w.Body.String())

	w = f.do(http.MethodGet, "/api/v1/projects", false)
	assert.Equal(t, "HIT", w.Header().Get(cacheHeader), "other resources keep their entries")

	ver, err := f.mr.Get("test:ver:faqs")
	require.NoError(t, err)
	assert.Equal(t, "1", ver)
}

func TestResponseCache_FailedWriteKeepsEntries(t *testing.T) {
	f := newCacheFixture(t)

	f.do(http.MethodGet, "/api/v1/faqs", false)
	f.do(http.MethodPost, "/api/v1/faqs", true)

	w := f.do(http.MethodGet, "/api/v1/faqs", false)
	assert.Equal(t, "HIT", w.Header().Get(cacheHeader))
	assert.False(t, f.mr.Exists("test:ver:faqs"))
}

func TestResponseCache_Bypass(t *testing.T) {
	f := newCacheFixture(t)

	for i := 0; i < 2; i++ {
		w := f.do(http.MethodGet, "/api/v1/faqs", true)
		assert.Empty(t, w.Header().Get(cacheHeader), "authenticated reads are not cached")
	}
	for i := 0; i < 2; i++ {
		f.do(http.MethodGet, "/health", false)
	}
	assert.Equal(t, 4, f.hits)
}

func TestResponseCache_OnlyCachesOK(t *testing.T) {
	f := newCacheFixture(t)
	f.status = http.StatusBadRequest

	f.do(http.MethodGet, "/api/v1/faqs?page=0", false)
	w := f.do(http.MethodGet, "/api/v1/faqs?page=0", false)

	assert.Equal(t, "MISS", w.Header().Get(cacheHeader))
	assert.Equal(t, 2, f.hits)
}

func TestResponseCache_RedisDownServesUncached(t *testing.T) {
	f := newCacheFixture(t)
	f.mr.Close()

	for i := 1; i <= 2; i++ {
		w := f.do(http.MethodGet, "/api/v1/faqs", false)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"n":`+strconv.Itoa(i)+`}`, w.Body.String())
	}
}

func TestResponseCache_EntriesExpire(t *testing.T) {
	f := newCacheFixture(t)

	f.do(http.MethodGet, "/api/v1/faqs", false)
	f.mr.FastForward(2 * time.Minute)

	w := f.do(http.MethodGet, "/api/v1/faqs", false)
	assert.Equal(t, "MISS", w.Header().Get(cacheHeader))
}

func TestResponseCache_SkippedRouteAlwaysReachesHandler(t *testing.T) {
	f := newCacheFixture(t)

	for i := 1; i <= 3; i++ {
		w := f.do(http.MethodGet, "/api/v1/projects/slug/bakery", false)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get(cacheHeader))
		assert.JSONEq(t, `{"n":`+strconv.Itoa(i)+`}`, w.Body.String())
	}
	assert.Equal(t, 3, f.hits)

	// The rest of the resource is still cached.
	f.do(http.MethodGet, "/api/v1/projects", false)
	w := f.do(http.MethodGet, "/api/v1/projects", false)
	assert.Equal(t, "HIT", w.Header().Get(cacheHeader))
	assert.Equal(t, 4, f.hits)
}
