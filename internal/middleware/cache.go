package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	cacheHeader       = "X-Cache"
	maxCachedBodySize = 1 << 20
)

// ResponseCache caches anonymous GET responses in Redis. Entries are keyed by
// a per-resource version number; any successful write to a resource bumps
// its version, so stale entries are never served and simply expire.
//
// The resource is the first path segment after the mount prefix, so
// PATCH /api/v1/faqs/reorder invalidates GET /api/v1/faqs?page=2.
//
// Routes whose handlers have side effects on reads are excluded with Skip.
type ResponseCache struct {
	rdb    redis.Cmdable
	prefix string
	base   string
	ttl    time.Duration
	logger *slog.Logger
	skip   map[string]struct{}
}

type cachedResponse struct {
	Status      int    `json:"s"`
	ContentType string `json:"t"`
	Body        []byte `json:"b"`
}

// NewResponseCache creates a cache storing keys under prefix for routes
// mounted at basePath (e.g. "/api/v1").
func NewResponseCache(rdb redis.Cmdable, prefix, basePath string, ttl time.Duration, logger *slog.Logger) *ResponseCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResponseCache{
		rdb:    rdb,
		prefix: strings.TrimSuffix(prefix, ":"),
		base:   strings.TrimSuffix(basePath, "/"),
		ttl:    ttl,
		logger: logger,
		skip:   make(map[string]struct{}),
	}
}

// Skip excludes GET routes, given as full route patterns such as
// "/api/v1/blog/slug/:slug", from caching. Writes on them still invalidate
// their resource. Skip must be called before the handler serves traffic.
func (rc *ResponseCache) Skip(routes ...string) *ResponseCache {
	for _, r := range routes {
		rc.skip[r] = struct{}{}
	}
	return rc
}

// Handler returns the gin middleware. Redis failures are logged and the
// request is served uncached.
func (rc *ResponseCache) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		resource := rc.resource(c.Request.URL.Path)
		if resource == "" {
			c.Next()
			return
		}

		if c.Request.Method != http.MethodGet {
			c.Next()
			if s := c.Writer.Status(); s >= 200 && s < 300 {
				rc.bump(c.Request.Context(), resource)
			}
			return
		}

		// Authenticated reads may see hidden records and are never shared.
		if c.GetHeader("Authorization") != "" {
			c.Next()
			return
		}
		if _, ok := rc.skip[c.FullPath()]; ok {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key, err := rc.entryKey(ctx, resource, c.Request.URL.RequestURI())
		if err != nil {
			rc.logger.WarnContext(ctx, "response cache unavailable", slog.Any("error", err))
			c.Next()
			return
		}

		if hit, ok := rc.load(ctx, key); ok {
			c.Header(cacheHeader, "HIT")
			c.Data(hit.Status, hit.ContentType, hit.Body)
			c.Abort()
			return
		}

		c.Header(cacheHeader, "MISS")
		w := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		if w.Status() != http.StatusOK || w.overflow {
			return
		}
		rc.store(ctx, key, cachedResponse{
			Status:      w.Status(),
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.buf.Bytes(),
		})
	}
}

// resource extracts the first segment below the mount prefix.
func (rc *ResponseCache) resource(path string) string {
	rest, ok := strings.CutPrefix(path, rc.base+"/")
	if !ok {
		return ""
	}
	seg, _, _ := strings.Cut(rest, "/")
	return seg
}

func (rc *ResponseCache) versionKey(resource string) string {
	return rc.prefix + ":ver:" + resource
}

func (rc *ResponseCache) entryKey(ctx context.Context, resource, uri string) (string, error) {
	ver, err := rc.rdb.Get(ctx, rc.versionKey(resource)).Result()
	if errors.Is(err, redis.Nil) {
		ver = "0"
	} else if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(uri))
	return rc.prefix + ":page:" + resource + ":" + ver + ":" + hex.EncodeToString(sum[:16]), nil
}

func (rc *ResponseCache) load(ctx context.Context, key string) (cachedResponse, bool) {
	var cr cachedResponse
	raw, err := rc.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			rc.logger.WarnContext(ctx, "response cache read failed", slog.Any("error", err))
		}
		return cr, false
	}
	if err := json.Unmarshal(raw, &cr); err != nil {
		return cr, false
	}
	return cr, true
}

func (rc *ResponseCache) store(ctx context.Context, key string, cr cachedResponse) {
	raw, err := json.Marshal(cr)
	if err != nil {
		return
	}
	if err := rc.rdb.Set(ctx, key, raw, rc.ttl).Err(); err != nil {
		rc.logger.WarnContext(ctx, "response cache write failed", slog.Any("error", err))
	}
}

func (rc *ResponseCache) bump(ctx context.Context, resource string) {
	if err := rc.rdb.Incr(ctx, rc.versionKey(resource)).Err(); err != nil {
		rc.logger.WarnContext(ctx, "response cache invalidation failed",
			slog.String("resource", resource), slog.Any("error", err))
	}
}

// captureWriter tees the response body so it can be cached after the
// handler ran.
type captureWriter struct {
	gin.ResponseWriter
	buf      bytes.Buffer
	overflow bool
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.capture(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *captureWriter) capture(b []byte) {
	if w.overflow {
		return
	}
	if w.buf.Len()+len(b) > maxCachedBodySize {
		w.overflow = true
		w.buf.Reset()
		return
	}
	w.buf.Write(b)
}
