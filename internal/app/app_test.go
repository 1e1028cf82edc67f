package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/agencyhub/internal/config"
	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/module/auth"
	"github.com/simp-lee/agencyhub/internal/store"
)

type fakeHTTPServer struct {
	listenErr      error
	listenStarted  chan struct{}
	shutdownCalled bool
	stopCh         chan struct{}
	mu             sync.Mutex
}

func (f *fakeHTTPServer) ListenAndServe() error {
	if f.listenStarted != nil {
		close(f.listenStarted)
	}
	if f.listenErr != nil {
		return f.listenErr
	}
	if f.stopCh != nil {
		<-f.stopCh
	}
	return http.ErrServerClosed
}

func (f *fakeHTTPServer) Shutdown(context.Context) error {
	f.mu.Lock()
	f.shutdownCalled = true
	f.mu.Unlock()
	if f.stopCh != nil {
		close(f.stopCh)
	}
	return nil
}

func (f *fakeHTTPServer) wasShutdownCalled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shutdownCalled
}

// testConfig returns a valid configuration backed by a fresh SQLite file.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8080, Mode: gin.TestMode},
		Database: config.DatabaseConfig{
			Driver:      "sqlite",
			AutoMigrate: true,
			SQLite:      config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "app.db")},
		},
		Log:  config.LogConfig{Level: "error", Format: "text"},
		Auth: config.AuthConfig{JWTSecret: "test-secret-key-must-be-at-least-32-chars-long!", TokenExpiry: "1h"},
		Site: config.SiteConfig{Name: "Agency", BaseURL: "https://agency.example"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { cleanupTestApp(a) })
	return a
}

func cleanupTestApp(a *App) {
	if a.tokens != nil {
		a.tokens.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.logger.Close()
}

func do(a *App, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// login registers an admin directly and returns a token issued over HTTP.
func login(t *testing.T, a *App) string {
	t.Helper()
	users := auth.NewService(nil, store.New[domain.User](a.db, "user"))
	_, err := users.Register(context.Background(), &auth.RegisterRequest{
		FullName: "Admin", Email: "admin@agency.example", Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}

	w := do(a, http.MethodPost, "/api/v1/auth/login", "", `{"email":"admin@agency.example","password":"correct-horse"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data auth.TokenResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return resp.Data.Token
}

func TestResolveCORSConfig(t *testing.T) {
	tests := []struct {
		name        string
		mode        string
		cfg         config.CORSConfig
		wantOrigins []string
		wantMaxAge  string
	}{
		{"debug default is permissive", gin.DebugMode, config.CORSConfig{}, []string{"*"}, "86400"},
		{"release without allowlist denies", gin.ReleaseMode, config.CORSConfig{}, []string{}, "86400"},
		{"explicit allowlist", gin.ReleaseMode, config.CORSConfig{AllowOrigins: []string{"https://admin.example"}}, []string{"https://admin.example"}, "86400"},
		{"max age duration in seconds", gin.DebugMode, config.CORSConfig{MaxAge: "12h"}, []string{"*"}, "43200"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveCORSConfig(tt.mode, tt.cfg)
			if strings.Join(got.AllowOrigins, ",") != strings.Join(tt.wantOrigins, ",") || len(got.AllowOrigins) != len(tt.wantOrigins) {
				t.Errorf("AllowOrigins = %v, want %v", got.AllowOrigins, tt.wantOrigins)
			}
			if got.MaxAge != tt.wantMaxAge {
				t.Errorf("MaxAge = %q, want %q", got.MaxAge, tt.wantMaxAge)
			}
		})
	}

	got := resolveCORSConfig(gin.DebugMode, config.CORSConfig{AllowMethods: []string{"GET"}, AllowCredentials: true})
	if len(got.AllowMethods) != 1 || !got.AllowCredentials {
		t.Errorf("configured methods/credentials not applied: %+v", got)
	}
}

func TestNew_NilConfig(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestNew_ReturnsError_WhenDatabaseSetupFails(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "unsupported"

	a, err := New(cfg)
	if err == nil || a != nil {
		t.Fatalf("New() = %v, %v; want nil app and error", a, err)
	}
	if !strings.Contains(err.Error(), "setup database") {
		t.Fatalf("error = %q, want it to mention setup database", err)
	}
}

func TestNew_ReturnsError_WhenRedisUnreachable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Redis.URL = "redis://127.0.0.1:1/0"

	if _, err := New(cfg); err == nil || !strings.Contains(err.Error(), "setup redis") {
		t.Fatalf("error = %v, want setup redis failure", err)
	}
}

func TestNew_AutoMigrateDisabled_LeavesSchemaAlone(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.AutoMigrate = false
	a := newTestApp(t, cfg)

	if a.db.Migrator().HasTable(&domain.Project{}) {
		t.Fatal("projects table should not exist without auto migrate")
	}
}

func TestNew_PublicAndAdminRoutes(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	if w := do(a, http.MethodGet, "/api/v1/faqs", "", ""); w.Code != http.StatusOK {
		t.Fatalf("GET /faqs: status = %d, body = %s", w.Code, w.Body.String())
	}
	if w := do(a, http.MethodPost, "/api/v1/faqs", "", `{}`); w.Code != http.StatusUnauthorized {
		t.Fatalf("POST /faqs without token: status = %d, want 401", w.Code)
	}

	token := login(t, a)
	w := do(a, http.MethodPost, "/api/v1/faqs", token, `{"question":"Do you host sites?","answer":"Yes."}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /faqs: status = %d, body = %s", w.Code, w.Body.String())
	}
	if w := do(a, http.MethodGet, "/api/v1/auth/me", token, ""); w.Code != http.StatusOK {
		t.Fatalf("GET /auth/me: status = %d", w.Code)
	}
	if w := do(a, http.MethodGet, "/health", "", ""); w.Code != http.StatusOK {
		t.Fatalf("GET /health: status = %d", w.Code)
	}
	if w := do(a, http.MethodPost, "/api/v1/uploads", token, ""); w.Code != http.StatusNotFound {
		t.Fatalf("uploads must not be routed without a bucket, status = %d", w.Code)
	}
}

func TestNew_RequestIDHeader(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	w := do(a, http.MethodGet, "/health", "", "")
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID on every response")
	}
}

func TestNew_ResponseCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Redis.URL = "redis://" + mr.Addr() + "/0"
	cfg.Server.Cache = config.CacheConfig{Enabled: true, TTL: "1m"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	a := newTestApp(t, cfg)

	first := do(a, http.MethodGet, "/api/v1/faqs", "", "")
	second := do(a, http.MethodGet, "/api/v1/faqs", "", "")
	if first.Header().Get("X-Cache") != "MISS" || second.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("X-Cache = %q then %q, want MISS then HIT", first.Header().Get("X-Cache"), second.Header().Get("X-Cache"))
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached body differs from the original")
	}

	token := login(t, a)
	if w := do(a, http.MethodPost, "/api/v1/faqs", token, `{"question":"Is there support?","answer":"Always."}`); w.Code != http.StatusCreated {
		t.Fatalf("POST /faqs: status = %d", w.Code)
	}
	third := do(a, http.MethodGet, "/api/v1/faqs", "", "")
	if third.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("write should invalidate cached listings, X-Cache = %q", third.Header().Get("X-Cache"))
	}
	if !strings.Contains(third.Body.String(), "Is there support?") {
		t.Errorf("fresh listing should include the new FAQ: %s", third.Body.String())
	}
}

func TestNew_ResponseCache_CountsEveryBlogRead(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Redis.URL = "redis://" + mr.Addr() + "/0"
	cfg.Server.Cache = config.CacheConfig{Enabled: true, TTL: "1m"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	a := newTestApp(t, cfg)

	token := login(t, a)
	body := `{"title":"Launch notes","slug":"launch-notes","content":"We shipped.","isPublished":true}`
	if w := do(a, http.MethodPost, "/api/v1/blog", token, body); w.Code != http.StatusCreated {
		t.Fatalf("POST /blog: status = %d, body = %s", w.Code, w.Body.String())
	}

	for i := range 3 {
		w := do(a, http.MethodGet, "/api/v1/blog/slug/launch-notes", "", "")
		if w.Code != http.StatusOK {
			t.Fatalf("read %d: status = %d", i, w.Code)
		}
		if got := w.Header().Get("X-Cache"); got != "" {
			t.Fatalf("read %d: slug reads must bypass the cache, X-Cache = %q", i, got)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.bg.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	var post domain.BlogPost
	if err := a.db.Where("slug = ?", "launch-notes").First(&post).Error; err != nil {
		t.Fatalf("load post: %v", err)
	}
	if post.Views != 3 {
		t.Errorf("views = %d, want 3", post.Views)
	}

	// Listings are still cached.
	do(a, http.MethodGet, "/api/v1/blog", "", "")
	if w := do(a, http.MethodGet, "/api/v1/blog", "", ""); w.Header().Get("X-Cache") != "HIT" {
		t.Errorf("blog listing X-Cache = %q, want HIT", w.Header().Get("X-Cache"))
	}
}

func TestNew_RateLimitOnPublicWrites(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.01, Burst: 1}
	a := newTestApp(t, cfg)

	body := `{"email":"nobody@agency.example","password":"whatever1"}`
	if w := do(a, http.MethodPost, "/api/v1/auth/login", "", body); w.Code != http.StatusUnauthorized {
		t.Fatalf("first login: status = %d, want 401", w.Code)
	}
	if w := do(a, http.MethodPost, "/api/v1/auth/login", "", body); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second login: status = %d, want 429", w.Code)
	}
	// Reads are never throttled.
	for range 3 {
		if w := do(a, http.MethodGet, "/api/v1/faqs", "", ""); w.Code != http.StatusOK {
			t.Fatalf("GET /faqs: status = %d", w.Code)
		}
	}
}

func TestNew_AWSIntegrations(t *testing.T) {
	cfg := testConfig(t)
	cfg.AWS = config.AWSConfig{Region: "eu-west-1", AccessKeyID: "AKIATEST", SecretAccessKey: "secret", Endpoint: "http://127.0.0.1:4566"}
	cfg.Storage = config.StorageConfig{Bucket: "media"}
	cfg.Notify = config.NotifyConfig{Enabled: true, From: "noreply@agency.example", To: []string{"sales@agency.example"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	a := newTestApp(t, cfg)

	// The upload route exists and sits behind auth.
	if w := do(a, http.MethodPost, "/api/v1/uploads", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("POST /uploads without token: status = %d, want 401", w.Code)
	}
}

func TestNew_InvalidNotifyTemplate(t *testing.T) {
	cfg := testConfig(t)
	cfg.AWS.Region = "eu-west-1"
	cfg.Notify = config.NotifyConfig{
		Enabled: true, From: "noreply@agency.example", To: []string{"sales@agency.example"},
		Body: "{% if lead.phone %}unclosed",
	}

	if _, err := New(cfg); err == nil || !strings.Contains(err.Error(), "setup lead mailer") {
		t.Fatalf("error = %v, want lead mailer failure", err)
	}
}

func TestRun_ReturnsError_WhenListenFails(t *testing.T) {
	originalNewHTTPServer := newHTTPServer
	defer func() { newHTTPServer = originalNewHTTPServer }()

	a, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	newHTTPServer = func(string, http.Handler, time.Duration) httpServer {
		return &fakeHTTPServer{listenErr: errors.New("address in use")}
	}

	if err := a.Run(); err == nil || !strings.Contains(err.Error(), "address in use") {
		t.Fatalf("Run() error = %v, want listen failure", err)
	}
}

func TestRun_ShutdownSignal_WaitsAndCloses(t *testing.T) {
	originalNewHTTPServer := newHTTPServer
	originalNotifyContext := notifyContext
	defer func() {
		newHTTPServer = originalNewHTTPServer
		notifyContext = originalNotifyContext
	}()

	a, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	finished := make(chan struct{})
	a.bg.Go(context.Background(), "slow task", func(ctx context.Context) error {
		time.Sleep(50 * time.Millisecond)
		close(finished)
		return nil
	})

	server := &fakeHTTPServer{listenStarted: make(chan struct{}), stopCh: make(chan struct{})}
	newHTTPServer = func(string, http.Handler, time.Duration) httpServer { return server }

	ctx, cancel := context.WithCancel(context.Background())
	notifyContext = func(context.Context, ...os.Signal) (context.Context, context.CancelFunc) {
		return ctx, cancel
	}

	errCh := make(chan error, 1)
	go func() { errCh <- a.Run() }()

	select {
	case <-server.listenStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start listening in time")
	}
	cancel()

	select {
	case runErr := <-errCh:
		if runErr != nil {
			t.Fatalf("Run() error = %v, want nil", runErr)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run() did not return in time after shutdown signal")
	}

	if !server.wasShutdownCalled() {
		t.Error("expected server Shutdown() to be called")
	}
	select {
	case <-finished:
	default:
		t.Error("Run() returned before the background task finished")
	}
	if err := config.PingDatabase(context.Background(), a.db); err == nil {
		t.Error("expected database to be closed after Run()")
	}
}
