package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/simp-lee/agencyhub/internal/config"
	"github.com/simp-lee/agencyhub/internal/middleware"
	"github.com/simp-lee/agencyhub/internal/module/auth"
	"github.com/simp-lee/agencyhub/internal/module/blog"
	"github.com/simp-lee/agencyhub/internal/module/faq"
	"github.com/simp-lee/agencyhub/internal/module/hosting"
	"github.com/simp-lee/agencyhub/internal/module/lead"
	"github.com/simp-lee/agencyhub/internal/module/newsletter"
	"github.com/simp-lee/agencyhub/internal/module/offering"
	"github.com/simp-lee/agencyhub/internal/module/project"
	"github.com/simp-lee/agencyhub/internal/module/team"
	"github.com/simp-lee/agencyhub/internal/module/technology"
	"github.com/simp-lee/agencyhub/internal/module/testimonial"
	"github.com/simp-lee/agencyhub/internal/module/upload"
	"github.com/simp-lee/agencyhub/internal/notify"
	"github.com/simp-lee/agencyhub/internal/pkg"
	"github.com/simp-lee/agencyhub/internal/store"
)

const (
	defaultRequestTimeout  = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultWebhookTimeout  = 10 * time.Second
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine *gin.Engine
	db     *gorm.DB
	redis  *redis.Client
	bg     *pkg.Background
	tokens *auth.TokenService
	logger *logger.Logger
	cfg    *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler, timeout time.Duration) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      2 * timeout,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, the database, Redis, the lead notifiers, every
// resource module and the middleware chain, then registers routes.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	ctx := context.Background()
	success := false

	// 1. Logger.
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 exposes permissive CORS")
	}
	defer func() {
		if !success {
			closeLogger(log)
		}
	}()

	// 2. Database.
	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	defer func() {
		if !success {
			closeDatabase(db, log.Logger)
		}
	}()
	if cfg.Database.AutoMigrate {
		if err := store.Migrate(ctx, db); err != nil {
			return nil, err
		}
		log.Info("auto migration completed")
	}

	// 3. Redis, only needed by the response cache.
	rdb, err := config.SetupRedis(ctx, &cfg.Redis, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup redis: %w", err)
	}
	defer func() {
		if !success && rdb != nil {
			_ = rdb.Close()
		}
	}()

	// 4. Detached task runner and lead notifiers.
	bg := pkg.NewBackground(log.Logger, config.DurationOr(cfg.Webhook.Timeout, defaultWebhookTimeout))
	notifiers, err := buildNotifiers(ctx, cfg, log.Logger)
	if err != nil {
		return nil, err
	}

	// 5. Manual dependency injection: repository → service → handler → module.
	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, config.DurationOr(cfg.Auth.TokenExpiry, 24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("setup tokens: %w", err)
	}
	defer func() {
		if !success {
			tokens.Close()
		}
	}()
	svcs := NewServices(db, bg, tokens, notifiers...)
	modules, err := buildModules(ctx, cfg, svcs)
	if err != nil {
		return nil, err
	}

	// 6. Gin engine with custom middleware (not gin.Default()).
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()
	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			TrustUpstream: cfg.Server.TrustRequestID,
		}),
		middleware.Logger(log.Logger),
		middleware.CORS(resolveCORSConfig(cfg.Server.Mode, cfg.Server.CORS)),
	)

	deps := &RouteDeps{
		Modules: modules,
		DB:      db,
		Redis:   rdb,
		Auth:    middleware.Auth(tokens),
	}
	if cfg.Server.Cache.Enabled {
		cache := middleware.NewResponseCache(rdb, cfg.Server.Cache.Prefix, apiBasePath,
			config.DurationOr(cfg.Server.Cache.TTL, time.Minute), log.Logger).
			Skip(uncachedRoutes(modules)...)
		deps.Cache = cache.Handler()
	}

	// 7. Routes.
	if err := RegisterRoutes(engine, deps); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	success = true
	return &App{
		engine: engine,
		db:     db,
		redis:  rdb,
		bg:     bg,
		tokens: tokens,
		logger: log,
		cfg:    cfg,
	}, nil
}

// buildNotifiers returns the lead fan-out: the webhook always (it warns and
// skips when unconfigured) and the SES mailer when notify is enabled.
func buildNotifiers(ctx context.Context, cfg *config.Config, log *slog.Logger) ([]lead.Notifier, error) {
	timeout := config.DurationOr(cfg.Webhook.Timeout, defaultWebhookTimeout)
	notifiers := []lead.Notifier{notify.NewWebhook(cfg.Webhook.URL, nil, timeout, log)}

	if !cfg.Notify.Enabled {
		return notifiers, nil
	}
	awsCfg, err := config.LoadAWS(ctx, &cfg.AWS)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	mailer, err := notify.NewMailer(config.NewSESClient(awsCfg, cfg.AWS.Endpoint), notify.MailerConfig{
		From:     cfg.Notify.From,
		To:       cfg.Notify.To,
		SiteName: cfg.Site.Name,
		Subject:  cfg.Notify.Subject,
		Body:     cfg.Notify.Body,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("setup lead mailer: %w", err)
	}
	return append(notifiers, mailer), nil
}

// buildModules creates the HTTP modules. Public write endpoints share one
// rate limiter when throttling is enabled; uploads exist only with a bucket.
func buildModules(ctx context.Context, cfg *config.Config, svcs *Services) ([]Module, error) {
	var throttle gin.HandlerFunc
	if rl := cfg.Server.RateLimit; rl.Enabled {
		throttle = middleware.NewRateLimiter(rl.RPS, rl.Burst).Handler()
	}

	feed := blog.FeedConfig{
		Title:       cfg.Site.Name,
		Description: cfg.Site.Description,
		BaseURL:     cfg.Site.BaseURL,
	}

	modules := []Module{
		auth.NewModule(auth.NewHandler(svcs.Auth), throttle),
		project.NewModule(project.NewProjectHandler(svcs.Projects)),
		blog.NewModule(blog.NewBlogHandler(svcs.Blog, feed)),
		lead.NewModule(lead.NewLeadHandler(svcs.Leads), throttle),
		team.NewModule(team.NewTeamHandler(svcs.Team)),
		testimonial.NewModule(testimonial.NewTestimonialHandler(svcs.Testimonials)),
		hosting.NewModule(hosting.NewHostingHandler(svcs.Hosting, svcs.Selector), throttle),
		faq.NewModule(faq.NewFAQHandler(svcs.FAQs)),
		offering.NewModule(offering.NewOfferingHandler(svcs.Offerings)),
		technology.NewModule(technology.NewTechnologyHandler(svcs.Technologies)),
		newsletter.NewModule(newsletter.NewNewsletterHandler(svcs.Newsletter), throttle),
	}

	if cfg.Storage.Bucket != "" {
		awsCfg, err := config.LoadAWS(ctx, &cfg.AWS)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		uploads := upload.NewService(config.NewS3Client(awsCfg, cfg.AWS.Endpoint), upload.Config{
			Bucket:        cfg.Storage.Bucket,
			Region:        cfg.AWS.Region,
			Prefix:        cfg.Storage.Prefix,
			PublicBaseURL: cfg.Storage.PublicBaseURL,
			MaxBytes:      int64(cfg.Storage.MaxUploadMB) << 20,
		})
		modules = append(modules, upload.NewModule(upload.NewUploadHandler(uploads)))
	}
	return modules, nil
}

func resolveCORSConfig(mode string, cfg config.CORSConfig) middleware.CORSConfig {
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowCredentials = cfg.AllowCredentials
	if len(cfg.AllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.AllowMethods
	}
	if len(cfg.AllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.AllowHeaders
	}
	if cfg.MaxAge != "" {
		corsConfig.MaxAge = fmt.Sprintf("%d", int(config.DurationOr(cfg.MaxAge, 24*time.Hour).Seconds()))
	}

	if len(cfg.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowOrigins
		return corsConfig
	}
	// In release mode, with no allowlist configured, cross-origin requests are denied.
	if mode == gin.ReleaseMode {
		corsConfig.AllowOrigins = []string{}
	}
	return corsConfig
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
// Shutdown drains in-flight requests, waits for detached tasks, then closes
// Redis, the database and the logger.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	log := slog.Default()
	if a.logger != nil {
		log = a.logger.Logger
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine, config.DurationOr(a.cfg.Server.Timeout, defaultRequestTimeout))

	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		config.DurationOr(a.cfg.Server.ShutdownTimeout, defaultShutdownTimeout))
	defer cancel()

	if runErr == nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", slog.Any("error", err))
		}
	}

	if a.bg != nil {
		if err := a.bg.Wait(shutdownCtx); err != nil {
			log.Warn("background tasks still running at shutdown", slog.Any("error", err))
		}
	}

	if a.tokens != nil {
		a.tokens.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Error("redis close error", slog.Any("error", err))
		}
	}
	closeDatabase(a.db, log)

	log.Info("server stopped")
	if a.logger != nil {
		closeLogger(a.logger)
	}
	return runErr
}

func closeDatabase(db *gorm.DB, log *slog.Logger) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("database close error", slog.Any("error", err))
		return
	}
	log.Info("database connection closed")
}

func closeLogger(log *logger.Logger) {
	if err := log.Close(); err != nil {
		slog.Error("logger close error", slog.Any("error", err))
	}
}
