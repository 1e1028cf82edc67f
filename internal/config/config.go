package config

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Log      LogConfig      `koanf:"log"`
	Auth     AuthConfig     `koanf:"auth"`
	Site     SiteConfig     `koanf:"site"`
	Webhook  WebhookConfig  `koanf:"webhook"`
	AWS      AWSConfig      `koanf:"aws"`
	Notify   NotifyConfig   `koanf:"notify"`
	Storage  StorageConfig  `koanf:"storage"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string          `koanf:"host"`
	Port            int             `koanf:"port"`
	Mode            string          `koanf:"mode"`
	Timeout         string          `koanf:"timeout"`
	ShutdownTimeout string          `koanf:"shutdown_timeout"`
	TrustRequestID  bool            `koanf:"trust_request_id"`
	CORS            CORSConfig      `koanf:"cors"`
	RateLimit       RateLimitConfig `koanf:"rate_limit"`
	Cache           CacheConfig     `koanf:"cache"`
}

// CORSConfig holds CORS middleware settings.
type CORSConfig struct {
	AllowOrigins     []string `koanf:"allow_origins"`
	AllowMethods     []string `koanf:"allow_methods"`
	AllowHeaders     []string `koanf:"allow_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           string   `koanf:"max_age"`
}

// RateLimitConfig throttles the public write endpoints (login, leads,
// package selection, newsletter).
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	RPS     float64 `koanf:"rps"`
	Burst   int     `koanf:"burst"`
}

// CacheConfig holds the Redis response cache settings for public listings.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	TTL     string `koanf:"ttl"`
	Prefix  string `koanf:"prefix"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver      string         `koanf:"driver"`
	AutoMigrate bool           `koanf:"auto_migrate"`
	SQLite      SQLiteConfig   `koanf:"sqlite"`
	Postgres    PostgresConfig `koanf:"postgres"`
	Pool        PoolConfig     `koanf:"pool"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DBName   string `koanf:"dbname"`
	SSLMode  string `koanf:"sslmode"`
}

// PoolConfig holds database connection pool settings.
type PoolConfig struct {
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	ConnMaxLifetime string `koanf:"conn_max_lifetime"`
}

// RedisConfig holds the Redis connection. An empty URL disables Redis.
type RedisConfig struct {
	URL string `koanf:"url"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level           string `koanf:"level"`
	Format          string `koanf:"format"`
	Color           *bool  `koanf:"color"`
	FilePath        string `koanf:"file_path"`
	MaxSizeMB       int    `koanf:"max_size_mb"`
	RetentionDays   int    `koanf:"retention_days"`
	MaxBackups      int    `koanf:"max_backups"`
	CompressRotated *bool  `koanf:"compress_rotated"`
}

// AuthConfig holds admin token settings.
type AuthConfig struct {
	JWTSecret   string `koanf:"jwt_secret"`
	TokenExpiry string `koanf:"token_expiry"`
	Issuer      string `koanf:"issuer"`
}

// SiteConfig describes the public site; it feeds the RSS channel and
// notification e-mails.
type SiteConfig struct {
	Name        string `koanf:"name"`
	BaseURL     string `koanf:"base_url"`
	Description string `koanf:"description"`
}

// WebhookConfig holds the lead webhook target. An empty URL disables
// delivery (a warning is logged per lead).
type WebhookConfig struct {
	URL     string `koanf:"url"`
	Timeout string `koanf:"timeout"`
}

// AWSConfig holds credentials shared by S3 and SES. Empty keys fall back to
// the default AWS credential chain.
type AWSConfig struct {
	Region          string `koanf:"region"`
	AccessKeyID     string `koanf:"access_key_id"`
	SecretAccessKey string `koanf:"secret_access_key"`
	Endpoint        string `koanf:"endpoint"`
}

// NotifyConfig holds the SES lead e-mail settings.
type NotifyConfig struct {
	Enabled bool     `koanf:"enabled"`
	From    string   `koanf:"from"`
	To      []string `koanf:"to"`
	Subject string   `koanf:"subject"`
	Body    string   `koanf:"body"`
}

// StorageConfig holds the S3 upload settings. An empty bucket disables uploads.
type StorageConfig struct {
	Bucket        string `koanf:"bucket"`
	Prefix        string `koanf:"prefix"`
	PublicBaseURL string `koanf:"public_base_url"`
	MaxUploadMB   int    `koanf:"max_upload_mb"`
}

// Load reads configuration from a YAML file and overlays environment variables.
// Environment variables use the prefix "APP__" and double-underscore as the
// hierarchy separator. Single underscores are preserved as part of the key name.
// For example, APP__SERVER__PORT=9090 overrides server.port and
// APP__AUTH__JWT_SECRET overrides auth.jwt_secret.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	if err := k.Load(env.Provider("APP__", ".", func(s string) string {
		key := strings.TrimPrefix(s, "APP__")
		key = strings.ToLower(key)
		key = strings.ReplaceAll(key, "__", ".")
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field constraints and supported values, normalizing
// whitespace along the way.
func (c *Config) Validate() error {
	for _, f := range []func() error{
		c.validateServer,
		c.validateDatabase,
		c.validateRedis,
		c.validateAuth,
		c.validateSite,
		c.validateIntegrations,
		c.validateLog,
	} {
		if err := f(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	mode := strings.TrimSpace(c.Server.Mode)
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		c.Server.Mode = mode
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", c.Server.Mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", c.Server.Port)
	}

	host := strings.TrimSpace(c.Server.Host)
	if host == "" {
		return fmt.Errorf("server.host is required")
	}
	c.Server.Host = host

	for _, d := range []struct {
		name  string
		value *string
	}{
		{"server.timeout", &c.Server.Timeout},
		{"server.shutdown_timeout", &c.Server.ShutdownTimeout},
		{"server.cors.max_age", &c.Server.CORS.MaxAge},
	} {
		if err := optionalDuration(d.name, d.value); err != nil {
			return err
		}
	}

	if c.Server.RateLimit.Enabled {
		if c.Server.RateLimit.RPS <= 0 {
			return fmt.Errorf("invalid server.rate_limit.rps %v: must be positive when rate limiting is enabled", c.Server.RateLimit.RPS)
		}
		if c.Server.RateLimit.Burst <= 0 {
			return fmt.Errorf("invalid server.rate_limit.burst %d: must be positive when rate limiting is enabled", c.Server.RateLimit.Burst)
		}
	}

	if c.Server.Cache.Enabled {
		if err := requiredDuration("server.cache.ttl", &c.Server.Cache.TTL); err != nil {
			return err
		}
		c.Server.Cache.Prefix = strings.TrimSpace(c.Server.Cache.Prefix)
		if c.Server.Cache.Prefix == "" {
			c.Server.Cache.Prefix = "agencyhub:cache"
		}
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case "sqlite":
		sqlitePath := strings.TrimSpace(c.Database.SQLite.Path)
		if sqlitePath == "" {
			return fmt.Errorf("database.sqlite.path is required when driver is sqlite")
		}
		c.Database.SQLite.Path = sqlitePath
	case "postgres":
		if err := c.validatePostgres(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid database.driver %q: must be one of %q, %q", c.Database.Driver, "sqlite", "postgres")
	}

	return optionalDuration("database.pool.conn_max_lifetime", &c.Database.Pool.ConnMaxLifetime)
}

func (c *Config) validatePostgres() error {
	pg := &c.Database.Postgres
	pg.Host = strings.TrimSpace(pg.Host)
	pg.User = strings.TrimSpace(pg.User)
	pg.DBName = strings.TrimSpace(pg.DBName)
	pg.SSLMode = strings.TrimSpace(pg.SSLMode)

	if pg.Host == "" {
		return fmt.Errorf("database.postgres.host is required when driver is postgres")
	}
	if pg.Port < 1 || pg.Port > 65535 {
		return fmt.Errorf("invalid database.postgres.port %d: must be between 1 and 65535", pg.Port)
	}
	if pg.User == "" {
		return fmt.Errorf("database.postgres.user is required when driver is postgres")
	}
	if pg.DBName == "" {
		return fmt.Errorf("database.postgres.dbname is required when driver is postgres")
	}

	switch pg.SSLMode {
	case "disable", "allow", "prefer", "require", "verify-ca", "verify-full":
	default:
		return fmt.Errorf("invalid database.postgres.sslmode %q: must be one of %q, %q, %q, %q, %q, %q", pg.SSLMode, "disable", "allow", "prefer", "require", "verify-ca", "verify-full")
	}
	if c.Server.Mode == gin.ReleaseMode {
		switch pg.SSLMode {
		case "require", "verify-ca", "verify-full":
		default:
			return fmt.Errorf("invalid database.postgres.sslmode %q for server.mode %q: must be one of %q, %q, %q", pg.SSLMode, gin.ReleaseMode, "require", "verify-ca", "verify-full")
		}
	}
	return nil
}

func (c *Config) validateRedis() error {
	c.Redis.URL = strings.TrimSpace(c.Redis.URL)
	if c.Server.Cache.Enabled && c.Redis.URL == "" {
		return fmt.Errorf("redis.url is required when server.cache is enabled")
	}
	return nil
}

func (c *Config) validateAuth() error {
	secret := strings.TrimSpace(c.Auth.JWTSecret)
	if secret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if len(secret) < 32 {
		return fmt.Errorf("invalid auth.jwt_secret: must be at least 32 characters")
	}
	if c.Server.Mode == gin.ReleaseMode && CountSecretClasses(secret) < 3 {
		return fmt.Errorf("auth.jwt_secret must include at least 3 character classes (lowercase, uppercase, digit, symbol) in release mode")
	}
	c.Auth.JWTSecret = secret

	if err := requiredDuration("auth.token_expiry", &c.Auth.TokenExpiry); err != nil {
		return err
	}

	c.Auth.Issuer = strings.TrimSpace(c.Auth.Issuer)
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = "agencyhub"
	}
	return nil
}

func (c *Config) validateSite() error {
	c.Site.Name = strings.TrimSpace(c.Site.Name)
	if c.Site.Name == "" {
		return fmt.Errorf("site.name is required")
	}
	base, err := absoluteURL("site.base_url", c.Site.BaseURL, true)
	if err != nil {
		return err
	}
	c.Site.BaseURL = strings.TrimRight(base, "/")
	return nil
}

func (c *Config) validateIntegrations() error {
	hook, err := absoluteURL("webhook.url", c.Webhook.URL, false)
	if err != nil {
		return err
	}
	c.Webhook.URL = hook
	if err := optionalDuration("webhook.timeout", &c.Webhook.Timeout); err != nil {
		return err
	}

	c.AWS.Region = strings.TrimSpace(c.AWS.Region)
	c.AWS.Endpoint = strings.TrimSpace(c.AWS.Endpoint)
	if (c.AWS.AccessKeyID == "") != (c.AWS.SecretAccessKey == "") {
		return fmt.Errorf("aws.access_key_id and aws.secret_access_key must be set together")
	}
	needsAWS := c.Notify.Enabled || strings.TrimSpace(c.Storage.Bucket) != ""
	if needsAWS && c.AWS.Region == "" {
		return fmt.Errorf("aws.region is required when notify or storage is enabled")
	}

	if c.Notify.Enabled {
		if _, err := mail.ParseAddress(c.Notify.From); err != nil {
			return fmt.Errorf("invalid notify.from %q: %w", c.Notify.From, err)
		}
		if len(c.Notify.To) == 0 {
			return fmt.Errorf("notify.to is required when notify is enabled")
		}
		for i, to := range c.Notify.To {
			if _, err := mail.ParseAddress(to); err != nil {
				return fmt.Errorf("invalid notify.to[%d] %q: %w", i, to, err)
			}
		}
	}

	c.Storage.Bucket = strings.TrimSpace(c.Storage.Bucket)
	if c.Storage.MaxUploadMB < 0 {
		return fmt.Errorf("invalid storage.max_upload_mb %d: must not be negative", c.Storage.MaxUploadMB)
	}
	if c.Storage.MaxUploadMB == 0 {
		c.Storage.MaxUploadMB = 5
	}
	publicBase, err := absoluteURL("storage.public_base_url", c.Storage.PublicBaseURL, false)
	if err != nil {
		return err
	}
	c.Storage.PublicBaseURL = publicBase
	return nil
}

func (c *Config) validateLog() error {
	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch level {
	case "debug", "info", "warn", "error":
		c.Log.Level = level
	default:
		return fmt.Errorf("invalid log.level %q: must be one of %q, %q, %q, %q", c.Log.Level, "debug", "info", "warn", "error")
	}

	format := strings.ToLower(strings.TrimSpace(c.Log.Format))
	switch format {
	case "text", "json":
		c.Log.Format = format
	default:
		return fmt.Errorf("invalid log.format %q: must be one of %q, %q", c.Log.Format, "text", "json")
	}
	return nil
}

// optionalDuration trims *value and, if non-empty, requires a positive Go duration.
func optionalDuration(name string, value *string) error {
	*value = strings.TrimSpace(*value)
	if *value == "" {
		return nil
	}
	d, err := time.ParseDuration(*value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, *value, err)
	}
	if d <= 0 {
		return fmt.Errorf("invalid %s %q: must be greater than 0", name, *value)
	}
	return nil
}

func requiredDuration(name string, value *string) error {
	if strings.TrimSpace(*value) == "" {
		return fmt.Errorf("%s is required", name)
	}
	return optionalDuration(name, value)
}

func absoluteURL(name, raw string, required bool) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if required {
			return "", fmt.Errorf("%s is required", name)
		}
		return "", nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid %s %q: must be an absolute http(s) URL", name, raw)
	}
	return raw, nil
}

// DurationOr parses an already validated duration string, returning def when
// it is empty.
func DurationOr(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

// CountSecretClasses counts how many character classes (lowercase, uppercase,
// digit, symbol) are present in the given secret string.
func CountSecretClasses(secret string) int {
	var lower, upper, digit, symbol int
	for _, r := range secret {
		switch {
		case unicode.IsLower(r):
			lower = 1
		case unicode.IsUpper(r):
			upper = 1
		case unicode.IsDigit(r):
			digit = 1
		default:
			symbol = 1
		}
	}
	return lower + upper + digit + symbol
}
