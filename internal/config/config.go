package config

import (
	"time"
)

// Config is the root application configuration shared by the qaza CLI
// and the ledgerd server.
type Config struct {
	Gateway   GatewayConfig   `yaml:"gateway"`
	Session   SessionConfig   `yaml:"session"`
	Identity  IdentityConfig  `yaml:"identity"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// GatewayConfig points the client at a remote ledger.
type GatewayConfig struct {
	URL     string        `yaml:"url"     env:"GATEWAY_URL"     env-default:"http://localhost:8080/exec"`
	Timeout time.Duration `yaml:"timeout" env:"GATEWAY_TIMEOUT" env-default:"15s"`
	// Timezone names the zone timestamp-form log dates are read in
	// (IANA name, e.g. "Asia/Kolkata"). Empty means the local zone.
	Timezone string `yaml:"timezone" env:"GATEWAY_TIMEZONE"`
}

// Location resolves Timezone; empty yields time.Local.
func (g GatewayConfig) Location() (*time.Location, error) {
	if g.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(g.Timezone)
}

// Session cache backends.
const (
	SessionBackendFile  = "file"
	SessionBackendRedis = "redis"
)

// SessionConfig selects where the active profile is cached between runs.
type SessionConfig struct {
	Backend     string `yaml:"backend"      env:"SESSION_BACKEND"      env-default:"file"`
	Dir         string `yaml:"dir"          env:"SESSION_DIR"`
	Key         string `yaml:"key"          env:"SESSION_KEY"          env-default:"namazUser"`
	RedisURL    string `yaml:"redis_url"    env:"SESSION_REDIS_URL"    env-default:"redis://localhost:6379/0"`
	RedisPrefix string `yaml:"redis_prefix" env:"SESSION_REDIS_PREFIX" env-default:"qaza:session:"`
}

// IdentityConfig holds sign-in rules.
type IdentityConfig struct {
	// RequiredDomain restricts identifiers to one email domain (e.g. gmail.com).
	// Empty accepts any email-shaped identifier.
	RequiredDomain string `yaml:"required_domain" env:"IDENTITY_REQUIRED_DOMAIN"`
}

// Ledger storage backends for ledgerd.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Storage         string        `yaml:"storage"          env:"SERVER_STORAGE"          env-default:"postgres"`
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	AutoMigrate     bool          `yaml:"auto_migrate"     env:"SERVER_AUTO_MIGRATE"     env-default:"true"`
}

// DatabaseConfig holds PostgreSQL connection settings. Only ledgerd uses it.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateLimitConfig bounds per-client request rates on ledgerd.
type RateLimitConfig struct {
	Enabled           bool          `yaml:"enabled"             env:"RATE_LIMIT_ENABLED"             env-default:"true"`
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_REQUESTS_PER_MINUTE" env-default:"120"`
	Burst             int           `yaml:"burst"               env:"RATE_LIMIT_BURST"               env-default:"20"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP_INTERVAL"    env-default:"5m"`
}
