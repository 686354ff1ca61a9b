package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation shared by every binary.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Gateway.validate(); err != nil {
		return fmt.Errorf("gateway: %w", err)
	}
	if err := c.Session.validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if strings.Contains(c.Identity.RequiredDomain, "@") {
		return fmt.Errorf("identity.required_domain must be a bare domain (got %q)", c.Identity.RequiredDomain)
	}
	return nil
}

// ValidateServer checks the settings ledgerd needs on top of Validate.
func (c *Config) ValidateServer() error {
	switch c.Server.Storage {
	case StoragePostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("server.storage must be %q or %q (got %q)", StoragePostgres, StorageMemory, c.Server.Storage)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}
	return nil
}

func (g *GatewayConfig) validate() error {
	u, err := url.Parse(g.URL)
	if err != nil {
		return fmt.Errorf("url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url must be http(s) (got %q)", g.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("url must include a host (got %q)", g.URL)
	}
	if g.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", g.Timeout)
	}
	if _, err := g.Location(); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	return nil
}

func (s *SessionConfig) validate() error {
	switch s.Backend {
	case SessionBackendFile, SessionBackendRedis:
	default:
		return fmt.Errorf("backend must be %q or %q (got %q)", SessionBackendFile, SessionBackendRedis, s.Backend)
	}
	if strings.TrimSpace(s.Key) == "" {
		return fmt.Errorf("key is required")
	}
	if strings.ContainsAny(s.Key, `/\`) {
		return fmt.Errorf("key must not contain path separators (got %q)", s.Key)
	}
	if s.Backend == SessionBackendRedis && s.RedisURL == "" {
		return fmt.Errorf("redis_url is required for the redis backend")
	}
	return nil
}
