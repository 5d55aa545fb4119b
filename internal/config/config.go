// Package config loads the perishables configuration file.
//
// Config file locations (priority order):
//  1. $PERISHABLES_CONFIG
//  2. ./perishables.yaml
//  3. $XDG_CONFIG_HOME/perishables/config.yaml
//  4. ~/.config/perishables/config.yaml
//  5. /etc/perishables/config.yaml
//
// A missing file is not an error; defaults apply.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"perishables/internal/domain"
)

// Defaults for a new installation
const (
	DefaultDBPath   = "./data/inventory.db"
	DefaultAddr     = ":8080"
	DefaultTimeout  = 5 * time.Second
	DefaultCacheTTL = 30 * time.Second
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.Database.Driver == DriverSQLite && c.Database.Path == "" {
		c.Database.Path = DefaultDBPath
	}
	if c.Database.Timeout == nil {
		c.Database.Timeout = durationPtr(DefaultTimeout)
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Cache.TTL == nil {
		c.Cache.TTL = durationPtr(DefaultCacheTTL)
	}
	if c.Inventory.ExpiringDays == nil {
		days := domain.DefaultExpiringWindow
		c.Inventory.ExpiringDays = &days
	}
}

// Validate rejects settings the application cannot run with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("config: database.path is required for sqlite")
		}
	case DriverMySQL:
		if c.Database.DSN == "" {
			return fmt.Errorf("config: database.dsn is required for mysql")
		}
	default:
		return fmt.Errorf("config: unknown database.driver %q (want %s or %s)",
			c.Database.Driver, DriverSQLite, DriverMySQL)
	}

	if c.Database.Timeout != nil && c.Database.Timeout.Duration() <= 0 {
		return fmt.Errorf("config: database.timeout must be positive")
	}
	if c.Cache.TTL != nil && c.Cache.TTL.Duration() <= 0 {
		return fmt.Errorf("config: cache.ttl must be positive")
	}
	if c.Inventory.ExpiringDays != nil && *c.Inventory.ExpiringDays < 0 {
		return fmt.Errorf("config: inventory.expiring_days must not be negative")
	}
	return nil
}

// StoreTimeout is the per-call database timeout
func (c *Config) StoreTimeout() time.Duration {
	if c.Database.Timeout == nil {
		return DefaultTimeout
	}
	return c.Database.Timeout.Duration()
}

// CacheTTL is how long cached stats stay fresh
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTL == nil {
		return DefaultCacheTTL
	}
	return c.Cache.TTL.Duration()
}

// ExpiringWindow is the default expiring-soon window in days
func (c *Config) ExpiringWindow() int {
	if c.Inventory.ExpiringDays == nil {
		return domain.DefaultExpiringWindow
	}
	return *c.Inventory.ExpiringDays
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	store := c.Database.Path
	if c.Database.Driver == DriverMySQL {
		store = "dsn configured"
	}
	summary := fmt.Sprintf("Database: %s (%s), timeout %s\n", c.Database.Driver, store, c.StoreTimeout())
	summary += fmt.Sprintf("HTTP: %s", c.Server.Addr)
	if c.Server.GRPCAddr != "" {
		summary += fmt.Sprintf(", gRPC health: %s", c.Server.GRPCAddr)
	}
	if c.Cache.RedisAddr != "" {
		summary += fmt.Sprintf("\nStats cache: redis %s, ttl %s", c.Cache.RedisAddr, c.CacheTTL())
		if c.Cache.Key != "" {
			summary += fmt.Sprintf(", key %s", c.Cache.Key)
		}
	}
	summary += fmt.Sprintf("\nExpiring window: %d days", c.ExpiringWindow())
	return summary
}
