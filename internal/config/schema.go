package config

import (
	"time"
)

// Supported database drivers
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config is the root configuration structure
type Config struct {
	Version   int             `yaml:"version"`
	Database  DatabaseConfig  `yaml:"database"`
	Server    ServerConfig    `yaml:"server"`
	Cache     CacheConfig     `yaml:"cache"`
	Inventory InventoryConfig `yaml:"inventory"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Driver  string    `yaml:"driver"`            // sqlite or mysql
	Path    string    `yaml:"path,omitempty"`    // sqlite file
	DSN     string    `yaml:"dsn,omitempty"`     // mysql, go-sql-driver format
	Timeout *Duration `yaml:"timeout,omitempty"` // per-call bound
}

// ServerConfig holds listener addresses
type ServerConfig struct {
	Addr     string `yaml:"addr"`
	GRPCAddr string `yaml:"grpc_addr,omitempty"` // empty disables the health service
}

// CacheConfig holds the optional Redis stats cache
type CacheConfig struct {
	RedisAddr string    `yaml:"redis_addr,omitempty"` // empty disables caching
	Key       string    `yaml:"key,omitempty"`        // hash key, for deployments sharing one Redis
	TTL       *Duration `yaml:"ttl,omitempty"`
}

// InventoryConfig holds domain defaults
type InventoryConfig struct {
	ExpiringDays *int `yaml:"expiring_days,omitempty"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func durationPtr(d time.Duration) *Duration {
	v := Duration(d)
	return &v
}
