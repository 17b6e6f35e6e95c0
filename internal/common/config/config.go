// internal/common/config/config.go
package config

import "strings"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Supabase      SupabaseConfig     `mapstructure:"supabase"`
	Cache         CacheConfig        `mapstructure:"cache"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	RequestTimeout int `mapstructure:"request_timeout"` // milliseconds
}

// SupabaseConfig holds the connection parameters for the storage and identity
// reads. ServiceKey is a service-level credential, not a user session token.
type SupabaseConfig struct {
	URL        string `mapstructure:"url"`
	ServiceKey string `mapstructure:"service_key"`
}

// RestURL returns the PostgREST base endpoint.
func (s SupabaseConfig) RestURL() string {
	return strings.TrimSuffix(s.URL, "/") + "/rest/v1"
}

// AuthURL returns the GoTrue base endpoint.
func (s SupabaseConfig) AuthURL() string {
	return strings.TrimSuffix(s.URL, "/") + "/auth/v1"
}

type CacheConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // seconds
}

// NotificationConfig holds delivery settings. When email is disabled or no
// from address is configured, rendered notifications are recorded instead
// of delivered.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// EmailConfigured reports whether an outbound transport is usable.
func (n NotificationConfig) EmailConfigured() bool {
	return n.Email.Enabled && n.Email.FromEmail != ""
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
