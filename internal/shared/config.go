package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
//
// Secrets are never hardcoded: the JWT signing secret and Spotify credentials
// may be supplied by the config file or by environment variables, and the
// server refuses to start without a signing secret.
type Config struct {
	Auth     AuthConfig     `toml:"auth"`
	Spotify  SpotifyConfig  `toml:"spotify"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
}

// AuthConfig contains token signing settings.
type AuthConfig struct {
	// Secret signs bearer tokens. Required, no default.
	Secret string `toml:"secret"`
	// TokenTTLHours is how long issued tokens stay valid. Defaults to 24.
	TokenTTLHours int `toml:"token_ttl_hours"`
}

// SpotifyConfig contains Spotify API credentials for the catalog proxy.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	// RequestsPerSecond bounds the request rate across the API. Zero disables limiting.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// LoadConfig reads and parses a TOML configuration file from the specified
// path, then applies environment overrides via [ApplyEnv].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.ApplyEnv()
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the
// embedded example config, with environment overrides applied.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.ApplyEnv()
	return &config
}

// ApplyEnv overrides config fields from environment variables. Environment
// always wins over file values so deployments can keep secrets out of disk.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("MIXTAPE_JWT_SECRET"); v != "" {
		c.Auth.Secret = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_ID"); v != "" {
		c.Spotify.ClientID = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_SECRET"); v != "" {
		c.Spotify.ClientSecret = v
	}
	if v := os.Getenv("MIXTAPE_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}

// Validate checks that the configuration is complete enough to run the server.
func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return fmt.Errorf("%w: set auth.secret or MIXTAPE_JWT_SECRET", ErrMissingSecret)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database path is required", ErrInvalidConfig)
	}
	return nil
}

// TokenTTLHoursOrDefault returns the configured token lifetime, defaulting to 24 hours.
func (c *Config) TokenTTLHoursOrDefault() int {
	if c.Auth.TokenTTLHours <= 0 {
		return 24
	}
	return c.Auth.TokenTTLHours
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
