package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "mixtape.db" {
			t.Errorf("expected database path mixtape.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 5000 {
			t.Errorf("expected server port 5000, got %d", config.Server.Port)
		}

		if config.TokenTTLHoursOrDefault() != 24 {
			t.Errorf("expected 24h token ttl, got %d", config.TokenTTLHoursOrDefault())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[auth]
secret = "file-secret"
token_ttl_hours = 12

[spotify]
client_id = "test_client_id"
client_secret = "test_secret"

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[server]
host = "0.0.0.0"
port = 8080
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.Auth.Secret != "file-secret" {
			t.Errorf("expected auth secret file-secret, got %s", config.Auth.Secret)
		}

		if config.TokenTTLHoursOrDefault() != 12 {
			t.Errorf("expected 12h token ttl, got %d", config.TokenTTLHoursOrDefault())
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv("MIXTAPE_JWT_SECRET", "env-secret")
		t.Setenv("MIXTAPE_DB_PATH", "/env/path.db")
		t.Setenv("PORT", "9000")

		config := &Config{}
		config.ApplyEnv()

		if config.Auth.Secret != "env-secret" {
			t.Errorf("expected env secret to win, got %s", config.Auth.Secret)
		}
		if config.Database.Path != "/env/path.db" {
			t.Errorf("expected env database path to win, got %s", config.Database.Path)
		}
		if config.Server.Port != 9000 {
			t.Errorf("expected env port 9000, got %d", config.Server.Port)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		config := &Config{}
		config.Database.Path = "mixtape.db"

		if err := config.Validate(); err == nil {
			t.Error("expected error for missing secret")
		}

		config.Auth.Secret = "secret"
		if err := config.Validate(); err != nil {
			t.Errorf("expected valid config, got %v", err)
		}

		config.Database.Path = ""
		if err := config.Validate(); err == nil {
			t.Error("expected error for missing database path")
		}
	})
}
