package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv unsets every variable Load reads so host settings do not leak in
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"RIOT_API_KEY", "RIOT-DEV-KEY", "PORT", "ALLOWED_ORIGINS", "VALIDATE_KEY",
		"MATCH_COUNT", "MATCH_FETCH_TIMEOUT", "MATCH_FETCH_CONCURRENCY", "MATCH_CACHE_SIZE",
		"MASTERY_COUNT", "RATE_LIMIT_PER_SECOND", "RATE_LIMIT_PER_2MIN", "DDRAGON_URL",
		"HISTORY_BACKEND", "HISTORY_PATH", "TURSO_DATABASE_URL", "TURSO_AUTH_TOKEN",
		"DATABASE_URL", "HISTORY_LIMIT", "DISCORD_WEBHOOK",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" || cfg.Addr() != ":8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.MatchCount != 20 {
		t.Errorf("MatchCount = %d, want 20", cfg.MatchCount)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Errorf("FetchTimeout = %v, want 10s", cfg.FetchTimeout)
	}
	if cfg.HistoryBackend != "sqlite" || cfg.HistoryLimit != 5 {
		t.Errorf("history = %q/%d", cfg.HistoryBackend, cfg.HistoryLimit)
	}
	if !cfg.ValidateKey {
		t.Error("ValidateKey should default to true")
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("RIOT_API_KEY", "RGAPI-test")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("MATCH_FETCH_TIMEOUT", "3")
	t.Setenv("MATCH_FETCH_CONCURRENCY", "4")
	t.Setenv("VALIDATE_KEY", "false")
	t.Setenv("DDRAGON_URL", "http://ddragon.test/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.RiotAPIKey != "RGAPI-test" {
		t.Errorf("RiotAPIKey = %q", cfg.RiotAPIKey)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Errorf("FetchTimeout = %v, want 3s", cfg.FetchTimeout)
	}
	if cfg.FetchConcurrency != 4 {
		t.Errorf("FetchConcurrency = %d, want 4", cfg.FetchConcurrency)
	}
	if cfg.ValidateKey {
		t.Error("ValidateKey should be false")
	}
	if cfg.DataDragonURL != "http://ddragon.test" {
		t.Errorf("DataDragonURL = %q", cfg.DataDragonURL)
	}
}

func TestLoad_DevKeyAlias(t *testing.T) {
	clearEnv(t)
	t.Setenv("RIOT-DEV-KEY", "RGAPI-dev")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RiotAPIKey != "RGAPI-dev" {
		t.Errorf("RiotAPIKey = %q, want RGAPI-dev", cfg.RiotAPIKey)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are already set, and
	// t.Setenv("", ...) leaves them set to empty
	os.Unsetenv("RIOT_API_KEY")
	os.Unsetenv("PORT")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("RIOT_API_KEY=RGAPI-file\nPORT=9999\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("RIOT_API_KEY")
		os.Unsetenv("PORT")
	})

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RiotAPIKey != "RGAPI-file" || cfg.Port != "9999" {
		t.Errorf("cfg = %q/%q, want values from .env", cfg.RiotAPIKey, cfg.Port)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("MATCH_COUNT", "twenty")
	t.Setenv("MATCH_FETCH_TIMEOUT", "soon")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, key := range []string{"MATCH_COUNT", "MATCH_FETCH_TIMEOUT"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q does not mention %s", err, key)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			RiotAPIKey:     "RGAPI-test",
			MatchCount:     20,
			FetchTimeout:   time.Second,
			HistoryBackend: "sqlite",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing key", func(c *Config) { c.RiotAPIKey = "" }, "RIOT_API_KEY"},
		{"count too high", func(c *Config) { c.MatchCount = 500 }, "MATCH_COUNT"},
		{"zero timeout", func(c *Config) { c.FetchTimeout = 0 }, "MATCH_FETCH_TIMEOUT"},
		{"turso without url", func(c *Config) { c.HistoryBackend = "turso" }, "TURSO_DATABASE_URL"},
		{"postgres without url", func(c *Config) { c.HistoryBackend = "postgres" }, "DATABASE_URL"},
		{"unknown backend", func(c *Config) { c.HistoryBackend = "mongo" }, "HISTORY_BACKEND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
