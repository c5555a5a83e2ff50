// Package config loads service settings from the environment and .env files.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvPaths are the .env locations tried by the binaries, in order
var DefaultEnvPaths = []string{".env", "../.env", "../../.env"}

// Config holds every runtime setting
type Config struct {
	RiotAPIKey     string
	Port           string
	AllowedOrigins []string
	ValidateKey    bool

	MatchCount       int
	FetchTimeout     time.Duration
	FetchConcurrency int
	MatchCacheSize   int
	MasteryCount     int

	RateLimitPerSecond int
	RateLimitPer2Min   int

	DataDragonURL string

	HistoryBackend string
	HistoryPath    string
	TursoURL       string
	TursoToken     string
	DatabaseURL    string
	HistoryLimit   int

	DiscordWebhook string
}

// Load reads the first .env file found in envPaths, then builds the Config
// from the environment. Values already set in the environment win over the
// file.
func Load(envPaths ...string) (*Config, error) {
	envLoaded := false
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Printf("[Config] Loaded .env from: %s", path)
			envLoaded = true
			break
		}
	}
	if !envLoaded && len(envPaths) > 0 {
		log.Println("[Config] No .env file found, using environment variables")
	}

	var errs []error
	cfg := &Config{
		RiotAPIKey:     getEnv("RIOT_API_KEY", getEnv("RIOT-DEV-KEY", "")),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		ValidateKey:    getEnvBool("VALIDATE_KEY", true, &errs),

		MatchCount:       getEnvInt("MATCH_COUNT", 20, &errs),
		FetchTimeout:     getEnvDuration("MATCH_FETCH_TIMEOUT", 10*time.Second, &errs),
		FetchConcurrency: getEnvInt("MATCH_FETCH_CONCURRENCY", 0, &errs),
		MatchCacheSize:   getEnvInt("MATCH_CACHE_SIZE", 500, &errs),
		MasteryCount:     getEnvInt("MASTERY_COUNT", 10, &errs),

		RateLimitPerSecond: getEnvInt("RATE_LIMIT_PER_SECOND", 15, &errs),
		RateLimitPer2Min:   getEnvInt("RATE_LIMIT_PER_2MIN", 90, &errs),

		DataDragonURL: strings.TrimRight(getEnv("DDRAGON_URL", "https://ddragon.leagueoflegends.com"), "/"),

		HistoryBackend: strings.ToLower(getEnv("HISTORY_BACKEND", "sqlite")),
		HistoryPath:    getEnv("HISTORY_PATH", ""),
		TursoURL:       getEnv("TURSO_DATABASE_URL", ""),
		TursoToken:     getEnv("TURSO_AUTH_TOKEN", ""),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		HistoryLimit:   getEnvInt("HISTORY_LIMIT", 5, &errs),

		DiscordWebhook: getEnv("DISCORD_WEBHOOK", ""),
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// Validate reports missing or inconsistent settings
func (c *Config) Validate() error {
	var errs []error

	if c.RiotAPIKey == "" {
		errs = append(errs, errors.New("RIOT_API_KEY is not set"))
	}
	if c.MatchCount < 1 || c.MatchCount > 100 {
		errs = append(errs, fmt.Errorf("MATCH_COUNT must be between 1 and 100, got %d", c.MatchCount))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("MATCH_FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout))
	}
	if c.FetchConcurrency < 0 {
		errs = append(errs, fmt.Errorf("MATCH_FETCH_CONCURRENCY must not be negative, got %d", c.FetchConcurrency))
	}

	switch c.HistoryBackend {
	case "sqlite":
	case "turso":
		if c.TursoURL == "" {
			errs = append(errs, errors.New("HISTORY_BACKEND=turso requires TURSO_DATABASE_URL"))
		}
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("HISTORY_BACKEND=postgres requires DATABASE_URL"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown HISTORY_BACKEND %q", c.HistoryBackend))
	}

	return errors.Join(errs...)
}

// Addr returns the listen address for Port
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int, errs *[]error) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid integer %q", key, val))
		return defaultVal
	}
	return n
}

func getEnvBool(key string, defaultVal bool, errs *[]error) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid boolean %q", key, val))
		return defaultVal
	}
	return b
}

// getEnvDuration accepts Go durations ("10s") or a bare number of seconds
func getEnvDuration(key string, defaultVal time.Duration, errs *[]error) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", key, val))
		return defaultVal
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
