// Package history keeps the short list of recently searched players.
package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultLimit is the number of recent searches kept
const DefaultLimit = 5

// Entry is one recently searched player
type Entry struct {
	GameName      string    `json:"gameName"`
	TagLine       string    `json:"tagLine"`
	Region        string    `json:"region"`
	Platform      string    `json:"platform"`
	ProfileIconID int       `json:"profileIconId"`
	SearchedAt    time.Time `json:"searchedAt"`
}

// Store persists recent searches, newest first. Recording a player already in
// the list (game name and tag line compared case-insensitively) moves them to
// the front instead of adding a duplicate.
type Store interface {
	Record(ctx context.Context, e Entry) error
	Recent(ctx context.Context) ([]Entry, error)
	Close() error
}

// Backend names
const (
	BackendSQLite   = "sqlite"
	BackendTurso    = "turso"
	BackendPostgres = "postgres"
)

// Options selects and configures a backend
type Options struct {
	Backend     string
	Path        string // sqlite
	TursoURL    string
	TursoToken  string
	DatabaseURL string // postgres
	Limit       int
}

// Open creates the store named by opts.Backend
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		store Store
		err   error
	)
	switch strings.ToLower(opts.Backend) {
	case "", BackendSQLite:
		store, err = NewSQLiteStore(opts.Path, opts.Limit)
	case BackendTurso:
		store, err = NewTursoStore(ctx, opts.TursoURL, opts.TursoToken, opts.Limit)
	case BackendPostgres:
		store, err = NewPostgresStore(ctx, opts.DatabaseURL, opts.Limit)
	default:
		return nil, fmt.Errorf("unknown history backend %q", opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// DefaultPath returns the sqlite file under the user's config directory
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}

	dir := filepath.Join(configDir, "MatchScope")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create history directory: %w", err)
	}
	return filepath.Join(dir, "history.db"), nil
}

// searchKey identifies a player regardless of letter case
func searchKey(gameName, tagLine string) string {
	return strings.ToLower(strings.TrimSpace(gameName)) + "#" + strings.ToLower(strings.TrimSpace(tagLine))
}

func normalize(e *Entry, limit int) (string, int, error) {
	if strings.TrimSpace(e.GameName) == "" || strings.TrimSpace(e.TagLine) == "" {
		return "", 0, fmt.Errorf("game name and tag line are required")
	}
	if e.SearchedAt.IsZero() {
		e.SearchedAt = time.Now()
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return searchKey(e.GameName, e.TagLine), limit, nil
}
