package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// SQLStore keeps recent searches in a local sqlite file or a Turso database
type SQLStore struct {
	db    *sql.DB
	limit int
}

// NewSQLiteStore opens (creating if needed) a sqlite history at path. An
// empty path uses DefaultPath.
func NewSQLiteStore(path string, limit int) (*SQLStore, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows one writer at a time
	db.SetMaxOpenConns(1)

	return newSQLStore(context.Background(), db, limit)
}

// NewTursoStore connects to a Turso database
func NewTursoStore(ctx context.Context, url, token string, limit int) (*SQLStore, error) {
	if url == "" {
		return nil, fmt.Errorf("Turso URL not configured (set TURSO_DATABASE_URL)")
	}

	connStr := url
	if token != "" {
		connStr = fmt.Sprintf("%s?authToken=%s", url, token)
	}

	db, err := sql.Open("libsql", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Turso: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping Turso: %w", err)
	}

	return newSQLStore(ctx, db, limit)
}

func newSQLStore(ctx context.Context, db *sql.DB, limit int) (*SQLStore, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	s := &SQLStore{db: db, limit: limit}
	if err := s.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS recent_searches (
			search_key TEXT PRIMARY KEY,
			game_name TEXT NOT NULL,
			tag_line TEXT NOT NULL,
			region TEXT NOT NULL,
			platform TEXT NOT NULL,
			profile_icon_id INTEGER NOT NULL DEFAULT 0,
			searched_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Record upserts the entry and trims the list to the store's limit
func (s *SQLStore) Record(ctx context.Context, e Entry) error {
	key, limit, err := normalize(&e, s.limit)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recent_searches (search_key, game_name, tag_line, region, platform, profile_icon_id, searched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(search_key) DO UPDATE SET
			game_name = excluded.game_name,
			tag_line = excluded.tag_line,
			region = excluded.region,
			platform = excluded.platform,
			profile_icon_id = excluded.profile_icon_id,
			searched_at = excluded.searched_at
	`, key, e.GameName, e.TagLine, e.Region, e.Platform, e.ProfileIconID, e.SearchedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM recent_searches
		WHERE search_key NOT IN (
			SELECT search_key FROM recent_searches ORDER BY searched_at DESC LIMIT ?
		)
	`, limit)
	if err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}

	return tx.Commit()
}

// Recent returns the stored searches, newest first
func (s *SQLStore) Recent(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT game_name, tag_line, region, platform, profile_icon_id, searched_at
		FROM recent_searches
		ORDER BY searched_at DESC
		LIMIT ?
	`, s.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, s.limit)
	for rows.Next() {
		var e Entry
		var searchedAt int64
		if err := rows.Scan(&e.GameName, &e.TagLine, &e.Region, &e.Platform, &e.ProfileIconID, &searchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		e.SearchedAt = time.Unix(0, searchedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database
func (s *SQLStore) Close() error {
	return s.db.Close()
}
