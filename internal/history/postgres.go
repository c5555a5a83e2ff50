package history

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps recent searches in PostgreSQL
type PostgresStore struct {
	pool  *pgxpool.Pool
	limit int
}

// NewPostgresStore connects to databaseURL and creates the table if needed
func NewPostgresStore(ctx context.Context, databaseURL string, limit int) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not configured")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if limit <= 0 {
		limit = DefaultLimit
	}
	s := &PostgresStore{pool: pool, limit: limit}
	if err := s.init(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) init(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS recent_searches (
			search_key TEXT PRIMARY KEY,
			game_name TEXT NOT NULL,
			tag_line TEXT NOT NULL,
			region TEXT NOT NULL,
			platform TEXT NOT NULL,
			profile_icon_id INTEGER NOT NULL DEFAULT 0,
			searched_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Record upserts the entry and trims the list to the store's limit
func (s *PostgresStore) Record(ctx context.Context, e Entry) error {
	key, limit, err := normalize(&e, s.limit)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO recent_searches (search_key, game_name, tag_line, region, platform, profile_icon_id, searched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (search_key) DO UPDATE SET
			game_name = EXCLUDED.game_name,
			tag_line = EXCLUDED.tag_line,
			region = EXCLUDED.region,
			platform = EXCLUDED.platform,
			profile_icon_id = EXCLUDED.profile_icon_id,
			searched_at = EXCLUDED.searched_at
	`, key, e.GameName, e.TagLine, e.Region, e.Platform, e.ProfileIconID, e.SearchedAt)
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM recent_searches
		WHERE search_key NOT IN (
			SELECT search_key FROM recent_searches ORDER BY searched_at DESC LIMIT $1
		)
	`, limit)
	if err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}

	return tx.Commit(ctx)
}

// Recent returns the stored searches, newest first
func (s *PostgresStore) Recent(ctx context.Context) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT game_name, tag_line, region, platform, profile_icon_id, searched_at
		FROM recent_searches
		ORDER BY searched_at DESC
		LIMIT $1
	`, s.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, s.limit)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.GameName, &e.TagLine, &e.Region, &e.Platform, &e.ProfileIconID, &e.SearchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the pool
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

