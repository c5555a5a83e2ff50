package matches

import (
	"context"
	"log"
	"time"

	"matchscope/internal/riot"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultMatchCount   = 20
	MaxMatchCount       = 20
	DefaultFetchTimeout = 10 * time.Second
)

// Source is the upstream provider of match ids and match records
type Source interface {
	GetMatchIDs(ctx context.Context, region, puuid string, start, count int) ([]string, error)
	GetMatch(ctx context.Context, region, matchID string) (*riot.Match, error)
}

// FetcherConfig holds configuration for the fetcher
type FetcherConfig struct {
	Timeout     time.Duration // per-match deadline
	Concurrency int           // 0 = one goroutine per id
	Cache       *Cache        // optional
}

// Fetcher retrieves a player's recent matches, isolating per-match failures
type Fetcher struct {
	source      Source
	timeout     time.Duration
	concurrency int
	cache       *Cache
}

// NewFetcher creates a new fetcher over source
func NewFetcher(source Source, cfg FetcherConfig) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultFetchTimeout
	}
	return &Fetcher{
		source:      source,
		timeout:     cfg.Timeout,
		concurrency: cfg.Concurrency,
		cache:       cfg.Cache,
	}
}

// FetchMatches lists the player's most recent match ids and retrieves each
// match. A failed listing yields an empty history rather than an error.
func (f *Fetcher) FetchMatches(ctx context.Context, puuid, region string, count int) []riot.Match {
	if count <= 0 {
		count = DefaultMatchCount
	}
	if count > MaxMatchCount {
		count = MaxMatchCount
	}

	ids, err := f.source.GetMatchIDs(ctx, region, puuid, 0, count)
	if err != nil {
		log.Printf("[Fetcher] Failed to list matches for %s: %v", shortID(puuid), err)
		return []riot.Match{}
	}

	return f.FetchByIDs(ctx, region, ids)
}

// FetchByIDs retrieves every id concurrently. Each id gets its own timeout and
// its failure only drops that id; the surviving matches keep input order.
func (f *Fetcher) FetchByIDs(ctx context.Context, region string, ids []string) []riot.Match {
	slots := make([]*riot.Match, len(ids))

	var g errgroup.Group
	if f.concurrency > 0 {
		g.SetLimit(f.concurrency)
	}

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			slots[i] = f.fetchOne(ctx, region, id)
			return nil
		})
	}
	g.Wait()

	result := make([]riot.Match, 0, len(ids))
	for _, m := range slots {
		if m != nil {
			result = append(result, *m)
		}
	}

	if dropped := len(ids) - len(result); dropped > 0 {
		log.Printf("[Fetcher] %d/%d matches retrieved (%d dropped)", len(result), len(ids), dropped)
	}
	return result
}

// fetchOne returns nil on any failure
func (f *Fetcher) fetchOne(ctx context.Context, region, matchID string) *riot.Match {
	if f.cache != nil {
		if m, ok := f.cache.Get(region, matchID); ok {
			return m
		}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	m, err := f.source.GetMatch(ctx, region, matchID)
	if err != nil {
		log.Printf("[Fetcher] Failed to fetch %s: %v", matchID, err)
		return nil
	}
	if err := m.Validate(); err != nil {
		log.Printf("[Fetcher] Discarding %s: %v", matchID, err)
		return nil
	}

	if f.cache != nil {
		f.cache.Set(region, m)
	}
	return m
}

func shortID(puuid string) string {
	if len(puuid) > 16 {
		return puuid[:16]
	}
	return puuid
}
