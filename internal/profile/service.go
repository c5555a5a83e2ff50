// Package profile runs a player search end to end: account lookup, match
// retrieval, aggregation and per-match analysis.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log"

	"matchscope/internal/history"
	"matchscope/internal/matches"
	"matchscope/internal/riot"
	"matchscope/internal/stats"

	"golang.org/x/sync/errgroup"
)

// DefaultMasteryCount is the number of top masteries requested
const DefaultMasteryCount = 10

// ErrMatchUnavailable is returned when a single match could not be retrieved
var ErrMatchUnavailable = errors.New("match unavailable")

// RiotAPI is the subset of the Riot client a search needs
type RiotAPI interface {
	matches.Source
	GetAccountByRiotID(ctx context.Context, region, gameName, tagLine string) (*riot.AccountResponse, error)
	GetSummonerByPUUID(ctx context.Context, platform, puuid string) (*riot.Summoner, error)
	GetLeagueEntries(ctx context.Context, platform, puuid string) ([]riot.LeagueEntry, error)
	GetTopMasteries(ctx context.Context, platform, puuid string, count int) ([]riot.MasteryEntry, error)
}

// GameData resolves ids to names and asset URLs
type GameData interface {
	ResolveChampion(id int) string
	ResolveSpell(id int) string
	ResolveItemAsset(id int) string
	ChampionIconURL(id int) string
	SpellIconURL(id int) string
	ItemIconURL(id int) string
	ProfileIconURL(iconID int) string
	Version() string
	IsFallback() bool
}

// Options configures a Service
type Options struct {
	MatchCount   int
	MasteryCount int
	History      history.Store // optional
}

// Service orchestrates searches
type Service struct {
	api          RiotAPI
	fetcher      *matches.Fetcher
	gameData     GameData
	history      history.Store
	matchCount   int
	masteryCount int
}

// NewService creates a new search service
func NewService(api RiotAPI, fetcher *matches.Fetcher, gameData GameData, opts Options) *Service {
	if opts.MatchCount <= 0 {
		opts.MatchCount = matches.DefaultMatchCount
	}
	if opts.MasteryCount <= 0 {
		opts.MasteryCount = DefaultMasteryCount
	}
	return &Service{
		api:          api,
		fetcher:      fetcher,
		gameData:     gameData,
		history:      opts.History,
		matchCount:   opts.MatchCount,
		masteryCount: opts.MasteryCount,
	}
}

// Search looks up a player and builds their dashboard. Only a failed
// account or summoner lookup is returned as an error; ranks, masteries and
// matches degrade to empty lists.
func (s *Service) Search(ctx context.Context, gameName, tagLine string, routing riot.Routing, filter stats.QueueFilter) (*Dashboard, error) {
	if err := riot.ValidateGameName(gameName); err != nil {
		return nil, err
	}
	if err := riot.ValidateTagLine(tagLine); err != nil {
		return nil, err
	}

	account, err := s.api.GetAccountByRiotID(ctx, routing.Region, gameName, tagLine)
	if err != nil {
		return nil, fmt.Errorf("account lookup for %s#%s: %w", gameName, tagLine, err)
	}

	summoner, err := s.api.GetSummonerByPUUID(ctx, routing.Platform, account.PUUID)
	if err != nil {
		return nil, fmt.Errorf("summoner lookup for %s#%s: %w", gameName, tagLine, err)
	}

	var (
		ranks     []riot.LeagueEntry
		masteries []riot.MasteryEntry
		recent    []riot.Match
	)

	var g errgroup.Group
	g.Go(func() error {
		entries, err := s.api.GetLeagueEntries(ctx, routing.Platform, account.PUUID)
		if err != nil {
			log.Printf("[Profile] Rank lookup failed for %s#%s: %v", gameName, tagLine, err)
			entries = nil
		}
		ranks = entries
		return nil
	})
	g.Go(func() error {
		entries, err := s.api.GetTopMasteries(ctx, routing.Platform, account.PUUID, s.masteryCount)
		if err != nil {
			log.Printf("[Profile] Mastery lookup failed for %s#%s: %v", gameName, tagLine, err)
			entries = nil
		}
		masteries = entries
		return nil
	})
	g.Go(func() error {
		recent = s.fetcher.FetchMatches(ctx, account.PUUID, routing.Region, s.matchCount)
		return nil
	})
	g.Wait()

	dash := s.buildDashboard(account, summoner, routing, filter, ranks, masteries, recent)
	s.record(ctx, account, summoner, routing)
	return dash, nil
}

// record saves the search; failures are only logged
func (s *Service) record(ctx context.Context, account *riot.AccountResponse, summoner *riot.Summoner, routing riot.Routing) {
	if s.history == nil {
		return
	}
	err := s.history.Record(ctx, history.Entry{
		GameName:      account.GameName,
		TagLine:       account.TagLine,
		Region:        routing.Region,
		Platform:      routing.Platform,
		ProfileIconID: summoner.ProfileIconID,
	})
	if err != nil {
		log.Printf("[Profile] Failed to record search for %s#%s: %v", account.GameName, account.TagLine, err)
	}
}

// Recent returns the recent searches, or an empty list without a store
func (s *Service) Recent(ctx context.Context) ([]history.Entry, error) {
	if s.history == nil {
		return []history.Entry{}, nil
	}
	return s.history.Recent(ctx)
}

// Match retrieves and analyzes one match. trackedPUUID may be empty.
func (s *Service) Match(ctx context.Context, region, matchID, trackedPUUID string) (*MatchView, error) {
	if err := riot.ValidateMatchID(matchID); err != nil {
		return nil, err
	}

	found := s.fetcher.FetchByIDs(ctx, region, []string{matchID})
	if len(found) == 0 {
		return nil, fmt.Errorf("%s: %w", matchID, ErrMatchUnavailable)
	}

	view := BuildMatchView(&found[0], trackedPUUID, s.gameData)
	return &view, nil
}
