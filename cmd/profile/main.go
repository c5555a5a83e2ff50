package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"matchscope/internal/config"
	"matchscope/internal/gamedata"
	"matchscope/internal/matches"
	"matchscope/internal/profile"
	"matchscope/internal/riot"
	"matchscope/internal/stats"
)

func main() {
	riotID := flag.String("riot-id", "", "Riot ID in format 'GameName#TagLine'")
	serverLabel := flag.String("server", "BR", "Server label (NA, EUW, KR, BR, ...)")
	queue := flag.String("queue", "all", "Queue id to filter on, or 'all'")
	count := flag.Int("count", matches.DefaultMatchCount, "Number of recent matches to fetch")
	flag.Parse()

	if *riotID == "" {
		fmt.Println("Usage: go run ./cmd/profile --riot-id=\"PlayerName#BR1\" [--server=BR] [--queue=420] [--count=20]")
		os.Exit(1)
	}

	cfg, err := config.Load(config.DefaultEnvPaths...)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	filter, err := stats.ParseQueueFilter(*queue)
	if err != nil {
		log.Fatalf("Invalid --queue: %v", err)
	}

	routing, err := riot.ResolveRouting(*serverLabel, "", "")
	if err != nil {
		log.Fatalf("Invalid --server: %v", err)
	}

	client, err := riot.NewClient(cfg.RiotAPIKey,
		riot.WithRateLimits(cfg.RateLimitPerSecond, cfg.RateLimitPer2Min),
	)
	if err != nil {
		log.Fatalf("Failed to create Riot client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	resolver := gamedata.NewResolver(gamedata.WithBaseURL(cfg.DataDragonURL))
	if err := resolver.Load(ctx); err != nil {
		log.Printf("[GameData] Using fallback catalog: %v", err)
	}

	fetcher := matches.NewFetcher(client, matches.FetcherConfig{
		Timeout:     cfg.FetchTimeout,
		Concurrency: cfg.FetchConcurrency,
	})
	svc := profile.NewService(client, fetcher, resolver, profile.Options{
		MatchCount:   *count,
		MasteryCount: cfg.MasteryCount,
	})

	gameName, tagLine := riot.ParseRiotID(*riotID)
	fmt.Printf("\nSearching %s#%s on %s/%s (queue %s)\n", gameName, tagLine, routing.Region, routing.Platform, filter)

	dash, err := svc.Search(ctx, gameName, tagLine, routing, filter)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}

	printDashboard(dash)
}

func printDashboard(dash *profile.Dashboard) {
	fmt.Printf("\nLevel %d", dash.Summoner.SummonerLevel)
	if dash.SoloQueue != nil {
		fmt.Printf(" - Solo/Duo: %s %s (%d LP) %dW %dL",
			dash.SoloQueue.Tier, dash.SoloQueue.Rank, dash.SoloQueue.LeaguePoints, dash.SoloQueue.Wins, dash.SoloQueue.Losses)
	} else {
		fmt.Print(" - Unranked")
	}
	fmt.Println()

	rec := dash.Record
	fmt.Printf("\nOverall: %d games, %dW %dL (%s%%), KDA %s\n", rec.Games, rec.Wins, rec.Losses, rec.WinRate, rec.KDA)

	fmt.Println("\nChampions:")
	if len(dash.Champions) == 0 {
		fmt.Println("   No games found")
	}
	for _, c := range dash.Champions {
		fmt.Printf("   %-14s %2d games  %5s%% WR  %d/%d/%d (%s)\n",
			c.ChampionName, c.Games, c.WinRate, c.Kills, c.Deaths, c.Assists, c.KDA)
	}

	fmt.Println("\nMatches:")
	for _, m := range dash.Matches {
		result := "LOSS"
		if m.Win {
			result = "WIN "
		}
		line := fmt.Sprintf("   %s %-16s %6s", result, m.QueueName, m.Duration)
		if m.SelfIndex >= 0 {
			p := m.Participants[m.SelfIndex]
			line += fmt.Sprintf("  %-12s %d/%d/%d  rank %d", p.ChampionName, p.Kills, p.Deaths, p.Assists, p.TeamRank)
			if p.MVP {
				line += "  MVP"
			}
		}
		fmt.Println(line)
	}

	if len(dash.Mastery) > 0 {
		fmt.Println("\nTop mastery:")
		for _, m := range dash.Mastery {
			fmt.Printf("   %-14s level %d  %d pts\n", m.ChampionName, m.ChampionLevel, m.ChampionPoints)
		}
	}
	fmt.Printf("\nCatalog v%s\n", dash.CatalogVersion)
}
