package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"matchscope/internal/config"
	"matchscope/internal/gamedata"
	"matchscope/internal/history"
	"matchscope/internal/matches"
	"matchscope/internal/notify"
	"matchscope/internal/profile"
	"matchscope/internal/riot"
	"matchscope/internal/server"
)

func main() {
	cfg, err := config.Load(config.DefaultEnvPaths...)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := server.SetupSignalHandler()

	client, err := riot.NewClient(cfg.RiotAPIKey,
		riot.WithRateLimits(cfg.RateLimitPerSecond, cfg.RateLimitPer2Min),
	)
	if err != nil {
		log.Fatalf("Failed to create Riot client: %v", err)
	}

	var keyAlert server.KeyAlerter
	if n := notify.NewNotifier(cfg.DiscordWebhook, cfg.RiotAPIKey); n != nil {
		keyAlert = n
	}

	if cfg.ValidateKey {
		checkKey(ctx, cfg.RiotAPIKey, keyAlert)
	}

	resolver := gamedata.NewResolver(gamedata.WithBaseURL(cfg.DataDragonURL))
	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := resolver.Load(loadCtx); err != nil {
		log.Printf("[GameData] Using fallback catalog v%s: %v", resolver.Version(), err)
	}
	cancel()

	store, err := history.Open(ctx, history.Options{
		Backend:     cfg.HistoryBackend,
		Path:        cfg.HistoryPath,
		TursoURL:    cfg.TursoURL,
		TursoToken:  cfg.TursoToken,
		DatabaseURL: cfg.DatabaseURL,
		Limit:       cfg.HistoryLimit,
	})
	if err != nil {
		log.Fatalf("Failed to open search history: %v", err)
	}
	defer store.Close()

	fetcher := matches.NewFetcher(client, matches.FetcherConfig{
		Timeout:     cfg.FetchTimeout,
		Concurrency: cfg.FetchConcurrency,
		Cache:       matches.NewCache(cfg.MatchCacheSize),
	})

	svc := profile.NewService(client, fetcher, resolver, profile.Options{
		MatchCount:   cfg.MatchCount,
		MasteryCount: cfg.MasteryCount,
		History:      store,
	})

	srv := server.New(svc, client, fetcher, resolver, server.Config{
		AllowedOrigins: cfg.AllowedOrigins,
		MatchCount:     cfg.MatchCount,
		MasteryCount:   cfg.MasteryCount,
		KeyAlert:       keyAlert,
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      srv.Handler(os.Stdout),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	log.Printf("[Server] History backend: %s, catalog v%s", cfg.HistoryBackend, resolver.Version())
	if err := server.Serve(ctx, httpServer, 10*time.Second); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// checkKey probes the key once at startup; a rejected key only warns
func checkKey(ctx context.Context, apiKey string, alert server.KeyAlerter) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	valid, err := riot.NewKeyValidator(riot.DefaultRouting.Platform).ValidateKey(ctx, apiKey)
	switch {
	case err != nil:
		log.Printf("[Riot] Could not validate API key: %v", err)
	case !valid:
		log.Println("[Riot] WARNING: API key was rejected, searches will fail until it is replaced")
		if alert != nil {
			if err := alert.KeyRejected(ctx, "startup probe"); err != nil {
				log.Printf("[Riot] Failed to send key alert: %v", err)
			}
		}
	default:
		log.Println("[Riot] API key validated")
	}
}
