// Package server exposes searches, match analysis and the Riot pass-through
// endpoints over HTTP.
package server

import (
	"context"
	"io"
	"net/http"
	"strings"

	"matchscope/internal/gamedata"
	"matchscope/internal/matches"
	"matchscope/internal/profile"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/handlers"
)

// CatalogSource is the game data the server reads
type CatalogSource interface {
	profile.GameData
	Catalog() *gamedata.Catalog
}

// KeyAlerter is told when Riot rejects the API key
type KeyAlerter interface {
	KeyRejected(ctx context.Context, source string) error
}

// Config holds server settings
type Config struct {
	AllowedOrigins []string
	MatchCount     int
	MasteryCount   int
	KeyAlert       KeyAlerter // optional
}

// Server holds the HTTP handlers' dependencies
type Server struct {
	svc          *profile.Service
	api          profile.RiotAPI
	fetcher      *matches.Fetcher
	gameData     CatalogSource
	origins      map[string]bool
	matchCount   int
	masteryCount int
	keyAlert     KeyAlerter
}

// New creates a new server
func New(svc *profile.Service, api profile.RiotAPI, fetcher *matches.Fetcher, gameData CatalogSource, cfg Config) *Server {
	origins := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		origins[strings.TrimRight(o, "/")] = true
	}
	if cfg.MatchCount <= 0 {
		cfg.MatchCount = matches.DefaultMatchCount
	}
	if cfg.MasteryCount <= 0 {
		cfg.MasteryCount = profile.DefaultMasteryCount
	}
	return &Server{
		svc:          svc,
		api:          api,
		fetcher:      fetcher,
		gameData:     gameData,
		origins:      origins,
		matchCount:   cfg.MatchCount,
		masteryCount: cfg.MasteryCount,
		keyAlert:     cfg.KeyAlert,
	}
}

// Routes returns the API router
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.corsMiddleware)

	r.Route("/api", func(api chi.Router) {
		api.Options("/*", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		api.Get("/health", s.handleHealth)

		api.Route("/v1", func(v1 chi.Router) {
			v1.Get("/userData", s.handleUserData)
			v1.Get("/summonerData", s.handleSummonerData)
			v1.Get("/rankData", s.handleRankData)
			v1.Get("/matchHistory", s.handleMatchHistory)
			v1.Get("/championMastery", s.handleChampionMastery)

			v1.Get("/dashboard", s.handleDashboard)
			v1.Get("/match/{matchId}/analysis", s.handleMatchAnalysis)
			v1.Get("/recentSearches", s.handleRecentSearches)
			v1.Get("/gameData", s.handleGameData)
		})
	})

	return r
}

// Handler wraps Routes with response compression and, when accessLog is
// non-nil, combined-format access logging
func (s *Server) Handler(accessLog io.Writer) http.Handler {
	var h http.Handler = handlers.CompressHandler(s.Routes())
	if accessLog != nil {
		h = handlers.CombinedLoggingHandler(accessLog, h)
	}
	return h
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if s.origins["*"] {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else if s.origins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
