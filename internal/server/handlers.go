package server

import (
	"log"
	"net/http"
	"net/url"
	"strconv"

	"matchscope/internal/riot"
	"matchscope/internal/stats"

	"github.com/go-chi/chi/v5"
)

const msgMissingParams = "Missing parameters"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "ok",
		"catalogVersion":  s.gameData.Version(),
		"catalogFallback": s.gameData.IsFallback(),
	})
}

// routingFromQuery reads server, region and platform parameters
func routingFromQuery(q url.Values) (riot.Routing, error) {
	routing, err := riot.ResolveRouting(q.Get("server"), q.Get("region"), q.Get("platform"))
	if err != nil {
		return riot.Routing{}, riot.ValidationError{Field: "routing", Message: err.Error()}
	}
	return routing, nil
}

// puuidAndPlatform reads the parameters shared by the per-summoner lookups.
// ok is false when a required parameter is missing.
func puuidAndPlatform(q url.Values) (puuid string, routing riot.Routing, ok bool, err error) {
	puuid = q.Get("puuid")
	if puuid == "" || (q.Get("platform") == "" && q.Get("server") == "") {
		return "", riot.Routing{}, false, nil
	}
	if err := riot.ValidatePUUID(puuid); err != nil {
		return "", riot.Routing{}, true, err
	}
	routing, err = routingFromQuery(q)
	return puuid, routing, true, err
}

func (s *Server) handleUserData(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	gameName, tagLine := q.Get("gamename"), q.Get("tagline")
	if err := riot.ValidateGameName(gameName); err != nil {
		s.writeError(w, err)
		return
	}
	if err := riot.ValidateTagLine(tagLine); err != nil {
		s.writeError(w, err)
		return
	}

	routing, err := routingFromQuery(q)
	if err != nil {
		s.writeError(w, err)
		return
	}

	account, err := s.api.GetAccountByRiotID(r.Context(), routing.Region, gameName, tagLine)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (s *Server) handleSummonerData(w http.ResponseWriter, r *http.Request) {
	puuid, routing, ok, err := puuidAndPlatform(r.URL.Query())
	if !ok {
		writeMessage(w, http.StatusBadRequest, msgMissingParams)
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	summoner, err := s.api.GetSummonerByPUUID(r.Context(), routing.Platform, puuid)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summoner)
}

func (s *Server) handleRankData(w http.ResponseWriter, r *http.Request) {
	puuid, routing, ok, err := puuidAndPlatform(r.URL.Query())
	if !ok {
		writeMessage(w, http.StatusBadRequest, msgMissingParams)
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	entries, err := s.api.GetLeagueEntries(r.Context(), routing.Platform, puuid)
	if err != nil {
		log.Printf("[Server] Rank lookup failed: %v", err)
		entries = []riot.LeagueEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleChampionMastery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	puuid, routing, ok, err := puuidAndPlatform(q)
	if !ok {
		writeMessage(w, http.StatusBadRequest, msgMissingParams)
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	count := s.masteryCount
	if c, err := strconv.Atoi(q.Get("count")); err == nil && c > 0 {
		count = c
	}

	entries, err := s.api.GetTopMasteries(r.Context(), routing.Platform, puuid, count)
	if err != nil {
		log.Printf("[Server] Mastery lookup failed: %v", err)
		entries = []riot.MasteryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleMatchHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	puuid := q.Get("puuid")
	if puuid == "" {
		writeMessage(w, http.StatusBadRequest, msgMissingParams)
		return
	}
	if err := riot.ValidatePUUID(puuid); err != nil {
		s.writeError(w, err)
		return
	}

	routing, err := routingFromQuery(q)
	if err != nil {
		s.writeError(w, err)
		return
	}

	count := s.matchCount
	if c, err := strconv.Atoi(q.Get("count")); err == nil && c > 0 {
		count = c
	}

	writeJSON(w, http.StatusOK, s.fetcher.FetchMatches(r.Context(), puuid, routing.Region, count))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	gameName, tagLine := q.Get("gamename"), q.Get("tagline")
	if riotID := q.Get("riotId"); riotID != "" && gameName == "" {
		gameName, tagLine = riot.ParseRiotID(riotID)
	}

	routing, err := routingFromQuery(q)
	if err != nil {
		s.writeError(w, err)
		return
	}

	filter, err := stats.ParseQueueFilter(q.Get("queue"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: "queue"})
		return
	}

	dash, err := s.svc.Search(r.Context(), gameName, tagLine, routing, filter)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

func (s *Server) handleMatchAnalysis(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	routing, err := routingFromQuery(q)
	if err != nil {
		s.writeError(w, err)
		return
	}

	view, err := s.svc.Match(r.Context(), routing.Region, chi.URLParam(r, "matchId"), q.Get("puuid"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleRecentSearches(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.Recent(r.Context())
	if err != nil {
		log.Printf("[Server] Failed to read recent searches: %v", err)
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGameData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.gameData.Catalog())
}
