package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"matchscope/internal/profile"
	"matchscope/internal/riot"

	json "github.com/goccy/go-json"
)

// Messages shown to the user for upstream failures
const (
	msgNotFound    = "Player not found. Check the name, tag and region."
	msgKeyInvalid  = "Riot API key expired or invalid. Update it in the .env file."
	msgRateLimited = "Too many requests. Wait a few seconds and try again."
	msgUpstream    = "Error fetching data. Try again."
	msgNoMatch     = "Match not found."
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Server] Failed to encode response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError reports err to the client and raises the key alert when Riot
// rejected the API key
func (s *Server) writeError(w http.ResponseWriter, err error) {
	if s.keyAlert != nil && (errors.Is(err, riot.ErrForbidden) || errors.Is(err, riot.ErrUnauthorized)) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.keyAlert.KeyRejected(ctx, "search"); err != nil {
				log.Printf("[Server] Failed to send key alert: %v", err)
			}
		}()
	}
	writeError(w, err)
}

// writeError maps a lookup failure to a status code and message
func writeError(w http.ResponseWriter, err error) {
	var verr riot.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Field: verr.Field})
	case errors.Is(err, profile.ErrMatchUnavailable):
		writeMessage(w, http.StatusNotFound, msgNoMatch)
	case errors.Is(err, riot.ErrNotFound):
		writeMessage(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, riot.ErrForbidden), errors.Is(err, riot.ErrUnauthorized):
		writeMessage(w, http.StatusForbidden, msgKeyInvalid)
	case errors.Is(err, riot.ErrRateLimited):
		writeMessage(w, http.StatusTooManyRequests, msgRateLimited)
	default:
		log.Printf("[Server] Upstream error: %v", err)
		writeMessage(w, http.StatusBadGateway, msgUpstream)
	}
}
