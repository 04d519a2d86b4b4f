package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mavikus/quizduel/internal/match"
	"github.com/mavikus/quizduel/internal/pubsub"
	"github.com/mavikus/quizduel/internal/questions"
)

// respondJSON is a helper to write a JSON response body.
func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response to JSON", "error", err)
	}
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID != "" {
			log.Info("Received request to clear a specific match", "matchID", matchID)
			s.Matches.ClearMatch(matchID)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Cleared match %s from store!", matchID)
			log.Info("Successfully cleared match from store", "matchID", matchID)
		} else {
			log.Info("Received request to clear entire store")
			s.Matches.Clear()
			s.Players.Clear()
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Store cleared!")
			log.Info("Store cleared successfully")
		}
	}
}

type matchmakeRequest struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	AvatarRef   string `json:"avatarRef"`
}

// MatchmakeHandler pairs the requester with an opponent. The response is
// immediate: either an active match or a waiting one. With wait=true the
// request blocks until an opponent joins and responds with the activated
// match instead.
func (s *Server) MatchmakeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req matchmakeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.UserID == "" {
			http.Error(w, "userId is required", http.StatusBadRequest)
			return
		}
		s.Stats.Increment("matchmake_requests")

		res, err := s.Matchmaker.FindOrCreate(match.PlayerState{
			UserID:      req.UserID,
			DisplayName: req.DisplayName,
			AvatarRef:   req.AvatarRef,
		})
		if err != nil {
			log.Error("Matchmaking failed", "user", req.UserID, "error", err)
			http.Error(w, "Matchmaking failed", http.StatusInternalServerError)
			return
		}

		if res.Ticket != nil && r.URL.Query().Get("wait") == "true" {
			select {
			case m, ok := <-res.Ticket.Active():
				if !ok {
					http.Error(w, "Gave up waiting for an opponent", http.StatusGatewayTimeout)
					return
				}
				respondJSON(w, m)
			case <-r.Context().Done():
				res.Ticket.Cancel()
				http.Error(w, "Client went away", http.StatusRequestTimeout)
			}
			return
		}

		// Without wait=true the ticket keeps running in the background, so
		// the creator's membership is still recorded when the match
		// activates.
		respondJSON(w, res)
	}
}

type scoreRequest struct {
	MatchID string `json:"matchId"`
	UserID  string `json:"userId"`
	Delta   int64  `json:"delta"`
}

// ScoreHandler applies a score delta to the requester's slot.
func (s *Server) ScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req scoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.MatchID == "" || req.UserID == "" {
			http.Error(w, "matchId and userId are required", http.StatusBadRequest)
			return
		}

		m, err := s.Matches.ApplyScoreDelta(req.MatchID, req.UserID, req.Delta)
		if err != nil {
			switch {
			case errors.Is(err, match.ErrNotFound):
				http.Error(w, "Match not found", http.StatusNotFound)
			case errors.Is(err, match.ErrSlotNotFound):
				s.Metrics.IncSlotNotFound()
				log.Warn("Score delta for a non-participant", "match", req.MatchID, "user", req.UserID)
				http.Error(w, "User holds no slot in this match", http.StatusBadRequest)
			default:
				log.Error("Failed to apply score delta", "match", req.MatchID, "error", err)
				http.Error(w, "Failed to apply score delta", http.StatusInternalServerError)
			}
			return
		}

		s.Metrics.IncScoreUpdates()
		s.Stats.Increment("score_updates")
		respondJSON(w, m)
	}
}

type completeRequest struct {
	MatchID string `json:"matchId"`
}

// CompleteMatchHandler transitions an active match to completed.
func (s *Server) CompleteMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req completeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.MatchID == "" {
			http.Error(w, "matchId is required", http.StatusBadRequest)
			return
		}

		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have completed match", "match", req.MatchID)
			w.Write([]byte("OK"))
			return
		}

		m, err := s.Matches.Complete(req.MatchID)
		if err != nil {
			switch {
			case errors.Is(err, match.ErrNotFound):
				http.Error(w, "Match not found", http.StatusNotFound)
			case errors.Is(err, match.ErrNotActive):
				http.Error(w, "Match is not active", http.StatusConflict)
			default:
				log.Error("Failed to complete match", "match", req.MatchID, "error", err)
				http.Error(w, "Failed to complete match", http.StatusInternalServerError)
			}
			return
		}

		s.Metrics.IncMatchesCompleted()
		s.Stats.Increment("matches_completed")
		if err := s.pubsub.SendMessage(pubsub.EventMatchCompleted, m); err != nil {
			log.Error("Failed to publish completion event", "match", m.ID, "error", err)
		}
		respondJSON(w, m)
	}
}

func (s *Server) GetMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		m, err := s.Matches.Get(id)
		if err != nil {
			if errors.Is(err, match.ErrNotFound) {
				http.Error(w, "Match not found", http.StatusNotFound)
				return
			}
			log.Error("Failed to get match", "match", id, "error", err)
			http.Error(w, "Failed to get match", http.StatusInternalServerError)
			return
		}
		respondJSON(w, m)
	}
}

// MyMatchesHandler returns the matches the player has joined, newest
// first.
func (s *Server) MyMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("userId")
		if userID == "" {
			http.Error(w, "userId is required", http.StatusBadRequest)
			return
		}
		ids, err := s.Players.MatchIDs(userID)
		if err != nil {
			log.Error("Failed to get memberships", "user", userID, "error", err)
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			return
		}
		matches, err := s.Matches.List(ids)
		if err != nil {
			log.Error("Failed to list matches", "user", userID, "error", err)
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			return
		}
		respondJSON(w, matches)
	}
}

func (s *Server) WaitingMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Matches.ListWaiting()
		if err != nil {
			log.Error("Failed to list waiting matches", "error", err)
			http.Error(w, "Failed to get waiting matches", http.StatusInternalServerError)
			return
		}
		respondJSON(w, matches)
	}
}

// QuestionsHandler serves a single question set by id, or the list of
// available ids.
func (s *Server) QuestionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			ids, err := s.Questions.IDs()
			if err != nil {
				log.Error("Failed to list question sets", "error", err)
				http.Error(w, "Failed to get question sets", http.StatusInternalServerError)
				return
			}
			respondJSON(w, ids)
			return
		}
		lesson, err := s.Questions.Get(id)
		if err != nil {
			if errors.Is(err, questions.ErrNotFound) {
				http.Error(w, "Question set not found", http.StatusNotFound)
				return
			}
			log.Error("Failed to get question set", "id", id, "error", err)
			http.Error(w, "Failed to get question set", http.StatusInternalServerError)
			return
		}
		respondJSON(w, lesson)
	}
}

func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Stats.GetAll()
		if err != nil {
			log.Error("Failed to get stats", "error", err)
			http.Error(w, "Failed to get stats", http.StatusInternalServerError)
			return
		}
		respondJSON(w, stats)
	}
}
