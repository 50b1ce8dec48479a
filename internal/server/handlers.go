package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/match"
	"github.com/lox/headsup/internal/view"
)

// maxBodySize bounds request bodies.
const maxBodySize = 64 << 10

// CreateRequest is the body of POST /matches. Zero fields take the server's
// defaults.
type CreateRequest struct {
	Players       [2]string `json:"players"`
	StartingChips int       `json:"startingChips,omitempty"`
	SmallBlind    int       `json:"smallBlind,omitempty"`
	BigBlind      int       `json:"bigBlind,omitempty"`
	MaxHands      int       `json:"maxHands,omitempty"`
	Seed          int64     `json:"seed,omitempty"`
}

// ActionRequest is the body of POST /matches/{id}/actions.
type ActionRequest struct {
	PlayerID  string `json:"playerId,omitempty"`
	Action    string `json:"action"`
	Amount    int    `json:"amount,omitempty"`
	Reasoning string `json:"reasoning,omitempty"`
}

// MatchResponse wraps a redacted view with its match id.
type MatchResponse struct {
	ID   string     `json:"id"`
	View view.State `json:"view"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	cfg := s.defaults
	if req.StartingChips != 0 {
		cfg.StartingChips = req.StartingChips
	}
	if req.SmallBlind != 0 {
		cfg.SmallBlind = req.SmallBlind
	}
	if req.BigBlind != 0 {
		cfg.BigBlind = req.BigBlind
	}
	if req.MaxHands != 0 {
		cfg.MaxHands = req.MaxHands
	}
	cfg.Seed = req.Seed

	rec, err := s.manager.Create(r.Context(), req.Players[0], req.Players[1], cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, MatchResponse{ID: rec.ID, View: view.Redact(rec.State, viewerOf(r))})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	v, err := s.manager.View(r.Context(), id, viewerOf(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MatchResponse{ID: id, View: v})
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	// The header names the caller; a body may only repeat it.
	player := viewerOf(r)
	switch {
	case player == "":
		player = req.PlayerID
	case req.PlayerID != "" && req.PlayerID != player:
		s.writeError(w, badRequest("playerId %q does not match %s %q", req.PlayerID, PlayerHeader, player))
		return
	}
	if player == "" {
		s.writeError(w, badRequest("player id required"))
		return
	}

	id := r.PathValue("id")
	rec, err := s.manager.Act(r.Context(), id, game.Action{
		PlayerID:  player,
		Kind:      req.Action,
		Amount:    req.Amount,
		Reasoning: req.Reasoning,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MatchResponse{ID: id, View: view.Redact(rec.State, player)})
}

// viewerOf returns the caller's identity from the header or, for clients
// such as browsers' websocket API that cannot set headers, the query string.
func viewerOf(r *http.Request) string {
	if id := r.Header.Get(PlayerHeader); id != "" {
		return id
	}
	return r.URL.Query().Get("viewer")
}

type requestError struct{ msg string }

func (e *requestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &requestError{msg: fmt.Sprintf(format, args...)}
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest("invalid request body: %v", err)
	}
	return nil
}

// statusOf maps an error onto an HTTP status and an error kind for clients.
func statusOf(err error) (int, string) {
	var (
		actionErr *game.ActionError
		reqErr    *requestError
	)
	switch {
	case errors.As(err, &actionErr):
		switch actionErr.Kind {
		case game.IllegalRaiseSize:
			return http.StatusUnprocessableEntity, actionErr.Kind.String()
		case game.NotYourTurn, game.GameAlreadyComplete:
			return http.StatusConflict, actionErr.Kind.String()
		default:
			return http.StatusBadRequest, actionErr.Kind.String()
		}
	case errors.Is(err, match.ErrNotFound):
		return http.StatusNotFound, "NotFound"
	case errors.Is(err, game.ErrInvalidConfig), errors.As(err, &reqErr):
		return http.StatusBadRequest, "BadRequest"
	default:
		return http.StatusInternalServerError, ""
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, kind := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", "error", err)
		msg = http.StatusText(status)
	}
	writeJSON(w, status, ErrorResponse{Error: msg, Kind: kind})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
