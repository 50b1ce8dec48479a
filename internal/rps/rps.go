// Package rps implements a best-of-N rock-paper-scissors match with
// simultaneous moves. It shares the poker engine's discipline: transitions
// take a State by value and return a new one, and an opponent's submitted
// move stays hidden until the round resolves.
package rps

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownPlayer = errors.New("unknown player")
	ErrAlreadyMoved  = errors.New("already moved this round")
	ErrMatchComplete = errors.New("match complete")
	ErrInvalidMove   = errors.New("invalid move")
)

// Move is a single throw. The zero value means no move has been made.
type Move int

const (
	None Move = iota
	Rock
	Paper
	Scissors
)

func (m Move) String() string {
	switch m {
	case None:
		return ""
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return fmt.Sprintf("move(%d)", int(m))
	}
}

// ParseMove parses "rock", "paper" or "scissors", ignoring case.
func ParseMove(s string) (Move, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rock":
		return Rock, nil
	case "paper":
		return Paper, nil
	case "scissors":
		return Scissors, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Move) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Move) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*m = None
		return nil
	}
	parsed, err := ParseMove(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// beats reports whether m defeats other.
func (m Move) beats(other Move) bool {
	switch m {
	case Rock:
		return other == Scissors
	case Paper:
		return other == Rock
	case Scissors:
		return other == Paper
	case None:
		return false
	default:
		panic("unhandled move " + m.String())
	}
}

// Round is a resolved round. Winner is empty for a draw.
type Round struct {
	Number int     `json:"number"`
	Moves  [2]Move `json:"moves"`
	Winner string  `json:"winner"`
}

// State is the full state of a match, including unrevealed moves.
type State struct {
	Players  [2]string `json:"players"`
	BestOf   int       `json:"bestOf"`
	Round    int       `json:"round"`
	Pending  [2]Move   `json:"pending"`
	Score    [2]int    `json:"score"`
	Rounds   []Round   `json:"rounds"`
	Complete bool      `json:"complete"`
	Winner   string    `json:"winner"`
}

// NewMatch starts a best-of match. bestOf must be odd and positive.
func NewMatch(a, b string, bestOf int) (State, error) {
	switch {
	case a == "" || b == "" || a == b:
		return State{}, fmt.Errorf("players must be two distinct non-empty ids, got %q and %q", a, b)
	case bestOf < 1 || bestOf%2 == 0:
		return State{}, fmt.Errorf("best of must be a positive odd number, got %d", bestOf)
	}
	return State{Players: [2]string{a, b}, BestOf: bestOf, Round: 1, Rounds: []Round{}}, nil
}

func (s State) seat(id string) int {
	for i, p := range s.Players {
		if p == id {
			return i
		}
	}
	return -1
}

// Submit records a player's move for the current round. When both players
// have moved the round resolves; draws are replayed and do not count.
func Submit(s State, playerID string, move Move) (State, error) {
	if s.Complete {
		return s, ErrMatchComplete
	}
	idx := s.seat(playerID)
	if idx < 0 {
		return s, fmt.Errorf("%w: %q", ErrUnknownPlayer, playerID)
	}
	if move < Rock || move > Scissors {
		return s, fmt.Errorf("%w: %v", ErrInvalidMove, move)
	}
	if s.Pending[idx] != None {
		return s, ErrAlreadyMoved
	}

	next := s
	next.Rounds = append([]Round(nil), s.Rounds...)
	next.Pending[idx] = move
	if next.Pending[0] != None && next.Pending[1] != None {
		next.resolve()
	}
	return next, nil
}

func (s *State) resolve() {
	r := Round{Number: s.Round, Moves: s.Pending}
	switch a, b := s.Pending[0], s.Pending[1]; {
	case a.beats(b):
		r.Winner = s.Players[0]
		s.Score[0]++
	case b.beats(a):
		r.Winner = s.Players[1]
		s.Score[1]++
	}
	s.Rounds = append(s.Rounds, r)
	s.Pending = [2]Move{}
	s.Round++

	need := s.BestOf/2 + 1
	for i, score := range s.Score {
		if score >= need {
			s.Complete = true
			s.Winner = s.Players[i]
		}
	}
}

// Hidden is shown in place of an opponent's submitted move.
const Hidden = "hidden"

// View is the per-viewer projection of a match. Pending holds the viewer's
// own move, Hidden for an opponent who has moved, or "" for no move yet.
type View struct {
	Players  [2]string `json:"players"`
	BestOf   int       `json:"bestOf"`
	Round    int       `json:"round"`
	Pending  [2]string `json:"pending"`
	Score    [2]int    `json:"score"`
	Rounds   []Round   `json:"rounds"`
	Complete bool      `json:"complete"`
	Winner   string    `json:"winner"`
}

// Redact returns what viewerID may see. Resolved rounds are public.
func Redact(s State, viewerID string) View {
	v := View{
		Players:  s.Players,
		BestOf:   s.BestOf,
		Round:    s.Round,
		Score:    s.Score,
		Rounds:   append([]Round{}, s.Rounds...),
		Complete: s.Complete,
		Winner:   s.Winner,
	}
	for i, m := range s.Pending {
		switch {
		case m == None:
		case s.Players[i] == viewerID:
			v.Pending[i] = m.String()
		default:
			v.Pending[i] = Hidden
		}
	}
	return v
}
