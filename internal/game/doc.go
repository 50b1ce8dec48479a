// Package game implements a heads-up Texas Hold'em match engine.
//
// The main type is State, a serializable snapshot of a whole match: both
// players, the current hand, the hand history and the action log. The engine
// is pure: every transition takes a State by value and returns a new one, so
// the caller decides where state lives and how access to it is serialized.
//
// # Basic Usage
//
//	s, err := game.NewMatch("alice", "bob", game.Config{
//	    StartingChips: 1000,
//	    SmallBlind:    10,
//	    BigBlind:      20,
//	    MaxHands:      50,
//	    Seed:          42,
//	})
//	// alice is the dealer for hand one and acts first preflop
//	s, err = game.Apply(s, game.Action{PlayerID: "alice", Kind: "call"})
//	if s.GameComplete {
//	    winner, ok := game.Winner(s)
//	}
//
// # Determinism
//
// The only randomness is the deck shuffle, derived from Config.Seed and the
// hand number. Replaying the same actions against the same seed always
// produces the same states.
//
// # Architecture
//
// Apply validates a submission (turn ownership, normalisation, raise sizing)
// before touching anything, then mutates a private copy:
//   - actions.go: ValidActions and Apply
//   - normalize.go: the auto-correction table for submitted action strings
//   - betting.go: street completion, dealing and the all-in run-out
//   - showdown.go: fold and showdown settlement, split pots
//   - session.go: blinds, dealer rotation, bust and hand-limit termination
//
// Hidden information is never filtered here; see package view for the
// per-viewer redaction applied at the boundary.
package game
