// Package view produces the per-viewer projection of a match. Redaction is
// applied at the boundary: everything that leaves the process goes through
// Redact, never the raw game.State.
package view

import (
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/poker"
)

// HiddenReasoning replaces reasoning text the viewer may not read.
const HiddenReasoning = "[hidden]"

// Spectator is a conventional viewer id for callers who are not seated.
// Any id that does not match a player is treated the same way.
const Spectator = ""

// State is what a single viewer is allowed to see. It has exactly the shape
// of game.State so clients decode one format no matter who asked: hidden
// cards are present as "??" and the deck keeps its length.
type State struct {
	game.State
	Viewer       string            `json:"viewer"`
	ValidActions []game.ActionKind `json:"validActions"`
	ToCall       int               `json:"toCall"`
}

// Redact returns the view of s for viewerID. The input is not modified.
//
// While the match is running the viewer sees their own hole cards, showdown
// descriptions and reasoning only. Once it is complete every hole card and every
// reasoning string is visible to everyone. The undealt deck, the burnt cards
// and the shuffle seed are never visible.
func Redact(s game.State, viewerID string) State {
	out := s.Clone()
	revealed := s.GameComplete

	out.Deck = poker.Deck{Cards: mask(out.Deck.Cards)}
	out.Burnt = mask(out.Burnt)
	out.Seed = 0

	for i := range out.Players {
		p := &out.Players[i]
		if !revealed && p.ID != viewerID {
			p.Hole = mask(p.Hole)
		}
	}

	for i := range out.History {
		for j := range out.History[i].Reveals {
			r := &out.History[i].Reveals[j]
			if !revealed && r.PlayerID != viewerID {
				r.Hole = mask(r.Hole)
				r.Description = ""
			}
		}
	}

	for i := range out.Actions {
		a := &out.Actions[i]
		if !revealed && a.PlayerID != viewerID && a.Reasoning != "" {
			a.Reasoning = HiddenReasoning
		}
	}

	valid := game.ValidActions(s, viewerID)
	if valid == nil {
		valid = []game.ActionKind{}
	}
	return State{
		State:        out,
		Viewer:       viewerID,
		ValidActions: valid,
		ToCall:       s.ToCall(viewerID),
	}
}

// mask returns a slice of the same length holding only unknown cards.
func mask(cards []poker.Card) []poker.Card {
	if cards == nil {
		return nil
	}
	return make([]poker.Card, len(cards))
}
