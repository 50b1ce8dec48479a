// Package bot contains simple automated players. Bots only ever see the
// redacted view of their own seat, the same thing a remote client receives.
package bot

import (
	"slices"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/view"
)

// Bot decides an action for the seat that v was redacted for. It is only
// called when v.ValidActions is non-empty.
type Bot interface {
	Decide(v view.State) game.Action
}

// New returns the named bot. Known names are "random", "chart" and "call".
func New(name string, seed int64) (Bot, bool) {
	switch name {
	case "random":
		return NewRandBot(seed), true
	case "chart":
		return NewChartBot(), true
	case "call":
		return NewCallBot(), true
	default:
		return nil, false
	}
}

// Names lists the bots New understands.
func Names() []string {
	return []string{"call", "chart", "random"}
}

// pick returns the first of the preferred kinds that is legal, falling back
// to fold.
func pick(v view.State, reasoning string, preferred ...game.ActionKind) game.Action {
	for _, kind := range preferred {
		if slices.Contains(v.ValidActions, kind) {
			return game.Action{PlayerID: v.Viewer, Kind: kind.String(), Reasoning: reasoning}
		}
	}
	return game.Action{PlayerID: v.Viewer, Kind: game.Fold.String(), Reasoning: reasoning}
}
