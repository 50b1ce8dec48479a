package bot

import (
	rand "math/rand/v2"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/internal/view"
)

// RandBot is a simple bot that makes uniform random legal actions
type RandBot struct {
	rng *rand.Rand
}

// NewRandBot creates a RandBot with a deterministic generator.
func NewRandBot(seed int64) *RandBot {
	return &RandBot{rng: randutil.New(seed)}
}

func (r *RandBot) Decide(v view.State) game.Action {
	if len(v.ValidActions) == 0 {
		return game.Action{PlayerID: v.Viewer, Kind: game.Fold.String(), Reasoning: "rand-bot no valid actions"}
	}

	kind := v.ValidActions[r.rng.IntN(len(v.ValidActions))]
	a := game.Action{PlayerID: v.Viewer, Kind: kind.String(), Reasoning: "rand-bot random action"}

	// For raises, pick a random legal increment up to a few big blinds more.
	if kind == game.Raise {
		a.Amount = v.MinRaise + r.rng.IntN(3*v.BigBlind+1)
	}
	return a
}
