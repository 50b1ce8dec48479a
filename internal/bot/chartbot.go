package bot

import (
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/view"
	"github.com/lox/headsup/poker"
)

// ChartBot plays a preflop chart and bets made hands post-flop.
type ChartBot struct{}

// NewChartBot creates a new ChartBot instance
func NewChartBot() *ChartBot {
	return &ChartBot{}
}

func (c *ChartBot) Decide(v view.State) game.Action {
	me, ok := v.Player(v.Viewer)
	if !ok || len(me.Hole) != 2 {
		return pick(v, "chart-bot lost", game.Check, game.Fold)
	}

	if v.Street == game.Preflop {
		switch poker.CategorizeHoleCards(me.Hole[0], me.Hole[1]) {
		case poker.CategoryPremium:
			// Push short, raise deep.
			if me.Chips <= 20*v.BigBlind {
				return pick(v, "chart-bot push", game.AllIn)
			}
			return pick(v, "chart-bot premium raise", game.Raise, game.Call, game.Check)
		case poker.CategoryStrong, poker.CategoryMedium:
			return pick(v, "chart-bot playable", game.Call, game.Check)
		case poker.CategoryWeak:
			if v.ToCall <= v.BigBlind {
				return pick(v, "chart-bot cheap flop", game.Call, game.Check)
			}
			return pick(v, "chart-bot folding weak hand", game.Check, game.Fold)
		default:
			return pick(v, "chart-bot folding trash", game.Check, game.Fold)
		}
	}

	score, _, err := poker.Best5Of(append(append([]poker.Card(nil), me.Hole...), v.Community...))
	if err != nil {
		return pick(v, "chart-bot checking", game.Check, game.Fold)
	}
	switch {
	case score.Category >= poker.TwoPair:
		return pick(v, "chart-bot value bet with "+score.String(), game.Raise, game.Call, game.Check)
	case score.Category == poker.Pair:
		return pick(v, "chart-bot calling with "+score.String(), game.Check, game.Call)
	default:
		return pick(v, "chart-bot giving up", game.Check, game.Fold)
	}
}
