package bot

import (
	"fmt"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/view"
)

// maxDecisions bounds a single match so a misbehaving bot cannot spin forever.
const maxDecisions = 100_000

// Play drives s to completion, asking the bot seated as each current turn
// for a decision. Each bot is shown only its own redacted view. If check is
// non-nil it runs after every accepted action and aborts play on error.
func Play(s game.State, bots map[string]Bot, check func(game.State) error) (game.State, error) {
	for n := 0; !s.GameComplete; n++ {
		if n >= maxDecisions {
			return s, fmt.Errorf("match still running after %d decisions", maxDecisions)
		}
		b, ok := bots[s.CurrentTurn]
		if !ok {
			return s, fmt.Errorf("no bot for player %q", s.CurrentTurn)
		}

		next, err := game.Apply(s, b.Decide(view.Redact(s, s.CurrentTurn)))
		if err != nil {
			return s, fmt.Errorf("hand %d: %w", s.HandNumber, err)
		}
		if check != nil {
			if err := check(next); err != nil {
				return next, fmt.Errorf("hand %d: %w", next.HandNumber, err)
			}
		}
		s = next
	}
	return s, nil
}
