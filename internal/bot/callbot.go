package bot

import (
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/view"
)

// CallBot checks or calls every street and never raises.
type CallBot struct{}

// NewCallBot creates a new CallBot instance
func NewCallBot() *CallBot {
	return &CallBot{}
}

func (c *CallBot) Decide(v view.State) game.Action {
	return pick(v, "call-bot", game.Check, game.Call)
}
