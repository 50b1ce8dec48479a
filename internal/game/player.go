package game

import (
	"github.com/lox/headsup/poker"
)

// Player represents one side of the match
type Player struct {
	ID       string       `json:"id"`
	Chips    int          `json:"chips"`
	Hole     []poker.Card `json:"hole"`
	Bet      int          `json:"bet"`      // Current bet in this street
	TotalBet int          `json:"totalBet"` // Total bet in the hand
	Folded   bool         `json:"folded"`
	AllIn    bool         `json:"allIn"`
	HasActed bool         `json:"hasActed"` // Acted since the last bet or raise on this street
}

// CanAct reports whether the player can still receive a turn this hand.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn
}

// commit moves chips from the player's stack into their bets. The caller
// adds the same amount to the pot.
func (p *Player) commit(amount int) {
	p.Chips -= amount
	p.Bet += amount
	p.TotalBet += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
}

func (p *Player) resetForHand() {
	p.Hole = nil
	p.Bet = 0
	p.TotalBet = 0
	p.Folded = false
	p.AllIn = false
	p.HasActed = false
}
