package game

import (
	"fmt"

	"github.com/lox/headsup/poker"
)

// State is the complete, serializable state of a heads-up match. It carries
// hidden information (hole cards, the undealt deck, reasoning); use package
// view before handing it to anyone but the engine's owner.
type State struct {
	Players      [2]Player      `json:"players"`
	Community    []poker.Card   `json:"community"`
	Deck         poker.Deck     `json:"deck"`
	Burnt        []poker.Card   `json:"burnt"`
	Pot          int            `json:"pot"`
	CurrentBet   int            `json:"currentBet"` // Bet to match on this street
	MinRaise     int            `json:"minRaise"`   // Minimum legal raise increment
	SmallBlind   int            `json:"smallBlind"`
	BigBlind     int            `json:"bigBlind"`
	Dealer       int            `json:"dealer"` // Seat of the dealer, who posts the small blind
	Street       Street         `json:"street"`
	CurrentTurn  string         `json:"currentTurn"` // Empty when nobody may act
	HandNumber   int            `json:"handNumber"`
	MaxHands     int            `json:"maxHands"`
	History      []HandResult   `json:"history"`
	Actions      []ActionRecord `json:"actions"`
	// HandComplete is only observed set on the final state. Between hands
	// the next hand is dealt by the same Apply that settled the last one.
	HandComplete bool           `json:"handComplete"`
	GameComplete bool           `json:"gameComplete"`
	Seed         int64          `json:"seed"`
	TotalChips   int            `json:"totalChips"`
}

// HandResult is the history entry appended when a hand is settled.
type HandResult struct {
	HandNumber  int          `json:"handNumber"`
	WinnerID    *string      `json:"winnerId"` // nil for a split pot
	Amount      int          `json:"amount"`
	Showdown    bool         `json:"showdown"`
	Description string       `json:"description,omitempty"`
	Board       []poker.Card `json:"board"`
	Reveals     []Reveal     `json:"reveals"`
}

// Reveal records a player's hole cards for a settled hand. Description is
// set only for players who reached showdown.
type Reveal struct {
	PlayerID    string       `json:"playerId"`
	Hole        []poker.Card `json:"hole"`
	Description string       `json:"description,omitempty"`
}

// ActionRecord is one entry in the append-only action log.
type ActionRecord struct {
	HandNumber int        `json:"handNumber"`
	Street     Street     `json:"street"`
	PlayerID   string     `json:"playerId"`
	Requested  string     `json:"requested"` // Action string as submitted
	Kind       ActionKind `json:"kind"`      // Action as applied
	Amount     int        `json:"amount"`    // Chips moved into the pot
	Reasoning  string     `json:"reasoning,omitempty"`
}

// PlayerIndex returns the seat of the given player, or -1.
func (s *State) PlayerIndex(id string) int {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// Player returns the player with the given id.
func (s *State) Player(id string) (Player, bool) {
	idx := s.PlayerIndex(id)
	if idx < 0 {
		return Player{}, false
	}
	return s.Players[idx], true
}

// ToCall returns how many chips the player needs to put in to match the
// current bet. It is zero for unknown players.
func (s *State) ToCall(id string) int {
	idx := s.PlayerIndex(id)
	if idx < 0 {
		return 0
	}
	return max(0, s.CurrentBet-s.Players[idx].Bet)
}

// Clone returns a deep copy of the state that shares no memory with s.
func (s State) Clone() State {
	c := s
	for i := range c.Players {
		c.Players[i].Hole = cloneCards(s.Players[i].Hole)
	}
	c.Community = cloneCards(s.Community)
	c.Deck = s.Deck.Clone()
	c.Burnt = cloneCards(s.Burnt)
	if s.History != nil {
		c.History = make([]HandResult, len(s.History))
		for i, h := range s.History {
			c.History[i] = h.clone()
		}
	}
	if s.Actions != nil {
		c.Actions = append([]ActionRecord(nil), s.Actions...)
	}
	return c
}

func (h HandResult) clone() HandResult {
	c := h
	if h.WinnerID != nil {
		id := *h.WinnerID
		c.WinnerID = &id
	}
	c.Board = cloneCards(h.Board)
	if h.Reveals != nil {
		c.Reveals = make([]Reveal, len(h.Reveals))
		for i, r := range h.Reveals {
			r.Hole = cloneCards(r.Hole)
			c.Reveals[i] = r
		}
	}
	return c
}

func cloneCards(cards []poker.Card) []poker.Card {
	if cards == nil {
		return nil
	}
	return append([]poker.Card(nil), cards...)
}

// CheckInvariants verifies the conservation and consistency rules that every
// reachable state satisfies. A non-nil result indicates an engine defect.
func (s *State) CheckInvariants() error {
	chips := s.Pot
	for i := range s.Players {
		p := &s.Players[i]
		if p.Chips < 0 {
			return fmt.Errorf("player %s has negative chips %d", p.ID, p.Chips)
		}
		chips += p.Chips
	}
	if chips != s.TotalChips {
		return fmt.Errorf("chips not conserved: stacks+pot=%d, total=%d", chips, s.TotalChips)
	}
	if s.Pot < 0 {
		return fmt.Errorf("negative pot %d", s.Pot)
	}

	switch len(s.Community) {
	case 0, 3, 4, 5:
	default:
		return fmt.Errorf("invalid community card count %d", len(s.Community))
	}

	if s.CurrentTurn != "" {
		idx := s.PlayerIndex(s.CurrentTurn)
		if idx < 0 {
			return fmt.Errorf("turn belongs to unknown player %q", s.CurrentTurn)
		}
		if !s.Players[idx].CanAct() {
			return fmt.Errorf("turn given to player %s who cannot act", s.CurrentTurn)
		}
		if s.GameComplete {
			return fmt.Errorf("turn assigned after game completion")
		}
	}

	seen := make(map[poker.Card]bool, poker.DeckSize)
	all := append(append(append([]poker.Card(nil), s.Community...), s.Burnt...), s.Deck.Cards...)
	for i := range s.Players {
		all = append(all, s.Players[i].Hole...)
	}
	for _, c := range all {
		if seen[c] {
			return fmt.Errorf("card %s appears twice", c)
		}
		seen[c] = true
	}
	if len(all) != poker.DeckSize {
		return fmt.Errorf("expected %d cards accounted for, found %d", poker.DeckSize, len(all))
	}
	return nil
}
