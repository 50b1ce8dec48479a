package game

import (
	"fmt"

	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/poker"
)

// NewMatch creates a match between two players and deals the first hand.
// Player a is the dealer of hand one. The returned state is waiting on the
// dealer's first preflop decision, unless the blinds alone put someone
// all-in, in which case hands are settled until one needs a decision or the
// match ends.
func NewMatch(a, b string, cfg Config) (State, error) {
	switch {
	case a == "" || b == "":
		return State{}, fmt.Errorf("%w: player ids must not be empty", ErrInvalidConfig)
	case a == b:
		return State{}, fmt.Errorf("%w: player ids must differ, both are %q", ErrInvalidConfig, a)
	}
	if err := cfg.Validate(); err != nil {
		return State{}, err
	}

	s := State{
		Players: [2]Player{
			{ID: a, Chips: cfg.StartingChips},
			{ID: b, Chips: cfg.StartingChips},
		},
		SmallBlind: cfg.SmallBlind,
		BigBlind:   cfg.BigBlind,
		MaxHands:   cfg.MaxHands,
		Seed:       cfg.Seed,
		TotalChips: 2 * cfg.StartingChips,
		HandNumber: 1,
		Dealer:     0,
		History:    []HandResult{},
		Actions:    []ActionRecord{},
	}
	if err := s.startHand(); err != nil {
		return State{}, err
	}
	if err := s.settle(1 - s.Dealer); err != nil {
		return State{}, err
	}
	return s, nil
}

// startHand shuffles a fresh deck, posts the blinds and deals hole cards for
// the current hand number. In heads-up the dealer posts the small blind.
func (s *State) startHand() error {
	for i := range s.Players {
		s.Players[i].resetForHand()
	}
	s.Street = Preflop
	s.Community = []poker.Card{}
	s.Burnt = []poker.Card{}
	s.Pot = 0
	s.HandComplete = false
	s.CurrentTurn = ""
	s.Deck = poker.NewDeck(randutil.ForHand(s.Seed, s.HandNumber))

	dealer, other := s.Dealer, 1-s.Dealer
	s.postBlind(dealer, s.SmallBlind)
	s.postBlind(other, s.BigBlind)
	s.CurrentBet = max(s.Players[0].Bet, s.Players[1].Bet)
	s.MinRaise = s.BigBlind

	// One card at a time, starting left of the dealer.
	for range 2 {
		for _, seat := range [2]int{other, dealer} {
			var (
				cards []poker.Card
				err   error
			)
			cards, s.Deck, err = s.Deck.Deal(1)
			if err != nil {
				return fmt.Errorf("deal hole cards for hand %d: %w", s.HandNumber, err)
			}
			s.Players[seat].Hole = append(s.Players[seat].Hole, cards...)
		}
	}
	return nil
}

// postBlind takes a blind from the seat's stack. A short stack posts what it
// has and is all-in.
func (s *State) postBlind(seat, amount int) {
	put := min(amount, s.Players[seat].Chips)
	s.Players[seat].commit(put)
	s.Pot += put
}

// concludeHand marks the current hand finished and either ends the match or
// moves the button for the next hand. It reports whether the match is over.
// A bust ends the match even when the hand limit was reached at the same time.
func (s *State) concludeHand() bool {
	s.HandComplete = true
	s.CurrentTurn = ""

	for i := range s.Players {
		if s.Players[i].Chips == 0 {
			s.GameComplete = true
			return true
		}
	}
	if s.HandNumber >= s.MaxHands {
		s.GameComplete = true
		return true
	}

	s.HandNumber++
	s.Dealer = 1 - s.Dealer
	return false
}

// Winner returns the player holding more chips once the match is complete.
// It returns false while the match is in progress or when the stacks are
// level.
func Winner(s State) (string, bool) {
	if !s.GameComplete {
		return "", false
	}
	a, b := s.Players[0], s.Players[1]
	switch {
	case a.Chips > b.Chips:
		return a.ID, true
	case b.Chips > a.Chips:
		return b.ID, true
	default:
		return "", false
	}
}
