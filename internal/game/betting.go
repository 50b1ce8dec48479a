package game

import (
	"fmt"

	"github.com/lox/headsup/poker"
)

// settle drives the match forward after a change, starting from the seat
// that acted last. It hands out the next turn, or closes streets, settles
// hands and deals new ones until someone has to act or the game ends.
func (s *State) settle(last int) error {
	for {
		over, err := s.advance(last)
		if err != nil {
			return err
		}
		if !over {
			return nil
		}
		if s.concludeHand() {
			return nil
		}
		if err := s.startHand(); err != nil {
			return err
		}
		// Preflop the dealer acts first, i.e. the seat after the big blind.
		last = 1 - s.Dealer
	}
}

// advance progresses the current hand as far as it can go without a player
// decision. It reports true once the hand has been settled.
func (s *State) advance(last int) (bool, error) {
	for {
		if winner, ok := s.lastStanding(); ok {
			s.resolveFold(winner)
			return true, nil
		}

		if !s.streetComplete() {
			s.CurrentTurn = s.Players[s.nextToAct(last)].ID
			return false, nil
		}
		s.CurrentTurn = ""

		if s.actorCount() < 2 {
			// Nobody left to bet against: run the board out in one step.
			if err := s.runOut(); err != nil {
				return false, err
			}
			return true, s.resolveShowdown()
		}

		if s.Street == River {
			s.Street = Showdown
			return true, s.resolveShowdown()
		}

		if err := s.nextStreet(); err != nil {
			return false, err
		}
		// Post-flop the non-dealer acts first, i.e. the seat after the dealer.
		last = s.Dealer
	}
}

// lastStanding returns the only player who has not folded, if there is one.
func (s *State) lastStanding() (int, bool) {
	switch {
	case s.Players[0].Folded && !s.Players[1].Folded:
		return 1, true
	case s.Players[1].Folded && !s.Players[0].Folded:
		return 0, true
	default:
		return -1, false
	}
}

func (s *State) actorCount() int {
	n := 0
	for i := range s.Players {
		if s.Players[i].CanAct() {
			n++
		}
	}
	return n
}

// streetComplete checks if betting is complete for this street. With two
// players able to act, both must have acted since the last bet and have equal
// bets. With one, they only need to have matched the largest bet, which is
// the all-in short circuit.
func (s *State) streetComplete() bool {
	largest := 0
	for i := range s.Players {
		if p := &s.Players[i]; !p.Folded && p.Bet > largest {
			largest = p.Bet
		}
	}

	switch s.actorCount() {
	case 0:
		return true
	case 1:
		for i := range s.Players {
			if p := &s.Players[i]; p.CanAct() {
				return p.Bet >= largest
			}
		}
		return true
	default:
		a, b := &s.Players[0], &s.Players[1]
		return a.HasActed && b.HasActed && a.Bet == b.Bet
	}
}

// nextToAct returns the seat after last that can act, wrapping back to last
// itself if the other seat cannot.
func (s *State) nextToAct(last int) int {
	if other := 1 - last; s.Players[other].CanAct() {
		return other
	}
	return last
}

// nextStreet resets street bets and deals the next street's cards. The flop
// is dealt straight off the deck; the turn and river are each preceded by a
// burn, so a hand uses at most 11 cards.
func (s *State) nextStreet() error {
	for i := range s.Players {
		s.Players[i].Bet = 0
		s.Players[i].HasActed = false
	}
	s.CurrentBet = 0
	s.MinRaise = s.BigBlind

	switch s.Street {
	case Preflop:
		if err := s.dealCommunity(0, 3); err != nil {
			return err
		}
		s.Street = Flop
	case Flop:
		if err := s.dealCommunity(1, 1); err != nil {
			return err
		}
		s.Street = Turn
	case Turn:
		if err := s.dealCommunity(1, 1); err != nil {
			return err
		}
		s.Street = River
	case River, Showdown:
		return fmt.Errorf("no street follows %s", s.Street)
	default:
		panic("unhandled street " + s.Street.String())
	}
	return nil
}

// runOut deals every remaining community card without further betting and
// moves the hand to showdown.
func (s *State) runOut() error {
	for s.Street < River {
		if err := s.nextStreet(); err != nil {
			return err
		}
	}
	s.Street = Showdown
	return nil
}

func (s *State) dealCommunity(burn, n int) error {
	var (
		cards []poker.Card
		err   error
	)
	if burn > 0 {
		cards, s.Deck, err = s.Deck.Burn(burn)
		if err != nil {
			return fmt.Errorf("burn before %s: %w", s.Street+1, err)
		}
		s.Burnt = append(s.Burnt, cards...)
	}
	cards, s.Deck, err = s.Deck.Deal(n)
	if err != nil {
		return fmt.Errorf("deal %s: %w", s.Street+1, err)
	}
	s.Community = append(s.Community, cards...)
	return nil
}
