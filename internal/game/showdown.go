package game

import (
	"fmt"

	"github.com/lox/headsup/poker"
)

// resolveFold awards the whole pot to the player who did not fold. Nothing
// is evaluated and the hand is recorded as non-showdown.
func (s *State) resolveFold(winner int) {
	amount := s.Pot
	s.Players[winner].Chips += amount
	s.Pot = 0
	s.CurrentTurn = ""

	id := s.Players[winner].ID
	s.History = append(s.History, HandResult{
		HandNumber: s.HandNumber,
		WinnerID:   &id,
		Amount:     amount,
		Showdown:   false,
		Board:      cloneCards(s.Community),
		Reveals:    s.reveals(nil),
	})
}

// resolveShowdown compares both players' best five card hands and pays the
// pot. Equal hands split it; the odd chip goes to the non-dealer, the seat on
// the dealer's left.
func (s *State) resolveShowdown() error {
	s.refundUncalled()

	var scores [2]poker.Score
	for i := range s.Players {
		p := &s.Players[i]
		cards := append(cloneCards(p.Hole), s.Community...)
		score, _, err := poker.Best5Of(cards)
		if err != nil {
			return fmt.Errorf("evaluate %s: %w", p.ID, err)
		}
		scores[i] = score
	}

	amount := s.Pot
	result := HandResult{
		HandNumber: s.HandNumber,
		Amount:     amount,
		Showdown:   true,
		Board:      cloneCards(s.Community),
		Reveals:    s.reveals(&scores),
	}

	switch cmp := poker.Compare(scores[0], scores[1]); {
	case cmp != 0:
		winner := 0
		if cmp < 0 {
			winner = 1
		}
		s.Players[winner].Chips += amount
		id := s.Players[winner].ID
		result.WinnerID = &id
		result.Description = scores[winner].String()
	default:
		half := amount / 2
		nonDealer := 1 - s.Dealer
		s.Players[s.Dealer].Chips += half
		s.Players[nonDealer].Chips += amount - half
		result.Description = scores[0].String()
	}

	s.Pot = 0
	s.CurrentTurn = ""
	s.Street = Showdown
	s.History = append(s.History, result)
	return nil
}

// refundUncalled returns the part of the larger contribution that the other
// player never matched. With two players there is only ever one contested
// pot, so this is all the side pot handling a hand needs.
func (s *State) refundUncalled() {
	a, b := &s.Players[0], &s.Players[1]
	over, under := a, b
	if b.TotalBet > a.TotalBet {
		over, under = b, a
	}
	excess := over.TotalBet - under.TotalBet
	if excess <= 0 {
		return
	}
	over.TotalBet -= excess
	over.Chips += excess
	s.Pot -= excess
}

func (s *State) reveals(scores *[2]poker.Score) []Reveal {
	out := make([]Reveal, len(s.Players))
	for i := range s.Players {
		p := &s.Players[i]
		out[i] = Reveal{PlayerID: p.ID, Hole: cloneCards(p.Hole)}
		if scores != nil && !p.Folded {
			out[i].Description = scores[i].String()
		}
	}
	return out
}
