package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/headsup/poker"
)

func testConfig() Config {
	return Config{
		StartingChips: 1000,
		SmallBlind:    10,
		BigBlind:      20,
		MaxHands:      100,
		Seed:          42,
	}
}

func newTestMatch(t *testing.T, cfg Config) State {
	t.Helper()
	s, err := NewMatch("alice", "bob", cfg)
	require.NoError(t, err)
	require.NoError(t, s.CheckInvariants())
	return s
}

// play applies an action that must be accepted and checks the invariants of
// the result.
func play(t *testing.T, s State, player, action string, amount int) State {
	t.Helper()
	next, err := Apply(s, Action{PlayerID: player, Kind: action, Amount: amount})
	require.NoError(t, err)
	require.NoError(t, next.CheckInvariants())
	return next
}

// stackDeck replaces the hole cards and deck of a freshly dealt hand. next is
// the deck order from the top: three flop cards, a burn, the turn, a burn and
// the river.
func stackDeck(t *testing.T, s *State, alice, bob, next string) {
	t.Helper()
	require.Empty(t, s.Community, "deck can only be stacked preflop")

	a := poker.MustParseCards(alice)
	b := poker.MustParseCards(bob)
	top := poker.MustParseCards(next)

	used := make(map[poker.Card]bool)
	for _, c := range append(append(append([]poker.Card(nil), a...), b...), top...) {
		used[c] = true
	}
	cards := append([]poker.Card(nil), top...)
	for _, c := range poker.OrderedDeck().Cards {
		if !used[c] {
			cards = append(cards, c)
		}
	}
	deck, err := poker.NewDeckFromCards(cards)
	require.NoError(t, err)

	s.Players[0].Hole = a
	s.Players[1].Hole = b
	s.Deck = deck
	require.NoError(t, s.CheckInvariants())
}

func chips(s State) (int, int) {
	return s.Players[0].Chips, s.Players[1].Chips
}
