package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/headsup/poker"
)

// checkDown plays the current hand to showdown with both players calling
// and checking.
func checkDown(t *testing.T, s State) State {
	t.Helper()
	hand := s.HandNumber
	for s.HandNumber == hand && !s.GameComplete {
		action := "check"
		if s.ToCall(s.CurrentTurn) > 0 {
			action = "call"
		}
		s = play(t, s, s.CurrentTurn, action, 0)
	}
	return s
}

func TestShowdownHigherHandWins(t *testing.T) {
	t.Parallel()
	s := newTestMatch(t, testConfig())
	stackDeck(t, &s, "Qh Qd", "Ac Kc", "2s 7d 9h 3s Jc 4s 5d")

	s = checkDown(t, s)

	require.Len(t, s.History, 1)
	h := s.History[0]
	require.NotNil(t, h.WinnerID)
	assert.Equal(t, "alice", *h.WinnerID)
	assert.True(t, h.Showdown)
	assert.Equal(t, 40, h.Amount)
	assert.Equal(t, "Pair of Queens", h.Description)
	assert.Equal(t, "2s 7d 9h Jc 5d", poker.FormatCards(h.Board))

	require.Len(t, h.Reveals, 2)
	assert.Equal(t, "alice", h.Reveals[0].PlayerID)
	assert.Equal(t, "Qh Qd", poker.FormatCards(h.Reveals[0].Hole))
	assert.Equal(t, "Pair of Queens", h.Reveals[0].Description)
	assert.Equal(t, "High Card, Ace", h.Reveals[1].Description)
}

func TestShowdownSplitPot(t *testing.T) {
	t.Parallel()
	s := newTestMatch(t, testConfig())
	// Both play the same ace-king high; no flush is possible on this board.
	stackDeck(t, &s, "Ah Kd", "As Kc", "2c 7d 9h 3s Jc 4s 5d")

	s = play(t, s, "alice", "raise", 0)
	s = play(t, s, "bob", "call", 0)
	s = checkDown(t, s)

	require.Len(t, s.History, 1)
	h := s.History[0]
	assert.Nil(t, h.WinnerID)
	assert.True(t, h.Showdown)
	assert.Equal(t, 120, h.Amount)
	assert.Equal(t, "High Card, Ace", h.Description)

	// Both stacks are back to where they started, before hand two's blinds.
	assert.Equal(t, 1000-20, s.Players[0].Chips, "alice posts the big blind in hand two")
	assert.Equal(t, 1000-10, s.Players[1].Chips, "bob posts the small blind in hand two")
}

func TestSplitPotOddChipGoesToNonDealer(t *testing.T) {
	t.Parallel()
	s := newTestMatch(t, testConfig())
	stackDeck(t, &s, "Ah Kd", "As Kc", "2c 7d 9h 3s Jc 4s 5d")
	s = play(t, s, "alice", "call", 0)
	s = play(t, s, "bob", "check", 0)
	for s.Street < River {
		s = play(t, s, s.CurrentTurn, "check", 0)
	}

	// Heads-up contributions are always matched by the time of a showdown,
	// so an odd pot is forced by hand to exercise the remainder rule.
	s.Pot++
	s.TotalChips++
	s.Players[0].TotalBet++
	s.Players[1].TotalBet++
	require.NoError(t, s.CheckInvariants())

	require.NoError(t, s.resolveShowdown())
	assert.Nil(t, s.History[0].WinnerID)
	assert.Equal(t, 41, s.History[0].Amount)
	assert.Equal(t, 0, s.Pot)

	dealer, other := s.Players[s.Dealer], s.Players[1-s.Dealer]
	assert.Equal(t, 980+20, dealer.Chips)
	assert.Equal(t, 980+21, other.Chips)
}

func TestUncalledChipsAreRefunded(t *testing.T) {
	t.Parallel()
	s := newTestMatch(t, Config{StartingChips: 1000, SmallBlind: 10, BigBlind: 20, MaxHands: 1, Seed: 3})
	stackDeck(t, &s, "Ah Ad", "Kh Kd", "2c 7d 9h 3s Jc 4s 5d")
	s.Players[1].Chips = 280
	s.TotalChips -= 700

	s = play(t, s, "alice", "all-in", 0)
	s = play(t, s, "bob", "call", 0)

	require.True(t, s.GameComplete)
	h := s.History[0]
	assert.Equal(t, 600, h.Amount, "only the matched 300 each is contested")
	assert.Equal(t, "alice", *h.WinnerID)

	a, b := chips(s)
	assert.Equal(t, 1300, a)
	assert.Equal(t, 0, b)
}

func TestFoldRevealsAreRecordedWithoutDescriptions(t *testing.T) {
	t.Parallel()
	s := newTestMatch(t, testConfig())
	stackDeck(t, &s, "Ah Ad", "7c 2d", "2c 7d 9h 3s Jc 4s 5d")

	s = play(t, s, "alice", "raise", 0)
	s = play(t, s, "bob", "fold", 0)

	h := s.History[0]
	assert.False(t, h.Showdown)
	assert.Empty(t, h.Board)
	require.Len(t, h.Reveals, 2)
	assert.Equal(t, "Ah Ad", poker.FormatCards(h.Reveals[0].Hole))
	assert.Empty(t, h.Reveals[0].Description)
	assert.Empty(t, h.Reveals[1].Description)
}
