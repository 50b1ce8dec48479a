package view

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/poker"
)

func newMatch(t *testing.T, maxHands int) game.State {
	t.Helper()
	s, err := game.NewMatch("alice", "bob", game.Config{
		StartingChips: 1000,
		SmallBlind:    10,
		BigBlind:      20,
		MaxHands:      maxHands,
		Seed:          99,
	})
	require.NoError(t, err)
	return s
}

func apply(t *testing.T, s game.State, a game.Action) game.State {
	t.Helper()
	next, err := game.Apply(s, a)
	require.NoError(t, err)
	return next
}

func allUnknown(cards []poker.Card) bool {
	for _, c := range cards {
		if c.Known() {
			return false
		}
	}
	return true
}

func TestRedactShowsOnlyOwnHoleCards(t *testing.T) {
	t.Parallel()
	s := newMatch(t, 10)

	v := Redact(s, "alice")
	assert.Equal(t, "alice", v.Viewer)
	assert.Equal(t, s.Players[0].Hole, v.Players[0].Hole)
	assert.Len(t, v.Players[1].Hole, 2)
	assert.True(t, allUnknown(v.Players[1].Hole))

	v = Redact(s, "bob")
	assert.True(t, allUnknown(v.Players[0].Hole))
	assert.Equal(t, s.Players[1].Hole, v.Players[1].Hole)
}

func TestRedactHidesDeckFromEveryone(t *testing.T) {
	t.Parallel()
	s := newMatch(t, 10)
	s = apply(t, s, game.Action{PlayerID: "alice", Kind: "call"})
	s = apply(t, s, game.Action{PlayerID: "bob", Kind: "check"})
	s = apply(t, s, game.Action{PlayerID: "bob", Kind: "check"})
	s = apply(t, s, game.Action{PlayerID: "alice", Kind: "check"})
	require.Equal(t, game.Turn, s.Street)

	for _, viewer := range []string{"alice", "bob", Spectator} {
		v := Redact(s, viewer)
		assert.Equal(t, s.Deck.Remaining(), v.Deck.Remaining(), viewer)
		assert.True(t, allUnknown(v.Deck.Cards), viewer)
		assert.Len(t, v.Burnt, 1)
		assert.True(t, allUnknown(v.Burnt), viewer)
		assert.Zero(t, v.Seed)
		assert.Equal(t, s.Community, v.Community, "the board is public")
	}
}

func TestSpectatorIsTreatedAsOpponent(t *testing.T) {
	t.Parallel()
	s := newMatch(t, 10)
	s = apply(t, s, game.Action{PlayerID: "alice", Kind: "call", Reasoning: "limp with anything"})

	for _, viewer := range []string{Spectator, "mallory"} {
		v := Redact(s, viewer)
		assert.True(t, allUnknown(v.Players[0].Hole))
		assert.True(t, allUnknown(v.Players[1].Hole))
		assert.Equal(t, HiddenReasoning, v.Actions[0].Reasoning)
		assert.Empty(t, v.ValidActions)
		assert.NotNil(t, v.ValidActions)
	}
}

func TestReasoningVisibleToAuthorOnly(t *testing.T) {
	t.Parallel()
	s := newMatch(t, 10)
	s = apply(t, s, game.Action{PlayerID: "alice", Kind: "raise", Reasoning: "alice-secret"})
	s = apply(t, s, game.Action{PlayerID: "bob", Kind: "call", Reasoning: "bob-secret"})

	v := Redact(s, "alice")
	assert.Equal(t, "alice-secret", v.Actions[0].Reasoning)
	assert.Equal(t, HiddenReasoning, v.Actions[1].Reasoning)

	v = Redact(s, "bob")
	assert.Equal(t, HiddenReasoning, v.Actions[0].Reasoning)
	assert.Equal(t, "bob-secret", v.Actions[1].Reasoning)
}

func TestRedactIncludesViewerActions(t *testing.T) {
	t.Parallel()
	s := newMatch(t, 10)

	v := Redact(s, "alice")
	assert.Equal(t, []game.ActionKind{game.Fold, game.Call, game.Raise, game.AllIn}, v.ValidActions)
	assert.Equal(t, 10, v.ToCall)

	v = Redact(s, "bob")
	assert.Empty(t, v.ValidActions)
}

func TestRedactDoesNotModifyInput(t *testing.T) {
	t.Parallel()
	s := newMatch(t, 10)
	s = apply(t, s, game.Action{PlayerID: "alice", Kind: "call", Reasoning: "note"})
	before := s.Clone()

	_ = Redact(s, "bob")
	assert.Equal(t, before, s)
}

func TestVisibilityBeforeAndAfterCompletion(t *testing.T) {
	t.Parallel()
	s := newMatch(t, 2)
	s = apply(t, s, game.Action{PlayerID: "alice", Kind: "fold", Reasoning: "alice-reason-1"})
	s = apply(t, s, game.Action{PlayerID: "bob", Kind: "raise", Reasoning: "bob-reason-2"})

	// Mid-match: the spectator sees no hole card and no reasoning at all, the
	// history included.
	spectator := Redact(s, Spectator)
	b, err := json.Marshal(spectator)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "alice-reason-1")
	assert.NotContains(t, string(b), "bob-reason-2")
	for _, p := range spectator.Players {
		assert.True(t, allUnknown(p.Hole))
	}
	for _, r := range spectator.History[0].Reveals {
		assert.True(t, allUnknown(r.Hole))
	}
	for _, p := range s.Players {
		for _, c := range p.Hole {
			assert.Equal(t, 0, strings.Count(jsonCards(t, spectator.Players[:]), c.String()))
		}
	}

	s = apply(t, s, game.Action{PlayerID: "alice", Kind: "fold"})
	require.True(t, s.GameComplete)

	for _, viewer := range []string{"alice", "bob", Spectator} {
		v := Redact(s, viewer)
		assert.Equal(t, s.Players[0].Hole, v.Players[0].Hole, viewer)
		assert.Equal(t, s.Players[1].Hole, v.Players[1].Hole, viewer)
		assert.Equal(t, "alice-reason-1", v.Actions[0].Reasoning, viewer)
		assert.Equal(t, "bob-reason-2", v.Actions[1].Reasoning, viewer)
		for i, h := range v.History {
			assert.Equal(t, s.History[i].Reveals, h.Reveals, viewer)
		}
		assert.True(t, allUnknown(v.Deck.Cards), "the deck stays hidden after completion")
	}
}

func revealOf(t *testing.T, h game.HandResult, id string) game.Reveal {
	t.Helper()
	for _, r := range h.Reveals {
		if r.PlayerID == id {
			return r
		}
	}
	t.Fatalf("no reveal for %s", id)
	return game.Reveal{}
}

func TestShowdownDescriptionsHiddenUntilCompletion(t *testing.T) {
	t.Parallel()
	s := newMatch(t, 2)

	// Check the first hand down to a showdown.
	for s.HandNumber == 1 {
		kind := "check"
		if s.ToCall(s.CurrentTurn) > 0 {
			kind = "call"
		}
		s = apply(t, s, game.Action{PlayerID: s.CurrentTurn, Kind: kind})
	}
	require.False(t, s.GameComplete)
	require.True(t, s.History[0].Showdown)
	require.NotEmpty(t, revealOf(t, s.History[0], "bob").Description)

	v := Redact(s, "alice")
	assert.Empty(t, revealOf(t, v.History[0], "bob").Description)
	assert.True(t, allUnknown(revealOf(t, v.History[0], "bob").Hole))
	assert.NotEmpty(t, revealOf(t, v.History[0], "alice").Description, "own description stays")

	s = apply(t, s, game.Action{PlayerID: s.CurrentTurn, Kind: "fold"})
	require.True(t, s.GameComplete)

	v = Redact(s, "alice")
	assert.Equal(t, revealOf(t, s.History[0], "bob").Description, revealOf(t, v.History[0], "bob").Description)
	assert.NotEmpty(t, revealOf(t, v.History[0], "bob").Description)
}

func TestViewJSONHasSameShapeForEveryViewer(t *testing.T) {
	t.Parallel()
	s := newMatch(t, 10)
	s = apply(t, s, game.Action{PlayerID: "alice", Kind: "fold"})

	keys := func(viewer string) []string {
		b, err := json.Marshal(Redact(s, viewer))
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(b, &m))
		out := make([]string, 0, len(m))
		for k := range m {
			out = append(out, k)
		}
		return out
	}

	assert.ElementsMatch(t, keys("alice"), keys("bob"))
	assert.ElementsMatch(t, keys("alice"), keys(Spectator))
	assert.Contains(t, keys("alice"), "deck")
	assert.Contains(t, keys("alice"), "players")
}

func jsonCards(t *testing.T, players []game.Player) string {
	t.Helper()
	var b strings.Builder
	for _, p := range players {
		b.WriteString(poker.FormatCards(p.Hole))
		b.WriteString(" ")
	}
	return b.String()
}
