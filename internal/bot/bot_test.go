package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/view"
	"github.com/lox/headsup/poker"
)

func newMatch(t *testing.T, seed int64) game.State {
	t.Helper()
	s, err := game.NewMatch("alice", "bob", game.Config{
		StartingChips: 500,
		SmallBlind:    5,
		BigBlind:      10,
		MaxHands:      60,
		Seed:          seed,
	})
	require.NoError(t, err)
	return s
}

func checkState(s game.State) error {
	return s.CheckInvariants()
}

func TestNew(t *testing.T) {
	t.Parallel()
	for _, name := range Names() {
		b, ok := New(name, 1)
		assert.True(t, ok, name)
		assert.NotNil(t, b, name)
	}
	_, ok := New("oracle", 1)
	assert.False(t, ok)
}

func TestRandBotOnlyPicksValidActions(t *testing.T) {
	t.Parallel()
	s := newMatch(t, 5)
	b := NewRandBot(5)

	for range 200 {
		v := view.Redact(s, s.CurrentTurn)
		a := b.Decide(v)
		kind, ok := game.ParseActionKind(a.Kind)
		require.True(t, ok)
		assert.Contains(t, v.ValidActions, kind)
		if kind == game.Raise {
			assert.GreaterOrEqual(t, a.Amount, v.MinRaise)
		}
	}
}

func TestRandBotsPlayToCompletion(t *testing.T) {
	t.Parallel()

	for seed := int64(1); seed <= 25; seed++ {
		s := newMatch(t, seed)
		bots := map[string]Bot{"alice": NewRandBot(seed), "bob": NewRandBot(seed + 1000)}

		final, err := Play(s, bots, checkState)
		require.NoError(t, err, "seed %d", seed)
		assert.True(t, final.GameComplete)
		assert.Equal(t, 1000, final.Players[0].Chips+final.Players[1].Chips)
	}
}

func TestMixedBotsPlayToCompletion(t *testing.T) {
	t.Parallel()
	s := newMatch(t, 11)
	bots := map[string]Bot{"alice": NewChartBot(), "bob": NewCallBot()}

	final, err := Play(s, bots, checkState)
	require.NoError(t, err)
	assert.True(t, final.GameComplete)
}

func TestPlayRequiresBotForEachSeat(t *testing.T) {
	t.Parallel()
	s := newMatch(t, 1)

	_, err := Play(s, map[string]Bot{"bob": NewCallBot()}, nil)
	assert.ErrorContains(t, err, `no bot for player "alice"`)
}

func TestCallBotNeverRaises(t *testing.T) {
	t.Parallel()
	s := newMatch(t, 3)

	a := NewCallBot().Decide(view.Redact(s, "alice"))
	assert.Equal(t, "call", a.Kind)

	s, err := game.Apply(s, a)
	require.NoError(t, err)
	a = NewCallBot().Decide(view.Redact(s, "bob"))
	assert.Equal(t, "check", a.Kind)
}

func TestChartBotPreflop(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hole string
		want string
	}{
		{"premium raises", "As Ad", "raise"},
		{"strong calls", "Ts Td", "call"},
		{"weak limps", "5s 6s", "call"},
		{"trash folds", "7c 2d", "fold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newMatch(t, 1)
			s.Players[0].Hole = poker.MustParseCards(tt.hole)

			a := NewChartBot().Decide(view.Redact(s, "alice"))
			assert.Equal(t, tt.want, a.Kind)
			assert.Equal(t, "alice", a.PlayerID)
			assert.NotEmpty(t, a.Reasoning)
		})
	}
}

func TestChartBotPushesShortStack(t *testing.T) {
	t.Parallel()
	s := newMatch(t, 1)
	s.Players[0].Hole = poker.MustParseCards("Ks Kd")
	s.Players[0].Chips = 100

	a := NewChartBot().Decide(view.Redact(s, "alice"))
	assert.Equal(t, "all-in", a.Kind)
}
