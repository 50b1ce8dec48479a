package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSimulate() *SimulateCmd {
	return &SimulateCmd{
		Hero:       "chart",
		Villain:    "random",
		Matches:    12,
		Chips:      300,
		SmallBlind: 5,
		BigBlind:   10,
		MaxHands:   40,
		Seed:       1,
		Parallel:   4,
	}
}

func TestSimulateTotals(t *testing.T) {
	t.Parallel()
	c := testSimulate()

	sum, err := c.simulate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, sum.Matches)
	assert.Equal(t, sum.Matches, sum.HeroWins+sum.VillainWins+sum.Ties)
	assert.LessOrEqual(t, sum.Hands, sum.Matches*c.MaxHands)
	assert.GreaterOrEqual(t, sum.Hands, sum.Matches)
	assert.LessOrEqual(t, sum.Showdowns, sum.Hands)
}

func TestSimulateIsDeterministic(t *testing.T) {
	t.Parallel()

	first, err := testSimulate().simulate(context.Background())
	require.NoError(t, err)
	second, err := testSimulate().simulate(context.Background())
	require.NoError(t, err)

	first.Elapsed, second.Elapsed = 0, 0
	assert.Equal(t, first, second)
}

func TestSimulateRejectsBadConfig(t *testing.T) {
	t.Parallel()

	c := testSimulate()
	c.Matches = 0
	_, err := c.simulate(context.Background())
	assert.Error(t, err)

	c = testSimulate()
	c.BigBlind = 1
	_, err = c.simulate(context.Background())
	assert.Error(t, err)
}

func TestSimulateStopsWhenCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testSimulate().simulate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRender(t *testing.T) {
	t.Parallel()
	c := testSimulate()
	var buf bytes.Buffer
	c.render(&buf, summary{Matches: 4, HeroWins: 3, VillainWins: 1, Hands: 40, ChipDelta: 300})

	out := buf.String()
	assert.Contains(t, out, "chart vs random")
	assert.Contains(t, out, "3 (75.0%)")
	assert.Contains(t, out, "+300 for chart")
}

func TestServeOverrides(t *testing.T) {
	t.Parallel()
	c := &ServeCmd{
		Config:   t.TempDir() + "/missing.hcl",
		Addr:     ":9999",
		LogLevel: "debug",
		Redis:    "redis:6379",
	}

	cfg, err := c.load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Address)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "redis:6379", cfg.Store.RedisAddr)

	c.LogLevel = "chatty"
	_, err = c.load()
	assert.Error(t, err)
}

func TestServeRejectsBadRetention(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "headsup.hcl")
	require.NoError(t, os.WriteFile(path, []byte("retention {\n  completed = \"0s\"\n}\n"), 0o644))

	_, err := (&ServeCmd{Config: path}).load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retention.completed")

	assert.Error(t, (&ServeCmd{Config: path}).Run(), "serve refuses to start")
}
