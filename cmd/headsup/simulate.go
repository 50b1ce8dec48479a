package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/lox/headsup/internal/bot"
	"github.com/lox/headsup/internal/game"
)

const (
	heroID    = "hero"
	villainID = "villain"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

// SimulateCmd plays bots against each other with the engine directly.
type SimulateCmd struct {
	Hero       string `kong:"default='chart',enum='call,chart,random',help='Bot for the hero seat'"`
	Villain    string `kong:"default='random',enum='call,chart,random',help='Bot for the villain seat'"`
	Matches    int    `kong:"default='100',help='Number of matches to play'"`
	Chips      int    `kong:"default='1000',help='Starting chips per player'"`
	SmallBlind int    `kong:"default='10',help='Small blind'"`
	BigBlind   int    `kong:"default='20',help='Big blind'"`
	MaxHands   int    `kong:"default='100',help='Hand limit per match'"`
	Seed       int64  `kong:"default='1',help='Seed for the first match; match i uses seed+i'"`
	Parallel   int    `kong:"default='0',help='Concurrent matches (0 = number of CPUs)'"`
}

// matchResult is the outcome of one simulated match from the hero's side.
type matchResult struct {
	Winner    string // heroID, villainID or empty on a tie
	Hands     int
	Showdowns int
	HeroChips int
}

type summary struct {
	Matches     int
	HeroWins    int
	VillainWins int
	Ties        int
	Hands       int
	Showdowns   int
	ChipDelta   int // hero's net chips over all matches
	Elapsed     time.Duration
}

func (c *SimulateCmd) Run() error {
	sum, err := c.simulate(context.Background())
	if err != nil {
		return err
	}
	c.render(os.Stdout, sum)
	return nil
}

func (c *SimulateCmd) config(seed int64) game.Config {
	return game.Config{
		StartingChips: c.Chips,
		SmallBlind:    c.SmallBlind,
		BigBlind:      c.BigBlind,
		MaxHands:      c.MaxHands,
		Seed:          seed,
	}
}

func (c *SimulateCmd) simulate(ctx context.Context) (summary, error) {
	if c.Matches <= 0 {
		return summary{}, fmt.Errorf("matches must be positive, got %d", c.Matches)
	}
	if err := c.config(c.Seed).Validate(); err != nil {
		return summary{}, err
	}
	parallel := c.Parallel
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	start := time.Now()
	results := make([]matchResult, c.Matches)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := range results {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := c.playOne(c.Seed + int64(i))
			if err != nil {
				return fmt.Errorf("match %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary{}, err
	}

	sum := summary{Matches: len(results), Elapsed: time.Since(start)}
	for _, r := range results {
		switch r.Winner {
		case heroID:
			sum.HeroWins++
		case villainID:
			sum.VillainWins++
		default:
			sum.Ties++
		}
		sum.Hands += r.Hands
		sum.Showdowns += r.Showdowns
		sum.ChipDelta += r.HeroChips - c.Chips
	}
	return sum, nil
}

// playOne plays a single match. Seats alternate with the seed so neither
// bot always deals the first hand.
func (c *SimulateCmd) playOne(seed int64) (matchResult, error) {
	a, b := heroID, villainID
	if seed%2 != 0 {
		a, b = b, a
	}
	s, err := game.NewMatch(a, b, c.config(seed))
	if err != nil {
		return matchResult{}, err
	}

	hero, ok := bot.New(c.Hero, seed)
	if !ok {
		return matchResult{}, fmt.Errorf("unknown bot %q", c.Hero)
	}
	villain, ok := bot.New(c.Villain, seed+1)
	if !ok {
		return matchResult{}, fmt.Errorf("unknown bot %q", c.Villain)
	}

	s, err = bot.Play(s, map[string]bot.Bot{heroID: hero, villainID: villain}, func(s game.State) error {
		return s.CheckInvariants()
	})
	if err != nil {
		return matchResult{}, err
	}

	p, _ := s.Player(heroID)
	r := matchResult{Hands: len(s.History), HeroChips: p.Chips}
	r.Winner, _ = game.Winner(s)
	for _, h := range s.History {
		if h.Showdown {
			r.Showdowns++
		}
	}
	return r, nil
}

func (c *SimulateCmd) render(w io.Writer, sum summary) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s vs %s", c.Hero, c.Villain)))
	fmt.Fprintln(w, strings.Repeat("─", 40))

	row := func(label, value string) {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-14s", label)), value)
	}
	pct := func(n int) string {
		return fmt.Sprintf("%d (%.1f%%)", n, 100*float64(n)/float64(sum.Matches))
	}

	row("Matches", fmt.Sprint(sum.Matches))
	row(c.Hero+" wins", winStyle.Render(pct(sum.HeroWins)))
	row(c.Villain+" wins", winStyle.Render(pct(sum.VillainWins)))
	row("Ties", tieStyle.Render(pct(sum.Ties)))
	row("Hands", fmt.Sprintf("%d (%.1f per match)", sum.Hands, float64(sum.Hands)/float64(sum.Matches)))
	row("Showdowns", fmt.Sprint(sum.Showdowns))
	row("Net chips", fmt.Sprintf("%+d for %s", sum.ChipDelta, c.Hero))
	row("Elapsed", sum.Elapsed.Round(time.Millisecond).String())
}
