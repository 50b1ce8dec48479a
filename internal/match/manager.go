// Package match orchestrates heads-up matches on top of the pure engine. It
// owns ids, persistence, per-match serialization of actions, change
// notifications and the retention of finished matches.
package match

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/view"
)

// Options configures a Manager. Zero values get defaults.
type Options struct {
	Store         Store
	Clock         quartz.Clock
	Logger        *log.Logger
	Retention     time.Duration // How long completed matches are kept
	SweepInterval time.Duration
}

// Manager creates matches and applies actions to them. Actions on one match
// are serialized; different matches proceed independently.
type Manager struct {
	store         Store
	clock         quartz.Clock
	logger        *log.Logger
	retention     time.Duration
	sweepInterval time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
	subs  map[string]map[chan struct{}]struct{}
}

// NewManager constructs a Manager.
func NewManager(opts Options) *Manager {
	if opts.Store == nil {
		opts.Store = NewMemoryStore()
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Retention <= 0 {
		opts.Retention = time.Hour
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = time.Minute
	}
	return &Manager{
		store:         opts.Store,
		clock:         opts.Clock,
		logger:        opts.Logger.WithPrefix("match"),
		retention:     opts.Retention,
		sweepInterval: opts.SweepInterval,
		locks:         make(map[string]*sync.Mutex),
		subs:          make(map[string]map[chan struct{}]struct{}),
	}
}

// Create starts a new match. A zero seed is replaced with a random one.
func (m *Manager) Create(ctx context.Context, playerA, playerB string, cfg game.Config) (Record, error) {
	if cfg.Seed == 0 {
		seed, err := randomSeed()
		if err != nil {
			return Record{}, err
		}
		cfg.Seed = seed
	}

	s, err := game.NewMatch(playerA, playerB, cfg)
	if err != nil {
		return Record{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return Record{}, fmt.Errorf("generate match id: %w", err)
	}

	now := m.clock.Now()
	rec := Record{ID: id.String(), State: s, CreatedAt: now, UpdatedAt: now}
	if err := m.store.Put(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("store match: %w", err)
	}

	m.logger.Info("Match created", "match", rec.ID, "players", []string{playerA, playerB},
		"chips", cfg.StartingChips, "blinds", fmt.Sprintf("%d/%d", cfg.SmallBlind, cfg.BigBlind),
		"maxHands", cfg.MaxHands)
	m.logCompletion(rec.ID, game.State{}, s)
	return rec, nil
}

// Get returns the full, unredacted record.
func (m *Manager) Get(ctx context.Context, id string) (Record, error) {
	return m.store.Get(ctx, id)
}

// View returns the match as viewer is allowed to see it.
func (m *Manager) View(ctx context.Context, id, viewer string) (view.State, error) {
	rec, err := m.store.Get(ctx, id)
	if err != nil {
		return view.State{}, err
	}
	return view.Redact(rec.State, viewer), nil
}

// Act applies one action. Concurrent calls for the same match run one at a
// time against the latest stored state, so a racing duplicate is rejected by
// the engine's turn check rather than applied to a stale copy.
func (m *Manager) Act(ctx context.Context, id string, a game.Action) (Record, error) {
	lock := m.lock(id)
	lock.Lock()
	defer lock.Unlock()

	rec, err := m.store.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}

	next, err := game.Apply(rec.State, a)
	if err != nil {
		m.logger.Debug("Action rejected", "match", id, "player", a.PlayerID, "action", a.Kind, "error", err)
		return rec, err
	}

	prev := rec.State
	rec.State = next
	rec.UpdatedAt = m.clock.Now()
	if err := m.store.Put(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("store match: %w", err)
	}

	m.logger.Debug("Action applied", "match", id, "player", a.PlayerID, "action", a.Kind, "amount", a.Amount)
	m.logCompletion(id, prev, next)
	m.notify(id)
	return rec, nil
}

// logCompletion logs every hand settled between prev and next, and the end of
// the match.
func (m *Manager) logCompletion(id string, prev, next game.State) {
	for _, h := range next.History[len(prev.History):] {
		winner := "split"
		if h.WinnerID != nil {
			winner = *h.WinnerID
		}
		m.logger.Info("Hand complete", "match", id, "hand", h.HandNumber, "winner", winner,
			"pot", h.Amount, "showdown", h.Showdown, "description", h.Description)
	}
	if next.GameComplete && !prev.GameComplete {
		winner, ok := game.Winner(next)
		if !ok {
			winner = "tie"
		}
		m.logger.Info("Match complete", "match", id, "winner", winner, "hands", next.HandNumber,
			"chips", []int{next.Players[0].Chips, next.Players[1].Chips})
	}
}

func (m *Manager) lock(id string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	return l
}

// Subscribe returns a channel that receives a value whenever the match
// changes. Notifications coalesce: a slow reader sees at least one signal
// after the latest change. Call the returned function to unsubscribe.
func (m *Manager) Subscribe(id string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	m.mu.Lock()
	if m.subs[id] == nil {
		m.subs[id] = make(map[chan struct{}]struct{})
	}
	m.subs[id][ch] = struct{}{}
	m.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.subs[id], ch)
			if len(m.subs[id]) == 0 {
				delete(m.subs, id)
			}
		})
	}
}

func (m *Manager) notify(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for ch := range m.subs[id] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Sweep deletes completed matches that have not changed for longer than the
// retention period. It returns how many were removed.
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	ids, err := m.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list matches: %w", err)
	}

	cutoff := m.clock.Now().Add(-m.retention)
	removed := 0
	for _, id := range ids {
		rec, err := m.store.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return removed, err
		}
		if !rec.State.GameComplete || rec.UpdatedAt.After(cutoff) {
			continue
		}
		if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
			return removed, err
		}
		m.mu.Lock()
		delete(m.locks, id)
		m.mu.Unlock()
		removed++
	}
	if removed > 0 {
		m.logger.Info("Swept completed matches", "removed", removed)
	}
	return removed, nil
}

// StartSweeper runs Sweep every sweep interval until ctx is cancelled. The
// returned waiter reports when the sweeper has stopped.
func (m *Manager) StartSweeper(ctx context.Context) quartz.Waiter {
	return m.clock.TickerFunc(ctx, m.sweepInterval, func() error {
		if _, err := m.Sweep(ctx); err != nil {
			m.logger.Error("Sweep failed", "error", err)
		}
		return nil
	}, "match", "sweep")
}

func randomSeed() (int64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	seed := int64(binary.LittleEndian.Uint64(b[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed, nil
}
