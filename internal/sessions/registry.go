// Package sessions keeps live games in memory, each behind its own lock.
package sessions

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	ErrNotFound = fmt.Errorf("session not found")
	ErrFull     = fmt.Errorf("too many live sessions")
)

// Entry is one registered game. All access to the game goes through Do.
type Entry struct {
	ID        string
	StartedAt time.Time

	mu       sync.Mutex
	game     *mines.Session
	endedAt  time.Time
	lastSeen atomic.Int64 // unix nanos
	clock    func() time.Time
}

// State is a copy of a game taken while holding its lock.
type State struct {
	Status    mines.Status
	Width     int
	Height    int
	MineCount int
	Remaining int
	GuessMode bool
	View      mines.Grid[mines.CellStatus]
	Solution  *mines.Grid[mines.Cell] // set once the game is over
	StartedAt time.Time
	EndedAt   time.Time // zero while playing
}

// Do runs fn with exclusive access to the game, so moves against one session
// never overlap, and returns the state fn left behind. fn may be nil.
func (e *Entry) Do(fn func(g *mines.Session) error) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	e.lastSeen.Store(now.UnixNano())

	var err error
	if fn != nil {
		err = fn(e.game)
	}
	if e.endedAt.IsZero() && e.game.Status().Over() {
		e.endedAt = now
	}
	return e.state(), err
}

// Touch marks the entry as in use without taking its lock, so an open
// connection keeps the session from being swept.
func (e *Entry) Touch() {
	e.lastSeen.Store(e.now().UnixNano())
}

func (e *Entry) now() time.Time {
	if e.clock == nil {
		return time.Now().UTC()
	}
	return e.clock().UTC()
}

// Peek is Do without a move.
func (e *Entry) Peek() State {
	state, _ := e.Do(nil)
	return state
}

func (e *Entry) state() State {
	g := e.game
	s := State{
		Status:    g.Status(),
		Width:     g.Width(),
		Height:    g.Height(),
		MineCount: g.MineCount(),
		Remaining: g.Remaining(),
		GuessMode: g.GuessMode(),
		View:      g.Snapshot(),
		StartedAt: e.StartedAt,
		EndedAt:   e.endedAt,
	}
	if s.Status.Over() {
		sol := g.Solution()
		s.Solution = &sol
	}
	return s
}

type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	limit   int
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time
	changed func(live int)
}

func NewRegistry(logger *slog.Logger, limit int, ttl time.Duration) *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
		limit:   limit,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

// OnChange registers fn to be told the number of live sessions after every
// add, remove and sweep. fn runs under the registry lock and must not call back
// into the registry.
func (r *Registry) OnChange(fn func(live int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changed = fn
}

func (r *Registry) notify() {
	if r.changed != nil {
		r.changed(len(r.entries))
	}
}

func newSessionId() string {
	u := [16]byte(uuid.New())
	return base64.RawURLEncoding.EncodeToString(u[:])
}

func (r *Registry) Add(game *mines.Session) (*Entry, error) {
	now := r.now().UTC()
	e := &Entry{
		ID:        newSessionId(),
		StartedAt: now,
		game:      game,
		clock:     r.now,
	}
	e.lastSeen.Store(now.UnixNano())

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.limit > 0 && len(r.entries) >= r.limit {
		return nil, ErrFull
	}
	r.entries[e.ID] = e
	r.notify()
	return e, nil
}

func (r *Registry) Get(id string) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
	r.notify()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Sweep drops every session idle for longer than the registry's ttl and
// returns how many went.
func (r *Registry) Sweep() int {
	deadline := r.now().Add(-r.ttl).UnixNano()
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.entries {
		if e.lastSeen.Load() < deadline {
			delete(r.entries, id)
			n++
		}
	}
	if n > 0 {
		r.notify()
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug("swept idle sessions",
					slog.Int("removed", n), slog.Int("live", r.Len()))
			}
		}
	}
}
