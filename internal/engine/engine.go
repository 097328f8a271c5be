// Package engine owns all mutable gamification progress: XP, level, streak,
// reward unlock flags, badge progress, and daily missions. Every mutation
// goes through an Engine method and follows the same order: mutate state,
// persist the blob, then emit events. Storage failures are logged and
// swallowed; the in-memory state stays authoritative for the session.
package engine

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/danghaonhien/reword-this/internal/catalog"
	"github.com/danghaonhien/reword-this/internal/events"
	"github.com/danghaonhien/reword-this/internal/store"
)

const (
	// StateKey is the store key of the serialized State blob.
	StateKey = "gameification_state"

	// ActiveThemeKey persists the selected theme id separately from the
	// state blob so the selection survives a corrupted blob.
	ActiveThemeKey = "active-theme"
)

// Fixed XP grants for presentation-layer commands.
const (
	BattleXP     = 10
	CustomToneXP = 15
	FeedbackXP   = 5
)

const dayFormat = "2006-01-02"

// Option configures an Engine at construction.
type Option func(*Engine)

// WithLogger sets the diagnostic logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithClock overrides the wall clock. Tests use it to cross day boundaries.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithPremium unlocks the premium-gated themes at load time. Premium is a
// plain flag; there is no entitlement check beyond it.
func WithPremium(premium bool) Option {
	return func(e *Engine) { e.premium = premium }
}

type pendingEvent struct {
	t       events.Type
	payload any
}

// Engine is the single authority over progress state. All public operations
// are synchronous and run to completion; the mutex makes the state+store pair
// atomic from the caller's perspective when goroutines share one Engine.
// Event listeners run on the mutating goroutine while the lock is held and
// must not call back into the Engine.
type Engine struct {
	mu      sync.Mutex
	store   store.Store
	bus     *events.Bus
	log     *slog.Logger
	now     func() time.Time
	premium bool

	state       State
	activeTheme *catalog.Theme
	pending     []pendingEvent
}

// New loads state from the store (falling back to catalog defaults on missing
// or corrupt data), repairs invariant violations, and applies the daily reset
// before any other mutation can observe stale "today" data. It never fails:
// a broken store yields a default-state engine that works for the session.
func New(ctx context.Context, st store.Store, bus *events.Bus, opts ...Option) *Engine {
	e := &Engine{
		store: st,
		bus:   bus,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = slog.Default()
	}

	e.state = e.loadState(ctx)
	e.repairState()
	if e.premium {
		e.unlockPremiumThemes()
	}
	e.loadActiveTheme(ctx)
	e.resetDayIfNeeded()
	e.persist(ctx)
	e.flush()
	return e
}

func (e *Engine) loadState(ctx context.Context) State {
	raw, ok, err := e.store.Get(ctx, StateKey)
	if err != nil {
		e.log.Warn("load state failed, using defaults", "err", err)
		return defaultState()
	}
	if !ok {
		return defaultState()
	}

	var stored State
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		e.log.Warn("stored state unparseable, using defaults", "err", err)
		return defaultState()
	}
	return mergeWithDefaults(stored)
}

func (e *Engine) loadActiveTheme(ctx context.Context) {
	id, ok, err := e.store.Get(ctx, ActiveThemeKey)
	if err != nil {
		e.log.Warn("load active theme failed", "err", err)
		return
	}
	if !ok {
		return
	}
	for i := range e.state.Themes {
		if e.state.Themes[i].ID == id && e.state.Themes[i].Unlocked {
			t := e.state.Themes[i]
			e.activeTheme = &t
			return
		}
	}
	e.log.Debug("saved active theme unknown or locked", "id", id)
}

func (e *Engine) unlockPremiumThemes() {
	for i := range e.state.Themes {
		t := &e.state.Themes[i]
		if t.Unlocked {
			continue
		}
		if t.ID == "writers_delight" || t.ID == "custom_accent" {
			t.Unlocked = true
		}
	}
}

// persist writes the state blob. Write failures are not surfaced: the
// in-memory state remains the session's source of truth.
func (e *Engine) persist(ctx context.Context) {
	raw, err := json.Marshal(e.state)
	if err != nil {
		e.log.Warn("marshal state failed", "err", err)
		return
	}
	if err := e.store.Put(ctx, StateKey, string(raw)); err != nil {
		e.log.Warn("persist state failed", "err", err)
	}
}

func (e *Engine) emit(t events.Type, payload any) {
	e.pending = append(e.pending, pendingEvent{t: t, payload: payload})
}

// flush delivers queued events after persistence, preserving the
// mutate → persist → emit order for the whole operation.
func (e *Engine) flush() {
	pend := e.pending
	e.pending = nil
	if e.bus == nil {
		return
	}
	for _, ev := range pend {
		e.bus.Emit(ev.t, ev.payload)
	}
}

// finish is the common tail of every public mutator.
func (e *Engine) finish(ctx context.Context) {
	e.persist(ctx)
	e.flush()
}

func (e *Engine) today() string {
	return e.now().Format(dayFormat)
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.clone()
}

// ActiveTheme returns the selected theme, or nil when none is set.
func (e *Engine) ActiveTheme() *catalog.Theme {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.activeTheme == nil {
		return nil
	}
	t := *e.activeTheme
	return &t
}

// TonesUsedToday returns the distinct tones used today as an id → count map.
// Counts are always 1; the engine deduplicates per-day tone usage.
func (e *Engine) TonesUsedToday() map[string]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := map[string]int{}
	for _, id := range e.state.TonesUsedToday {
		out[id]++
	}
	return out
}

// SetActiveTheme selects the active theme (nil clears it). The selection id
// persists under its own key so it survives independently of the state blob.
func (e *Engine) SetActiveTheme(ctx context.Context, theme *catalog.Theme) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if theme == nil {
		e.activeTheme = nil
		if err := e.store.Delete(ctx, ActiveThemeKey); err != nil {
			e.log.Warn("clear active theme failed", "err", err)
		}
		e.emit(events.ActiveThemeUpdate, (*catalog.Theme)(nil))
	} else {
		t := *theme
		e.activeTheme = &t
		if err := e.store.Put(ctx, ActiveThemeKey, t.ID); err != nil {
			e.log.Warn("save active theme failed", "err", err)
		}
		e.emit(events.ActiveThemeUpdate, &t)
	}
	e.finish(ctx)
}

// SetActiveBadge selects the display badge (empty id clears it). Purely
// cosmetic; no unlock logic runs.
func (e *Engine) SetActiveBadge(ctx context.Context, badgeID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.ActiveBadge = badgeID
	e.emit(events.ActiveBadgeUpdate, badgeID)
	e.finish(ctx)
}
