// Package limits enforces the free-tier daily quotas on rewrites, surprise-me
// rewrites, and battles. Counts live in the durable store and are mirrored to
// a volatile session store on every write; Reconcile repairs either side from
// the other by taking the per-counter maximum, since usage only increases
// within a day.
package limits

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danghaonhien/reword-this/internal/store"
)

// Free-tier daily quotas.
const (
	DailyRewrites   = 10
	DailySurpriseMe = 3
	DailyBattles    = 3
)

// Unlimited is the remaining-count sentinel reported for premium users.
const Unlimited = -1

const (
	usageKey     = "reword-usage-limits"
	lastResetKey = "reword-last-reset-date"
	deviceIDKey  = "reword-device-id"
)

const dayFormat = "2006-01-02"

type usage struct {
	Rewrites   int `json:"rewritesUsed"`
	SurpriseMe int `json:"surpriseMeUsed"`
	Battles    int `json:"battlesUsed"`
}

// Option configures a Limiter at construction.
type Option func(*Limiter)

// WithLogger sets the diagnostic logger.
func WithLogger(log *slog.Logger) Option {
	return func(l *Limiter) { l.log = log }
}

// WithClock overrides the wall clock. Tests use it to cross day boundaries.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// WithPremium lifts all quotas.
func WithPremium(premium bool) Option {
	return func(l *Limiter) { l.premium = premium }
}

// WithSession sets the session mirror store. Defaults to an in-memory store
// private to this Limiter.
func WithSession(s store.Store) Option {
	return func(l *Limiter) { l.session = s }
}

// Limiter tracks per-day usage counters against the free-tier quotas. Like
// the engine, it treats the in-memory counters as authoritative for the
// session and swallows storage failures after logging them.
type Limiter struct {
	mu      sync.Mutex
	store   store.Store
	session store.Store
	log     *slog.Logger
	now     func() time.Time
	premium bool

	deviceID string
	used     usage
}

// New loads today's counters from the store, resetting them when the stored
// reset date is not today. A missing usage blob is restored from the session
// mirror when one survives. The device id is generated once and kept forever.
func New(ctx context.Context, st store.Store, opts ...Option) *Limiter {
	l := &Limiter{
		store: st,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = slog.Default()
	}
	if l.session == nil {
		l.session = store.NewMemory()
	}

	l.deviceID = l.ensureDeviceID(ctx)
	l.load(ctx)
	return l
}

func (l *Limiter) ensureDeviceID(ctx context.Context) string {
	id, ok, err := l.store.Get(ctx, deviceIDKey)
	if err != nil {
		l.log.Warn("load device id failed", "err", err)
	}
	if ok && id != "" {
		return id
	}
	id = uuid.NewString()
	if err := l.store.Put(ctx, deviceIDKey, id); err != nil {
		l.log.Warn("save device id failed", "err", err)
	}
	return id
}

func (l *Limiter) load(ctx context.Context) {
	today := l.today()

	lastReset, _, err := l.store.Get(ctx, lastResetKey)
	if err != nil {
		l.log.Warn("load last reset date failed", "err", err)
	}
	if lastReset != today {
		l.reset(ctx)
		return
	}

	raw, ok, err := l.store.Get(ctx, usageKey)
	if err != nil {
		l.log.Warn("load usage failed", "err", err)
	}
	if !ok {
		// The primary blob vanished mid-day; the session mirror is the
		// best record we have.
		l.reconcile(ctx)
		return
	}
	var u usage
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		l.log.Warn("stored usage unparseable, resetting", "err", err)
		l.reset(ctx)
		return
	}
	l.used = u
}

// reset zeroes all counters and stamps today as the reset date.
func (l *Limiter) reset(ctx context.Context) {
	l.used = usage{}
	if err := l.store.Put(ctx, lastResetKey, l.today()); err != nil {
		l.log.Warn("save reset date failed", "err", err)
	}
	l.save(ctx)
}

// save writes the counters to the primary store and the session mirror.
func (l *Limiter) save(ctx context.Context) {
	raw, err := json.Marshal(l.used)
	if err != nil {
		l.log.Warn("marshal usage failed", "err", err)
		return
	}
	if err := l.store.Put(ctx, usageKey, string(raw)); err != nil {
		l.log.Warn("persist usage failed", "err", err)
	}
	if err := l.session.Put(ctx, usageKey, string(raw)); err != nil {
		l.log.Warn("mirror usage failed", "err", err)
	}
}

// resetDayIfNeeded re-checks the calendar date so a session crossing midnight
// starts a fresh day. Callers hold the lock.
func (l *Limiter) resetDayIfNeeded(ctx context.Context) {
	lastReset, _, err := l.store.Get(ctx, lastResetKey)
	if err != nil {
		l.log.Warn("load last reset date failed", "err", err)
		return
	}
	if lastReset != l.today() {
		l.reset(ctx)
	}
}

func (l *Limiter) today() string {
	return l.now().Format(dayFormat)
}

// DeviceID returns the persistent device identity.
func (l *Limiter) DeviceID() string { return l.deviceID }

// IsPremium reports whether quotas are lifted.
func (l *Limiter) IsPremium() bool { return l.premium }

// TrackRewrite records one standard rewrite.
func (l *Limiter) TrackRewrite(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resetDayIfNeeded(ctx)
	l.used.Rewrites++
	l.save(ctx)
}

// TrackSurpriseMe records one surprise-me rewrite. It counts against both the
// surprise-me quota and the rewrite quota.
func (l *Limiter) TrackSurpriseMe(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resetDayIfNeeded(ctx)
	l.used.Rewrites++
	l.used.SurpriseMe++
	l.save(ctx)
}

// TrackBattle records one rewrite battle.
func (l *Limiter) TrackBattle(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resetDayIfNeeded(ctx)
	l.used.Battles++
	l.save(ctx)
}

// RewritesUsed returns today's rewrite count.
func (l *Limiter) RewritesUsed() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used.Rewrites
}

// SurpriseMeUsed returns today's surprise-me count.
func (l *Limiter) SurpriseMeUsed() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used.SurpriseMe
}

// BattlesUsed returns today's battle count.
func (l *Limiter) BattlesUsed() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used.Battles
}

// RewritesRemaining returns today's remaining rewrite quota, clamped at zero.
// Premium returns Unlimited.
func (l *Limiter) RewritesRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.remaining(DailyRewrites, l.used.Rewrites)
}

// SurpriseMeRemaining returns today's remaining surprise-me quota.
func (l *Limiter) SurpriseMeRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.remaining(DailySurpriseMe, l.used.SurpriseMe)
}

// BattlesRemaining returns today's remaining battle quota.
func (l *Limiter) BattlesRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.remaining(DailyBattles, l.used.Battles)
}

func (l *Limiter) remaining(limit, used int) int {
	if l.premium {
		return Unlimited
	}
	if used >= limit {
		return 0
	}
	return limit - used
}

// AllowRewrite reports whether one more rewrite is within quota.
func (l *Limiter) AllowRewrite() bool { return l.premium || l.RewritesRemaining() > 0 }

// AllowSurpriseMe reports whether one more surprise-me rewrite is within both
// its own quota and the rewrite quota it also consumes.
func (l *Limiter) AllowSurpriseMe() bool {
	return l.premium || (l.SurpriseMeRemaining() > 0 && l.RewritesRemaining() > 0)
}

// AllowBattle reports whether one more battle is within quota.
func (l *Limiter) AllowBattle() bool { return l.premium || l.BattlesRemaining() > 0 }

// Reconcile merges the primary and session copies of today's counters by
// taking the per-counter maximum, then rewrites both. Counters never decrease
// within a day, so the maximum is always the true value.
func (l *Limiter) Reconcile(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reconcile(ctx)
}

func (l *Limiter) reconcile(ctx context.Context) {
	merged := l.used

	for _, s := range []store.Store{l.store, l.session} {
		raw, ok, err := s.Get(ctx, usageKey)
		if err != nil {
			l.log.Warn("reconcile read failed", "err", err)
			continue
		}
		if !ok {
			continue
		}
		var u usage
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			l.log.Warn("reconcile blob unparseable", "err", err)
			continue
		}
		merged.Rewrites = max(merged.Rewrites, u.Rewrites)
		merged.SurpriseMe = max(merged.SurpriseMe, u.SurpriseMe)
		merged.Battles = max(merged.Battles, u.Battles)
	}

	l.used = merged
	if err := l.store.Put(ctx, lastResetKey, l.today()); err != nil {
		l.log.Warn("save reset date failed", "err", err)
	}
	l.save(ctx)
}
