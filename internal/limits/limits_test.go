package limits

import (
	"context"
	"testing"
	"time"

	"github.com/danghaonhien/reword-this/internal/store"
)

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time { return c.t }

func (c *testClock) nextDay() { c.t = c.t.AddDate(0, 0, 1) }

func newTestLimiter(t *testing.T, opts ...Option) (*Limiter, *store.Memory, *testClock) {
	t.Helper()
	st := store.NewMemory()
	clock := &testClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)}
	l := New(context.Background(), st, append([]Option{WithClock(clock.now)}, opts...)...)
	return l, st, clock
}

func TestRewriteQuotaClampsAtZero(t *testing.T) {
	l, _, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < DailyRewrites; i++ {
		if !l.AllowRewrite() {
			t.Fatalf("rewrite %d denied below quota", i+1)
		}
		l.TrackRewrite(ctx)
	}
	if l.AllowRewrite() {
		t.Fatalf("rewrite allowed at quota")
	}
	if got := l.RewritesRemaining(); got != 0 {
		t.Fatalf("remaining=%d, want 0", got)
	}

	// The 11th call still counts; remaining stays clamped.
	l.TrackRewrite(ctx)
	if got := l.RewritesUsed(); got != DailyRewrites+1 {
		t.Fatalf("used=%d, want %d", got, DailyRewrites+1)
	}
	if got := l.RewritesRemaining(); got != 0 {
		t.Fatalf("remaining=%d after overshoot, want 0", got)
	}
}

func TestSurpriseMeConsumesBothQuotas(t *testing.T) {
	l, _, _ := newTestLimiter(t)
	ctx := context.Background()

	l.TrackSurpriseMe(ctx)

	if got := l.SurpriseMeUsed(); got != 1 {
		t.Fatalf("surprise used=%d, want 1", got)
	}
	if got := l.RewritesUsed(); got != 1 {
		t.Fatalf("rewrites used=%d, want 1 (surprise counts as a rewrite)", got)
	}
	if got := l.BattlesUsed(); got != 0 {
		t.Fatalf("battles used=%d, want 0", got)
	}
}

func TestSurpriseMeDeniedWhenRewriteQuotaExhausted(t *testing.T) {
	l, _, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < DailyRewrites; i++ {
		l.TrackRewrite(ctx)
	}
	if l.AllowSurpriseMe() {
		t.Fatalf("surprise-me allowed with no rewrite quota left")
	}
	if got := l.SurpriseMeRemaining(); got != DailySurpriseMe {
		t.Fatalf("surprise remaining=%d, want untouched %d", got, DailySurpriseMe)
	}
}

func TestBattleQuotaIndependent(t *testing.T) {
	l, _, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < DailyBattles; i++ {
		l.TrackBattle(ctx)
	}
	if l.AllowBattle() {
		t.Fatalf("battle allowed at quota")
	}
	if !l.AllowRewrite() {
		t.Fatalf("battles must not consume the rewrite quota")
	}
}

func TestCountersPersistAcrossRestartSameDay(t *testing.T) {
	l, st, clock := newTestLimiter(t)
	ctx := context.Background()

	l.TrackRewrite(ctx)
	l.TrackBattle(ctx)

	l2 := New(ctx, st, WithClock(clock.now))
	if got := l2.RewritesUsed(); got != 1 {
		t.Fatalf("rewrites used=%d after restart, want 1", got)
	}
	if got := l2.BattlesUsed(); got != 1 {
		t.Fatalf("battles used=%d after restart, want 1", got)
	}
}

func TestDailyResetOnLoad(t *testing.T) {
	l, st, clock := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		l.TrackRewrite(ctx)
	}
	clock.nextDay()

	l2 := New(ctx, st, WithClock(clock.now))
	if got := l2.RewritesUsed(); got != 0 {
		t.Fatalf("rewrites used=%d on new day, want 0", got)
	}
	if got := l2.RewritesRemaining(); got != DailyRewrites {
		t.Fatalf("remaining=%d on new day, want %d", got, DailyRewrites)
	}
}

func TestMidSessionDayRollover(t *testing.T) {
	l, _, clock := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < DailyRewrites; i++ {
		l.TrackRewrite(ctx)
	}
	clock.nextDay()

	// The same instance crossing midnight starts a fresh day; the tracked
	// call is the first of the new day.
	l.TrackRewrite(ctx)
	if got := l.RewritesUsed(); got != 1 {
		t.Fatalf("rewrites used=%d after rollover, want 1", got)
	}
}

func TestPremiumIsUnlimited(t *testing.T) {
	l, _, _ := newTestLimiter(t, WithPremium(true))
	ctx := context.Background()

	for i := 0; i < DailyRewrites*3; i++ {
		if !l.AllowRewrite() {
			t.Fatalf("premium rewrite denied at call %d", i+1)
		}
		l.TrackRewrite(ctx)
	}
	if got := l.RewritesRemaining(); got != Unlimited {
		t.Fatalf("remaining=%d, want Unlimited sentinel", got)
	}
	if !l.AllowSurpriseMe() || !l.AllowBattle() {
		t.Fatalf("premium must allow every action")
	}
}

func TestDeviceIDGeneratedOnceAndStable(t *testing.T) {
	l, st, clock := newTestLimiter(t)
	ctx := context.Background()

	id := l.DeviceID()
	if id == "" {
		t.Fatalf("device id empty")
	}
	l2 := New(ctx, st, WithClock(clock.now))
	if l2.DeviceID() != id {
		t.Fatalf("device id changed across restarts: %q vs %q", l2.DeviceID(), id)
	}
}

func TestReconcileTakesPerCounterMax(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	session := store.NewMemory()
	clock := &testClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)}

	l := New(ctx, st, WithClock(clock.now), WithSession(session))
	l.TrackRewrite(ctx)
	l.TrackRewrite(ctx)
	l.TrackBattle(ctx)

	// Another writer advanced the primary store behind our back.
	if err := st.Put(ctx, usageKey, `{"rewritesUsed":5,"surpriseMeUsed":1,"battlesUsed":0}`); err != nil {
		t.Fatalf("seed primary: %v", err)
	}

	l.Reconcile(ctx)
	if got := l.RewritesUsed(); got != 5 {
		t.Fatalf("rewrites=%d after reconcile, want 5", got)
	}
	if got := l.SurpriseMeUsed(); got != 1 {
		t.Fatalf("surprise=%d after reconcile, want 1", got)
	}
	if got := l.BattlesUsed(); got != 1 {
		t.Fatalf("battles=%d after reconcile, want 1 (in-memory wins)", got)
	}
}

func TestMissingPrimaryBlobRestoredFromSession(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	session := store.NewMemory()
	clock := &testClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)}

	l := New(ctx, st, WithClock(clock.now), WithSession(session))
	l.TrackRewrite(ctx)
	l.TrackRewrite(ctx)

	// Usage blob lost, reset date intact: load falls back to the mirror.
	if err := st.Delete(ctx, usageKey); err != nil {
		t.Fatalf("drop primary blob: %v", err)
	}
	l2 := New(ctx, st, WithClock(clock.now), WithSession(session))
	if got := l2.RewritesUsed(); got != 2 {
		t.Fatalf("rewrites=%d after restore, want 2", got)
	}
	// And the primary store is made whole again.
	if raw, ok, _ := st.Get(ctx, usageKey); !ok || raw == "" {
		t.Fatalf("primary usage blob not rewritten")
	}
}
