package engine

import (
	"context"

	"github.com/danghaonhien/reword-this/internal/events"
)

// xpForNextLevel returns the cost of the next level-up at the given level:
// level 1→2 costs 100 XP, level 2→3 costs 200, and so on.
func xpForNextLevel(level int) int {
	return level * 100
}

// XPToNextLevel reports how much XP remains until the next level.
func (e *Engine) XPToNextLevel() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return xpForNextLevel(e.state.Level) - e.state.XP
}

// AddXP grants XP, settles any level-ups, and re-evaluates unlocks.
func (e *Engine) AddXP(ctx context.Context, amount int) {
	if amount <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resetDayIfNeeded()
	e.addXP(amount)
	e.finish(ctx)
}

// addXP is the lock-held grant path shared with mission rewards. Level-ups
// loop so the persisted level is correct for arbitrarily large grants; a
// single level_update carries the final level.
func (e *Engine) addXP(amount int) {
	e.state.XP += amount
	e.emit(events.XPUpdate, e.state.XP)

	leveled := false
	for e.state.XP >= xpForNextLevel(e.state.Level) {
		e.state.XP -= xpForNextLevel(e.state.Level)
		e.state.Level++
		leveled = true
	}
	if leveled {
		e.emit(events.LevelUpdate, e.state.Level)
	}

	e.checkUnlocks()
}

// recordDailyTouch advances the streak at most once per calendar day. It is
// the only path that mutates Streak.
func (e *Engine) recordDailyTouch() {
	today := e.today()
	if e.state.LastRewriteDate == today {
		return
	}
	e.state.Streak++
	e.state.LastRewriteDate = today
	e.emit(events.StreakUpdate, e.state.Streak)

	e.checkUnlocks()
	e.checkStreakBadges()
}

// resetDayIfNeeded clears day-scoped state the first time the engine sees a
// new calendar day: every mission's progress and completion, and the set of
// tones used today. Missions reset regardless of completion; the streak
// itself is untouched (missing a day simply stops advancing it). Runs at
// startup before any other mutation and again at the top of each mutator, so
// stale "today" data never leaks across midnight. Idempotent within a day.
func (e *Engine) resetDayIfNeeded() bool {
	today := e.today()
	if e.state.LastStreakUpdateDay == today {
		return false
	}

	for i := range e.state.Missions {
		e.state.Missions[i].Progress = 0
		e.state.Missions[i].Completed = false
	}
	e.state.TonesUsedToday = nil
	e.state.LastStreakUpdateDay = today
	return true
}
