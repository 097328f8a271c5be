package engine

import (
	"github.com/danghaonhien/reword-this/internal/catalog"
	"github.com/danghaonhien/reword-this/internal/events"
)

func requirementMet(r catalog.Requirement, xp, level, streak int) bool {
	switch r.Type {
	case catalog.RequireXP:
		return xp >= r.Value
	case catalog.RequireLevel:
		return level >= r.Value
	case catalog.RequireStreak:
		return streak >= r.Value
	default:
		return false
	}
}

// checkUnlocks runs the eager unlock evaluation: every locked tone and theme
// is re-tested against current xp/level/streak. O(catalog size) per call,
// which keeps the logic free of incremental-update bugs. Newly unlocked
// entries get a per-item event plus one batched reward_unlocked per category.
func (e *Engine) checkUnlocks() {
	var tones, themes []string

	for i := range e.state.Tones {
		t := &e.state.Tones[i]
		if t.Unlocked {
			continue
		}
		// Tones never use level requirements.
		if t.Requirement.Type == catalog.RequireLevel {
			continue
		}
		if requirementMet(t.Requirement, e.state.XP, e.state.Level, e.state.Streak) {
			t.Unlocked = true
			tones = append(tones, t.ID)
			e.emit(events.ToneUnlock, *t)
		}
	}

	for i := range e.state.Themes {
		t := &e.state.Themes[i]
		if t.Unlocked {
			continue
		}
		if requirementMet(t.Requirement, e.state.XP, e.state.Level, e.state.Streak) {
			t.Unlocked = true
			themes = append(themes, t.ID)
			e.emit(events.ThemeUnlock, *t)
		}
	}

	if len(tones) > 0 {
		e.emit(events.RewardUnlocked, events.RewardUnlockedPayload{Tones: tones})
	}
	if len(themes) > 0 {
		e.emit(events.RewardUnlocked, events.RewardUnlockedPayload{Themes: themes})
	}
}

// checkStreakBadges unlocks the streak-threshold badges once the streak
// reaches their requirement. Progress snaps to the requirement on unlock.
func (e *Engine) checkStreakBadges() {
	var unlocked []string
	for _, id := range []string{"dedication_daily", "streak_master"} {
		b := e.findBadge(id)
		if b == nil || b.Unlocked {
			continue
		}
		if e.state.Streak >= b.Required {
			b.Progress = b.Required
			b.Unlocked = true
			unlocked = append(unlocked, b.ID)
			e.emit(events.BadgeUnlock, *b)
		}
	}
	if len(unlocked) > 0 {
		e.emit(events.RewardUnlocked, events.RewardUnlockedPayload{Badges: unlocked})
	}
}

func (e *Engine) findBadge(id string) *catalog.Badge {
	for i := range e.state.Badges {
		if e.state.Badges[i].ID == id {
			return &e.state.Badges[i]
		}
	}
	return nil
}

// advanceBadge adds delta to a badge's progress, capped at its requirement,
// and unlocks it exactly when the cap is first reached. Reports whether the
// badge unlocked on this call.
func (e *Engine) advanceBadge(b *catalog.Badge, delta int) bool {
	if b == nil || b.Unlocked || delta <= 0 {
		return false
	}
	b.Progress += delta
	if b.Progress > b.Required {
		b.Progress = b.Required
	}
	if b.Progress < b.Required {
		return false
	}
	b.Unlocked = true
	e.emit(events.BadgeUnlock, *b)
	return true
}

// advanceBadgeByID is advanceBadge with a lookup; unknown ids log and no-op.
func (e *Engine) advanceBadgeByID(id string, delta int) bool {
	b := e.findBadge(id)
	if b == nil {
		e.log.Debug("no badge definition", "id", id)
		return false
	}
	return e.advanceBadge(b, delta)
}
