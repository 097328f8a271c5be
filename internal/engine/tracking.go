package engine

import (
	"context"

	"github.com/danghaonhien/reword-this/internal/catalog"
	"github.com/danghaonhien/reword-this/internal/events"
)

// TrackToneUsage records a successful rewrite with the given tone. It is the
// workhorse command behind every rewrite: it touches the daily streak,
// accumulates word-count progress on every call, and applies the per-tone
// updates (badges, tone mission, rewrite-count mission) once per tone per
// day. Word tracking is not deduplicated; tone-distinctness tracking is.
func (e *Engine) TrackToneUsage(ctx context.Context, toneID string, wordCount int) {
	if toneID == "" {
		e.log.Warn("tone usage with empty tone id")
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resetDayIfNeeded()
	e.recordDailyTouch()

	var unlocked []string

	// Every call is one use of the app, whatever the tone.
	if e.advanceBadgeByID("rewrite_rookie", 1) {
		unlocked = append(unlocked, "rewrite_rookie")
	}
	if e.advanceBadgeByID("power_user", 1) {
		unlocked = append(unlocked, "power_user")
	}

	if wordCount > 0 {
		if e.advanceBadgeByID("word_wizard", wordCount) {
			unlocked = append(unlocked, "word_wizard")
		}
		e.advanceMission(e.findMissionByKind(catalog.MissionRewriteWords), wordCount)
	}

	if !e.toneUsedToday(toneID) {
		e.state.TonesUsedToday = append(e.state.TonesUsedToday, toneID)

		for i := range e.state.Badges {
			b := &e.state.Badges[i]
			if b.Tone != toneID {
				continue
			}
			if e.advanceBadge(b, 1) {
				unlocked = append(unlocked, b.ID)
			}
		}

		e.updateMission(catalog.MissionUseTones)
		e.updateMission(catalog.MissionRewriteCount)
	}

	if len(unlocked) > 0 {
		e.emit(events.RewardUnlocked, events.RewardUnlockedPayload{Badges: unlocked})
	}
	e.finish(ctx)
}

func (e *Engine) toneUsedToday(toneID string) bool {
	for _, id := range e.state.TonesUsedToday {
		if id == toneID {
			return true
		}
	}
	return false
}

// TrackBattle records a finished rewrite battle vote: fixed XP, battle
// mission, and battle-victor badge progress. The tone ids are accepted for
// parity with the caller but carry no per-tone semantics.
func (e *Engine) TrackBattle(ctx context.Context, winnerToneID, loserToneID string) {
	_ = winnerToneID
	_ = loserToneID
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resetDayIfNeeded()
	e.addXP(BattleXP)
	e.updateMission(catalog.MissionBattle)
	if e.advanceBadgeByID("battle_victor", 1) {
		e.emit(events.RewardUnlocked, events.RewardUnlockedPayload{Badges: []string{"battle_victor"}})
	}
	e.finish(ctx)
}

// TrackCustomTone records a use of the custom tone builder.
func (e *Engine) TrackCustomTone(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resetDayIfNeeded()
	e.addXP(CustomToneXP)
	e.updateMission(catalog.MissionCustomTone)
	if e.advanceBadgeByID("style_savant", 1) {
		e.emit(events.RewardUnlocked, events.RewardUnlockedPayload{Badges: []string{"style_savant"}})
	}
	e.finish(ctx)
}

// TrackFeedback records the user picking a favorite among rewrites.
func (e *Engine) TrackFeedback(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resetDayIfNeeded()
	e.addXP(FeedbackXP)
	e.updateMission(catalog.MissionFeedback)
	e.finish(ctx)
}

// TrackCheckIn advances the daily check-in mission. Called once per process
// start by the composition root.
func (e *Engine) TrackCheckIn(ctx context.Context) {
	e.UpdateMissions(ctx, catalog.MissionCheckin)
}

// TrackWordWizard adds word-count progress to the word-wizard badge without
// any tone attribution. This is the canonical path; callers must not mutate
// badge progress themselves.
func (e *Engine) TrackWordWizard(ctx context.Context, wordCount int) {
	if wordCount <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.advanceBadgeByID("word_wizard", wordCount) {
		e.emit(events.RewardUnlocked, events.RewardUnlockedPayload{Badges: []string{"word_wizard"}})
	}
	e.finish(ctx)
}
