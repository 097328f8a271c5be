package events

// Type names a progress event on the bus.
type Type string

const (
	// XPUpdate carries the new XP value after any grant.
	// Payload: int
	XPUpdate Type = "xp_update"

	// LevelUpdate carries the final level after level-up checks settle.
	// Payload: int
	LevelUpdate Type = "level_update"

	// StreakUpdate carries the new consecutive-day streak.
	// Payload: int
	StreakUpdate Type = "streak_update"

	// ToneUnlock carries the newly unlocked tone catalog entry.
	// Payload: catalog.Tone
	ToneUnlock Type = "tone_unlock"

	// ThemeUnlock carries the newly unlocked theme catalog entry.
	// Payload: catalog.Theme
	ThemeUnlock Type = "theme_unlock"

	// BadgeUnlock carries the newly unlocked badge with final progress.
	// Payload: catalog.Badge
	BadgeUnlock Type = "badge_unlock"

	// MissionUpdate carries a mission after any progress change.
	// Payload: catalog.Mission
	MissionUpdate Type = "mission_update"

	// ActiveBadgeUpdate carries the selected badge id, or "" when cleared.
	// Payload: string
	ActiveBadgeUpdate Type = "active_badge_update"

	// ActiveThemeUpdate carries the selected theme, or nil when cleared.
	// Payload: *catalog.Theme
	ActiveThemeUpdate Type = "active_theme_update"

	// RewardUnlocked is the batched per-evaluation-pass summary so
	// subscribers can show a single "N unlocked" notification.
	// Payload: RewardUnlockedPayload
	RewardUnlocked Type = "rewardUnlocked"
)

// RewardUnlockedPayload lists catalog ids unlocked in one evaluation pass,
// split by reward category. At most one category is non-empty per emission.
type RewardUnlockedPayload struct {
	Tones  []string
	Themes []string
	Badges []string
}
