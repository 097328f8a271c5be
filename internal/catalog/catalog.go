// Package catalog holds the static reward definitions: unlockable tones,
// themes, badges, and daily missions, each with its unlock predicate. The
// engine copies these defaults at first run and owns the mutable flags from
// then on.
package catalog

type RequirementType string

const (
	RequireXP     RequirementType = "xp"
	RequireStreak RequirementType = "streak"
	RequireLevel  RequirementType = "level"
)

// Requirement gates availability of a catalog entry on an xp/streak/level
// threshold.
type Requirement struct {
	Type  RequirementType `json:"type"`
	Value int             `json:"value"`
}

// Tone is a rewrite style selectable once unlocked. Unlocked is monotonic:
// false to true only.
type Tone struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Requirement Requirement `json:"unlockRequirement"`
	Unlocked    bool        `json:"unlocked"`
}

// Theme is a UI skin. Exactly one theme is active at a time; the default
// theme's level-1 requirement is satisfied at creation.
type Theme struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Requirement Requirement `json:"unlockRequirement"`
	Unlocked    bool        `json:"unlocked"`
	StyleClass  string      `json:"className"`
}

// Badge tone-field sentinels for badges not tied to a single tone.
const (
	FeatureBadge = "_feature"
	PremiumBadge = "_premium"
)

// Badge is a permanent, progress-tracked achievement. Progress stays within
// [0, Required]; Unlocked flips when Required is first reached.
type Badge struct {
	ID          string `json:"id"`
	Tone        string `json:"tone"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Progress    int    `json:"progress"`
	Required    int    `json:"required"`
	Unlocked    bool   `json:"unlocked"`
}

// MissionKind is the enum of daily mission kinds.
type MissionKind string

const (
	MissionUseTones     MissionKind = "use_tones"
	MissionRewriteWords MissionKind = "rewrite_words"
	MissionRewriteCount MissionKind = "rewrite_count"
	MissionBattle       MissionKind = "battle"
	MissionCustomTone   MissionKind = "custom_tone"
	MissionFeedback     MissionKind = "feedback"
	MissionCheckin      MissionKind = "checkin"
)

type RewardType string

const (
	RewardXP          RewardType = "xp"
	RewardStreakBonus RewardType = "streak_bonus"
)

type Reward struct {
	Type  RewardType `json:"type"`
	Value int        `json:"value"`
}

// Mission is a daily task. Progress and Completed reset every calendar day.
type Mission struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Kind        MissionKind `json:"type"`
	Goal        int         `json:"goal"`
	Progress    int         `json:"progress"`
	Completed   bool        `json:"completed"`
	Reward      Reward      `json:"reward"`
}

// Tones returns a fresh copy of the default tone catalog.
func Tones() []Tone {
	return []Tone{
		{ID: "clarity", Name: "Clarity", Description: "Clear and concise communication",
			Requirement: Requirement{Type: RequireXP, Value: 0}, Unlocked: true},
		{ID: "friendly", Name: "Friendly", Description: "Warm and approachable tone",
			Requirement: Requirement{Type: RequireXP, Value: 50}},
		{ID: "formal", Name: "Formal", Description: "Professional and structured communication",
			Requirement: Requirement{Type: RequireXP, Value: 100}},
		{ID: "gen_z", Name: "Gen Z", Description: "Modern, casual internet slang with emojis",
			Requirement: Requirement{Type: RequireXP, Value: 200}},
		{ID: "executive", Name: "Executive", Description: "Authoritative and decisive communication",
			Requirement: Requirement{Type: RequireXP, Value: 300}},
		{ID: "creative", Name: "Creative", Description: "Imaginative and expressive writing",
			Requirement: Requirement{Type: RequireStreak, Value: 5}},
	}
}

// Themes returns a fresh copy of the default theme catalog. The premium
// themes carry an out-of-reach XP requirement; the premium flag, not XP, is
// what actually grants them.
func Themes() []Theme {
	return []Theme{
		{ID: "standard", Name: "Standard", Description: "Default app theme",
			Requirement: Requirement{Type: RequireLevel, Value: 1}, Unlocked: true, StyleClass: "theme-standard"},
		{ID: "dark", Name: "Dark Mode", Description: "Low-light optimized theme",
			Requirement: Requirement{Type: RequireLevel, Value: 2}, StyleClass: "theme-dark"},
		{ID: "focus", Name: "Focus Mode", Description: "Minimalist, distraction-free interface",
			Requirement: Requirement{Type: RequireXP, Value: 200}, StyleClass: "theme-focus"},
		{ID: "nature", Name: "Nature", Description: "Calming green and blue palette",
			Requirement: Requirement{Type: RequireStreak, Value: 5}, StyleClass: "theme-nature"},
		{ID: "vibrant", Name: "Vibrant", Description: "High-contrast, energetic colors",
			Requirement: Requirement{Type: RequireLevel, Value: 5}, StyleClass: "theme-vibrant"},
		{ID: "professional", Name: "Professional", Description: "Subtle, business-oriented design",
			Requirement: Requirement{Type: RequireXP, Value: 600}, StyleClass: "theme-professional"},
		{ID: "writers_delight", Name: "Writer's Delight", Description: "Typography-focused design (Premium)",
			Requirement: Requirement{Type: RequireXP, Value: 9999}, StyleClass: "theme-writers-delight"},
		{ID: "custom_accent", Name: "Custom Accent Colors", Description: "Personalized color choices (Premium)",
			Requirement: Requirement{Type: RequireXP, Value: 9999}, StyleClass: "theme-custom-accent"},
	}
}

// Badges returns a fresh copy of the default badge catalog.
func Badges() []Badge {
	return []Badge{
		// Tone mastery
		{ID: "clarity_champion", Tone: "clarity", Name: "Clarity Champion", Description: "Used Clarity tone 10 times", Required: 10},
		{ID: "friend_maker", Tone: "friendly", Name: "Friend Maker", Description: "Used Friendly tone 10 times", Required: 10},
		{ID: "professional_writer", Tone: "formal", Name: "Professional Writer", Description: "Used Formal tone 10 times", Required: 10},
		{ID: "casual_conversationalist", Tone: "casual", Name: "Casual Conversationalist", Description: "Used Casual tone 10 times", Required: 10},
		{ID: "enthusiasm_expert", Tone: "enthusiastic", Name: "Enthusiasm Expert", Description: "Used Enthusiastic tone 10 times", Required: 10},
		{ID: "diplomatic_delegate", Tone: "diplomatic", Name: "Diplomatic Delegate", Description: "Used Diplomatic tone 10 times", Required: 10},
		{ID: "persuasion_pro", Tone: "persuasive", Name: "Persuasion Pro", Description: "Used Persuasive tone 15 times", Required: 15},
		{ID: "tech_talker", Tone: "technical", Name: "Tech Talker", Description: "Used Technical tone 15 times", Required: 15},
		{ID: "creative_genius", Tone: "creative", Name: "Creative Genius", Description: "Used Creative tone 15 times", Required: 15},
		{ID: "executive_elite", Tone: "executive", Name: "Executive Elite", Description: "Used Executive tone 15 times", Required: 15},
		// Feature usage
		{ID: "rewrite_rookie", Tone: FeatureBadge, Name: "Rewrite Rookie", Description: "First rewrite", Required: 1},
		{ID: "dedication_daily", Tone: FeatureBadge, Name: "Dedication Daily", Description: "First 3-day streak", Required: 3},
		{ID: "word_wizard", Tone: FeatureBadge, Name: "Word Wizard", Description: "Rewrote 1,000 words total", Required: 1000},
		{ID: "battle_victor", Tone: FeatureBadge, Name: "Battle Victor", Description: "Won 5 rewrite battles", Required: 5},
		{ID: "style_savant", Tone: FeatureBadge, Name: "Style Savant", Description: "Used custom tone builder 3 times", Required: 3},
		{ID: "streak_master", Tone: FeatureBadge, Name: "Streak Master", Description: "Reached 7-day streak", Required: 7},
		{ID: "power_user", Tone: FeatureBadge, Name: "Power User", Description: "Used the app 30 times", Required: 30},
		{ID: "vocabulary_virtuoso", Tone: PremiumBadge, Name: "Vocabulary Virtuoso", Description: "Premium: Used advanced vocabulary features", Required: 1},
	}
}

// Missions returns a fresh copy of the default daily mission set.
func Missions() []Mission {
	return []Mission{
		{ID: "tone_explorer", Title: "Tone Explorer", Description: "Use 3 different tones today",
			Kind: MissionUseTones, Goal: 3, Reward: Reward{Type: RewardXP, Value: 40}},
		{ID: "word_count", Title: "Word Count", Description: "Rewrite at least 200 words today",
			Kind: MissionRewriteWords, Goal: 200, Reward: Reward{Type: RewardXP, Value: 30}},
		{ID: "multi_tasker", Title: "Multi-tasker", Description: "Complete 3 different rewrites today",
			Kind: MissionRewriteCount, Goal: 3, Reward: Reward{Type: RewardXP, Value: 50}},
		{ID: "battle_ready", Title: "Battle Ready", Description: "Use the Rewrite Battle feature once today",
			Kind: MissionBattle, Goal: 1, Reward: Reward{Type: RewardXP, Value: 60}},
		{ID: "style_specialist", Title: "Style Specialist", Description: "Use the Custom Tone Builder feature once today",
			Kind: MissionCustomTone, Goal: 1, Reward: Reward{Type: RewardXP, Value: 70}},
		{ID: "feedback_friend", Title: "Feedback Friend", Description: "Select your favorite from multiple rewrites",
			Kind: MissionFeedback, Goal: 1, Reward: Reward{Type: RewardXP, Value: 25}},
		{ID: "daily_checkin", Title: "Daily Check-in", Description: "Simple login mission",
			Kind: MissionCheckin, Goal: 1, Reward: Reward{Type: RewardXP, Value: 15}},
	}
}

// MissionKinds lists every kind a default mission exists for; the engine's
// repair pass re-adds any that went missing from a stored blob.
func MissionKinds() []MissionKind {
	return []MissionKind{
		MissionUseTones, MissionRewriteWords, MissionRewriteCount,
		MissionBattle, MissionCustomTone, MissionFeedback, MissionCheckin,
	}
}
