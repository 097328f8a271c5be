package catalog

import "sort"

// Display-only helpers for "next unlock" hints. None of these mutate state or
// participate in the engine's authoritative unlock evaluation.

// NextTone returns the locked tone closest to unlocking, or nil when
// everything is unlocked. Streak requirements sort first once a streak is
// running and last with no streak; within a type, lower thresholds win.
func NextTone(tones []Tone, streak int) *Tone {
	var locked []Tone
	for _, t := range tones {
		if !t.Unlocked {
			locked = append(locked, t)
		}
	}
	if len(locked) == 0 {
		return nil
	}
	sort.SliceStable(locked, func(i, j int) bool {
		return requirementLess(locked[i].Requirement, locked[j].Requirement, streak)
	})
	return &locked[0]
}

// NextTheme is NextTone for themes.
func NextTheme(themes []Theme, streak int) *Theme {
	var locked []Theme
	for _, t := range themes {
		if !t.Unlocked {
			locked = append(locked, t)
		}
	}
	if len(locked) == 0 {
		return nil
	}
	sort.SliceStable(locked, func(i, j int) bool {
		return requirementLess(locked[i].Requirement, locked[j].Requirement, streak)
	})
	return &locked[0]
}

func requirementLess(a, b Requirement, streak int) bool {
	if a.Type == b.Type {
		return a.Value < b.Value
	}
	aStreak := a.Type == RequireStreak
	bStreak := b.Type == RequireStreak
	if aStreak != bStreak {
		// Streak-gated entries jump the queue once a streak is running;
		// with no streak they sort last, since streak days and xp points
		// are not comparable by raw value.
		if streak > 0 {
			return aStreak
		}
		return bStreak
	}
	return a.Value < b.Value
}

// NextBadge returns the locked badge with the highest progress ratio, or nil.
func NextBadge(badges []Badge) *Badge {
	var locked []Badge
	for _, b := range badges {
		if !b.Unlocked {
			locked = append(locked, b)
		}
	}
	if len(locked) == 0 {
		return nil
	}
	sort.SliceStable(locked, func(i, j int) bool {
		ri := float64(locked[i].Progress) / float64(locked[i].Required)
		rj := float64(locked[j].Progress) / float64(locked[j].Required)
		return ri > rj
	})
	return &locked[0]
}

var levelTitles = []string{
	"Word Novice",       // Level 1
	"Phrase Apprentice", // Level 2
	"Sentence Crafter",  // Level 3
	"Expression Artisan",
	"Tone Virtuoso",
	"Wordsmith Wizard",
	"Lexical Alchemist",
	"Prose Mastermind",
	"Language Luminary",
	"Reword Royalty", // Level 10
}

// LevelTitle returns the display title for a level.
func LevelTitle(level int) string {
	if level < 1 {
		level = 1
	}
	if level <= len(levelTitles) {
		return levelTitles[level-1]
	}
	return "Reword Legend"
}
