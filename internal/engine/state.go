package engine

import (
	"github.com/danghaonhien/reword-this/internal/catalog"
)

// State is the full progress record the engine persists as one blob. The
// store is the source of truth across restarts; this in-memory copy must be
// written back before a mutation counts as durable.
//
// XP is the remainder after level-ups: each level-up consumes level*100 XP,
// so xp < level*100 always holds after a mutator returns.
type State struct {
	XP                  int               `json:"xp"`
	Level               int               `json:"level"`
	Streak              int               `json:"streak"`
	LastRewriteDate     string            `json:"lastRewriteDate"`
	LastStreakUpdateDay string            `json:"lastStreakUpdateDay"`
	Tones               []catalog.Tone    `json:"unlockableTones"`
	Themes              []catalog.Theme   `json:"themes"`
	Badges              []catalog.Badge   `json:"toneMasterBadges"`
	Missions            []catalog.Mission `json:"dailyMissions"`
	TonesUsedToday      []string          `json:"tonesUsedToday"`
	ActiveBadge         string            `json:"activeBadge"`
}

func defaultState() State {
	return State{
		Level:    1,
		Tones:    catalog.Tones(),
		Themes:   catalog.Themes(),
		Badges:   catalog.Badges(),
		Missions: catalog.Missions(),
	}
}

// clone returns a deep copy safe to hand to callers.
func (s State) clone() State {
	out := s
	out.Tones = append([]catalog.Tone(nil), s.Tones...)
	out.Themes = append([]catalog.Theme(nil), s.Themes...)
	out.Badges = append([]catalog.Badge(nil), s.Badges...)
	out.Missions = append([]catalog.Mission(nil), s.Missions...)
	out.TonesUsedToday = append([]string(nil), s.TonesUsedToday...)
	return out
}

// mergeWithDefaults overlays the mutable fields of a stored state onto the
// catalog defaults. Catalog entries missing from the blob keep their default
// values; blob entries with no catalog definition are dropped. Immutable
// fields (names, requirements, goals) always come from the catalog so stale
// blobs pick up definition changes.
func mergeWithDefaults(stored State) State {
	out := defaultState()

	out.XP = stored.XP
	if stored.Level >= 1 {
		out.Level = stored.Level
	}
	out.Streak = stored.Streak
	out.LastRewriteDate = stored.LastRewriteDate
	out.LastStreakUpdateDay = stored.LastStreakUpdateDay
	out.TonesUsedToday = append([]string(nil), stored.TonesUsedToday...)
	out.ActiveBadge = stored.ActiveBadge

	tones := map[string]catalog.Tone{}
	for _, t := range stored.Tones {
		tones[t.ID] = t
	}
	for i := range out.Tones {
		if t, ok := tones[out.Tones[i].ID]; ok {
			out.Tones[i].Unlocked = out.Tones[i].Unlocked || t.Unlocked
		}
	}

	themes := map[string]catalog.Theme{}
	for _, t := range stored.Themes {
		themes[t.ID] = t
	}
	for i := range out.Themes {
		if t, ok := themes[out.Themes[i].ID]; ok {
			out.Themes[i].Unlocked = out.Themes[i].Unlocked || t.Unlocked
		}
	}

	badges := map[string]catalog.Badge{}
	for _, b := range stored.Badges {
		badges[b.ID] = b
	}
	for i := range out.Badges {
		if b, ok := badges[out.Badges[i].ID]; ok {
			out.Badges[i].Progress = b.Progress
			out.Badges[i].Unlocked = b.Unlocked
		}
	}

	missions := map[string]catalog.Mission{}
	for _, m := range stored.Missions {
		missions[m.ID] = m
	}
	for i := range out.Missions {
		if m, ok := missions[out.Missions[i].ID]; ok {
			out.Missions[i].Progress = m.Progress
			out.Missions[i].Completed = m.Completed
		}
	}

	return out
}
