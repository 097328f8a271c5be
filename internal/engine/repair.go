package engine

import "github.com/danghaonhien/reword-this/internal/catalog"

// repairState clamps corrupt progress values back into range and restores
// any mission definitions missing from a stored blob. Out-of-range entries
// are treated as recoverable corruption: progress resets to zero and the
// completed/unlocked flag is cleared. This is the one path allowed to revert
// an unlock, and every repair is logged.
func (e *Engine) repairState() {
	if e.state.XP < 0 {
		e.log.Warn("negative xp, clamping", "xp", e.state.XP)
		e.state.XP = 0
	}
	if e.state.Level < 1 {
		e.log.Warn("invalid level, clamping", "level", e.state.Level)
		e.state.Level = 1
	}
	if e.state.Streak < 0 {
		e.log.Warn("negative streak, clamping", "streak", e.state.Streak)
		e.state.Streak = 0
	}

	have := map[catalog.MissionKind]bool{}
	for _, m := range e.state.Missions {
		have[m.Kind] = true
	}
	for _, def := range catalog.Missions() {
		if !have[def.Kind] {
			e.log.Warn("mission definition missing, restoring", "kind", def.Kind)
			e.state.Missions = append(e.state.Missions, def)
		}
	}

	for i := range e.state.Missions {
		m := &e.state.Missions[i]
		if m.Progress < 0 || m.Progress > m.Goal {
			e.log.Warn("mission progress out of range, resetting", "mission", m.ID, "progress", m.Progress)
			m.Progress = 0
			m.Completed = false
		}
	}

	for i := range e.state.Badges {
		b := &e.state.Badges[i]
		if b.Progress < 0 || b.Progress > b.Required {
			e.log.Warn("badge progress out of range, resetting", "badge", b.ID, "progress", b.Progress)
			b.Progress = 0
			b.Unlocked = false
		}
	}
}
