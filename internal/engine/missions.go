package engine

import (
	"context"

	"github.com/danghaonhien/reword-this/internal/catalog"
	"github.com/danghaonhien/reword-this/internal/events"
)

func (e *Engine) findMissionByKind(kind catalog.MissionKind) *catalog.Mission {
	for i := range e.state.Missions {
		if e.state.Missions[i].Kind == kind {
			return &e.state.Missions[i]
		}
	}
	return nil
}

// advanceMission adds delta to a mission's progress, capped at its goal. The
// first time the goal is reached the mission completes and its XP reward is
// awarded, once. Completed missions are left alone.
func (e *Engine) advanceMission(m *catalog.Mission, delta int) {
	if m == nil || m.Completed || delta <= 0 {
		return
	}
	m.Progress += delta
	if m.Progress > m.Goal {
		m.Progress = m.Goal
	}
	if m.Progress >= m.Goal {
		m.Completed = true
		e.awardMissionReward(m)
	}
	e.emit(events.MissionUpdate, *m)
}

func (e *Engine) awardMissionReward(m *catalog.Mission) {
	switch m.Reward.Type {
	case catalog.RewardXP:
		e.addXP(m.Reward.Value)
	default:
		e.log.Debug("unhandled mission reward type", "mission", m.ID, "type", m.Reward.Type)
	}
}

// UpdateMissions advances the mission of the given kind by one. Kinds with no
// mission and already-completed missions silently do nothing; that is the
// documented failure mode for external callers.
func (e *Engine) UpdateMissions(ctx context.Context, kind catalog.MissionKind) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resetDayIfNeeded()
	e.updateMission(kind)
	e.finish(ctx)
}

func (e *Engine) updateMission(kind catalog.MissionKind) {
	m := e.findMissionByKind(kind)
	if m == nil {
		e.log.Debug("no mission for kind", "kind", kind)
		return
	}
	if m.Completed {
		return
	}
	e.advanceMission(m, 1)
}

// CompleteMission force-completes a mission by id, awarding its reward once.
// No-op when the mission is unknown or already completed.
func (e *Engine) CompleteMission(ctx context.Context, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resetDayIfNeeded()
	for i := range e.state.Missions {
		m := &e.state.Missions[i]
		if m.ID != id {
			continue
		}
		if m.Completed {
			return
		}
		m.Progress = m.Goal
		m.Completed = true
		e.awardMissionReward(m)
		e.emit(events.MissionUpdate, *m)
		e.finish(ctx)
		return
	}
	e.log.Debug("no mission with id", "id", id)
}
