package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/danghaonhien/reword-this/internal/engine"
	"github.com/danghaonhien/reword-this/internal/events"
	"github.com/danghaonhien/reword-this/internal/limits"
)

// RunDashboard runs the interactive missions/rewards dashboard. It subscribes
// to the bus so progress made through the engine shows up live; the listeners
// only forward the event type onto a channel and never call back into the
// engine.
func RunDashboard(ctx context.Context, eng *engine.Engine, lim *limits.Limiter, bus *events.Bus, out io.Writer) error {
	changes := make(chan events.Type, 64)
	notify := func(t events.Type) func(any) {
		return func(any) {
			select {
			case changes <- t:
			default:
			}
		}
	}
	var unsubs []func()
	for _, t := range []events.Type{
		events.XPUpdate, events.LevelUpdate, events.StreakUpdate,
		events.ToneUnlock, events.ThemeUnlock, events.BadgeUnlock,
		events.MissionUpdate, events.RewardUnlocked,
	} {
		unsubs = append(unsubs, bus.Subscribe(t, notify(t)))
	}
	defer func() {
		for _, u := range unsubs {
			u()
		}
		close(changes)
	}()

	m := newDashboardModel(ctx, eng, lim, changes)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
