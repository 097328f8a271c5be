package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/danghaonhien/reword-this/internal/catalog"
	"github.com/danghaonhien/reword-this/internal/engine"
	"github.com/danghaonhien/reword-this/internal/events"
	"github.com/danghaonhien/reword-this/internal/limits"
	"github.com/danghaonhien/reword-this/internal/ui"
)

const (
	tabMissions = iota
	tabRewards
)

type dashboardModel struct {
	ctx context.Context
	eng *engine.Engine
	lim *limits.Limiter

	width  int
	height int

	tab      int
	selected int

	state   engine.State
	active  *catalog.Theme
	changes chan events.Type

	lastLog string
}

type refreshedMsg struct {
	state  engine.State
	active *catalog.Theme
}

type busMsg struct {
	t events.Type
}

func newDashboardModel(ctx context.Context, eng *engine.Engine, lim *limits.Limiter, changes chan events.Type) dashboardModel {
	return dashboardModel{
		ctx:     ctx,
		eng:     eng,
		lim:     lim,
		changes: changes,
		state:   eng.Snapshot(),
		active:  eng.ActiveTheme(),
		lastLog: "Loaded.",
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange blocks on the bus-fed channel so external mutations show up
// without polling.
func (m dashboardModel) waitForChange() tea.Cmd {
	return func() tea.Msg {
		t, ok := <-m.changes
		if !ok {
			return nil
		}
		return busMsg{t: t}
	}
}

func (m dashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{state: m.eng.Snapshot(), active: m.eng.ActiveTheme()}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case busMsg:
		m.lastLog = fmt.Sprintf("%s at %s.", msg.t, time.Now().Format("15:04:05"))
		return m, tea.Batch(m.refreshCmd(), m.waitForChange())
	case refreshedMsg:
		m.state = msg.state
		m.active = msg.active
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab", "left", "right", "h", "l":
			if m.tab == tabMissions {
				m.tab = tabRewards
			} else {
				m.tab = tabMissions
			}
			m.selected = 0
			return m, nil
		case "r":
			m.lastLog = "Refreshed."
			return m, m.refreshCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.rows())-1 {
				m.selected++
			}
			return m, nil
		case "enter", " ":
			return m.activate()
		}
	}
	return m, nil
}

// rewardRow is one selectable line on the rewards tab.
type rewardRow struct {
	kind     string // "tone", "theme", "badge"
	id       string
	label    string
	unlocked bool
}

func (m dashboardModel) rows() []rewardRow {
	if m.tab == tabMissions {
		return nil
	}
	var out []rewardRow
	for _, t := range m.state.Tones {
		out = append(out, rewardRow{kind: "tone", id: t.ID, label: t.Name, unlocked: t.Unlocked})
	}
	for _, th := range m.state.Themes {
		label := th.Name
		if m.active != nil && m.active.ID == th.ID {
			label += " (active)"
		}
		out = append(out, rewardRow{kind: "theme", id: th.ID, label: label, unlocked: th.Unlocked})
	}
	for _, b := range m.state.Badges {
		label := fmt.Sprintf("%s %d/%d", b.Name, b.Progress, b.Required)
		if m.state.ActiveBadge == b.ID {
			label += " (shown)"
		}
		out = append(out, rewardRow{kind: "badge", id: b.ID, label: label, unlocked: b.Unlocked})
	}
	return out
}

// activate applies the selected reward: themes and badges become active,
// tones are display-only here.
func (m dashboardModel) activate() (tea.Model, tea.Cmd) {
	rows := m.rows()
	if m.selected < 0 || m.selected >= len(rows) {
		return m, nil
	}
	row := rows[m.selected]
	if !row.unlocked {
		m.lastLog = "Still locked."
		return m, nil
	}
	switch row.kind {
	case "theme":
		for i := range m.state.Themes {
			if m.state.Themes[i].ID == row.id {
				t := m.state.Themes[i]
				m.eng.SetActiveTheme(m.ctx, &t)
			}
		}
		m.lastLog = "Theme set: " + row.id
	case "badge":
		m.eng.SetActiveBadge(m.ctx, row.id)
		m.lastLog = "Badge shown: " + row.id
	default:
		m.lastLog = "Tones are picked per rewrite."
		return m, nil
	}
	return m, m.refreshCmd()
}

func (m dashboardModel) View() string {
	header := m.renderHeader()
	sidebar := m.renderSidebar()
	var main string
	if m.tab == tabMissions {
		main = m.renderMissions()
	} else {
		main = m.renderRewards()
	}
	footer := "\n" + m.lastLog

	// Simple 2-column layout.
	leftW := 26
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m dashboardModel) renderHeader() string {
	s := m.state
	need := s.Level * 100
	bar := ui.ProgressBar(s.XP, need, 30)
	return fmt.Sprintf("Reword This | %s | Level %d | XP %d/%d %s | Streak %d",
		catalog.LevelTitle(s.Level), s.Level, s.XP, need, bar, s.Streak)
}

func (m dashboardModel) renderSidebar() string {
	lines := []string{"Usage today"}
	lines = append(lines, "- rewrites: "+remaining(m.lim.RewritesRemaining()))
	lines = append(lines, "- surprise: "+remaining(m.lim.SurpriseMeRemaining()))
	lines = append(lines, "- battles:  "+remaining(m.lim.BattlesRemaining()))
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- tab: missions/rewards")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- enter: set theme/badge")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func remaining(n int) string {
	if n < 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%d left", n)
}

func (m dashboardModel) renderMissions() string {
	out := []string{"Daily Missions"}
	for _, ms := range m.state.Missions {
		mark := " "
		if ms.Completed {
			mark = "x"
		}
		out = append(out, fmt.Sprintf("[%s] %s %s %d/%d (+%d xp)",
			mark, ms.Title, ui.ProgressBar(ms.Progress, ms.Goal, 14), ms.Progress, ms.Goal, ms.Reward.Value))
	}
	if next := catalog.NextBadge(m.state.Badges); next != nil {
		out = append(out, "")
		out = append(out, fmt.Sprintf("Closest badge: %s (%d/%d)", next.Name, next.Progress, next.Required))
	}
	return strings.Join(out, "\n")
}

func (m dashboardModel) renderRewards() string {
	out := []string{"Rewards"}
	rows := m.rows()
	if len(rows) == 0 {
		out = append(out, "(empty)")
		return strings.Join(out, "\n")
	}
	sel := m.selected
	if sel >= len(rows) {
		sel = len(rows) - 1
	}
	for i, row := range rows {
		cursor := "  "
		if i == sel {
			cursor = "> "
		}
		lock := "🔒"
		if row.unlocked {
			lock = "  "
		}
		out = append(out, fmt.Sprintf("%s%s[%s] %s", cursor, lock, row.kind, row.label))
	}
	return strings.Join(out, "\n")
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
