package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/sadopc/timevora/internal/stats"
	"github.com/sadopc/timevora/internal/store"
)

// sentinelTopic marks the synthetic session "mark done" creates to top
// today's total up to the goal. Marking done again removes it.
const sentinelTopic = "Goal Completed Manually"

type dashboardModel struct {
	store  *store.Store
	timer  timerModel
	width  int
	height int

	sessions []store.Session
	settings store.Settings
}

func newDashboardModel(s *store.Store) dashboardModel {
	return dashboardModel{
		store:    s,
		timer:    newTimerModel(s),
		settings: store.Settings{DailyTargetMinutes: store.DefaultTargetMinutes},
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) isRunning() bool    { return d.timer.running() }
func (d dashboardModel) isPaused() bool     { return d.timer.paused() }
func (d dashboardModel) isCapturing() bool  { return d.timer.capturing() }
func (d dashboardModel) activeSeconds() int { return d.timer.activeSeconds() }

type dashboardDataMsg struct {
	sessions []store.Session
	settings store.Settings
}

func (d dashboardModel) loadData() tea.Cmd {
	s := d.store
	return func() tea.Msg {
		sessions, _ := s.Sessions()
		settings, _ := s.Settings()
		return dashboardDataMsg{sessions: sessions, settings: settings}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.sessions = msg.sessions
		d.settings = msg.settings
		return d, nil

	case tickMsg:
		var cmd tea.Cmd
		d.timer, cmd = d.timer.update(msg)
		return d, cmd

	case sessionSavedMsg, sessionDeletedMsg:
		return d, d.loadData()

	case tea.KeyMsg:
		if d.timer.capturing() {
			var cmd tea.Cmd
			d.timer, cmd = d.timer.update(msg)
			return d, cmd
		}
		if key.Matches(msg, keys.MarkDone) {
			return d.markDone()
		}
		var cmd tea.Cmd
		d.timer, cmd = d.timer.update(msg)
		return d, cmd
	}
	return d, nil
}

// manualSession finds today's sentinel session, if one exists.
func (d dashboardModel) manualSession() *store.Session {
	today := store.Day(time.Now())
	for i := range d.sessions {
		if d.sessions[i].Date == today && d.sessions[i].Topic == sentinelTopic {
			return &d.sessions[i]
		}
	}
	return nil
}

// markDone toggles manual goal completion. If a sentinel session exists
// it is removed; otherwise one is created covering exactly the seconds
// still missing. Already at or past the goal, there is nothing to add.
func (d dashboardModel) markDone() (dashboardModel, tea.Cmd) {
	s := d.store

	if manual := d.manualSession(); manual != nil {
		id := manual.ID
		return d, func() tea.Msg {
			if err := s.DeleteSession(id); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			return sessionDeletedMsg{}
		}
	}

	now := time.Now()
	target := d.settings.DailyTargetMinutes * 60
	total := stats.TodaySeconds(d.sessions, d.timer.activeSeconds(), now)
	if total >= target {
		return d, status("Daily goal already met")
	}

	sess := store.Session{
		ID:        uuid.NewString(),
		Date:      store.Day(now),
		StartTime: now.Format("15:04:05"),
		Duration:  target - total,
		Topic:     sentinelTopic,
	}
	return d, func() tea.Msg {
		if err := s.SaveSession(sess); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return sessionSavedMsg{session: sess}
	}
}

// --- View ---

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}
	w := d.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		d.timer.view(w),
		d.renderProgressPanel(w),
		d.renderPerformancePanel(w),
	)
}

func (d dashboardModel) renderProgressPanel(w int) string {
	now := time.Now()
	todaySecs := stats.TodaySeconds(d.sessions, d.timer.activeSeconds(), now)
	p := stats.DailyProgress(todaySecs, d.settings.DailyTargetMinutes)

	title := titleStyle.Render("Daily Progress")
	pct := highlightStyle.Render(fmt.Sprintf("%d%%", p.Percent))
	badge := d.progressBadge(p.Percent)
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", pct, "  ", badge)

	bar := renderDualBar(w-8, p.Base, p.Overdrive)

	detail := fmt.Sprintf("%s studied today · goal %dm",
		formatDual(todaySecs), d.settings.DailyTargetMinutes)
	hint := "d: mark done"
	if d.manualSession() != nil {
		hint = "d: restore record"
	}
	footer := mutedStyle.Render(detail + "   " + hint)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", bar, footer),
	)
}

func (d dashboardModel) progressBadge(pct int) string {
	switch {
	case pct >= 100 && d.manualSession() != nil:
		return warningStyle.Render("MANUAL COMPLETE")
	case pct >= 300:
		return successStyle.Render("LEGENDARY STUDY")
	case pct >= 200:
		return successStyle.Render("ELITE PERFORMANCE")
	case pct >= 100:
		return successStyle.Render("ACHIEVED")
	default:
		return mutedStyle.Render("ONGOING")
	}
}

func (d dashboardModel) renderPerformancePanel(w int) string {
	now := time.Now()
	active := d.timer.activeSeconds()
	wk := stats.Week(d.sessions, active, now)
	eff := stats.BestEfficiency(d.sessions, active, d.settings.DailyTargetMinutes, now)

	title := titleStyle.Render("Performance")

	cols := fmt.Sprintf(
		"  %-16s %s\n  %-16s %s\n  %-16s %d / 7 days\n  %-16s %s",
		"Total week", highlightStyle.Render(formatDual(wk.TotalSeconds)),
		"Avg / day", highlightStyle.Render(formatDual(wk.AvgSeconds)),
		"Consistency", wk.DaysStudied,
		"Best this week", highlightStyle.Render(formatDual(wk.BestSeconds)),
	)

	effLabel := fmt.Sprintf("Efficiency %d%% of personal best (%s)",
		eff.Percent, formatDual(eff.BestSeconds))
	if eff.NewRecord {
		effLabel = successStyle.Render(effLabel + "  ★ New record!")
	} else {
		effLabel = mutedStyle.Render(effLabel)
	}
	bar := renderDualBar(w-8, eff.Base, eff.Overdrive)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", cols, "", bar, effLabel),
	)
}
