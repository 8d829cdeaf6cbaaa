package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/timevora/internal/stats"
	"github.com/sadopc/timevora/internal/store"
)

type dayTotal struct {
	date    string
	seconds int
	count   int
}

type historyModel struct {
	store  *store.Store
	width  int
	height int

	sessions []store.Session
	days     []dayTotal
	cursor   int

	// drill-down into one day's sessions
	openDay       string
	sessionCursor int

	chart barchart.Model
}

func newHistoryModel(s *store.Store) historyModel {
	return historyModel{
		store: s,
		chart: barchart.New(60, 10),
	}
}

func (m *historyModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type historyDataMsg struct {
	sessions []store.Session
}

func (m historyModel) refresh() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		sessions, _ := s.Sessions()
		return historyDataMsg{sessions: sessions}
	}
}

// rebuild aggregates the retained sessions into per-day totals, most
// recent day first.
func (m *historyModel) rebuild() {
	totals := make(map[string]*dayTotal)
	for _, s := range m.sessions {
		t, ok := totals[s.Date]
		if !ok {
			t = &dayTotal{date: s.Date}
			totals[s.Date] = t
		}
		t.seconds += s.Duration
		t.count++
	}

	m.days = m.days[:0]
	for _, t := range totals {
		m.days = append(m.days, *t)
	}
	slices.SortFunc(m.days, func(a, b dayTotal) int {
		return strings.Compare(b.date, a.date)
	})

	if m.cursor >= len(m.days) {
		m.cursor = max(0, len(m.days)-1)
	}
	m.buildChart()
}

func (m *historyModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	m.chart = barchart.New(chartWidth, 10)

	start := stats.WeekStart(time.Now())

	var bars []barchart.BarData
	for d := start; d.Before(start.AddDate(0, 0, 7)); d = d.AddDate(0, 0, 1) {
		day := store.Day(d)
		var secs int
		for _, s := range m.sessions {
			if s.Date == day {
				secs += s.Duration
			}
		}

		style := baseBarStyle
		if secs == 0 {
			style = trackBarStyle
		}
		bars = append(bars, barchart.BarData{
			Label: d.Format("Mon"),
			Values: []barchart.BarValue{{
				Name:  day,
				Value: float64(secs) / 3600.0,
				Style: style,
			}},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m historyModel) daySessions(day string) []store.Session {
	var out []store.Session
	for _, s := range m.sessions {
		if s.Date == day {
			out = append(out, s)
		}
	}
	return out
}

func (m historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		m.sessions = msg.sessions
		m.rebuild()
		if m.openDay != "" && len(m.daySessions(m.openDay)) == 0 {
			m.openDay = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.openDay != "" {
			return m.updateDayView(msg)
		}
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.days)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if m.cursor < len(m.days) {
				m.openDay = m.days[m.cursor].date
				m.sessionCursor = 0
			}
		}
	}
	return m, nil
}

func (m historyModel) updateDayView(msg tea.KeyMsg) (historyModel, tea.Cmd) {
	shown := m.daySessions(m.openDay)
	switch {
	case key.Matches(msg, keys.Back):
		m.openDay = ""
	case key.Matches(msg, keys.Up):
		if m.sessionCursor > 0 {
			m.sessionCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.sessionCursor < len(shown)-1 {
			m.sessionCursor++
		}
	case key.Matches(msg, keys.Delete):
		if m.sessionCursor < len(shown) {
			return m.deleteSession(shown[m.sessionCursor].ID)
		}
	}
	return m, nil
}

func (m historyModel) deleteSession(id string) (historyModel, tea.Cmd) {
	s := m.store
	return m, func() tea.Msg {
		if err := s.DeleteSession(id); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return sessionDeletedMsg{}
	}
}

// --- View ---

func (m historyModel) view() string {
	w := m.width - 4

	if m.openDay != "" {
		return m.renderDayView(w)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Study History"), "  ",
		mutedStyle.Render("this week"),
	)

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")
	rows = append(rows, m.chart.View())
	rows = append(rows, "")

	if len(m.days) == 0 {
		rows = append(rows, mutedStyle.Render("  No sessions recorded yet"))
	} else {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %10s %10s", "Date", "Studied", "Sessions")))
		rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 40))))
		for i, d := range m.days {
			cursor := "  "
			if i == m.cursor {
				cursor = selectedItemStyle.Render("> ")
			}
			rows = append(rows, fmt.Sprintf("%s%-12s %10s %10d",
				cursor, d.date, highlightStyle.Render(formatDual(d.seconds)), d.count))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: view day  ↑/↓: navigate"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m historyModel) renderDayView(w int) string {
	shown := m.daySessions(m.openDay)

	var total int
	for _, s := range shown {
		total += s.Duration
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render(m.openDay), "  ",
		highlightStyle.Render(formatDual(total)),
		mutedStyle.Render(fmt.Sprintf("  %d sessions", len(shown))),
	)

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")

	for i, s := range shown {
		cursor := "  "
		if i == m.sessionCursor {
			cursor = selectedItemStyle.Render("> ")
		}
		topic := s.Topic
		if topic == "" {
			topic = "—"
		}
		rows = append(rows, fmt.Sprintf("%s%-10s %10s  %s",
			cursor, s.StartTime, highlightStyle.Render(formatDual(s.Duration)),
			normalItemStyle.Render(topic)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  d: delete  esc: back"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
