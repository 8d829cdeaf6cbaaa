package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/sadopc/timevora/internal/stats"
	"github.com/sadopc/timevora/internal/store"
)

type tasksModel struct {
	store  *store.Store
	width  int
	height int

	tasks  []store.Task
	board  store.TaskKind // which view: today or habits
	cursor int

	input        textinput.Model
	inputFocused bool
}

func newTasksModel(s *store.Store) tasksModel {
	ti := textinput.New()
	ti.Placeholder = "what's the goal for today?"
	ti.CharLimit = 120
	ti.Width = 48

	return tasksModel{
		store: s,
		board: store.TaskToday,
		input: ti,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m tasksModel) formActive() bool { return m.inputFocused }

type tasksDataMsg struct {
	tasks []store.Task
}

func (m tasksModel) refresh() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		tasks, _ := s.Tasks()
		return tasksDataMsg{tasks: tasks}
	}
}

// displayed returns the tasks visible on the current board. The today
// board shows today's dated tasks plus every habit; the habit board
// shows habits only.
func (m tasksModel) displayed() []store.Task {
	today := store.Day(time.Now())
	var out []store.Task
	for _, t := range m.tasks {
		switch m.board {
		case store.TaskToday:
			if (t.Kind == store.TaskToday && t.Date == today) || t.Kind == store.TaskHabit {
				out = append(out, t)
			}
		default:
			if t.Kind == store.TaskHabit {
				out = append(out, t)
			}
		}
	}
	return out
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksDataMsg:
		m.tasks = msg.tasks
		if n := len(m.displayed()); m.cursor >= n {
			m.cursor = max(0, n-1)
		}
		return m, nil

	case tea.KeyMsg:
		if m.inputFocused {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m tasksModel) updateKeys(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	shown := m.displayed()
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(shown)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Switch):
		if m.board == store.TaskToday {
			m.board = store.TaskHabit
			m.input.Placeholder = "create a recurring habit..."
		} else {
			m.board = store.TaskToday
			m.input.Placeholder = "what's the goal for today?"
		}
		m.cursor = 0
	case key.Matches(msg, keys.New):
		m.inputFocused = true
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, keys.Toggle):
		if m.cursor < len(shown) {
			return m.toggle(shown[m.cursor].ID)
		}
	case key.Matches(msg, keys.Delete):
		if m.cursor < len(shown) {
			return m.delete(shown[m.cursor].ID)
		}
	}
	return m, nil
}

func (m tasksModel) updateInput(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.inputFocused = false
		m.input.Blur()
		return m, nil

	case key.Matches(msg, keys.Enter):
		// Blank text is rejected silently; the input stays open.
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.inputFocused = false
		m.input.Blur()
		m.input.SetValue("")
		return m.add(text)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tasksModel) add(text string) (tasksModel, tea.Cmd) {
	now := time.Now()
	task := store.Task{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: now.UnixMilli(),
		Kind:      m.board,
	}
	if m.board == store.TaskToday {
		task.Date = store.Day(now)
	}
	return m.saveAll(append([]store.Task{task}, m.tasks...))
}

func (m tasksModel) toggle(id string) (tasksModel, tea.Cmd) {
	today := store.Day(time.Now())
	updated := make([]store.Task, len(m.tasks))
	for i, t := range m.tasks {
		if t.ID == id {
			t = t.Toggle(today)
		}
		updated[i] = t
	}
	return m.saveAll(updated)
}

func (m tasksModel) delete(id string) (tasksModel, tea.Cmd) {
	var kept []store.Task
	for _, t := range m.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return m.saveAll(kept)
}

func (m tasksModel) saveAll(tasks []store.Task) (tasksModel, tea.Cmd) {
	if err := m.store.SaveTasks(tasks); err != nil {
		return m, errStatus(err)
	}
	m.tasks = tasks
	return m, m.refresh()
}

// --- View ---

func (m tasksModel) view() string {
	w := m.width - 4
	today := store.Day(time.Now())
	now := time.Now()

	title := titleStyle.Render("Task Board")
	master := stats.MasterStreak(m.tasks, now)
	var streak string
	if master > 0 {
		streak = streakStyle.Render(fmt.Sprintf("🔥 %d day streak", master))
	} else {
		streak = mutedStyle.Render("no active streak")
	}

	todayTab := inactiveTabStyle.Render("Today")
	habitTab := inactiveTabStyle.Render("Habits")
	if m.board == store.TaskToday {
		todayTab = activeTabStyle.Render("Today")
	} else {
		habitTab = activeTabStyle.Render("Habits")
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		title, "  ", streak, "  ", todayTab, habitTab)

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")

	if m.inputFocused {
		rows = append(rows, m.input.View())
		rows = append(rows, mutedStyle.Render("enter: add  esc: cancel"))
		rows = append(rows, "")
	}

	shown := m.displayed()
	if len(shown) == 0 {
		rows = append(rows, mutedStyle.Render("  Empty board — press n to add"))
	}
	for i, t := range shown {
		rows = append(rows, m.renderTask(t, i == m.cursor, today, now))
	}

	if !m.inputFocused {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("  n: new  space: toggle  d: delete  v: today/habits"))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m tasksModel) renderTask(t store.Task, selected bool, today string, now time.Time) string {
	done := t.DoneOn(today)

	check := "☐"
	if done {
		check = "☑"
	}
	cursor := "  "
	if selected {
		cursor = selectedItemStyle.Render("> ")
	}

	text := normalItemStyle.Render(t.Text)
	if done {
		text = doneItemStyle.Render(t.Text)
	}

	var meta string
	if t.Kind == store.TaskHabit {
		streak := stats.Streak(t.CompletedDates, now)
		badge := mutedStyle.Render(fmt.Sprintf(" 🔥 %d", streak))
		if streak > 0 {
			badge = streakStyle.Render(fmt.Sprintf(" 🔥 %d", streak))
		}
		meta = mutedStyle.Render(fmt.Sprintf("  habit · %d total", len(t.CompletedDates))) + badge
	} else {
		meta = mutedStyle.Render("  single")
	}

	return fmt.Sprintf("%s%s %s%s", cursor, check, text, meta)
}
