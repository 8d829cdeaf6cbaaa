package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/sadopc/timevora/internal/store"
)

type timerMode int

const (
	modeStudy timerMode = iota
	modeBreak
)

type timerPhase int

const (
	phaseSetting timerPhase = iota
	phaseRunning
	phasePaused
)

var (
	studyPresets = []int{25, 45, 60, 90}
	breakPresets = []int{5, 10, 15, 30}
)

// defaultTopic labels sessions completed without an explicit topic.
const defaultTopic = "Timer Study Session"

const maxMinutes = 999

// timerModel is a countdown timer. Only study time is recorded; break
// countdowns end without creating a session. Ticks arrive from the
// app's single one-second loop and are ignored unless running, so no
// timer logic can fire after a stop or mode switch.
type timerModel struct {
	store *store.Store

	mode      timerMode
	phase     timerPhase
	minutes   int
	remaining int
	presetIdx int

	length        textinput.Model // custom minutes entry
	lengthFocused bool

	topic        textinput.Model
	topicFocused bool
	suggestions  []string
	suggestIdx   int
}

func newTimerModel(s *store.Store) timerModel {
	topic := textinput.New()
	topic.Placeholder = "focus topic (optional)"
	topic.CharLimit = 60
	topic.Width = 36

	length := textinput.New()
	length.Placeholder = "minutes"
	length.CharLimit = 3
	length.Width = 7

	return timerModel{
		store:     s,
		mode:      modeStudy,
		phase:     phaseSetting,
		minutes:   studyPresets[0],
		remaining: studyPresets[0] * 60,
		topic:     topic,
		length:    length,
	}
}

func (t timerModel) presets() []int {
	if t.mode == modeBreak {
		return breakPresets
	}
	return studyPresets
}

func (t timerModel) modeDefault() int {
	if t.mode == modeBreak {
		return 5
	}
	return 25
}

func (t timerModel) running() bool { return t.phase == phaseRunning }
func (t timerModel) paused() bool  { return t.phase == phasePaused }

// capturing reports whether a text input owns the keyboard, so the app
// must not treat keys as global shortcuts.
func (t timerModel) capturing() bool {
	return t.topicFocused || t.lengthFocused
}

// activeSeconds is the elapsed study time of a running or paused timer,
// not yet persisted. Break time never counts.
func (t timerModel) activeSeconds() int {
	if t.mode != modeStudy || t.phase == phaseSetting {
		return 0
	}
	return t.minutes*60 - t.remaining
}

func (t *timerModel) setMinutes(m int) {
	if m < 1 {
		m = t.modeDefault()
	}
	if m > maxMinutes {
		m = maxMinutes
	}
	t.minutes = m
	t.remaining = m * 60
}

func (t *timerModel) reset() {
	t.phase = phaseSetting
	t.remaining = t.minutes * 60
}

func (t *timerModel) switchMode() {
	if t.mode == modeStudy {
		t.mode = modeBreak
	} else {
		t.mode = modeStudy
	}
	t.presetIdx = 0
	t.setMinutes(t.modeDefault())
	t.reset()
}

func (t timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if t.phase != phaseRunning {
			return t, nil
		}
		t.remaining--
		if t.remaining <= 0 {
			return t.complete()
		}
		return t, nil

	case tea.KeyMsg:
		if t.lengthFocused {
			return t.updateLength(msg)
		}
		if t.topicFocused {
			return t.updateTopic(msg)
		}
		return t.updateKeys(msg)
	}
	return t, nil
}

func (t timerModel) updateKeys(msg tea.KeyMsg) (timerModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Start):
		return t.start()

	case key.Matches(msg, keys.Pause):
		switch t.phase {
		case phaseRunning:
			t.phase = phasePaused
		case phasePaused:
			t.phase = phaseRunning
		}
		return t, nil

	case key.Matches(msg, keys.Stop):
		return t.stopAndSave()

	case key.Matches(msg, keys.Mode):
		if t.phase != phaseSetting {
			return t, status("Stop the timer before switching modes")
		}
		t.switchMode()
		return t, nil

	case key.Matches(msg, keys.Topic):
		if t.mode != modeStudy || t.phase == phaseRunning {
			return t, nil
		}
		return t.focusTopic()

	case key.Matches(msg, keys.Edit):
		if t.phase != phaseSetting {
			return t, nil
		}
		t.lengthFocused = true
		t.length.SetValue("")
		return t, t.length.Focus()

	case key.Matches(msg, keys.Left):
		if t.phase == phaseSetting {
			if t.presetIdx > 0 {
				t.presetIdx--
			}
			t.setMinutes(t.presets()[t.presetIdx])
		}
		return t, nil

	case key.Matches(msg, keys.Right):
		if t.phase == phaseSetting {
			if t.presetIdx < len(t.presets())-1 {
				t.presetIdx++
			}
			t.setMinutes(t.presets()[t.presetIdx])
		}
		return t, nil
	}
	return t, nil
}

func (t timerModel) start() (timerModel, tea.Cmd) {
	switch t.phase {
	case phaseRunning:
		return t, nil
	case phasePaused:
		t.phase = phaseRunning
		return t, nil
	}
	t.topicFocused = false
	t.topic.Blur()
	t.phase = phaseRunning
	return t, nil
}

// complete fires when the countdown reaches zero. Study sessions are
// recorded at their full configured length.
func (t timerModel) complete() (timerModel, tea.Cmd) {
	mode := t.mode
	if mode == modeBreak {
		t.reset()
		return t, tea.Batch(
			status("Break over — back to it"),
			func() tea.Msg { return timerDoneMsg{mode: mode} },
		)
	}

	cmd := t.save(t.minutes * 60)
	t.reset()
	t.topic.SetValue("")
	return t, tea.Batch(
		cmd,
		func() tea.Msg { return timerDoneMsg{mode: mode} },
	)
}

// stopAndSave records the elapsed study time so far. Stopping with
// nothing elapsed, or during a break, records nothing.
func (t timerModel) stopAndSave() (timerModel, tea.Cmd) {
	if t.phase == phaseSetting {
		return t, nil
	}
	elapsed := t.activeSeconds()
	var cmd tea.Cmd
	if t.mode == modeStudy && elapsed > 0 {
		cmd = t.save(elapsed)
		t.topic.SetValue("")
	}
	t.reset()
	return t, cmd
}

func (t timerModel) save(duration int) tea.Cmd {
	topic := strings.TrimSpace(t.topic.Value())
	if topic == "" {
		topic = defaultTopic
	}
	now := time.Now()
	sess := store.Session{
		ID:        uuid.NewString(),
		Date:      store.Day(now),
		StartTime: now.Format("15:04:05"),
		Duration:  duration,
		Topic:     topic,
	}
	s := t.store
	return func() tea.Msg {
		if err := s.SaveSession(sess); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return sessionSavedMsg{session: sess}
	}
}

// --- Custom length entry ---

func (t timerModel) updateLength(msg tea.KeyMsg) (timerModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Enter):
		t.lengthFocused = false
		t.length.Blur()
		// Anything non-numeric or below one minute falls back to the
		// mode default.
		n, err := strconv.Atoi(strings.TrimSpace(t.length.Value()))
		if err != nil || n < 1 {
			n = t.modeDefault()
		}
		t.setMinutes(n)
		return t, nil
	}
	var cmd tea.Cmd
	t.length, cmd = t.length.Update(msg)
	return t, cmd
}

// --- Topic entry ---

func (t timerModel) focusTopic() (timerModel, tea.Cmd) {
	t.topicFocused = true
	t.suggestIdx = -1
	t.suggestions, _ = t.store.RecentTopics()
	return t, t.topic.Focus()
}

func (t timerModel) updateTopic(msg tea.KeyMsg) (timerModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		t.topicFocused = false
		t.topic.Blur()
		return t, nil

	case key.Matches(msg, keys.Enter):
		if t.suggestIdx >= 0 && t.suggestIdx < len(t.suggestions) {
			t.topic.SetValue(t.suggestions[t.suggestIdx])
		}
		t.topicFocused = false
		t.topic.Blur()
		return t, nil

	case key.Matches(msg, keys.Down):
		if t.suggestIdx < len(t.suggestions)-1 {
			t.suggestIdx++
		}
		return t, nil

	case key.Matches(msg, keys.Up):
		if t.suggestIdx > -1 {
			t.suggestIdx--
		}
		return t, nil

	case msg.String() == "ctrl+d":
		if t.suggestIdx >= 0 && t.suggestIdx < len(t.suggestions) {
			t.store.RemoveRecentTopic(t.suggestions[t.suggestIdx])
			t.suggestions, _ = t.store.RecentTopics()
			if t.suggestIdx >= len(t.suggestions) {
				t.suggestIdx = len(t.suggestions) - 1
			}
		}
		return t, nil
	}

	var cmd tea.Cmd
	t.topic, cmd = t.topic.Update(msg)
	t.suggestIdx = -1
	return t, cmd
}

// --- View ---

func (t timerModel) view(w int) string {
	var rows []string

	studyTab := inactiveTabStyle.Render("Study")
	breakTab := inactiveTabStyle.Render("Break")
	if t.mode == modeStudy {
		studyTab = activeTabStyle.Render("Study")
	} else {
		breakTab = activeTabStyle.Render("Break")
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Bottom, studyTab, breakTab))

	clock := formatClock(t.remaining)
	switch t.phase {
	case phaseRunning:
		rows = append(rows, timerRunningStyle.Width(w-6).Render(clock))
		rows = append(rows, successStyle.Width(w-6).Align(lipgloss.Center).Render("●  RUNNING"))
	case phasePaused:
		rows = append(rows, timerPausedStyle.Width(w-6).Render(clock))
		rows = append(rows, warningStyle.Width(w-6).Align(lipgloss.Center).Render("⏸  PAUSED"))
	default:
		rows = append(rows, timerStyle.Width(w-6).Render(clock))
		if t.lengthFocused {
			rows = append(rows, t.length.View())
		} else {
			rows = append(rows, t.renderPresets(w-6))
		}
	}

	if t.mode == modeStudy {
		rows = append(rows, "")
		rows = append(rows, t.renderTopic())
	}

	style := panelStyle
	if t.phase == phaseRunning {
		style = activePanelStyle
	}
	return style.Width(w).Render(lipgloss.JoinVertical(lipgloss.Center, rows...))
}

func (t timerModel) renderPresets(w int) string {
	var parts []string
	for i, p := range t.presets() {
		label := fmt.Sprintf(" %dm ", p)
		if i == t.presetIdx {
			parts = append(parts, selectedItemStyle.Render(label))
		} else {
			parts = append(parts, mutedStyle.Render(label))
		}
	}
	row := strings.Join(parts, " ")
	hint := mutedStyle.Render("←/→ presets · e custom · s start")
	return lipgloss.NewStyle().Width(w).Align(lipgloss.Center).Render(row + "\n" + hint)
}

func (t timerModel) renderTopic() string {
	if !t.topicFocused {
		topic := strings.TrimSpace(t.topic.Value())
		if topic == "" {
			return mutedStyle.Render("t: set topic")
		}
		return highlightStyle.Render("Topic: " + topic)
	}

	rows := []string{t.topic.View()}
	for i, s := range t.suggestions {
		cursor := "  "
		style := mutedStyle
		if i == t.suggestIdx {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+s))
	}
	if len(t.suggestions) > 0 {
		rows = append(rows, mutedStyle.Render("↑/↓ pick · ctrl+d forget · enter done"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
