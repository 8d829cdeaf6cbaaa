package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/timevora/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTasks
	viewRoutine
	viewHistory
	viewSettings
)

var viewNames = []string{"Dashboard", "Tasks", "Routine", "History", "Settings"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

type sessionSavedMsg struct {
	session store.Session
}

type sessionDeletedMsg struct{}

type timerDoneMsg struct {
	mode timerMode
}

// --- Commands ---

func status(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errStatus(err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
}

// --- Helpers ---

// formatClock renders seconds as MM:SS for countdowns.
func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// formatDual renders seconds in the largest two relevant units, e.g.
// "1h 30m", "12m 5s", "45s".
func formatDual(secs int) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// renderDualBar draws a goal bar of the given width: a base segment,
// an overdrive segment layered from the left on top of it, and empty
// track for the rest. Fractions are 0..1.
func renderDualBar(width int, base, overdrive float64) string {
	if width < 1 {
		return ""
	}
	baseCells := int(base * float64(width))
	overCells := int(overdrive * float64(width))
	if baseCells > width {
		baseCells = width
	}
	if overCells > width {
		overCells = width
	}

	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i < overCells:
			b.WriteString(overdriveBarStyle.Render("█"))
		case i < baseCells:
			b.WriteString(baseBarStyle.Render("█"))
		default:
			b.WriteString(trackBarStyle.Render("░"))
		}
	}
	return b.String()
}
