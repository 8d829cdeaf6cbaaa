package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/sadopc/timevora/internal/stats"
	"github.com/sadopc/timevora/internal/store"
)

type routineModel struct {
	store  *store.Store
	width  int
	height int

	routines    []store.Routine
	completions store.Completions
	cursor      int

	formActive bool
	form       *huh.Form
	editingID  string // routine being edited, empty for a new entry

	// Form field pointers (survive value copies)
	fTime     *string
	fActivity *string
	fDuration *string
	fCategory *string
}

func newRoutineModel(s *store.Store) routineModel {
	ft, fa, fd, fc := "", "", "", ""
	return routineModel{
		store:     s,
		fTime:     &ft,
		fActivity: &fa,
		fDuration: &fd,
		fCategory: &fc,
	}
}

func (m *routineModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type routineDataMsg struct {
	routines    []store.Routine
	completions store.Completions
}

func (m routineModel) refresh() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		routines, _ := s.Routines()
		completions, _ := s.RoutineCompletions()
		return routineDataMsg{routines: routines, completions: completions}
	}
}

// sorted returns the checklist ordered by time label; items without a
// time sort last as "anytime".
func (m routineModel) sorted() []store.Routine {
	out := slices.Clone(m.routines)
	slices.SortStableFunc(out, func(a, b store.Routine) int {
		at, bt := a.Time, b.Time
		if at == "" {
			at = "99:99"
		}
		if bt == "" {
			bt = "99:99"
		}
		return strings.Compare(at, bt)
	})
	return out
}

func (m routineModel) doneToday() []string {
	return m.completions[store.Day(time.Now())]
}

func (m routineModel) update(msg tea.Msg) (routineModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case routineDataMsg:
		m.routines = msg.routines
		m.completions = msg.completions
		if m.cursor >= len(m.routines) {
			m.cursor = max(0, len(m.routines)-1)
		}
		return m, nil

	case tea.KeyMsg:
		shown := m.sorted()
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(shown)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Toggle):
			if m.cursor < len(shown) {
				return m.toggle(shown[m.cursor].ID)
			}
		case key.Matches(msg, keys.New):
			return m.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if m.cursor < len(shown) {
				r := shown[m.cursor]
				return m.showForm(&r)
			}
		case key.Matches(msg, keys.Delete):
			if m.cursor < len(shown) {
				return m.delete(shown[m.cursor].ID)
			}
		}
	}
	return m, nil
}

// toggle flips the routine's membership in today's completion set.
func (m routineModel) toggle(id string) (routineModel, tea.Cmd) {
	day := store.Day(time.Now())
	updated := make(store.Completions, len(m.completions))
	for d, ids := range m.completions {
		updated[d] = ids
	}

	ids := slices.Clone(updated[day])
	if i := slices.Index(ids, id); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
	} else {
		ids = append(ids, id)
	}
	updated[day] = ids

	if err := m.store.SaveRoutineCompletions(updated); err != nil {
		return m, errStatus(err)
	}
	m.completions = updated
	return m, nil
}

func (m routineModel) delete(id string) (routineModel, tea.Cmd) {
	var kept []store.Routine
	for _, r := range m.routines {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if err := m.store.SaveRoutines(kept); err != nil {
		return m, errStatus(err)
	}
	m.routines = kept
	return m, m.refresh()
}

// --- Form ---

func (m routineModel) showForm(edit *store.Routine) (routineModel, tea.Cmd) {
	if edit != nil {
		m.editingID = edit.ID
		*m.fTime = edit.Time
		*m.fActivity = edit.Activity
		*m.fDuration = edit.Duration
		*m.fCategory = edit.Category
	} else {
		m.editingID = ""
		*m.fTime, *m.fActivity, *m.fDuration, *m.fCategory = "", "", "", ""
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Time (optional, e.g. 07:30)").Value(m.fTime),
			huh.NewInput().Title("Activity").Value(m.fActivity).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("activity is required")
					}
					return nil
				}),
			huh.NewInput().Title("Duration label (e.g. 30 min)").Value(m.fDuration),
			huh.NewInput().Title("Category (optional)").Value(m.fCategory),
		).Title("Routine entry"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m routineModel) updateForm(msg tea.Msg) (routineModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m.submitForm()
	}
	return m, cmd
}

func (m routineModel) submitForm() (routineModel, tea.Cmd) {
	activity := strings.TrimSpace(*m.fActivity)
	if activity == "" {
		return m, nil
	}

	var updated []store.Routine
	if m.editingID != "" {
		updated = slices.Clone(m.routines)
		for i := range updated {
			if updated[i].ID == m.editingID {
				updated[i].Time = strings.TrimSpace(*m.fTime)
				updated[i].Activity = activity
				updated[i].Duration = strings.TrimSpace(*m.fDuration)
				updated[i].Category = strings.TrimSpace(*m.fCategory)
			}
		}
	} else {
		updated = append(slices.Clone(m.routines), store.Routine{
			ID:        uuid.NewString(),
			Time:      strings.TrimSpace(*m.fTime),
			Activity:  activity,
			Duration:  strings.TrimSpace(*m.fDuration),
			Category:  strings.TrimSpace(*m.fCategory),
			CreatedAt: time.Now().UnixMilli(),
		})
	}

	if err := m.store.SaveRoutines(updated); err != nil {
		return m, errStatus(err)
	}
	m.routines = updated
	return m, m.refresh()
}

// --- View ---

func (m routineModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Routine entry")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	done := m.doneToday()
	pct := stats.RoutinePercent(len(done), len(m.routines))

	title := titleStyle.Render("Daily Routine")
	progress := highlightStyle.Render(fmt.Sprintf("%d%%", pct)) +
		mutedStyle.Render(fmt.Sprintf("  %d of %d done", len(done), len(m.routines)))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", progress)

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")

	if len(m.routines) == 0 {
		rows = append(rows, mutedStyle.Render("  Nothing scheduled — press n to add"))
	}

	for i, r := range m.sorted() {
		rows = append(rows, m.renderRoutine(r, i == m.cursor, done))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  space: toggle  d: delete"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m routineModel) renderRoutine(r store.Routine, selected bool, done []string) string {
	isDone := slices.Contains(done, r.ID)

	check := "☐"
	if isDone {
		check = "☑"
	}
	cursor := "  "
	if selected {
		cursor = selectedItemStyle.Render("> ")
	}

	timeLabel := r.Time
	if timeLabel == "" {
		timeLabel = "anytime"
	}

	activity := normalItemStyle.Render(r.Activity)
	if isDone {
		activity = doneItemStyle.Render(r.Activity)
	}

	meta := r.Duration
	if r.Category != "" {
		if meta != "" {
			meta += " · "
		}
		meta += r.Category
	}
	if meta != "" {
		meta = mutedStyle.Render("  " + meta)
	}

	return fmt.Sprintf("%s%s %s  %s%s",
		cursor, check, highlightStyle.Render(fmt.Sprintf("%-8s", timeLabel)), activity, meta)
}
