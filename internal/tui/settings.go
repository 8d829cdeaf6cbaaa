package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/timevora/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   store.Settings
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	dailyTarget *string
	userName    *string
}

func newSettingsModel(s *store.Store) settingsModel {
	dt, un := "", ""
	return settingsModel{
		store:       s,
		settings:    store.Settings{DailyTargetMinutes: store.DefaultTargetMinutes},
		dailyTarget: &dt,
		userName:    &un,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings store.Settings
}

// settingsChangedMsg tells the rest of the app to reload the target.
type settingsChangedMsg struct{}

func (s settingsModel) refresh() tea.Cmd {
	st := s.store
	return func() tea.Msg {
		settings, _ := st.Settings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.dailyTarget = strconv.Itoa(s.settings.DailyTargetMinutes)
	*s.userName = s.settings.UserName

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Daily study goal (minutes)").Value(s.dailyTarget),
			huh.NewInput().Title("Your name (optional)").Value(s.userName),
		).Title("Settings"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s.save()
	}
	return s, cmd
}

func (s settingsModel) save() (settingsModel, tea.Cmd) {
	// Non-numeric or sub-minute input falls to the one-minute floor.
	target, err := strconv.Atoi(strings.TrimSpace(*s.dailyTarget))
	if err != nil || target < 1 {
		target = 1
	}

	updated := store.Settings{
		DailyTargetMinutes: target,
		UserName:           strings.TrimSpace(*s.userName),
	}
	if err := s.store.SaveSettings(updated); err != nil {
		return s, errStatus(err)
	}
	s.settings = updated
	return s, tea.Batch(s.refresh(), func() tea.Msg { return settingsChangedMsg{} })
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")

	name := s.settings.UserName
	if name == "" {
		name = mutedStyle.Render("not set")
	} else {
		name = highlightStyle.Render(name)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %s %s",
		lipgloss.NewStyle().Width(24).Render("Daily study goal"),
		highlightStyle.Render(fmt.Sprintf("%d min", s.settings.DailyTargetMinutes))))
	rows = append(rows, fmt.Sprintf("  %s %s",
		lipgloss.NewStyle().Width(24).Render("Name"), name))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
