package store

import (
	"slices"
	"time"
)

// DayFormat is the calendar-day layout used everywhere a date is stored.
const DayFormat = "2006-01-02"

// Day returns t's local calendar day as a DayFormat string.
func Day(t time.Time) string {
	return t.Format(DayFormat)
}

// Session is one completed interval of tracked study time. Immutable
// after creation except for deletion.
type Session struct {
	ID        string `json:"id"`
	Date      string `json:"date"`      // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM:SS
	Duration  int    `json:"duration"`  // seconds
	Topic     string `json:"topic,omitempty"`
}

type TaskKind string

const (
	// TaskToday is a one-off to-do for a specific day, tracked by the
	// Completed flag.
	TaskToday TaskKind = "today"
	// TaskHabit is a recurring to-do tracked by which calendar days it
	// was completed on.
	TaskHabit TaskKind = "habit"
)

// Task is a board entry. The two kinds track completion through
// different fields; callers go through DoneOn/Toggle so the wrong one
// is never consulted.
type Task struct {
	ID             string   `json:"id"`
	Text           string   `json:"text"`
	Completed      bool     `json:"completed"`
	CreatedAt      int64    `json:"createdAt"` // unix milliseconds
	Kind           TaskKind `json:"type"`
	Date           string   `json:"date,omitempty"`           // today tasks only
	CompletedDates []string `json:"completedDates,omitempty"` // habit tasks only
}

// DoneOn reports whether the task counts as completed for the given day.
func (t Task) DoneOn(day string) bool {
	if t.Kind == TaskHabit {
		return slices.Contains(t.CompletedDates, day)
	}
	return t.Completed
}

// Toggle returns a copy with the completion state for day flipped.
func (t Task) Toggle(day string) Task {
	if t.Kind == TaskHabit {
		if slices.Contains(t.CompletedDates, day) {
			t.CompletedDates = slices.DeleteFunc(slices.Clone(t.CompletedDates), func(d string) bool {
				return d == day
			})
		} else {
			t.CompletedDates = append(slices.Clone(t.CompletedDates), day)
		}
		return t
	}
	t.Completed = !t.Completed
	return t
}

// Routine is a recurring daily checklist entry. Duration is a free-text
// label, not a computed quantity.
type Routine struct {
	ID        string `json:"id"`
	Time      string `json:"time"`
	Activity  string `json:"activity"`
	Duration  string `json:"duration"`
	Category  string `json:"category"`
	CreatedAt int64  `json:"createdAt"` // unix milliseconds
}

// Completions maps a calendar day to the routine IDs completed that day.
type Completions map[string][]string

type Settings struct {
	DailyTargetMinutes int    `json:"dailyTargetMinutes"`
	UserName           string `json:"userName,omitempty"`
}

// DefaultTargetMinutes is the daily study goal before the user sets one.
const DefaultTargetMinutes = 60
