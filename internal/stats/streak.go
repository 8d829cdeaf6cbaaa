package stats

import (
	"time"

	"github.com/sadopc/timevora/internal/store"
)

// Streak counts consecutive completed days ending today or yesterday.
// A habit untouched both today and yesterday has no current streak.
func Streak(completedDays []string, now time.Time) int {
	if len(completedDays) == 0 {
		return 0
	}
	set := make(map[string]bool, len(completedDays))
	for _, d := range completedDays {
		set[d] = true
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := midnight.AddDate(0, 0, -1)

	var check time.Time
	switch {
	case set[store.Day(midnight)]:
		check = midnight
	case set[store.Day(yesterday)]:
		check = yesterday
	default:
		return 0
	}

	streak := 0
	for set[store.Day(check)] {
		streak++
		check = check.AddDate(0, 0, -1)
	}
	return streak
}

// MasterStreak is the best current streak across all habit tasks, the
// headline number on the task board.
func MasterStreak(tasks []store.Task, now time.Time) int {
	best := 0
	for _, t := range tasks {
		if t.Kind != store.TaskHabit {
			continue
		}
		if s := Streak(t.CompletedDates, now); s > best {
			best = s
		}
	}
	return best
}
