package store

import "time"

// RetentionDays is the trailing window beyond which time-series
// collections are discarded.
const RetentionDays = 90

// CutoffDay returns the oldest retained day: now minus the retention
// window, at local midnight.
func CutoffDay(now time.Time) string {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return Day(midnight.AddDate(0, 0, -RetentionDays))
}

// PruneSessions drops sessions dated before the cutoff.
func PruneSessions(sessions []Session, now time.Time) []Session {
	cutoff := CutoffDay(now)
	var kept []Session
	for _, sess := range sessions {
		if sess.Date >= cutoff {
			kept = append(kept, sess)
		}
	}
	return kept
}

// PruneTasks expires dated today-tasks. Habit tasks carry their
// completion history inside the entity and are never pruned here,
// regardless of age.
func PruneTasks(tasks []Task, now time.Time) []Task {
	cutoff := CutoffDay(now)
	var kept []Task
	for _, t := range tasks {
		if t.Kind == TaskToday && t.Date != "" && t.Date < cutoff {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

// PruneCompletions restricts the day-to-ids map to retained days.
func PruneCompletions(c Completions, now time.Time) Completions {
	cutoff := CutoffDay(now)
	kept := make(Completions, len(c))
	for day, ids := range c {
		if day >= cutoff {
			kept[day] = ids
		}
	}
	return kept
}
