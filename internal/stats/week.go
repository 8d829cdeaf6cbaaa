package stats

import (
	"math"
	"time"

	"github.com/sadopc/timevora/internal/store"
)

// WeekStats aggregates the Sunday-through-Saturday week containing
// "now". Active timer seconds count toward today.
type WeekStats struct {
	TotalSeconds int
	DaysStudied  int // distinct days with any recorded time
	AvgSeconds   int // TotalSeconds over DaysStudied (floored to 1)
	BestSeconds  int // best single day, today's active seconds included
}

// WeekStart returns the most recent Sunday at local midnight.
func WeekStart(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// Week computes the weekly aggregates. A running timer marks today as
// studied even though its seconds already feed the total; both reads of
// the live value are intentional.
func Week(sessions []store.Session, activeSeconds int, now time.Time) WeekStats {
	start := store.Day(WeekStart(now))
	today := store.Day(now)

	totals := make(map[string]int)
	for _, s := range sessions {
		if s.Date >= start {
			totals[s.Date] += s.Duration
		}
	}

	total := activeSeconds
	for _, secs := range totals {
		total += secs
	}

	days := len(totals)
	if activeSeconds > 0 {
		if _, ok := totals[today]; !ok {
			days++
		}
	}

	totals[today] += activeSeconds
	best := 0
	for _, secs := range totals {
		if secs > best {
			best = secs
		}
	}

	divisor := days
	if divisor < 1 {
		divisor = 1
	}
	return WeekStats{
		TotalSeconds: total,
		DaysStudied:  days,
		AvgSeconds:   int(math.Round(float64(total) / float64(divisor))),
		BestSeconds:  best,
	}
}
