// Package stats computes the derived aggregates the views render:
// daily totals, goal progress, personal-best efficiency, weekly
// figures, habit streaks. Everything is a pure function of its inputs
// and an explicit "now"; results are recomputed on demand, never
// cached.
package stats

import (
	"math"
	"time"

	"github.com/sadopc/timevora/internal/store"
)

// TodaySeconds sums today's recorded sessions plus the seconds of an
// in-progress, not-yet-saved timer.
func TodaySeconds(sessions []store.Session, activeSeconds int, now time.Time) int {
	today := store.Day(now)
	total := activeSeconds
	for _, s := range sessions {
		if s.Date == today {
			total += s.Duration
		}
	}
	return total
}

// Progress describes a two-segment goal bar. Percent is unbounded
// above 100; the Overdrive segment fills completely at 300%.
type Progress struct {
	Percent   int
	Base      float64 // 0..1 fill of the primary segment
	Overdrive float64 // 0..1 fill of the overdrive segment
}

// DailyProgress measures todaySeconds against the daily target.
func DailyProgress(todaySeconds, targetMinutes int) Progress {
	if targetMinutes <= 0 {
		return Progress{}
	}
	todayMinutes := float64(todaySeconds) / 60
	pct := int(math.Round(todayMinutes / float64(targetMinutes) * 100))

	p := Progress{Percent: pct}
	p.Base = math.Min(float64(pct), 100) / 100
	if pct > 100 {
		p.Overdrive = math.Min(float64(pct-100)/200, 1)
	}
	return p
}

// Efficiency compares today's total against the best prior day.
type Efficiency struct {
	Percent     int
	BestSeconds int  // best prior-day total; the daily target when no history exists
	NewRecord   bool // today strictly beats BestSeconds and history exists
	Base        float64
	Overdrive   float64
}

// BestEfficiency derives the efficiency figures from all retained
// sessions. Days strictly before today form the historical baseline; a
// first day of data can never claim a record.
func BestEfficiency(sessions []store.Session, activeSeconds, targetMinutes int, now time.Time) Efficiency {
	today := store.Day(now)

	daily := make(map[string]int)
	for _, s := range sessions {
		daily[s.Date] += s.Duration
	}

	best := 0
	hasHistory := false
	for day, total := range daily {
		if day == today {
			continue
		}
		hasHistory = true
		if total > best {
			best = total
		}
	}
	if !hasHistory {
		best = targetMinutes * 60
	}

	todayTotal := daily[today] + activeSeconds

	divisor := best
	if divisor == 0 {
		divisor = 1
	}
	dec := float64(todayTotal) / float64(divisor)

	e := Efficiency{
		Percent:     int(math.Floor(dec * 100)),
		BestSeconds: best,
		NewRecord:   hasHistory && todayTotal > best,
	}
	e.Base = math.Min(dec, 1)
	if dec > 1 {
		e.Overdrive = math.Min((dec-1)/2, 1)
	}
	return e
}

// RoutinePercent is the share of routine items completed today.
func RoutinePercent(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}
