package store

import (
	"testing"
	"time"
)

var retNow = time.Date(2026, time.March, 15, 14, 30, 0, 0, time.Local)

func day(offset int) string {
	return Day(retNow.AddDate(0, 0, offset))
}

// ============================================================
// Cutoff
// ============================================================

func TestCutoffDay(t *testing.T) {
	cutoff := CutoffDay(retNow)
	if cutoff != day(-RetentionDays) {
		t.Fatalf("expected %s, got %s", day(-RetentionDays), cutoff)
	}

	// The cutoff is anchored at local midnight, so the time of day
	// never shifts which calendar day survives.
	late := time.Date(2026, time.March, 15, 23, 59, 59, 0, time.Local)
	if CutoffDay(late) != cutoff {
		t.Fatalf("cutoff moved with time of day: %s vs %s", CutoffDay(late), cutoff)
	}
}

// ============================================================
// Sessions
// ============================================================

func TestPruneSessionsBoundary(t *testing.T) {
	sessions := []Session{
		{ID: "old", Date: day(-RetentionDays - 1), Duration: 60},
		{ID: "edge", Date: day(-RetentionDays), Duration: 60},
		{ID: "new", Date: day(0), Duration: 60},
	}

	kept := PruneSessions(sessions, retNow)
	if len(kept) != 2 {
		t.Fatalf("expected 2 kept, got %d", len(kept))
	}
	if kept[0].ID != "edge" || kept[1].ID != "new" {
		t.Fatalf("unexpected survivors: %+v", kept)
	}

	// Pruning an already-pruned list changes nothing.
	again := PruneSessions(kept, retNow)
	if len(again) != len(kept) {
		t.Fatalf("prune not idempotent: %d vs %d", len(again), len(kept))
	}
}

func TestSessionsPrunedOnReadAndWrite(t *testing.T) {
	s := newTestStore(t)
	fixNow(s, retNow)

	if err := s.SaveSessions([]Session{
		{ID: "old", Date: day(-RetentionDays - 10), Duration: 60},
		{ID: "new", Date: day(0), Duration: 60},
	}); err != nil {
		t.Fatal(err)
	}

	sessions, err := s.Sessions()
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || sessions[0].ID != "new" {
		t.Fatalf("expected only the recent session, got %+v", sessions)
	}
}

// ============================================================
// Tasks
// ============================================================

func TestPruneTasksSparesHabits(t *testing.T) {
	old := day(-RetentionDays - 30)
	tasks := []Task{
		{ID: "expired", Kind: TaskToday, Date: old},
		{ID: "undated", Kind: TaskToday},
		{ID: "habit", Kind: TaskHabit, CompletedDates: []string{old}},
		{ID: "fresh", Kind: TaskToday, Date: day(0)},
	}

	kept := PruneTasks(tasks, retNow)
	if len(kept) != 3 {
		t.Fatalf("expected 3 kept, got %d: %+v", len(kept), kept)
	}
	for _, task := range kept {
		if task.ID == "expired" {
			t.Fatal("expired dated task survived")
		}
	}
	// Habit completion history is part of the entity and survives intact.
	for _, task := range kept {
		if task.ID == "habit" && len(task.CompletedDates) != 1 {
			t.Fatalf("habit history was trimmed: %+v", task)
		}
	}
}

// ============================================================
// Routine completions
// ============================================================

func TestPruneCompletions(t *testing.T) {
	c := Completions{
		day(-RetentionDays - 1): {"r1"},
		day(-RetentionDays):     {"r1"},
		day(0):                  {"r1", "r2"},
	}

	kept := PruneCompletions(c, retNow)
	if len(kept) != 2 {
		t.Fatalf("expected 2 days kept, got %d", len(kept))
	}
	if _, ok := kept[day(-RetentionDays-1)]; ok {
		t.Fatal("day beyond cutoff survived")
	}
	if len(kept[day(0)]) != 2 {
		t.Fatalf("today's ids were altered: %v", kept[day(0)])
	}
}

func TestCompletionsPrunedOnSave(t *testing.T) {
	s := newTestStore(t)
	fixNow(s, retNow)

	if err := s.SaveRoutineCompletions(Completions{
		day(-RetentionDays - 5): {"r1"},
		day(0):                  {"r1"},
	}); err != nil {
		t.Fatal(err)
	}
	back, err := s.RoutineCompletions()
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 1 {
		t.Fatalf("expected 1 day, got %v", back)
	}
}
