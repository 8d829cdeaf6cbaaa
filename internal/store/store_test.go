package store

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// fixNow pins the store clock to a known instant.
func fixNow(s *Store, now time.Time) {
	s.now = func() time.Time { return now }
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Fresh store: every collection comes back empty, not as an error.
	sessions, err := s.Sessions()
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions, got %d", len(sessions))
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/timevora.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSettings(Settings{DailyTargetMinutes: 90}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — data persists across open/close.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	settings, err := s2.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if settings.DailyTargetMinutes != 90 {
		t.Fatalf("expected target 90 after reopen, got %d", settings.DailyTargetMinutes)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestCorruptValueFallsBackToDefault(t *testing.T) {
	s := newTestStore(t)

	if err := s.kv.Set(keySessions, "{definitely not json"); err != nil {
		t.Fatal(err)
	}
	sessions, err := s.Sessions()
	if err != nil {
		t.Fatalf("corrupt value must not error: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected empty sessions, got %d", len(sessions))
	}

	if err := s.kv.Set(keySettings, "[]"); err != nil {
		t.Fatal(err)
	}
	settings, err := s.Settings()
	if err != nil {
		t.Fatalf("mistyped value must not error: %v", err)
	}
	if settings.DailyTargetMinutes != DefaultTargetMinutes {
		t.Fatalf("expected default target, got %d", settings.DailyTargetMinutes)
	}
}

// ============================================================
// Sessions
// ============================================================

func TestSaveSessionPrepends(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	today := Day(now)

	first := Session{ID: "a", Date: today, StartTime: "09:00:00", Duration: 600}
	second := Session{ID: "b", Date: today, StartTime: "10:00:00", Duration: 300}
	if err := s.SaveSession(first); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSession(second); err != nil {
		t.Fatal(err)
	}

	sessions, err := s.Sessions()
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != "b" || sessions[1].ID != "a" {
		t.Fatalf("expected newest first, got %q then %q", sessions[0].ID, sessions[1].ID)
	}
}

func TestSaveSessionRecordsTopic(t *testing.T) {
	s := newTestStore(t)
	today := Day(time.Now())

	if err := s.SaveSession(Session{ID: "a", Date: today, Duration: 60, Topic: "  Calculus  "}); err != nil {
		t.Fatal(err)
	}
	topics, err := s.RecentTopics()
	if err != nil {
		t.Fatal(err)
	}
	if len(topics) != 1 || topics[0] != "Calculus" {
		t.Fatalf("expected trimmed topic recorded, got %v", topics)
	}

	// Topicless sessions leave the suggestion list alone.
	if err := s.SaveSession(Session{ID: "b", Date: today, Duration: 60}); err != nil {
		t.Fatal(err)
	}
	topics, _ = s.RecentTopics()
	if len(topics) != 1 {
		t.Fatalf("expected 1 topic, got %v", topics)
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)
	today := Day(time.Now())

	s.SaveSession(Session{ID: "a", Date: today, Duration: 60})
	s.SaveSession(Session{ID: "b", Date: today, Duration: 60})

	if err := s.DeleteSession("a"); err != nil {
		t.Fatal(err)
	}
	sessions, _ := s.Sessions()
	if len(sessions) != 1 || sessions[0].ID != "b" {
		t.Fatalf("expected only session b, got %+v", sessions)
	}

	// Deleting a missing id is a no-op.
	if err := s.DeleteSession("nope"); err != nil {
		t.Fatal(err)
	}
}

// ============================================================
// Tasks
// ============================================================

func TestTaskToggle(t *testing.T) {
	today := Day(time.Now())

	single := Task{ID: "a", Kind: TaskToday, Date: today}
	single = single.Toggle(today)
	if !single.DoneOn(today) {
		t.Fatal("today task should be done after toggle")
	}
	single = single.Toggle(today)
	if single.DoneOn(today) {
		t.Fatal("today task should be undone after second toggle")
	}

	habit := Task{ID: "b", Kind: TaskHabit}
	habit = habit.Toggle(today)
	if !habit.DoneOn(today) {
		t.Fatal("habit should be done today after toggle")
	}
	if habit.DoneOn("2020-01-01") {
		t.Fatal("habit completion is per-day")
	}
	habit = habit.Toggle(today)
	if habit.DoneOn(today) {
		t.Fatal("habit toggle should remove today's completion")
	}
}

func TestTasksRoundTrip(t *testing.T) {
	s := newTestStore(t)
	today := Day(time.Now())

	in := []Task{
		{ID: "a", Text: "read ch. 4", Kind: TaskToday, Date: today, CreatedAt: 1},
		{ID: "b", Text: "morning run", Kind: TaskHabit, CompletedDates: []string{today}, CreatedAt: 2},
	}
	if err := s.SaveTasks(in); err != nil {
		t.Fatal(err)
	}
	out, err := s.Tasks()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(out))
	}
	if out[1].Kind != TaskHabit || !out[1].DoneOn(today) {
		t.Fatalf("habit lost its completion history: %+v", out[1])
	}
}

// ============================================================
// Routines
// ============================================================

func TestRoutinesAndCompletions(t *testing.T) {
	s := newTestStore(t)
	today := Day(time.Now())

	routines := []Routine{
		{ID: "r1", Time: "07:30", Activity: "stretch", CreatedAt: 1},
		{ID: "r2", Activity: "review notes", CreatedAt: 2},
	}
	if err := s.SaveRoutines(routines); err != nil {
		t.Fatal(err)
	}
	got, err := s.Routines()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 routines, got %d", len(got))
	}

	c := Completions{today: {"r1"}}
	if err := s.SaveRoutineCompletions(c); err != nil {
		t.Fatal(err)
	}
	back, err := s.RoutineCompletions()
	if err != nil {
		t.Fatal(err)
	}
	if len(back[today]) != 1 || back[today][0] != "r1" {
		t.Fatalf("unexpected completions: %v", back)
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaultAndRoundTrip(t *testing.T) {
	s := newTestStore(t)

	settings, err := s.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if settings.DailyTargetMinutes != DefaultTargetMinutes {
		t.Fatalf("expected default %d, got %d", DefaultTargetMinutes, settings.DailyTargetMinutes)
	}

	if err := s.SaveSettings(Settings{DailyTargetMinutes: 120, UserName: "Deniz"}); err != nil {
		t.Fatal(err)
	}
	settings, _ = s.Settings()
	if settings.DailyTargetMinutes != 120 || settings.UserName != "Deniz" {
		t.Fatalf("unexpected settings: %+v", settings)
	}
}

// ============================================================
// Recent topics
// ============================================================

func TestRecentTopicsDedupeAndCap(t *testing.T) {
	s := newTestStore(t)

	s.SaveRecentTopic("math")
	s.SaveRecentTopic("physics")
	// Case-insensitive duplicate moves to the front with the new casing.
	s.SaveRecentTopic("Math")

	topics, err := s.RecentTopics()
	if err != nil {
		t.Fatal(err)
	}
	if len(topics) != 2 {
		t.Fatalf("expected 2 topics, got %v", topics)
	}
	if topics[0] != "Math" || topics[1] != "physics" {
		t.Fatalf("unexpected order: %v", topics)
	}

	for i := 0; i < 15; i++ {
		s.SaveRecentTopic(Day(time.Now().AddDate(0, 0, -i)))
	}
	topics, _ = s.RecentTopics()
	if len(topics) != maxRecentTopics {
		t.Fatalf("expected cap of %d, got %d", maxRecentTopics, len(topics))
	}
}

func TestRemoveRecentTopicExactMatch(t *testing.T) {
	s := newTestStore(t)
	s.SaveRecentTopic("Math")

	// Removal is case-sensitive; "math" does not match "Math".
	if err := s.RemoveRecentTopic("math"); err != nil {
		t.Fatal(err)
	}
	topics, _ := s.RecentTopics()
	if len(topics) != 1 {
		t.Fatalf("expected topic to survive, got %v", topics)
	}

	if err := s.RemoveRecentTopic("Math"); err != nil {
		t.Fatal(err)
	}
	topics, _ = s.RecentTopics()
	if len(topics) != 0 {
		t.Fatalf("expected empty list, got %v", topics)
	}
}
