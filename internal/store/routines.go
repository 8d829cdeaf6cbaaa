package store

// Routines returns the daily checklist. Routine items are not subject
// to retention; they live until deleted.
func (s *Store) Routines() ([]Routine, error) {
	return readJSON(s, keyRoutines, []Routine(nil))
}

// SaveRoutines persists the checklist verbatim.
func (s *Store) SaveRoutines(routines []Routine) error {
	return writeJSON(s, keyRoutines, routines)
}

// RoutineCompletions returns the per-day completion sets, restricted to
// the retention window.
func (s *Store) RoutineCompletions() (Completions, error) {
	c, err := readJSON(s, keyCompletions, Completions{})
	if err != nil {
		return nil, err
	}
	return PruneCompletions(c, s.now()), nil
}

// SaveRoutineCompletions persists the completion map after pruning.
func (s *Store) SaveRoutineCompletions(c Completions) error {
	return writeJSON(s, keyCompletions, PruneCompletions(c, s.now()))
}
