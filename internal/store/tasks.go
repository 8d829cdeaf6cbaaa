package store

// Tasks returns the task board, with expired dated today-tasks dropped.
func (s *Store) Tasks() ([]Task, error) {
	tasks, err := readJSON(s, keyTasks, []Task(nil))
	if err != nil {
		return nil, err
	}
	return PruneTasks(tasks, s.now()), nil
}

// SaveTasks persists the full task list after retention pruning.
func (s *Store) SaveTasks(tasks []Task) error {
	return writeJSON(s, keyTasks, PruneTasks(tasks, s.now()))
}
