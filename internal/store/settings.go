package store

// Settings returns the singleton settings record, lazily defaulted on
// first read.
func (s *Store) Settings() (Settings, error) {
	return readJSON(s, keySettings, Settings{DailyTargetMinutes: DefaultTargetMinutes})
}

// SaveSettings persists the settings record verbatim. Input clamping
// happens at the edge that collects the value.
func (s *Store) SaveSettings(settings Settings) error {
	return writeJSON(s, keySettings, settings)
}
