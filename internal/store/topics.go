package store

import "strings"

// maxRecentTopics caps the autocomplete suggestion list.
const maxRecentTopics = 10

// RecentTopics returns up to 10 session topics, most recent first.
func (s *Store) RecentTopics() ([]string, error) {
	return readJSON(s, keyRecentTopics, []string(nil))
}

// SaveRecentTopic moves topic to the front of the suggestion list.
// Matching is case-insensitive so "math" and "Math" do not coexist.
func (s *Store) SaveRecentTopic(topic string) error {
	topics, err := s.RecentTopics()
	if err != nil {
		return err
	}
	trimmed := strings.TrimSpace(topic)
	updated := []string{trimmed}
	for _, t := range topics {
		if strings.EqualFold(t, trimmed) {
			continue
		}
		updated = append(updated, t)
	}
	if len(updated) > maxRecentTopics {
		updated = updated[:maxRecentTopics]
	}
	return writeJSON(s, keyRecentTopics, updated)
}

// RemoveRecentTopic drops entries exactly equal to topic.
func (s *Store) RemoveRecentTopic(topic string) error {
	topics, err := s.RecentTopics()
	if err != nil {
		return err
	}
	var kept []string
	for _, t := range topics {
		if t != topic {
			kept = append(kept, t)
		}
	}
	return writeJSON(s, keyRecentTopics, kept)
}
