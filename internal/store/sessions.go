package store

import (
	"slices"
	"strings"
)

// Sessions returns all retained study sessions, most recent first.
func (s *Store) Sessions() ([]Session, error) {
	sessions, err := readJSON(s, keySessions, []Session(nil))
	if err != nil {
		return nil, err
	}
	return PruneSessions(sessions, s.now()), nil
}

// SaveSessions persists the full list, dropping anything outside the
// retention window.
func (s *Store) SaveSessions(sessions []Session) error {
	return writeJSON(s, keySessions, PruneSessions(sessions, s.now()))
}

// SaveSession prepends one completed session. A session with a non-empty
// topic also records that topic as a recent-topic suggestion.
func (s *Store) SaveSession(sess Session) error {
	sessions, err := s.Sessions()
	if err != nil {
		return err
	}
	if err := s.SaveSessions(append([]Session{sess}, sessions...)); err != nil {
		return err
	}
	if topic := strings.TrimSpace(sess.Topic); topic != "" {
		return s.SaveRecentTopic(topic)
	}
	return nil
}

// DeleteSession removes the session with the given id, if present.
func (s *Store) DeleteSession(id string) error {
	sessions, err := s.Sessions()
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(sessions, func(x Session) bool { return x.ID == id })
	return s.SaveSessions(kept)
}
