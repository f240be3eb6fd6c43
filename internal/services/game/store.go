package game

import "github.com/mcoot/quizbingo/internal/model"

// Store holds the canonical session. It performs no validation; the engine
// is the only writer and only ever stores sessions produced by Resolve or
// the entry points.
type Store struct {
	current *model.Session
}

// NewStore creates a store holding the given session
func NewStore(session *model.Session) *Store {
	return &Store{current: session}
}

// Get returns a copy of the current session
func (s *Store) Get() *model.Session {
	if s.current == nil {
		return nil
	}
	return s.current.Clone()
}

// Replace swaps in a new session
func (s *Store) Replace(session *model.Session) {
	s.current = session
}
