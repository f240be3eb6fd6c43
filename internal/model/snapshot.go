package model

import "time"

// SnapshotVersion is bumped whenever the persisted layout changes
const SnapshotVersion = 1

// Snapshot is the persisted form of a session. Transient signals are excluded.
type Snapshot struct {
	Version     int       `json:"version"`
	Teams       []Team    `json:"teams"`
	Panels      []Panel   `json:"panels"`
	Assignment  []Quiz    `json:"assignment"`
	CurrentTeam int       `json:"current_team"`
	Concluded   bool      `json:"concluded"`
	Ending      Ending    `json:"ending,omitempty"`
	SavedAt     time.Time `json:"saved_at"`
}

// SnapshotOf captures the durable part of a session
func SnapshotOf(s *Session, savedAt time.Time) *Snapshot {
	c := s.Clone()
	return &Snapshot{
		Version:     SnapshotVersion,
		Teams:       c.Teams,
		Panels:      c.Panels,
		Assignment:  c.Assignment,
		CurrentTeam: c.CurrentTeam,
		Concluded:   c.Concluded,
		Ending:      c.Ending,
		SavedAt:     savedAt,
	}
}

// Session rebuilds a session from the snapshot, rejecting anything that
// violates the session invariants with ErrMalformedSnapshot
func (s *Snapshot) Session() (*Session, error) {
	if s.Version != SnapshotVersion {
		return nil, ErrMalformedSnapshot
	}
	session := (&Session{
		Teams:       s.Teams,
		Panels:      s.Panels,
		Assignment:  s.Assignment,
		CurrentTeam: s.CurrentTeam,
		Concluded:   s.Concluded,
		Ending:      s.Ending,
	}).Clone()
	if err := session.Validate(); err != nil {
		return nil, ErrMalformedSnapshot
	}
	if s.Concluded != (s.Ending != EndingNone) {
		return nil, ErrMalformedSnapshot
	}
	return session, nil
}
