package engine

import (
	"github.com/abhisek/dojo/internal/kata"
	"github.com/abhisek/dojo/internal/wisdom"
)

// Miss describes the move that ended an attempt.
type Miss struct {
	// Step is 1-indexed.
	Step     int
	Expected kata.Move
	Got      kata.Move
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	// SessionID identifies the current attempt. Empty while Idle.
	SessionID string

	// Generation increases on every start and reset.
	Generation uint64

	Phase    Phase
	Kata     *kata.Kata
	Progress []kata.Move

	// LastMove is the most recently accepted move, or "" once cleared.
	LastMove kata.Move

	// Breath is in [0, 100) and is 0 outside Performing.
	Breath int

	Advisory        wisdom.Advisory
	AdvisoryPending bool

	// Miss is set in Fail.
	Miss *Miss
}

// Target returns the next expected move, if any.
func (s Snapshot) Target() (kata.Move, bool) {
	if s.Kata == nil || len(s.Progress) >= s.Kata.Len() {
		return "", false
	}
	return s.Kata.At(len(s.Progress)), true
}

// Step returns the 1-indexed step being performed, capped at the kata length.
func (s Snapshot) Step() int {
	if s.Kata == nil {
		return 0
	}
	return min(len(s.Progress)+1, s.Kata.Len())
}

func (s Snapshot) clone() Snapshot {
	out := s
	if s.Progress != nil {
		out.Progress = make([]kata.Move, len(s.Progress))
		copy(out.Progress, s.Progress)
	}
	if s.Miss != nil {
		m := *s.Miss
		out.Miss = &m
	}
	return out
}
