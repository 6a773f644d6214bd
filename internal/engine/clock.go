package engine

import "time"

// Timer is a pending one-shot callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer before it fired.
	Stop() bool
}

// Clock schedules callbacks. Tests substitute a manual clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// RealClock returns a Clock backed by the time package.
func RealClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type timerName string

const (
	timerPrepare timerName = "prepare"
	timerClear   timerName = "clear-last-move"
	timerBreath  timerName = "breath"
)

type timerEntry struct {
	t  Timer
	id uint64
}

// timerSet holds the timers owned by the current session. Only the engine
// loop touches it. Arming a name stops the previous timer of that name, and
// each arming gets an id so a callback that was already queued when its
// timer was replaced or stopped can tell it is stale.
type timerSet struct {
	entries map[timerName]timerEntry
	nextID  uint64
}

func newTimerSet() *timerSet {
	return &timerSet{entries: make(map[timerName]timerEntry)}
}

func (s *timerSet) arm(name timerName, clock Clock, d time.Duration, fire func(id uint64)) {
	s.stop(name)
	s.nextID++
	id := s.nextID
	s.entries[name] = timerEntry{id: id, t: clock.AfterFunc(d, func() { fire(id) })}
}

// claim reports whether id is the live arming of name and, if so, forgets it.
func (s *timerSet) claim(name timerName, id uint64) bool {
	e, ok := s.entries[name]
	if !ok || e.id != id {
		return false
	}
	delete(s.entries, name)
	return true
}

func (s *timerSet) stop(name timerName) {
	if e, ok := s.entries[name]; ok {
		e.t.Stop()
		delete(s.entries, name)
	}
}

func (s *timerSet) stopAll() {
	for name := range s.entries {
		s.stop(name)
	}
}

func (s *timerSet) len() int { return len(s.entries) }
