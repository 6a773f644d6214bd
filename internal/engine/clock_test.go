package engine

import (
	"sort"
	"sync"
	"testing"
	"time"
)

// manualClock fires timers only when advanced. Callbacks run on the
// goroutine calling Advance.
type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	c       *manualClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{c: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	live := !t.stopped && !t.fired
	t.stopped = true
	return live
}

// Advance moves time forward by d, firing due timers in order.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var pending []*manualTimer
		for _, t := range c.timers {
			if !t.stopped && !t.fired && !t.at.After(target) {
				pending = append(pending, t)
			}
		}
		if len(pending) == 0 {
			c.now = target
			c.mu.Unlock()
			return
		}
		sort.SliceStable(pending, func(i, j int) bool { return pending[i].at.Before(pending[j].at) })
		next := pending[0]
		next.fired = true
		c.now = next.at
		c.mu.Unlock()

		next.f()
	}
}

// live counts timers that are armed and not yet fired.
func (c *manualClock) live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func TestTimerSetReplacesAndClaims(t *testing.T) {
	c := newManualClock()
	s := newTimerSet()

	var fired []uint64
	s.arm(timerClear, c, time.Second, func(id uint64) { fired = append(fired, id) })
	s.arm(timerClear, c, time.Second, func(id uint64) { fired = append(fired, id) })
	if s.len() != 1 || c.live() != 1 {
		t.Fatalf("re-arming should replace the timer: set=%d live=%d", s.len(), c.live())
	}

	c.Advance(time.Second)
	if len(fired) != 1 {
		t.Fatalf("expected one firing, got %v", fired)
	}
	if s.claim(timerClear, fired[0]-1) {
		t.Fatal("a replaced arming must not be claimable")
	}
	if !s.claim(timerClear, fired[0]) {
		t.Fatal("the live arming must be claimable")
	}
	if s.claim(timerClear, fired[0]) {
		t.Fatal("an arming can only be claimed once")
	}
}

func TestTimerSetStopAll(t *testing.T) {
	c := newManualClock()
	s := newTimerSet()
	for _, name := range []timerName{timerPrepare, timerClear, timerBreath} {
		s.arm(name, c, time.Second, func(uint64) { t.Error("stopped timer fired") })
	}
	s.stopAll()
	if s.len() != 0 || c.live() != 0 {
		t.Fatalf("expected no live timers, set=%d live=%d", s.len(), c.live())
	}
	c.Advance(time.Minute)
}
