package game

import (
	"cmp"
	"slices"
	"time"
)

// ActionID identifies a deferred action.
type ActionID uint64

type deferred struct {
	id     ActionID
	fireAt uint64
	fn     func()
}

// Scheduler runs deferred actions on the tick of the loop that owns it.
// An action armed at tick T with delay D fires on the first tick at or after T + ceil(D/interval).
// Scheduler is not safe for concurrent use.
type Scheduler struct {
	interval time.Duration
	tick     uint64
	nextID   ActionID
	pending  []deferred
}

// NewScheduler creates a Scheduler advanced once per interval.
func NewScheduler(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &Scheduler{interval: interval}
}

// Tick returns the number of ticks advanced so far.
func (s *Scheduler) Tick() uint64 {
	return s.tick
}

// Pending returns the number of armed actions.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// After arms fn to run after delay. Every action waits at least one tick.
func (s *Scheduler) After(delay time.Duration, fn func()) ActionID {
	ticks := max((delay+s.interval-1)/s.interval, 1)

	s.nextID++
	s.pending = append(s.pending, deferred{
		id:     s.nextID,
		fireAt: s.tick + uint64(ticks),
		fn:     fn,
	})
	return s.nextID
}

// Cancel disarms an action. It reports whether the action was still pending.
func (s *Scheduler) Cancel(id ActionID) bool {
	idx := slices.IndexFunc(s.pending, func(d deferred) bool { return d.id == id })
	if idx < 0 {
		return false
	}
	s.pending = slices.Delete(s.pending, idx, idx+1)
	return true
}

// Advance moves to the next tick and runs the actions due on it, oldest first.
// Actions armed while running wait for a later tick.
func (s *Scheduler) Advance() {
	s.tick++

	var due []deferred
	s.pending = slices.DeleteFunc(s.pending, func(d deferred) bool {
		if d.fireAt <= s.tick {
			due = append(due, d)
			return true
		}
		return false
	})

	slices.SortStableFunc(due, func(a, b deferred) int {
		if c := cmp.Compare(a.fireAt, b.fireAt); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	for _, d := range due {
		d.fn()
	}
}
