package engine

import (
	"container/heap"
	"time"
)

// Timer is a one-shot callback registered with a Scheduler
type Timer struct {
	due     time.Duration
	seq     uint64
	fn      func()
	index   int
	stopped bool
	fired   bool
	owner   *Scheduler
}

// Stop cancels the timer, returns true if this call prevented the callback
// Safe on nil and on already fired or stopped timers
func (t *Timer) Stop() bool {
	if t == nil || t.stopped || t.fired {
		return false
	}
	t.stopped = true
	if t.owner != nil && t.index >= 0 {
		heap.Remove(&t.owner.queue, t.index)
	}
	return true
}

// Active reports whether the callback is still pending
func (t *Timer) Active() bool {
	return t != nil && !t.stopped && !t.fired
}

// Scheduler runs delayed callbacks against a virtual clock
// Time only moves through Advance, so tests fast-forward deterministically
// Not thread-safe: owned by the game loop
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
}

// NewScheduler creates a scheduler at virtual time zero
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once the clock has advanced by d
// A zero or negative delay runs on the next Advance, including an Advance already in progress
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Timer{
		due:   s.now + d,
		seq:   s.seq,
		fn:    fn,
		owner: s,
	}
	heap.Push(&s.queue, t)
	return t
}

// Advance moves the clock forward and fires due callbacks in (due, registration) order
// Callbacks observe Now() equal to their own due time
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt

	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.due > target {
			break
		}
		heap.Pop(&s.queue)
		if next.due > s.now {
			s.now = next.due
		}
		next.fired = true
		if next.fn != nil {
			next.fn()
		}
	}
	s.now = target
}

// Pending returns the number of timers waiting to fire
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

// CancelAll stops every pending timer
func (s *Scheduler) CancelAll() {
	for _, t := range s.queue {
		t.stopped = true
		t.index = -1
	}
	s.queue = s.queue[:0]
}

// timerQueue is a min-heap ordered by due time then sequence
type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
