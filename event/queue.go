package event

import (
	"sync/atomic"

	"github.com/lixenwraith/spell-smash/parameter"
)

// slot holds one event and its sequence number
// seq == pos: free for the producer claiming pos
// seq == pos+1: published, readable by the consumer
type slot struct {
	seq atomic.Uint64
	ev  GameEvent
}

// EventQueue is a bounded lock-free queue between the terminal poller, the session and the router
// Producers: any goroutine. Consumer: the game loop only
//
// A full queue rejects the new event and counts it in Dropped, pending events are never overwritten
// so a key flood cannot evict a queued GameComplete
type EventQueue struct {
	slots   []slot
	mask    uint64
	head    atomic.Uint64 // Next position to read
	tail    atomic.Uint64 // Next position to claim
	dropped atomic.Uint64
}

// NewEventQueue creates a queue sized for one frame of session events plus a pasted line of keys
func NewEventQueue() *EventQueue {
	return NewEventQueueSize(parameter.EventQueueSize)
}

// NewEventQueueSize creates a queue with capacity rounded up to a power of two
func NewEventQueueSize(capacity int) *EventQueue {
	size := uint64(2)
	for size < uint64(capacity) {
		size <<= 1
	}
	q := &EventQueue{slots: make([]slot, size), mask: size - 1}
	for i := range q.slots {
		q.slots[i].seq.Store(uint64(i))
	}
	return q
}

// Push enqueues an event, returns false when the queue is full
func (q *EventQueue) Push(ev GameEvent) bool {
	pos := q.tail.Load()
	for {
		s := &q.slots[pos&q.mask]
		seq := s.seq.Load()
		switch {
		case seq == pos:
			if q.tail.CompareAndSwap(pos, pos+1) {
				s.ev = ev
				s.seq.Store(pos + 1)
				return true
			}
			pos = q.tail.Load()
		case seq < pos:
			// Slot still holds an unread event one lap behind
			q.dropped.Add(1)
			return false
		default:
			pos = q.tail.Load()
		}
	}
}

// Emit pushes an event built from its parts
func (q *EventQueue) Emit(t EventType, payload Payload) bool {
	return q.Push(GameEvent{Type: t, Payload: payload})
}

// Drain appends every published event to dst in FIFO order
// Stops at the first slot a producer claimed but has not finished writing
func (q *EventQueue) Drain(dst []GameEvent) []GameEvent {
	pos := q.head.Load()
	for {
		s := &q.slots[pos&q.mask]
		if s.seq.Load() != pos+1 {
			break
		}
		dst = append(dst, s.ev)
		s.ev = GameEvent{}
		s.seq.Store(pos + q.mask + 1)
		pos++
	}
	q.head.Store(pos)
	return dst
}

// Consume returns the pending events in a new slice, nil when empty
func (q *EventQueue) Consume() []GameEvent {
	events := q.Drain(nil)
	if len(events) == 0 {
		return nil
	}
	return events
}

// Len returns the approximate number of claimed but unread events
func (q *EventQueue) Len() int {
	head := q.head.Load()
	return int(q.tail.Load() - head)
}

// Cap returns the queue capacity
func (q *EventQueue) Cap() int {
	return len(q.slots)
}

// Dropped returns the number of events rejected because the queue was full
func (q *EventQueue) Dropped() uint64 {
	return q.dropped.Load()
}
