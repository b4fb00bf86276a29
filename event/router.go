package event

// Handler reacts to the event types it declares
type Handler[T any] interface {
	HandleEvent(ctx T, ev GameEvent)
	EventTypes() []EventType
}

// HandlerFunc adapts a function to a Handler for a fixed set of types
type HandlerFunc[T any] struct {
	Types []EventType
	Fn    func(ctx T, ev GameEvent)
}

func (h HandlerFunc[T]) HandleEvent(ctx T, ev GameEvent) { h.Fn(ctx, ev) }

func (h HandlerFunc[T]) EventTypes() []EventType { return h.Types }

// Router drains the queue once per call and fans each event out to its handlers
// Runs on the game loop goroutine only, handlers see events in queue order and
// in registration order per event
type Router[T any] struct {
	queue  *EventQueue
	routes map[EventType][]Handler[T]
	batch  []GameEvent
}

func NewRouter[T any](queue *EventQueue) *Router[T] {
	return &Router[T]{
		queue:  queue,
		routes: make(map[EventType][]Handler[T]),
		batch:  make([]GameEvent, 0, queue.Cap()),
	}
}

// Register subscribes a handler, a type listed twice is delivered once
func (r *Router[T]) Register(h Handler[T]) {
	seen := make(map[EventType]bool, len(h.EventTypes()))
	for _, t := range h.EventTypes() {
		if seen[t] {
			continue
		}
		seen[t] = true
		r.routes[t] = append(r.routes[t], h)
	}
}

// Route delivers one event immediately, bypassing the queue
func (r *Router[T]) Route(ctx T, ev GameEvent) {
	for _, h := range r.routes[ev.Type] {
		h.HandleEvent(ctx, ev)
	}
}

// DispatchAll routes everything queued before the call and returns the count
// Events emitted by handlers wait for the next call, so a handler can't starve the tick
func (r *Router[T]) DispatchAll(ctx T) int {
	r.batch = r.queue.Drain(r.batch[:0])
	for i := range r.batch {
		r.Route(ctx, r.batch[i])
		r.batch[i] = GameEvent{}
	}
	return len(r.batch)
}

// Subscribers returns how many handlers receive t
func (r *Router[T]) Subscribers(t EventType) int {
	return len(r.routes[t])
}
