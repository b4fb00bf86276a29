package fsm

import (
	"time"

	"github.com/lixenwraith/spell-smash/event"
)

// StateID identifies a state within one loaded graph
// IDs follow state name order, Root is always StateRoot
type StateID int

const (
	StateNone StateID = iota
	StateRoot
)

// GuardFunc decides whether a transition may fire
type GuardFunc[T any] func(ctx T) bool

// ActionFunc runs on entry, exit or every update of a state
// args is the value compiled from the graph, nil for most actions
type ActionFunc[T any] func(ctx T, args any)

// Action is a registered function bound to its compiled arguments
type Action[T any] struct {
	Func ActionFunc[T]
	Args any
}

// EmitEventArgs is the compiled argument of the EmitEvent action
type EmitEventArgs struct {
	Type event.EventType
}

// Transition fires on Event when Guard is nil or passes
// EventTick transitions are evaluated on every Update
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType
	Guard    GuardFunc[T]
}

// Node is one state of the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID
	Path     []StateID // Root first, this node last

	OnEnter  []Action[T]
	OnUpdate []Action[T]
	OnExit   []Action[T]

	// Checked in declaration order, the first passing one wins
	Transitions []Transition[T]
}

// Machine is a hierarchical state machine over a context T
// It is not safe for concurrent use, the game loop owns it
type Machine[T any] struct {
	nodes          map[StateID]*Node[T]
	nameToID       map[string]StateID
	InitialStateID StateID

	guardReg     map[string]GuardFunc[T]
	actionReg    map[string]ActionFunc[T]
	onTransition func(from, to StateID)

	activeStateID StateID
	activePath    []StateID
	timeInState   time.Duration
	started       bool

	// Events raised while entry or exit actions run, handled once the transition completes
	transitioning bool
	deferred      []event.EventType
}
