package fsm

import (
	"fmt"
	"time"

	"github.com/lixenwraith/spell-smash/event"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:     make(map[StateID]*Node[T]),
		nameToID:  make(map[string]StateID),
		guardReg:  make(map[string]GuardFunc[T]),
		actionReg: make(map[string]ActionFunc[T]),
	}
}

// RegisterGuard adds a predicate function to the registry
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterAction adds a side-effect function to the registry
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// OnTransition sets an observer called after each completed transition
func (m *Machine[T]) OnTransition(fn func(from, to StateID)) {
	m.onTransition = fn
}

// Start enters the initial state, running OnEnter from Root down to the initial leaf
func (m *Machine[T]) Start(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", m.InitialStateID)
	}

	m.activeStateID = node.ID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)
	m.started = true

	m.transitioning = true
	for _, id := range m.activePath {
		m.runActions(ctx, m.nodes[id].OnEnter)
	}
	m.transitioning = false

	if m.onTransition != nil {
		m.onTransition(StateNone, node.ID)
	}
	m.drainDeferred(ctx)
	return nil
}

// Stop exits every active state from leaf to Root
func (m *Machine[T]) Stop(ctx T) {
	if !m.started {
		return
	}
	m.transitioning = true
	for i := len(m.activePath) - 1; i >= 0; i-- {
		m.runActions(ctx, m.nodes[m.activePath[i]].OnExit)
	}
	m.transitioning = false

	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	m.deferred = m.deferred[:0]
	m.started = false
}

// Reset returns the machine to its initial state
func (m *Machine[T]) Reset(ctx T) error {
	m.Stop(ctx)
	return m.Start(ctx)
}

// Update advances the FSM by delta time, handling per-tick actions and Tick transitions
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if !m.started {
		return
	}

	m.timeInState += dt

	leaf := m.nodes[m.activeStateID]
	m.runActions(ctx, leaf.OnUpdate)

	m.dispatch(ctx, event.EventTick)
	m.drainDeferred(ctx)
}

// HandleEvent routes an event through the active path, leaf first
// Events raised by actions during a transition are queued and processed after it completes
// Returns true if the event triggered a transition or was queued
func (m *Machine[T]) HandleEvent(ctx T, eventType event.EventType) bool {
	if !m.started {
		return false
	}
	if m.transitioning {
		m.deferred = append(m.deferred, eventType)
		return true
	}
	handled := m.dispatch(ctx, eventType)
	m.drainDeferred(ctx)
	return handled
}

// dispatch evaluates transitions for one event, bubbling up Leaf -> Parent -> Root
func (m *Machine[T]) dispatch(ctx T, eventType event.EventType) bool {
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event != eventType {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx) {
				m.transition(ctx, trans.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

func (m *Machine[T]) drainDeferred(ctx T) {
	for len(m.deferred) > 0 && m.started {
		next := m.deferred[0]
		m.deferred = m.deferred[1:]
		m.dispatch(ctx, next)
	}
}

// transition performs the state change through the lowest common ancestor
// The active state is updated before OnEnter so entry actions observe their own state
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state ID %d", targetID))
	}
	fromID := m.activeStateID

	m.transitioning = true

	// Find LCA; a self transition exits and re-enters the leaf
	lcaIndex := -1
	currentPath := m.activePath
	targetPath := targetNode.Path
	minLen := min(len(currentPath), len(targetPath))
	for i := 0; i < minLen; i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}
	if fromID == targetID {
		lcaIndex = len(targetPath) - 2
	}

	// Exit Phase: walk UP from current leaf to LCA (exclusive)
	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		m.runActions(ctx, m.nodes[currentPath[i]].OnExit)
	}

	m.activeStateID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	// Enter Phase: walk DOWN from LCA (exclusive) to target leaf
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		m.runActions(ctx, m.nodes[targetPath[i]].OnEnter)
	}

	m.transitioning = false

	if m.onTransition != nil {
		m.onTransition(fromID, targetID)
	}
}

func (m *Machine[T]) runActions(ctx T, actions []Action[T]) {
	for _, action := range actions {
		action.Func(ctx, action.Args)
	}
}

// CurrentState returns the active leaf state, StateNone before Start
func (m *Machine[T]) CurrentState() StateID {
	return m.activeStateID
}

// StateName returns the name of a state ID
func (m *Machine[T]) StateName(id StateID) string {
	if node, ok := m.nodes[id]; ok {
		return node.Name
	}
	return ""
}

// CurrentStateName returns the name of the active leaf state
func (m *Machine[T]) CurrentStateName() string {
	return m.StateName(m.activeStateID)
}

// IsIn reports whether id is the active leaf or one of its ancestors
func (m *Machine[T]) IsIn(id StateID) bool {
	for _, active := range m.activePath {
		if active == id {
			return true
		}
	}
	return false
}

// TimeInState returns time spent in the current leaf state
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// Started reports whether the machine has an active state
func (m *Machine[T]) Started() bool {
	return m.started
}
