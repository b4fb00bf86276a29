package fsm

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/spell-smash/event"
)

// ErrInvalidGraph wraps every graph validation failure
var ErrInvalidGraph = errors.New("fsm: invalid graph")

const rootName = "Root"

// LoadConfig replaces the graph with the TOML definition in data
//
// Beyond resolving names the loader rejects graphs that would misbehave at runtime:
//   - a guard or action registered in code but never referenced
//   - a transition shadowed by an earlier unguarded one with the same trigger
//   - a composite state used as a target or as the initial state
//   - a leaf state nothing can reach
func (m *Machine[T]) LoadConfig(data []byte) error {
	var graph GraphConfig
	if _, err := toml.Decode(string(data), &graph); err != nil {
		return fmt.Errorf("decode FSM graph: %w", err)
	}
	if graph.States == nil {
		graph.States = make(map[string]*StateConfig)
	}
	if _, ok := graph.States[rootName]; !ok {
		graph.States[rootName] = &StateConfig{}
	}

	m.reset()
	l := &loader[T]{m: m, graph: graph, usedGuards: map[string]bool{}, usedActions: map[string]bool{}}
	for _, step := range []func() error{l.assignIDs, l.buildNodes, m.compilePaths, l.checkTargets, l.checkUsage} {
		if err := step(); err != nil {
			m.reset()
			return err
		}
	}
	m.InitialStateID = l.ids[graph.Initial]
	return nil
}

func (m *Machine[T]) reset() {
	m.nodes = make(map[StateID]*Node[T])
	m.nameToID = make(map[string]StateID)
	m.InitialStateID = StateNone
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	m.started = false
	m.deferred = m.deferred[:0]
}

// loader carries the cross-references collected while compiling one graph
type loader[T any] struct {
	m           *Machine[T]
	graph       GraphConfig
	ids         map[string]StateID
	names       []string // Sorted, Root first
	children    map[string]int
	targeted    map[string]bool
	usedGuards  map[string]bool
	usedActions map[string]bool
}

// assignIDs numbers states in name order so IDs are stable across loads
func (l *loader[T]) assignIDs() error {
	names := make([]string, 0, len(l.graph.States))
	for name := range l.graph.States {
		if name != rootName {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	l.names = append([]string{rootName}, names...)

	l.ids = make(map[string]StateID, len(l.names))
	for i, name := range l.names {
		l.ids[name] = StateRoot + StateID(i)
	}
	if _, ok := l.ids[l.graph.Initial]; !ok {
		return fmt.Errorf("%w: initial state %q not found", ErrInvalidGraph, l.graph.Initial)
	}
	return nil
}

func (l *loader[T]) buildNodes() error {
	l.children = make(map[string]int)
	l.targeted = map[string]bool{l.graph.Initial: true}

	for _, name := range l.names {
		cfg := l.graph.States[name]
		parentID := StateNone
		if name != rootName {
			parent := cfg.Parent
			if parent == "" {
				parent = rootName
			}
			id, ok := l.ids[parent]
			if !ok {
				return fmt.Errorf("%w: state %q references unknown parent %q", ErrInvalidGraph, name, parent)
			}
			parentID = id
			l.children[parent]++
		}
		node := l.m.addNode(l.ids[name], name, parentID)

		var err error
		if node.OnEnter, err = l.actions(cfg.OnEnter); err != nil {
			return fmt.Errorf("state %q on_enter: %w", name, err)
		}
		if node.OnUpdate, err = l.actions(cfg.OnUpdate); err != nil {
			return fmt.Errorf("state %q on_update: %w", name, err)
		}
		if node.OnExit, err = l.actions(cfg.OnExit); err != nil {
			return fmt.Errorf("state %q on_exit: %w", name, err)
		}
		if node.Transitions, err = l.transitions(cfg.Transitions); err != nil {
			return fmt.Errorf("state %q: %w", name, err)
		}
	}
	return nil
}

func (l *loader[T]) actions(cfgs []ActionConfig) ([]Action[T], error) {
	out := make([]Action[T], 0, len(cfgs))
	for _, c := range cfgs {
		fn, ok := l.m.actionReg[c.Action]
		if !ok {
			return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidGraph, c.Action)
		}
		l.usedActions[c.Action] = true

		var args any
		if c.Action == "EmitEvent" {
			et, ok := event.GetEventType(c.Event)
			if c.Event == "" || !ok {
				return nil, fmt.Errorf("%w: EmitEvent needs a known event, got %q", ErrInvalidGraph, c.Event)
			}
			args = &EmitEventArgs{Type: et}
		}
		out = append(out, Action[T]{Func: fn, Args: args})
	}
	return out, nil
}

func (l *loader[T]) transitions(cfgs []TransitionConfig) ([]Transition[T], error) {
	out := make([]Transition[T], 0, len(cfgs))
	catchAll := make(map[event.EventType]string)

	for _, c := range cfgs {
		target, ok := l.ids[c.Target]
		if !ok {
			return nil, fmt.Errorf("%w: transition to unknown target %q", ErrInvalidGraph, c.Target)
		}
		et, ok := event.GetEventType(c.Trigger)
		if !ok {
			return nil, fmt.Errorf("%w: unknown trigger %q", ErrInvalidGraph, c.Trigger)
		}
		if prev, shadowed := catchAll[et]; shadowed {
			return nil, fmt.Errorf("%w: %s to %q is unreachable after the unguarded transition to %q",
				ErrInvalidGraph, c.Trigger, c.Target, prev)
		}

		t := Transition[T]{TargetID: target, Event: et}
		if c.Guard == "" {
			catchAll[et] = c.Target
		} else {
			g, ok := l.m.guardReg[c.Guard]
			if !ok {
				return nil, fmt.Errorf("%w: unknown guard %q", ErrInvalidGraph, c.Guard)
			}
			l.usedGuards[c.Guard] = true
			t.Guard = g
		}
		l.targeted[c.Target] = true
		out = append(out, t)
	}
	return out, nil
}

// checkTargets requires transitions to land on leaves and every leaf to be reachable
func (l *loader[T]) checkTargets() error {
	for _, name := range l.names {
		composite := l.children[name] > 0
		switch {
		case composite && l.targeted[name]:
			return fmt.Errorf("%w: composite state %q cannot be entered directly", ErrInvalidGraph, name)
		case !composite && name != rootName && !l.targeted[name]:
			return fmt.Errorf("%w: state %q is unreachable", ErrInvalidGraph, name)
		}
	}
	return nil
}

// checkUsage catches code and graph drifting apart
func (l *loader[T]) checkUsage() error {
	var unused []string
	for name := range l.m.guardReg {
		if !l.usedGuards[name] {
			unused = append(unused, "guard "+name)
		}
	}
	for name := range l.m.actionReg {
		if !l.usedActions[name] {
			unused = append(unused, "action "+name)
		}
	}
	if len(unused) > 0 {
		sort.Strings(unused)
		return fmt.Errorf("%w: registered but never referenced: %s", ErrInvalidGraph, strings.Join(unused, ", "))
	}
	return nil
}

// GetStateID resolves a state name to ID
func (m *Machine[T]) GetStateID(name string) (StateID, bool) {
	id, ok := m.nameToID[name]
	return id, ok
}

// MustStateID resolves a state name, panics on unknown names
// Intended for wiring code that runs right after a successful load
func (m *Machine[T]) MustStateID(name string) StateID {
	id, ok := m.nameToID[name]
	if !ok {
		panic(fmt.Sprintf("FSM: unknown state '%s'", name))
	}
	return id
}
