package fsm

import "fmt"

func (m *Machine[T]) addNode(id StateID, name string, parentID StateID) *Node[T] {
	node := &Node[T]{ID: id, Name: name, ParentID: parentID}
	m.nodes[id] = node
	m.nameToID[name] = id
	return node
}

// compilePaths fills Node.Path with the [Root, ..., Leaf] chain of every node
// Parents are resolved once and shared, a cycle or dangling parent fails the load
func (m *Machine[T]) compilePaths() error {
	visiting := make(map[StateID]bool, len(m.nodes))

	var resolve func(n *Node[T]) error
	resolve = func(n *Node[T]) error {
		if n.Path != nil {
			return nil
		}
		if n.ParentID == StateNone {
			n.Path = []StateID{n.ID}
			return nil
		}
		if visiting[n.ID] {
			return fmt.Errorf("state %q has a parent cycle", n.Name)
		}
		parent, ok := m.nodes[n.ParentID]
		if !ok {
			return fmt.Errorf("state %q references missing parent %d", n.Name, n.ParentID)
		}
		visiting[n.ID] = true
		if err := resolve(parent); err != nil {
			return err
		}
		delete(visiting, n.ID)

		n.Path = make([]StateID, len(parent.Path), len(parent.Path)+1)
		copy(n.Path, parent.Path)
		n.Path = append(n.Path, n.ID)
		return nil
	}

	for _, n := range m.nodes {
		n.Path = nil
	}
	for _, n := range m.nodes {
		if err := resolve(n); err != nil {
			return err
		}
	}
	return nil
}
