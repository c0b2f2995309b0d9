package fsm

import "fmt"

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes: make(map[StateID]*Node[T]),
	}
}

// Init validates the graph and enters the initial state
func (m *Machine[T]) Init(ctx T, initialID StateID) error {
	node, ok := m.nodes[initialID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", initialID)
	}
	for id, n := range m.nodes {
		for _, t := range n.Transitions {
			if _, ok := m.nodes[t.TargetID]; !ok {
				return fmt.Errorf("state %d transitions to missing state %d", id, t.TargetID)
			}
		}
	}

	m.InitialStateID = initialID
	m.activeStateID = initialID
	for _, action := range node.OnEnter {
		action(ctx)
	}
	return nil
}

// Update runs the active state's OnUpdate actions and evaluates tick transitions
func (m *Machine[T]) Update(ctx T) {
	if m.activeStateID == StateNone {
		return
	}

	node := m.nodes[m.activeStateID]
	for _, action := range node.OnUpdate {
		action(ctx)
	}
	m.fire(ctx, node, TriggerTick)
}

// Fire routes a trigger to the active state
// Returns true if a transition occurred
func (m *Machine[T]) Fire(ctx T, trigger Trigger) bool {
	if m.activeStateID == StateNone {
		return false
	}
	return m.fire(ctx, m.nodes[m.activeStateID], trigger)
}

func (m *Machine[T]) fire(ctx T, node *Node[T], trigger Trigger) bool {
	for _, trans := range node.Transitions {
		if trans.Trigger != trigger {
			continue
		}
		if trans.Guard == nil || trans.Guard(ctx) {
			m.transition(ctx, trans.TargetID)
			return true
		}
	}
	return false
}

// transition performs state change; self transitions are ignored
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeStateID == targetID {
		return
	}

	if current, ok := m.nodes[m.activeStateID]; ok {
		for _, action := range current.OnExit {
			action(ctx)
		}
	}

	// Active state moves before OnEnter so actions observe the new state
	m.activeStateID = targetID

	for _, action := range m.nodes[targetID].OnEnter {
		action(ctx)
	}
}

// Reset returns the machine to its initial state without running exit actions
func (m *Machine[T]) Reset(ctx T) error {
	return m.Init(ctx, m.InitialStateID)
}

// Current returns the active state ID
func (m *Machine[T]) Current() StateID {
	return m.activeStateID
}

// Is reports whether id is the active state
func (m *Machine[T]) Is(id StateID) bool {
	return m.activeStateID == id
}

// CurrentName returns the active state name
func (m *Machine[T]) CurrentName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}
