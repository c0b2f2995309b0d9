package fsm

// AddState adds a node to the machine
func (m *Machine[T]) AddState(id StateID, name string) *Node[T] {
	node := &Node[T]{
		ID:   id,
		Name: name,
	}
	m.nodes[id] = node
	return node
}

// AddTransition adds a transition to a specific node
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) {
	if node, ok := m.nodes[sourceID]; ok {
		node.Transitions = append(node.Transitions, t)
	}
}

// Enter appends an OnEnter action and returns the node for chaining
func (n *Node[T]) Enter(fn ActionFunc[T]) *Node[T] {
	n.OnEnter = append(n.OnEnter, fn)
	return n
}

// Exit appends an OnExit action and returns the node for chaining
func (n *Node[T]) Exit(fn ActionFunc[T]) *Node[T] {
	n.OnExit = append(n.OnExit, fn)
	return n
}

// Update appends an OnUpdate action and returns the node for chaining
func (n *Node[T]) Update(fn ActionFunc[T]) *Node[T] {
	n.OnUpdate = append(n.OnUpdate, fn)
	return n
}
