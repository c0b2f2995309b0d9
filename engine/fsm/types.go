package fsm

// StateID is a unique identifier for a node
type StateID int

const StateNone StateID = 0

// Trigger names an external stimulus; TriggerTick marks automatic transitions
type Trigger int

const TriggerTick Trigger = 0

// Machine is a generic flat finite state machine
// T is the context type passed to actions and guards
type Machine[T any] struct {
	// Graph data (immutable after Init)
	nodes map[StateID]*Node[T]

	InitialStateID StateID

	// Runtime state
	activeStateID StateID
}

// Node represents a state
type Node[T any] struct {
	ID   StateID
	Name string

	// Lifecycle actions
	OnEnter  []ActionFunc[T]
	OnUpdate []ActionFunc[T]
	OnExit   []ActionFunc[T]

	// Transitions in evaluation priority
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Trigger  Trigger      // TriggerTick = evaluated on Update
	Guard    GuardFunc[T] // nil = always true
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T)
