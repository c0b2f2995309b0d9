package arcade

import "time"

// InputType is the pointer event kind
type InputType uint8

const (
	PointerDown InputType = iota + 1
	PointerMove
	PointerUp
)

func (t InputType) String() string {
	switch t {
	case PointerDown:
		return "pointer-down"
	case PointerMove:
		return "pointer-move"
	case PointerUp:
		return "pointer-up"
	}
	return "unknown"
}

// InputEvent is one timestamped pointer sample in world units
type InputEvent struct {
	Type InputType     `msgpack:"t"`
	X    float64       `msgpack:"x"`
	Y    float64       `msgpack:"y"`
	At   time.Duration `msgpack:"at"`
}
