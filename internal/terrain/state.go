// Package terrain provides the logical terrain lattice and its mutation rules.
package terrain

// State represents the logical value of a single base-grid cell.
// Ordinals are stable; rendering tables index by them.
type State uint8

const (
	// Empty is open ground the player can stand on.
	Empty State = 0
	// Diggable is solid ground that becomes Empty when dug.
	Diggable State = 1
	// Undiggable is permanent rock.
	Undiggable State = 2
)

// StateCount is the number of terrain states.
const StateCount = 3

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Diggable:
		return "diggable"
	case Undiggable:
		return "undiggable"
	default:
		return "unknown"
	}
}

// IsPassable returns true if the player can walk into the state.
func (s State) IsPassable() bool {
	return s == Empty
}

// IsSolid returns true if the state can never be removed.
func (s State) IsSolid() bool {
	return s == Undiggable
}
