// Package game provides the session rules and the terminal game loop.
package game

// Mode represents the current input mode.
type Mode int

const (
	// ModePlay is the default mode: move and dig.
	ModePlay Mode = iota
	// ModeEdit paints terrain directly onto the cell the player faces.
	ModeEdit
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModePlay:
		return "play"
	case ModeEdit:
		return "edit"
	default:
		return "unknown"
	}
}
