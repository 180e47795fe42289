// Package entity provides the player entity.
package entity

// Direction is the way the player faces.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Delta returns the unit step for the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Player is the digger. Its position is a logical grid cell.
type Player struct {
	X, Y   int       // Current cell
	Facing Direction // Cell in front of the player is the dig/edit target
}

// NewPlayer creates a player at the given cell, facing south into the map.
func NewPlayer(x, y int) *Player {
	return &Player{
		X:      x,
		Y:      y,
		Facing: South,
	}
}

// Face turns the player without moving.
func (p *Player) Face(d Direction) {
	p.Facing = d
}

// Move updates the player position by the direction's step.
func (p *Player) Move(d Direction) {
	dx, dy := d.Delta()
	p.X += dx
	p.Y += dy
	p.Facing = d
}

// Position returns the current x, y coordinates.
func (p *Player) Position() (int, int) {
	return p.X, p.Y
}

// Target returns the cell the player faces.
func (p *Player) Target() (int, int) {
	dx, dy := p.Facing.Delta()
	return p.X + dx, p.Y + dy
}

// Place teleports the player, keeping its facing.
func (p *Player) Place(x, y int) {
	p.X = x
	p.Y = y
}
