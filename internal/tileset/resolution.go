package tileset

// EmptyIndex is the atlas-addressing value for the all-Empty sentinel.
const EmptyIndex = -1

// Resolution is the tagged outcome of a pattern lookup: either the
// all-Empty sentinel (nothing to draw) or a concrete atlas tile.
type Resolution struct {
	tile  bool
	index int
}

// EmptyTile returns the sentinel resolution.
func EmptyTile() Resolution {
	return Resolution{}
}

// Tile returns a resolution pointing at an atlas tile.
func Tile(index int) Resolution {
	return Resolution{tile: true, index: index}
}

// IsEmpty reports whether the resolution is the sentinel.
func (r Resolution) IsEmpty() bool {
	return !r.tile
}

// TileIndex returns the atlas index, or false for the sentinel.
func (r Resolution) TileIndex() (int, bool) {
	return r.index, r.tile
}

// Index returns the atlas index, or EmptyIndex for the sentinel.
func (r Resolution) Index() int {
	if !r.tile {
		return EmptyIndex
	}
	return r.index
}
