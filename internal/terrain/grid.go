package terrain

// Content is a detached, fully populated terrain layout.
// Generators produce it and Grid.Replace installs it.
type Content struct {
	Width  int
	Height int
	Cells  [][]State // Cells[y][x]
}

// NewContent creates content of the given size filled with a single state.
func NewContent(width, height int, fill State) Content {
	cells := make([][]State, height)
	for y := range cells {
		cells[y] = make([]State, width)
		for x := range cells[y] {
			cells[y][x] = fill
		}
	}
	return Content{Width: width, Height: height, Cells: cells}
}

// At returns the state at (x, y), or Undiggable when out of bounds.
func (c Content) At(x, y int) State {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return Undiggable
	}
	return c.Cells[y][x]
}

// Clone returns a deep copy of the content.
func (c Content) Clone() Content {
	cells := make([][]State, len(c.Cells))
	for y := range c.Cells {
		cells[y] = append([]State(nil), c.Cells[y]...)
	}
	return Content{Width: c.Width, Height: c.Height, Cells: cells}
}

// Grid is the owned logical lattice. Collaborators share a *Grid and
// mutate it only through Set and Dig.
type Grid struct {
	width  int
	height int
	cells  [][]State
}

// NewGrid creates a grid filled with Empty.
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Replace(NewContent(width, height, Empty))
	return g
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// InBounds returns true if (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the state at the given position.
// Out-of-bounds reads report Undiggable so edge sampling never special-cases bounds.
func (g *Grid) Get(x, y int) State {
	if !g.InBounds(x, y) {
		return Undiggable
	}
	return g.cells[y][x]
}

// Set writes a state. Out-of-bounds writes are ignored.
// Reserved for map authoring; gameplay uses Dig.
func (g *Grid) Set(x, y int, s State) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y][x] = s
}

// Dig turns a Diggable cell into Empty and reports whether it did.
func (g *Grid) Dig(x, y int) bool {
	if g.Get(x, y) != Diggable {
		return false
	}
	g.cells[y][x] = Empty
	return true
}

// Replace swaps in new content wholesale, resizing the grid.
func (g *Grid) Replace(content Content) {
	c := content.Clone()
	g.width = c.Width
	g.height = c.Height
	g.cells = c.Cells
}

// Content returns a copy of the current cells.
func (g *Grid) Content() Content {
	return Content{Width: g.width, Height: g.height, Cells: g.cells}.Clone()
}

// Count returns how many cells hold the given state.
func (g *Grid) Count(s State) int {
	n := 0
	for y := range g.cells {
		for _, c := range g.cells[y] {
			if c == s {
				n++
			}
		}
	}
	return n
}
