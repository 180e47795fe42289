// Package autotile resolves dual-grid visual tiles from the logical terrain grid.
//
// Visual tile (x, y) sits between logical cells (x, y) and (x+1, y+1) and
// is fully determined by those four corners.
package autotile

import (
	"github.com/samdwyer/dualdig/internal/terrain"
	"github.com/samdwyer/dualdig/internal/tileset"
)

// Point is a visual tile coordinate.
type Point struct {
	X, Y int
}

// Tiler samples a grid and resolves visual tiles through a catalog.
// It holds non-owning references and has no state of its own.
type Tiler struct {
	grid    *terrain.Grid
	catalog *tileset.Catalog
}

// New creates a tiler bound to a grid and catalog.
func New(grid *terrain.Grid, catalog *tileset.Catalog) *Tiler {
	return &Tiler{grid: grid, catalog: catalog}
}

// Grid returns the bound grid.
func (t *Tiler) Grid() *terrain.Grid { return t.grid }

// Catalog returns the bound catalog.
func (t *Tiler) Catalog() *tileset.Catalog { return t.catalog }

// Width returns the number of visual columns.
func (t *Tiler) Width() int { return t.grid.Width() }

// Height returns the number of visual rows.
func (t *Tiler) Height() int { return t.grid.Height() }

// Sample reads the four corners of visual tile (x, y).
// Corners past the right or bottom edge read Undiggable, so edges render enclosed.
func (t *Tiler) Sample(x, y int) tileset.CornerPattern {
	return tileset.NewPattern(
		t.grid.Get(x, y),
		t.grid.Get(x+1, y),
		t.grid.Get(x, y+1),
		t.grid.Get(x+1, y+1),
	)
}

// Resolve returns the tile for visual tile (x, y).
func (t *Tiler) Resolve(x, y int) (tileset.Resolution, error) {
	return t.catalog.Lookup(t.Sample(x, y))
}

// Index returns the atlas index for visual tile (x, y), or tileset.EmptyIndex.
func (t *Tiler) Index(x, y int) int {
	return t.catalog.Index(t.Sample(x, y))
}

// ResolveAll resolves every visual tile, indexed [y][x].
func (t *Tiler) ResolveAll() ([][]tileset.Resolution, error) {
	out := make([][]tileset.Resolution, t.Height())
	for y := range out {
		out[y] = make([]tileset.Resolution, t.Width())
		for x := range out[y] {
			r, err := t.Resolve(x, y)
			if err != nil {
				return nil, err
			}
			out[y][x] = r
		}
	}
	return out, nil
}

// DirtyTilesFor returns the visual tiles whose sample window contains
// logical cell (cx, cy). Only these can change when that cell mutates.
func (t *Tiler) DirtyTilesFor(cx, cy int) []Point {
	candidates := [4]Point{
		{cx - 1, cy - 1},
		{cx, cy - 1},
		{cx - 1, cy},
		{cx, cy},
	}
	out := make([]Point, 0, len(candidates))
	for _, p := range candidates {
		if p.X >= 0 && p.X < t.Width() && p.Y >= 0 && p.Y < t.Height() {
			out = append(out, p)
		}
	}
	return out
}
