package autotile

import "sort"

// DirtySet accumulates visual tiles to redraw across batched mutations.
// Adding the same tile twice is harmless.
type DirtySet struct {
	points map[Point]struct{}
}

// NewDirtySet creates an empty set.
func NewDirtySet() *DirtySet {
	return &DirtySet{points: make(map[Point]struct{})}
}

// Add inserts tiles.
func (s *DirtySet) Add(points ...Point) {
	for _, p := range points {
		s.points[p] = struct{}{}
	}
}

// AddCell inserts every tile invalidated by a mutation of logical cell (cx, cy).
func (s *DirtySet) AddCell(t *Tiler, cx, cy int) {
	s.Add(t.DirtyTilesFor(cx, cy)...)
}

// Merge unions another set into this one.
func (s *DirtySet) Merge(other *DirtySet) {
	for p := range other.points {
		s.points[p] = struct{}{}
	}
}

// Contains reports whether a tile is in the set.
func (s *DirtySet) Contains(p Point) bool {
	_, ok := s.points[p]
	return ok
}

// Len returns the number of tiles.
func (s *DirtySet) Len() int { return len(s.points) }

// Clear empties the set.
func (s *DirtySet) Clear() {
	clear(s.points)
}

// Points returns the tiles in row-major order.
func (s *DirtySet) Points() []Point {
	out := make([]Point, 0, len(s.points))
	for p := range s.points {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
