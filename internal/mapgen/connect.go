package mapgen

import (
	"github.com/samdwyer/dualdig/internal/terrain"
)

// Point is a logical cell coordinate.
type Point struct {
	X, Y int
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// tunnel carves an axis-stepped line from a to b, stepping along whichever
// axis has more distance left. Rock becomes Diggable; open cells are kept.
func tunnel(c terrain.Content, a, b Point) {
	p := a
	for {
		if c.Cells[p.Y][p.X] == terrain.Undiggable {
			c.Cells[p.Y][p.X] = terrain.Diggable
		}
		if p == b {
			return
		}
		dx, dy := b.X-p.X, b.Y-p.Y
		if abs(dx) >= abs(dy) {
			p.X += sign(dx)
		} else {
			p.Y += sign(dy)
		}
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// connectEntrance opens the body cell below the neck spine and tunnels it
// to the nearest anchor, or to the nearest Empty body cell when the
// strategy left no anchors.
func (g *Generator) connectEntrance(c terrain.Content, anchors []Point) {
	entry := Point{X: g.spine(), Y: g.cfg.BodyStart}
	if c.Cells[entry.Y][entry.X] == terrain.Undiggable {
		c.Cells[entry.Y][entry.X] = terrain.Diggable
	}

	candidates := anchors
	if len(candidates) == 0 {
		top, bottom := g.bodyRows()
		for y := top; y <= bottom; y++ {
			for x := 1; x <= c.Width-2; x++ {
				if c.Cells[y][x] == terrain.Empty {
					candidates = append(candidates, Point{X: x, Y: y})
				}
			}
		}
	}
	if len(candidates) == 0 {
		return
	}

	best := candidates[0]
	for _, p := range candidates[1:] {
		if manhattan(entry, p) < manhattan(entry, best) {
			best = p
		}
	}
	tunnel(c, entry, best)
}

// Unreachable returns every non-Undiggable cell that cannot be reached from
// the spawn through non-Undiggable cells, in row-major order.
func (g *Generator) Unreachable(c terrain.Content) []Point {
	sx, sy := g.SpawnPosition()
	return Unreachable(c, Point{X: sx, Y: sy})
}

// Unreachable returns every non-Undiggable cell not connected to start.
func Unreachable(c terrain.Content, start Point) []Point {
	seen := reachable(c, start)
	var out []Point
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			if c.Cells[y][x] != terrain.Undiggable && !seen[y][x] {
				out = append(out, Point{X: x, Y: y})
			}
		}
	}
	return out
}

// reachable flood-fills non-Undiggable cells from start.
func reachable(c terrain.Content, start Point) [][]bool {
	seen := make([][]bool, c.Height)
	for y := range seen {
		seen[y] = make([]bool, c.Width)
	}
	if c.At(start.X, start.Y) == terrain.Undiggable {
		return seen
	}

	dirs := []Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	queue := []Point{start}
	seen[start.Y][start.X] = true
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range dirs {
			n := Point{X: p.X + d.X, Y: p.Y + d.Y}
			if c.At(n.X, n.Y) == terrain.Undiggable || seen[n.Y][n.X] {
				continue
			}
			seen[n.Y][n.X] = true
			queue = append(queue, n)
		}
	}
	return seen
}

// linkPockets tunnels every passable pocket below the separator to the
// nearest reachable cell below the separator, so the separator keeps its
// single entrance.
func (g *Generator) linkPockets(c terrain.Content) {
	sx, sy := g.SpawnPosition()
	spawn := Point{X: sx, Y: sy}
	minRow := g.cfg.HomeBaseHeight + 1

	for {
		seen := reachable(c, spawn)
		var pocket *Point
		var targets []Point
		for y := minRow; y < c.Height-1; y++ {
			for x := 1; x < c.Width-1; x++ {
				switch {
				case seen[y][x]:
					targets = append(targets, Point{X: x, Y: y})
				case pocket == nil && c.Cells[y][x] != terrain.Undiggable:
					pocket = &Point{X: x, Y: y}
				}
			}
		}
		if pocket == nil || len(targets) == 0 {
			return
		}

		best := targets[0]
		for _, p := range targets[1:] {
			if manhattan(*pocket, p) < manhattan(*pocket, best) {
				best = p
			}
		}
		tunnel(c, *pocket, best)
	}
}

// sealNeck turns neck cells cut off from the spawn by obstacles into rock.
func (g *Generator) sealNeck(c terrain.Content) {
	sx, sy := g.SpawnPosition()
	seen := reachable(c, Point{X: sx, Y: sy})
	for y := g.cfg.NeckStart; y < g.cfg.NeckEnd; y++ {
		for x := 1; x <= c.Width-2; x++ {
			if !seen[y][x] {
				c.Cells[y][x] = terrain.Undiggable
			}
		}
	}
}
