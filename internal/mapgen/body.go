package mapgen

import "github.com/samdwyer/dualdig/internal/terrain"

// Body fill parameters
const (
	bellJarWalks      = 2
	walkTurnChance    = 0.25 // each of left and right; straight otherwise
	openFieldRadius   = 2
	openFieldClearing = 3
	mazeStride        = 4
	mazeLoops         = 4
	cavernCount       = 4
	cavernMinRadius   = 2
	cavernMaxRadius   = 4
	cavernBuffer      = 1
)

// fillBody sets every body cell to s.
func (g *Generator) fillBody(c terrain.Content, s terrain.State) {
	top, bottom := g.bodyRows()
	fillRect(c, 1, top, c.Width-2, bottom, s)
}

// scatterBody draws every body cell independently from the strategy's weights.
func (g *Generator) scatterBody(c terrain.Content, strategy Strategy) {
	w := g.cfg.weights(strategy)
	top, bottom := g.bodyRows()
	for y := top; y <= bottom; y++ {
		for x := 1; x <= c.Width-2; x++ {
			c.Cells[y][x] = w.Pick(g.rng)
		}
	}
}

// randomBodyPoint returns a uniformly random body cell.
func (g *Generator) randomBodyPoint(c terrain.Content) Point {
	top, bottom := g.bodyRows()
	return Point{
		X: 1 + g.rng.Intn(c.Width-2),
		Y: top + g.rng.Intn(bottom-top+1),
	}
}

// fillBellJar scatters terrain, then forces random walks from the body's
// top to bottom open. The walks' first cells are returned as anchors.
func (g *Generator) fillBellJar(c terrain.Content) []Point {
	g.scatterBody(c, BellJar)

	top, bottom := g.bodyRows()
	anchors := make([]Point, 0, bellJarWalks)
	for i := 0; i < bellJarWalks; i++ {
		x := 1 + g.rng.Intn(c.Width-2)
		anchors = append(anchors, Point{X: x, Y: top})
		for y := top; y <= bottom; y++ {
			c.Cells[y][x] = terrain.Empty
			switch roll := g.rng.Float64(); {
			case roll < walkTurnChance:
				x--
			case roll < 2*walkTurnChance:
				x++
			}
			x = clamp(x, 1, c.Width-2)
		}
	}
	return anchors
}

// fillOpenField scatters mostly open terrain and clears a disc at the body
// center plus a few random discs. Disc centers are returned as anchors.
func (g *Generator) fillOpenField(c terrain.Content) []Point {
	g.scatterBody(c, OpenField)

	top, bottom := g.bodyRows()
	center := Point{X: c.Width / 2, Y: (top + bottom) / 2}
	g.clearDisc(c, center, openFieldRadius)

	anchors := []Point{center}
	for i := 0; i < openFieldClearing; i++ {
		p := g.randomBodyPoint(c)
		g.clearDisc(c, p, 1+g.rng.Intn(2))
		anchors = append(anchors, p)
	}
	return anchors
}

// clearDisc sets body cells within radius of center to Empty.
func (g *Generator) clearDisc(c terrain.Content, center Point, radius int) {
	top, bottom := g.bodyRows()
	for y := max(center.Y-radius, top); y <= min(center.Y+radius, bottom); y++ {
		for x := max(center.X-radius, 1); x <= min(center.X+radius, c.Width-2); x++ {
			dx, dy := x-center.X, y-center.Y
			if dx*dx+dy*dy <= radius*radius {
				c.Cells[y][x] = terrain.Empty
			}
		}
	}
}

// fillMaze fills the body Diggable and stamps wall lines every mazeStride
// rows and columns, splitting it into rooms. A recursive backtracker over
// the rooms opens one door per tree edge, so every room joins the others;
// mazeLoops extra doors add cycles. Doors are never placed on crossings.
func (g *Generator) fillMaze(c terrain.Content) {
	g.fillBody(c, terrain.Diggable)

	top, bottom := g.bodyRows()
	for y := top; y <= bottom; y++ {
		for x := 1; x <= c.Width-2; x++ {
			if isMazeWall(x, y, top) {
				c.Cells[y][x] = terrain.Undiggable
			}
		}
	}

	cols := runs(1, c.Width-2, func(x int) bool { return x%mazeStride == 0 })
	rows := runs(top, bottom, func(y int) bool { return (y-top)%mazeStride == mazeStride-1 })

	visited := make([][]bool, len(rows))
	for j := range visited {
		visited[j] = make([]bool, len(cols))
	}
	start := Point{X: g.rng.Intn(len(cols)), Y: g.rng.Intn(len(rows))}
	visited[start.Y][start.X] = true
	stack := []Point{start}

	dirs := []Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates := make([]Point, 0, 4)
		for _, d := range dirs {
			n := Point{X: curr.X + d.X, Y: curr.Y + d.Y}
			if n.X >= 0 && n.X < len(cols) && n.Y >= 0 && n.Y < len(rows) && !visited[n.Y][n.X] {
				candidates = append(candidates, n)
			}
		}
		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		next := candidates[g.rng.Intn(len(candidates))]
		door := g.pickDoor(doorCells(cols, rows, curr, next))
		c.Cells[door.Y][door.X] = terrain.Empty
		visited[next.Y][next.X] = true
		stack = append(stack, next)
	}

	var walls []Point
	for j := range rows {
		for i := range cols {
			if i+1 < len(cols) {
				walls = append(walls, doorCells(cols, rows, Point{X: i, Y: j}, Point{X: i + 1, Y: j})...)
			}
			if j+1 < len(rows) {
				walls = append(walls, doorCells(cols, rows, Point{X: i, Y: j}, Point{X: i, Y: j + 1})...)
			}
		}
	}
	g.rng.Shuffle(len(walls), func(i, j int) {
		walls[i], walls[j] = walls[j], walls[i]
	})
	loops := 0
	for _, p := range walls {
		if loops == mazeLoops {
			break
		}
		if c.Cells[p.Y][p.X] == terrain.Undiggable {
			c.Cells[p.Y][p.X] = terrain.Empty
			loops++
		}
	}
}

func isMazeWall(x, y, top int) bool {
	return x%mazeStride == 0 || (y-top)%mazeStride == mazeStride-1
}

// span is an inclusive run of coordinates.
type span struct {
	lo, hi int
}

// runs splits [lo, hi] into the maximal runs where wall is false.
func runs(lo, hi int, wall func(int) bool) []span {
	var out []span
	start := -1
	for v := lo; v <= hi; v++ {
		switch {
		case wall(v) && start >= 0:
			out = append(out, span{lo: start, hi: v - 1})
			start = -1
		case !wall(v) && start < 0:
			start = v
		}
	}
	if start >= 0 {
		out = append(out, span{lo: start, hi: hi})
	}
	return out
}

// doorCells returns the wall cells separating two adjacent rooms, given as
// (column run, row run) indices.
func doorCells(cols, rows []span, a, b Point) []Point {
	if a.X > b.X || a.Y > b.Y {
		a, b = b, a
	}
	var out []Point
	if a.Y == b.Y {
		x := cols[a.X].hi + 1
		for y := rows[a.Y].lo; y <= rows[a.Y].hi; y++ {
			out = append(out, Point{X: x, Y: y})
		}
		return out
	}
	y := rows[a.Y].hi + 1
	for x := cols[a.X].lo; x <= cols[a.X].hi; x++ {
		out = append(out, Point{X: x, Y: y})
	}
	return out
}

func (g *Generator) pickDoor(cells []Point) Point {
	return cells[g.rng.Intn(len(cells))]
}

// cavern is a circular cave in the body.
type cavern struct {
	center Point
	radius int
}

// fillCavern carves caves out of solid rock, rings each with Diggable and
// joins consecutive caves with Diggable tunnels. Cave centers are returned
// as anchors.
func (g *Generator) fillCavern(c terrain.Content) []Point {
	g.fillBody(c, terrain.Undiggable)

	caves := make([]cavern, cavernCount)
	for i := range caves {
		caves[i] = cavern{
			center: g.randomBodyPoint(c),
			radius: cavernMinRadius + g.rng.Intn(cavernMaxRadius-cavernMinRadius+1),
		}
	}

	top, bottom := g.bodyRows()
	for y := top; y <= bottom; y++ {
		for x := 1; x <= c.Width-2; x++ {
			c.Cells[y][x] = caveState(caves, x, y)
		}
	}

	anchors := make([]Point, len(caves))
	for i, cave := range caves {
		anchors[i] = cave.center
		if i > 0 {
			tunnel(c, caves[i-1].center, cave.center)
		}
	}
	return anchors
}

// caveState classifies a cell against every cave: inside any cave is Empty,
// inside any buffer ring is Diggable, anything else stays rock.
func caveState(caves []cavern, x, y int) terrain.State {
	state := terrain.Undiggable
	for _, cave := range caves {
		dx, dy := x-cave.center.X, y-cave.center.Y
		d2 := dx*dx + dy*dy
		if d2 <= cave.radius*cave.radius {
			return terrain.Empty
		}
		ring := cave.radius + cavernBuffer
		if d2 <= ring*ring {
			state = terrain.Diggable
		}
	}
	return state
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
