package autotile

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dualdig/internal/terrain"
	"github.com/samdwyer/dualdig/internal/tileset"
)

func randomGrid(rng *rand.Rand, w, h int) *terrain.Grid {
	g := terrain.NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, terrain.State(rng.Intn(terrain.StateCount)))
		}
	}
	return g
}

func snapshot(t *testing.T, tiler *Tiler) [][]int {
	t.Helper()
	all, err := tiler.ResolveAll()
	require.NoError(t, err)
	out := make([][]int, len(all))
	for y := range all {
		out[y] = make([]int, len(all[y]))
		for x := range all[y] {
			out[y][x] = all[y][x].Index()
		}
	}
	return out
}

func TestSample(t *testing.T) {
	g := terrain.NewGrid(3, 3)
	g.Set(0, 0, terrain.Diggable)
	g.Set(1, 0, terrain.Undiggable)
	g.Set(0, 1, terrain.Empty)
	g.Set(1, 1, terrain.Diggable)

	tiler := New(g, tileset.Default())
	want := tileset.NewPattern(terrain.Diggable, terrain.Undiggable, terrain.Empty, terrain.Diggable)
	assert.Equal(t, want, tiler.Sample(0, 0))
}

func TestResolveEmptyAndTile(t *testing.T) {
	g := terrain.NewGrid(3, 3)
	tiler := New(g, tileset.Default())

	r, err := tiler.Resolve(0, 0)
	require.NoError(t, err)
	assert.True(t, r.IsEmpty())
	assert.Equal(t, tileset.EmptyIndex, tiler.Index(0, 0))

	g.Set(1, 1, terrain.Diggable)
	// (1,1) is the bottom-right corner of tile (0,0).
	assert.Equal(t, 0, tiler.Index(0, 0))
}

func TestEdgeTilesAreEnclosed(t *testing.T) {
	g := terrain.NewGrid(3, 3)
	tiler := New(g, tileset.Default())

	right := tiler.Sample(2, 0)
	assert.Equal(t, terrain.Empty, right.TopLeft)
	assert.Equal(t, terrain.Undiggable, right.TopRight)
	assert.Equal(t, terrain.Undiggable, right.BottomRight)

	bottom := tiler.Sample(0, 2)
	assert.Equal(t, terrain.Undiggable, bottom.BottomLeft)
	assert.Equal(t, terrain.Undiggable, bottom.BottomRight)

	corner := tiler.Sample(2, 2)
	assert.Equal(t, tileset.NewPattern(terrain.Empty, terrain.Undiggable, terrain.Undiggable, terrain.Undiggable), corner)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			_, err := tiler.Resolve(x, y)
			assert.NoError(t, err)
		}
	}
}

func TestDirtyTilesFor(t *testing.T) {
	tiler := New(terrain.NewGrid(4, 4), tileset.Default())

	tests := []struct {
		name   string
		cx, cy int
		want   []Point
	}{
		{"interior", 2, 2, []Point{{1, 1}, {2, 1}, {1, 2}, {2, 2}}},
		{"origin", 0, 0, []Point{{0, 0}}},
		{"top edge", 2, 0, []Point{{1, 0}, {2, 0}}},
		{"left edge", 0, 3, []Point{{0, 2}, {0, 3}}},
		{"far corner", 3, 3, []Point{{2, 2}, {3, 2}, {2, 3}, {3, 3}}},
		{"outside", 5, 5, []Point{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tiler.DirtyTilesFor(tc.cx, tc.cy))
		})
	}
}

func TestDirtyRegionCompleteAndMinimal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	catalog := tileset.Default()

	for _, size := range []struct{ w, h int }{{3, 3}, {5, 4}, {6, 7}} {
		for cy := 0; cy < size.h; cy++ {
			for cx := 0; cx < size.w; cx++ {
				for s := 0; s < terrain.StateCount; s++ {
					g := randomGrid(rng, size.w, size.h)
					tiler := New(g, catalog)
					before := snapshot(t, tiler)

					g.Set(cx, cy, terrain.State(s))
					after := snapshot(t, tiler)

					dirty := NewDirtySet()
					dirty.AddCell(tiler, cx, cy)
					for y := range after {
						for x := range after[y] {
							if before[y][x] != after[y][x] {
								assert.True(t, dirty.Contains(Point{x, y}),
									"tile (%d,%d) changed after mutating (%d,%d) but is not dirty", x, y, cx, cy)
							}
						}
					}
				}
			}
		}
	}
}

func TestDirtyTilesAllObserveMutatedCell(t *testing.T) {
	// Every dirty tile must actually sample the mutated cell: flipping the
	// cell between two states must change each of them.
	g := terrain.NewGrid(5, 5)
	tiler := New(g, tileset.Default())
	for cy := 0; cy < 5; cy++ {
		for cx := 0; cx < 5; cx++ {
			g.Set(cx, cy, terrain.Empty)
			before := snapshot(t, tiler)
			g.Set(cx, cy, terrain.Diggable)
			after := snapshot(t, tiler)
			for _, p := range tiler.DirtyTilesFor(cx, cy) {
				assert.NotEqual(t, before[p.Y][p.X], after[p.Y][p.X], "dirty tile %v did not change", p)
			}
			g.Set(cx, cy, terrain.Empty)
		}
	}
}

func TestDirtySetBatchingIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := randomGrid(rng, 6, 6)
	tiler := New(g, tileset.Default())
	before := snapshot(t, tiler)

	batch := NewDirtySet()
	cells := []Point{{1, 1}, {2, 1}, {1, 1}, {4, 5}}
	for _, c := range cells {
		g.Set(c.X, c.Y, terrain.State((int(g.Get(c.X, c.Y))+1)%terrain.StateCount))
		batch.AddCell(tiler, c.X, c.Y)
	}
	after := snapshot(t, tiler)

	for y := range after {
		for x := range after[y] {
			if before[y][x] != after[y][x] {
				assert.True(t, batch.Contains(Point{x, y}), "tile (%d,%d) missing from batch", x, y)
			}
		}
	}

	n := batch.Len()
	again := NewDirtySet()
	again.AddCell(tiler, 1, 1)
	batch.Merge(again)
	batch.Merge(batch)
	assert.Equal(t, n, batch.Len())

	points := batch.Points()
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		assert.True(t, prev.Y < cur.Y || (prev.Y == cur.Y && prev.X < cur.X), "points not row-major")
	}

	batch.Clear()
	assert.Zero(t, batch.Len())
}
