package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dualdig/internal/autotile"
	"github.com/samdwyer/dualdig/internal/entity"
	"github.com/samdwyer/dualdig/internal/palette"
	"github.com/samdwyer/dualdig/internal/terrain"
	"github.com/samdwyer/dualdig/internal/tileset"
)

// View is everything the renderer needs for one frame.
type View struct {
	Tiler      *autotile.Tiler
	Player     *entity.Player
	IsHomeBase func(x, y int) bool
	Status     string

	// Logical draws each logical cell as a full-cell glyph instead of
	// resolving visual tiles.
	Logical bool
}

// Renderer draws visual tiles to a surface. Visual tile (x, y) is drawn at
// screen cell (x, y); the player is drawn over the tile at its cell.
type Renderer struct {
	surface Surface
	palette *palette.Palette

	// widths of the last message drawn on each row
	messageWidths map[int]int
}

// NewRenderer creates a new renderer for the given surface.
func NewRenderer(surface Surface, pal *palette.Palette) *Renderer {
	return &Renderer{
		surface:       surface,
		palette:       pal,
		messageWidths: make(map[int]int),
	}
}

// Render redraws every visual tile.
func (r *Renderer) Render(v View) {
	r.surface.Clear()
	for y := 0; y < v.Tiler.Height(); y++ {
		for x := 0; x < v.Tiler.Width(); x++ {
			r.drawTile(v, x, y)
		}
	}
	r.finish(v)
}

// RenderDirty redraws only the given tiles, then the player and status line.
func (r *Renderer) RenderDirty(v View, dirty []autotile.Point) {
	for _, p := range dirty {
		r.drawTile(v, p.X, p.Y)
	}
	r.finish(v)
}

func (r *Renderer) finish(v View) {
	style := tcell.StyleDefault.Foreground(r.palette.PlayerColor).Bold(true)
	r.surface.SetContent(v.Player.X, v.Player.Y, r.palette.PlayerGlyph, style)

	statusY := v.Tiler.Height() + 1
	r.RenderMessage(v.Status, statusY)
	r.surface.Show()
}

// drawTile resolves one visual tile, or reads one logical cell in the
// logical view, and draws its glyph.
func (r *Renderer) drawTile(v View, x, y int) {
	var ch rune
	var style tcell.Style
	if v.Logical {
		ch, style = r.CellGlyph(v.Tiler.Grid().Get(x, y))
	} else {
		ch, style = r.TileCell(v.Tiler, x, y)
	}
	if v.IsHomeBase != nil && v.IsHomeBase(x, y) {
		style = style.Background(r.palette.HomeBaseTint)
	}
	r.surface.SetContent(x, y, ch, style)
}

// TileCell returns the glyph and style for a visual tile. The glyph is the
// quadrant block of the non-Empty corners; its color is the heaviest corner.
func (r *Renderer) TileCell(t *autotile.Tiler, x, y int) (rune, tcell.Style) {
	bg := r.palette.Bg[terrain.Empty]
	base := tcell.StyleDefault.Background(bg)

	res, err := t.Resolve(x, y)
	if err != nil || res.IsEmpty() {
		return r.palette.Quadrants[0], base
	}
	idx, _ := res.TileIndex()
	entry, err := t.Catalog().Entry(idx)
	if err != nil {
		return r.palette.Quadrants[0], base
	}
	return r.palette.Quadrants[quadrantMask(entry.Pattern)], base.Foreground(r.palette.Fg[heaviest(entry.Pattern)])
}

// CellGlyph returns the full-cell glyph and style for one logical cell.
func (r *Renderer) CellGlyph(s terrain.State) (rune, tcell.Style) {
	return r.palette.Glyphs[s], r.palette.TerrainStyle(s)
}

// quadrantMask sets TL=8 TR=4 BL=2 BR=1 for every non-Empty corner.
func quadrantMask(p tileset.CornerPattern) int {
	mask := 0
	for i, c := range p.Corners() {
		if c != terrain.Empty {
			mask |= 8 >> i
		}
	}
	return mask
}

// heaviest returns the corner state with the highest ordinal.
func heaviest(p tileset.CornerPattern) terrain.State {
	best := terrain.Empty
	for _, c := range p.Corners() {
		if c > best && int(c) < terrain.StateCount {
			best = c
		}
	}
	return best
}

// RenderMessage displays a message on the given row, blanking whatever
// remains of a longer message drawn there before.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(r.palette.StatusColor)
	i := 0
	for _, ch := range msg {
		r.surface.SetContent(i, y, ch, style)
		i++
	}
	for x := i; x < r.messageWidths[y]; x++ {
		r.surface.SetContent(x, y, ' ', style)
	}
	r.messageWidths[y] = i
}
