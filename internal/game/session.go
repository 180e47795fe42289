package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dualdig/internal/autotile"
	"github.com/samdwyer/dualdig/internal/entity"
	"github.com/samdwyer/dualdig/internal/mapgen"
	"github.com/samdwyer/dualdig/internal/telemetry"
	"github.com/samdwyer/dualdig/internal/terrain"
	"github.com/samdwyer/dualdig/internal/tileset"
	"github.com/samdwyer/dualdig/internal/ui"
)

var (
	// ErrNotEditing is returned when painting outside edit mode.
	ErrNotEditing = errors.New("game: not in edit mode")
	// ErrHomeBaseLocked is returned when painting inside the home base.
	ErrHomeBaseLocked = errors.New("game: home base cannot be edited")
	// ErrOutOfBounds is returned when painting the border ring or outside the grid.
	ErrOutOfBounds = errors.New("game: target out of bounds")
)

// Session owns the terrain grid and applies gameplay rules to it. It tracks
// which visual tiles each mutation invalidates so the renderer can redraw
// only those.
type Session struct {
	grid      *terrain.Grid
	catalog   *tileset.Catalog
	tiler     *autotile.Tiler
	generator *mapgen.Generator
	player    *entity.Player
	strategy  mapgen.Strategy
	mode      Mode
	logical   bool

	dirty       *autotile.DirtySet
	fullRedraw  bool
	lastMessage string
}

// NewSession generates the first map and places the player at the spawn.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	genCfg := mapgen.DefaultConfig()
	if cfg.Width > 0 && cfg.Height > 0 {
		genCfg = genCfg.WithSize(cfg.Width, cfg.Height)
	}
	genCfg.Strict = cfg.Strict

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen, err := mapgen.New(genCfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("failed to create map generator: %w", err)
	}

	catalog, err := tileset.NewCatalog(terrain.StateCount, tileset.DefaultColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to build tile catalog: %w", err)
	}

	s := &Session{
		grid:      terrain.NewGrid(genCfg.Width, genCfg.Height),
		catalog:   catalog,
		generator: gen,
		dirty:     autotile.NewDirtySet(),
	}
	s.tiler = autotile.New(s.grid, catalog)

	name := cfg.Strategy
	if name == "" {
		name = mapgen.DefaultStrategy.String()
	}
	content, strategy := gen.GenerateNamed(ctx, name)
	s.install(content, strategy)
	return s, nil
}

// install replaces the grid content and resets the player.
func (s *Session) install(content terrain.Content, strategy mapgen.Strategy) {
	s.grid.Replace(content)
	s.strategy = strategy
	x, y := s.generator.SpawnPosition()
	if s.player == nil {
		s.player = entity.NewPlayer(x, y)
	} else {
		s.player.Place(x, y)
		s.player.Face(entity.South)
	}
	s.dirty.Clear()
	s.fullRedraw = true
}

// Regenerate replaces the map using the given strategy.
func (s *Session) Regenerate(ctx context.Context, strategy mapgen.Strategy) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.regenerate")
	defer span.End()

	s.install(s.generator.Generate(ctx, strategy), strategy)
	span.SetAttributes(attribute.String("mapgen.strategy", strategy.String()))
	s.lastMessage = "generated " + strategy.String()
}

// Grid returns the shared terrain grid.
func (s *Session) Grid() *terrain.Grid { return s.grid }

// Tiler returns the autotiler bound to the grid.
func (s *Session) Tiler() *autotile.Tiler { return s.tiler }

// Player returns the player.
func (s *Session) Player() *entity.Player { return s.player }

// Strategy returns the strategy of the current map.
func (s *Session) Strategy() mapgen.Strategy { return s.strategy }

// Mode returns the input mode.
func (s *Session) Mode() Mode { return s.mode }

// ToggleMode switches between play and edit.
func (s *Session) ToggleMode() {
	if s.mode == ModePlay {
		s.mode = ModeEdit
	} else {
		s.mode = ModePlay
	}
	s.lastMessage = "mode " + s.mode.String()
}

// Logical reports whether the logical cell view is shown.
func (s *Session) Logical() bool { return s.logical }

// ToggleView switches between the autotiled view and the logical cell view.
func (s *Session) ToggleView() {
	s.logical = !s.logical
	s.fullRedraw = true
	if s.logical {
		s.lastMessage = "view cells"
	} else {
		s.lastMessage = "view tiles"
	}
}

// Move steps the player if the target cell is Empty; otherwise it only turns.
func (s *Session) Move(d entity.Direction) bool {
	s.player.Face(d)
	dx, dy := d.Delta()
	nx, ny := s.player.X+dx, s.player.Y+dy
	if !s.grid.Get(nx, ny).IsPassable() {
		return false
	}
	// The player glyph covers the tile at its cell.
	s.dirty.Add(autotile.Point{X: s.player.X, Y: s.player.Y})
	s.player.Move(d)
	return true
}

// Dig digs the cell the player faces.
func (s *Session) Dig() bool {
	tx, ty := s.player.Target()
	if !s.grid.Dig(tx, ty) {
		return false
	}
	s.dirty.AddCell(s.tiler, tx, ty)
	return true
}

// Paint sets the faced cell to state. Only allowed in edit mode, inside the
// border ring and outside the home base.
func (s *Session) Paint(state terrain.State) error {
	if s.mode != ModeEdit {
		return ErrNotEditing
	}
	tx, ty := s.player.Target()
	if tx <= 0 || ty <= 0 || tx >= s.grid.Width()-1 || ty >= s.grid.Height()-1 {
		return ErrOutOfBounds
	}
	if s.generator.IsInHomeBase(tx, ty) {
		return ErrHomeBaseLocked
	}
	s.grid.Set(tx, ty, state)
	s.dirty.AddCell(s.tiler, tx, ty)
	return nil
}

// TakeDirty returns the tiles to redraw since the last call and whether a
// full redraw is needed, then resets both.
func (s *Session) TakeDirty() ([]autotile.Point, bool) {
	points, full := s.dirty.Points(), s.fullRedraw
	s.dirty.Clear()
	s.fullRedraw = false
	return points, full
}

// View builds the renderer input for the current state.
func (s *Session) View() ui.View {
	return ui.View{
		Tiler:      s.tiler,
		Player:     s.player,
		IsHomeBase: s.generator.IsInHomeBase,
		Status:     s.status(),
		Logical:    s.logical,
	}
}

// status describes the map, mode and the tile under the player's target.
func (s *Session) status() string {
	tx, ty := s.player.Target()
	msg := fmt.Sprintf("%s | %s | facing %s (%s)",
		s.strategy, s.mode, s.player.Facing, s.grid.Get(tx, ty))

	if res, err := s.tiler.Resolve(tx, ty); err == nil {
		if idx, ok := res.TileIndex(); ok {
			if entry, err := s.catalog.Entry(idx); err == nil {
				msg += fmt.Sprintf(" | tile %d @ %d,%d", entry.Index, entry.AtlasX, entry.AtlasY)
			}
		}
	}
	if s.lastMessage != "" {
		msg += " | " + s.lastMessage
	}
	return msg
}
