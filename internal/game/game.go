package game

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dualdig/internal/entity"
	"github.com/samdwyer/dualdig/internal/palette"
	"github.com/samdwyer/dualdig/internal/telemetry"
	"github.com/samdwyer/dualdig/internal/terrain"
	"github.com/samdwyer/dualdig/internal/ui"
)

// Game ties the session to the terminal.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session
	running  bool
}

// New creates a new game instance.
func New(cfg Config) (*Game, error) {
	pal, err := palette.LoadDefault()
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen, pal),
		running:  true,
	}, nil
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	ctx, initSpan := tracer.Start(ctx, "game.init")
	session, err := NewSession(ctx, g.cfg)
	if err != nil {
		initSpan.End()
		g.Close()
		return err
	}
	g.session = session

	px, py := session.Player().Position()
	initSpan.SetAttributes(
		attribute.String("mapgen.strategy", session.Strategy().String()),
		attribute.Int("player.start_x", px),
		attribute.Int("player.start_y", py),
	)
	initSpan.End()

	g.checkSize(g.screen.Size())
	for g.running {
		g.draw()
		g.handleInput(ctx)
	}

	g.Close()
	return nil
}

// draw redraws what the last input invalidated.
func (g *Game) draw() {
	dirty, full := g.session.TakeDirty()
	if full {
		g.renderer.Render(g.session.View())
		return
	}
	g.renderer.RenderDirty(g.session.View(), dirty)
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKey(ctx, ev.Key(), ev.Rune())
	case *tcell.EventResize:
		g.screen.Sync()
		g.checkSize(g.screen.Size())
		g.session.fullRedraw = true
	}
}

// checkSize warns on the status line when the terminal cannot fit the arena
// and its status row.
func (g *Game) checkSize(w, h int) {
	needW, needH := g.session.Grid().Width(), g.session.Grid().Height()+2
	if w < needW || h < needH {
		g.session.lastMessage = fmt.Sprintf("terminal %dx%d too small, need %dx%d", w, h, needW, needH)
	}
}

// handleKey applies one key press to the session.
func (g *Game) handleKey(ctx context.Context, key tcell.Key, ch rune) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.session.Move(entity.North)
	case tcell.KeyDown:
		g.session.Move(entity.South)
	case tcell.KeyLeft:
		g.session.Move(entity.West)
	case tcell.KeyRight:
		g.session.Move(entity.East)

	case tcell.KeyRune:
		switch ch {
		case 'q', 'Q':
			g.running = false
		case ' ':
			g.session.Dig()
		case 'e':
			g.session.ToggleMode()
		case 'v':
			g.session.ToggleView()
		case '0', '1', '2':
			g.paint(terrain.State(ch - '0'))
		case 'g':
			g.session.Regenerate(ctx, g.session.Strategy().Next())
		case 'r':
			g.session.Regenerate(ctx, g.session.Strategy())
		}
	}
}

// paint edits the faced cell, reporting refusals on the status line.
func (g *Game) paint(state terrain.State) {
	err := g.session.Paint(state)
	switch {
	case err == nil:
		g.session.lastMessage = "painted " + state.String()
	case errors.Is(err, ErrNotEditing), errors.Is(err, ErrHomeBaseLocked), errors.Is(err, ErrOutOfBounds):
		g.session.lastMessage = err.Error()
	default:
		log.Printf("Warning: paint failed: %v", err)
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
