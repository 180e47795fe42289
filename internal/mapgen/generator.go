package mapgen

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dualdig/internal/telemetry"
	"github.com/samdwyer/dualdig/internal/terrain"
)

// Generator produces terrain layouts for a fixed configuration.
type Generator struct {
	cfg    Config
	rng    *rand.Rand
	logger *log.Logger
}

// New creates a generator. A nil rng is seeded from the clock.
func New(cfg Config, rng *rand.Rand) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		cfg:    cfg,
		rng:    rng,
		logger: log.Default(),
	}, nil
}

// SetLogger redirects the generator's warnings.
func (g *Generator) SetLogger(l *log.Logger) {
	g.logger = l
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// SpawnPosition returns the home base center. It does not depend on the strategy.
func (g *Generator) SpawnPosition() (int, int) {
	return g.cfg.Width / 2, g.cfg.HomeBaseHeight / 2
}

// IsInHomeBase reports whether (x, y) is inside the home base interior,
// excluding the border ring and the separator row.
func (g *Generator) IsInHomeBase(x, y int) bool {
	return x >= 1 && x <= g.cfg.Width-2 && y >= 1 && y <= g.cfg.HomeBaseHeight-1
}

// EntranceSpan returns the first and last column of the separator gap.
func (g *Generator) EntranceSpan() (int, int) {
	return centeredSpan(g.cfg.Width, g.cfg.EntranceWidth)
}

// GenerateNamed generates with a strategy given by name. Unknown names log
// a warning and fall back to DefaultStrategy.
func (g *Generator) GenerateNamed(ctx context.Context, name string) (terrain.Content, Strategy) {
	s, err := ParseStrategy(name)
	if err != nil {
		g.logger.Printf("Warning: %v, using %s", err, DefaultStrategy)
		s = DefaultStrategy
	}
	return g.Generate(ctx, s), s
}

// Generate builds a complete layout for the given strategy.
func (g *Generator) Generate(ctx context.Context, strategy Strategy) terrain.Content {
	tracer := telemetry.Tracer("mapgen")
	_, span := tracer.Start(ctx, "mapgen.generate")
	defer span.End()

	startTime := time.Now()

	if !strategy.Valid() {
		g.logger.Printf("Warning: %v: %d, using %s", ErrUnknownStrategy, int(strategy), DefaultStrategy)
		span.SetAttributes(attribute.String("warning", fmt.Sprintf("unknown strategy %d", int(strategy))))
		strategy = DefaultStrategy
	}

	maxAttempts := 1
	if g.cfg.Strict {
		maxAttempts = g.cfg.MaxAttempts
	}

	var content terrain.Content
	var unreachable []Point
	attempt := 0
	for attempt < maxAttempts {
		attempt++
		content = g.build(strategy)
		if !g.cfg.Strict {
			break
		}
		g.linkPockets(content)
		unreachable = g.Unreachable(content)
		if len(unreachable) == 0 {
			break
		}
	}
	if len(unreachable) > 0 {
		g.logger.Printf("Warning: %s layout left %d unreachable cells after %d attempts",
			strategy, len(unreachable), attempt)
	}

	span.SetAttributes(
		attribute.String("mapgen.strategy", strategy.String()),
		attribute.Int("mapgen.width", content.Width),
		attribute.Int("mapgen.height", content.Height),
		attribute.Bool("mapgen.strict", g.cfg.Strict),
		attribute.Int("mapgen.attempts", attempt),
		attribute.Int("mapgen.unreachable", len(unreachable)),
		attribute.Int64("mapgen.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return content
}

// build runs the shared zone pipeline and the strategy's body fill.
func (g *Generator) build(strategy Strategy) terrain.Content {
	w, h := g.cfg.Width, g.cfg.Height
	c := terrain.NewContent(w, h, terrain.Undiggable)

	fillRect(c, 1, 1, w-2, h-2, terrain.Empty)
	stampBorder(c)
	fillRect(c, 1, 1, w-2, g.cfg.HomeBaseHeight-1, terrain.Empty)
	g.stampSeparator(c)
	g.fillNeck(c, strategy)

	var anchors []Point
	switch strategy {
	case SimpleBox:
		g.fillBody(c, terrain.Diggable)
	case OpenField:
		anchors = g.fillOpenField(c)
	case Maze:
		g.fillMaze(c)
	case Cavern:
		anchors = g.fillCavern(c)
	default:
		anchors = g.fillBellJar(c)
	}

	g.connectEntrance(c, anchors)
	if strategy == BellJar {
		// The fallback strategy must come out fully connected.
		g.linkPockets(c)
	}
	g.sealNeck(c)
	return c
}

// stampBorder sets the outer ring to Undiggable.
func stampBorder(c terrain.Content) {
	for x := 0; x < c.Width; x++ {
		c.Cells[0][x] = terrain.Undiggable
		c.Cells[c.Height-1][x] = terrain.Undiggable
	}
	for y := 0; y < c.Height; y++ {
		c.Cells[y][0] = terrain.Undiggable
		c.Cells[y][c.Width-1] = terrain.Undiggable
	}
}

// stampSeparator walls off the home base, leaving one centered Diggable gap.
func (g *Generator) stampSeparator(c terrain.Content) {
	y := g.cfg.HomeBaseHeight
	for x := 0; x < c.Width; x++ {
		c.Cells[y][x] = terrain.Undiggable
	}
	x0, x1 := g.EntranceSpan()
	for x := x0; x <= x1; x++ {
		c.Cells[y][x] = terrain.Diggable
	}
}

// fillNeck narrows the interior to a corridor below the entrance. The
// corridor's center column never gets an obstacle, so the entrance always
// reaches the body.
func (g *Generator) fillNeck(c terrain.Content, strategy Strategy) {
	x0, x1 := centeredSpan(c.Width, g.cfg.NeckWidth)
	spine := g.spine()
	for y := g.cfg.NeckStart; y < g.cfg.NeckEnd; y++ {
		for x := 1; x <= c.Width-2; x++ {
			switch {
			case x < x0 || x > x1:
				c.Cells[y][x] = terrain.Undiggable
			case strategy == SimpleBox:
				c.Cells[y][x] = terrain.Diggable
			default:
				state := terrain.Empty
				if g.rng.Float64() < g.cfg.NeckDiggableChance {
					state = terrain.Diggable
				}
				if x != spine && g.rng.Float64() < g.cfg.NeckObstacleChance {
					state = terrain.Undiggable
				}
				c.Cells[y][x] = state
			}
		}
	}
}

// spine is the column shared by the entrance gap and the neck corridor.
func (g *Generator) spine() int {
	return g.cfg.Width / 2
}

// bodyRows returns the first and last body row.
func (g *Generator) bodyRows() (int, int) {
	return g.cfg.BodyStart, g.cfg.Height - 2
}

// centeredSpan returns the inclusive column range of a run of the given
// width centered on width/2.
func centeredSpan(width, run int) (int, int) {
	x0 := width/2 - run/2
	return x0, x0 + run - 1
}

// fillRect sets an inclusive rectangle, clipped to the content.
func fillRect(c terrain.Content, x0, y0, x1, y1 int, s terrain.State) {
	for y := max(y0, 0); y <= min(y1, c.Height-1); y++ {
		for x := max(x0, 0); x <= min(x1, c.Width-1); x++ {
			c.Cells[y][x] = s
		}
	}
}
