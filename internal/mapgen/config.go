package mapgen

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/samdwyer/dualdig/internal/terrain"
)

const (
	// Default arena dimensions
	DefaultWidth  = 20
	DefaultHeight = 24

	// Default zone rows
	defaultHomeBaseHeight = 5 // home base rows 1..4, separator row 5
	defaultNeckStart      = 6
	defaultNeckEnd        = 9
	defaultEntranceWidth  = 3
	defaultNeckWidth      = 5

	defaultMaxAttempts = 5
)

// ErrInvalidConfig is returned when zone boundaries or sizes are inconsistent.
var ErrInvalidConfig = errors.New("mapgen: invalid config")

// Weights are relative odds for each terrain state in a random fill.
type Weights struct {
	Empty      float64
	Diggable   float64
	Undiggable float64
}

// Pick draws a state. Zero total weight yields Diggable.
func (w Weights) Pick(rng *rand.Rand) terrain.State {
	total := w.Empty + w.Diggable + w.Undiggable
	if total <= 0 {
		return terrain.Diggable
	}
	roll := rng.Float64() * total
	switch {
	case roll < w.Empty:
		return terrain.Empty
	case roll < w.Empty+w.Diggable:
		return terrain.Diggable
	default:
		return terrain.Undiggable
	}
}

// Config holds the generator's constructor constants.
type Config struct {
	Width  int
	Height int

	// HomeBaseHeight is the separator row; home base occupies rows 1..HomeBaseHeight-1.
	HomeBaseHeight int
	// Neck occupies rows [NeckStart, NeckEnd).
	NeckStart int
	NeckEnd   int
	// Body occupies rows [BodyStart, Height-1).
	BodyStart int

	EntranceWidth int // Diggable gap in the separator row
	NeckWidth     int // corridor width through the neck

	NeckDiggableChance float64 // corridor cell is Diggable rather than Empty
	NeckObstacleChance float64 // corridor cell off the spine becomes Undiggable

	// BodyFillWeights overrides the random fill odds for BellJar and OpenField.
	BodyFillWeights map[Strategy]Weights

	// Strict links every passable pocket to the spawn and verifies
	// reachability, retrying up to MaxAttempts times.
	Strict      bool
	MaxAttempts int
}

// DefaultConfig returns the 20x24 arena layout.
func DefaultConfig() Config {
	return Config{
		Width:              DefaultWidth,
		Height:             DefaultHeight,
		HomeBaseHeight:     defaultHomeBaseHeight,
		NeckStart:          defaultNeckStart,
		NeckEnd:            defaultNeckEnd,
		BodyStart:          defaultNeckEnd,
		EntranceWidth:      defaultEntranceWidth,
		NeckWidth:          defaultNeckWidth,
		NeckDiggableChance: 0.7,
		NeckObstacleChance: 0.1,
		BodyFillWeights: map[Strategy]Weights{
			BellJar:   {Empty: 0.30, Diggable: 0.50, Undiggable: 0.20},
			OpenField: {Empty: 0.60, Diggable: 0.35, Undiggable: 0.05},
		},
		MaxAttempts: defaultMaxAttempts,
	}
}

// WithSize returns a copy of the config resized to width x height,
// keeping the zone rows.
func (c Config) WithSize(width, height int) Config {
	c.Width = width
	c.Height = height
	return c
}

// Validate checks that the zones are ordered, non-overlapping and fit the grid.
func (c Config) Validate() error {
	switch {
	case c.Width < 3 || c.Height < 3:
		return fmt.Errorf("%w: grid %dx%d too small", ErrInvalidConfig, c.Width, c.Height)
	case c.HomeBaseHeight < 2:
		return fmt.Errorf("%w: home base height %d, need at least 2", ErrInvalidConfig, c.HomeBaseHeight)
	case c.NeckStart <= c.HomeBaseHeight:
		return fmt.Errorf("%w: neck start %d overlaps separator row %d", ErrInvalidConfig, c.NeckStart, c.HomeBaseHeight)
	case c.NeckEnd < c.NeckStart:
		return fmt.Errorf("%w: neck end %d before neck start %d", ErrInvalidConfig, c.NeckEnd, c.NeckStart)
	case c.BodyStart < c.NeckEnd:
		return fmt.Errorf("%w: body start %d overlaps neck ending at %d", ErrInvalidConfig, c.BodyStart, c.NeckEnd)
	case c.BodyStart >= c.Height-1:
		return fmt.Errorf("%w: body start %d leaves no body rows in height %d", ErrInvalidConfig, c.BodyStart, c.Height)
	case c.EntranceWidth < 1 || c.EntranceWidth > c.Width-2:
		return fmt.Errorf("%w: entrance width %d for width %d", ErrInvalidConfig, c.EntranceWidth, c.Width)
	case c.NeckWidth < 1 || c.NeckWidth > c.Width-2:
		return fmt.Errorf("%w: neck width %d for width %d", ErrInvalidConfig, c.NeckWidth, c.Width)
	case c.Strict && c.MaxAttempts < 1:
		return fmt.Errorf("%w: strict mode needs at least one attempt", ErrInvalidConfig)
	}
	return nil
}

// weights returns the random fill odds for a strategy.
func (c Config) weights(s Strategy) Weights {
	if w, ok := c.BodyFillWeights[s]; ok {
		return w
	}
	return DefaultConfig().BodyFillWeights[s]
}
