package tileset

import (
	"errors"
	"fmt"

	"github.com/samdwyer/dualdig/internal/terrain"
)

// DefaultColumns is the column count of the default tile atlas.
const DefaultColumns = 10

var (
	// ErrPatternMissing means a pattern has no catalog entry.
	ErrPatternMissing = errors.New("tileset: pattern not in catalog")
	// ErrIndexOutOfRange means a tile index addresses no entry.
	ErrIndexOutOfRange = errors.New("tileset: tile index out of range")
	// ErrCatalogInvalid means the catalog failed validation.
	ErrCatalogInvalid = errors.New("tileset: invalid catalog")
)

// Catalog maps corner patterns to atlas tiles and back in O(1).
// It is immutable after construction.
type Catalog struct {
	stateCount int
	columns    int
	entries    []Entry
	indexByKey []int // flattened pattern key -> tile index; EmptyIndex for the sentinel
}

// NewCatalog enumerates and validates a catalog.
func NewCatalog(stateCount, columns int) (*Catalog, error) {
	if stateCount < 2 {
		return nil, fmt.Errorf("%w: state count %d, need at least 2", ErrCatalogInvalid, stateCount)
	}
	if columns <= 0 {
		return nil, fmt.Errorf("%w: atlas columns %d", ErrCatalogInvalid, columns)
	}

	entries := Enumerate(stateCount, columns)
	total := stateCount * stateCount * stateCount * stateCount
	c := &Catalog{
		stateCount: stateCount,
		columns:    columns,
		entries:    entries,
		indexByKey: make([]int, total),
	}
	for i := range c.indexByKey {
		c.indexByKey[i] = EmptyIndex
	}
	for _, e := range entries {
		key, ok := e.Pattern.Key(stateCount)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d pattern %s out of range", ErrCatalogInvalid, e.Index, e.Pattern)
		}
		c.indexByKey[key] = e.Index
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewCatalog creates a catalog, panicking on error.
// Use this at startup where a broken catalog must stop the program.
func MustNewCatalog(stateCount, columns int) *Catalog {
	c, err := NewCatalog(stateCount, columns)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the catalog for the three terrain states and the default atlas.
func Default() *Catalog {
	return MustNewCatalog(terrain.StateCount, DefaultColumns)
}

// StateCount returns the number of terrain states the catalog covers.
func (c *Catalog) StateCount() int { return c.stateCount }

// Rows returns the number of atlas rows needed to hold every entry.
func (c *Catalog) Rows() int {
	return (len(c.entries) + c.columns - 1) / c.columns
}

// Len returns the number of atlas entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Entries returns the entries in index order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Lookup resolves a pattern to a tile or the empty sentinel.
func (c *Catalog) Lookup(p CornerPattern) (Resolution, error) {
	if p.IsEmpty() {
		return EmptyTile(), nil
	}
	key, ok := p.Key(c.stateCount)
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %s", ErrPatternMissing, p)
	}
	idx := c.indexByKey[key]
	if idx == EmptyIndex {
		return Resolution{}, fmt.Errorf("%w: %s", ErrPatternMissing, p)
	}
	return Tile(idx), nil
}

// Index resolves a pattern to its tile index, or EmptyIndex for the sentinel.
// It panics on a miss: a validated catalog covers every in-range pattern.
func (c *Catalog) Index(p CornerPattern) int {
	r, err := c.Lookup(p)
	if err != nil {
		panic(err)
	}
	return r.Index()
}

// Entry returns the entry for a tile index. EmptyIndex maps to a synthetic
// all-Empty entry at atlas (0,0), which is never drawn from the atlas.
func (c *Catalog) Entry(index int) (Entry, error) {
	if index == EmptyIndex {
		return Entry{Index: EmptyIndex}, nil
	}
	if index < 0 || index >= len(c.entries) {
		return Entry{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return c.entries[index], nil
}

// Validate checks size, density of indices, atlas injectivity, completeness
// and the pattern/index bijection.
func (c *Catalog) Validate() error {
	s := c.stateCount
	want := s*s*s*s - 1
	if len(c.entries) != want {
		return fmt.Errorf("%w: %d entries, want %d", ErrCatalogInvalid, len(c.entries), want)
	}

	type cell struct{ x, y int }
	seenAtlas := make(map[cell]int, len(c.entries))
	seenPattern := make(map[CornerPattern]int, len(c.entries))
	for i, e := range c.entries {
		if e.Index != i {
			return fmt.Errorf("%w: entry at position %d has index %d", ErrCatalogInvalid, i, e.Index)
		}
		if e.Pattern.IsEmpty() {
			return fmt.Errorf("%w: sentinel pattern occupies index %d", ErrCatalogInvalid, i)
		}
		if e.AtlasX != i%c.columns || e.AtlasY != i/c.columns {
			return fmt.Errorf("%w: index %d at atlas (%d,%d)", ErrCatalogInvalid, i, e.AtlasX, e.AtlasY)
		}
		pos := cell{e.AtlasX, e.AtlasY}
		if prev, dup := seenAtlas[pos]; dup {
			return fmt.Errorf("%w: indices %d and %d share atlas (%d,%d)", ErrCatalogInvalid, prev, i, pos.x, pos.y)
		}
		seenAtlas[pos] = i
		if prev, dup := seenPattern[e.Pattern]; dup {
			return fmt.Errorf("%w: pattern %s at indices %d and %d", ErrCatalogInvalid, e.Pattern, prev, i)
		}
		seenPattern[e.Pattern] = i
	}

	for key := 1; key < len(c.indexByKey); key++ {
		p := patternFromKey(key, s)
		r, err := c.Lookup(p)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCatalogInvalid, err)
		}
		got, err := c.Entry(r.Index())
		if err != nil || got.Pattern != p {
			return fmt.Errorf("%w: pattern %s does not round-trip", ErrCatalogInvalid, p)
		}
	}
	return nil
}

// patternFromKey inverts CornerPattern.Key.
func patternFromKey(key, stateCount int) CornerPattern {
	var corners [4]terrain.State
	for i := 3; i >= 0; i-- {
		corners[i] = terrain.State(key % stateCount)
		key /= stateCount
	}
	return NewPattern(corners[0], corners[1], corners[2], corners[3])
}
