// Package tileset enumerates corner patterns and maps them to atlas tiles.
package tileset

import (
	"fmt"
	"image"

	"github.com/samdwyer/dualdig/internal/terrain"
)

// CornerPattern holds the four logical cells sampled by one visual tile.
type CornerPattern struct {
	TopLeft     terrain.State
	TopRight    terrain.State
	BottomLeft  terrain.State
	BottomRight terrain.State
}

// NewPattern builds a pattern from corners in TL, TR, BL, BR order.
func NewPattern(tl, tr, bl, br terrain.State) CornerPattern {
	return CornerPattern{TopLeft: tl, TopRight: tr, BottomLeft: bl, BottomRight: br}
}

// Corners returns the corners in TL, TR, BL, BR order.
func (p CornerPattern) Corners() [4]terrain.State {
	return [4]terrain.State{p.TopLeft, p.TopRight, p.BottomLeft, p.BottomRight}
}

// IsEmpty reports whether every corner is Empty.
func (p CornerPattern) IsEmpty() bool {
	return p == CornerPattern{}
}

// Key flattens the pattern into a base-stateCount number, TopLeft most significant.
// The second result is false if any corner is outside the state range.
func (p CornerPattern) Key(stateCount int) (int, bool) {
	key := 0
	for _, c := range p.Corners() {
		if int(c) >= stateCount {
			return 0, false
		}
		key = key*stateCount + int(c)
	}
	return key, true
}

// String formats the pattern as (tl,tr,bl,br) ordinals.
func (p CornerPattern) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", p.TopLeft, p.TopRight, p.BottomLeft, p.BottomRight)
}

// Entry is one catalog slot: a pattern, its tile index and its atlas cell.
type Entry struct {
	Pattern CornerPattern
	Index   int
	AtlasX  int
	AtlasY  int
}

// SourceRect returns the atlas sub-rectangle for a square tile size in pixels.
func (e Entry) SourceRect(tileSize int) image.Rectangle {
	x0, y0 := e.AtlasX*tileSize, e.AtlasY*tileSize
	return image.Rect(x0, y0, x0+tileSize, y0+tileSize)
}

// Enumerate generates every non-sentinel pattern over stateCount states.
// TopLeft is the outermost loop and BottomRight the innermost; indices are
// assigned in visitation order so an externally authored atlas stays addressable.
func Enumerate(stateCount, columns int) []Entry {
	if stateCount <= 0 || columns <= 0 {
		return nil
	}

	total := stateCount * stateCount * stateCount * stateCount
	entries := make([]Entry, 0, total-1)
	for tl := 0; tl < stateCount; tl++ {
		for tr := 0; tr < stateCount; tr++ {
			for bl := 0; bl < stateCount; bl++ {
				for br := 0; br < stateCount; br++ {
					p := NewPattern(terrain.State(tl), terrain.State(tr), terrain.State(bl), terrain.State(br))
					if p.IsEmpty() {
						continue
					}
					idx := len(entries)
					entries = append(entries, Entry{
						Pattern: p,
						Index:   idx,
						AtlasX:  idx % columns,
						AtlasY:  idx / columns,
					})
				}
			}
		}
	}
	return entries
}
