package palette

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dualdig/internal/terrain"
)

// TerrainDef defines how one terrain state is drawn.
type TerrainDef struct {
	State string `json:"state"` // Must match terrain.State.String() for its ordinal
	Glyph string `json:"glyph"` // Full-cell character for debug views
	Fg    string `json:"fg"`    // Hex foreground color
	Bg    string `json:"bg"`    // Hex background color
}

// GlyphDef is a single character and its color.
type GlyphDef struct {
	Glyph string `json:"glyph"`
	Color string `json:"color"`
}

// File represents the structure of palette.json.
type File struct {
	Terrain      []TerrainDef `json:"terrain"`   // Indexed by terrain.State ordinal
	Quadrants    string       `json:"quadrants"` // 16 runes indexed by corner mask TL=8 TR=4 BL=2 BR=1
	HomeBaseTint string       `json:"homeBaseTint"`
	Player       GlyphDef     `json:"player"`
	Status       string       `json:"status"`
}

// Palette holds parsed rendering tables.
type Palette struct {
	Glyphs       []rune        // per terrain ordinal
	Fg           []tcell.Color // per terrain ordinal
	Bg           []tcell.Color // per terrain ordinal
	Quadrants    [16]rune
	HomeBaseTint tcell.Color
	PlayerGlyph  rune
	PlayerColor  tcell.Color
	StatusColor  tcell.Color
}

// Parse validates a palette file and resolves its colors.
func Parse(f File) (*Palette, error) {
	if len(f.Terrain) != terrain.StateCount {
		return nil, fmt.Errorf("palette has %d terrain entries, want %d", len(f.Terrain), terrain.StateCount)
	}

	p := &Palette{
		Glyphs: make([]rune, terrain.StateCount),
		Fg:     make([]tcell.Color, terrain.StateCount),
		Bg:     make([]tcell.Color, terrain.StateCount),
	}
	for i, def := range f.Terrain {
		if want := terrain.State(i).String(); def.State != want {
			return nil, fmt.Errorf("palette terrain entry %d is %q, want %q", i, def.State, want)
		}
		var err error
		if p.Fg[i], err = ParseHexColor(def.Fg); err != nil {
			return nil, fmt.Errorf("terrain %s fg: %w", def.State, err)
		}
		if p.Bg[i], err = ParseHexColor(def.Bg); err != nil {
			return nil, fmt.Errorf("terrain %s bg: %w", def.State, err)
		}
		p.Glyphs[i] = firstRune(def.Glyph)
	}

	quads := []rune(f.Quadrants)
	if len(quads) != len(p.Quadrants) {
		return nil, fmt.Errorf("palette has %d quadrant glyphs, want %d", len(quads), len(p.Quadrants))
	}
	copy(p.Quadrants[:], quads)

	var err error
	if p.HomeBaseTint, err = ParseHexColor(f.HomeBaseTint); err != nil {
		return nil, fmt.Errorf("home base tint: %w", err)
	}
	if p.PlayerColor, err = ParseHexColor(f.Player.Color); err != nil {
		return nil, fmt.Errorf("player color: %w", err)
	}
	if p.StatusColor, err = ParseHexColor(f.Status); err != nil {
		return nil, fmt.Errorf("status color: %w", err)
	}
	p.PlayerGlyph = firstRune(f.Player.Glyph)
	return p, nil
}

// LoadDefault loads and parses the embedded palette.json.
func LoadDefault() (*Palette, error) {
	f, err := Load[File]("palette.json")
	if err != nil {
		return nil, err
	}
	return Parse(f)
}

// MustLoadDefault loads the embedded palette, panicking on error.
func MustLoadDefault() *Palette {
	p, err := LoadDefault()
	if err != nil {
		panic(err)
	}
	return p
}

// TerrainStyle returns the full-cell style for a terrain state.
func (p *Palette) TerrainStyle(s terrain.State) tcell.Style {
	return tcell.StyleDefault.Foreground(p.Fg[s]).Background(p.Bg[s])
}

// firstRune returns the first rune of s, or '?' if s is empty.
func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return '?'
}
