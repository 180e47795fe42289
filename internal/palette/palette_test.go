package palette

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dualdig/internal/terrain"
)

func TestLoadDefault(t *testing.T) {
	p, err := LoadDefault()
	if err != nil {
		t.Fatalf("Failed to load palette: %v", err)
	}

	if len(p.Fg) != terrain.StateCount {
		t.Errorf("Expected %d terrain colors, got %d", terrain.StateCount, len(p.Fg))
	}
	if p.Quadrants[0] != ' ' || p.Quadrants[15] != '█' {
		t.Errorf("Unexpected quadrant glyphs %q", string(p.Quadrants[:]))
	}
	if p.PlayerGlyph != '@' {
		t.Errorf("Expected player glyph '@', got %c", p.PlayerGlyph)
	}
	if p.Fg[terrain.Diggable] == p.Fg[terrain.Undiggable] {
		t.Error("Diggable and undiggable share a color")
	}
}

func TestParseRejectsBadFiles(t *testing.T) {
	good, err := Load[File]("palette.json")
	if err != nil {
		t.Fatalf("Failed to load palette.json: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(f *File)
	}{
		{"missing terrain", func(f *File) { f.Terrain = f.Terrain[:2] }},
		{"reordered terrain", func(f *File) { f.Terrain[0], f.Terrain[1] = f.Terrain[1], f.Terrain[0] }},
		{"bad color", func(f *File) { f.Terrain[2].Fg = "#GG0000" }},
		{"short quadrants", func(f *File) { f.Quadrants = "abc" }},
		{"bad tint", func(f *File) { f.HomeBaseTint = "blue" }},
	}
	for _, tt := range tests {
		f := good
		f.Terrain = append([]TerrainDef(nil), good.Terrain...)
		tt.mutate(&f)
		if _, err := Parse(f); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		want  tcell.Color
		valid bool
	}{
		{"#FF0000", tcell.NewRGBColor(255, 0, 0), true},
		{"00FF00", tcell.NewRGBColor(0, 255, 0), true},
		{"#0000FF", tcell.NewRGBColor(0, 0, 255), true},
		{"invalid", tcell.ColorDefault, false},
		{"#FFF", tcell.ColorDefault, false}, // Too short
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
		if tt.valid && got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
