// Package palette provides the embedded rendering tables for terrain and tiles.
package palette

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
