package game

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible map generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// Strategy names the map generation strategy. Unknown names fall back
	// to the default strategy with a warning.
	Strategy string

	// Strict links every pocket of the generated map to the spawn.
	Strict bool

	// Width and Height override the arena size when non-zero.
	Width  int
	Height int
}
