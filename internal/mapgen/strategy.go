// Package mapgen generates structurally valid terrain layouts.
//
// Every layout shares the same zones, top to bottom: a border ring, the home
// base, a separator row with one entrance gap, a guarded neck corridor and
// the body. Strategies differ only in how the body is filled.
package mapgen

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy selects the body-fill algorithm.
type Strategy int

const (
	// BellJar scatters weighted random terrain and carves two random walks.
	BellJar Strategy = iota
	// SimpleBox fills the body with Diggable. It uses no randomness.
	SimpleBox
	// OpenField scatters mostly Empty terrain around forced clearings.
	OpenField
	// Maze stamps a wall lattice over Diggable and punches openings.
	Maze
	// Cavern carves circular caves joined by tunnels out of solid rock.
	Cavern
)

// DefaultStrategy is used when a requested strategy is unknown.
const DefaultStrategy = BellJar

// ErrUnknownStrategy is returned for strategy names that do not parse.
var ErrUnknownStrategy = errors.New("mapgen: unknown strategy")

var strategyNames = map[Strategy]string{
	BellJar:   "belljar",
	SimpleBox: "simplebox",
	OpenField: "openfield",
	Maze:      "maze",
	Cavern:    "cavern",
}

// Strategies returns every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{BellJar, SimpleBox, OpenField, Maze, Cavern}
}

// String returns the strategy name.
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	_, ok := strategyNames[s]
	return ok
}

// Next returns the following strategy, wrapping around.
func (s Strategy) Next() Strategy {
	all := Strategies()
	for i, v := range all {
		if v == s {
			return all[(i+1)%len(all)]
		}
	}
	return DefaultStrategy
}

// ParseStrategy parses a strategy name. Case, dashes and underscores are ignored.
func ParseStrategy(name string) (Strategy, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.NewReplacer("-", "", "_", "", " ", "").Replace(norm)
	for s, n := range strategyNames {
		if n == norm {
			return s, nil
		}
	}
	return DefaultStrategy, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}
