package features

import "chess-features/position"

type zoneSquare struct {
	square position.Square
	weight int
}

var centralZone = buildZone(
	[]string{"d4", "e4", "d5", "e5"},
	[]string{"c4", "f4", "c5", "f5", "d3", "e3", "d6", "e6", "c3", "f3", "c6", "f6"},
)

func buildZone(core, ring []string) []zoneSquare {
	zone := make([]zoneSquare, 0, len(core)+len(ring))
	for _, s := range core {
		zone = append(zone, zoneSquare{position.MustParseSquare(s), 2})
	}
	for _, s := range ring {
		zone = append(zone, zoneSquare{position.MustParseSquare(s), 1})
	}
	return zone
}

// centralSquares returns the 16 squares of the central zone, core first.
func centralSquares() []position.Square {
	out := make([]position.Square, len(centralZone))
	for i, z := range centralZone {
		out[i] = z.square
	}
	return out
}
