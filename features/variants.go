package features

import (
	"fmt"

	"chess-features/position"
	"chess-features/query"
)

// The functions here are the unweighted scorings an earlier model was trained on.
// They are kept next to the weighted ones so exported datasets can be checked
// against either.

// RawMobility counts the legal moves of every piece of c without weights.
func RawMobility(b *position.Board, c position.Color) (int, error) {
	total := 0
	for _, p := range b.Pieces(c) {
		n, err := query.PieceMoveCountAt(b, p.Square)
		if err != nil {
			return 0, fmt.Errorf("moves of %s: %w", p.Square, err)
		}
		total += n
	}
	return total, nil
}

// ZoneCount is the number of central-zone squares held by each color.
type ZoneCount struct {
	White int `json:"white"`
	Black int `json:"black"`
}

// ZoneOccupancy counts the pieces of both colors on the 16 central squares.
func ZoneOccupancy(b *position.Board) ZoneCount {
	var zc ZoneCount
	for _, sq := range centralSquares() {
		pc, ok := b.PieceAt(sq)
		if !ok {
			continue
		}
		if pc.Color == position.White {
			zc.White++
		} else {
			zc.Black++
		}
	}
	return zc
}
