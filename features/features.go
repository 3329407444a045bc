// Package features turns a board into per-side positional scalars.
package features

import (
	"fmt"

	"chess-features/position"
	"chess-features/query"
)

// Vector bundles the features of one side. It is compared by value.
type Vector struct {
	Side       position.Color `json:"side"`
	Connection int            `json:"connection"`
	Mobility   float64        `json:"mobility"`
	Centrality int            `json:"centrality"`
}

var mobilityWeights = map[position.Kind]float64{
	position.King:   0.5,
	position.Bishop: 1.5,
	position.Knight: 1.5,
	position.Rook:   1.5,
	position.Queen:  2.0,
}

// MobilityWeight is the factor applied to a piece's legal move count.
func MobilityWeight(k position.Kind) float64 {
	if w, ok := mobilityWeights[k]; ok {
		return w
	}
	return 1.0
}

// Connection sums the number of legal defenders of every piece of c.
func Connection(b *position.Board, c position.Color) (int, error) {
	total := 0
	for _, p := range b.Pieces(c) {
		def, err := query.DefendersAt(b, p.Square)
		if err != nil {
			return 0, fmt.Errorf("defenders of %s: %w", p.Square, err)
		}
		total += len(def)
	}
	return total, nil
}

// Mobility sums the weighted legal move counts of every piece of c. Only the side
// to move has legal moves, so the other side scores 0.
func Mobility(b *position.Board, c position.Color) (float64, error) {
	total := 0.0
	for _, p := range b.Pieces(c) {
		n, err := query.PieceMoveCountAt(b, p.Square)
		if err != nil {
			return 0, fmt.Errorf("moves of %s: %w", p.Square, err)
		}
		total += float64(n) * MobilityWeight(p.Piece.Kind)
	}
	return total, nil
}

// Centrality scores occupation of the 16 central squares by c: 2 per core square,
// 1 per ring or corner square.
func Centrality(b *position.Board, c position.Color) int {
	score := 0
	for _, z := range centralZone {
		pc, ok := b.PieceAt(z.square)
		if !ok || pc.Color != c {
			continue
		}
		score += z.weight
	}
	return score
}

// Extract computes all features of c.
func Extract(b *position.Board, c position.Color) (Vector, error) {
	conn, err := Connection(b, c)
	if err != nil {
		return Vector{}, err
	}
	mob, err := Mobility(b, c)
	if err != nil {
		return Vector{}, err
	}
	return Vector{
		Side:       c,
		Connection: conn,
		Mobility:   mob,
		Centrality: Centrality(b, c),
	}, nil
}

// ExtractForSide is Extract with a textual side ("white" or "black").
func ExtractForSide(b *position.Board, side string) (Vector, error) {
	c, err := position.ParseColor(side)
	if err != nil {
		return Vector{}, err
	}
	return Extract(b, c)
}
