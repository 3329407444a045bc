// Package dataset builds labeled feature records and the position datasets they are
// computed from.
package dataset

import (
	"chess-features/features"
	"chess-features/position"
)

// Record is a feature vector labeled with the outcome of its game.
type Record struct {
	features.Vector
	Result          string  `json:"result"`
	WinningSide     Outcome `json:"winning_side"`
	RegressionScore float64 `json:"regression_score"`
}

// Build parses fen, computes the features of side and labels them with result.
func Build(fen, side, result string) (Record, error) {
	b, err := position.ParseFEN(fen)
	if err != nil {
		return Record{}, err
	}
	c, err := position.ParseColor(side)
	if err != nil {
		return Record{}, err
	}
	return BuildFromBoard(b, c, result)
}

// BuildFromBoard is Build for a parsed board.
func BuildFromBoard(b *position.Board, side position.Color, result string) (Record, error) {
	v, err := features.Extract(b, side)
	if err != nil {
		return Record{}, err
	}
	return Label(v, result), nil
}

// Label attaches result to an already computed vector.
func Label(v features.Vector, result string) Record {
	o := ParseOutcome(result)
	return Record{
		Vector:          v,
		Result:          result,
		WinningSide:     o,
		RegressionScore: Score(o, v.Side),
	}
}
