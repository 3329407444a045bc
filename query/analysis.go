package query

import (
	"chess-features/position"
)

// AnalysisOptions selects what Analyze reports.
type AnalysisOptions struct {
	// LegalOnly drops pieces whose move onto the square is not legal right now.
	LegalOnly bool
	// SAN fills Entry.SAN for legal entries.
	SAN bool
}

// Analysis lists, for both colors, the pieces that reach a square.
type Analysis struct {
	Square position.Square `json:"square"`
	White  []Entry         `json:"white"`
	Black  []Entry         `json:"black"`
}

// ForColor returns the entries of one side.
func (a Analysis) ForColor(c position.Color) []Entry {
	if c == position.Black {
		return a.Black
	}
	return a.White
}

// Analyze reports every piece that geometrically attacks square, flagged with
// whether its move there is legal in the current position. Unlike Attackers and
// Defenders the square may be empty.
func Analyze(b *position.Board, square string, opts AnalysisOptions) (Analysis, error) {
	sq, err := position.ParseSquare(square)
	if err != nil {
		return Analysis{}, err
	}
	return Analysis{
		Square: sq,
		White:  collect(b, sq, position.White, opts.LegalOnly, opts.SAN),
		Black:  collect(b, sq, position.Black, opts.LegalOnly, opts.SAN),
	}, nil
}
