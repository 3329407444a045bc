// Package query answers attacker and defender questions about a single square.
//
// Two attack relations are kept apart on purpose. Attackers and Defenders are
// legality-aware: they consult the legal move list, so pins, checks and whose turn
// it is all matter. IsHanging uses movement geometry only and is a cheap filter.
package query

import (
	"chess-features/position"
)

// Entry describes one piece that can move onto the queried square.
type Entry struct {
	From  position.Square `json:"from"`
	Piece position.Piece  `json:"piece"`
	// Move is the UCI encoding of the move onto the square.
	Move  string `json:"move"`
	Legal bool   `json:"legal"`
	// SAN is only filled when WithSAN is given and the move is legal.
	SAN string `json:"san,omitempty"`
}

type options struct {
	san bool
}

// Option tunes a query.
type Option func(*options)

// WithSAN adds standard algebraic notation to each legal entry.
func WithSAN() Option {
	return func(o *options) { o.san = true }
}

func collectOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Attackers lists the opposing pieces that can legally capture the occupant of
// square right now. When the occupant's side is on move the list is empty.
func Attackers(b *position.Board, square string, opts ...Option) ([]Entry, error) {
	sq, err := position.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	return AttackersAt(b, sq, opts...)
}

// AttackersAt is Attackers for an already parsed square.
func AttackersAt(b *position.Board, sq position.Square, opts ...Option) ([]Entry, error) {
	occupant, err := occupantAt(b, sq)
	if err != nil {
		return nil, err
	}
	o := collectOptions(opts)
	return collect(b, sq, occupant.Color.Other(), true, o.san), nil
}

// Defenders lists the pieces of the occupant's color that could legally move onto
// square if the occupant were taken off the board.
func Defenders(b *position.Board, square string, opts ...Option) ([]Entry, error) {
	sq, err := position.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	return DefendersAt(b, sq, opts...)
}

// DefendersAt is Defenders for an already parsed square. The question is answered on
// a private clone with the square emptied, so pins and checks that only appear once
// the square is vacated are taken into account. The caller's board is not touched.
func DefendersAt(b *position.Board, sq position.Square, opts ...Option) ([]Entry, error) {
	occupant, err := occupantAt(b, sq)
	if err != nil {
		return nil, err
	}
	o := collectOptions(opts)

	vacated := b.Clone()
	vacated.RemovePiece(sq)
	return collect(vacated, sq, occupant.Color, true, o.san), nil
}

// IsHanging reports whether the occupant of square is attacked by at least one
// opposing piece and covered by none of its own, by geometry alone.
func IsHanging(b *position.Board, square string) (bool, error) {
	sq, err := position.ParseSquare(square)
	if err != nil {
		return false, err
	}
	return IsHangingAt(b, sq)
}

// IsHangingAt is IsHanging for an already parsed square.
func IsHangingAt(b *position.Board, sq position.Square) (bool, error) {
	occupant, err := occupantAt(b, sq)
	if err != nil {
		return false, err
	}
	attacked := b.IsAttacked(occupant.Color.Other(), sq)
	covered := b.IsAttacked(occupant.Color, sq)
	return attacked && !covered, nil
}

func occupantAt(b *position.Board, sq position.Square) (position.Piece, error) {
	pc, ok := b.PieceAt(sq)
	if !ok {
		return position.Piece{}, &position.EmptySquareError{Square: sq}
	}
	return pc, nil
}

// collect walks the pieces of color c that geometrically reach sq and pairs each
// with its legal move onto sq, if there is one. A pawn push onto sq is never
// included because a pawn does not attack the square in front of it, and a pawn
// capture onto an empty sq is never legal.
func collect(b *position.Board, sq position.Square, c position.Color, legalOnly, san bool) []Entry {
	entries := []Entry{}
	candidates := b.PseudoLegalAttackers(c, sq)
	if candidates.Empty() {
		return entries
	}

	onto := legalMovesOnto(b, sq)
	for _, from := range candidates.Squares() {
		pc, _ := b.PieceAt(from)
		m, legal := onto[from]
		if legalOnly && !legal {
			continue
		}
		e := Entry{From: from, Piece: pc, Legal: legal}
		if legal {
			e.Move = m.UCI()
			if san {
				e.SAN, _ = b.SAN(m)
			}
		} else {
			e.Move = position.Move{From: from, To: sq}.UCI()
		}
		entries = append(entries, e)
	}
	return entries
}

// legalMovesOnto indexes the legal moves landing on sq by origin. Of several
// promotions from one origin the queen promotion is kept.
func legalMovesOnto(b *position.Board, sq position.Square) map[position.Square]position.Move {
	out := make(map[position.Square]position.Move)
	for _, m := range b.LegalMoves() {
		if m.To != sq {
			continue
		}
		if prev, ok := out[m.From]; ok && prev.Promotion == position.Queen {
			continue
		}
		out[m.From] = m
	}
	return out
}
