package query

import (
	"errors"
	"sort"

	"chess-features/position"
)

// ErrSANNeedsLegal is returned when SAN output is asked for pseudo-legal moves.
var ErrSANNeedsLegal = errors.New("SAN output requires legal moves")

// MovesForPiece lists the moves of the piece on square, as UCI strings or, with
// san set, in standard algebraic notation. With legalOnly unset the king-safety
// filter is skipped. Only the side to move has moves.
func MovesForPiece(b *position.Board, square string, legalOnly, san bool) ([]string, error) {
	if san && !legalOnly {
		return nil, ErrSANNeedsLegal
	}
	sq, err := position.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	if _, err := occupantAt(b, sq); err != nil {
		return nil, err
	}

	var moves []position.Move
	if legalOnly {
		moves = b.MovesFrom(sq)
	} else {
		for _, m := range b.PseudoLegalMoves() {
			if m.From == sq {
				moves = append(moves, m)
			}
		}
	}

	out := make([]string, 0, len(moves))
	for _, m := range moves {
		if !san {
			out = append(out, m.UCI())
			continue
		}
		s, err := b.SAN(m)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}

// PieceMoveCount counts the legal moves of the piece on square.
func PieceMoveCount(b *position.Board, square string) (int, error) {
	sq, err := position.ParseSquare(square)
	if err != nil {
		return 0, err
	}
	return PieceMoveCountAt(b, sq)
}

// PieceMoveCountAt is PieceMoveCount for an already parsed square.
func PieceMoveCountAt(b *position.Board, sq position.Square) (int, error) {
	if _, err := occupantAt(b, sq); err != nil {
		return 0, err
	}
	return len(b.MovesFrom(sq)), nil
}
