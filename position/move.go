package position

import (
	"fmt"
	"strings"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

// Move is a move produced by a Board. The oracle encoding is carried along so the
// move can be played or rendered as SAN without regenerating it.
type Move struct {
	From      Square
	To        Square
	Promotion Kind

	raw gm.Move
}

func moveFromOracle(m gm.Move) Move {
	return Move{
		From:      Square(m.From()),
		To:        Square(m.To()),
		Promotion: kindFromOracle(m.PromotionPiece()),
		raw:       m,
	}
}

// UCI renders the move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) UCI() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoKind {
		s += string(kindLetters[m.Promotion])
	}
	return s
}

func (m Move) String() string { return m.UCI() }

// parseUCI splits coordinate notation into its parts without consulting a board.
func parseUCI(s string) (from, to Square, promo Kind, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 4 && len(s) != 5 {
		return 0, 0, NoKind, fmt.Errorf("%w: %q", ErrIllegalMove, s)
	}
	if from, err = ParseSquare(s[0:2]); err != nil {
		return 0, 0, NoKind, err
	}
	if to, err = ParseSquare(s[2:4]); err != nil {
		return 0, 0, NoKind, err
	}
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return 0, 0, NoKind, fmt.Errorf("%w: bad promotion in %q", ErrIllegalMove, s)
		}
	}
	return from, to, promo, nil
}
