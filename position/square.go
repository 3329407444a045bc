package position

import (
	"math/bits"
	"strings"
)

// Square is a board index, a1 = 0 through h8 = 63, file-major within a rank.
type Square uint8

const NumSquares = 64

// ParseSquare converts algebraic text ("e4", case-insensitive) to a Square.
// Anything else is rejected with *InvalidSquareError; values are never clamped.
func ParseSquare(s string) (Square, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	if len(t) != 2 || t[0] < 'a' || t[0] > 'h' || t[1] < '1' || t[1] > '8' {
		return 0, &InvalidSquareError{Input: s}
	}
	return SquareAt(int(t[0]-'a'), int(t[1]-'1')), nil
}

// MustParseSquare is ParseSquare for constant inputs; it panics on bad text.
func MustParseSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// SquareAt builds a square from zero-based file and rank.
func SquareAt(file, rank int) Square { return Square(rank*8 + file) }

func (sq Square) File() int { return int(sq) % 8 }
func (sq Square) Rank() int { return int(sq) / 8 }

func (sq Square) String() string {
	if sq >= NumSquares {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

func (sq Square) MarshalText() ([]byte, error) { return []byte(sq.String()), nil }

func (sq *Square) UnmarshalText(text []byte) error {
	v, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*sq = v
	return nil
}

func (sq Square) bb() uint64 { return 1 << uint(sq) }

// SquareSet is a bitboard of squares.
type SquareSet uint64

// NewSquareSet collects the given squares.
func NewSquareSet(squares ...Square) SquareSet {
	var s SquareSet
	for _, sq := range squares {
		s |= SquareSet(sq.bb())
	}
	return s
}

func (s SquareSet) Has(sq Square) bool { return s&SquareSet(sq.bb()) != 0 }
func (s SquareSet) Len() int          { return bits.OnesCount64(uint64(s)) }
func (s SquareSet) Empty() bool        { return s == 0 }

// Squares lists the members in ascending index order.
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Len())
	for x := uint64(s); x != 0; x &= x - 1 {
		out = append(out, Square(bits.TrailingZeros64(x)))
	}
	return out
}
