package position

import (
	"strings"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

// Kind is a colorless piece type.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindLetters = [...]byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

// Piece exists only as an occupant of a board square.
type Piece struct {
	Color Color
	Kind  Kind
}

// Symbol returns the FEN letter: upper case for White, lower case for Black.
func (p Piece) Symbol() string {
	if p.Kind == NoKind || int(p.Kind) >= len(kindLetters) {
		return ""
	}
	s := string(kindLetters[p.Kind])
	if p.Color == White {
		return strings.ToUpper(s)
	}
	return s
}

func (p Piece) String() string { return p.Color.String() + " " + p.Kind.String() }

func (p Piece) MarshalText() ([]byte, error) { return []byte(p.Symbol()), nil }

var fromOracle = map[gm.Piece]Piece{
	gm.WhitePawn:   {White, Pawn},
	gm.WhiteKnight: {White, Knight},
	gm.WhiteBishop: {White, Bishop},
	gm.WhiteRook:   {White, Rook},
	gm.WhiteQueen:  {White, Queen},
	gm.WhiteKing:   {White, King},
	gm.BlackPawn:   {Black, Pawn},
	gm.BlackKnight: {Black, Knight},
	gm.BlackBishop: {Black, Bishop},
	gm.BlackRook:   {Black, Rook},
	gm.BlackQueen:  {Black, Queen},
	gm.BlackKing:   {Black, King},
}

func pieceFromOracle(p gm.Piece) (Piece, bool) {
	pc, ok := fromOracle[p]
	return pc, ok
}

// kindFromOracle strips the color bit goosemg keeps in bit 3.
func kindFromOracle(p gm.Piece) Kind {
	if pc, ok := fromOracle[p]; ok {
		return pc.Kind
	}
	return NoKind
}
