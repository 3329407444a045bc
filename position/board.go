package position

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Board is a position snapshot backed by the goosemg move generator.
//
// Every method except RemovePiece leaves the receiver untouched, and the oracle is
// always driven on a private copy, so a *Board can be read from many goroutines.
// RemovePiece exists for clones: take Clone(), mutate the clone, drop it.
type Board struct {
	g    gm.Board
	turn Color
}

// Placement pairs a piece with the square it stands on.
type Placement struct {
	Square Square
	Piece  Piece
}

// fenDefaults fill the fields a short FEN leaves out.
var fenDefaults = [...]string{"", "w", "-", "-", "0", "1"}

// ParseFEN builds a board from FEN text. Trailing fields may be omitted. Positions
// without kings are accepted; only syntax is checked.
func ParseFEN(fen string) (*Board, error) {
	norm, turn, err := normalizeFEN(fen)
	if err != nil {
		return nil, &MalformedFENError{FEN: fen, Err: err}
	}
	g, err := gm.ParseFEN(norm)
	if err != nil {
		return nil, &MalformedFENError{FEN: fen, Err: err}
	}
	return &Board{g: *g, turn: turn}, nil
}

// MustParseFEN panics on malformed input. Intended for fixed positions and tests.
func MustParseFEN(fen string) *Board {
	b, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

func normalizeFEN(fen string) (string, Color, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return "", White, errors.New("empty input")
	}
	if len(fields) > len(fenDefaults) {
		return "", White, fmt.Errorf("expected at most %d fields, got %d", len(fenDefaults), len(fields))
	}
	for i := len(fields); i < len(fenDefaults); i++ {
		fields = append(fields, fenDefaults[i])
	}

	if err := checkPlacement(fields[0]); err != nil {
		return "", White, err
	}

	var turn Color
	switch fields[1] {
	case "w":
		turn = White
	case "b":
		turn = Black
	default:
		return "", White, fmt.Errorf("bad side to move %q", fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			if !strings.ContainsRune("KQkq", ch) {
				return "", White, fmt.Errorf("bad castling field %q", fields[2])
			}
		}
	}

	if fields[3] != "-" {
		ep, err := ParseSquare(fields[3])
		if err != nil || (ep.Rank() != 2 && ep.Rank() != 5) {
			return "", White, fmt.Errorf("bad en passant field %q", fields[3])
		}
	}

	for _, counter := range fields[4:] {
		if n, err := strconv.Atoi(counter); err != nil || n < 0 {
			return "", White, fmt.Errorf("bad move counter %q", counter)
		}
	}
	return strings.Join(fields, " "), turn, nil
}

func checkPlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("expected 8 ranks, got %d", len(ranks))
	}
	for i, rank := range ranks {
		files := 0
		for _, ch := range rank {
			switch {
			case ch >= '1' && ch <= '8':
				files += int(ch - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", ch):
				files++
			default:
				return fmt.Errorf("bad piece %q on rank %d", ch, 8-i)
			}
		}
		if files != 8 {
			return fmt.Errorf("rank %d covers %d files", 8-i, files)
		}
	}
	return nil
}

// FEN renders the position.
func (b *Board) FEN() string {
	g := b.g
	return g.ToFEN()
}

func (b *Board) String() string { return b.FEN() }

// SideToMove reports whose turn it is.
func (b *Board) SideToMove() Color { return b.turn }

// PieceAt returns the occupant of sq, if any.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	if sq >= NumSquares {
		return Piece{}, false
	}
	return pieceFromOracle(b.g.PieceAt(gm.Square(sq)))
}

// Pieces lists the pieces of one color in ascending square order.
func (b *Board) Pieces(c Color) []Placement {
	out := make([]Placement, 0, 16)
	for sq := Square(0); sq < NumSquares; sq++ {
		if pc, ok := b.PieceAt(sq); ok && pc.Color == c {
			out = append(out, Placement{Square: sq, Piece: pc})
		}
	}
	return out
}

// LegalMoves returns the legal moves of the side to move.
func (b *Board) LegalMoves() []Move {
	g := b.g
	raw := g.GenerateMoves()
	out := make([]Move, len(raw))
	for i, m := range raw {
		out[i] = moveFromOracle(m)
	}
	return out
}

// MovesFrom returns the legal moves of the piece on sq. A piece of the side not to
// move has none.
func (b *Board) MovesFrom(sq Square) []Move {
	var out []Move
	for _, m := range b.LegalMoves() {
		if m.From == sq {
			out = append(out, m)
		}
	}
	return out
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// RemovePiece empties sq. Side to move, castling rights and en passant state are
// left as they were. Only call this on a board you own, normally a Clone.
func (b *Board) RemovePiece(sq Square) {
	if sq >= NumSquares {
		return
	}
	b.g.SetPiece(gm.Square(sq), gm.NoPiece)
}

// Play returns the position after m. The receiver is unchanged.
func (b *Board) Play(m Move) (*Board, error) {
	legal, err := b.resolve(m)
	if err != nil {
		return nil, err
	}
	next, ok := b.apply(legal)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIllegalMove, m.UCI())
	}
	return next, nil
}

// apply plays a move taken from LegalMoves on a clone.
func (b *Board) apply(m Move) (*Board, bool) {
	next := b.Clone()
	if ok, _ := next.g.MakeMove(m.raw); !ok {
		return nil, false
	}
	next.turn = b.turn.Other()
	return next, true
}

// ParseUCI finds the legal move written in coordinate notation.
func (b *Board) ParseUCI(s string) (Move, error) {
	from, to, promo, err := parseUCI(s)
	if err != nil {
		return Move{}, err
	}
	return b.resolve(Move{From: from, To: to, Promotion: promo})
}

// resolve matches m against the legal moves so callers may pass moves built by hand.
func (b *Board) resolve(m Move) (Move, error) {
	for _, lm := range b.LegalMoves() {
		if lm.From == m.From && lm.To == m.To && lm.Promotion == m.Promotion {
			return lm, nil
		}
	}
	return Move{}, fmt.Errorf("%w: %s in %s", ErrIllegalMove, m.UCI(), b.FEN())
}

// PseudoLegalMoves returns the side to move's moves before the king-safety filter.
func (b *Board) PseudoLegalMoves() []Move {
	g := b.g
	raw := g.GeneratePseudoMoves()
	out := make([]Move, len(raw))
	for i, m := range raw {
		out[i] = moveFromOracle(m)
	}
	return out
}
