package position

import (
	"fmt"
	"strings"
)

const sanPieceLetters = "  NBRQK"

// SAN renders m in standard algebraic notation for this position, including the
// check or mate suffix.
func (b *Board) SAN(m Move) (string, error) {
	legal := b.LegalMoves()
	resolved, ok := findMove(legal, m)
	if !ok {
		return "", fmt.Errorf("%w: %s in %s", ErrIllegalMove, m.UCI(), b.FEN())
	}
	return b.sanBody(resolved, legal) + b.checkSuffix(resolved), nil
}

// ParseSAN finds the legal move written in standard algebraic notation. Check and
// annotation suffixes are optional, "0-0" is read as "O-O" and a promotion may omit
// the "=".
func (b *Board) ParseSAN(san string) (Move, error) {
	want := normalizeSAN(san)
	if want == "" {
		return Move{}, fmt.Errorf("%w: empty SAN", ErrIllegalMove)
	}
	legal := b.LegalMoves()
	for _, m := range legal {
		if b.sanBody(m, legal) == want {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("%w: %q in %s", ErrIllegalMove, san, b.FEN())
}

func findMove(legal []Move, m Move) (Move, bool) {
	for _, lm := range legal {
		if lm.From == m.From && lm.To == m.To && lm.Promotion == m.Promotion {
			return lm, true
		}
	}
	return Move{}, false
}

func (b *Board) sanBody(m Move, legal []Move) string {
	mover, _ := b.PieceAt(m.From)
	if mover.Kind == King && abs(m.From.File()-m.To.File()) == 2 {
		if m.To.File() == 6 {
			return "O-O"
		}
		return "O-O-O"
	}

	_, occupied := b.PieceAt(m.To)
	capture := occupied || (mover.Kind == Pawn && m.From.File() != m.To.File())

	var sb strings.Builder
	if mover.Kind == Pawn {
		if capture {
			sb.WriteByte('a' + byte(m.From.File()))
		}
	} else {
		sb.WriteByte(sanPieceLetters[mover.Kind])
		sb.WriteString(disambiguation(b, m, mover.Kind, legal))
	}
	if capture {
		sb.WriteByte('x')
	}
	sb.WriteString(m.To.String())
	if m.Promotion != NoKind {
		sb.WriteByte('=')
		sb.WriteByte(sanPieceLetters[m.Promotion])
	}
	return sb.String()
}

func disambiguation(b *Board, m Move, kind Kind, legal []Move) string {
	ambiguous, sameFile, sameRank := false, false, false
	for _, other := range legal {
		if other.From == m.From || other.To != m.To {
			continue
		}
		if pc, _ := b.PieceAt(other.From); pc.Kind != kind {
			continue
		}
		ambiguous = true
		if other.From.File() == m.From.File() {
			sameFile = true
		}
		if other.From.Rank() == m.From.Rank() {
			sameRank = true
		}
	}
	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return m.From.String()[:1]
	case !sameRank:
		return m.From.String()[1:]
	}
	return m.From.String()
}

func (b *Board) checkSuffix(m Move) string {
	next := b.Clone()
	if ok, _ := next.g.MakeMove(m.raw); !ok {
		return ""
	}
	if !next.g.InCheck(b.turn.Other().oracle()) {
		return ""
	}
	if next.g.HasLegalMoves() {
		return "+"
	}
	return "#"
}

func normalizeSAN(san string) string {
	s := strings.TrimSpace(san)
	s = strings.TrimSuffix(s, "e.p.")
	s = strings.TrimRight(s, "+#!? ")
	switch s {
	case "0-0":
		return "O-O"
	case "0-0-0":
		return "O-O-O"
	}
	if n := len(s); n >= 3 && strings.IndexByte("NBRQ", s[n-1]) >= 0 && (s[n-2] == '1' || s[n-2] == '8') {
		s = s[:n-1] + "=" + s[n-1:]
	}
	return s
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
