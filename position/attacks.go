package position

import (
	gm "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
)

// Leaper lookup tables. pawnSources[c][sq] holds the squares from which a pawn of
// color c attacks sq, i.e. the reverse of its capture pattern.
var (
	knightMasks [NumSquares]uint64
	kingMasks   [NumSquares]uint64
	pawnSources [2][NumSquares]uint64
)

var (
	knightSteps = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
)

func init() {
	initLeaperMasks()
}

func initLeaperMasks() {
	for sq := 0; sq < NumSquares; sq++ {
		file, rank := sq%8, sq/8
		knightMasks[sq] = stepMask(file, rank, knightSteps[:])
		kingMasks[sq] = stepMask(file, rank, kingSteps[:])
		// A white pawn hits sq from one rank below, a black pawn from one rank above.
		pawnSources[White][sq] = stepMask(file, rank, [][2]int{{-1, -1}, {1, -1}})
		pawnSources[Black][sq] = stepMask(file, rank, [][2]int{{-1, 1}, {1, 1}})
	}
}

func stepMask(file, rank int, steps [][2]int) uint64 {
	var mask uint64
	for _, d := range steps {
		f, r := file+d[0], rank+d[1]
		if f < 0 || f > 7 || r < 0 || r > 7 {
			continue
		}
		mask |= 1 << uint(r*8+f)
	}
	return mask
}

// sideBitboards returns the oracle's per-piece boards for one color.
func (b *Board) sideBitboards(c Color) gm.Bitboards {
	return b.g.Bitboards(c.oracle())
}

// PseudoLegalAttackers returns the pieces of color c that attack sq by movement
// geometry alone. Pins, checks and whose turn it is are ignored. sq may be empty or
// hold a piece of either color.
func (b *Board) PseudoLegalAttackers(c Color, sq Square) SquareSet {
	if sq >= NumSquares {
		return 0
	}
	us := b.sideBitboards(c)
	occ := us.All | b.sideBitboards(c.Other()).All
	target := uint8(sq)

	var hit uint64
	hit |= dragontoothmg.CalculateRookMoveBitboard(target, occ) & (us.Rooks | us.Queens)
	hit |= dragontoothmg.CalculateBishopMoveBitboard(target, occ) & (us.Bishops | us.Queens)
	hit |= knightMasks[sq] & us.Knights
	hit |= kingMasks[sq] & us.Kings
	hit |= pawnSources[c][sq] & us.Pawns
	return SquareSet(hit)
}

// IsAttacked reports whether any piece of color c geometrically attacks sq.
func (b *Board) IsAttacked(c Color, sq Square) bool {
	return !b.PseudoLegalAttackers(c, sq).Empty()
}
