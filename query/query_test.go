package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chess-features/position"
)

func froms(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.From.String()
	}
	return out
}

func TestAttackersRejectsBadSquares(t *testing.T) {
	b := position.MustParseFEN(position.StartFEN)

	_, err := Attackers(b, "z9")
	assert.ErrorIs(t, err, position.ErrInvalidSquare)

	_, err = Defenders(b, "e4")
	var empty *position.EmptySquareError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, "e4", empty.Square.String())

	_, err = IsHanging(b, "e4")
	assert.ErrorIs(t, err, position.ErrEmptySquare)
}

func TestLoneKingHasNoAttackersOrDefenders(t *testing.T) {
	b := position.MustParseFEN("8/8/8/8/8/8/8/4K3 w - - 0 1")

	att, err := Attackers(b, "e1")
	require.NoError(t, err)
	assert.Empty(t, att)

	def, err := Defenders(b, "e1")
	require.NoError(t, err)
	assert.Empty(t, def)

	hanging, err := IsHanging(b, "e1")
	require.NoError(t, err)
	assert.False(t, hanging)
}

func TestDefendersAreSortedByOrigin(t *testing.T) {
	b := position.MustParseFEN("4k3/8/8/8/4P3/2NB4/8/4K3 w - - 0 1")

	def, err := Defenders(b, "e4", WithSAN())
	require.NoError(t, err)
	assert.Equal(t, []string{"c3", "d3"}, froms(def))
	assert.Equal(t, "c3e4", def[0].Move)
	assert.Equal(t, "Ne4", def[0].SAN)
	assert.Equal(t, "Be4", def[1].SAN)
	assert.True(t, def[0].Legal)
	assert.Equal(t, position.Piece{Color: position.White, Kind: position.Knight}, def[0].Piece)

	att, err := Attackers(b, "e4")
	require.NoError(t, err)
	assert.Empty(t, att)
}

func TestDefendersLeaveBoardUntouched(t *testing.T) {
	b := position.MustParseFEN("4k3/8/8/8/4P3/2NB4/8/4K3 w - - 0 1")
	before := b.FEN()

	_, err := Defenders(b, "e4")
	require.NoError(t, err)
	assert.Equal(t, before, b.FEN())
	pc, ok := b.PieceAt(position.MustParseSquare("e4"))
	assert.True(t, ok)
	assert.Equal(t, position.Pawn, pc.Kind)
}

func TestPawnsDoNotDefendVacatedSquare(t *testing.T) {
	b := position.MustParseFEN("4k3/8/8/8/8/4N3/4P3/4K3 w - - 0 1")
	def, err := Defenders(b, "e3")
	require.NoError(t, err)
	assert.Empty(t, def, "a push is not a recapture")

	// d2 covers e3, but a pawn cannot move diagonally onto an empty square.
	b = position.MustParseFEN("4k3/8/8/8/8/4N3/3PP3/4K3 w - - 0 1")
	def, err = Defenders(b, "e3")
	require.NoError(t, err)
	assert.Empty(t, def)

	hanging, err := IsHanging(b, "e3")
	require.NoError(t, err)
	assert.False(t, hanging)
}

func TestPinnedDefenderIsExcludedButStillCovers(t *testing.T) {
	// The e2 bishop covers d3 but is pinned against e1 by the e8 rook.
	b := position.MustParseFEN("4r2k/8/8/8/1n6/3P4/4B3/4K3 w - - 0 1")

	def, err := Defenders(b, "d3")
	require.NoError(t, err)
	assert.Empty(t, def)

	hanging, err := IsHanging(b, "d3")
	require.NoError(t, err)
	assert.False(t, hanging, "geometry still counts the pinned bishop")
}

func TestVacatingSquareExposesKing(t *testing.T) {
	// With the e2 knight gone the king may not step onto the open e-file,
	// while the d1 bishop can block.
	b := position.MustParseFEN("4r2k/8/8/8/8/8/4N3/3BK3 w - - 0 1")

	def, err := Defenders(b, "e2")
	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, froms(def))
}

func TestAttackersDependOnSideToMove(t *testing.T) {
	white := position.MustParseFEN("4r2k/8/8/8/1n6/3P4/4B3/4K3 w - - 0 1")
	att, err := Attackers(white, "d3")
	require.NoError(t, err)
	assert.Empty(t, att)

	black := position.MustParseFEN("4r2k/8/8/8/1n6/3P4/4B3/4K3 b - - 0 1")
	att, err = Attackers(black, "d3", WithSAN())
	require.NoError(t, err)
	require.Len(t, att, 1)
	assert.Equal(t, "b4", att[0].From.String())
	assert.Equal(t, "b4d3", att[0].Move)
	assert.Equal(t, "Nxd3+", att[0].SAN)
}

func TestHangingIgnoresPins(t *testing.T) {
	// The b4 knight is pinned to b6 by the b1 rook: no legal capture, but d3 hangs.
	b := position.MustParseFEN("8/8/1k6/8/1n6/3P4/8/1R2K3 b - - 0 1")

	att, err := Attackers(b, "d3")
	require.NoError(t, err)
	assert.Empty(t, att)

	hanging, err := IsHanging(b, "d3")
	require.NoError(t, err)
	assert.True(t, hanging)
}

func TestPromotionCaptureCountsOnce(t *testing.T) {
	b := position.MustParseFEN("1r2k3/P7/8/8/8/8/8/4K3 w - - 0 1")

	att, err := Attackers(b, "b8")
	require.NoError(t, err)
	require.Len(t, att, 1)
	assert.Equal(t, "a7b8q", att[0].Move)
}
