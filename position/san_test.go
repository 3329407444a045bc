package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sanOf(t *testing.T, fen, uci string) string {
	t.Helper()
	b := MustParseFEN(fen)
	m, err := b.ParseUCI(uci)
	require.NoError(t, err)
	san, err := b.SAN(m)
	require.NoError(t, err)
	return san
}

func TestSAN(t *testing.T) {
	cases := []struct {
		name, fen, uci, want string
	}{
		{"pawn push", StartFEN, "e2e4", "e4"},
		{"knight", StartFEN, "g1f3", "Nf3"},
		{"pawn capture", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", "e4d5", "exd5"},
		{"file disambiguation", "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1", "b1d2", "Nbd2"},
		{"rank disambiguation", "4k3/8/8/8/8/1N6/8/1N2K3 w - - 0 1", "b3d2", "N3d2"},
		{"short castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "O-O"},
		{"long castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", "O-O-O"},
		{"promotion", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7a8n", "a8=N"},
		{"promotion with check", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7a8q", "a8=Q+"},
		{"mate", "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq g3 0 2", "d8h4", "Qh4#"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sanOf(t, tc.fen, tc.uci))
		})
	}
}

func TestParseSANRoundTrip(t *testing.T) {
	for _, fen := range []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"4k3/P7/8/8/8/8/8/4K3 w - - 0 1",
	} {
		b := MustParseFEN(fen)
		for _, m := range b.LegalMoves() {
			san, err := b.SAN(m)
			require.NoError(t, err)
			back, err := b.ParseSAN(san)
			require.NoError(t, err, san)
			assert.Equal(t, m.UCI(), back.UCI(), san)
		}
	}
}

func TestParseSANLenientForms(t *testing.T) {
	b := MustParseFEN("r3k2r/8/8/8/8/8/P7/R3K2R w KQkq - 0 1")
	m, err := b.ParseSAN("0-0")
	require.NoError(t, err)
	assert.Equal(t, "e1g1", m.UCI())

	m, err = b.ParseSAN("a4!?")
	require.NoError(t, err)
	assert.Equal(t, "a2a4", m.UCI())

	p := MustParseFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	m, err = p.ParseSAN("a8Q+")
	require.NoError(t, err)
	assert.Equal(t, "a7a8q", m.UCI())

	_, err = b.ParseSAN("Nf3")
	assert.ErrorIs(t, err, ErrIllegalMove)
	_, err = b.ParseSAN("")
	assert.ErrorIs(t, err, ErrIllegalMove)
}
