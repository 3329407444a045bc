package dataset

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPGN(t *testing.T) {
	x := NewExtractor()
	rows, err := x.FromPGN(context.Background(), strings.NewReader(twoGamesPGN))
	require.NoError(t, err)
	require.Len(t, rows, 11)

	first := rows[0]
	assert.Equal(t, "1", first.GameID)
	assert.Equal(t, 1, first.GameIndex)
	assert.Equal(t, 1, first.Ply)
	assert.Equal(t, 1, first.MoveNumber)
	assert.Equal(t, "black", first.SideToMove)
	assert.Equal(t, "e2e4", first.UCI)
	assert.Equal(t, "e4", first.SAN)
	assert.Equal(t, "1-0", first.Result)
	assert.True(t, strings.HasPrefix(first.FEN, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b "), first.FEN)

	assert.Equal(t, 2, rows[2].MoveNumber)
	assert.Equal(t, "Nf3", rows[2].SAN)

	last := rows[len(rows)-1]
	assert.Equal(t, 2, last.GameIndex)
	assert.Equal(t, 4, last.Ply)
	assert.Equal(t, 2, last.MoveNumber)
	assert.Equal(t, "Qh4#", last.SAN)
	assert.Equal(t, "d8h4", last.UCI)
	assert.Equal(t, "white", last.SideToMove)
	assert.Equal(t, "0-1", last.Result)
}

func TestFromPGNMaxGames(t *testing.T) {
	x := NewExtractor()
	x.MaxGames = 1
	rows, err := x.FromPGN(context.Background(), strings.NewReader(twoGamesPGN))
	require.NoError(t, err)
	assert.Len(t, rows, 7)
}

func TestFromPGNTruncatesAtIllegalMove(t *testing.T) {
	x := NewExtractor()
	rows, err := x.FromPGN(context.Background(), strings.NewReader("[Result \"*\"]\n\n1. e4 e5 2. Ke3 Nc6 *\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "*", rows[1].Result)
}

func TestFromPGNCountsUnparsableGame(t *testing.T) {
	obs := newCountingObserver()
	x := NewExtractor()
	x.Observer = obs
	rows, err := x.FromPGN(context.Background(), strings.NewReader("[Result \"*\"]\n\n1. e4 (1. d4 e5 *\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, map[string]int{SkipBadPGN: 1}, obs.skipped)
}

func TestFromMovesCSV(t *testing.T) {
	in := "id,moves,winner\n" +
		"g1,e4 e5 Nf3,white\n" +
		"g2,,black\n" +
		"g3,e4 Ke7 Ke2,draw\n" +
		",d4 d5,draw\n"

	obs := newCountingObserver()
	x := NewExtractor()
	x.Observer = obs
	rows, err := x.FromMovesCSV(context.Background(), strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "g1", rows[0].GameID)
	assert.Equal(t, "1-0", rows[0].Result)
	assert.Equal(t, "g1f3", rows[2].UCI)
	assert.Equal(t, "4", rows[3].GameID)
	assert.Equal(t, 4, rows[3].GameIndex)
	assert.Equal(t, "1/2-1/2", rows[4].Result)
	assert.Equal(t, map[string]int{SkipNoMoves: 1, SkipIllegalMove: 1}, obs.skipped)
}

func TestFromMovesCSVMissingColumn(t *testing.T) {
	x := NewExtractor()
	_, err := x.FromMovesCSV(context.Background(), strings.NewReader("id,winner\n1,white\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

const clubCSV = `id,white_rating,black_rating,time_control,white_result,black_result,winner,pgn
c1,1800,1900,600,win,resigned,white,"[Event ""Live""]
[Result ""*""]

1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 *"
c2,1600,1900,600,win,resigned,white,"1. e4 e5 *"
c3,1800,1900,180+2,win,resigned,white,"1. e4 e5 *"
c4,1800,1900,1/259200,agreed,agreed,draw,"1. d4 d5 2. c4 e6"
c5,,1900,600,win,resigned,white,"1. e4 e5 *"
`

func TestFromClubCSV(t *testing.T) {
	obs := newCountingObserver()
	x := NewExtractor()
	x.MinMoveNumber = 2
	x.Observer = obs

	rows, err := x.FromClubCSV(context.Background(), strings.NewReader(clubCSV))
	require.NoError(t, err)
	require.Len(t, rows, 6)

	for _, r := range rows[:4] {
		assert.Equal(t, "c1", r.GameID)
		assert.Equal(t, "1-0", r.Result, "PGN result * falls back to the color results")
		assert.Equal(t, 1800, r.WhiteRating)
		assert.Equal(t, 1900, r.BlackRating)
		assert.Equal(t, "600", r.TimeControl)
		assert.GreaterOrEqual(t, r.MoveNumber, 2)
	}
	assert.Equal(t, 3, rows[0].Ply)
	assert.Equal(t, "c4", rows[4].GameID)
	assert.Equal(t, "1/2-1/2", rows[4].Result, "winner column is the last fallback")
	assert.Equal(t, map[string]int{SkipRating: 2, SkipTimeControl: 1}, obs.skipped)
}

func TestFromClubCSVTruncatedAndBrokenGames(t *testing.T) {
	in := "id,white_rating,black_rating,time_control,pgn\n" +
		"t1,1800,1900,600,\"1. e4 e5 2. Ke3 Nc6 *\"\n" +
		"t2,1800,1900,600,\"1. e4 (1. d4 e5\"\n"

	var logs bytes.Buffer
	obs := newCountingObserver()
	x := NewExtractor()
	x.MinMoveNumber = 1
	x.Observer = obs
	x.Logger = slog.New(slog.NewTextHandler(&logs, nil))

	rows, err := x.FromClubCSV(context.Background(), strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2, "plies before the unplayable move are kept")
	assert.Equal(t, "t1", rows[1].GameID)
	assert.Contains(t, logs.String(), "game truncated")
	assert.Contains(t, logs.String(), "game_id=t1")
	assert.Equal(t, map[string]int{SkipBadPGN: 1}, obs.skipped)
}

func TestFromClubCSVDefaultsFilterShortGames(t *testing.T) {
	x := NewExtractor()
	rows, err := x.FromClubCSV(context.Background(), strings.NewReader(clubCSV))
	require.NoError(t, err)
	assert.Empty(t, rows, "no game reaches move 11")
}

func TestExtractFileNoPositions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pgn")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := NewExtractor().ExtractFile(context.Background(), SourcePGN, path)
	assert.ErrorIs(t, err, ErrNoPositions)
}

func TestTimeControlSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"600", 600, true},
		{"600+5", 600, true},
		{"1/259200", 259200, true},
		{"", 0, false},
		{"abc", 0, false},
		{"+5", 0, false},
	}
	for _, tt := range tests {
		got, ok := TimeControlSeconds(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
