package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePositions = []PositionRow{
	{GameID: "g1", GameIndex: 1, Ply: 1, MoveNumber: 1, SideToMove: "black",
		FEN: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1", UCI: "e2e4", SAN: "e4", Result: "1-0"},
	{GameID: "g1", GameIndex: 1, Ply: 2, MoveNumber: 1, SideToMove: "white",
		FEN: "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2", UCI: "e7e5", SAN: "e5", Result: "1-0",
		WhiteRating: 1800, BlackRating: 1750, TimeControl: "600+5"},
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		explicit, path string
		want           Format
	}{
		{"", "out/positions.parquet", FormatParquet},
		{"", "out/positions.PARQUET", FormatParquet},
		{"", "out/positions.csv", FormatCSV},
		{"", "positions", FormatCSV},
		{"parquet", "positions.csv", FormatParquet},
		{"CSV", "positions.parquet", FormatCSV},
	}
	for _, tt := range tests {
		got, err := ResolveFormat(tt.explicit, tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%q %q", tt.explicit, tt.path)
	}

	_, err := ResolveFormat("xlsx", "positions.xlsx")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWritePositionsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "positions.csv")
	require.NoError(t, WritePositions(path, FormatCSV, samplePositions))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, positionHeader, records[0])
	assert.Equal(t, []string{"g1", "1", "1", "1", "black", samplePositions[0].FEN, "e2e4", "e4", "1-0", "", "", ""}, records[1])
	assert.Equal(t, "1800", records[2][9])
	assert.Equal(t, "600+5", records[2][11])
}

func TestWritePositionsParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.parquet")
	require.NoError(t, WritePositions(path, FormatParquet, samplePositions))

	got, err := parquet.ReadFile[PositionRow](path)
	require.NoError(t, err)
	assert.Equal(t, samplePositions, got)
}

func TestWriteEvaluationsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "features.csv")
	rows := []Evaluation{{Index: 3, SideToMove: "white", Mobility: 2.5, Centrality: 2, Result: "1-0", WinningSide: "white", RegressionScore: 1}}
	require.NoError(t, WriteEvaluations(path, FormatCSV, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"index,side_to_move,connection,mobility,centrality,result,winning_side,regression_score\n"+
			"3,white,0,2.5,2,1-0,white,1\n",
		string(data))
}

func TestWriteRowsUnknownFormat(t *testing.T) {
	err := WritePositions(filepath.Join(t.TempDir(), "x.bin"), Format("bin"), samplePositions)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
