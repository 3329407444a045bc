package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chess-features/position"
)

func TestParseOutcome(t *testing.T) {
	tests := []struct {
		in   string
		want Outcome
	}{
		{"1-0", WhiteWins},
		{"0-1", BlackWins},
		{"1/2-1/2", Draw},
		{"1/2", Draw},
		{"1-1", Draw},
		{" 1-0 ", WhiteWins},
		{"*", Unknown},
		{"", Unknown},
		{"white", Unknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseOutcome(tt.in), "%q", tt.in)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		o    Outcome
		side position.Color
		want float64
	}{
		{WhiteWins, position.White, 1.0},
		{WhiteWins, position.Black, 0.0},
		{BlackWins, position.Black, 1.0},
		{BlackWins, position.White, 0.0},
		{Draw, position.White, 0.5},
		{Draw, position.Black, 0.5},
		{Unknown, position.White, 0.0},
		{Unknown, position.Black, 0.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Score(tt.o, tt.side), "%s for %s", tt.o, tt.side)
	}
}

func TestResultFromWinner(t *testing.T) {
	assert.Equal(t, ResultWhiteWin, resultFromWinner("White"))
	assert.Equal(t, ResultBlackWin, resultFromWinner("black"))
	assert.Equal(t, ResultDraw, resultFromWinner("draw"))
	assert.Equal(t, ResultNone, resultFromWinner(""))
	assert.Equal(t, ResultNone, resultFromWinner("resigned"))
}

func TestResultFromColorResults(t *testing.T) {
	tests := []struct {
		white, black string
		want         string
		ok           bool
	}{
		{"win", "resigned", ResultWhiteWin, true},
		{"resigned", "win", ResultBlackWin, true},
		{"abandoned", "checkmated", ResultWhiteWin, true},
		{"timeout", "win", ResultBlackWin, true},
		{"draw", "draw", ResultDraw, true},
		{"", "", "", false},
	}
	for _, tt := range tests {
		got, ok := resultFromColorResults(tt.white, tt.black)
		assert.Equal(t, tt.ok, ok, "%s/%s", tt.white, tt.black)
		assert.Equal(t, tt.want, got, "%s/%s", tt.white, tt.black)
	}
}
