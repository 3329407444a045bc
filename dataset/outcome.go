package dataset

import (
	"strings"

	"chess-features/position"
)

// Outcome is the winner of a game as far as a result string tells.
type Outcome string

const (
	WhiteWins Outcome = "white"
	BlackWins Outcome = "black"
	Draw      Outcome = "draw"
	Unknown   Outcome = "unknown"
)

// PGN result tokens.
const (
	ResultWhiteWin = "1-0"
	ResultBlackWin = "0-1"
	ResultDraw     = "1/2-1/2"
	ResultNone     = "*"
)

// ParseOutcome maps a result string to an Outcome. "1/2" and "1-1" are accepted as
// draws; anything unrecognised, including "*", is Unknown.
func ParseOutcome(result string) Outcome {
	switch strings.TrimSpace(result) {
	case ResultWhiteWin:
		return WhiteWins
	case ResultBlackWin:
		return BlackWins
	case ResultDraw, "1/2", "1-1":
		return Draw
	}
	return Unknown
}

// Score is the regression target of side for a game with outcome o: 1 for a win,
// 0.5 for a draw and 0 otherwise. An Unknown outcome scores 0 like a loss.
func Score(o Outcome, side position.Color) float64 {
	switch {
	case o == Draw:
		return 0.5
	case o == WhiteWins && side == position.White, o == BlackWins && side == position.Black:
		return 1.0
	}
	return 0.0
}

// resultFromWinner converts a "winner" column ("white", "black", "draw") to a PGN
// result token.
func resultFromWinner(winner string) string {
	switch strings.ToLower(strings.TrimSpace(winner)) {
	case "white":
		return ResultWhiteWin
	case "black":
		return ResultBlackWin
	case "draw":
		return ResultDraw
	}
	return ResultNone
}

// resultFromColorResults reads the per-color result columns of a club export
// ("win", "checkmated", "timeout", "draw", ...). ok is false when they say nothing.
func resultFromColorResults(white, black string) (string, bool) {
	w := strings.ToLower(strings.TrimSpace(white))
	b := strings.ToLower(strings.TrimSpace(black))
	switch {
	case w == "win" || b == "checkmated" || b == "timeout":
		return ResultWhiteWin, true
	case b == "win" || w == "checkmated" || w == "timeout":
		return ResultBlackWin, true
	case w == "draw" || b == "draw":
		return ResultDraw, true
	}
	return "", false
}
