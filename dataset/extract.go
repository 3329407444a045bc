package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"chess-features/position"
)

// Source names an input layout understood by the Extractor.
type Source string

const (
	// SourcePGN is a PGN file with any number of games.
	SourcePGN Source = "pgn"
	// SourceMovesCSV is a CSV with a space separated SAN "moves" column and optional
	// "id" and "winner" columns.
	SourceMovesCSV Source = "csv"
	// SourceClubCSV is a club game export with ratings, time control and a PGN per row.
	SourceClubCSV Source = "club-csv"
)

// PositionRow is the position reached after one ply of a game.
type PositionRow struct {
	GameID      string `parquet:"game_id"`
	GameIndex   int    `parquet:"game_index"`
	Ply         int    `parquet:"ply"`
	MoveNumber  int    `parquet:"move_number"`
	SideToMove  string `parquet:"side_to_move"`
	FEN         string `parquet:"fen"`
	UCI         string `parquet:"uci"`
	SAN         string `parquet:"san"`
	Result      string `parquet:"result"`
	WhiteRating int    `parquet:"white_rating"`
	BlackRating int    `parquet:"black_rating"`
	TimeControl string `parquet:"time_control"`
}

var positionHeader = []string{
	"game_id", "game_index", "ply", "move_number", "side_to_move",
	"fen", "uci", "san", "result", "white_rating", "black_rating", "time_control",
}

func (PositionRow) csvHeader() []string { return positionHeader }

func (p PositionRow) csvRecord() []string {
	rating := func(r int) string {
		if r == 0 {
			return ""
		}
		return strconv.Itoa(r)
	}
	return []string{
		p.GameID,
		strconv.Itoa(p.GameIndex),
		strconv.Itoa(p.Ply),
		strconv.Itoa(p.MoveNumber),
		p.SideToMove,
		p.FEN,
		p.UCI,
		p.SAN,
		p.Result,
		rating(p.WhiteRating),
		rating(p.BlackRating),
		p.TimeControl,
	}
}

// Extractor turns games into per-ply position rows.
type Extractor struct {
	// MaxGames limits the games (or CSV rows) read; 0 reads everything.
	MaxGames int
	// Club export filters.
	MinRating      int
	MinTimeControl int
	MinMoveNumber  int

	Logger   *slog.Logger
	Observer Observer
}

// NewExtractor returns an extractor with the default club filters.
func NewExtractor() *Extractor {
	return &Extractor{
		MinRating:      1700,
		MinTimeControl: 600,
		MinMoveNumber:  11,
	}
}

func (x *Extractor) logger() *slog.Logger {
	if x.Logger == nil {
		return slog.Default()
	}
	return x.Logger
}

// ExtractFile reads path as src. It fails with ErrNoPositions when nothing was
// extracted.
func (x *Extractor) ExtractFile(ctx context.Context, src Source, path string) ([]PositionRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []PositionRow
	switch src {
	case SourcePGN:
		rows, err = x.FromPGN(ctx, f)
	case SourceMovesCSV:
		rows, err = x.FromMovesCSV(ctx, f)
	case SourceClubCSV:
		rows, err = x.FromClubCSV(ctx, f)
	default:
		return nil, fmt.Errorf("unknown source %q", src)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoPositions)
	}
	return rows, nil
}

var errMaxGames = errors.New("max games")

// FromPGN extracts every ply of every game in r. A game stops at its first
// unplayable move; the plies before it are kept.
func (x *Extractor) FromPGN(ctx context.Context, r io.Reader) ([]PositionRow, error) {
	obs := observerOrNop(x.Observer)
	var rows []PositionRow
	gameIndex := 0

	err := splitPGN(r, func(text string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if x.MaxGames > 0 && gameIndex >= x.MaxGames {
			return errMaxGames
		}
		gameIndex++

		g, err := parsePGN(text)
		if err != nil {
			x.logger().Warn("skip game", "game_index", gameIndex, "error", err)
			obs.RowSkipped(SkipBadPGN)
			return nil
		}
		result := g.Tags["Result"]
		if result == "" {
			result = ResultNone
		}
		plies, err := x.replay(g, gameIndex)
		if err != nil {
			x.logger().Warn("game truncated", "game_index", gameIndex, "plies", len(plies), "error", err)
		}
		obs.GameParsed()
		for _, p := range plies {
			p.GameID = strconv.Itoa(gameIndex)
			p.GameIndex = gameIndex
			p.Result = result
			rows = append(rows, p)
		}
		obs.PositionsExtracted(len(plies))
		return nil
	})
	if err != nil && !errors.Is(err, errMaxGames) {
		return nil, err
	}
	return rows, nil
}

// FromMovesCSV extracts positions from a CSV whose "moves" column holds a game in
// space separated SAN from the initial position. A row with an unplayable move is
// skipped entirely.
func (x *Extractor) FromMovesCSV(ctx context.Context, r io.Reader) ([]PositionRow, error) {
	obs := observerOrNop(x.Observer)
	t, err := newTable(r)
	if err != nil {
		return nil, err
	}
	if err := t.require("moves"); err != nil {
		return nil, err
	}

	var rows []PositionRow
	for idx := 0; x.MaxGames <= 0 || idx < x.MaxGames; idx++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rw, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		obs.RowRead()

		moves := strings.Fields(rw.get("moves"))
		if len(moves) == 0 {
			obs.RowSkipped(SkipNoMoves)
			continue
		}
		gameID := rw.get("id")
		if gameID == "" {
			gameID = strconv.Itoa(idx + 1)
		}
		plies, err := x.replay(pgnGame{Moves: moves}, idx+1)
		if err != nil {
			obs.RowSkipped(SkipIllegalMove)
			continue
		}
		obs.GameParsed()
		result := resultFromWinner(rw.get("winner"))
		for _, p := range plies {
			p.GameID = gameID
			p.GameIndex = idx + 1
			p.Result = result
			rows = append(rows, p)
		}
		obs.PositionsExtracted(len(plies))
	}
	return rows, nil
}

// FromClubCSV extracts positions from a club export. Games where either rating is
// below MinRating or the base time control is below MinTimeControl seconds are
// skipped, as are positions before move MinMoveNumber.
func (x *Extractor) FromClubCSV(ctx context.Context, r io.Reader) ([]PositionRow, error) {
	obs := observerOrNop(x.Observer)
	t, err := newTable(r)
	if err != nil {
		return nil, err
	}
	if err := t.require("white_rating", "black_rating", "time_control", "pgn"); err != nil {
		return nil, err
	}

	var rows []PositionRow
	for idx := 0; x.MaxGames <= 0 || idx < x.MaxGames; idx++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rw, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		obs.RowRead()

		white, okW := parseRating(rw.get("white_rating"))
		black, okB := parseRating(rw.get("black_rating"))
		if !okW || !okB || white < x.MinRating || black < x.MinRating {
			obs.RowSkipped(SkipRating)
			continue
		}
		tc := rw.get("time_control")
		if secs, ok := TimeControlSeconds(tc); !ok || secs < x.MinTimeControl {
			obs.RowSkipped(SkipTimeControl)
			continue
		}
		text := rw.get("pgn")
		if text == "" {
			obs.RowSkipped(SkipNoPGN)
			continue
		}
		g, err := parsePGN(text)
		if err != nil {
			obs.RowSkipped(SkipBadPGN)
			x.logger().Debug("skip club game", "row", idx, "error", err)
			continue
		}

		result := g.Tags["Result"]
		if result == "" || result == ResultNone {
			if cr, ok := resultFromColorResults(rw.get("white_result"), rw.get("black_result")); ok {
				result = cr
			} else if t.has("winner") {
				result = resultFromWinner(rw.get("winner"))
			} else {
				result = ResultNone
			}
		}

		gameID := rw.get("id")
		if gameID == "" {
			gameID = strconv.Itoa(idx + 1)
		}
		plies, err := x.replay(g, idx+1)
		if err != nil {
			x.logger().Warn("game truncated", "row", idx, "game_id", gameID, "plies", len(plies), "error", err)
		}
		obs.GameParsed()
		n := 0
		for _, p := range plies {
			if p.MoveNumber < x.MinMoveNumber {
				continue
			}
			p.GameID = gameID
			p.GameIndex = idx + 1
			p.Result = result
			p.WhiteRating = white
			p.BlackRating = black
			p.TimeControl = tc
			rows = append(rows, p)
			n++
		}
		obs.PositionsExtracted(n)
	}
	return rows, nil
}

// replay plays g's mainline from its FEN tag, or the initial position, and returns
// a row per ply. On an unplayable move it returns the plies before it together with
// the error.
func (x *Extractor) replay(g pgnGame, gameIndex int) ([]PositionRow, error) {
	start := position.StartFEN
	if fen, ok := g.Tags["FEN"]; ok {
		start = fen
	}
	b, err := position.ParseFEN(start)
	if err != nil {
		return nil, err
	}

	plies := make([]PositionRow, 0, len(g.Moves))
	for i, token := range g.Moves {
		m, err := b.ParseSAN(token)
		if err != nil {
			x.logger().Debug("stop replay", "game_index", gameIndex, "ply", i+1, "san", token, "error", err)
			return plies, err
		}
		san, err := b.SAN(m)
		if err != nil {
			return plies, err
		}
		next, err := b.Play(m)
		if err != nil {
			return plies, err
		}
		b = next

		ply := i + 1
		plies = append(plies, PositionRow{
			Ply:        ply,
			MoveNumber: (ply + 1) / 2,
			SideToMove: b.SideToMove().String(),
			FEN:        b.FEN(),
			UCI:        m.UCI(),
			SAN:        san,
		})
	}
	return plies, nil
}

// TimeControlSeconds reads the initial clock of a time control string. "600+5"
// yields the base 600; a daily control "1/259200" yields the seconds per move.
func TimeControlSeconds(tc string) (int, bool) {
	tc = strings.TrimSpace(tc)
	if tc == "" {
		return 0, false
	}
	if i := strings.LastIndex(tc, "/"); i >= 0 {
		tc = tc[i+1:]
	} else if i := strings.Index(tc, "+"); i >= 0 {
		tc = tc[:i]
	}
	n, err := strconv.Atoi(tc)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseRating(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}
