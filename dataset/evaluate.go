package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"chess-features/features"
	"chess-features/position"
)

// FeatureCache stores computed vectors by position and side.
type FeatureCache interface {
	Get(fen string, side position.Color) (features.Vector, bool, error)
	Put(fen string, side position.Color, v features.Vector) error
}

// Evaluation is one output row of the evaluator.
type Evaluation struct {
	Index           int     `parquet:"index" json:"index"`
	SideToMove      string  `parquet:"side_to_move" json:"side_to_move"`
	Connection      int     `parquet:"connection" json:"connection"`
	Mobility        float64 `parquet:"mobility" json:"mobility"`
	Centrality      int     `parquet:"centrality" json:"centrality"`
	Result          string  `parquet:"result" json:"result"`
	WinningSide     string  `parquet:"winning_side" json:"winning_side"`
	RegressionScore float64 `parquet:"regression_score" json:"regression_score"`
}

var evaluationHeader = []string{
	"index", "side_to_move", "connection", "mobility", "centrality",
	"result", "winning_side", "regression_score",
}

func (Evaluation) csvHeader() []string { return evaluationHeader }

func (e Evaluation) csvRecord() []string {
	return []string{
		strconv.Itoa(e.Index),
		e.SideToMove,
		strconv.Itoa(e.Connection),
		strconv.FormatFloat(e.Mobility, 'f', -1, 64),
		strconv.Itoa(e.Centrality),
		e.Result,
		e.WinningSide,
		strconv.FormatFloat(e.RegressionScore, 'f', -1, 64),
	}
}

// Evaluator computes labeled features for every row of a positions CSV.
type Evaluator struct {
	FENColumn    string
	SideColumn   string
	ResultColumn string
	// MaxRows stops after that many data rows; 0 reads everything.
	MaxRows int
	// Workers is the number of goroutines computing features; 0 uses GOMAXPROCS.
	Workers  int
	Cache    FeatureCache
	Logger   *slog.Logger
	Observer Observer
}

// NewEvaluator returns an evaluator reading the default column names.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		FENColumn:    "fen",
		SideColumn:   "side_to_move",
		ResultColumn: "result",
	}
}

type evalJob struct {
	index  int
	fen    string
	side   position.Color
	result string
}

// EvaluateFile opens path and runs Evaluate on it.
func (e *Evaluator) EvaluateFile(ctx context.Context, path string) ([]Evaluation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return e.Evaluate(ctx, f)
}

// Evaluate reads rows from r and returns one Evaluation per usable row, in input
// order. Rows with a blank FEN, an unrecognised side or a malformed FEN are skipped.
// A missing FEN or side column fails with *MissingColumnError.
func (e *Evaluator) Evaluate(ctx context.Context, r io.Reader) ([]Evaluation, error) {
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}
	obs := observerOrNop(e.Observer)

	t, err := newTable(r)
	if err != nil {
		return nil, err
	}
	if err := t.require(e.FENColumn, e.SideColumn); err != nil {
		return nil, err
	}

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan evalJob, 128)
	results := make(chan Evaluation, 128)

	g.Go(func() error {
		defer close(jobs)
		return e.readJobs(ctx, t, jobs, obs, logger)
	})

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return e.work(ctx, jobs, results, obs, logger)
		})
	}
	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	var out []Evaluation
	g.Go(func() error {
		for ev := range results {
			out = append(out, ev)
			obs.RecordWritten()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

func (e *Evaluator) readJobs(ctx context.Context, t *table, jobs chan<- evalJob, obs Observer, logger *slog.Logger) error {
	for index := 0; e.MaxRows <= 0 || index < e.MaxRows; index++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		rw, err := t.next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		obs.RowRead()

		fen := rw.get(e.FENColumn)
		if fen == "" {
			obs.RowSkipped(SkipBlankFEN)
			logger.Debug("skip row", "index", index, "reason", SkipBlankFEN)
			continue
		}
		side, err := position.ParseColor(rw.get(e.SideColumn))
		if err != nil {
			obs.RowSkipped(SkipBadSide)
			logger.Debug("skip row", "index", index, "reason", SkipBadSide, "error", err)
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case jobs <- evalJob{index: index, fen: fen, side: side, result: rw.get(e.ResultColumn)}:
		}
	}
	return nil
}

func (e *Evaluator) work(ctx context.Context, jobs <-chan evalJob, results chan<- Evaluation, obs Observer, logger *slog.Logger) error {
	for job := range jobs {
		v, err := e.vector(job, obs, logger)
		if errors.Is(err, position.ErrMalformedFEN) {
			obs.RowSkipped(SkipMalformedFEN)
			logger.Debug("skip row", "index", job.index, "reason", SkipMalformedFEN, "error", err)
			continue
		}
		if err != nil {
			return fmt.Errorf("row %d: %w", job.index, err)
		}

		rec := Label(v, job.result)
		ev := Evaluation{
			Index:           job.index,
			SideToMove:      job.side.String(),
			Connection:      rec.Connection,
			Mobility:        rec.Mobility,
			Centrality:      rec.Centrality,
			Result:          rec.Result,
			WinningSide:     string(rec.WinningSide),
			RegressionScore: rec.RegressionScore,
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case results <- ev:
		}
	}
	return nil
}

func (e *Evaluator) vector(job evalJob, obs Observer, logger *slog.Logger) (features.Vector, error) {
	if e.Cache != nil {
		v, ok, err := e.Cache.Get(job.fen, job.side)
		if err != nil {
			logger.Warn("feature cache read failed", "index", job.index, "error", err)
		}
		if ok && err == nil {
			obs.CacheHit()
			return v, nil
		}
		obs.CacheMiss()
	}

	b, err := position.ParseFEN(job.fen)
	if err != nil {
		return features.Vector{}, err
	}
	v, err := features.Extract(b, job.side)
	if err != nil {
		return features.Vector{}, err
	}
	if e.Cache != nil {
		if err := e.Cache.Put(job.fen, job.side, v); err != nil {
			logger.Warn("feature cache write failed", "index", job.index, "error", err)
		}
	}
	return v, nil
}
