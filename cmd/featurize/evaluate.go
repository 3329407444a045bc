package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"chess-features/cache"
	"chess-features/dataset"
)

func evaluateCmd(g *globalOptions) *cobra.Command {
	var (
		input, output, format      string
		fenCol, sideCol, resultCol string
		maxRows, workers           int
		cacheDir                   string
		useCache                   bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Compute labeled features for every row of a positions CSV",
		Long: `evaluate reads a CSV with FEN, side and result columns and writes one row per
usable input row: index, side_to_move, connection, mobility, centrality, result,
winning_side, regression_score.

--input accepts a glob ("data/**/*.csv"). With several matches --output names a
directory and each input is written to <name>_features.<ext> inside it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, g)
			if err != nil {
				return err
			}

			ec := a.cfg.Evaluate
			flags := cmd.Flags()
			if flags.Changed("fen-column") {
				ec.FENColumn = fenCol
			}
			if flags.Changed("side-column") {
				ec.SideColumn = sideCol
			}
			if flags.Changed("result-column") {
				ec.ResultColumn = resultCol
			}
			if flags.Changed("max-rows") {
				ec.MaxRows = maxRows
			}
			if flags.Changed("workers") {
				ec.Workers = workers
			}
			if flags.Changed("format") {
				ec.Format = format
			}
			cc := a.cfg.Cache
			if flags.Changed("cache-dir") {
				cc.Dir = cacheDir
				cc.Enabled = true
			}
			if flags.Changed("cache") {
				cc.Enabled = useCache
			}

			inputs, err := expandInputs(input)
			if err != nil {
				return err
			}

			e := &dataset.Evaluator{
				FENColumn:    ec.FENColumn,
				SideColumn:   ec.SideColumn,
				ResultColumn: ec.ResultColumn,
				MaxRows:      ec.MaxRows,
				Workers:      ec.Workers,
				Logger:       a.logger,
				Observer:     a.recorder,
			}
			var fc *cache.Cache
			if cc.Enabled {
				if fc, err = cache.Open(cc.Dir); err != nil {
					return err
				}
				defer fc.Close()
				e.Cache = fc
				logCacheSize(a, fc, "feature cache open")
			}

			for _, in := range inputs {
				out := output
				if len(inputs) > 1 {
					out = filepath.Join(output, featuresName(in, ec.Format))
				}
				outFormat, err := dataset.ResolveFormat(ec.Format, out)
				if err != nil {
					return err
				}

				rows, err := e.EvaluateFile(cmd.Context(), in)
				if err != nil {
					return fmt.Errorf("%s: %w", in, err)
				}
				if err := dataset.WriteEvaluations(out, outFormat, rows); err != nil {
					return err
				}

				s := dataset.SummarizeEvaluations(rows)
				a.logger.Info("evaluated",
					"input", in,
					"rows", len(rows),
					"mean_connection", s["connection"].Mean,
					"mean_mobility", s["mobility"].Mean,
					"mean_centrality", s["centrality"].Mean)
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s (%s).\n", len(rows), out, outFormat)
			}
			if fc != nil {
				logCacheSize(a, fc, "feature cache closing")
			}
			return a.finish()
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "", "Positions CSV path or glob")
	f.StringVarP(&output, "output", "o", "", "Output file, or directory when --input matches several files")
	f.StringVar(&format, "format", "", "Output format: csv or parquet (inferred from the extension if omitted)")
	f.StringVar(&fenCol, "fen-column", "fen", "Column holding the FEN")
	f.StringVar(&sideCol, "side-column", "side_to_move", "Column holding the side (white/black)")
	f.StringVar(&resultCol, "result-column", "result", "Column holding the game result")
	f.IntVar(&maxRows, "max-rows", 0, "Limit on input rows (0 = all)")
	f.IntVar(&workers, "workers", 0, "Feature goroutines (0 = GOMAXPROCS)")
	f.StringVar(&cacheDir, "cache-dir", "", "Feature cache directory (enables the cache)")
	f.BoolVar(&useCache, "cache", false, "Use the feature cache configured in the config file")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func logCacheSize(a *app, fc *cache.Cache, msg string) {
	n, err := fc.Len()
	if err != nil {
		a.logger.Warn("count cache entries", "error", err)
		return
	}
	a.logger.Debug(msg, "entries", n)
}

// expandInputs resolves a path or doublestar glob to the matching regular files.
func expandInputs(pattern string) ([]string, error) {
	if _, err := os.Stat(pattern); err == nil {
		return []string{pattern}, nil
	}
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("bad input pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no input matches %q", pattern)
	}
	return matches, nil
}

func featuresName(input, format string) string {
	ext := ".csv"
	if f, err := dataset.ResolveFormat(format, ""); err == nil && f == dataset.FormatParquet {
		ext = ".parquet"
	}
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return stem + "_features" + ext
}
