package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chess-features/dataset"
)

func extractCmd(g *globalOptions) *cobra.Command {
	var (
		pgnPath, csvPath, clubPath string
		output, format             string
		maxGames                   int
		minRating, minTC, minMove  int
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract one row per ply from PGN or CSV game collections",
		Example: `  featurize extract --pgn data/games.pgn --output data/positions.csv
  featurize extract --csv data/games.csv --output data/positions.parquet
  featurize extract --club-csv data/club_games_data.csv --output data/club_positions.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, g)
			if err != nil {
				return err
			}

			ec := a.cfg.Extract
			flags := cmd.Flags()
			if flags.Changed("max-games") {
				ec.MaxGames = maxGames
			}
			if flags.Changed("min-rating") {
				ec.MinRating = minRating
			}
			if flags.Changed("min-time-control") {
				ec.MinTimeControl = minTC
			}
			if flags.Changed("min-move-number") {
				ec.MinMoveNumber = minMove
			}
			if flags.Changed("format") {
				ec.Format = format
			}

			outFormat, err := dataset.ResolveFormat(ec.Format, output)
			if err != nil {
				return err
			}

			src, path := dataset.SourcePGN, pgnPath
			switch {
			case csvPath != "":
				src, path = dataset.SourceMovesCSV, csvPath
			case clubPath != "":
				src, path = dataset.SourceClubCSV, clubPath
			}

			x := &dataset.Extractor{
				MaxGames:       ec.MaxGames,
				MinRating:      ec.MinRating,
				MinTimeControl: ec.MinTimeControl,
				MinMoveNumber:  ec.MinMoveNumber,
				Logger:         a.logger,
				Observer:       a.recorder,
			}
			a.logger.Info("extract started", "source", src, "path", path)
			rows, err := x.ExtractFile(cmd.Context(), src, path)
			if err != nil {
				return err
			}
			if err := dataset.WritePositions(output, outFormat, rows); err != nil {
				return err
			}

			summary := dataset.SummarizePositions(rows)
			a.logger.Info("extract finished",
				"positions", len(rows),
				"max_ply", summary["ply"].Max,
				"mean_move_number", summary["move_number"].Mean)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d positions to %s (%s).\n", len(rows), output, outFormat)
			return a.finish()
		},
	}

	f := cmd.Flags()
	f.StringVar(&pgnPath, "pgn", "", "Path to a PGN file")
	f.StringVar(&csvPath, "csv", "", "Path to a CSV file with a SAN 'moves' column")
	f.StringVar(&clubPath, "club-csv", "", "Path to a club export CSV (ratings, time_control, pgn columns)")
	f.StringVarP(&output, "output", "o", "", "Output file path (csv or parquet)")
	f.StringVar(&format, "format", "", "Output format: csv or parquet (inferred from the extension if omitted)")
	f.IntVar(&maxGames, "max-games", 0, "Limit on games to parse (0 = all)")
	f.IntVar(&minRating, "min-rating", 0, "Club export: minimum rating of both players")
	f.IntVar(&minTC, "min-time-control", 0, "Club export: minimum base time control in seconds")
	f.IntVar(&minMove, "min-move-number", 0, "Club export: first move number kept")

	cmd.MarkFlagsMutuallyExclusive("pgn", "csv", "club-csv")
	cmd.MarkFlagsOneRequired("pgn", "csv", "club-csv")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
