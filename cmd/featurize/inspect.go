package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"chess-features/dataset"
	"chess-features/features"
	"chess-features/position"
	"chess-features/query"
)

type featuresOutput struct {
	FEN string `json:"fen"`
	dataset.Record
	RawMobility   *int                `json:"raw_mobility,omitempty"`
	ZoneOccupancy *features.ZoneCount `json:"zone_occupancy,omitempty"`
}

func featuresCmd(g *globalOptions) *cobra.Command {
	var (
		fen, side, result string
		variants          bool
	)

	cmd := &cobra.Command{
		Use:   "features",
		Short: "Print the features of one position as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, g)
			if err != nil {
				return err
			}

			b, err := position.ParseFEN(fen)
			if err != nil {
				return err
			}
			c := b.SideToMove()
			if side != "" {
				if c, err = position.ParseColor(side); err != nil {
					return err
				}
			}

			rec, err := dataset.BuildFromBoard(b, c, result)
			if err != nil {
				return err
			}
			out := featuresOutput{FEN: b.FEN(), Record: rec}
			if variants {
				raw, err := features.RawMobility(b, c)
				if err != nil {
					return err
				}
				zone := features.ZoneOccupancy(b)
				out.RawMobility = &raw
				out.ZoneOccupancy = &zone
			}
			a.logger.Debug("features computed", "side", c, "fen", out.FEN)
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&fen, "fen", position.StartFEN, "Position in FEN")
	f.StringVar(&side, "side", "", "Side to score: white or black (default: side to move)")
	f.StringVar(&result, "result", "", "Game result used for the label (1-0, 0-1, 1/2-1/2)")
	f.BoolVar(&variants, "variants", false, "Also print unweighted mobility and zone occupancy")
	return cmd
}

type inspectOutput struct {
	FEN       string          `json:"fen"`
	Square    position.Square `json:"square"`
	Occupant  string          `json:"occupant,omitempty"`
	Attackers []query.Entry   `json:"attackers,omitempty"`
	Defenders []query.Entry   `json:"defenders,omitempty"`
	Hanging   *bool           `json:"hanging,omitempty"`
	Moves     []string        `json:"moves,omitempty"`
	Analysis  query.Analysis  `json:"analysis"`
}

func inspectCmd(g *globalOptions) *cobra.Command {
	var (
		fen, square    string
		san, legalOnly bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List attackers, defenders and moves for one square as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, g)
			if err != nil {
				return err
			}

			b, err := position.ParseFEN(fen)
			if err != nil {
				return err
			}
			sq, err := position.ParseSquare(square)
			if err != nil {
				return err
			}

			var opts []query.Option
			if san {
				opts = append(opts, query.WithSAN())
			}
			out := inspectOutput{FEN: b.FEN(), Square: sq}
			out.Analysis, err = query.Analyze(b, square, query.AnalysisOptions{LegalOnly: legalOnly, SAN: san})
			if err != nil {
				return err
			}

			if pc, ok := b.PieceAt(sq); ok {
				out.Occupant = pc.Symbol()
				if out.Attackers, err = query.AttackersAt(b, sq, opts...); err != nil {
					return err
				}
				if out.Defenders, err = query.DefendersAt(b, sq, opts...); err != nil {
					return err
				}
				hanging, err := query.IsHangingAt(b, sq)
				if err != nil {
					return err
				}
				out.Hanging = &hanging
				if out.Moves, err = query.MovesForPiece(b, square, true, san); err != nil {
					return err
				}
			}
			a.logger.Debug("square inspected", "square", sq, "occupant", out.Occupant)
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&fen, "fen", position.StartFEN, "Position in FEN")
	f.StringVar(&square, "square", "", "Square to inspect, e.g. e4")
	f.BoolVar(&san, "san", false, "Include SAN for legal moves")
	f.BoolVar(&legalOnly, "legal-only", false, "Drop illegal entries from the analysis")
	_ = cmd.MarkFlagRequired("square")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
