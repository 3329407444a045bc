package main

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"chess-features/position"
)

func perftCmd(g *globalOptions) *cobra.Command {
	var (
		fen           string
		depth, repeat int
		divide        bool
	)

	cmd := &cobra.Command{
		Use:   "perft",
		Short: "Count legal move tree nodes to check the move generator wiring",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, g)
			if err != nil {
				return err
			}
			if depth <= 0 {
				return errors.New("--depth must be > 0")
			}
			if repeat <= 0 {
				return errors.New("--repeat must be > 0")
			}
			b, err := position.ParseFEN(fen)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if divide {
				div := position.PerftDivide(b, depth)
				moves := make([]string, 0, len(div))
				for m := range div {
					moves = append(moves, m)
				}
				sort.Strings(moves)
				var sum uint64
				for _, m := range moves {
					fmt.Fprintf(out, "%s: %d\n", m, div[m])
					sum += div[m]
				}
				fmt.Fprintf(out, "Total: %d\n", sum)
				return a.finish()
			}

			var nodes uint64
			start := time.Now()
			for i := 0; i < repeat; i++ {
				nodes = position.Perft(b, depth)
			}
			elapsed := time.Since(start)
			nps := 0.0
			if secs := elapsed.Seconds(); secs > 0 {
				nps = float64(nodes) * float64(repeat) / secs
			}
			a.logger.Debug("perft", "depth", depth, "repeat", repeat, "elapsed", elapsed)
			fmt.Fprintf(out, "depth=%d nodes=%d time=%s nps=%.0f\n", depth, nodes, elapsed.Round(time.Millisecond), nps)
			return a.finish()
		},
	}

	f := cmd.Flags()
	f.StringVar(&fen, "fen", position.StartFEN, "Position in FEN")
	f.IntVar(&depth, "depth", 0, "Perft depth (required)")
	f.IntVar(&repeat, "repeat", 1, "Repeat the count N times for steadier timings")
	f.BoolVar(&divide, "divide", false, "Print per-move node counts at the root")
	_ = cmd.MarkFlagRequired("depth")
	return cmd
}
