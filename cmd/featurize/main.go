// Package main provides the featurize binary: position extraction from game
// collections and positional feature evaluation for training data.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.3.0"
	BuildTime = "dev"
	appName   = "featurize"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalOptions struct {
	configPath  string
	logLevel    string
	metricsFile string
}

func rootCmd() *cobra.Command {
	g := &globalOptions{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Positional feature extraction for chess positions",
		Long: `featurize turns chess games into labeled positional features.

  extract   flatten PGN or CSV game collections into one row per ply
  evaluate  compute connection, mobility and centrality for a positions CSV
  features  print the features of a single FEN
  inspect   list attackers and defenders of a square
  perft     count move tree nodes to check the move generator wiring
  config    write the effective configuration as YAML`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&g.metricsFile, "metrics-file", "", "Write run counters to this prometheus textfile")

	cmd.AddCommand(
		extractCmd(g),
		evaluateCmd(g),
		featuresCmd(g),
		inspectCmd(g),
		perftCmd(g),
		configCmd(g),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)
	return cmd
}
