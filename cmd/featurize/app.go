package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"chess-features/config"
	"chess-features/metrics"
)

// app carries what every subcommand needs for one run.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	runID    string
	recorder *metrics.Recorder
}

func newApp(cmd *cobra.Command, g *globalOptions) (*app, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.metricsFile != "" {
		cfg.Metrics.Textfile = g.metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	logger := newLogger(cmd.ErrOrStderr(), cfg.Log.Level).With("run_id", runID)
	slog.SetDefault(logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		runID:    runID,
		recorder: metrics.NewRecorder(runID),
	}, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// finish writes the metrics textfile if one is configured.
func (a *app) finish() error {
	path := a.cfg.Metrics.Textfile
	if path == "" {
		return nil
	}
	if err := a.recorder.WriteTextfile(path); err != nil {
		return err
	}
	a.logger.Debug("metrics written", "path", path)
	return nil
}
