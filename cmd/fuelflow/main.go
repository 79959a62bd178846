// Command fuelflow runs the petroleum price pipeline: fetch annual EIA
// price data, clean it, and render static and interactive charts.
//
// Usage:
//
//	EIA_API_KEY=... fuelflow [-base DIR] [-from YEAR] [-to YEAR] [-log-level LEVEL]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fuelflow/internal/charts"
	"fuelflow/internal/config"
	"fuelflow/internal/dataprocessing"
	"fuelflow/internal/exporter"
	"fuelflow/internal/fetch"
	"fuelflow/internal/infrastructure"
	"fuelflow/internal/operations"
)

func main() {
	baseDir := flag.String("base", "", "base directory for data and outputs (defaults to the working directory)")
	fromYear := flag.Int("from", 0, "start year for the fetch (overrides config)")
	toYear := flag.Int("to", 0, "end year for the fetch (overrides config)")
	logLevel := flag.String("log-level", "", "log level: debug | info | warn | error (overrides config)")
	flag.Parse()

	if err := run(*baseDir, *fromYear, *toYear, *logLevel); err != nil {
		slog.Error("pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(baseDir string, fromYear, toYear int, logLevel string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if fromYear != 0 {
		cfg.Fetch.StartYear = fromYear
	}
	if toYear != 0 {
		cfg.Fetch.EndYear = toYear
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if baseDir == "" {
		baseDir = cfg.Paths.BaseDir
	}

	paths, err := config.NewPaths(baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	cfg.Logging.FilePath = paths.GetLogPath("fuelflow.log")
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	logger.Info("starting petroleum price pipeline",
		slog.String("base_dir", paths.BaseDir),
		slog.Int("start_year", cfg.Fetch.StartYear),
		slog.Int("end_year", cfg.Fetch.EndYear))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	writer := exporter.NewWriter(logger)
	steps := []operations.Step{
		operations.NewFetchStep(fetch.NewClient(cfg.Fetch.BaseURL, logger), writer, logger),
		operations.NewCleanStep(dataprocessing.NewCleaner(logger), writer, logger),
		operations.NewStaticChartsStep(charts.NewStaticRenderer(paths, logger)),
		operations.NewInteractiveChartsStep(charts.NewInteractiveRenderer(paths, logger)),
	}

	runner := operations.NewRunner(steps, logger)
	state := operations.NewPipelineState(cfg, paths)

	if err := runner.Run(ctx, state); err != nil {
		return err
	}

	logger.Info("pipeline complete",
		slog.Int("raw_rows", state.Raw.Len()),
		slog.Int("clean_rows", state.Clean.Len()))
	return nil
}
