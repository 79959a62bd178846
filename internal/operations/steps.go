package operations

import (
	"context"
	"fmt"
	"log/slog"

	"fuelflow/internal/charts"
	"fuelflow/internal/dataprocessing"
	"fuelflow/internal/exporter"
	"fuelflow/internal/fetch"
)

// Step IDs, in execution order.
const (
	StepIDFetch             = "fetch"
	StepIDClean             = "clean"
	StepIDStaticCharts      = "render-static"
	StepIDInteractiveCharts = "render-interactive"
)

// FetchStep retrieves raw petroleum data and persists the raw artifact
// before completing, even when the result set is empty.
type FetchStep struct {
	client *fetch.Client
	writer *exporter.Writer
	logger *slog.Logger
}

// NewFetchStep creates the fetch step. A nil logger falls back to
// slog.Default.
func NewFetchStep(client *fetch.Client, writer *exporter.Writer, logger *slog.Logger) *FetchStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &FetchStep{client: client, writer: writer, logger: logger}
}

func (s *FetchStep) ID() string   { return StepIDFetch }
func (s *FetchStep) Name() string { return "Fetch petroleum data" }

func (s *FetchStep) Validate(state *PipelineState) error {
	if state.Config == nil {
		return fmt.Errorf("missing configuration")
	}
	if state.Config.APIKey == "" {
		return fmt.Errorf("missing API key")
	}
	return nil
}

func (s *FetchStep) Execute(ctx context.Context, state *PipelineState) error {
	cfg := state.Config
	records, err := s.client.Fetch(ctx, fetch.Params{
		APIKey:    cfg.APIKey,
		Products:  cfg.Fetch.Products,
		Regions:   cfg.Fetch.Regions,
		Process:   cfg.Fetch.Process,
		StartYear: cfg.Fetch.StartYear,
		EndYear:   cfg.Fetch.EndYear,
		PageSize:  cfg.Fetch.PageSize,
	})
	if err != nil {
		return err
	}

	state.RawRecords = records
	state.Raw = rawDataset(records)
	s.logger.Info("fetched petroleum records",
		slog.Int("rows", state.Raw.Len()),
		slog.Int("columns", len(state.Raw.Columns)))

	// Persist whatever came back, empty included, before returning
	return s.writer.WriteSimpleCSV(state.Paths.RawCSV, state.Raw.Headers(), state.Raw.Records())
}

// rawDataset converts API rows to the tabular working form
func rawDataset(records []fetch.Record) *dataprocessing.Dataset {
	rows := make([]map[string]any, len(records))
	for i, r := range records {
		rows[i] = map[string]any(r)
	}
	return dataprocessing.FromRecords(fetch.Columns(records), rows)
}

// CleanStep derives the cleaned dataset and persists the processed
// artifacts (CSV and Excel).
type CleanStep struct {
	cleaner *dataprocessing.Cleaner
	writer  *exporter.Writer
	logger  *slog.Logger
}

// NewCleanStep creates the clean step. A nil logger falls back to
// slog.Default.
func NewCleanStep(cleaner *dataprocessing.Cleaner, writer *exporter.Writer, logger *slog.Logger) *CleanStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &CleanStep{cleaner: cleaner, writer: writer, logger: logger}
}

func (s *CleanStep) ID() string   { return StepIDClean }
func (s *CleanStep) Name() string { return "Clean petroleum data" }

func (s *CleanStep) Validate(state *PipelineState) error {
	if state.Raw == nil {
		return fmt.Errorf("no raw dataset, fetch step must run first")
	}
	return nil
}

func (s *CleanStep) Execute(ctx context.Context, state *PipelineState) error {
	clean, err := s.cleaner.Clean(state.Raw)
	if err != nil {
		return err
	}
	state.Clean = clean
	s.logger.Info("cleaned dataset",
		slog.Int("rows_in", state.Raw.Len()),
		slog.Int("rows_out", clean.Len()))

	if err := s.writer.WriteSimpleCSV(state.Paths.CleanCSV, clean.Headers(), clean.Records()); err != nil {
		return err
	}
	return s.writer.WriteWorkbook(state.Paths.CleanXLSX, "Cleaned", clean.Headers(), clean.Records())
}

// StaticChartsStep renders the PNG chart artifacts.
type StaticChartsStep struct {
	renderer *charts.StaticRenderer
}

// NewStaticChartsStep creates the static chart step
func NewStaticChartsStep(renderer *charts.StaticRenderer) *StaticChartsStep {
	return &StaticChartsStep{renderer: renderer}
}

func (s *StaticChartsStep) ID() string   { return StepIDStaticCharts }
func (s *StaticChartsStep) Name() string { return "Render static charts" }

func (s *StaticChartsStep) Validate(state *PipelineState) error {
	if state.Clean == nil {
		return fmt.Errorf("no cleaned dataset, clean step must run first")
	}
	return nil
}

func (s *StaticChartsStep) Execute(ctx context.Context, state *PipelineState) error {
	return s.renderer.RenderAll(state.Clean)
}

// InteractiveChartsStep renders the HTML chart artifacts.
type InteractiveChartsStep struct {
	renderer *charts.InteractiveRenderer
}

// NewInteractiveChartsStep creates the interactive chart step
func NewInteractiveChartsStep(renderer *charts.InteractiveRenderer) *InteractiveChartsStep {
	return &InteractiveChartsStep{renderer: renderer}
}

func (s *InteractiveChartsStep) ID() string   { return StepIDInteractiveCharts }
func (s *InteractiveChartsStep) Name() string { return "Render interactive charts" }

func (s *InteractiveChartsStep) Validate(state *PipelineState) error {
	if state.Clean == nil {
		return fmt.Errorf("no cleaned dataset, clean step must run first")
	}
	return nil
}

func (s *InteractiveChartsStep) Execute(ctx context.Context, state *PipelineState) error {
	return s.renderer.RenderAll(state.Clean)
}
