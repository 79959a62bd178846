package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Paths contains all file system locations used by the pipeline.
// This is the single source of truth for output paths: raw and cleaned
// data artifacts, static plot images and interactive chart documents.
type Paths struct {
	BaseDir      string
	DataDir      string
	RawDir       string
	ProcessedDir string
	OutputsDir   string
	PlotsDir     string
	LogsDir      string

	// Well-known artifact files
	RawCSV    string
	CleanCSV  string
	CleanXLSX string
}

// NewPaths builds the path layout rooted at baseDir. An empty baseDir
// resolves to the current working directory.
//
// Directory structure:
//
//	base/
//	  ├── data/
//	  │   ├── raw/            (raw API rows, as received)
//	  │   └── processed/      (cleaned dataset, CSV + XLSX)
//	  ├── outputs/            (interactive HTML charts)
//	  │   └── plots/          (static PNG charts, date-stamped)
//	  └── logs/
func NewPaths(baseDir string) (*Paths, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		baseDir = wd
	}

	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	dataDir := filepath.Join(abs, "data")
	rawDir := filepath.Join(dataDir, "raw")
	processedDir := filepath.Join(dataDir, "processed")
	outputsDir := filepath.Join(abs, "outputs")

	return &Paths{
		BaseDir:      abs,
		DataDir:      dataDir,
		RawDir:       rawDir,
		ProcessedDir: processedDir,
		OutputsDir:   outputsDir,
		PlotsDir:     filepath.Join(outputsDir, "plots"),
		LogsDir:      filepath.Join(abs, "logs"),

		RawCSV:    filepath.Join(rawDir, "petroleum_raw.csv"),
		CleanCSV:  filepath.Join(processedDir, "petroleum_clean.csv"),
		CleanXLSX: filepath.Join(processedDir, "petroleum_clean.xlsx"),
	}, nil
}

// EnsureDirectories creates every directory the pipeline writes into.
// Called once by the orchestrator before any component runs; no package
// creates directories as an import side effect.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.DataDir,
		p.RawDir,
		p.ProcessedDir,
		p.OutputsDir,
		p.PlotsDir,
		p.LogsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetPlotPath returns the path for a static plot image, stamped with the
// given day: <plots>/<name>_YYYY-MM-DD.png
func (p *Paths) GetPlotPath(name string, day time.Time) string {
	return filepath.Join(p.PlotsDir, fmt.Sprintf("%s_%s.png", name, day.Format("2006-01-02")))
}

// GetChartPath returns the path for an interactive chart document,
// overwritten on every run: <outputs>/<name>.html
func (p *Paths) GetChartPath(name string) string {
	return filepath.Join(p.OutputsDir, name+".html")
}

// GetLogPath returns the path for a log file under the logs directory.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
