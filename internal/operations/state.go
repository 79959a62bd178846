package operations

import (
	"fuelflow/internal/config"
	"fuelflow/internal/dataprocessing"
	"fuelflow/internal/fetch"
)

// PipelineState carries the data flowing between steps of one run. The
// pipeline owns its data exclusively for the duration of a run; there is
// no multi-run concurrency model.
type PipelineState struct {
	Config *config.Config
	Paths  *config.Paths

	// RawRecords holds the rows as received from the API
	RawRecords []fetch.Record
	// Raw is the tabular form of RawRecords
	Raw *dataprocessing.Dataset
	// Clean is the cleaned dataset derived from Raw
	Clean *dataprocessing.Dataset
}

// NewPipelineState creates the state for one pipeline run
func NewPipelineState(cfg *config.Config, paths *config.Paths) *PipelineState {
	return &PipelineState{Config: cfg, Paths: paths}
}
