package operations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuelflow/internal/charts"
	"fuelflow/internal/config"
	"fuelflow/internal/dataprocessing"
	"fuelflow/internal/exporter"
	"fuelflow/internal/fetch"
)

const testPayload = `{"response":{"total":"4","data":[
	{"period":"2023","duoarea":"NUS","product":"EPMR","process":"PTE","value":"3.2","units":"$/GAL"},
	{"period":"2024","duoarea":"NUS","product":"EPMR","process":"PTE","value":"3.459","units":"$/GAL"},
	{"period":"2023","duoarea":"SCA","product":"EPMP","process":"PTE","value":"4.6","units":"$/GAL"},
	{"period":"2024","duoarea":"SCA","product":"EPMP","process":"PTE","value":"4.9","units":"$/GAL"}
]}}`

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		APIKey: "test-key",
		Fetch: config.FetchConfig{
			BaseURL:   baseURL,
			StartYear: 2000,
			EndYear:   2024,
			PageSize:  5000,
			Products:  []string{"EPMR", "EPMP"},
			Regions:   []string{"NUS", "SCA"},
			Process:   "PTE",
		},
	}
}

func testPipeline(t *testing.T, payload string) (*Runner, *PipelineState, *config.Paths) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	t.Cleanup(server.Close)

	paths, err := config.NewPaths(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirectories())

	cfg := testConfig(server.URL)
	writer := exporter.NewWriter(nil)
	steps := []Step{
		NewFetchStep(fetch.NewClient(cfg.Fetch.BaseURL, nil), writer, nil),
		NewCleanStep(dataprocessing.NewCleaner(nil), writer, nil),
		NewStaticChartsStep(charts.NewStaticRenderer(paths, nil)),
		NewInteractiveChartsStep(charts.NewInteractiveRenderer(paths, nil)),
	}
	return NewRunner(steps, nil), NewPipelineState(cfg, paths), paths
}

func TestPipelineEndToEnd(t *testing.T) {
	runner, state, paths := testPipeline(t, testPayload)

	require.NoError(t, runner.Run(context.Background(), state))

	require.NotNil(t, state.Raw)
	assert.Equal(t, 4, state.Raw.Len())
	require.NotNil(t, state.Clean)
	assert.Equal(t, 4, state.Clean.Len())

	raw, err := os.ReadFile(paths.RawCSV)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "period,duoarea,product,process,value,units")
	assert.Contains(t, string(raw), "2024,NUS,EPMR,PTE,3.459,$/GAL")

	clean, err := os.ReadFile(paths.CleanCSV)
	require.NoError(t, err)
	assert.Contains(t, string(clean), "2024-01-01,United States,Regular Gasoline")

	_, err = os.Stat(paths.CleanXLSX)
	assert.NoError(t, err)

	entries, err := os.ReadDir(paths.PlotsDir)
	require.NoError(t, err)
	assert.Len(t, entries, 5)

	for _, name := range []string{"scatter_prices", "price_trend", "national_vs_states"} {
		_, err := os.Stat(paths.GetChartPath(name))
		assert.NoError(t, err, "missing %s chart", name)
	}
}

func TestPipelineEmptyResponse(t *testing.T) {
	runner, state, paths := testPipeline(t, `{"response":{"data":[]}}`)

	require.NoError(t, runner.Run(context.Background(), state))

	// Both artifacts exist as zero-byte markers; charts are skipped
	for _, path := range []string{paths.RawCSV, paths.CleanCSV} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Zero(t, info.Size())
	}

	entries, err := os.ReadDir(paths.PlotsDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPipelineAPIFailureAbortsRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	paths, err := config.NewPaths(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirectories())

	writer := exporter.NewWriter(nil)
	runner := NewRunner([]Step{
		NewFetchStep(fetch.NewClient(server.URL, nil), writer, nil),
		NewCleanStep(dataprocessing.NewCleaner(nil), writer, nil),
	}, nil)

	err = runner.Run(context.Background(), NewPipelineState(testConfig(server.URL), paths))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "step fetch failed"))

	// The clean step never ran, so no artifact appears
	_, statErr := os.Stat(paths.CleanCSV)
	assert.True(t, os.IsNotExist(statErr))
	assert.Equal(t, StepStatusPending, runner.StepState(StepIDClean).GetStatus())
}

func TestStepConstructorsDefaultLogger(t *testing.T) {
	require.NotNil(t, NewFetchStep(nil, nil, nil).logger)
	require.NotNil(t, NewCleanStep(nil, nil, nil).logger)
}

func TestFetchStepValidate(t *testing.T) {
	step := NewFetchStep(nil, nil, nil)

	err := step.Validate(NewPipelineState(&config.Config{}, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")

	assert.NoError(t, step.Validate(NewPipelineState(&config.Config{APIKey: "k"}, nil)))
}

func TestCleanStepValidateRequiresRawData(t *testing.T) {
	step := NewCleanStep(dataprocessing.NewCleaner(nil), exporter.NewWriter(nil), nil)

	err := step.Validate(NewPipelineState(nil, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch step must run first")
}
