package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pipeerrors "fuelflow/internal/errors"
)

// clearEnv unsets every EIA_* variable for the duration of the test so
// the host environment cannot leak into configuration assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, entry := range os.Environ() {
		key, _, _ := strings.Cut(entry, "=")
		if strings.HasPrefix(key, "EIA_") {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := LoadFromFile("")
	require.Error(t, err)
	assert.True(t, pipeerrors.IsConfigError(err))
	assert.Contains(t, err.Error(), "EIA_API_KEY")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("EIA_API_KEY", "test-key")

	cfg, err := LoadFromFile("")
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "https://api.eia.gov/v2/petroleum/pri/gnd/data/", cfg.Fetch.BaseURL)
	assert.Equal(t, 2000, cfg.Fetch.StartYear)
	assert.Equal(t, 2024, cfg.Fetch.EndYear)
	assert.Equal(t, 5000, cfg.Fetch.PageSize)
	assert.Equal(t, []string{"EPD2D", "EPD2DXL0", "EPM0", "EPM0R", "EPMP", "EPMR"}, cfg.Fetch.Products)
	assert.Equal(t, []string{"NUS", "R10", "R1X", "R1Y", "R20", "R30", "R40", "R50", "R5XCA", "SCA"}, cfg.Fetch.Regions)
	assert.Equal(t, "PTE", cfg.Fetch.Process)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("EIA_API_KEY", "test-key")
	t.Setenv("EIA_FETCH_START_YEAR", "2010")
	t.Setenv("EIA_FETCH_PRODUCTS", "EPMR,EPMP")
	t.Setenv("EIA_LOGGING_LEVEL", "debug")

	cfg, err := LoadFromFile("")
	require.NoError(t, err)

	assert.Equal(t, 2010, cfg.Fetch.StartYear)
	assert.Equal(t, []string{"EPMR", "EPMP"}, cfg.Fetch.Products)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMergesConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("EIA_API_KEY", "env-key")
	t.Setenv("EIA_FETCH_END_YEAR", "2023")

	file := filepath.Join(t.TempDir(), "fuelflow.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
fetch:
  start_year: 2015
  end_year: 2020
logging:
  level: warn
`), 0644))

	cfg, err := LoadFromFile(file)
	require.NoError(t, err)

	// File values apply where the environment is silent
	assert.Equal(t, 2015, cfg.Fetch.StartYear)
	assert.Equal(t, "warn", cfg.Logging.Level)
	// Environment wins where both are set
	assert.Equal(t, 2023, cfg.Fetch.EndYear)
	assert.Equal(t, "env-key", cfg.APIKey)
	// Defaults still fill the gaps
	assert.Equal(t, 5000, cfg.Fetch.PageSize)
}

func TestLoadRejectsInvalidYearRange(t *testing.T) {
	clearEnv(t)
	t.Setenv("EIA_API_KEY", "test-key")
	t.Setenv("EIA_FETCH_START_YEAR", "2025")
	t.Setenv("EIA_FETCH_END_YEAR", "2020")

	_, err := LoadFromFile("")
	require.Error(t, err)
	assert.True(t, pipeerrors.IsConfigError(err))
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("EIA_API_KEY", "test-key")
	t.Setenv("EIA_LOGGING_LEVEL", "verbose")

	_, err := LoadFromFile("")
	require.Error(t, err)
	assert.True(t, pipeerrors.IsConfigError(err))
}
