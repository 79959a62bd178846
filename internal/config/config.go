package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	pipeerrors "fuelflow/internal/errors"
)

// Config represents the complete pipeline configuration
type Config struct {
	APIKey  string        `yaml:"api_key" envconfig:"API_KEY"`
	Fetch   FetchConfig   `yaml:"fetch" envconfig:"FETCH"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// FetchConfig contains the EIA API request parameters
type FetchConfig struct {
	BaseURL   string   `yaml:"base_url" envconfig:"BASE_URL" default:"https://api.eia.gov/v2/petroleum/pri/gnd/data/"`
	StartYear int      `yaml:"start_year" envconfig:"START_YEAR" default:"2000"`
	EndYear   int      `yaml:"end_year" envconfig:"END_YEAR" default:"2024"`
	PageSize  int      `yaml:"page_size" envconfig:"PAGE_SIZE" default:"5000"`
	Products  []string `yaml:"products" envconfig:"PRODUCTS" default:"EPD2D,EPD2DXL0,EPM0,EPM0R,EPMP,EPMR"`
	Regions   []string `yaml:"regions" envconfig:"REGIONS" default:"NUS,R10,R1X,R1Y,R20,R30,R40,R50,R5XCA,SCA"`
	Process   string   `yaml:"process" envconfig:"PROCESS" default:"PTE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/fuelflow.log"`
}

// PathsConfig contains file system path configuration
type PathsConfig struct {
	BaseDir string `yaml:"base_dir" envconfig:"BASE_DIR"`
}

// Load loads configuration from environment variables and an optional
// config file. Environment variables win over file values. The API key
// is mandatory; there is no built-in fallback credential.
func Load() (*Config, error) {
	return LoadFromFile(defaultConfigFile)
}

// LoadFromFile loads configuration, merging the given YAML file if it exists.
func LoadFromFile(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("EIA", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileCfg, err := loadFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = merge(*fileCfg, cfg)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

const defaultConfigFile = "fuelflow.yaml"

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// merge overlays env-provided values on top of file values.
// Only fields actually set in the environment override the file.
func merge(file, env Config) Config {
	out := file

	if env.APIKey != "" {
		out.APIKey = env.APIKey
	}
	if envSet("EIA_FETCH_BASE_URL") {
		out.Fetch.BaseURL = env.Fetch.BaseURL
	}
	if envSet("EIA_FETCH_START_YEAR") {
		out.Fetch.StartYear = env.Fetch.StartYear
	}
	if envSet("EIA_FETCH_END_YEAR") {
		out.Fetch.EndYear = env.Fetch.EndYear
	}
	if envSet("EIA_FETCH_PAGE_SIZE") {
		out.Fetch.PageSize = env.Fetch.PageSize
	}
	if envSet("EIA_FETCH_PRODUCTS") {
		out.Fetch.Products = env.Fetch.Products
	}
	if envSet("EIA_FETCH_REGIONS") {
		out.Fetch.Regions = env.Fetch.Regions
	}
	if envSet("EIA_FETCH_PROCESS") {
		out.Fetch.Process = env.Fetch.Process
	}
	if envSet("EIA_LOGGING_LEVEL") {
		out.Logging.Level = env.Logging.Level
	}
	if envSet("EIA_LOGGING_FORMAT") {
		out.Logging.Format = env.Logging.Format
	}
	if envSet("EIA_LOGGING_OUTPUT") {
		out.Logging.Output = env.Logging.Output
	}
	if envSet("EIA_LOGGING_FILE_PATH") {
		out.Logging.FilePath = env.Logging.FilePath
	}
	if env.Paths.BaseDir != "" {
		out.Paths.BaseDir = env.Paths.BaseDir
	}

	// Defaults from envconfig still apply where neither source set a value
	if out.Fetch.BaseURL == "" {
		out.Fetch.BaseURL = env.Fetch.BaseURL
	}
	if out.Fetch.StartYear == 0 {
		out.Fetch.StartYear = env.Fetch.StartYear
	}
	if out.Fetch.EndYear == 0 {
		out.Fetch.EndYear = env.Fetch.EndYear
	}
	if out.Fetch.PageSize == 0 {
		out.Fetch.PageSize = env.Fetch.PageSize
	}
	if len(out.Fetch.Products) == 0 {
		out.Fetch.Products = env.Fetch.Products
	}
	if len(out.Fetch.Regions) == 0 {
		out.Fetch.Regions = env.Fetch.Regions
	}
	if out.Fetch.Process == "" {
		out.Fetch.Process = env.Fetch.Process
	}
	if out.Logging.Level == "" {
		out.Logging.Level = env.Logging.Level
	}
	if out.Logging.Format == "" {
		out.Logging.Format = env.Logging.Format
	}
	if out.Logging.Output == "" {
		out.Logging.Output = env.Logging.Output
	}
	if out.Logging.FilePath == "" {
		out.Logging.FilePath = env.Logging.FilePath
	}

	return out
}

func envSet(name string) bool {
	_, ok := os.LookupEnv(name)
	return ok
}

// validate checks configuration constraints
func (c *Config) validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return pipeerrors.NewConfigError("EIA_API_KEY", "API key is required and has no default")
	}
	if c.Fetch.StartYear > c.Fetch.EndYear {
		return pipeerrors.NewConfigError("EIA_FETCH_START_YEAR",
			fmt.Sprintf("start year %d is after end year %d", c.Fetch.StartYear, c.Fetch.EndYear))
	}
	if c.Fetch.PageSize <= 0 {
		return pipeerrors.NewConfigError("EIA_FETCH_PAGE_SIZE", "page size must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return pipeerrors.NewConfigError("EIA_LOGGING_LEVEL",
			fmt.Sprintf("invalid log level: %s", c.Logging.Level))
	}

	return nil
}
