// Package config provides centralized configuration management for the
// fuelflow pipeline. It handles loading configuration from environment
// variables and an optional YAML file, validation, and owns the output
// path layout used by every other component.
//
// # Configuration Sources
//
// Configuration is loaded in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. fuelflow.yaml in the working directory
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables use the EIA_* prefix:
//
//	EIA_API_KEY=...            (required, no default)
//	EIA_FETCH_START_YEAR=2000
//	EIA_FETCH_END_YEAR=2024
//	EIA_LOGGING_LEVEL=info
//	EIA_PATHS_BASE_DIR=/srv/fuelflow
//
// The API key is deliberately mandatory: a missing EIA_API_KEY is a
// configuration error, never a silent fallback to an embedded credential.
package config
