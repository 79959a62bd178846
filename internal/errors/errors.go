// Package errors defines the error taxonomy for the fuelflow pipeline.
//
// Four fatal categories exist: RequestError (non-success response from the
// EIA API), SchemaError (required column absent from the cleaner input),
// DataError (an imputation step cannot determine a fill value), and
// ConfigError (missing or invalid configuration). Date and number parse
// failures are never errors; they coerce to missing values that downstream
// imputation handles.
//
// All fatal conditions abort the run. There is no partial-success mode and
// no step retries automatically.
package errors

import (
	"errors"
	"fmt"
)

// RequestError indicates a non-success HTTP response from the remote
// data source. The caller must not retry automatically.
type RequestError struct {
	StatusCode int
	URL        string
}

// Error implements the error interface
func (e *RequestError) Error() string {
	return fmt.Sprintf("API request failed: status %d from %s", e.StatusCode, e.URL)
}

// NewRequestError creates a RequestError for the given status and URL
func NewRequestError(statusCode int, url string) *RequestError {
	return &RequestError{StatusCode: statusCode, URL: url}
}

// SchemaError indicates a required column is absent from the cleaner input.
// Raised before any processing begins.
type SchemaError struct {
	Column string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	return fmt.Sprintf("input data is missing required column %q", e.Column)
}

// NewSchemaError creates a SchemaError for the given column
func NewSchemaError(column string) *SchemaError {
	return &SchemaError{Column: column}
}

// DataError indicates an imputation step could not determine a fill value,
// typically because a column is entirely missing.
type DataError struct {
	Column string
	Reason string
}

// Error implements the error interface
func (e *DataError) Error() string {
	return fmt.Sprintf("cannot impute column %q: %s", e.Column, e.Reason)
}

// NewDataError creates a DataError for the given column and reason
func NewDataError(column, reason string) *DataError {
	return &DataError{Column: column, Reason: reason}
}

// ConfigError indicates missing or invalid configuration.
type ConfigError struct {
	Key    string
	Reason string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Key, e.Reason)
}

// NewConfigError creates a ConfigError for the given key and reason
func NewConfigError(key, reason string) *ConfigError {
	return &ConfigError{Key: key, Reason: reason}
}

// IsRequestError reports whether err wraps a RequestError
func IsRequestError(err error) bool {
	var target *RequestError
	return errors.As(err, &target)
}

// IsSchemaError reports whether err wraps a SchemaError
func IsSchemaError(err error) bool {
	var target *SchemaError
	return errors.As(err, &target)
}

// IsDataError reports whether err wraps a DataError
func IsDataError(err error) bool {
	var target *DataError
	return errors.As(err, &target)
}

// IsConfigError reports whether err wraps a ConfigError
func IsConfigError(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}
