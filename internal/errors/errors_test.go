package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestError(t *testing.T) {
	err := NewRequestError(403, "https://api.eia.gov/v2/petroleum/pri/gnd/data/")

	assert.Contains(t, err.Error(), "status 403")
	assert.Contains(t, err.Error(), "api.eia.gov")
	assert.True(t, IsRequestError(err))
	assert.False(t, IsSchemaError(err))
}

func TestSchemaError(t *testing.T) {
	err := NewSchemaError("period")

	assert.Contains(t, err.Error(), `"period"`)
	assert.True(t, IsSchemaError(err))
	assert.False(t, IsDataError(err))
}

func TestDataError(t *testing.T) {
	err := NewDataError("value", "column is entirely missing")

	assert.Contains(t, err.Error(), `"value"`)
	assert.Contains(t, err.Error(), "entirely missing")
	assert.True(t, IsDataError(err))
	assert.False(t, IsConfigError(err))
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("EIA_API_KEY", "API key is required and has no default")

	assert.Contains(t, err.Error(), "EIA_API_KEY")
	assert.True(t, IsConfigError(err))
	assert.False(t, IsRequestError(err))
}

func TestHelpersUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("step fetch failed: %w", NewRequestError(500, "https://example.com"))
	assert.True(t, IsRequestError(wrapped))

	wrapped = fmt.Errorf("step clean failed: %w", NewDataError("units", "no values"))
	assert.True(t, IsDataError(wrapped))

	assert.False(t, IsRequestError(nil))
	assert.False(t, IsSchemaError(fmt.Errorf("plain error")))
}
