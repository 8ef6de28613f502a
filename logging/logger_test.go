package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/single-pyo3/single-pyo3/logging/colors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAddAndRemoveWriter will test to Logger.AddWriter and Logger.RemoveWriter functions to ensure that they work as expected.
func TestAddAndRemoveWriter(t *testing.T) {
	// Create a base logger
	logger := NewLogger(zerolog.InfoLevel)

	// Add three types of writers
	// 1. Unstructured and colorized output to stdout
	logger.AddWriter(os.Stdout, UNSTRUCTURED, true)
	// 2. Unstructured and non-colorized output to stderr
	logger.AddWriter(os.Stderr, UNSTRUCTURED, false)
	// 3. Structured output to stdin
	logger.AddWriter(os.Stdin, STRUCTURED, false)

	assert.Equal(t, 1, len(logger.unstructuredWriters))
	assert.Equal(t, 1, len(logger.unstructuredColorWriters))
	assert.Equal(t, 1, len(logger.structuredWriters))

	// Try to add duplicate writers
	logger.AddWriter(os.Stdout, UNSTRUCTURED, true)
	logger.AddWriter(os.Stderr, UNSTRUCTURED, false)
	logger.AddWriter(os.Stdin, STRUCTURED, false)

	// Ensure that the lengths of the lists have not changed
	assert.Equal(t, 1, len(logger.unstructuredWriters))
	assert.Equal(t, 1, len(logger.unstructuredColorWriters))
	assert.Equal(t, 1, len(logger.structuredWriters))

	// Remove each writer
	logger.RemoveWriter(os.Stdout, UNSTRUCTURED, true)
	logger.RemoveWriter(os.Stderr, UNSTRUCTURED, false)
	logger.RemoveWriter(os.Stdin, STRUCTURED, false)

	assert.Equal(t, 0, len(logger.unstructuredWriters))
	assert.Equal(t, 0, len(logger.unstructuredColorWriters))
	assert.Equal(t, 0, len(logger.structuredWriters))
}

// TestDisabledColors verifies the behavior of the unstructured colored logger when colors are disabled.
func TestDisabledColors(t *testing.T) {
	logger := NewLogger(zerolog.InfoLevel)

	var buf bytes.Buffer
	logger.AddWriter(&buf, UNSTRUCTURED, true)

	colors.DisableColor()
	defer colors.EnableColor()
	logger.Info("foo")

	prefix := fmt.Sprintf("%s %s", colors.LEFT_ARROW, "foo")
	assert.True(t, strings.Contains(buf.String(), prefix))

	// Errors and their fields stay plain as well
	buf.Reset()
	logger.Error("foo", errors.New("boom"))
	assert.NotContains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "boom")
}

// TestColorsReenabled ensures a colored writer picks up colors again without being re-added.
func TestColorsReenabled(t *testing.T) {
	logger := NewLogger(zerolog.InfoLevel)

	var buf bytes.Buffer
	logger.AddWriter(&buf, UNSTRUCTURED, true)

	colors.DisableColor()
	logger.Info("plain")
	assert.NotContains(t, buf.String(), "\x1b[")

	colors.EnableColor()
	buf.Reset()
	logger.Info("colored")
	assert.Contains(t, buf.String(), "\x1b[")
}

// TestStructuredSubLogger ensures sub-logger context and errors show up as JSON fields.
func TestStructuredSubLogger(t *testing.T) {
	logger := NewLogger(zerolog.InfoLevel)

	var buf bytes.Buffer
	logger.AddWriter(&buf, STRUCTURED, false)

	sub := logger.NewSubLogger("module", "compilation")
	sub.Warn("artifact ", "missing", errors.New("boom"), StructuredLogInfo{"module": "foo"})

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "warn", event["level"])
	assert.Equal(t, "compilation", event["module"])
	assert.Equal(t, "artifact missing", event["message"])
	assert.Equal(t, "boom", event["error"])
	assert.NotNil(t, event["info"])
}

// TestLevelFiltering ensures events below the configured level are dropped.
func TestLevelFiltering(t *testing.T) {
	logger := NewLogger(zerolog.InfoLevel)

	var buf bytes.Buffer
	logger.AddWriter(&buf, UNSTRUCTURED, false)

	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger.SetLevel(zerolog.DebugLevel)
	logger.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}
