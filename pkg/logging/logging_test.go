package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "json", Output: &buf})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "hub", "landscapes")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "landscapes", line["hub"])
}

func TestNew_RejectsUnknownValues(t *testing.T) {
	_, err := New(Options{Level: "loud", Output: &bytes.Buffer{}})
	assert.ErrorContains(t, err, "log level")

	_, err = New(Options{Format: "xml", Output: &bytes.Buffer{}})
	assert.ErrorContains(t, err, "log format")
}
