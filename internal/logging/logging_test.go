package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaultsToInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf})

	log.Debug("should not appear")
	log.Info("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "should appear")
}

func TestNewDebugOptionEnablesDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Debug: true})

	log.Debug("debug line")
	assert.Contains(t, buf.String(), "debug line")
}

func TestProbeFieldsIncludesCorrelationFqdnAndMethod(t *testing.T) {
	fields := ProbeFields("corr-1", "example.com", "rdap", slog.String("status", "available"))

	assert.Equal(t, "corr-1", fields["correlation_id"])
	assert.Equal(t, "example.com", fields["fqdn"])
	assert.Equal(t, "rdap", fields["method"])
	assert.Equal(t, "available", fields["status"])
}
