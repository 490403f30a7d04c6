package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "orbit", false)

	l.Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	l.Infof("zoom %.1f", 2.5)
	assert.Contains(t, buf.String(), "[orbit] INFO: zoom 2.5")

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("shown")
	assert.Contains(t, buf.String(), "[orbit] DEBUG: shown")

	l.Warnf("w")
	l.Errorf("e")
	assert.Contains(t, buf.String(), "WARN: w")
	assert.Contains(t, buf.String(), "ERROR: e")
}

func TestDefaultLoggerWithoutPrefix(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "", false).Infof("plain")
	assert.Contains(t, buf.String(), "INFO: plain")
	assert.NotContains(t, buf.String(), "[")
}

func TestNopLogger(t *testing.T) {
	l := Nop()
	l.SetDebug(true)
	assert.False(t, l.DebugEnabled())
	l.Debugf("x")
	l.Errorf("y")
}
