package logging

import (
	"bytes"
	"testing"

	"github.com/paycompare/tax-calculator/internal/calculation"
	"github.com/stretchr/testify/assert"
)

var _ calculation.Logger = New(Config{})

func TestLevelFromString(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expected    LogLevel
	}{
		{description: "upper case", input: "DEBUG", expected: LevelDebug},
		{description: "lower case", input: "info", expected: LevelInfo},
		{description: "warning alias", input: "warning", expected: LevelWarn},
		{description: "error", input: "Error", expected: LevelError},
		{description: "none", input: "none", expected: LevelNone},
		{description: "padded", input: "  debug ", expected: LevelDebug},
		{description: "unknown falls back to warn", input: "chatty", expected: LevelWarn},
		{description: "empty falls back to warn", input: "", expected: LevelWarn},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, LevelFromString(tc.input))
		})
	}
}

func TestLevelString(t *testing.T) {
	for _, l := range []LogLevel{LevelNone, LevelError, LevelWarn, LevelInfo, LevelDebug} {
		assert.Equal(t, l, LevelFromString(l.String()))
	}
	assert.Equal(t, "LogLevel(9)", LogLevel(9).String())
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: LevelWarn, Output: &buf})

	log.Debugf("debug %d", 1)
	log.Infof("info %d", 2)
	log.Warnf("warn %d", 3)
	log.Errorf("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "warn 3")
	assert.Contains(t, out, "error 4")
}

func TestNew_None(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: LevelNone, Output: &buf})
	log.Errorf("dropped")
	assert.Empty(t, buf.String())
}
