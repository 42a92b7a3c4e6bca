package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	prev := GetLevel()
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		currentLevel.Store(int32(prev))
	})
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", DebugLevel, true},
		{"INFO", InfoLevel, true},
		{" warning ", WarnLevel, true},
		{"error", ErrorLevel, true},
		{"fatal", FatalLevel, true},
		{"verbose", InfoLevel, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestVerbosityLevel(t *testing.T) {
	assert.Equal(t, "warn", VerbosityLevel(0))
	assert.Equal(t, "info", VerbosityLevel(1))
	assert.Equal(t, "debug", VerbosityLevel(2))
	assert.Equal(t, "debug", VerbosityLevel(5))
}

func TestLevelFiltering(t *testing.T) {
	buf := captureOutput(t)

	SetLevel("warn")
	Debugf("hidden %d", 1)
	Info("hidden")
	Warnf("shown %s", "warn")
	Error("shown error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown warn")
	assert.Contains(t, out, "[ERROR] shown error")

	buf.Reset()
	SetLevel("debug")
	Debug("now visible")
	assert.Contains(t, buf.String(), "[DEBUG] now visible")
	assert.True(t, Enabled(DebugLevel))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "INFO", InfoLevel.String())
	assert.Equal(t, "Level(9)", Level(9).String())
}
