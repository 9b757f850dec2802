package logging

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_FileWriter(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "info", nil, nil, nil)
	m.Logger().Info("hello file")

	assert.Contains(t, buf.String(), "hello file")
}

func TestSetup_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "debug", nil, nil, nil)

	m.Logger().Debug("debug msg")
	m.Logger().Info("info msg")

	output := buf.String()
	assert.Contains(t, output, "debug msg")
	assert.Contains(t, output, "info msg")
}

func TestSetup_InfoLevel_FiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "info", nil, nil, nil)

	m.Logger().Debug("hidden")
	m.Logger().Info("visible")

	output := buf.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "visible")
}

func TestSetup_GelfWriterReceivesJSON(t *testing.T) {
	var file, gelf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&file, "info", nil, &gelf, nil)

	m.Logger().Info("shipped")

	assert.Contains(t, file.String(), "shipped")
	assert.Contains(t, gelf.String(), `"msg":"shipped"`)
}

func TestSetup_ModeProviderStampsRecords(t *testing.T) {
	var buf bytes.Buffer
	mode := "idle"
	m := NewSlogManager()
	m.Setup(&buf, "info", nil, nil, func() []slog.Attr {
		return []slog.Attr{slog.String("mode", mode)}
	})

	mode = "move"
	m.Logger().Info("dragging")

	assert.Contains(t, buf.String(), "mode=move")
}

func TestLogger_DefaultBeforeSetup(t *testing.T) {
	m := NewSlogManager()
	require.NotNil(t, m.Logger())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}

func TestLogFilePath(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	got := LogFilePath("/var/log/waymark", "waymark", start)
	assert.Contains(t, got, "waymark.20260314_093000.log")
}
