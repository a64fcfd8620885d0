package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
	}{
		{"debug level with text format", "debug", "text", logrus.DebugLevel},
		{"info level with json format", "info", "json", logrus.InfoLevel},
		{"warn level with text format", "warn", "text", logrus.WarnLevel},
		{"invalid level defaults to info", "invalid", "text", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok, "logger should be a LogrusAdapter")
			assert.Equal(t, tt.expectLevel, adapter.entry.Logger.Level)

			if tt.format == "json" {
				_, ok := adapter.entry.Logger.Formatter.(*logrus.JSONFormatter)
				assert.True(t, ok, "formatter should be JSONFormatter")
			} else {
				_, ok := adapter.entry.Logger.Formatter.(*logrus.TextFormatter)
				assert.True(t, ok, "formatter should be TextFormatter")
			}
		})
	}
}

func TestNewLogrusAdapterWithWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAdapterWithWriter(&buf, "debug", "json")

	logger.Debug("file skipped", F(FieldFile, "broken.csv"), F(FieldCount, 3))

	out := buf.String()
	assert.Contains(t, out, `"msg":"file skipped"`)
	assert.Contains(t, out, `"file_path":"broken.csv"`)
	assert.Contains(t, out, `"count":3`)
}

func TestLogrusAdapter_ChainedCalls(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAdapterWithWriter(&buf, "info", "text")

	logger.
		WithField(FieldMonth, "2024-03").
		WithFields(F(FieldFile, "fatura.csv")).
		WithError(errors.New("boom")).
		Error("projection failed")

	out := buf.String()
	assert.Contains(t, out, "projection failed")
	assert.Contains(t, out, "2024-03")
	assert.Contains(t, out, "fatura.csv")
	assert.Contains(t, out, "boom")
}

func TestLogrusAdapter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAdapterWithWriter(&buf, "warn", "text")

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestToLogrus(t *testing.T) {
	fields := toLogrus([]Field{F("a", "x"), F("b", 42), F("c", true)})
	assert.Len(t, fields, 3)
	assert.Equal(t, 42, fields["b"])
	assert.Len(t, toLogrus(nil), 0)
}

func TestOrDefault(t *testing.T) {
	assert.NotNil(t, OrDefault(nil))

	mock := NewMockLogger()
	assert.Same(t, mock, OrDefault(mock))
}

func TestMockLogger_DerivedLoggersShareSink(t *testing.T) {
	mock := NewMockLogger()
	child := mock.WithField(FieldFile, "a.csv").WithError(errors.New("bad header"))

	child.Warn("skipping file")
	mock.Info("done")

	entries := mock.GetEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.Equal(t, []Field{F(FieldFile, "a.csv")}, entries[0].Fields)
	assert.EqualError(t, entries[0].Error, "bad header")
	assert.True(t, mock.HasEntry("INFO", "done"))
	assert.Len(t, mock.GetEntriesByLevel("WARN"), 1)

	mock.Clear()
	assert.Empty(t, mock.GetEntries())
}

func TestLogrusAdapter_ImplementsInterface(t *testing.T) {
	var _ Logger = (*LogrusAdapter)(nil)
	var _ Logger = (*MockLogger)(nil)
}
