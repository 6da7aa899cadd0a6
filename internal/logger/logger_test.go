package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Log(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		message string
		fields  Fields
		err     error
		want    bool // should log
	}{
		{
			name:    "info message",
			level:   LevelInfo,
			message: "events refreshed",
			fields:  Fields{"bytes": 42},
			want:    true,
		},
		{
			name:    "debug below threshold",
			level:   LevelDebug,
			message: "request sent",
			want:    false,
		},
		{
			name:    "error with err",
			level:   LevelError,
			message: "refresh failed",
			err:     errors.New("connection refused"),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(LevelInfo, &buf)

			l.log(tt.level, tt.message, tt.fields, tt.err)

			assert.Equal(t, tt.want, buf.Len() > 0)
		})
	}
}

func TestLogger_EntryShape(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug, &buf)

	l.Error("refresh failed", Fields{"url": "http://example.test"}, errors.New("boom"))

	var entry LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "refresh failed", entry.Message)
	assert.Equal(t, "boom", entry.Error)
	assert.Equal(t, "http://example.test", entry.Fields["url"])
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		minLevel  Level
		logLevel  Level
		shouldLog bool
	}{
		{"debug logs at debug", LevelDebug, LevelDebug, true},
		{"info logs at debug", LevelDebug, LevelInfo, true},
		{"debug doesn't log at info", LevelInfo, LevelDebug, false},
		{"warn doesn't log at error", LevelError, LevelWarn, false},
		{"error always logs", LevelDebug, LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(tt.minLevel, &buf).log(tt.logLevel, "test", nil, nil)
			assert.Equal(t, tt.shouldLog, buf.Len() > 0)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{" WARN ", LevelWarn, false},
		{"", LevelInfo, false},
		{"verbose", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("refresh.runs")
	m.IncrCounter("refresh.runs")
	m.SetGauge("refresh.bytes", 512)
	m.SetGauge("refresh.bytes", 1024)
	m.RecordTiming("refresh.fetch", 100*time.Millisecond)
	m.RecordTiming("refresh.fetch", 300*time.Millisecond)

	snapshot := m.GetSnapshot()

	counters := snapshot["counters"].(map[string]int64)
	assert.Equal(t, int64(2), counters["refresh.runs"])

	gauges := snapshot["gauges"].(map[string]float64)
	assert.Equal(t, 1024.0, gauges["refresh.bytes"])

	timings := snapshot["timings"].(map[string]map[string]interface{})
	fetch := timings["refresh.fetch"]
	assert.Equal(t, 2, fetch["count"])
	assert.Equal(t, "100ms", fetch["min"])
	assert.Equal(t, "300ms", fetch["max"])
	assert.Equal(t, "200ms", fetch["average"])
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	prev := Default()
	SetDefault(New(LevelDebug, &buf))
	defer SetDefault(prev)

	Debug("debug", nil)
	Info("info", Fields{"key": "value"})
	Warn("warn", nil)
	Error("error", nil, errors.New("test"))

	assert.Equal(t, 4, strings.Count(buf.String(), "\n"))

	IncrCounter("test")
	SetGauge("test", 42.0)
	RecordTiming("test", time.Second)
	assert.NotNil(t, GetMetricsSnapshot())
}
