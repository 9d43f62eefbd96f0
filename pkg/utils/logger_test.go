package utils

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AppConfig
		want    zapcore.Level
		wantErr bool
	}{
		{name: "production default", cfg: AppConfig{}, want: zapcore.InfoLevel},
		{name: "debug default", cfg: AppConfig{Debug: true}, want: zapcore.DebugLevel},
		{name: "explicit wins", cfg: AppConfig{Debug: true, LogLevel: "warn"}, want: zapcore.WarnLevel},
		{name: "unknown level", cfg: AppConfig{LogLevel: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := logLevel(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger_JSONWithAppField(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(AppConfig{Name: "karigar-test"}, zapcore.InfoLevel, zapcore.AddSync(&buf))

	log.Debug("dropped")
	log.Error("booking failed", zap.String("booking_id", "b-1"))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	assert.Equal(t, "booking failed", entry["msg"])
	assert.Equal(t, "karigar-test", entry["app"])
	assert.Equal(t, "b-1", entry["booking_id"])
	assert.Contains(t, entry, "timestamp")
	assert.Contains(t, entry, "stacktrace")
}
