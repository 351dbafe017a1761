package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{input: "", want: zapcore.InfoLevel},
		{input: "info", want: zapcore.InfoLevel},
		{input: "DEBUG", want: zapcore.DebugLevel},
		{input: "warning", want: zapcore.WarnLevel},
		{input: " error ", want: zapcore.ErrorLevel},
		{input: "loud", want: zapcore.InfoLevel, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewCore(t *testing.T) {
	t.Parallel()

	t.Run("level filters", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		core, err := NewCore(Config{Level: "info"}, &buf)
		require.NoError(t, err)

		logger := zap.New(core).Sugar().Named("pactl")
		logger.Debugw("hidden")
		logger.Infow("Refreshed all components", "sinks", 3)

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "INFO")
		assert.Contains(t, out, "pactl")
		assert.Contains(t, out, `{"sinks": 3}`)
	})

	t.Run("verbose forces debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		core, err := NewCore(Config{Level: "error", Verbose: true}, &buf)
		require.NoError(t, err)

		zap.New(core).Sugar().Debugf("$ %s", "pactl list sinks")
		assert.Contains(t, buf.String(), "$ pactl list sinks")
	})

	t.Run("unknown level", func(t *testing.T) {
		t.Parallel()
		_, err := NewCore(Config{Level: "loud"}, &bytes.Buffer{})
		assert.Error(t, err)
	})
}
