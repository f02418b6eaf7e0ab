package applog

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_ScopeAndRequestId(t *testing.T) {
	var buf bytes.Buffer
	logger := WithScope(NewLogger(zerolog.DebugLevel, &buf), "TREE")

	ctx := WithRequestId(context.Background(), "abc123")
	logger.Info().Ctx(ctx).Msg("inserted")

	out := buf.String()
	assert.Contains(t, out, "[TREE]")
	assert.Contains(t, out, "abc123")
	assert.Contains(t, out, "inserted")
	assert.NotContains(t, out, "scope=")
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(zerolog.WarnLevel, &buf)
	logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
		err  bool
	}{
		{in: "", want: zerolog.InfoLevel},
		{in: "debug", want: zerolog.DebugLevel},
		{in: "error", want: zerolog.ErrorLevel},
		{in: "loud", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lvl, err := ParseLevel(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, lvl)
		})
	}
}
