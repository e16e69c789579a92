package logger

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFormats(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{FormatJSON, []string{`"msg":"compiled"`, `"file":"in.js"`, `"elapsed":"1.5s"`}},
		{FormatLogfmt, []string{"msg=compiled", "file=in.js", "level=info"}},
		{FormatConsole, []string{"compiled", `{"file": "in.js", "elapsed": "1.5s"}`}},
		// A buffer is not a terminal.
		{FormatAuto, []string{"msg=compiled", "file=in.js"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := New(&buf, Config{Format: tt.format, Level: "info"})
			require.NoError(t, err)

			log.Info("compiled", zap.String("file", "in.js"), zap.Duration("elapsed", 1500*time.Millisecond))
			require.NoError(t, log.Sync())

			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, Config{Format: FormatLogfmt, Level: "warn"})
	require.NoError(t, err)

	log.Info("hidden")
	log.Debug("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestDefaults(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, FormatAuto, c.Format)
	assert.Equal(t, "info", c.Level)
	assert.NoError(t, c.Validate())
	assert.NoError(t, Config{}.Validate())
}

func TestInvalidConfig(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Config{Format: "xml"})
	assert.EqualError(t, err, `unknown log format "xml"`)

	_, err = New(&bytes.Buffer{}, Config{Format: FormatJSON, Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid log level "loud"`)
}
