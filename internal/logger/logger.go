// Package logger builds the zap loggers used by the minijs tools. Library
// packages never construct loggers themselves; they accept one.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	zaplogfmt "github.com/jsternberg/zap-logfmt"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log output formats.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatLogfmt  = "logfmt"
)

// Config selects the log format and minimum level.
type Config struct {
	Format string `toml:"format" mapstructure:"format" yaml:"format"`
	Level  string `toml:"level" mapstructure:"level" yaml:"level"`
}

// NewConfig returns a new instance of Config with defaults.
func NewConfig() Config {
	return Config{
		Format: FormatAuto,
		Level:  "info",
	}
}

// Validate checks that the format and level are known.
func (c Config) Validate() error {
	switch c.Format {
	case "", FormatAuto, FormatConsole, FormatJSON, FormatLogfmt:
	default:
		return fmt.Errorf("unknown log format %q", c.Format)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c Config) level() (zapcore.Level, error) {
	if c.Level == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	return lvl, nil
}

// New returns a logger writing to w. The auto format picks console output
// for terminals and logfmt otherwise.
func New(w io.Writer, c Config) (*zap.Logger, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	lvl, _ := c.level()

	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = func(ts time.Time, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(ts.UTC().Format(time.RFC3339))
	}
	config.EncodeDuration = func(d time.Duration, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(d.String())
	}

	var encoder zapcore.Encoder
	switch format(w, c.Format) {
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(config)
	case FormatLogfmt:
		encoder = zaplogfmt.NewEncoder(config)
	default:
		encoder = zapcore.NewConsoleEncoder(config)
	}

	return zap.New(zapcore.NewCore(
		encoder,
		zapcore.Lock(zapcore.AddSync(w)),
		lvl,
	)), nil
}

func format(w io.Writer, f string) string {
	if f != "" && f != FormatAuto {
		return f
	}
	if file, ok := w.(*os.File); ok && isatty.IsTerminal(file.Fd()) {
		return FormatConsole
	}
	return FormatLogfmt
}
