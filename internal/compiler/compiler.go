// Package compiler wires the front end, the rewrite passes and the printer
// into a single call.
package compiler

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/orizon-lang/minijs/internal/binder"
	"github.com/orizon-lang/minijs/internal/emitter"
	"github.com/orizon-lang/minijs/internal/optimize"
	"github.com/orizon-lang/minijs/internal/parser"
	"github.com/orizon-lang/minijs/internal/transform"
)

// Config controls a single compilation.
type Config struct {
	// Filename names the input in errors and the source map.
	Filename string
	// Minify runs the minifier preset and prints without whitespace.
	Minify bool
	// SourceMap records a source map. It requires a Filename.
	SourceMap bool
	// Plugins run after the minifier preset, in order.
	Plugins []transform.Pass
	// Logger receives phase timing at debug level. Nil means no logging.
	Logger *zap.Logger
}

// Result is the output of a successful compilation.
type Result struct {
	Code string
	// Map is the JSON source map, empty unless one was requested.
	Map string
}

// Compilation phases reported by Error.
const (
	PhaseParse     = "parse"
	PhaseTransform = "transform"
)

// Error is returned when compilation stops. It wraps the error of the
// phase that failed, a *parser.Error or a *transform.ContractError.
type Error struct {
	Filename string
	Phase    string
	Err      error
}

func (e *Error) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("%s failed: %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("%s: %s failed: %v", e.Filename, e.Phase, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Passes returns the pass list cfg describes.
func (cfg Config) Passes() []transform.Pass {
	if !cfg.Minify {
		return cfg.Plugins
	}
	return append(optimize.Minifier(), cfg.Plugins...)
}

// Compile parses, binds, rewrites and prints source. Every call owns its
// tree, so Compile is safe for concurrent use. On failure no output is
// produced.
func Compile(source string, cfg Config) (*Result, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Filename != "" {
		log = log.With(zap.String("file", cfg.Filename))
	}

	start := time.Now()

	file, err := parser.ParseFile(source)
	if err != nil {
		log.Debug("Parse failed", zap.Error(err))
		return nil, &Error{Filename: cfg.Filename, Phase: PhaseParse, Err: err}
	}
	log.Debug("Parsed",
		zap.Int("statements", len(file.Statements)),
		zap.Duration("elapsed", time.Since(start)),
	)

	phase := time.Now()
	binder.Bind(file)
	log.Debug("Bound", zap.Duration("elapsed", time.Since(phase)))

	phase = time.Now()
	passes := cfg.Passes()
	out, err := transform.RunPipeline(file, passes, transform.WithLogger(log))
	if err != nil {
		return nil, &Error{Filename: cfg.Filename, Phase: PhaseTransform, Err: err}
	}
	log.Debug("Transformed",
		zap.Int("passes", len(passes)),
		zap.Duration("elapsed", time.Since(phase)),
	)

	printer := emitter.New(emitter.Options{
		Filename:  cfg.Filename,
		SourceMap: cfg.SourceMap,
		Minify:    cfg.Minify,
	})
	result := &Result{Code: printer.PrintFile(out)}
	if m, ok := printer.SourceMap(); ok {
		result.Map = m
	}

	log.Debug("Compiled",
		zap.Int("input_bytes", len(source)),
		zap.Int("output_bytes", len(result.Code)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}
