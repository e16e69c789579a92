// Package transform is the rewrite framework shared by every optimization
// pass. A pass is a factory that receives a Context and returns a
// Transformer; a Transformer maps a tree to a tree. Passes never mutate
// their input: VisitEachChild rebuilds a node only when one of its children
// changed and otherwise hands back the very same pointer, so an untouched
// tree comes out reference-identical.
package transform

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/orizon-lang/minijs/internal/ast"
)

// Visitor rewrites a single node. Returning the argument means "keep";
// returning nil removes the node from a list and is ignored in a
// single-child slot.
type Visitor func(node ast.Node) ast.Node

// Transformer rewrites a whole tree.
type Transformer func(node ast.Node) ast.Node

// Pass creates a Transformer for one pipeline run. Any state the
// Transformer needs must be created inside the factory call, never shared
// across runs.
type Pass func(ctx *Context) Transformer

// Context is handed to every pass.
type Context struct {
	Factory *ast.Factory
	Logger  *zap.Logger
}

// NewContext returns a context with a fresh factory and a no-op logger.
func NewContext() *Context {
	return &Context{Factory: ast.NewFactory(), Logger: zap.NewNop()}
}

// VisitEachChild is a shorthand for VisitEachChild(node, visitor, ctx).
func (c *Context) VisitEachChild(node ast.Node, visitor Visitor) ast.Node {
	return VisitEachChild(node, visitor, c)
}

// ContractError reports a pass that broke the shape rules of the tree,
// for example by returning an expression where a statement is required.
// It is a programming error, not a property of the input program.
type ContractError struct {
	Message string
	Pos     int
	End     int
}

func (e *ContractError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("transform contract violation: %s", e.Message)
	}
	return fmt.Sprintf("transform contract violation at %d: %s", e.Pos, e.Message)
}

func (e *ContractError) Range() (pos, end int) { return e.Pos, e.End }

func (e *ContractError) Reason() string { return e.Message }

func contractf(at ast.Node, format string, args ...interface{}) *ContractError {
	err := &ContractError{Message: fmt.Sprintf(format, args...), Pos: ast.NoPos, End: ast.NoPos}
	if at != nil {
		err.Pos, err.End = at.Pos(), at.End()
	}
	return err
}

func kindOf(n ast.Node) string {
	if n == nil {
		return "nothing"
	}
	return n.Kind().String()
}

// Option configures RunPipeline.
type Option func(*pipeline)

type pipeline struct {
	logger  *zap.Logger
	factory *ast.Factory
}

// WithLogger makes the pipeline report every pass at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(p *pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithFactory replaces the node factory handed to passes.
func WithFactory(factory *ast.Factory) Option {
	return func(p *pipeline) {
		if factory != nil {
			p.factory = factory
		}
	}
}

// Transform runs passes over file in order.
func Transform(file *ast.SourceFile, passes ...Pass) (*ast.SourceFile, error) {
	return RunPipeline(file, passes)
}

// RunPipeline threads file through passes in list order; every pass sees
// only the output of the one before it. The result is reference-identical
// to file when no pass changed anything. A contract violation inside a pass
// aborts the pipeline and is returned as a *ContractError.
func RunPipeline(file *ast.SourceFile, passes []Pass, opts ...Option) (result *ast.SourceFile, err error) {
	p := &pipeline{logger: zap.NewNop(), factory: ast.NewFactory()}
	for _, opt := range opts {
		opt(p)
	}

	defer func() {
		if r := recover(); r != nil {
			ce, ok := r.(*ContractError)
			if !ok {
				panic(r)
			}
			p.logger.Error("Pass violated the tree contract", zap.Error(ce))
			result, err = nil, fmt.Errorf("transformation failed: %w", ce)
		}
	}()

	current := file
	for i, pass := range passes {
		logger := p.logger.With(zap.Int("pass", i))
		ctx := &Context{Factory: p.factory, Logger: logger}

		start := time.Now()
		out := pass(ctx)(current)

		next, ok := out.(*ast.SourceFile)
		if !ok || next == nil {
			panic(contractf(current, "pass %d returned %s instead of a source file", i, kindOf(out)))
		}

		logger.Debug("Pass finished",
			zap.Duration("elapsed", time.Since(start)),
			zap.Bool("changed", next != current),
			zap.Int("statements", len(next.Statements)),
		)
		current = next
	}

	return current, nil
}
