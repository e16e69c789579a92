package compiler

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"

	"github.com/orizon-lang/minijs/internal/ast"
	"github.com/orizon-lang/minijs/internal/parser"
	"github.com/orizon-lang/minijs/internal/sourcemap"
	"github.com/orizon-lang/minijs/internal/transform"
)

const calculate = "function calculate(width, height) {\n  let area = width * height;\n  return area;\n}\ncalculate(2, 3);\n"

// doubleNumbers multiplies every number literal by two.
func doubleNumbers(ctx *transform.Context) transform.Transformer {
	var visit transform.Visitor
	visit = func(n ast.Node) ast.Node {
		if lit, ok := n.(*ast.NumericLiteral); ok {
			return ctx.Factory.CreateNumericLiteral(lit.Value * 2)
		}
		return ctx.VisitEachChild(n, visit)
	}
	return func(n ast.Node) ast.Node { return visit(n) }
}

func TestCompileMinify(t *testing.T) {
	res, err := Compile(calculate, Config{Minify: true, Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)
	assert.Equal(t, "function a(b,c){let d=b*c;return d;}a(2,3);", res.Code)
	assert.Empty(t, res.Map)
}

func TestCompileUnusedFunction(t *testing.T) {
	res, err := Compile("function calculate(width, height) { let area = width * height; return area; }", Config{Minify: true})
	require.NoError(t, err)
	assert.Equal(t, "", res.Code)
}

func TestCompileCallBeforeDeclaration(t *testing.T) {
	res, err := Compile("function main(){ return helper(); } function helper(){ return 1; } main();", Config{Minify: true})
	require.NoError(t, err)
	assert.Equal(t, "function a(){return b();}function b(){return 1;}a();", res.Code)
}

func TestCompileReadable(t *testing.T) {
	res, err := Compile(calculate, Config{})
	require.NoError(t, err)
	assert.Equal(t, calculate, res.Code)
}

func TestCompileSourceMap(t *testing.T) {
	res, err := Compile(calculate, Config{Filename: "calc.js", Minify: true, SourceMap: true})
	require.NoError(t, err)
	require.NotEmpty(t, res.Map)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Map), &raw))
	assert.EqualValues(t, 3, raw["version"])
	assert.Equal(t, "calc.js", raw["file"])

	sm, err := sourcemap.Parse([]byte(res.Map))
	require.NoError(t, err)
	// Everything is on one generated line.
	assert.NotContains(t, sm.Mappings, ";")
	assert.True(t, len(sm.Mappings) > 0)
}

func TestCompileSourceMapNeedsFilename(t *testing.T) {
	res, err := Compile("x;", Config{SourceMap: true})
	require.NoError(t, err)
	assert.Empty(t, res.Map)
}

func TestCompileParseError(t *testing.T) {
	res, err := Compile("let x = ;", Config{Filename: "bad.js", Minify: true})
	require.Error(t, err)
	assert.Nil(t, res)

	var cerr *Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, PhaseParse, cerr.Phase)
	assert.Equal(t, "bad.js", cerr.Filename)

	var perr *parser.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 8, perr.Pos)
	assert.Equal(t, "bad.js: parse failed: "+perr.Error(), err.Error())
}

func TestPluginsRunAfterMinifier(t *testing.T) {
	res, err := Compile("x = 1 + 2;", Config{Plugins: []transform.Pass{doubleNumbers}})
	require.NoError(t, err)
	assert.Equal(t, "x = 2 + 4;\n", res.Code)

	// Folding happens first, then the plugin doubles the folded value.
	res, err = Compile("x = 1 + 2;", Config{Minify: true, Plugins: []transform.Pass{doubleNumbers}})
	require.NoError(t, err)
	assert.Equal(t, "x=6;", res.Code)
}

func TestCompileContractViolation(t *testing.T) {
	unwrap := func(ctx *transform.Context) transform.Transformer {
		var visit transform.Visitor
		visit = func(n ast.Node) ast.Node {
			if stmt, ok := n.(*ast.ExpressionStatement); ok {
				return stmt.Expression
			}
			return ctx.VisitEachChild(n, visit)
		}
		return func(n ast.Node) ast.Node { return visit(n) }
	}

	res, err := Compile("if (a) b;", Config{Plugins: []transform.Pass{unwrap}})
	require.Error(t, err)
	assert.Nil(t, res)

	var cerr *Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, PhaseTransform, cerr.Phase)

	var contract *transform.ContractError
	require.True(t, errors.As(err, &contract))
	assert.Contains(t, contract.Message, "statement slot")
}

func TestCompileLogsPhases(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	_, err := Compile(calculate, Config{Filename: "calc.js", Minify: true, Logger: zap.New(core)})
	require.NoError(t, err)

	for _, msg := range []string{"Parsed", "Bound", "Transformed", "Compiled"} {
		entries := logs.FilterMessage(msg).All()
		require.Len(t, entries, 1, msg)
		assert.Equal(t, "calc.js", entries[0].ContextMap()["file"], msg)
	}
	assert.Equal(t, 3, logs.FilterMessage("Pass finished").Len())

	compiled := logs.FilterMessage("Compiled").All()[0].ContextMap()
	assert.EqualValues(t, len(calculate), compiled["input_bytes"])
	assert.EqualValues(t, 43, compiled["output_bytes"])
}

func TestCompileConcurrently(t *testing.T) {
	var g errgroup.Group
	results := make([]string, 16)

	for i := range results {
		i := i
		g.Go(func() error {
			res, err := Compile(calculate, Config{Minify: true})
			if err != nil {
				return err
			}
			results[i] = res.Code
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, code := range results {
		assert.Equal(t, "function a(b,c){let d=b*c;return d;}a(2,3);", code)
	}
}
