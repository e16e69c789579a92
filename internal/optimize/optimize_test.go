package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/orizon-lang/minijs/internal/ast"
	"github.com/orizon-lang/minijs/internal/binder"
	"github.com/orizon-lang/minijs/internal/emitter"
	"github.com/orizon-lang/minijs/internal/parser"
	"github.com/orizon-lang/minijs/internal/transform"
)

func parseAndBind(t *testing.T, src string) *ast.SourceFile {
	t.Helper()
	file, err := parser.ParseFile(src)
	require.NoError(t, err)
	binder.Bind(file)
	return file
}

// run binds src, applies passes and returns the minified result.
func run(t *testing.T, src string, passes ...transform.Pass) string {
	t.Helper()
	out, err := transform.RunPipeline(parseAndBind(t, src), passes, transform.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return emitter.New(emitter.Options{Minify: true}).PrintFile(out)
}

func TestConstantFolding(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x = 1 + 2 * 3;", "x=7;"},
		{"x = (1 + 2) * 3;", "x=9;"},
		{"x = 10 / 4;", "x=2.5;"},
		{"x = 2 - 5;", "x=-3;"},
		{"x = 1 / 0;", "x=Infinity;"},
		{`x = "a" + "b" + "c";`, `x="abc";`},
		{"x = 100 > 50;", "x=true;"},
		{"x = 1 >= 2;", "x=false;"},
		{"x = 2 <= 2;", "x=true;"},
		{"x = 1 == 1;", "x=true;"},
		{"x = 1 != 1;", "x=false;"},
		{"x = a + 1 * 2;", "x=a+2;"},
		{"x = a * (2 + 3);", "x=a*5;"},
		{`x = "a" - "b";`, `x="a"-"b";`},
		{`x = 1 + "a";`, `x=1+"a";`},
		{"f(1 + 1, [2 * 2], { k: 3 - 3 });", "f(2,[4],{k:0});"},
		{"function g() { return 6 / 3; } g();", "function g(){return 2;}g();"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, run(t, tt.input, ConstantFolding()))
		})
	}
}

func TestFoldedLiteralIsSynthetic(t *testing.T) {
	file := parseAndBind(t, "1 + 2 * 3;")

	out, err := transform.Transform(file, ConstantFolding())
	require.NoError(t, err)

	lit, ok := out.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.NumericLiteral)
	require.True(t, ok)
	assert.Equal(t, 7.0, lit.Value)
	assert.Equal(t, "7", lit.Text)
	assert.Equal(t, ast.NoPos, lit.Pos())
	assert.Equal(t, ast.NoPos, lit.End())

	// The input tree is untouched.
	_, ok = file.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.BinaryExpression)
	assert.True(t, ok)
}

func TestConstantFoldingIdempotent(t *testing.T) {
	file := parseAndBind(t, `let x = 1 + 2 * 3; let s = "a" + "b"; let y = x + 1;`)

	once, err := transform.Transform(file, ConstantFolding())
	require.NoError(t, err)
	require.NotSame(t, file, once)

	twice, err := transform.Transform(once, ConstantFolding())
	require.NoError(t, err)
	assert.Same(t, once, twice)
}

func TestConstantFoldingLeavesLiteralFreeTreeAlone(t *testing.T) {
	file := parseAndBind(t, "let x = a + b; f(x);")

	out, err := transform.Transform(file, ConstantFolding())
	require.NoError(t, err)
	assert.Same(t, file, out)
}

func TestDeadCodeElimination(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"unused function and variable",
			"function main(){ function unused(){return 0;} let dead=1; let used=2; return used; } main();",
			"function main(){let used=2;return used;}main();",
		},
		{
			"transitively dead",
			"let a=1; let b=a+1;",
			"",
		},
		{
			"transitively live",
			"let a=1; let b=a+1; log(b);",
			"let a=1;let b=a+1;log(b);",
		},
		{
			"impure initializer keeps its effect",
			"let unused = f(); let kept = g(); kept;",
			"f();let kept=g();kept;",
		},
		{
			"statements after return",
			"function g(){ return 1; x(); let y = 2; } g();",
			"function g(){return 1;}g();",
		},
		{
			"called function declared after return",
			"function f(){ return g(); x(); function g(){ return 1; } } f();",
			"function f(){return g();function g(){return 1;}}f();",
		},
		{
			"unused function declared after return",
			"function f(a){ return a; function g(){ return 2; } } f(1);",
			"function f(a){return a;}f(1);",
		},
		{
			"code after exhaustive if",
			"function g(c){ if (c) { return 1; } else { return 2; } c(); } g(1);",
			"function g(c){if(c){return 1;}else{return 2;}}g(1);",
		},
		{
			"main is kept without callers",
			"function main(){ } function other(){ }",
			"function main(){}",
		},
		{
			"functions reachable from main",
			"function helper(){ return 1; } function main(){ return helper(); } function dead(){ return helper(); }",
			"function helper(){return 1;}function main(){return helper();}",
		},
		{
			"function called before its declaration",
			"function main(){ return helper(); } function helper(){ return 1; } main();",
			"function main(){return helper();}function helper(){return 1;}main();",
		},
		{
			"nested function called before its declaration",
			"function f(){ g(); function g(){ return 1; } } f();",
			"function f(){g();function g(){return 1;}}f();",
		},
		{
			"if true splices the branch",
			"if (true) { a(); b(); } else { c(); }",
			"a();b();",
		},
		{
			"if false takes the else branch",
			"if (false) { a(); } else c();",
			"c();",
		},
		{
			"if false without else disappears",
			"if (false) { a(); } b();",
			"b();",
		},
		{
			"if false in a loop body",
			"while (x) if (false) a();",
			"while(x){}",
		},
		{
			"block with declarations is kept",
			"if (true) { let t = f(); t; }",
			"{let t=f();t;}",
		},
		{
			"loop variables stay",
			"for (let i = 0; i < 3; i++) { f(i); }",
			"for(let i=0;i<3;i++){f(i);}",
		},
		{
			"unreferenced function parameter users",
			"function f(a) { let unused = a; return 1; } f(2);",
			"function f(a){return 1;}f(2);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(t, tt.input, DeadCodeElimination()))
		})
	}
}

func TestFoldThenEliminate(t *testing.T) {
	src := "function pick(){ if (100 > 50) { return A; } else { return B; } } pick();"

	assert.Equal(t, "function pick(){return A;}pick();", run(t, src, ConstantFolding(), DeadCodeElimination()))
	// Without folding the condition is not a literal and nothing collapses.
	assert.Equal(t, "function pick(){if(100>50){return A;}else{return B;}}pick();", run(t, src, DeadCodeElimination()))
}

func TestDeadCodeEliminationStateIsPerRun(t *testing.T) {
	pass := DeadCodeElimination()

	assert.Equal(t, "let a=1;a;", run(t, "let a=1; a;", pass))
	assert.Equal(t, "", run(t, "let a=1;", pass))
}

func TestShortName(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "a"},
		{1, "b"},
		{25, "z"},
		{26, "aa"},
		{27, "ab"},
		{51, "az"},
		{52, "ba"},
		{701, "zz"},
		{702, "aaa"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ShortName(tt.index), "index %d", tt.index)
	}
}

func TestRenameIdentifiers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"declaration order",
			"function calculate(width, height) { let area = width * height; return area; } calculate(2, 3);",
			"function a(b,c){let d=b*c;return d;}a(2,3);",
		},
		{
			"shadowing parameter",
			"let x = 1; function f(x) { return x; } f(x);",
			"let a=1;function b(c){return c;}b(a);",
		},
		{
			"nested block scope",
			"function f(){ let v = 1; { let v = 2; v; } return v; } f();",
			"function a(){let b=1;{let c=2;c;}return b;}a();",
		},
		{
			"function named like its parameter",
			"function f(f) { return f; } f(1);",
			"function a(b){return b;}a(1);",
		},
		{
			"property names untouched",
			"let obj = { name: 1 }; obj.name;",
			"let a={name:1};a.name;",
		},
		{
			"globals untouched",
			"let value = 1; console.log(value);",
			"let a=1;console.log(a);",
		},
		{
			"for-in variable",
			"for (let key in obj) { key; }",
			"for(let a in obj){a;}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(t, tt.input, RenameIdentifiers()))
		})
	}
}

func TestRenameSkipsIdentifiersWithoutSymbol(t *testing.T) {
	// Swap the reference for a synthetic identifier spelled like the
	// declaration; it has no symbol and must keep its spelling.
	swap := func(ctx *transform.Context) transform.Transformer {
		return func(node ast.Node) ast.Node {
			file := node.(*ast.SourceFile)
			stmt := file.Statements[1].(*ast.ExpressionStatement)
			return ctx.Factory.UpdateSourceFile(file, []ast.Statement{
				file.Statements[0],
				ctx.Factory.UpdateExpressionStatement(stmt, ctx.Factory.CreateIdentifier("x")),
			})
		}
	}

	assert.Equal(t, "let a=1;x;", run(t, "let x = 1; x;", swap, RenameIdentifiers()))
}

func TestRenameKeepsSymbols(t *testing.T) {
	file := parseAndBind(t, "let long = 1; long;")

	out, err := transform.Transform(file, RenameIdentifiers())
	require.NoError(t, err)

	orig := file.Statements[1].(*ast.ExpressionStatement).Expression.(*ast.Identifier)
	renamed := out.Statements[1].(*ast.ExpressionStatement).Expression.(*ast.Identifier)
	assert.Equal(t, "long", orig.Text)
	assert.Equal(t, "a", renamed.Text)
	assert.Same(t, orig.Symbol(), renamed.Symbol())
	assert.Equal(t, orig.Pos(), renamed.Pos())
}

func TestMinifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"used function",
			"function calculate(width, height) { let area = width * height; return area; } calculate(2, 3);",
			"function a(b,c){let d=b*c;return d;}a(2,3);",
		},
		{
			"lone unused function",
			"function calculate(width, height) { let area = width * height; return area; }",
			"",
		},
		{
			"function declared after main",
			"function main() { return helper(); } function helper() { return 1; } main();",
			"function a(){return b();}function b(){return 1;}a();",
		},
		{
			"hoisted function",
			"function main() { return helper(2); function helper(value) { return value; } }",
			"function a(){return b(2);function b(c){return c;}}",
		},
		{
			"folded branch",
			"function main() { let limit = 10 * 10; if (limit > 50) { return limit; } return 0; }",
			"function a(){let b=100;if(b>50){return b;}return 0;}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(t, tt.input, Minifier()...))
		})
	}
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"dce", "fold", "rename"}, Names())

	for _, name := range Names() {
		pass, ok := Lookup(name)
		assert.True(t, ok, name)
		assert.NotNil(t, pass, name)
	}

	_, ok := Lookup("inline")
	assert.False(t, ok)

	fold, _ := Lookup(PassFold)
	assert.Equal(t, "x=3;", run(t, "x = 1 + 2;", fold))
}
