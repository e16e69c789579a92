package emitter

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orizon-lang/minijs/internal/ast"
	"github.com/orizon-lang/minijs/internal/parser"
	"github.com/orizon-lang/minijs/internal/sourcemap"
)

func mustParse(t *testing.T, src string) *ast.SourceFile {
	t.Helper()
	file, err := parser.ParseFile(src)
	require.NoError(t, err)
	return file
}

func TestPrintReadable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"let", "let a = 1;", "let a = 1;\n"},
		{"binary", "a + b;", "a + b;\n"},
		{"function", "function f(a, b) { return a; }", "function f(a, b) {\n  return a;\n}\n"},
		{"if else", "if (a) { b; } else { c; }", "if (a) {\n  b;\n} else {\n  c;\n}\n"},
		{"if without braces", "if (a) b; else c;", "if (a) b; else c;\n"},
		{"else if", "if (a) { b; } else if (c) { d; }", "if (a) {\n  b;\n} else if (c) {\n  d;\n}\n"},
		{"while", "while (true) { a; }", "while (true) {\n  a;\n}\n"},
		{"for", "for (let i = 0; i < 10; i++) { a; }", "for (let i = 0; i < 10; i++) {\n  a;\n}\n"},
		{"empty for", "for (;;) {}", "for (;;) {}\n"},
		{"for expression init", "for (i = 0; i < 3;) i++;", "for (i = 0; i < 3;) i++;\n"},
		{"for in", "for (let k in o) { delete o[k]; }", "for (let k in o) {\n  delete o[k];\n}\n"},
		{"array", "let a = [1, 2, 3];", "let a = [1, 2, 3];\n"},
		{"object", `let o = { a: 1, "b": [x] };`, "let o = { a: 1, \"b\": [x] };\n"},
		{"empty object", "let o = {};", "let o = {};\n"},
		{"nested block", "{ let x = 1; { x; } }", "{\n  let x = 1;\n  {\n    x;\n  }\n}\n"},
		{"parens kept where needed", "x = (a + b) * -c;", "x = (a + b) * -c;\n"},
		{"redundant parens dropped", "x = (a * b) + (c);", "x = a * b + c;\n"},
		{"right operand grouping", "x = a - (b - c);", "x = a - (b - c);\n"},
		{"assignment chain", "a = b = c;", "a = b = c;\n"},
		{"calls and members", "a.b(c)[d].e = f(1, 2);", "a.b(c)[d].e = f(1, 2);\n"},
		{"unary of group", "x = -(a + b);", "x = -(a + b);\n"},
		{"string", `s = "hi\n";`, "s = \"hi\\n\";\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(Options{}).PrintFile(mustParse(t, tt.input))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("PrintFile(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestPrintMinified(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{
			"function calculate(width, height) { let area = width * height; return area; } calculate(2, 3);",
			"function calculate(width,height){let area=width*height;return area;}calculate(2,3);",
		},
		{"a - -b;", "a- -b;"},
		{"a + +b;", "a+ +b;"},
		{"a++ + b;", "a++ +b;"},
		{"a - --b;", "a- --b;"},
		{"if (a) b; else c;", "if(a)b;else c;"},
		{"if (a) { b; } else { c; }", "if(a){b;}else{c;}"},
		{"for (let k in o) {}", "for(let k in o){}"},
		{"for (let i = 0; i < n; i++) f(i);", "for(let i=0;i<n;i++)f(i);"},
		{`let o = { a: 1, "b": 2 };`, `let o={a:1,"b":2};`},
		{"delete a.b;", "delete a.b;"},
		{"while (x) { x = x - 1; }", "while(x){x=x-1;}"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := New(Options{Minify: true}).PrintFile(mustParse(t, tt.input))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMinifiedOutputReparses(t *testing.T) {
	src := `
function f(a, b) {
  let o = { k: a - -b, "s": [1, 2] };
  for (let k in o) { delete o[k]; }
  if (a) if (b) a++; else b--;
  return o.k;
}
f(1, 2);`

	file := mustParse(t, src)
	minified := New(Options{Minify: true}).PrintFile(file)

	reparsed := mustParse(t, minified)
	pretty := New(Options{}).PrintFile(file)
	assert.Equal(t, pretty, New(Options{}).PrintFile(reparsed))
}

func TestPrintSyntheticNodes(t *testing.T) {
	f := ast.NewFactory()
	a, b, c := f.CreateIdentifier("a"), f.CreateIdentifier("b"), f.CreateIdentifier("c")

	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{
			"grouped left operand",
			f.CreateBinaryExpression(f.CreateBinaryExpression(a, ast.PlusToken, b), ast.AsteriskToken, c),
			"(a+b)*c",
		},
		{
			"negative literal operand",
			f.CreateBinaryExpression(a, ast.MinusToken, f.CreateNumericLiteral(-1)),
			"a- -1",
		},
		{
			"object literal statement",
			f.CreateExpressionStatement(&ast.ObjectLiteralExpression{NodeBase: ast.SyntheticBase()}),
			"({});",
		},
		{
			"number as member object",
			&ast.PropertyAccessExpression{NodeBase: ast.SyntheticBase(), Expression: f.CreateNumericLiteral(1), Name: f.CreateIdentifier("x")},
			"(1).x",
		},
		{
			"dangling else",
			&ast.IfStatement{
				NodeBase:      ast.SyntheticBase(),
				Expression:    a,
				ThenStatement: &ast.IfStatement{NodeBase: ast.SyntheticBase(), Expression: b, ThenStatement: f.CreateExpressionStatement(c)},
				ElseStatement: f.CreateExpressionStatement(a),
			},
			"if(a){if(b)c;}else a;",
		},
		{
			"folded string",
			f.CreateStringLiteral("ab"),
			`"ab"`,
		},
		{
			"empty block",
			f.CreateBlock(nil),
			"{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrintNode(tt.node, Options{Minify: true}))
		})
	}
}

func TestSourceMap(t *testing.T) {
	file := mustParse(t, "let a = 1;\nlet b = a;")

	p := New(Options{Filename: "in.js", SourceMap: true})
	code := p.PrintFile(file)
	assert.Equal(t, "let a = 1;\nlet b = a;\n", code)

	raw, ok := p.SourceMap()
	require.True(t, ok)

	var sm sourcemap.SourceMap
	require.NoError(t, json.Unmarshal([]byte(raw), &sm))
	assert.Equal(t, 3, sm.Version)
	assert.Equal(t, "in.js", sm.File)
	assert.Equal(t, []string{"in.js"}, sm.Sources)
	assert.Equal(t, "AAAA,IAAI,IAAI;AACR,IAAI,IAAI", sm.Mappings)
}

func TestSourceMapSkipsSyntheticNodes(t *testing.T) {
	file := mustParse(t, "let a = 1;")
	f := ast.NewFactory()

	stmt := file.Statements[0].(*ast.VariableStatement)
	decl := f.UpdateVariableDeclaration(stmt.Declaration, stmt.Declaration.Name, f.CreateNumericLiteral(3))
	updated := f.UpdateSourceFile(file, []ast.Statement{f.UpdateVariableStatement(stmt, decl)})

	p := New(Options{Filename: "in.js", SourceMap: true})
	assert.Equal(t, "let a = 3;\n", p.PrintFile(updated))

	raw, ok := p.SourceMap()
	require.True(t, ok)
	sm, err := sourcemap.Parse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "AAAA,IAAI", sm.Mappings)
}

func TestNoSourceMapUnlessRequested(t *testing.T) {
	file := mustParse(t, "x;")

	for _, opts := range []Options{{}, {SourceMap: true}, {Filename: "in.js"}} {
		p := New(opts)
		p.PrintFile(file)
		_, ok := p.SourceMap()
		assert.False(t, ok, "%+v", opts)
	}
}

func TestPrinterReuse(t *testing.T) {
	p := New(Options{Minify: true})
	first := p.PrintFile(mustParse(t, "let a = 1;"))
	second := p.PrintFile(mustParse(t, "let a = 1;"))
	assert.Equal(t, first, second)
	assert.Equal(t, "", p.PrintFile(mustParse(t, "")))
}
