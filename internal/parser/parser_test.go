package parser

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orizon-lang/minijs/internal/ast"
	"github.com/orizon-lang/minijs/internal/lexer"
)

func mustParse(t *testing.T, src string) *ast.SourceFile {
	t.Helper()
	file, err := ParseFile(src)
	require.NoError(t, err)
	return file
}

// sexpr renders an expression fully parenthesized.
func sexpr(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.Identifier:
		return n.Text
	case *ast.NumericLiteral:
		return n.Text
	case *ast.StringLiteral:
		return fmt.Sprintf("%q", n.Value)
	case *ast.BooleanLiteral:
		return fmt.Sprint(n.Value)
	case *ast.BinaryExpression:
		return fmt.Sprintf("(%s %s %s)", sexpr(n.Left), ast.OperatorText(n.Operator), sexpr(n.Right))
	case *ast.AssignmentExpression:
		return fmt.Sprintf("(%s = %s)", sexpr(n.Left), sexpr(n.Right))
	case *ast.PrefixUnaryExpression:
		return fmt.Sprintf("(%s%s)", ast.OperatorText(n.Operator), sexpr(n.Operand))
	case *ast.PostfixUnaryExpression:
		return fmt.Sprintf("(%s%s)", sexpr(n.Operand), ast.OperatorText(n.Operator))
	case *ast.CallExpression:
		s := sexpr(n.Expression) + "("
		for i, a := range n.Arguments {
			if i > 0 {
				s += ", "
			}
			s += sexpr(a)
		}
		return s + ")"
	case *ast.PropertyAccessExpression:
		return sexpr(n.Expression) + "." + n.Name.Text
	case *ast.ElementAccessExpression:
		return sexpr(n.Expression) + "[" + sexpr(n.ArgumentExpression) + "]"
	case *ast.DeleteExpression:
		return "(delete " + sexpr(n.Expression) + ")"
	case *ast.ArrayLiteralExpression:
		return fmt.Sprintf("[%d]", len(n.Elements))
	case *ast.ObjectLiteralExpression:
		return fmt.Sprintf("{%d}", len(n.Properties))
	}
	return "?"
}

func TestParseLetStatement(t *testing.T) {
	file := mustParse(t, "let a = 1;")
	require.Len(t, file.Statements, 1)

	stmt, ok := file.Statements[0].(*ast.VariableStatement)
	require.True(t, ok)
	assert.Equal(t, "a", stmt.Declaration.Name.Text)

	lit, ok := stmt.Declaration.Initializer.(*ast.NumericLiteral)
	require.True(t, ok)
	assert.Equal(t, 1.0, lit.Value)
	assert.Equal(t, "1", lit.Text)

	assert.Equal(t, 0, stmt.Pos())
	assert.Equal(t, 10, stmt.End())
	assert.Equal(t, 4, stmt.Declaration.Pos())
	assert.Equal(t, 9, stmt.Declaration.End())
	assert.Equal(t, 10, file.End())
	assert.Equal(t, "let a = 1;", file.Text)
}

func TestParseFunctionDeclaration(t *testing.T) {
	file := mustParse(t, "function add(a, b) { return a + b; }")
	require.Len(t, file.Statements, 1)

	fn, ok := file.Statements[0].(*ast.FunctionDeclaration)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name.Text)
	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, "a", fn.Parameters[0].Name.Text)
	assert.Equal(t, "b", fn.Parameters[1].Name.Text)
	require.Len(t, fn.Body.Statements, 1)

	ret, ok := fn.Body.Statements[0].(*ast.ReturnStatement)
	require.True(t, ok)
	assert.Equal(t, "(a + b)", sexpr(ret.Expression))
}

func TestParseStatements(t *testing.T) {
	file := mustParse(t, `
while (true) { x = x + 1; }
for (let i = 0; i < 10; i++) {}
for (;;) {}
for (i = 0; i < 3; ) i++;
for (let key in obj) { delete obj[key]; }
if (a) { x = 1; } else if (b) { x = 2; } else { x = 3; }
`)
	require.Len(t, file.Statements, 6)

	while := file.Statements[0].(*ast.WhileStatement)
	assert.Equal(t, "true", sexpr(while.Expression))

	forStmt := file.Statements[1].(*ast.ForStatement)
	init, ok := forStmt.Initializer.(*ast.VariableStatement)
	require.True(t, ok)
	assert.Equal(t, "i", init.Declaration.Name.Text)
	assert.Equal(t, "(i < 10)", sexpr(forStmt.Condition))
	assert.Equal(t, "(i++)", sexpr(forStmt.Incrementor))

	empty := file.Statements[2].(*ast.ForStatement)
	assert.Nil(t, empty.Initializer)
	assert.Nil(t, empty.Condition)
	assert.Nil(t, empty.Incrementor)

	exprInit := file.Statements[3].(*ast.ForStatement)
	assert.Equal(t, "(i = 0)", sexpr(exprInit.Initializer.(ast.Expression)))
	assert.Nil(t, exprInit.Incrementor)
	_, ok = exprInit.Statement.(*ast.ExpressionStatement)
	assert.True(t, ok)

	forIn := file.Statements[4].(*ast.ForInStatement)
	assert.Equal(t, "key", forIn.Initializer.Name.Text)
	assert.Nil(t, forIn.Initializer.Initializer)
	assert.Equal(t, "obj", sexpr(forIn.Expression))

	ifStmt := file.Statements[5].(*ast.IfStatement)
	nested, ok := ifStmt.ElseStatement.(*ast.IfStatement)
	require.True(t, ok)
	assert.Equal(t, "b", sexpr(nested.Expression))
	_, ok = nested.ElseStatement.(*ast.Block)
	assert.True(t, ok)
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3))"},
		{"(1 + 2) * 3;", "((1 + 2) * 3)"},
		{"1 - 2 - 3;", "((1 - 2) - 3)"},
		{"a = b = 1;", "(a = (b = 1))"},
		{"a < b == c >= d;", "((a < b) == (c >= d))"},
		{"a != b;", "(a != b)"},
		{"-a * +b;", "((-a) * (+b))"},
		{"++i;", "(++i)"},
		{"i--;", "(i--)"},
		{"f(1, g(2))(3);", "f(1, g(2))(3)"},
		{"a.b.c = d[0];", "(a.b.c = d[0])"},
		{"x.if;", "x.if"},
		{"delete a.b;", "(delete a.b)"},
		{`"a" + "b";`, `("a" + "b")`},
		{"[1, 2, 3,];", "[3]"},
		{`x = { a: 1, "b": 2 };`, "(x = {2})"},
		{"false;", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			file := mustParse(t, tt.input)
			require.Len(t, file.Statements, 1)
			stmt, ok := file.Statements[0].(*ast.ExpressionStatement)
			require.True(t, ok)
			assert.Equal(t, tt.expected, sexpr(stmt.Expression))
		})
	}
}

func TestParseObjectLiteral(t *testing.T) {
	file := mustParse(t, `let o = { name: 1, "quoted": x };`)
	obj := file.Statements[0].(*ast.VariableStatement).Declaration.Initializer.(*ast.ObjectLiteralExpression)
	require.Len(t, obj.Properties, 2)

	id, ok := obj.Properties[0].Name.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "name", id.Text)

	str, ok := obj.Properties[1].Name.(*ast.StringLiteral)
	require.True(t, ok)
	assert.Equal(t, "quoted", str.Value)
	assert.Equal(t, "x", sexpr(obj.Properties[1].Initializer))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		pos   int
		msg   string
	}{
		{"return outside function", "return 1;", 0, "return statement is only allowed inside a function body"},
		{"missing semicolon", "let a = 1", 9, "expected SemicolonToken, got EndOfFileToken"},
		{"let without name", "let 1;", 4, "let statement must bind an identifier"},
		{"unclosed block", "{ a;", 4, "unclosed block: missing closing brace"},
		{"bad assignment target", "1 = 2;", 2, "invalid assignment target"},
		{"unexpected token", "let a = );", 8, "unexpected token CloseParenToken"},
		{"function without name", "function () {}", 9, "function declaration must bind an identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := ParseFile(tt.input)
			require.Error(t, err)
			assert.Nil(t, file)

			var parseErr *Error
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.msg, parseErr.Message)
			assert.Equal(t, tt.pos, parseErr.Pos)
			assert.Greater(t, parseErr.End, parseErr.Pos)
		})
	}
}

func TestParseLexerError(t *testing.T) {
	_, err := ParseFile("let a = 01;")
	require.Error(t, err)

	var parseErr *Error
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 8, parseErr.Pos)

	var lexErr *lexer.Error
	assert.True(t, errors.As(err, &lexErr))
}
