package ast

import (
	"math"
	"strconv"
	"strings"
)

// Factory creates synthetic nodes and copy-on-write updates of existing
// ones. Every Update method returns its input unchanged when the supplied
// children are identical (by reference) to the current ones, so callers
// can detect "nothing changed" with ==.
//
// An updated node is a shallow copy of the original: the source span, the
// binder's parent link, flow node, scope and symbol all carry over.
type Factory struct{}

// NewFactory returns a node factory.
func NewFactory() *Factory { return &Factory{} }

func sameList[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FormatNumber renders v the way a JavaScript engine prints a number.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	abs := math.Abs(v)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(v, 'g', -1, 64)
	// Go pads exponents to two digits; JavaScript does not.
	s = strings.Replace(s, "e+0", "e+", 1)
	s = strings.Replace(s, "e-0", "e-", 1)
	return s
}

// ===== Creation =====

func (f *Factory) CreateIdentifier(text string) *Identifier {
	return &Identifier{NodeBase: SyntheticBase(), Text: text}
}

func (f *Factory) CreateNumericLiteral(value float64) *NumericLiteral {
	return &NumericLiteral{NodeBase: SyntheticBase(), Value: value, Text: FormatNumber(value)}
}

func (f *Factory) CreateStringLiteral(value string) *StringLiteral {
	return &StringLiteral{NodeBase: SyntheticBase(), Value: value}
}

func (f *Factory) CreateBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{NodeBase: SyntheticBase(), Value: value}
}

func (f *Factory) CreateBinaryExpression(left Expression, op SyntaxKind, right Expression) *BinaryExpression {
	return &BinaryExpression{NodeBase: SyntheticBase(), Left: left, Operator: op, Right: right}
}

func (f *Factory) CreateExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{NodeBase: SyntheticBase(), Expression: expr}
}

func (f *Factory) CreateBlock(statements []Statement) *Block {
	return &Block{NodeBase: SyntheticBase(), Statements: statements}
}

func (f *Factory) CreateWhileStatement(cond Expression, body Statement) *WhileStatement {
	return &WhileStatement{NodeBase: SyntheticBase(), Expression: cond, Statement: body}
}

// RenameIdentifier returns a copy of id spelled text. The copy keeps the
// source span, parent link and resolved symbol of id.
func (f *Factory) RenameIdentifier(id *Identifier, text string) *Identifier {
	if id.Text == text {
		return id
	}
	renamed := *id
	renamed.Text = text
	return &renamed
}

// ===== Updates =====

func (f *Factory) UpdateSourceFile(node *SourceFile, statements []Statement) *SourceFile {
	if sameList(node.Statements, statements) {
		return node
	}
	updated := *node
	updated.Statements = statements
	return &updated
}

func (f *Factory) UpdateFunctionDeclaration(node *FunctionDeclaration, name *Identifier, params []*ParameterDeclaration, body *Block) *FunctionDeclaration {
	if node.Name == name && sameList(node.Parameters, params) && node.Body == body {
		return node
	}
	updated := *node
	updated.Name = name
	updated.Parameters = params
	updated.Body = body
	return &updated
}

func (f *Factory) UpdateParameterDeclaration(node *ParameterDeclaration, name *Identifier) *ParameterDeclaration {
	if node.Name == name {
		return node
	}
	updated := *node
	updated.Name = name
	return &updated
}

func (f *Factory) UpdateVariableStatement(node *VariableStatement, decl *VariableDeclaration) *VariableStatement {
	if node.Declaration == decl {
		return node
	}
	updated := *node
	updated.Declaration = decl
	return &updated
}

func (f *Factory) UpdateVariableDeclaration(node *VariableDeclaration, name *Identifier, init Expression) *VariableDeclaration {
	if node.Name == name && node.Initializer == init {
		return node
	}
	updated := *node
	updated.Name = name
	updated.Initializer = init
	return &updated
}

func (f *Factory) UpdateBlock(node *Block, statements []Statement) *Block {
	if sameList(node.Statements, statements) {
		return node
	}
	updated := *node
	updated.Statements = statements
	return &updated
}

func (f *Factory) UpdateExpressionStatement(node *ExpressionStatement, expr Expression) *ExpressionStatement {
	if node.Expression == expr {
		return node
	}
	updated := *node
	updated.Expression = expr
	return &updated
}

func (f *Factory) UpdateIfStatement(node *IfStatement, cond Expression, then, otherwise Statement) *IfStatement {
	if node.Expression == cond && node.ThenStatement == then && node.ElseStatement == otherwise {
		return node
	}
	updated := *node
	updated.Expression = cond
	updated.ThenStatement = then
	updated.ElseStatement = otherwise
	return &updated
}

func (f *Factory) UpdateWhileStatement(node *WhileStatement, cond Expression, body Statement) *WhileStatement {
	if node.Expression == cond && node.Statement == body {
		return node
	}
	updated := *node
	updated.Expression = cond
	updated.Statement = body
	return &updated
}

func (f *Factory) UpdateForStatement(node *ForStatement, init Node, cond, incr Expression, body Statement) *ForStatement {
	if node.Initializer == init && node.Condition == cond && node.Incrementor == incr && node.Statement == body {
		return node
	}
	updated := *node
	updated.Initializer = init
	updated.Condition = cond
	updated.Incrementor = incr
	updated.Statement = body
	return &updated
}

func (f *Factory) UpdateForInStatement(node *ForInStatement, init *VariableDeclaration, expr Expression, body Statement) *ForInStatement {
	if node.Initializer == init && node.Expression == expr && node.Statement == body {
		return node
	}
	updated := *node
	updated.Initializer = init
	updated.Expression = expr
	updated.Statement = body
	return &updated
}

func (f *Factory) UpdateReturnStatement(node *ReturnStatement, expr Expression) *ReturnStatement {
	if node.Expression == expr {
		return node
	}
	updated := *node
	updated.Expression = expr
	return &updated
}

func (f *Factory) UpdateBinaryExpression(node *BinaryExpression, left, right Expression) *BinaryExpression {
	if node.Left == left && node.Right == right {
		return node
	}
	updated := *node
	updated.Left = left
	updated.Right = right
	return &updated
}

func (f *Factory) UpdateAssignmentExpression(node *AssignmentExpression, left, right Expression) *AssignmentExpression {
	if node.Left == left && node.Right == right {
		return node
	}
	updated := *node
	updated.Left = left
	updated.Right = right
	return &updated
}

func (f *Factory) UpdatePrefixUnaryExpression(node *PrefixUnaryExpression, operand Expression) *PrefixUnaryExpression {
	if node.Operand == operand {
		return node
	}
	updated := *node
	updated.Operand = operand
	return &updated
}

func (f *Factory) UpdatePostfixUnaryExpression(node *PostfixUnaryExpression, operand Expression) *PostfixUnaryExpression {
	if node.Operand == operand {
		return node
	}
	updated := *node
	updated.Operand = operand
	return &updated
}

func (f *Factory) UpdateCallExpression(node *CallExpression, callee Expression, args []Expression) *CallExpression {
	if node.Expression == callee && sameList(node.Arguments, args) {
		return node
	}
	updated := *node
	updated.Expression = callee
	updated.Arguments = args
	return &updated
}

func (f *Factory) UpdateArrayLiteralExpression(node *ArrayLiteralExpression, elements []Expression) *ArrayLiteralExpression {
	if sameList(node.Elements, elements) {
		return node
	}
	updated := *node
	updated.Elements = elements
	return &updated
}

func (f *Factory) UpdateObjectLiteralExpression(node *ObjectLiteralExpression, props []*PropertyAssignment) *ObjectLiteralExpression {
	if sameList(node.Properties, props) {
		return node
	}
	updated := *node
	updated.Properties = props
	return &updated
}

func (f *Factory) UpdatePropertyAssignment(node *PropertyAssignment, name, init Expression) *PropertyAssignment {
	if node.Name == name && node.Initializer == init {
		return node
	}
	updated := *node
	updated.Name = name
	updated.Initializer = init
	return &updated
}

func (f *Factory) UpdatePropertyAccessExpression(node *PropertyAccessExpression, expr Expression, name *Identifier) *PropertyAccessExpression {
	if node.Expression == expr && node.Name == name {
		return node
	}
	updated := *node
	updated.Expression = expr
	updated.Name = name
	return &updated
}

func (f *Factory) UpdateElementAccessExpression(node *ElementAccessExpression, expr, arg Expression) *ElementAccessExpression {
	if node.Expression == expr && node.ArgumentExpression == arg {
		return node
	}
	updated := *node
	updated.Expression = expr
	updated.ArgumentExpression = arg
	return &updated
}

func (f *Factory) UpdateDeleteExpression(node *DeleteExpression, expr Expression) *DeleteExpression {
	if node.Expression == expr {
		return node
	}
	updated := *node
	updated.Expression = expr
	return &updated
}
