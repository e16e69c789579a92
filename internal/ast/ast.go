// Package ast defines the syntax tree of the minijs language together with
// the data the binder hangs on it: parent links, control-flow nodes,
// symbols and scopes.
//
// Nodes are produced by the parser, decorated once by the binder and from
// then on treated as immutable values. A pass that wants a different node
// builds a new one (see Factory) and shares every untouched subtree.
package ast

import "github.com/orizon-lang/minijs/internal/position"

// NoPos marks a synthetic node that has no source location.
const NoPos = position.NoPos

// Node is the base interface for all syntax tree nodes.
type Node interface {
	// Kind returns the variant discriminant.
	Kind() SyntaxKind
	// Pos returns the start offset in the source text, or NoPos.
	Pos() int
	// End returns the end offset (exclusive), or NoPos.
	End() int
	// Parent returns the enclosing node recorded by the binder.
	Parent() Node
	// FlowNode returns the control state on entry to this node.
	FlowNode() *FlowNode
	// Base exposes the shared header for the binder.
	Base() *NodeBase
}

// Statement represents all statement nodes.
type Statement interface {
	Node
	statementNode()
}

// Expression represents all expression nodes.
type Expression interface {
	Node
	expressionNode()
}

// LocalsContainer is implemented by nodes that can own a scope.
type LocalsContainer interface {
	Node
	Locals() *Scope
}

// NodeBase is the header embedded in every node.
type NodeBase struct {
	pos    int
	end    int
	parent Node
	flow   *FlowNode
}

// NewNodeBase returns a header covering [pos, end).
func NewNodeBase(pos, end int) NodeBase {
	return NodeBase{pos: pos, end: end}
}

// SyntheticBase returns a header for nodes created by a pass.
func SyntheticBase() NodeBase {
	return NodeBase{pos: NoPos, end: NoPos}
}

func (b *NodeBase) Pos() int            { return b.pos }
func (b *NodeBase) End() int            { return b.end }
func (b *NodeBase) Parent() Node        { return b.parent }
func (b *NodeBase) FlowNode() *FlowNode { return b.flow }
func (b *NodeBase) Base() *NodeBase     { return b }

// Synthetic reports whether the node was created without a source location.
func (b *NodeBase) Synthetic() bool { return b.pos < 0 }

// Decorate records the parent link and entry flow node. It is called by the
// binder exactly once per node.
func (b *NodeBase) Decorate(parent Node, flow *FlowNode) {
	b.parent = parent
	b.flow = flow
}

// ScopeBase is embedded in nodes that may own a scope.
type ScopeBase struct {
	locals *Scope
}

// Locals returns the scope owned by the node, or nil.
func (s *ScopeBase) Locals() *Scope { return s.locals }

// SetLocals attaches the scope opened by the binder for this node.
func (s *ScopeBase) SetLocals(scope *Scope) { s.locals = scope }

// ===== Program structure =====

// SourceFile is the root of a parsed program.
type SourceFile struct {
	NodeBase
	ScopeBase
	Statements []Statement
	Text       string // Full source text
}

func (*SourceFile) Kind() SyntaxKind { return KindSourceFile }

// ===== Declarations =====

// FunctionDeclaration represents `function name(params) { body }`.
type FunctionDeclaration struct {
	NodeBase
	ScopeBase
	Name       *Identifier
	Parameters []*ParameterDeclaration
	Body       *Block
}

func (*FunctionDeclaration) Kind() SyntaxKind { return KindFunctionDecl }
func (*FunctionDeclaration) statementNode()   {}

// ParameterDeclaration represents one function parameter.
type ParameterDeclaration struct {
	NodeBase
	Name *Identifier
}

func (*ParameterDeclaration) Kind() SyntaxKind { return KindParameterDecl }

// VariableStatement represents `let name = init;`.
type VariableStatement struct {
	NodeBase
	Declaration *VariableDeclaration
}

func (*VariableStatement) Kind() SyntaxKind { return KindVariableStatement }
func (*VariableStatement) statementNode()   {}

// VariableDeclaration is the binding inside a let statement or for-in header.
type VariableDeclaration struct {
	NodeBase
	Name        *Identifier
	Initializer Expression // nil when absent
}

func (*VariableDeclaration) Kind() SyntaxKind { return KindVariableDeclaration }

// ===== Statements =====

// Block represents `{ statements }`.
type Block struct {
	NodeBase
	ScopeBase
	Statements []Statement
}

func (*Block) Kind() SyntaxKind { return KindBlock }
func (*Block) statementNode()   {}

// ExpressionStatement represents `expression;`.
type ExpressionStatement struct {
	NodeBase
	Expression Expression
}

func (*ExpressionStatement) Kind() SyntaxKind { return KindExpressionStatement }
func (*ExpressionStatement) statementNode()   {}

// IfStatement represents `if (cond) then else otherwise`.
type IfStatement struct {
	NodeBase
	Expression    Expression
	ThenStatement Statement
	ElseStatement Statement // nil when absent
}

func (*IfStatement) Kind() SyntaxKind { return KindIfStatement }
func (*IfStatement) statementNode()   {}

// WhileStatement represents `while (cond) body`.
type WhileStatement struct {
	NodeBase
	Expression Expression
	Statement  Statement
}

func (*WhileStatement) Kind() SyntaxKind { return KindWhileStatement }
func (*WhileStatement) statementNode()   {}

// ForStatement represents `for (init; cond; incr) body`.
type ForStatement struct {
	NodeBase
	ScopeBase
	// Initializer is a *VariableStatement, an Expression, or nil.
	Initializer Node
	Condition   Expression // nil when absent
	Incrementor Expression // nil when absent
	Statement   Statement
}

func (*ForStatement) Kind() SyntaxKind { return KindForStatement }
func (*ForStatement) statementNode()   {}

// ForInStatement represents `for (let name in expr) body`.
type ForInStatement struct {
	NodeBase
	ScopeBase
	Initializer *VariableDeclaration
	Expression  Expression
	Statement   Statement
}

func (*ForInStatement) Kind() SyntaxKind { return KindForInStatement }
func (*ForInStatement) statementNode()   {}

// ReturnStatement represents `return expr;`.
type ReturnStatement struct {
	NodeBase
	Expression Expression // nil when absent
}

func (*ReturnStatement) Kind() SyntaxKind { return KindReturnStatement }
func (*ReturnStatement) statementNode()   {}

// ===== Expressions =====

// Identifier is a name, either declared or referenced.
type Identifier struct {
	NodeBase
	Text   string
	symbol *Symbol
}

func (*Identifier) Kind() SyntaxKind { return KindIdentifier }
func (*Identifier) expressionNode()  {}

// Symbol returns the symbol a reference resolved to, or nil when the name
// is a declaration name or is unresolved (host-provided global).
func (id *Identifier) Symbol() *Symbol { return id.symbol }

// SetSymbol records the resolution result. Called by the binder only.
func (id *Identifier) SetSymbol(sym *Symbol) { id.symbol = sym }

// NumericLiteral is a number constant.
type NumericLiteral struct {
	NodeBase
	Value float64
	Text  string // Source spelling
}

func (*NumericLiteral) Kind() SyntaxKind { return KindNumericLiteral }
func (*NumericLiteral) expressionNode()  {}

// StringLiteral is a double-quoted string constant.
type StringLiteral struct {
	NodeBase
	Value string
}

func (*StringLiteral) Kind() SyntaxKind { return KindStringLiteral }
func (*StringLiteral) expressionNode()  {}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	NodeBase
	Value bool
}

func (b *BooleanLiteral) Kind() SyntaxKind {
	if b.Value {
		return TrueKeyword
	}
	return FalseKeyword
}
func (*BooleanLiteral) expressionNode() {}

// BinaryExpression represents `left op right` for non-assignment operators.
type BinaryExpression struct {
	NodeBase
	Left     Expression
	Operator SyntaxKind
	Right    Expression
}

func (*BinaryExpression) Kind() SyntaxKind { return KindBinaryExpression }
func (*BinaryExpression) expressionNode()  {}

// AssignmentExpression represents `left = right`.
type AssignmentExpression struct {
	NodeBase
	Left  Expression
	Right Expression
}

func (*AssignmentExpression) Kind() SyntaxKind { return KindAssignmentExpression }
func (*AssignmentExpression) expressionNode()  {}

// PrefixUnaryExpression represents `op operand` for + - ++ --.
type PrefixUnaryExpression struct {
	NodeBase
	Operator SyntaxKind
	Operand  Expression
}

func (*PrefixUnaryExpression) Kind() SyntaxKind { return KindPrefixUnaryExpression }
func (*PrefixUnaryExpression) expressionNode()  {}

// PostfixUnaryExpression represents `operand op` for ++ --.
type PostfixUnaryExpression struct {
	NodeBase
	Operand  Expression
	Operator SyntaxKind
}

func (*PostfixUnaryExpression) Kind() SyntaxKind { return KindPostfixUnaryExpression }
func (*PostfixUnaryExpression) expressionNode()  {}

// CallExpression represents `callee(args)`.
type CallExpression struct {
	NodeBase
	Expression Expression
	Arguments  []Expression
}

func (*CallExpression) Kind() SyntaxKind { return KindCallExpression }
func (*CallExpression) expressionNode()  {}

// ArrayLiteralExpression represents `[a, b]`.
type ArrayLiteralExpression struct {
	NodeBase
	Elements []Expression
}

func (*ArrayLiteralExpression) Kind() SyntaxKind { return KindArrayLiteralExpression }
func (*ArrayLiteralExpression) expressionNode()  {}

// ObjectLiteralExpression represents `{ key: value }`.
type ObjectLiteralExpression struct {
	NodeBase
	Properties []*PropertyAssignment
}

func (*ObjectLiteralExpression) Kind() SyntaxKind { return KindObjectLiteralExpression }
func (*ObjectLiteralExpression) expressionNode()  {}

// PropertyAssignment is one `key: value` entry of an object literal.
type PropertyAssignment struct {
	NodeBase
	// Name is an *Identifier or a *StringLiteral; it is never a binding.
	Name        Expression
	Initializer Expression
}

func (*PropertyAssignment) Kind() SyntaxKind { return KindPropertyAssignment }

// PropertyAccessExpression represents `object.name`.
type PropertyAccessExpression struct {
	NodeBase
	Expression Expression
	Name       *Identifier // Property name, never resolved
}

func (*PropertyAccessExpression) Kind() SyntaxKind { return KindPropertyAccessExpression }
func (*PropertyAccessExpression) expressionNode()  {}

// ElementAccessExpression represents `object[index]`.
type ElementAccessExpression struct {
	NodeBase
	Expression         Expression
	ArgumentExpression Expression
}

func (*ElementAccessExpression) Kind() SyntaxKind { return KindElementAccessExpression }
func (*ElementAccessExpression) expressionNode()  {}

// DeleteExpression represents `delete operand`.
type DeleteExpression struct {
	NodeBase
	Expression Expression
}

func (*DeleteExpression) Kind() SyntaxKind { return KindDeleteExpression }
func (*DeleteExpression) expressionNode()  {}
