// Package binder decorates a parsed program with parent links, lexical
// scopes, resolved symbols and the control-flow graph. Binding is a single
// depth-first walk and is the only place where parser-produced nodes are
// modified.
package binder

import (
	"github.com/orizon-lang/minijs/internal/ast"
)

// scopeOwner is implemented by every node that embeds ast.ScopeBase.
type scopeOwner interface {
	ast.Node
	SetLocals(*ast.Scope)
}

// Binder holds the state of one binding walk.
type Binder struct {
	parent ast.Node
	scope  *ast.Scope
	flow   *ast.FlowNode

	// unresolved holds references not declared at the point they were
	// visited; they are retried once every scope is complete.
	unresolved []*ast.Identifier
}

// Bind decorates file in place. It must be called exactly once per tree,
// before any rewrite pass runs. Unresolved identifiers are left without a
// symbol; binding never fails.
func Bind(file *ast.SourceFile) {
	b := &Binder{
		scope: ast.NewScope(),
		flow:  &ast.FlowNode{Flags: ast.FlowStart},
	}
	file.SetLocals(b.scope)
	b.bind(file)
	b.resolveForwardReferences()
}

// resolveForwardReferences resolves names used before their declaration,
// such as a call to a function declared later in the file.
func (b *Binder) resolveForwardReferences() {
	for _, id := range b.unresolved {
		if sym := LookupSymbol(id.Text, id); sym != nil {
			sym.Referenced = true
			id.SetSymbol(sym)
		}
	}
	b.unresolved = nil
}

func (b *Binder) visit(node ast.Node) bool {
	b.bind(node)
	return true
}

func (b *Binder) bind(node ast.Node) {
	if node == nil {
		return
	}

	node.Base().Decorate(b.parent, b.flow)

	saveParent := b.parent
	b.parent = node
	saveScope := b.scope

	if opensScope(node, saveParent) {
		b.scope = ast.NewScope()
		node.(scopeOwner).SetLocals(b.scope)
	}

	switch n := node.(type) {
	case *ast.VariableDeclaration:
		b.scope.Declare(n.Name.Text, n)
	case *ast.ParameterDeclaration:
		b.scope.Declare(n.Name.Text, n)
	case *ast.FunctionDeclaration:
		// The name belongs to the enclosing scope so siblings can call it.
		saveScope.Declare(n.Name.Text, n)
	}

	switch n := node.(type) {
	case *ast.IfStatement:
		b.bindIfStatement(n)
	case *ast.WhileStatement:
		b.bindWhileStatement(n)
	case *ast.ForStatement:
		b.bindForStatement(n)
	case *ast.ForInStatement:
		b.bindForInStatement(n)
	case *ast.FunctionDeclaration:
		b.bindFunctionDeclaration(n)
	case *ast.ReturnStatement:
		b.bindReturnStatement(n)
	case *ast.Identifier:
		b.bindIdentifier(n)
	default:
		ast.ForEachChild(node, b.visit)
	}

	b.scope = saveScope
	b.parent = saveParent
}

// opensScope reports whether node introduces a scope of its own. A block
// that is the body of a function shares the function's scope.
func opensScope(node, parent ast.Node) bool {
	switch node.(type) {
	case *ast.FunctionDeclaration, *ast.ForStatement, *ast.ForInStatement:
		return true
	case *ast.Block:
		_, isBody := parent.(*ast.FunctionDeclaration)
		return !isBody
	}
	return false
}

func (b *Binder) bindIdentifier(id *ast.Identifier) {
	if ast.IsDeclarationName(id) || ast.IsPropertyName(id) {
		return
	}

	sym := LookupSymbol(id.Text, id)
	if sym == nil {
		b.unresolved = append(b.unresolved, id)
		return
	}
	sym.Referenced = true
	id.SetSymbol(sym)
}

// LookupSymbol resolves name as seen from node by checking the scope of
// every enclosing scope-owning node, innermost first. It returns nil when
// the name is not declared anywhere on the chain.
func LookupSymbol(name string, node ast.Node) *ast.Symbol {
	for n := node; n != nil; n = n.Parent() {
		c, ok := n.(ast.LocalsContainer)
		if !ok {
			continue
		}
		if sym, ok := c.Locals().Lookup(name); ok {
			return sym
		}
	}
	return nil
}
