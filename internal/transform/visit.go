package transform

import (
	"github.com/orizon-lang/minijs/internal/ast"
)

// VisitEachChild applies visitor to every direct child of node and returns
// node itself when nothing changed, or an updated copy otherwise. Leaves
// (identifiers and literals) are returned as is. ctx may be nil.
func VisitEachChild(node ast.Node, visitor Visitor, ctx *Context) ast.Node {
	if node == nil {
		return nil
	}

	f := ast.NewFactory()
	if ctx != nil && ctx.Factory != nil {
		f = ctx.Factory
	}
	v := &childVisitor{parent: node, visit: visitor}

	switch n := node.(type) {
	case *ast.SourceFile:
		return f.UpdateSourceFile(n, visitList(v, n.Statements, "statement"))

	case *ast.FunctionDeclaration:
		return f.UpdateFunctionDeclaration(n,
			visitSlot(v, n.Name, "identifier"),
			visitList(v, n.Parameters, "parameter"),
			visitSlot(v, n.Body, "block"),
		)

	case *ast.ParameterDeclaration:
		return f.UpdateParameterDeclaration(n, visitSlot(v, n.Name, "identifier"))

	case *ast.VariableStatement:
		return f.UpdateVariableStatement(n, visitSlot(v, n.Declaration, "variable declaration"))

	case *ast.VariableDeclaration:
		return f.UpdateVariableDeclaration(n,
			visitSlot(v, n.Name, "identifier"),
			visitSlot(v, n.Initializer, "expression"),
		)

	case *ast.Block:
		return f.UpdateBlock(n, visitList(v, n.Statements, "statement"))

	case *ast.ExpressionStatement:
		return f.UpdateExpressionStatement(n, visitSlot(v, n.Expression, "expression"))

	case *ast.IfStatement:
		return f.UpdateIfStatement(n,
			visitSlot(v, n.Expression, "expression"),
			visitSlot(v, n.ThenStatement, "statement"),
			visitSlot(v, n.ElseStatement, "statement"),
		)

	case *ast.WhileStatement:
		return f.UpdateWhileStatement(n,
			visitSlot(v, n.Expression, "expression"),
			visitSlot(v, n.Statement, "statement"),
		)

	case *ast.ForStatement:
		return f.UpdateForStatement(n,
			v.forInitializer(n.Initializer),
			visitSlot(v, n.Condition, "expression"),
			visitSlot(v, n.Incrementor, "expression"),
			visitSlot(v, n.Statement, "statement"),
		)

	case *ast.ForInStatement:
		return f.UpdateForInStatement(n,
			visitSlot(v, n.Initializer, "variable declaration"),
			visitSlot(v, n.Expression, "expression"),
			visitSlot(v, n.Statement, "statement"),
		)

	case *ast.ReturnStatement:
		return f.UpdateReturnStatement(n, visitSlot(v, n.Expression, "expression"))

	case *ast.BinaryExpression:
		return f.UpdateBinaryExpression(n,
			visitSlot(v, n.Left, "expression"),
			visitSlot(v, n.Right, "expression"),
		)

	case *ast.AssignmentExpression:
		return f.UpdateAssignmentExpression(n,
			visitSlot(v, n.Left, "expression"),
			visitSlot(v, n.Right, "expression"),
		)

	case *ast.PrefixUnaryExpression:
		return f.UpdatePrefixUnaryExpression(n, visitSlot(v, n.Operand, "expression"))

	case *ast.PostfixUnaryExpression:
		return f.UpdatePostfixUnaryExpression(n, visitSlot(v, n.Operand, "expression"))

	case *ast.CallExpression:
		return f.UpdateCallExpression(n,
			visitSlot(v, n.Expression, "expression"),
			visitList(v, n.Arguments, "expression"),
		)

	case *ast.ArrayLiteralExpression:
		return f.UpdateArrayLiteralExpression(n, visitList(v, n.Elements, "expression"))

	case *ast.ObjectLiteralExpression:
		return f.UpdateObjectLiteralExpression(n, visitList(v, n.Properties, "property assignment"))

	case *ast.PropertyAssignment:
		return f.UpdatePropertyAssignment(n,
			visitSlot(v, n.Name, "expression"),
			visitSlot(v, n.Initializer, "expression"),
		)

	case *ast.PropertyAccessExpression:
		return f.UpdatePropertyAccessExpression(n,
			visitSlot(v, n.Expression, "expression"),
			visitSlot(v, n.Name, "identifier"),
		)

	case *ast.ElementAccessExpression:
		return f.UpdateElementAccessExpression(n,
			visitSlot(v, n.Expression, "expression"),
			visitSlot(v, n.ArgumentExpression, "expression"),
		)

	case *ast.DeleteExpression:
		return f.UpdateDeleteExpression(n, visitSlot(v, n.Expression, "expression"))

	case *ast.Identifier, *ast.NumericLiteral, *ast.StringLiteral, *ast.BooleanLiteral:
		return node
	}

	panic(contractf(node, "no child visitor for %s", node.Kind()))
}

type childVisitor struct {
	parent ast.Node
	visit  Visitor
}

// visitSlot visits a single child. An absent child stays absent and a nil
// result keeps the original child.
func visitSlot[T ast.Node](v *childVisitor, child T, want string) T {
	if ast.Node(child) == nil {
		return child
	}
	out := v.visit(child)
	if out == nil {
		return child
	}
	return v.as(out, want).(T)
}

// visitList visits every element of list, dropping elements for which the
// visitor returns nil. The original slice is returned when no element
// changed.
func visitList[T ast.Node](v *childVisitor, list []T, want string) []T {
	var updated []T
	for i, child := range list {
		out := v.visit(child)
		if out != nil && out == ast.Node(child) {
			if updated != nil {
				updated = append(updated, child)
			}
			continue
		}
		if updated == nil {
			updated = make([]T, i, len(list))
			copy(updated, list[:i])
		}
		if out != nil {
			updated = append(updated, v.as(out, want).(T))
		}
	}
	if updated == nil {
		return list
	}
	return updated
}

// as checks that out may occupy a slot of the wanted shape.
func (v *childVisitor) as(out ast.Node, want string) ast.Node {
	var ok bool
	switch want {
	case "statement":
		_, ok = out.(ast.Statement)
	case "expression":
		_, ok = out.(ast.Expression)
	case "identifier":
		_, ok = out.(*ast.Identifier)
	case "block":
		_, ok = out.(*ast.Block)
	case "parameter":
		_, ok = out.(*ast.ParameterDeclaration)
	case "variable declaration":
		_, ok = out.(*ast.VariableDeclaration)
	case "property assignment":
		_, ok = out.(*ast.PropertyAssignment)
	}
	if !ok {
		panic(contractf(v.parent, "visitor returned %s in %s slot of %s", kindOf(out), want, v.parent.Kind()))
	}
	return out
}

// forInitializer visits the initializer of a for statement, which holds
// either a variable statement or an expression. A visitor that turns the
// declaration into an expression statement has its expression unwrapped.
func (v *childVisitor) forInitializer(init ast.Node) ast.Node {
	if init == nil {
		return nil
	}
	out := v.visit(init)
	switch n := out.(type) {
	case nil:
		return init
	case *ast.VariableStatement:
		return n
	case *ast.ExpressionStatement:
		return n.Expression
	case ast.Expression:
		return n
	}
	panic(contractf(v.parent, "visitor returned %s as a for initializer", kindOf(out)))
}
