package ast

// ForEachChild calls visit for each non-nil child of node in source order.
// It stops early and returns false as soon as visit returns false.
func ForEachChild(node Node, visit func(Node) bool) bool {
	each := func(children ...Node) bool {
		for _, child := range children {
			if child == nil || isNilNode(child) {
				continue
			}
			if !visit(child) {
				return false
			}
		}
		return true
	}

	switch n := node.(type) {
	case *SourceFile:
		return eachStatement(n.Statements, visit)
	case *FunctionDeclaration:
		if !each(n.Name) {
			return false
		}
		for _, p := range n.Parameters {
			if !visit(p) {
				return false
			}
		}
		return each(n.Body)
	case *ParameterDeclaration:
		return each(n.Name)
	case *VariableStatement:
		return each(n.Declaration)
	case *VariableDeclaration:
		return each(n.Name, n.Initializer)
	case *Block:
		return eachStatement(n.Statements, visit)
	case *ExpressionStatement:
		return each(n.Expression)
	case *IfStatement:
		return each(n.Expression, n.ThenStatement, n.ElseStatement)
	case *WhileStatement:
		return each(n.Expression, n.Statement)
	case *ForStatement:
		return each(n.Initializer, n.Condition, n.Incrementor, n.Statement)
	case *ForInStatement:
		return each(n.Initializer, n.Expression, n.Statement)
	case *ReturnStatement:
		return each(n.Expression)
	case *BinaryExpression:
		return each(n.Left, n.Right)
	case *AssignmentExpression:
		return each(n.Left, n.Right)
	case *PrefixUnaryExpression:
		return each(n.Operand)
	case *PostfixUnaryExpression:
		return each(n.Operand)
	case *CallExpression:
		if !each(n.Expression) {
			return false
		}
		return eachExpression(n.Arguments, visit)
	case *ArrayLiteralExpression:
		return eachExpression(n.Elements, visit)
	case *ObjectLiteralExpression:
		for _, p := range n.Properties {
			if !visit(p) {
				return false
			}
		}
		return true
	case *PropertyAssignment:
		return each(n.Name, n.Initializer)
	case *PropertyAccessExpression:
		return each(n.Expression, n.Name)
	case *ElementAccessExpression:
		return each(n.Expression, n.ArgumentExpression)
	case *DeleteExpression:
		return each(n.Expression)
	}
	return true
}

func eachStatement(list []Statement, visit func(Node) bool) bool {
	for _, s := range list {
		if !visit(s) {
			return false
		}
	}
	return true
}

func eachExpression(list []Expression, visit func(Node) bool) bool {
	for _, e := range list {
		if !visit(e) {
			return false
		}
	}
	return true
}

// isNilNode catches typed nil pointers stored in a Node interface, which
// the variadic helper in ForEachChild produces for absent fields.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *Identifier:
		return v == nil
	case *Block:
		return v == nil
	case *VariableDeclaration:
		return v == nil
	}
	return false
}

// IsDeclarationName reports whether id is the name being declared by its
// parent (function, parameter or variable declaration) rather than a use.
func IsDeclarationName(id *Identifier) bool {
	switch p := id.Parent().(type) {
	case *FunctionDeclaration:
		return p.Name == id
	case *ParameterDeclaration:
		return p.Name == id
	case *VariableDeclaration:
		return p.Name == id
	}
	return false
}

// IsPropertyName reports whether id names an object property, in
// `a.name` or `{ name: v }`. Property names never bind.
func IsPropertyName(id *Identifier) bool {
	switch p := id.Parent().(type) {
	case *PropertyAccessExpression:
		return p.Name == id
	case *PropertyAssignment:
		return p.Name == Expression(id)
	}
	return false
}

// ContainerOf returns the nearest ancestor of n (excluding n) that owns a
// scope, or nil at the root.
func ContainerOf(n Node) LocalsContainer {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if c, ok := p.(LocalsContainer); ok && c.Locals() != nil {
			return c
		}
	}
	return nil
}
