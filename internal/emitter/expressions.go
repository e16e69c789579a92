package emitter

import (
	"github.com/orizon-lang/minijs/internal/ast"
)

// Printing precedence. The parser keeps no parentheses, so they are
// re-inserted wherever an operand binds more loosely than its position
// requires.
type precedence int

const (
	precedenceLowest precedence = iota
	precedenceAssignment
	precedenceEquality
	precedenceRelational
	precedenceAdditive
	precedenceMultiplicative
	precedenceUnary
	precedencePostfix
	precedenceMember
	precedencePrimary
)

func binaryPrecedence(op ast.SyntaxKind) precedence {
	switch ast.BinaryPrecedence(op) {
	case ast.PrecedenceEquality:
		return precedenceEquality
	case ast.PrecedenceRelational:
		return precedenceRelational
	case ast.PrecedenceAdditive:
		return precedenceAdditive
	case ast.PrecedenceMultiplicative:
		return precedenceMultiplicative
	}
	return precedenceAssignment
}

func expressionPrecedence(expr ast.Expression) precedence {
	switch e := expr.(type) {
	case *ast.AssignmentExpression:
		return precedenceAssignment
	case *ast.BinaryExpression:
		return binaryPrecedence(e.Operator)
	case *ast.PrefixUnaryExpression, *ast.DeleteExpression:
		return precedenceUnary
	case *ast.PostfixUnaryExpression:
		return precedencePostfix
	case *ast.CallExpression, *ast.PropertyAccessExpression, *ast.ElementAccessExpression:
		return precedenceMember
	case *ast.NumericLiteral:
		// A folded negative number prints with a leading minus.
		if numberText(e)[0] == '-' {
			return precedenceUnary
		}
	}
	return precedencePrimary
}

// printExpression prints expr, parenthesized when it binds more loosely
// than minPrec.
func (p *Printer) printExpression(expr ast.Expression, minPrec precedence) {
	if expressionPrecedence(expr) < minPrec {
		p.write("(", nil)
		p.printExpression(expr, precedenceLowest)
		p.write(")", nil)
		return
	}

	switch e := expr.(type) {
	case *ast.Identifier:
		p.printIdentifier(e)

	case *ast.NumericLiteral:
		p.write(numberText(e), e)

	case *ast.StringLiteral:
		p.write(`"`+e.Value+`"`, e)

	case *ast.BooleanLiteral:
		if e.Value {
			p.write("true", e)
		} else {
			p.write("false", e)
		}

	case *ast.BinaryExpression:
		prec := binaryPrecedence(e.Operator)
		p.printExpression(e.Left, prec)
		p.sep(ast.OperatorText(e.Operator), true)
		p.printExpression(e.Right, prec+1)

	case *ast.AssignmentExpression:
		p.printExpression(e.Left, precedenceMember)
		p.sep("=", true)
		p.printExpression(e.Right, precedenceAssignment)

	case *ast.PrefixUnaryExpression:
		p.write(ast.OperatorText(e.Operator), e)
		p.printExpression(e.Operand, precedenceUnary)

	case *ast.PostfixUnaryExpression:
		p.printExpression(e.Operand, precedenceMember)
		p.write(ast.OperatorText(e.Operator), nil)

	case *ast.DeleteExpression:
		p.write("delete", e)
		p.space()
		p.printExpression(e.Expression, precedenceUnary)

	case *ast.CallExpression:
		p.printExpression(e.Expression, precedenceMember)
		p.write("(", nil)
		p.printList(e.Arguments)
		p.write(")", nil)

	case *ast.PropertyAccessExpression:
		p.printMemberObject(e.Expression)
		p.write(".", nil)
		p.write(e.Name.Text, e.Name)

	case *ast.ElementAccessExpression:
		p.printMemberObject(e.Expression)
		p.write("[", nil)
		p.printExpression(e.ArgumentExpression, precedenceLowest)
		p.write("]", nil)

	case *ast.ArrayLiteralExpression:
		p.write("[", e)
		p.printList(e.Elements)
		p.write("]", nil)

	case *ast.ObjectLiteralExpression:
		p.printObjectLiteral(e)
	}
}

// printMemberObject prints the object of a property or element access.
// Number literals are wrapped so that `.` is not read as a decimal point.
func (p *Printer) printMemberObject(expr ast.Expression) {
	if _, ok := expr.(*ast.NumericLiteral); ok {
		p.write("(", nil)
		p.printExpression(expr, precedenceLowest)
		p.write(")", nil)
		return
	}
	p.printExpression(expr, precedenceMember)
}

func (p *Printer) printList(list []ast.Expression) {
	for i, expr := range list {
		if i > 0 {
			p.sep(",", false)
		}
		p.printExpression(expr, precedenceAssignment)
	}
}

func (p *Printer) printObjectLiteral(obj *ast.ObjectLiteralExpression) {
	p.write("{", obj)
	if len(obj.Properties) == 0 {
		p.write("}", nil)
		return
	}

	p.space()
	for i, prop := range obj.Properties {
		if i > 0 {
			p.sep(",", false)
		}
		switch name := prop.Name.(type) {
		case *ast.Identifier:
			p.write(name.Text, name)
		case *ast.StringLiteral:
			p.write(`"`+name.Value+`"`, name)
		}
		p.write(":", nil)
		p.space()
		p.printExpression(prop.Initializer, precedenceAssignment)
	}
	p.space()
	p.write("}", nil)
}

func (p *Printer) printIdentifier(id *ast.Identifier) {
	p.write(id.Text, id)
}

func numberText(n *ast.NumericLiteral) string {
	if n.Text != "" {
		return n.Text
	}
	return ast.FormatNumber(n.Value)
}
