package emitter

import (
	"github.com/orizon-lang/minijs/internal/ast"
)

// ===== Statements =====

func (p *Printer) printStatement(stmt ast.Statement) {
	p.writeIndent()
	p.printStatementInline(stmt)
	p.newline()
}

func (p *Printer) printStatementInline(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VariableStatement:
		p.write("let", s)
		p.space()
		p.printVariableDeclaration(s.Declaration)
		p.write(";", nil)

	case *ast.ExpressionStatement:
		if startsWithBrace(s.Expression) {
			p.write("(", s)
			p.printExpression(s.Expression, precedenceLowest)
			p.write(")", nil)
		} else {
			p.printExpression(s.Expression, precedenceLowest)
		}
		p.write(";", nil)

	case *ast.ReturnStatement:
		p.write("return", s)
		if s.Expression != nil {
			p.space()
			p.printExpression(s.Expression, precedenceLowest)
		}
		p.write(";", nil)

	case *ast.Block:
		p.printBlock(s)

	case *ast.FunctionDeclaration:
		p.write("function", s)
		p.space()
		p.printIdentifier(s.Name)
		p.write("(", nil)
		for i, param := range s.Parameters {
			if i > 0 {
				p.sep(",", false)
			}
			p.printIdentifier(param.Name)
		}
		p.write(")", nil)
		p.space()
		p.printBlock(s.Body)

	case *ast.IfStatement:
		p.write("if", s)
		p.space()
		p.printCondition(s.Expression)
		if s.ElseStatement != nil && isDanglingIf(s.ThenStatement) {
			// Without braces the else would attach to the inner if.
			p.space()
			p.write("{", nil)
			p.printStatementInline(s.ThenStatement)
			p.write("}", nil)
		} else {
			p.printBody(s.ThenStatement)
		}
		if s.ElseStatement != nil {
			p.space()
			p.write("else", nil)
			p.space()
			p.printStatementInline(s.ElseStatement)
		}

	case *ast.WhileStatement:
		p.write("while", s)
		p.space()
		p.printCondition(s.Expression)
		p.printBody(s.Statement)

	case *ast.ForStatement:
		p.write("for", s)
		p.space()
		p.write("(", nil)
		switch init := s.Initializer.(type) {
		case *ast.VariableStatement:
			p.write("let", init)
			p.space()
			p.printVariableDeclaration(init.Declaration)
		case ast.Expression:
			p.printExpression(init, precedenceLowest)
		}
		p.write(";", nil)
		if s.Condition != nil {
			p.space()
			p.printExpression(s.Condition, precedenceLowest)
		}
		p.write(";", nil)
		if s.Incrementor != nil {
			p.space()
			p.printExpression(s.Incrementor, precedenceLowest)
		}
		p.write(")", nil)
		p.printBody(s.Statement)

	case *ast.ForInStatement:
		p.write("for", s)
		p.space()
		p.write("(", nil)
		p.write("let", s.Initializer)
		p.space()
		p.printIdentifier(s.Initializer.Name)
		p.space()
		p.write("in", nil)
		p.space()
		p.printExpression(s.Expression, precedenceLowest)
		p.write(")", nil)
		p.printBody(s.Statement)
	}
}

func (p *Printer) printVariableDeclaration(decl *ast.VariableDeclaration) {
	p.printIdentifier(decl.Name)
	if decl.Initializer != nil {
		p.sep("=", true)
		p.printExpression(decl.Initializer, precedenceAssignment)
	}
}

func (p *Printer) printCondition(expr ast.Expression) {
	p.write("(", nil)
	p.printExpression(expr, precedenceLowest)
	p.write(")", nil)
}

// printBody prints the statement controlled by if, while or for on the
// same line as its header.
func (p *Printer) printBody(stmt ast.Statement) {
	p.space()
	p.printStatementInline(stmt)
}

func (p *Printer) printBlock(block *ast.Block) {
	p.write("{", block)
	if len(block.Statements) == 0 {
		p.write("}", nil)
		return
	}

	p.newline()
	p.indent++
	for _, stmt := range block.Statements {
		p.printStatement(stmt)
	}
	p.indent--
	p.writeIndent()
	p.write("}", nil)
}

// isDanglingIf reports whether stmt ends in an if statement without an
// else branch.
func isDanglingIf(stmt ast.Statement) bool {
	for {
		switch s := stmt.(type) {
		case *ast.IfStatement:
			if s.ElseStatement == nil {
				return true
			}
			stmt = s.ElseStatement
		case *ast.WhileStatement:
			stmt = s.Statement
		case *ast.ForStatement:
			stmt = s.Statement
		case *ast.ForInStatement:
			stmt = s.Statement
		default:
			return false
		}
	}
}

// startsWithBrace reports whether printing expr would begin with `{`,
// which at the start of a statement would read as a block.
func startsWithBrace(expr ast.Expression) bool {
	for {
		switch e := expr.(type) {
		case *ast.ObjectLiteralExpression:
			return true
		case *ast.BinaryExpression:
			expr = e.Left
		case *ast.AssignmentExpression:
			expr = e.Left
		case *ast.PostfixUnaryExpression:
			expr = e.Operand
		case *ast.CallExpression:
			expr = e.Expression
		case *ast.PropertyAccessExpression:
			expr = e.Expression
		case *ast.ElementAccessExpression:
			expr = e.Expression
		default:
			return false
		}
	}
}
