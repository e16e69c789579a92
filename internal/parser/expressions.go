package parser

import (
	"strconv"

	"github.com/orizon-lang/minijs/internal/ast"
)

// ====== Expression Parsing (precedence climbing) ======

func (p *Parser) parseExpression() ast.Expression {
	return p.parseBinaryExpression(ast.PrecedenceAssignment)
}

// parseBinaryExpression parses operators binding at least as tightly as
// minPrecedence. Assignment is right associative, everything else left.
func (p *Parser) parseBinaryExpression(minPrecedence ast.Precedence) ast.Expression {
	left := p.parseUnaryExpression()

	for {
		op := p.current().Kind
		precedence := ast.BinaryPrecedence(op)
		if precedence < minPrecedence {
			return left
		}
		if op == ast.EqualsToken && !isAssignmentTarget(left) {
			p.errorf("invalid assignment target")
		}
		p.nextToken()

		if op == ast.EqualsToken {
			right := p.parseBinaryExpression(precedence)
			left = &ast.AssignmentExpression{NodeBase: p.base(left.Pos()), Left: left, Right: right}
			continue
		}

		right := p.parseBinaryExpression(precedence + 1)
		left = &ast.BinaryExpression{NodeBase: p.base(left.Pos()), Left: left, Operator: op, Right: right}
	}
}

func isAssignmentTarget(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.PropertyAccessExpression, *ast.ElementAccessExpression:
		return true
	}
	return false
}

// parseUnaryExpression parses prefix operators, then a left-hand-side
// expression with an optional postfix ++/--.
func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.current()
	switch tok.Kind {
	case ast.PlusToken, ast.MinusToken, ast.PlusPlusToken, ast.MinusMinusToken:
		p.nextToken()
		operand := p.parseUnaryExpression()
		return &ast.PrefixUnaryExpression{NodeBase: p.base(tok.Pos), Operator: tok.Kind, Operand: operand}
	case ast.DeleteKeyword:
		p.nextToken()
		operand := p.parseUnaryExpression()
		return &ast.DeleteExpression{NodeBase: p.base(tok.Pos), Expression: operand}
	}

	expr := p.parseLeftHandSideExpression()
	if k := p.current().Kind; k == ast.PlusPlusToken || k == ast.MinusMinusToken {
		p.nextToken()
		return &ast.PostfixUnaryExpression{NodeBase: p.base(expr.Pos()), Operand: expr, Operator: k}
	}
	return expr
}

// parseLeftHandSideExpression parses calls, property and element access.
func (p *Parser) parseLeftHandSideExpression() ast.Expression {
	expr := p.parsePrimaryExpression()

	for {
		switch p.current().Kind {
		case ast.OpenParenToken:
			p.nextToken()
			args := p.parseExpressionList(ast.CloseParenToken)
			expr = &ast.CallExpression{NodeBase: p.base(expr.Pos()), Expression: expr, Arguments: args}
		case ast.DotToken:
			p.nextToken()
			name := p.parsePropertyName()
			expr = &ast.PropertyAccessExpression{NodeBase: p.base(expr.Pos()), Expression: expr, Name: name}
		case ast.OpenBracketToken:
			p.nextToken()
			arg := p.parseExpression()
			p.expect(ast.CloseBracketToken)
			expr = &ast.ElementAccessExpression{NodeBase: p.base(expr.Pos()), Expression: expr, ArgumentExpression: arg}
		default:
			return expr
		}
	}
}

// parsePropertyName accepts identifiers and reserved words after a dot.
func (p *Parser) parsePropertyName() *ast.Identifier {
	tok := p.current()
	if tok.Kind != ast.KindIdentifier {
		if _, reserved := ast.Keywords[tok.Value]; !reserved {
			p.errorf("expected property name, got %s", tok.Kind)
		}
	}
	p.nextToken()
	return &ast.Identifier{NodeBase: ast.NewNodeBase(tok.Pos, tok.End), Text: tok.Value}
}

// parseExpressionList parses comma separated expressions up to and
// including the closing token. A trailing comma is allowed.
func (p *Parser) parseExpressionList(closing ast.SyntaxKind) []ast.Expression {
	list := make([]ast.Expression, 0)
	for !p.currentTokenIs(closing) {
		list = append(list, p.parseExpression())
		if !p.currentTokenIs(ast.CommaToken) {
			break
		}
		p.nextToken()
	}
	p.expect(closing)
	return list
}

func (p *Parser) parsePrimaryExpression() ast.Expression {
	tok := p.current()

	switch tok.Kind {
	case ast.KindIdentifier:
		return p.parseIdentifier()

	case ast.KindNumericLiteral:
		p.nextToken()
		value, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			panic(bailout{&Error{Message: "malformed number " + tok.Value, Pos: tok.Pos, End: tok.End, Err: err}})
		}
		return &ast.NumericLiteral{NodeBase: p.base(tok.Pos), Value: value, Text: tok.Value}

	case ast.KindStringLiteral:
		p.nextToken()
		return &ast.StringLiteral{NodeBase: p.base(tok.Pos), Value: tok.Value}

	case ast.TrueKeyword, ast.FalseKeyword:
		p.nextToken()
		return &ast.BooleanLiteral{NodeBase: p.base(tok.Pos), Value: tok.Kind == ast.TrueKeyword}

	case ast.OpenBracketToken:
		p.nextToken()
		elements := p.parseExpressionList(ast.CloseBracketToken)
		return &ast.ArrayLiteralExpression{NodeBase: p.base(tok.Pos), Elements: elements}

	case ast.OpenBraceToken:
		return p.parseObjectLiteral()

	case ast.OpenParenToken:
		p.nextToken()
		expr := p.parseExpression()
		p.expect(ast.CloseParenToken)
		return expr
	}

	p.errorf("unexpected token %s", tok.Kind)
	return nil
}

func (p *Parser) parseObjectLiteral() *ast.ObjectLiteralExpression {
	pos := p.expect(ast.OpenBraceToken).Pos

	props := make([]*ast.PropertyAssignment, 0)
	for !p.currentTokenIs(ast.CloseBraceToken) {
		tok := p.current()

		var name ast.Expression
		switch tok.Kind {
		case ast.KindStringLiteral:
			p.nextToken()
			name = &ast.StringLiteral{NodeBase: p.base(tok.Pos), Value: tok.Value}
		default:
			name = p.parsePropertyName()
		}

		p.expect(ast.ColonToken)
		init := p.parseExpression()
		props = append(props, &ast.PropertyAssignment{NodeBase: p.base(tok.Pos), Name: name, Initializer: init})

		if !p.currentTokenIs(ast.CommaToken) {
			break
		}
		p.nextToken()
	}
	p.expect(ast.CloseBraceToken)

	return &ast.ObjectLiteralExpression{NodeBase: p.base(pos), Properties: props}
}
