// Package parser implements the minijs recursive descent parser. It turns
// source text into an undecorated *ast.SourceFile; binding happens later.
package parser

import (
	"errors"
	"fmt"

	"github.com/orizon-lang/minijs/internal/ast"
	"github.com/orizon-lang/minijs/internal/lexer"
)

// Error is a parse failure with the offending byte range.
type Error struct {
	Message string
	Pos     int
	End     int
	Err     error // underlying lexer error, if any
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at %d: %s", e.Pos, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Range returns the offending source range [Pos, End).
func (e *Error) Range() (pos, end int) { return e.Pos, e.End }

// Reason returns the message without location.
func (e *Error) Reason() string { return e.Message }

// bailout unwinds the descent on the first error.
type bailout struct{ err *Error }

// Parser represents the recursive descent parser
type Parser struct {
	text    string
	tokens  []lexer.Token
	index   int
	prevEnd int // End of the last consumed token

	inFunction bool
}

// ParseFile parses a whole program.
func ParseFile(text string) (*ast.SourceFile, error) {
	p, err := NewParser(text)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// NewParser tokenizes text and prepares a parser over it.
func NewParser(text string) (*Parser, error) {
	tokens, err := lexer.Tokenize(text)
	if err != nil {
		var lexErr *lexer.Error
		if errors.As(err, &lexErr) {
			return nil, &Error{Message: lexErr.Msg, Pos: lexErr.Pos, End: lexErr.Pos + 1, Err: err}
		}
		return nil, err
	}
	return &Parser{text: text, tokens: tokens}, nil
}

// Parse parses the token stream into a source file.
func (p *Parser) Parse() (file *ast.SourceFile, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			file, err = nil, b.err
		}
	}()

	var statements []ast.Statement
	for !p.currentTokenIs(ast.EndOfFileToken) {
		statements = append(statements, p.parseStatement())
	}

	return &ast.SourceFile{
		NodeBase:   ast.NewNodeBase(0, len(p.text)),
		Statements: statements,
		Text:       p.text,
	}, nil
}

// ====== Token helpers ======

func (p *Parser) current() lexer.Token { return p.tokens[p.index] }

func (p *Parser) peek(n int) lexer.Token {
	if i := p.index + n; i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) currentTokenIs(kind ast.SyntaxKind) bool {
	return p.current().Kind == kind
}

// nextToken consumes the current token and returns it.
func (p *Parser) nextToken() lexer.Token {
	tok := p.current()
	if tok.Kind != ast.EndOfFileToken {
		p.index++
	}
	p.prevEnd = tok.End
	return tok
}

// expect consumes a token of the given kind or fails.
func (p *Parser) expect(kind ast.SyntaxKind) lexer.Token {
	if !p.currentTokenIs(kind) {
		p.errorf("expected %s, got %s", kind, p.current().Kind)
	}
	return p.nextToken()
}

func (p *Parser) errorf(format string, args ...any) {
	tok := p.current()
	end := tok.End
	if end <= tok.Pos {
		end = tok.Pos + 1
	}
	panic(bailout{&Error{Message: fmt.Sprintf(format, args...), Pos: tok.Pos, End: end}})
}

func (p *Parser) base(pos int) ast.NodeBase {
	return ast.NewNodeBase(pos, p.prevEnd)
}

// ====== Statements ======

func (p *Parser) parseStatement() ast.Statement {
	switch p.current().Kind {
	case ast.LetKeyword:
		return p.parseVariableStatement()
	case ast.FunctionKeyword:
		return p.parseFunctionDeclaration()
	case ast.OpenBraceToken:
		return p.parseBlock()
	case ast.WhileKeyword:
		return p.parseWhileStatement()
	case ast.ForKeyword:
		return p.parseForStatement()
	case ast.IfKeyword:
		return p.parseIfStatement()
	case ast.ReturnKeyword:
		return p.parseReturnStatement()
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseIdentifier() *ast.Identifier {
	if !p.currentTokenIs(ast.KindIdentifier) {
		p.errorf("expected identifier, got %s", p.current().Kind)
	}
	tok := p.nextToken()
	return &ast.Identifier{NodeBase: ast.NewNodeBase(tok.Pos, tok.End), Text: tok.Value}
}

// parseVariableDeclaration parses `name [= init]` after `let`.
func (p *Parser) parseVariableDeclaration(allowInit bool) *ast.VariableDeclaration {
	name := p.parseIdentifier()

	var init ast.Expression
	if allowInit && p.currentTokenIs(ast.EqualsToken) {
		p.nextToken()
		init = p.parseExpression()
	}

	return &ast.VariableDeclaration{NodeBase: p.base(name.Pos()), Name: name, Initializer: init}
}

func (p *Parser) parseVariableStatement() *ast.VariableStatement {
	pos := p.expect(ast.LetKeyword).Pos
	if !p.currentTokenIs(ast.KindIdentifier) {
		p.errorf("let statement must bind an identifier")
	}
	decl := p.parseVariableDeclaration(true)
	p.expect(ast.SemicolonToken)

	return &ast.VariableStatement{NodeBase: p.base(pos), Declaration: decl}
}

func (p *Parser) parseFunctionDeclaration() *ast.FunctionDeclaration {
	pos := p.expect(ast.FunctionKeyword).Pos
	if !p.currentTokenIs(ast.KindIdentifier) {
		p.errorf("function declaration must bind an identifier")
	}
	name := p.parseIdentifier()

	p.expect(ast.OpenParenToken)
	var params []*ast.ParameterDeclaration
	for !p.currentTokenIs(ast.CloseParenToken) {
		if !p.currentTokenIs(ast.KindIdentifier) {
			p.errorf("function parameter must be an identifier")
		}
		id := p.parseIdentifier()
		params = append(params, &ast.ParameterDeclaration{NodeBase: p.base(id.Pos()), Name: id})

		if !p.currentTokenIs(ast.CommaToken) {
			break
		}
		p.nextToken()
	}
	p.expect(ast.CloseParenToken)

	saved := p.inFunction
	p.inFunction = true
	body := p.parseBlock()
	p.inFunction = saved

	return &ast.FunctionDeclaration{NodeBase: p.base(pos), Name: name, Parameters: params, Body: body}
}

func (p *Parser) parseBlock() *ast.Block {
	pos := p.expect(ast.OpenBraceToken).Pos

	statements := make([]ast.Statement, 0)
	for !p.currentTokenIs(ast.CloseBraceToken) {
		if p.currentTokenIs(ast.EndOfFileToken) {
			p.errorf("unclosed block: missing closing brace")
		}
		statements = append(statements, p.parseStatement())
	}
	p.expect(ast.CloseBraceToken)

	return &ast.Block{NodeBase: p.base(pos), Statements: statements}
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	pos := p.expect(ast.WhileKeyword).Pos
	p.expect(ast.OpenParenToken)
	cond := p.parseExpression()
	p.expect(ast.CloseParenToken)
	body := p.parseStatement()

	return &ast.WhileStatement{NodeBase: p.base(pos), Expression: cond, Statement: body}
}

// parseForStatement parses both `for (init; cond; incr)` and
// `for (let name in expr)`.
func (p *Parser) parseForStatement() ast.Statement {
	pos := p.expect(ast.ForKeyword).Pos
	p.expect(ast.OpenParenToken)

	if p.currentTokenIs(ast.LetKeyword) &&
		p.peek(1).Kind == ast.KindIdentifier &&
		p.peek(2).Kind == ast.InKeyword {
		p.nextToken()
		decl := p.parseVariableDeclaration(false)
		p.expect(ast.InKeyword)
		expr := p.parseExpression()
		p.expect(ast.CloseParenToken)
		body := p.parseStatement()

		return &ast.ForInStatement{NodeBase: p.base(pos), Initializer: decl, Expression: expr, Statement: body}
	}

	var init ast.Node
	switch {
	case p.currentTokenIs(ast.LetKeyword):
		init = p.parseVariableStatement()
	case !p.currentTokenIs(ast.SemicolonToken):
		init = p.parseExpression()
		p.expect(ast.SemicolonToken)
	default:
		p.expect(ast.SemicolonToken)
	}

	var cond ast.Expression
	if !p.currentTokenIs(ast.SemicolonToken) {
		cond = p.parseExpression()
	}
	p.expect(ast.SemicolonToken)

	var incr ast.Expression
	if !p.currentTokenIs(ast.CloseParenToken) {
		incr = p.parseExpression()
	}
	p.expect(ast.CloseParenToken)

	body := p.parseStatement()

	return &ast.ForStatement{
		NodeBase:    p.base(pos),
		Initializer: init,
		Condition:   cond,
		Incrementor: incr,
		Statement:   body,
	}
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	pos := p.expect(ast.IfKeyword).Pos
	p.expect(ast.OpenParenToken)
	cond := p.parseExpression()
	p.expect(ast.CloseParenToken)
	then := p.parseStatement()

	var otherwise ast.Statement
	if p.currentTokenIs(ast.ElseKeyword) {
		p.nextToken()
		otherwise = p.parseStatement()
	}

	return &ast.IfStatement{NodeBase: p.base(pos), Expression: cond, ThenStatement: then, ElseStatement: otherwise}
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	if !p.inFunction {
		p.errorf("return statement is only allowed inside a function body")
	}
	pos := p.expect(ast.ReturnKeyword).Pos

	var expr ast.Expression
	if !p.currentTokenIs(ast.SemicolonToken) {
		expr = p.parseExpression()
	}
	p.expect(ast.SemicolonToken)

	return &ast.ReturnStatement{NodeBase: p.base(pos), Expression: expr}
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	pos := p.current().Pos
	expr := p.parseExpression()
	p.expect(ast.SemicolonToken)

	return &ast.ExpressionStatement{NodeBase: p.base(pos), Expression: expr}
}
