// Package lexer implements the minijs lexical analyzer.
package lexer

import (
	"fmt"

	"github.com/orizon-lang/minijs/internal/ast"
)

// Token is one lexical token. Pos and End are byte offsets into the input.
type Token struct {
	Kind  ast.SyntaxKind
	Value string // identifier text, number spelling or string contents
	Pos   int
	End   int
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Kind: %s, Value: %q, Pos: %d}", t.Kind, t.Value, t.Pos)
}

// Error is a lexical error at a byte offset.
type Error struct {
	Msg string
	Pos int
}

func (e *Error) Error() string {
	return fmt.Sprintf("scanner error at %d: %s", e.Pos, e.Msg)
}

// Lexer converts source text into tokens on demand.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
}

// New creates a new lexer instance
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEOF() bool { return l.position >= len(l.input) }

// skipTrivia skips whitespace and line comments.
func (l *Lexer) skipTrivia() {
	for !l.atEOF() {
		switch l.ch {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			l.readChar()
		case '/':
			if l.peekChar() != '/' {
				return
			}
			for !l.atEOF() && l.ch != '\n' {
				l.readChar()
			}
		default:
			return
		}
	}
}

// Next scans and returns the next token. At the end of input it keeps
// returning an EndOfFileToken.
func (l *Lexer) Next() (Token, error) {
	l.skipTrivia()

	start := l.position
	if l.atEOF() {
		return Token{Kind: ast.EndOfFileToken, Pos: start, End: start}, nil
	}

	tok := func(kind ast.SyntaxKind, width int) (Token, error) {
		for i := 0; i < width; i++ {
			l.readChar()
		}
		return Token{Kind: kind, Value: l.input[start:l.position], Pos: start, End: l.position}, nil
	}

	switch ch := l.ch; {
	case isDigit(ch):
		return l.readNumber()
	case ch == '"':
		return l.readString()
	case isIdentifierStart(ch):
		return l.readIdentifier(), nil
	case ch == '{':
		return tok(ast.OpenBraceToken, 1)
	case ch == '}':
		return tok(ast.CloseBraceToken, 1)
	case ch == '(':
		return tok(ast.OpenParenToken, 1)
	case ch == ')':
		return tok(ast.CloseParenToken, 1)
	case ch == '[':
		return tok(ast.OpenBracketToken, 1)
	case ch == ']':
		return tok(ast.CloseBracketToken, 1)
	case ch == ';':
		return tok(ast.SemicolonToken, 1)
	case ch == ',':
		return tok(ast.CommaToken, 1)
	case ch == '.':
		return tok(ast.DotToken, 1)
	case ch == ':':
		return tok(ast.ColonToken, 1)
	case ch == '?':
		return tok(ast.QuestionToken, 1)
	case ch == '*':
		return tok(ast.AsteriskToken, 1)
	case ch == '/':
		return tok(ast.SlashToken, 1)
	case ch == '=':
		if l.peekChar() == '=' {
			return tok(ast.EqualsEqualsToken, 2)
		}
		return tok(ast.EqualsToken, 1)
	case ch == '!':
		if l.peekChar() == '=' {
			return tok(ast.ExclamationEqualsToken, 2)
		}
	case ch == '+':
		if l.peekChar() == '+' {
			return tok(ast.PlusPlusToken, 2)
		}
		return tok(ast.PlusToken, 1)
	case ch == '-':
		if l.peekChar() == '-' {
			return tok(ast.MinusMinusToken, 2)
		}
		return tok(ast.MinusToken, 1)
	case ch == '<':
		if l.peekChar() == '=' {
			return tok(ast.LessThanEqualsToken, 2)
		}
		return tok(ast.LessThanToken, 1)
	case ch == '>':
		if l.peekChar() == '=' {
			return tok(ast.GreaterThanEqualsToken, 2)
		}
		return tok(ast.GreaterThanToken, 1)
	}

	return Token{}, &Error{Msg: fmt.Sprintf("unexpected character %q", l.ch), Pos: start}
}

func (l *Lexer) readIdentifier() Token {
	start := l.position
	for isIdentifierPart(l.ch) && !l.atEOF() {
		l.readChar()
	}

	text := l.input[start:l.position]
	kind, ok := ast.Keywords[text]
	if !ok {
		kind = ast.KindIdentifier
	}
	return Token{Kind: kind, Value: text, Pos: start, End: l.position}
}

func (l *Lexer) readNumber() (Token, error) {
	start := l.position
	if l.ch == '0' && isDigit(l.peekChar()) {
		return Token{}, &Error{Msg: "numeric literal cannot start with 0", Pos: start}
	}

	for isDigit(l.ch) && !l.atEOF() {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) && !l.atEOF() {
			l.readChar()
		}
	}

	if isIdentifierStart(l.ch) && !l.atEOF() {
		return Token{}, &Error{Msg: "identifier cannot immediately follow a numeric literal", Pos: l.position}
	}

	return Token{Kind: ast.KindNumericLiteral, Value: l.input[start:l.position], Pos: start, End: l.position}, nil
}

// readString reads a double-quoted string. Escape sequences are kept
// verbatim in the value so the literal prints back unchanged.
func (l *Lexer) readString() (Token, error) {
	start := l.position
	l.readChar() // opening quote

	for !l.atEOF() && l.ch != '"' {
		if l.ch == '\n' {
			break
		}
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}

	if l.atEOF() || l.ch != '"' {
		return Token{}, &Error{Msg: "unterminated string literal", Pos: start}
	}

	value := l.input[start+1 : l.position]
	l.readChar() // closing quote
	return Token{Kind: ast.KindStringLiteral, Value: value, Pos: start, End: l.position}, nil
}

// Tokenize scans the whole input. The final token is always an
// EndOfFileToken.
func Tokenize(input string) ([]Token, error) {
	l := New(input)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == ast.EndOfFileToken {
			return tokens, nil
		}
	}
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentifierStart(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == '$'
}

func isIdentifierPart(ch byte) bool {
	return isIdentifierStart(ch) || isDigit(ch)
}
