package ast

import "fmt"

// SyntaxKind identifies tokens and node variants.
type SyntaxKind int

const (
	Unknown SyntaxKind = iota
	EndOfFileToken

	// Keywords
	FunctionKeyword
	LetKeyword
	IfKeyword
	ElseKeyword
	WhileKeyword
	ForKeyword
	InKeyword
	ReturnKeyword
	TrueKeyword
	FalseKeyword
	DeleteKeyword

	// Punctuation
	OpenBraceToken
	CloseBraceToken
	OpenParenToken
	CloseParenToken
	OpenBracketToken
	CloseBracketToken
	SemicolonToken
	CommaToken
	DotToken
	ColonToken
	QuestionToken

	// Operators
	EqualsToken
	PlusToken
	MinusToken
	AsteriskToken
	SlashToken
	PlusPlusToken
	MinusMinusToken
	EqualsEqualsToken
	ExclamationEqualsToken
	LessThanToken
	LessThanEqualsToken
	GreaterThanToken
	GreaterThanEqualsToken

	// Literals and identifiers
	KindIdentifier
	KindParameterDecl
	KindNumericLiteral
	KindStringLiteral

	// Nodes
	KindSourceFile
	KindFunctionDecl
	KindBlock
	KindVariableStatement
	KindVariableDeclaration
	KindExpressionStatement
	KindIfStatement
	KindWhileStatement
	KindForStatement
	KindForInStatement
	KindReturnStatement
	KindBinaryExpression
	KindAssignmentExpression
	KindPrefixUnaryExpression
	KindPostfixUnaryExpression
	KindCallExpression
	KindArrayLiteralExpression
	KindObjectLiteralExpression
	KindPropertyAssignment
	KindPropertyAccessExpression
	KindElementAccessExpression
	KindDeleteExpression
)

var kindNames = [...]string{
	Unknown:                      "Unknown",
	EndOfFileToken:               "EndOfFileToken",
	FunctionKeyword:              "FunctionKeyword",
	LetKeyword:                   "LetKeyword",
	IfKeyword:                    "IfKeyword",
	ElseKeyword:                  "ElseKeyword",
	WhileKeyword:                 "WhileKeyword",
	ForKeyword:                   "ForKeyword",
	InKeyword:                    "InKeyword",
	ReturnKeyword:                "ReturnKeyword",
	TrueKeyword:                  "TrueKeyword",
	FalseKeyword:                 "FalseKeyword",
	DeleteKeyword:                "DeleteKeyword",
	OpenBraceToken:               "OpenBraceToken",
	CloseBraceToken:              "CloseBraceToken",
	OpenParenToken:               "OpenParenToken",
	CloseParenToken:              "CloseParenToken",
	OpenBracketToken:             "OpenBracketToken",
	CloseBracketToken:            "CloseBracketToken",
	SemicolonToken:               "SemicolonToken",
	CommaToken:                   "CommaToken",
	DotToken:                     "DotToken",
	ColonToken:                   "ColonToken",
	QuestionToken:                "QuestionToken",
	EqualsToken:                  "EqualsToken",
	PlusToken:                    "PlusToken",
	MinusToken:                   "MinusToken",
	AsteriskToken:                "AsteriskToken",
	SlashToken:                   "SlashToken",
	PlusPlusToken:                "PlusPlusToken",
	MinusMinusToken:              "MinusMinusToken",
	EqualsEqualsToken:            "EqualsEqualsToken",
	ExclamationEqualsToken:       "ExclamationEqualsToken",
	LessThanToken:                "LessThanToken",
	LessThanEqualsToken:          "LessThanEqualsToken",
	GreaterThanToken:             "GreaterThanToken",
	GreaterThanEqualsToken:       "GreaterThanEqualsToken",
	KindIdentifier:               "Identifier",
	KindParameterDecl:            "ParameterDecl",
	KindNumericLiteral:           "NumericLiteral",
	KindStringLiteral:            "StringLiteral",
	KindSourceFile:               "SourceFile",
	KindFunctionDecl:             "FunctionDecl",
	KindBlock:                    "Block",
	KindVariableStatement:        "VariableStatement",
	KindVariableDeclaration:      "VariableDeclaration",
	KindExpressionStatement:      "ExpressionStatement",
	KindIfStatement:              "IfStatement",
	KindWhileStatement:           "WhileStatement",
	KindForStatement:             "ForStatement",
	KindForInStatement:           "ForInStatement",
	KindReturnStatement:          "ReturnStatement",
	KindBinaryExpression:         "BinaryExpression",
	KindAssignmentExpression:     "AssignmentExpression",
	KindPrefixUnaryExpression:    "PrefixUnaryExpression",
	KindPostfixUnaryExpression:   "PostfixUnaryExpression",
	KindCallExpression:           "CallExpression",
	KindArrayLiteralExpression:   "ArrayLiteralExpression",
	KindObjectLiteralExpression:  "ObjectLiteralExpression",
	KindPropertyAssignment:       "PropertyAssignment",
	KindPropertyAccessExpression: "PropertyAccessExpression",
	KindElementAccessExpression:  "ElementAccessExpression",
	KindDeleteExpression:         "DeleteExpression",
}

// String returns the name of the kind.
func (k SyntaxKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("SyntaxKind(%d)", int(k))
}

// Keywords maps reserved words to their token kinds.
var Keywords = map[string]SyntaxKind{
	"function": FunctionKeyword,
	"let":      LetKeyword,
	"if":       IfKeyword,
	"else":     ElseKeyword,
	"while":    WhileKeyword,
	"for":      ForKeyword,
	"in":       InKeyword,
	"return":   ReturnKeyword,
	"true":     TrueKeyword,
	"false":    FalseKeyword,
	"delete":   DeleteKeyword,
}

// OperatorText returns the source spelling of an operator token.
func OperatorText(k SyntaxKind) string {
	switch k {
	case PlusToken:
		return "+"
	case MinusToken:
		return "-"
	case AsteriskToken:
		return "*"
	case SlashToken:
		return "/"
	case EqualsToken:
		return "="
	case EqualsEqualsToken:
		return "=="
	case ExclamationEqualsToken:
		return "!="
	case LessThanToken:
		return "<"
	case LessThanEqualsToken:
		return "<="
	case GreaterThanToken:
		return ">"
	case GreaterThanEqualsToken:
		return ">="
	case PlusPlusToken:
		return "++"
	case MinusMinusToken:
		return "--"
	case DeleteKeyword:
		return "delete"
	default:
		return "?"
	}
}

// Precedence is the binding power of a binary operator.
type Precedence int

const (
	PrecedenceInvalid Precedence = iota - 1
	PrecedenceLowest
	PrecedenceAssignment
	PrecedenceEquality
	PrecedenceRelational
	PrecedenceAdditive
	PrecedenceMultiplicative
)

// BinaryPrecedence returns the precedence of a binary operator token,
// or PrecedenceInvalid if k is not a binary operator.
func BinaryPrecedence(k SyntaxKind) Precedence {
	switch k {
	case EqualsToken:
		return PrecedenceAssignment
	case EqualsEqualsToken, ExclamationEqualsToken:
		return PrecedenceEquality
	case LessThanToken, GreaterThanToken, LessThanEqualsToken, GreaterThanEqualsToken:
		return PrecedenceRelational
	case PlusToken, MinusToken:
		return PrecedenceAdditive
	case AsteriskToken, SlashToken:
		return PrecedenceMultiplicative
	default:
		return PrecedenceInvalid
	}
}
