// Package emitter prints a syntax tree back to source text, either
// readable or minified, and optionally records a source map.
package emitter

import (
	"strings"

	"github.com/orizon-lang/minijs/internal/ast"
	"github.com/orizon-lang/minijs/internal/position"
	"github.com/orizon-lang/minijs/internal/sourcemap"
)

// Options controls printing.
type Options struct {
	// Filename names the generated file in the source map. A source map is
	// only recorded when both Filename and SourceMap are set.
	Filename  string
	SourceMap bool
	// Minify drops all whitespace that is not needed to separate tokens.
	Minify bool
	// IndentSize is the number of spaces per nesting level (default 2).
	IndentSize int
}

// Printer turns trees into text. A Printer may be reused; every PrintFile
// call starts a new output and a new source map.
type Printer struct {
	options Options
	buffer  strings.Builder
	indent  int

	line   int // 0-based generated line
	column int // 0-based generated column
	last   byte

	source *position.SourceFile
	smg    *sourcemap.Generator
}

// New creates a printer.
func New(options Options) *Printer {
	if options.IndentSize <= 0 {
		options.IndentSize = 2
	}
	return &Printer{options: options}
}

// PrintFile prints file and returns the generated code.
func (p *Printer) PrintFile(file *ast.SourceFile) string {
	p.buffer.Reset()
	p.indent = 0
	p.line, p.column, p.last = 0, 0, 0
	p.smg = nil

	if p.options.SourceMap && p.options.Filename != "" {
		p.smg = sourcemap.NewGenerator(p.options.Filename)
		p.source = position.NewSourceFile(p.options.Filename, file.Text)
	}

	for _, stmt := range file.Statements {
		p.printStatement(stmt)
	}

	return p.buffer.String()
}

// SourceMap returns the JSON source map of the last PrintFile call. The
// second result is false when no map was requested.
func (p *Printer) SourceMap() (string, bool) {
	if p.smg == nil {
		return "", false
	}
	return p.smg.String(), true
}

// PrintNode prints a single statement or expression in isolation, with
// no source map.
func PrintNode(node ast.Node, options Options) string {
	options.SourceMap = false
	p := New(options)
	switch n := node.(type) {
	case *ast.SourceFile:
		return p.PrintFile(n)
	case ast.Statement:
		p.printStatementInline(n)
	case ast.Expression:
		p.printExpression(n, precedenceLowest)
	}
	return p.buffer.String()
}

// ===== Writing helpers =====

// write appends a token, inserting a space first when the token would
// otherwise merge with the previous one. node, when given and not
// synthetic, is mapped to the token's start.
func (p *Printer) write(text string, node ast.Node) {
	if text == "" {
		return
	}
	if needsSeparator(p.last, text[0]) {
		p.emit(" ")
	}
	if node != nil && p.smg != nil && node.Pos() >= 0 {
		orig := p.source.PositionFromOffset(node.Pos())
		if orig.IsValid() {
			p.smg.AddMapping(p.line, p.column, orig.Line-1, orig.Column-1)
		}
	}
	p.emit(text)
}

func (p *Printer) emit(text string) {
	if text == "" {
		return
	}
	p.buffer.WriteString(text)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			p.line++
			p.column = 0
		} else {
			p.column++
		}
	}
	p.last = text[len(text)-1]
}

// space writes a space in readable mode only.
func (p *Printer) space() {
	if !p.options.Minify {
		p.emit(" ")
	}
}

// sep writes text, padded with spaces in readable mode (", " or " = ").
func (p *Printer) sep(text string, before bool) {
	if before {
		p.space()
	}
	p.write(text, nil)
	p.space()
}

func (p *Printer) newline() {
	if !p.options.Minify {
		p.emit("\n")
	}
}

func (p *Printer) writeIndent() {
	if !p.options.Minify {
		p.emit(strings.Repeat(" ", p.indent*p.options.IndentSize))
	}
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// needsSeparator reports whether next may not directly follow last.
func needsSeparator(last, next byte) bool {
	switch {
	case isWordByte(last) && isWordByte(next):
		return true
	case last == '+' && next == '+', last == '-' && next == '-':
		return true
	}
	return false
}
