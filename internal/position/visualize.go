package position

import (
	"fmt"
	"strings"
)

// SpanHighlighter renders source lines with a caret underline beneath a span.
type SpanHighlighter struct {
	file *SourceFile

	// Context is the number of lines shown before and after the span.
	Context int
}

// NewSpanHighlighter creates a new span highlighter.
func NewSpanHighlighter(file *SourceFile) *SpanHighlighter {
	return &SpanHighlighter{file: file}
}

// HighlightSpan returns the lines covered by span, each followed by a
// marker line with '^' under the covered columns. An empty span is marked
// with a single caret.
func (sh *SpanHighlighter) HighlightSpan(span Span) string {
	if !span.IsValid() {
		return ""
	}

	var result strings.Builder

	startLine := max(1, span.Start.Line-sh.Context)
	endLine := min(sh.file.LineCount(), span.End.Line+sh.Context)
	width := len(fmt.Sprint(endLine))

	for lineNum := startLine; lineNum <= endLine; lineNum++ {
		line := sh.file.GetLine(lineNum)
		fmt.Fprintf(&result, "%*d | %s\n", width, lineNum, line)

		if lineNum < span.Start.Line || lineNum > span.End.Line {
			continue
		}

		startCol, endCol := 1, len(line)+1
		if lineNum == span.Start.Line {
			startCol = span.Start.Column
		}
		if lineNum == span.End.Line {
			endCol = span.End.Column
		}

		fmt.Fprintf(&result, "%s | %s\n", strings.Repeat(" ", width), underline(line, startCol, endCol))
	}

	return result.String()
}

// underline builds the marker line for columns [startCol, endCol).
func underline(line string, startCol, endCol int) string {
	var b strings.Builder

	for i := 1; i < startCol; i++ {
		if i <= len(line) && line[i-1] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}

	n := endCol - startCol
	if n < 1 {
		n = 1
	}
	b.WriteString(strings.Repeat("^", n))

	return b.String()
}
