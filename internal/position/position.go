// Package position provides unified source code position tracking
// for the minijs compiler. Syntax nodes only carry byte offsets; this
// package turns them into line/column positions for diagnostics and
// source map generation.
package position

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// NoPos marks an offset that has no source location (synthetic nodes).
const NoPos = -1

// Position represents a single point in source code
type Position struct {
	Filename string // Source file name
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Offset   int    // 0-based byte offset in source
}

// IsValid returns true if the position is valid
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

// String returns a string representation of the position
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", filepath.Base(p.Filename), p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a range of source code between two positions
type Span struct {
	Start Position // Starting position (inclusive)
	End   Position // Ending position (exclusive)
}

// IsValid returns true if the span is valid
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() &&
		s.Start.Filename == s.End.Filename &&
		s.Start.Offset <= s.End.Offset
}

// String returns a string representation of the span
func (s Span) String() string {
	prefix := ""
	if s.Start.Filename != "" {
		prefix = filepath.Base(s.Start.Filename) + ":"
	}

	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s%d:%d-%d", prefix, s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%s%d:%d-%d:%d", prefix, s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// SourceFile represents a source file with content and a line index.
type SourceFile struct {
	Filename   string // File path
	Content    string // Source code content
	lineStarts []int  // Byte offset of the first character of every line
}

// NewSourceFile creates a new source file from content
func NewSourceFile(filename, content string) *SourceFile {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return &SourceFile{
		Filename:   filename,
		Content:    content,
		lineStarts: starts,
	}
}

// LineCount returns the number of lines in the file.
func (sf *SourceFile) LineCount() int { return len(sf.lineStarts) }

// GetLine returns the specified line (1-based) without its terminator,
// or the empty string if the line does not exist.
func (sf *SourceFile) GetLine(lineNum int) string {
	if lineNum < 1 || lineNum > len(sf.lineStarts) {
		return ""
	}

	start := sf.lineStarts[lineNum-1]
	end := len(sf.Content)
	if lineNum < len(sf.lineStarts) {
		end = sf.lineStarts[lineNum] - 1
	}

	return strings.TrimSuffix(sf.Content[start:end], "\r")
}

// PositionFromOffset converts a byte offset to a Position. Offsets outside
// the file, including NoPos, yield the zero Position.
func (sf *SourceFile) PositionFromOffset(offset int) Position {
	if offset < 0 || offset > len(sf.Content) {
		return Position{}
	}

	line := sort.Search(len(sf.lineStarts), func(i int) bool {
		return sf.lineStarts[i] > offset
	})

	return Position{
		Filename: sf.Filename,
		Line:     line,
		Column:   offset - sf.lineStarts[line-1] + 1,
		Offset:   offset,
	}
}

// Span converts a [pos, end) offset pair into a Span.
func (sf *SourceFile) Span(pos, end int) Span {
	if end < pos {
		end = pos
	}
	return Span{Start: sf.PositionFromOffset(pos), End: sf.PositionFromOffset(end)}
}
