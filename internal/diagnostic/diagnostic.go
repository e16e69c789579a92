// Diagnostic rendering for the minijs compiler.
// Turns a failure that carries a source range into an annotated excerpt of
// the source text.

package diagnostic

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/orizon-lang/minijs/internal/parser"
	"github.com/orizon-lang/minijs/internal/position"
	"github.com/orizon-lang/minijs/internal/transform"
)

// Level represents the severity level of a diagnostic message.
type Level int

const (
	LevelError Level = iota
	LevelWarning
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic codes.
const (
	CodeSyntax   = "E1001" // the input could not be parsed
	CodeContract = "E9001" // a rewrite pass produced a malformed tree
	CodeInternal = "E9999" // anything without a source range
)

// Located is implemented by errors that refer to a range of the source.
type Located interface {
	error
	Range() (pos, end int)
	Reason() string
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Code    string
	Message string
	Span    position.Span
	Level   Level
}

// FromError builds a diagnostic for err against file. The first error in
// the chain that implements Located supplies the message and span; when
// there is none the span is left invalid.
func FromError(file *position.SourceFile, err error) *Diagnostic {
	d := &Diagnostic{Code: CodeInternal, Message: err.Error(), Level: LevelError}

	var located Located
	if !errors.As(err, &located) {
		return d
	}

	d.Message = located.Reason()
	if pos, end := located.Range(); pos >= 0 {
		d.Span = file.Span(pos, end)
	}

	var parseErr *parser.Error
	var contractErr *transform.ContractError
	switch {
	case errors.As(err, &parseErr):
		d.Code = CodeSyntax
	case errors.As(err, &contractErr):
		d.Code = CodeContract
	}

	return d
}

// Renderer formats diagnostics.
type Renderer struct {
	// Color enables ANSI styling.
	Color bool
	// Context is the number of source lines shown around the span.
	Context int
}

// Render returns d as text: a header line, a locator and, when the span
// is valid, the covered source lines with carets beneath the span.
func (r *Renderer) Render(file *position.SourceFile, d *Diagnostic) string {
	severity := color.New(color.FgRed, color.Bold)
	if d.Level == LevelWarning {
		severity = color.New(color.FgYellow, color.Bold)
	}
	accent := color.New(color.FgBlue, color.Bold)
	bold := color.New(color.Bold)

	for _, c := range []*color.Color{severity, accent, bold} {
		if r.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", severity.Sprintf("%s[%s]", d.Level, d.Code), bold.Sprint(d.Message))

	if !d.Span.IsValid() {
		if file != nil && file.Filename != "" {
			fmt.Fprintf(&b, "  %s %s\n", accent.Sprint("-->"), file.Filename)
		}
		return b.String()
	}

	fmt.Fprintf(&b, "  %s %s\n", accent.Sprint("-->"), d.Span.Start)

	h := position.NewSpanHighlighter(file)
	h.Context = r.Context
	for _, line := range strings.Split(strings.TrimSuffix(h.HighlightSpan(d.Span), "\n"), "\n") {
		gutter, text, _ := strings.Cut(line, " | ")
		if isMarker(text) {
			text = severity.Sprint(text)
		}
		fmt.Fprintf(&b, "%s %s\n", accent.Sprint(gutter+" |"), text)
	}

	return b.String()
}

// isMarker reports whether a highlighted line is a caret line.
func isMarker(text string) bool {
	return strings.Contains(text, "^") && strings.Trim(text, " \t^") == ""
}

// Render formats err against source for display on standard error. Color
// is used only when standard error is a terminal and NO_COLOR is unset.
func Render(filename, source string, err error) string {
	file := position.NewSourceFile(filename, source)
	r := &Renderer{Color: ColorEnabled(os.Stderr)}
	return r.Render(file, FromError(file, err))
}

// ColorEnabled reports whether f is a terminal that should get ANSI
// styling.
func ColorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
