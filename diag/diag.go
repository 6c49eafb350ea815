// Package diag implements the diagnostic surface (C7 of the design):
// spanned, kinded errors plus the small "did you mean '=' " hint
// post-processing pass spec.md §4.8/§7 describes.
//
// The span+caret rendering follows the shape of sqldef's
// TestErrorMessageSourcePosition (parser/parser_test.go, now deleted along
// with the rest of the vitess-derived SQL grammar it tested): "syntax error
// at line L, column C near 'TOKEN'" followed by the offending source line
// and a caret underneath it.
package diag

import (
	"fmt"
	"strings"

	"github.com/hinmeru/jlang/sourcemap"
)

// Kind is the stable diagnostic taxonomy spec.md §7 requires for tests and
// host mapping.
type Kind string

const (
	SyntaxError         Kind = "SyntaxError"
	ReservedKeyword     Kind = "ReservedKeyword"
	LiteralError        Kind = "LiteralError"
	SeriesTypeError     Kind = "SeriesTypeError"
	MatrixTypeError     Kind = "MatrixTypeError"
	DataframeShapeError Kind = "DataframeShapeError"
	InvalidOperation    Kind = "InvalidOperation"
)

// Span is a byte range [Start, End) into a registered source.
type Span struct {
	Start, End int
}

// Diagnostic is the error type every jlang component surfaces (C5
// wraps C2/C6 failures into one of these at the responsible node,
// per spec.md §7 "Propagation").
type Diagnostic struct {
	SourceID sourcemap.ID
	Span     Span
	Kind     Kind
	Message  string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// New builds a Diagnostic, applying the hint rewriting pass (Hint) to the
// location text before storing the final message.
func New(kind Kind, sourceID sourcemap.ID, span Span, locationText, message string) *Diagnostic {
	return &Diagnostic{
		SourceID: sourceID,
		Span:     span,
		Kind:     kind,
		Message:  Hint(locationText, message),
	}
}

// Hint implements spec.md §4.8's single post-processing pass:
//   - if the failing location text is exactly ":", suggest "perhaps '='"
//   - if the full message is short and the location text is "=", suggest
//     "perhaps '=='"
func Hint(locationText, message string) string {
	switch {
	case locationText == ":":
		return message + " (perhaps '=')"
	case locationText == "=" && len(message) < 80:
		return message + " (perhaps '==')"
	default:
		return message
	}
}

// RenderWithSource builds the "line L, column C near 'TOKEN'" + source
// snippet + caret rendering sqldef's test suite pins for syntax errors.
func RenderWithSource(src sourcemap.Source, span Span, near string) string {
	line, col, lineText := lineColumn(src.Text, span.Start)
	caret := strings.Repeat(" ", col-1) + "^"
	return fmt.Sprintf("syntax error at line %d, column %d near '%s'\n  %s\n  %s", line, col, near, lineText, caret)
}

func lineColumn(text string, offset int) (line, col int, lineText string) {
	if offset > len(text) {
		offset = len(text)
	}
	line = 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	col = offset - lineStart + 1
	lineEnd := strings.IndexByte(text[lineStart:], '\n')
	if lineEnd < 0 {
		lineText = text[lineStart:]
	} else {
		lineText = text[lineStart : lineStart+lineEnd]
	}
	return line, col, lineText
}
