package grammar

import (
	"io"
	"strings"
)

// stringsReader adapts a source string to the io.Reader the participle
// lexer expects.
func stringsReader(s string) io.Reader { return strings.NewReader(s) }
