// Package parser is jlang's single public entrypoint, tying the
// sourcemap (C1), lexer/grammar (C4), and AST builder (C5) together the
// way spec.md §5 describes: "single-threaded, synchronous; given source
// text, returns either an AST vector or the first error; no multi-error
// collection, no incremental/streaming parse."
package parser

import (
	"github.com/hinmeru/jlang/ast"
	"github.com/hinmeru/jlang/builder"
	"github.com/hinmeru/jlang/sourcemap"
)

// Parse registers source text under a fresh source ID and builds its AST.
func Parse(text string) ([]ast.Node, sourcemap.ID, error) {
	src := sourcemap.NewMap().Register(text)
	nodes, err := builder.Build(src)
	return nodes, src.ID, err
}

// ParseWithID parses text under an explicit, caller-supplied source ID —
// useful when a host wants to correlate diagnostics with its own file
// identifiers rather than jlang's generated UUIDs.
func ParseWithID(m *sourcemap.Map, id sourcemap.ID, text string) ([]ast.Node, error) {
	src := m.RegisterID(id, text)
	return builder.Build(src)
}
