package parser

import (
	"testing"

	"github.com/hinmeru/jlang/ast"
	"github.com/hinmeru/jlang/sourcemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignsAStableSourceID(t *testing.T) {
	nodes, id, err := Parse("x = 1")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assign := nodes[0].(ast.Assign)
	assert.Equal(t, id, assign.Pos().SourceID)
}

func TestParseWithIDReusesCallerSuppliedID(t *testing.T) {
	m := sourcemap.NewMap()
	nodes, err := ParseWithID(m, sourcemap.ID("file.jl"), "y = 2")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assign := nodes[0].(ast.Assign)
	assert.Equal(t, sourcemap.ID("file.jl"), assign.Pos().SourceID)

	src, ok := m.Lookup(sourcemap.ID("file.jl"))
	require.True(t, ok)
	assert.Equal(t, "y = 2", src.Text)
}

func TestParsePropagatesFirstError(t *testing.T) {
	_, _, err := Parse("select = 1")
	assert.Error(t, err)
}
