package diag

import (
	"testing"

	"github.com/hinmeru/jlang/sourcemap"
	"github.com/stretchr/testify/assert"
)

func TestHintSuggestsEqualsForColon(t *testing.T) {
	got := Hint(":", "unexpected token")
	assert.Contains(t, got, "perhaps '='")
}

func TestHintSuggestsDoubleEqualsForShortMessage(t *testing.T) {
	got := Hint("=", "unexpected token")
	assert.Contains(t, got, "perhaps '=='")
}

func TestHintLeavesUnrelatedMessagesAlone(t *testing.T) {
	got := Hint("(", "unexpected token")
	assert.Equal(t, "unexpected token", got)
}

func TestNewAppliesHintDuringConstruction(t *testing.T) {
	d := New(SyntaxError, sourcemap.ID("src"), Span{Start: 0, End: 1}, ":", "bad")
	assert.Contains(t, d.Message, "perhaps '='")
	assert.Equal(t, SyntaxError, d.Kind)
}

func TestDiagnosticErrorFormatsKindAndMessage(t *testing.T) {
	d := &Diagnostic{Kind: LiteralError, Message: "boom"}
	assert.Equal(t, "LiteralError: boom", d.Error())
}

func TestRenderWithSourcePointsAtColumn(t *testing.T) {
	m := sourcemap.NewMap()
	src := m.Register("a = 1\nb == 2")
	out := RenderWithSource(src, Span{Start: 8, End: 9}, "=")
	assert.Contains(t, out, "line 2, column 3 near '='")
	assert.Contains(t, out, "b == 2")
}

func TestIsReservedMatchesKeywordTable(t *testing.T) {
	assert.True(t, IsReserved("select"))
	assert.True(t, IsReserved("fn"))
	assert.True(t, IsReserved("null"))
	assert.False(t, IsReserved("sum"))
	assert.False(t, IsReserved(""))
}
