package ast

import (
	"testing"

	"github.com/hinmeru/jlang/sourcemap"
	"github.com/stretchr/testify/assert"
)

func TestFnTextSlicesRetainedSource(t *testing.T) {
	m := sourcemap.NewMap()
	src := m.Register("f = fn(x){x+1}")

	fn := Fn{
		Base:      New(src.ID, 4),
		Params:    []string{"x"},
		SourceID:  src.ID,
		TextStart: 4,
		TextEnd:   len(src.Text),
	}
	assert.Equal(t, "fn(x){x+1}", fn.Text(m))
}

func TestFnTextEmptyForUnknownSource(t *testing.T) {
	m := sourcemap.NewMap()
	fn := Fn{SourceID: sourcemap.ID("missing"), TextStart: 0, TextEnd: 5}
	assert.Equal(t, "", fn.Text(m))
}

func TestBasePosRoundTrips(t *testing.T) {
	b := New(sourcemap.ID("s"), 7)
	assert.Equal(t, 7, b.Pos().Offset)
	assert.Equal(t, sourcemap.ID("s"), b.Pos().SourceID)
}
