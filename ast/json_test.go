package ast

import (
	"encoding/json"
	"testing"

	"github.com/hinmeru/jlang/columnar"
	"github.com/hinmeru/jlang/j"
	"github.com/hinmeru/jlang/sourcemap"
	"github.com/stretchr/testify/require"
)

func TestToJSONRoundTripsAssignOverLiteral(t *testing.T) {
	node := Assign{
		Base: New(sourcemap.ID("s"), 0),
		Name: "x",
		Exp:  Literal{Base: New(sourcemap.ID("s"), 4), Value: j.I64{Value: 42}},
	}

	out, err := ToJSON([]Node{node})
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 1)

	require.Equal(t, "assign", decoded[0]["node"])
	require.Equal(t, "x", decoded[0]["name"])
	exp := decoded[0]["exp"].(map[string]any)
	require.Equal(t, "literal", exp["node"])
	value := exp["value"].(map[string]any)
	require.Equal(t, "i64", value["type"])
	require.Equal(t, float64(42), value["value"])
}

func TestToJSONSummarizesSeriesByShapeNotElements(t *testing.T) {
	s, err := columnar.NewInt16Series("qty", []int16{7, 8, 9}, nil)
	require.NoError(t, err)

	node := Literal{Base: New(sourcemap.ID("s"), 0), Value: j.Series{S: s}}
	out, err := ToJSON([]Node{node})
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	value := decoded[0]["value"].(map[string]any)
	require.Equal(t, "series", value["type"])
	require.Equal(t, "i16", value["dtype"])
	require.Equal(t, "qty", value["name"])
	require.Equal(t, float64(3), value["len"])
}
