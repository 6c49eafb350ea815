package bar

import (
	"testing"

	"github.com/hinmeru/jlang/columnar"
	"github.com/hinmeru/jlang/j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBarFloatSeries pins spec.md §8 worked example 4:
// bar(5.0, 1.2 3.7 5.1 8.9) -> Series[f64; 0.0, 0.0, 5.0, 5.0].
func TestBarFloatSeries(t *testing.T) {
	values, err := columnar.NewFloat64Series("", []float64{1.2, 3.7, 5.1, 8.9}, nil)
	require.NoError(t, err)

	out, err := Bar(j.F64{Value: 5.0}, j.Series{S: values})
	require.NoError(t, err)

	got := out.(j.Series)
	vals, err := got.S.Float64Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 5, 5}, vals)
}

func TestBarZeroSizeIsInvalidOperation(t *testing.T) {
	_, err := Bar(j.F64{Value: 0}, j.F64{Value: 5})
	assert.Error(t, err)
}

func TestBarIntTruncatesTowardZero(t *testing.T) {
	out, err := Bar(j.I64{Value: 5}, j.Date{Days: 12})
	require.NoError(t, err)
	assert.Equal(t, j.Date{Days: 10}, out)
}

func TestBarInvalidOperationNamesBothDtypes(t *testing.T) {
	_, err := Bar(j.String{Value: "x"}, j.String{Value: "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size dtype str")
	assert.Contains(t, err.Error(), "values dtype str")
}

// TestBarIdempotent pins the quantified invariant from spec.md §9:
// bar(size, bar(size, v)) == bar(size, v).
func TestBarIdempotent(t *testing.T) {
	once, err := Bar(j.F64{Value: 5.0}, j.F64{Value: 17.3})
	require.NoError(t, err)
	twice, err := Bar(j.F64{Value: 5.0}, once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}
