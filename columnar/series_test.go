package columnar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInt64SeriesRoundTrip(t *testing.T) {
	s, err := NewInt64Series("col1", []int64{1, 2, 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, "col1", s.Name())
	assert.Equal(t, 3, s.Len())

	vals, err := s.Int64Values()
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, vals)
}

func TestSeriesRenamePreservesValues(t *testing.T) {
	s, err := NewFloat64Series("x", []float64{1.5, 2.5}, nil)
	require.NoError(t, err)
	renamed := s.Rename("y")
	assert.Equal(t, "y", renamed.Name())

	vals, err := renamed.Float64Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5}, vals)
}

func TestNewBooleanSeriesWithNulls(t *testing.T) {
	s, err := NewBooleanSeries("flag", []bool{true, false}, []bool{true, false})
	require.NoError(t, err)
	assert.False(t, s.IsNull(0))
	assert.True(t, s.IsNull(1))
}

func TestNewCatSeriesIsTaggedCategorical(t *testing.T) {
	s, err := NewCatSeries("sym", []string{"a", "b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, KindCategorical, s.DataType().Kind)
}

func TestSeriesAddBroadcastsScalar(t *testing.T) {
	a, err := NewFloat64Series("a", []float64{1, 2, 3}, nil)
	require.NoError(t, err)
	one, err := NewFloat64Series("one", []float64{1}, nil)
	require.NoError(t, err)

	sum, err := a.Add(one)
	require.NoError(t, err)
	vals, err := sum.Float64Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 4}, vals)
}

func TestFloorOnlyAppliesToFloat(t *testing.T) {
	f, err := NewFloat64Series("f", []float64{1.7, -1.2}, nil)
	require.NoError(t, err)
	floored, err := f.Floor()
	require.NoError(t, err)
	vals, err := floored.Float64Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -2}, vals)

	i, err := NewInt64Series("i", []int64{1}, nil)
	require.NoError(t, err)
	_, err = i.Floor()
	assert.Error(t, err)
}
