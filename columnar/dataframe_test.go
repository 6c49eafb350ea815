package columnar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataFrameRejectsDuplicateNames(t *testing.T) {
	a, err := NewInt64Series("x", []int64{1}, nil)
	require.NoError(t, err)
	b, err := NewInt64Series("x", []int64{2}, nil)
	require.NoError(t, err)

	_, err = NewDataFrame([]*Series{a, b})
	assert.Error(t, err)
}

func TestNewDataFrameRejectsUnequalLengths(t *testing.T) {
	a, err := NewInt64Series("x", []int64{1, 2, 3}, nil)
	require.NoError(t, err)
	b, err := NewInt64Series("y", []int64{1, 2}, nil)
	require.NoError(t, err)

	_, err = NewDataFrame([]*Series{a, b})
	assert.Error(t, err)
}

func TestDataFrameColumnLookup(t *testing.T) {
	a, err := NewInt64Series("x", []int64{1, 2}, nil)
	require.NoError(t, err)
	df, err := NewDataFrame([]*Series{a})
	require.NoError(t, err)

	col, ok := df.Column("x")
	require.True(t, ok)
	assert.Equal(t, "x", col.Name())

	_, ok = df.Column("missing")
	assert.False(t, ok)
	assert.Equal(t, 2, df.NumRows())
	assert.Equal(t, 1, df.NumCols())
}

func TestToNdarrayRowMajorShape(t *testing.T) {
	a, err := NewFloat64Series("x", []float64{1, 2, 3}, nil)
	require.NoError(t, err)
	b, err := NewFloat64Series("y", []float64{4, 5, 6}, nil)
	require.NoError(t, err)
	df, err := NewDataFrame([]*Series{a, b})
	require.NoError(t, err)

	m, err := df.ToNdarray(true)
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 1.0, m.At(0, 0))
	assert.Equal(t, 4.0, m.At(0, 1))
}

func TestToNdarrayRejectsNonNumericColumn(t *testing.T) {
	s, err := NewStringSeries("name", []string{"a", "b"}, nil)
	require.NoError(t, err)
	df, err := NewDataFrame([]*Series{s})
	require.NoError(t, err)

	_, err = df.ToNdarray(true)
	assert.Error(t, err)
}
