package columnar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewMatrixFromDataFrameTransposesShape pins spec.md §4.5/§9: columns
// are materialized row-major as (L, N) then transposed to stored (N, L).
func TestNewMatrixFromDataFrameTransposesShape(t *testing.T) {
	a, err := NewFloat64Series("x", []float64{1, 2, 3}, nil)
	require.NoError(t, err)
	b, err := NewFloat64Series("y", []float64{4, 5, 6}, nil)
	require.NoError(t, err)
	df, err := NewDataFrame([]*Series{a, b})
	require.NoError(t, err)

	m, err := NewMatrixFromDataFrame(df)
	require.NoError(t, err)

	ncols, nrows := m.Shape()
	assert.Equal(t, 2, ncols)
	assert.Equal(t, 3, nrows)

	assert.Equal(t, 1.0, m.At(0, 0))
	assert.Equal(t, 2.0, m.At(0, 1))
	assert.Equal(t, 4.0, m.At(1, 0))
}

func TestNewMatrixFromDataFrameRejectsNonNumeric(t *testing.T) {
	s, err := NewCatSeries("sym", []string{"a", "b"}, nil)
	require.NoError(t, err)
	df, err := NewDataFrame([]*Series{s})
	require.NoError(t, err)

	_, err = NewMatrixFromDataFrame(df)
	assert.Error(t, err)
}
