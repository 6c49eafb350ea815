package columnar

import "gonum.org/v1/gonum/mat"

// Matrix is a dense 2-D f64 array. Per spec.md's glossary its stored shape
// is (ncols, nrows): row-major source syntax is transposed once at
// construction time so that each matrix *column* as written in source
// ends up contiguous (spec.md §4.5/§9 "Matrix transpose").
type Matrix struct {
	dense *mat.Dense // Dims() == (ncols, nrows)
}

// NewMatrixFromDataFrame builds a Matrix from N equal-length numeric
// columns by (1) materializing them row-major as an (L, N) dense array,
// then (2) transposing to the stored (N, L) shape, per spec.md §4.5.
func NewMatrixFromDataFrame(df *DataFrame) (*Matrix, error) {
	rowMajor, err := df.ToNdarray(true) // shape (L, N)
	if err != nil {
		return nil, err
	}
	reversed := mat.DenseCopyOf(rowMajor.T()) // shape (N, L)
	return &Matrix{dense: reversed}, nil
}

// NewMatrix wraps an already (ncols, nrows)-shaped dense array, for
// callers that build a Matrix directly without going through a
// DataFrame. No package in this module calls it.
func NewMatrix(d *mat.Dense) *Matrix { return &Matrix{dense: d} }

// Shape returns (ncols, nrows).
func (m *Matrix) Shape() (int, int) {
	r, c := m.dense.Dims()
	return r, c
}

// Dense returns the underlying gonum matrix, shared (not copied) with m,
// matching the backend contract's "shared (cheap to clone)" note.
func (m *Matrix) Dense() *mat.Dense { return m.dense }

// At returns the element at (col, row) in the stored (ncols, nrows) shape.
func (m *Matrix) At(col, row int) float64 { return m.dense.At(col, row) }
