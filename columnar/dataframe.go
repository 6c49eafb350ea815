package columnar

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DataFrame is an ordered, named collection of equal-length series.
type DataFrame struct {
	cols []*Series
}

// Columns returns the frame's series in declaration order.
func (d *DataFrame) Columns() []*Series { return d.cols }

// NumRows returns the shared row count (0 for a zero-column frame).
func (d *DataFrame) NumRows() int {
	if len(d.cols) == 0 {
		return 0
	}
	return d.cols[0].Len()
}

// NumCols returns the column count.
func (d *DataFrame) NumCols() int { return len(d.cols) }

// Column returns the named column, or (nil, false) if absent.
func (d *DataFrame) Column(name string) (*Series, bool) {
	for _, c := range d.cols {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// NewDataFrame builds a DataFrame from cols, failing on unequal column
// lengths or duplicate names (backend contract: "DataFrame::new(cols)
// failing on unequal lengths or duplicate names").
func NewDataFrame(cols []*Series) (*DataFrame, error) {
	seen := make(map[string]struct{}, len(cols))
	var n int
	for i, c := range cols {
		if _, dup := seen[c.name]; dup {
			return nil, fmt.Errorf("DataframeShapeError: duplicate column name %q", c.name)
		}
		seen[c.name] = struct{}{}
		if i == 0 {
			n = c.Len()
		} else if c.Len() != n {
			return nil, fmt.Errorf("DataframeShapeError: column %q has length %d, want %d", c.name, c.Len(), n)
		}
	}
	return &DataFrame{cols: append([]*Series(nil), cols...)}, nil
}

// ToNdarray materializes every column as f64 into a dense matrix: a
// row-major (numRows, numCols) matrix when rowMajor is true, otherwise a
// (numCols, numRows) matrix holding one column per row. It fails if any
// column is neither numeric nor boolean (backend contract:
// "to_ndarray::<f64>(row_major)").
func (d *DataFrame) ToNdarray(rowMajor bool) (*mat.Dense, error) {
	rows := d.NumRows()
	cols := d.NumCols()
	data := make([]float64, rows*cols)
	for c, col := range d.cols {
		if !col.dt.isNumeric() && col.dt.Kind != KindBoolean {
			return nil, fmt.Errorf("MatrixTypeError: column %q has non-numeric dtype %s", col.name, col.dt)
		}
		vals, err := col.asFloat64OrBool()
		if err != nil {
			return nil, err
		}
		for r, v := range vals {
			if rowMajor {
				data[r*cols+c] = v
			} else {
				data[c*rows+r] = v
			}
		}
	}
	if rowMajor {
		return mat.NewDense(rows, cols, data), nil
	}
	return mat.NewDense(cols, rows, data), nil
}

func (s *Series) asFloat64OrBool() ([]float64, error) {
	if s.dt.Kind == KindBoolean {
		bv, err := s.BoolValues()
		if err != nil {
			return nil, err
		}
		out := make([]float64, len(bv))
		for i, b := range bv {
			if b {
				out[i] = 1
			}
		}
		return out, nil
	}
	return s.asFloat64()
}
