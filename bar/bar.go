// Package bar implements C6, the unit-correct bar-size rounding operator
// spec.md §4.7 describes: "round each value down to the nearest multiple
// of size", dispatched on the dtype of values so that temporal series
// round in their own native unit rather than silently truncating through
// a lossy float cast.
package bar

import (
	"fmt"
	"math"

	"github.com/hinmeru/jlang/columnar"
	"github.com/hinmeru/jlang/diag"
	"github.com/hinmeru/jlang/j"
)

// Bar computes bar(size, values) per spec.md §4.7. Both operands must be
// numeric or temporal; anything else is an InvalidOperation diagnostic
// naming both dtypes.
func Bar(size, values j.J) (j.J, error) {
	switch v := values.(type) {
	case j.Series:
		return barSeries(size, v.S)
	default:
		return barScalar(size, values)
	}
}

func invalidOperation(size, values j.J) error {
	return diag.New(diag.InvalidOperation, "", diag.Span{}, "",
		fmt.Sprintf("bar is not defined for size dtype %s and values dtype %s", j.TypeName(size), j.TypeName(values)))
}

func zeroSizeError(size, values j.J) error {
	return diag.New(diag.InvalidOperation, "", diag.Span{}, "",
		fmt.Sprintf("bar size must not be zero (values dtype %s)", j.TypeName(values)))
}

// barScalar handles a single non-series value, used when bar is applied
// directly to a scalar rather than a column.
func barScalar(size, values j.J) (j.J, error) {
	switch v := values.(type) {
	case j.F64:
		sz, ok := scalarToFloat(size)
		if !ok {
			return nil, invalidOperation(size, values)
		}
		if sz == 0 {
			return nil, zeroSizeError(size, values)
		}
		return j.F64{Value: floorMul(v.Value, sz)}, nil
	case j.I64:
		sz, ok := scalarToFloat(size)
		if !ok {
			return nil, invalidOperation(size, values)
		}
		if sz == 0 {
			return nil, zeroSizeError(size, values)
		}
		return j.I64{Value: int64(floorMul(float64(v.Value), sz))}, nil
	case j.Date:
		sz, ok := scalarToInt(size)
		if !ok {
			return nil, invalidOperation(size, values)
		}
		if sz == 0 {
			return nil, zeroSizeError(size, values)
		}
		return j.Date{Days: int32(truncDivMulInt(int64(v.Days), sz))}, nil
	case j.Time:
		sz, ok := scalarToInt(size)
		if !ok {
			return nil, invalidOperation(size, values)
		}
		if sz == 0 {
			return nil, zeroSizeError(size, values)
		}
		return j.Time{Nanos: truncDivMulInt(v.Nanos, sz)}, nil
	case j.Duration:
		sz, ok := scalarToInt(size)
		if !ok {
			return nil, invalidOperation(size, values)
		}
		if sz == 0 {
			return nil, zeroSizeError(size, values)
		}
		return j.Duration{Nanos: truncDivMulInt(v.Nanos, sz)}, nil
	case j.Datetime:
		sz, ok := scalarToInt(size)
		if !ok {
			return nil, invalidOperation(size, values)
		}
		if isDurationOrTimeValue(size) {
			sz /= 1_000_000
		}
		if sz == 0 {
			return nil, zeroSizeError(size, values)
		}
		ms := truncDivMulInt(v.Millis, sz)
		return j.Datetime{Millis: ms, Timezone: v.Timezone}, nil
	case j.Timestamp:
		sz, ok := scalarToInt(size)
		if !ok {
			return nil, invalidOperation(size, values)
		}
		if sz == 0 {
			return nil, zeroSizeError(size, values)
		}
		return j.Timestamp{Nanos: truncDivMulInt(v.Nanos, sz), Timezone: v.Timezone}, nil
	default:
		return nil, invalidOperation(size, values)
	}
}

func isDurationOrTimeValue(v j.J) bool {
	switch v.(type) {
	case j.Duration, j.Time:
		return true
	default:
		return false
	}
}

func scalarToFloat(v j.J) (float64, bool) {
	switch x := v.(type) {
	case j.F64:
		return x.Value, true
	case j.I64:
		return float64(x.Value), true
	default:
		return 0, false
	}
}

func scalarToInt(v j.J) (int64, bool) {
	switch x := v.(type) {
	case j.I64:
		return x.Value, true
	case j.F64:
		return int64(x.Value), true
	case j.Duration:
		return x.Nanos, true
	case j.Time:
		return x.Nanos, true
	case j.Date:
		return int64(x.Days), true
	default:
		return 0, false
	}
}

func floorMul(v, size float64) float64 {
	return math.Floor(v/size) * size
}

// truncDivMulInt implements spec.md §4.7's "integer-divide then multiply"
// for non-float dtypes. Go's `/` already truncates toward zero for signed
// integers, which is the behavior the spec's phrasing describes; mixed-sign
// inputs are therefore implementation-defined in the same sense Go's own
// division is (an Open Question, decided in DESIGN.md, not a bug).
func truncDivMulInt(v, size int64) int64 {
	return (v / size) * size
}

// barSeries applies bar over an entire column, matching spec.md §4.7's
// per-dtype dispatch table.
func barSeries(size j.J, values *columnar.Series) (j.J, error) {
	dt := values.DataType()
	sv := j.Series{S: values}
	switch {
	case dt.Kind == columnar.KindFloat32 || dt.Kind == columnar.KindFloat64:
		sz, ok := scalarToFloat(size)
		if !ok {
			return nil, invalidOperation(size, sv)
		}
		if sz == 0 {
			return nil, zeroSizeError(size, sv)
		}
		vals, err := values.Float64Values()
		if err != nil {
			return nil, err
		}
		out := make([]float64, len(vals))
		for i, v := range vals {
			out[i] = floorMul(v, sz)
		}
		s, err := columnar.NewFloat64Series(values.Name(), out, nil)
		return wrap(s, err)
	case dt.Kind == columnar.KindDate:
		sz, ok := scalarToInt(size)
		if !ok {
			return nil, invalidOperation(size, sv)
		}
		if sz == 0 {
			return nil, zeroSizeError(size, sv)
		}
		vals, err := values.Int64Values()
		if err != nil {
			return nil, err
		}
		out := make([]int32, len(vals))
		for i, v := range vals {
			out[i] = int32(truncDivMulInt(v, sz))
		}
		s, err := columnar.NewDateSeries(values.Name(), out, nil)
		return wrap(s, err)
	case dt.Kind == columnar.KindDatetime && dt.Unit == columnar.Milliseconds:
		sz, ok := scalarToInt(size)
		if !ok {
			return nil, invalidOperation(size, sv)
		}
		if isDurationOrTimeValue(size) {
			sz /= 1_000_000
		}
		if sz == 0 {
			return nil, zeroSizeError(size, sv)
		}
		vals, err := values.Int64Values()
		if err != nil {
			return nil, err
		}
		out := make([]int64, len(vals))
		for i, v := range vals {
			out[i] = truncDivMulInt(v, sz) * 1_000 // ms -> µs
		}
		s, err := columnar.NewDatetimeSeries(values.Name(), out, columnar.Microseconds, dt.Timezone, nil)
		return wrap(s, err)
	case dt.Kind == columnar.KindTime || dt.Kind == columnar.KindDuration ||
		((dt.Kind == columnar.KindDatetime || dt.Kind == columnar.KindTimestamp) && dt.Unit == columnar.Nanoseconds):
		sz, ok := scalarToInt(size)
		if !ok {
			return nil, invalidOperation(size, sv)
		}
		if sz == 0 {
			return nil, zeroSizeError(size, sv)
		}
		vals, err := values.Int64Values()
		if err != nil {
			return nil, err
		}
		out := make([]int64, len(vals))
		for i, v := range vals {
			out[i] = truncDivMulInt(v, sz)
		}
		switch dt.Kind {
		case columnar.KindTime:
			s, err := columnar.NewTimeSeries(values.Name(), out, nil)
			return wrap(s, err)
		case columnar.KindDuration:
			s, err := columnar.NewDurationSeries(values.Name(), out, columnar.Nanoseconds, nil)
			return wrap(s, err)
		default:
			s, err := columnar.NewDatetimeSeries(values.Name(), out, columnar.Nanoseconds, dt.Timezone, nil)
			return wrap(s, err)
		}
	case isNumericKind(dt.Kind):
		sz, ok := scalarToInt(size)
		if !ok {
			return nil, invalidOperation(size, sv)
		}
		if sz == 0 {
			return nil, zeroSizeError(size, sv)
		}
		vals, err := values.Int64Values()
		if err != nil {
			return nil, err
		}
		out := make([]int64, len(vals))
		for i, v := range vals {
			out[i] = truncDivMulInt(v, sz)
		}
		s, err := newSizedIntSeries(dt.Kind, values.Name(), out)
		return wrap(s, err)
	default:
		return nil, invalidOperation(size, sv)
	}
}

func isNumericKind(k columnar.Kind) bool {
	switch k {
	case columnar.KindInt8, columnar.KindInt16, columnar.KindInt32, columnar.KindInt64,
		columnar.KindUint8, columnar.KindUint16, columnar.KindUint32, columnar.KindUint64:
		return true
	default:
		return false
	}
}

// newSizedIntSeries rebuilds out at kind's own width, so bar over e.g. an
// i16 column stays i16 rather than being silently promoted to i64 (spec.md
// §4.7 "Any other numeric: cast size to values's dtype; integer-divide then
// multiply" — the output dtype is the input's, not a wider one).
func newSizedIntSeries(kind columnar.Kind, name string, vals []int64) (*columnar.Series, error) {
	switch kind {
	case columnar.KindInt8:
		narrow := make([]int8, len(vals))
		for i, v := range vals {
			narrow[i] = int8(v)
		}
		return columnar.NewInt8Series(name, narrow, nil)
	case columnar.KindInt16:
		narrow := make([]int16, len(vals))
		for i, v := range vals {
			narrow[i] = int16(v)
		}
		return columnar.NewInt16Series(name, narrow, nil)
	case columnar.KindInt32:
		narrow := make([]int32, len(vals))
		for i, v := range vals {
			narrow[i] = int32(v)
		}
		return columnar.NewInt32Series(name, narrow, nil)
	case columnar.KindUint8:
		narrow := make([]uint8, len(vals))
		for i, v := range vals {
			narrow[i] = uint8(v)
		}
		return columnar.NewUint8Series(name, narrow, nil)
	case columnar.KindUint16:
		narrow := make([]uint16, len(vals))
		for i, v := range vals {
			narrow[i] = uint16(v)
		}
		return columnar.NewUint16Series(name, narrow, nil)
	case columnar.KindUint32:
		narrow := make([]uint32, len(vals))
		for i, v := range vals {
			narrow[i] = uint32(v)
		}
		return columnar.NewUint32Series(name, narrow, nil)
	case columnar.KindUint64:
		narrow := make([]uint64, len(vals))
		for i, v := range vals {
			narrow[i] = uint64(v)
		}
		return columnar.NewUint64Series(name, narrow, nil)
	default:
		return columnar.NewInt64Series(name, vals, nil)
	}
}

func wrap(s *columnar.Series, err error) (j.J, error) {
	if err != nil {
		return nil, err
	}
	return j.Series{S: s}, nil
}
