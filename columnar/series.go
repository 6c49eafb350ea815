package columnar

import (
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

var allocator = memory.NewGoAllocator()

// Series is a named, typed 1-D column, backed by a genuine Arrow array.
type Series struct {
	name string
	dt   DataType
	arr  arrow.Array
}

// Name returns the series' column name.
func (s *Series) Name() string { return s.name }

// DataType returns the series' dtype.
func (s *Series) DataType() DataType { return s.dt }

// Len returns the number of elements (including nulls).
func (s *Series) Len() int { return s.arr.Len() }

// IsNull reports whether the element at i is null.
func (s *Series) IsNull(i int) bool { return s.arr.IsNull(i) }

// Rename returns a copy of s with a new name (backend contract: "a rename
// operation"; Arrow arrays are immutable so this allocates a thin wrapper,
// not a copy of the underlying buffer).
func (s *Series) Rename(name string) *Series {
	return &Series{name: name, dt: s.dt, arr: s.arr}
}

func validAt(validity []bool, i int) bool {
	return validity == nil || validity[i]
}

// NewBooleanSeries builds a Boolean series from values, with validity[i]
// == false marking a null (validity may be nil for an all-valid column).
func NewBooleanSeries(name string, values []bool, validity []bool) (*Series, error) {
	b := array.NewBooleanBuilder(allocator)
	defer b.Release()
	for i, v := range values {
		if !validAt(validity, i) {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}
	dt := DataType{Kind: KindBoolean}
	return &Series{name: name, dt: dt, arr: b.NewArray()}, nil
}

// NewInt64Series builds an Int64 series.
func NewInt64Series(name string, values []int64, validity []bool) (*Series, error) {
	b := array.NewInt64Builder(allocator)
	defer b.Release()
	for i, v := range values {
		if !validAt(validity, i) {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}
	return &Series{name: name, dt: DataType{Kind: KindInt64}, arr: b.NewArray()}, nil
}

// NewInt8Series builds an Int8 series, one of the sized-integer widths the
// backend contract requires (spec.md §6.1: "Int8/16/32/64").
func NewInt8Series(name string, values []int8, validity []bool) (*Series, error) {
	b := array.NewInt8Builder(allocator)
	defer b.Release()
	for i, v := range values {
		if !validAt(validity, i) {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}
	return &Series{name: name, dt: DataType{Kind: KindInt8}, arr: b.NewArray()}, nil
}

// NewInt16Series builds an Int16 series.
func NewInt16Series(name string, values []int16, validity []bool) (*Series, error) {
	b := array.NewInt16Builder(allocator)
	defer b.Release()
	for i, v := range values {
		if !validAt(validity, i) {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}
	return &Series{name: name, dt: DataType{Kind: KindInt16}, arr: b.NewArray()}, nil
}

// NewInt32Series builds an Int32 series.
func NewInt32Series(name string, values []int32, validity []bool) (*Series, error) {
	b := array.NewInt32Builder(allocator)
	defer b.Release()
	for i, v := range values {
		if !validAt(validity, i) {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}
	return &Series{name: name, dt: DataType{Kind: KindInt32}, arr: b.NewArray()}, nil
}

// NewUint8Series builds a Uint8 series.
func NewUint8Series(name string, values []uint8, validity []bool) (*Series, error) {
	b := array.NewUint8Builder(allocator)
	defer b.Release()
	for i, v := range values {
		if !validAt(validity, i) {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}
	return &Series{name: name, dt: DataType{Kind: KindUint8}, arr: b.NewArray()}, nil
}

// NewUint16Series builds a Uint16 series.
func NewUint16Series(name string, values []uint16, validity []bool) (*Series, error) {
	b := array.NewUint16Builder(allocator)
	defer b.Release()
	for i, v := range values {
		if !validAt(validity, i) {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}
	return &Series{name: name, dt: DataType{Kind: KindUint16}, arr: b.NewArray()}, nil
}

// NewUint32Series builds a Uint32 series.
func NewUint32Series(name string, values []uint32, validity []bool) (*Series, error) {
	b := array.NewUint32Builder(allocator)
	defer b.Release()
	for i, v := range values {
		if !validAt(validity, i) {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}
	return &Series{name: name, dt: DataType{Kind: KindUint32}, arr: b.NewArray()}, nil
}

// NewUint64Series builds a Uint64 series.
func NewUint64Series(name string, values []uint64, validity []bool) (*Series, error) {
	b := array.NewUint64Builder(allocator)
	defer b.Release()
	for i, v := range values {
		if !validAt(validity, i) {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}
	return &Series{name: name, dt: DataType{Kind: KindUint64}, arr: b.NewArray()}, nil
}

// NewFloat64Series builds a Float64 series.
func NewFloat64Series(name string, values []float64, validity []bool) (*Series, error) {
	b := array.NewFloat64Builder(allocator)
	defer b.Release()
	for i, v := range values {
		if !validAt(validity, i) {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}
	return &Series{name: name, dt: DataType{Kind: KindFloat64}, arr: b.NewArray()}, nil
}

// NewFloat32Series builds a Float32 series, the other float width the
// backend contract requires (spec.md §6.1: "Float32/64").
func NewFloat32Series(name string, values []float32, validity []bool) (*Series, error) {
	b := array.NewFloat32Builder(allocator)
	defer b.Release()
	for i, v := range values {
		if !validAt(validity, i) {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}
	return &Series{name: name, dt: DataType{Kind: KindFloat32}, arr: b.NewArray()}, nil
}

// NewStringSeries builds a String series.
func NewStringSeries(name string, values []string, validity []bool) (*Series, error) {
	b := array.NewStringBuilder(allocator)
	defer b.Release()
	for i, v := range values {
		if !validAt(validity, i) {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}
	return &Series{name: name, dt: DataType{Kind: KindString}, arr: b.NewArray()}, nil
}

// NewCatSeries builds a Categorical series, lexically ordered per
// spec.md §6.1 ("Categorical(ordering=Lexical)"). The in-memory
// representation is a plain Arrow String array tagged KindCategorical:
// wiring a full arrow.Dictionary encoding would add builder/index-width
// bookkeeping the AST-construction layer never observes (dictionary
// encoding is an evaluator-time storage optimization, out of scope per
// spec.md §1), so the dtype tag alone carries the semantic distinction.
func NewCatSeries(name string, values []string, validity []bool) (*Series, error) {
	b := array.NewStringBuilder(allocator)
	defer b.Release()
	for i, v := range values {
		if !validAt(validity, i) {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}
	return &Series{name: name, dt: DataType{Kind: KindCategorical}, arr: b.NewArray()}, nil
}

// NewDateSeries builds a Date series (days since 1970-01-01).
func NewDateSeries(name string, days []int32, validity []bool) (*Series, error) {
	b := array.NewDate32Builder(allocator)
	defer b.Release()
	for i, v := range days {
		if !validAt(validity, i) {
			b.AppendNull()
			continue
		}
		b.Append(arrow.Date32(v))
	}
	return &Series{name: name, dt: DataType{Kind: KindDate}, arr: b.NewArray()}, nil
}

// NewTimeSeries builds a Time series (nanoseconds within a day).
func NewTimeSeries(name string, ns []int64, validity []bool) (*Series, error) {
	b := array.NewTime64Builder(allocator, arrow.FixedWidthTypes.Time64ns.(*arrow.Time64Type))
	defer b.Release()
	for i, v := range ns {
		if !validAt(validity, i) {
			b.AppendNull()
			continue
		}
		b.Append(arrow.Time64(v))
	}
	return &Series{name: name, dt: DataType{Kind: KindTime}, arr: b.NewArray()}, nil
}

// NewDatetimeSeries builds a Datetime series for the given unit/timezone.
// Callers pass Milliseconds for a wall-clock Datetime and Nanoseconds for
// a Timestamp; both spec.md variants share this constructor since Arrow
// models them identically as TimestampType{Unit, TimeZone}.
func NewDatetimeSeries(name string, values []int64, unit Unit, tz string, validity []bool) (*Series, error) {
	at := &arrow.TimestampType{Unit: unit, TimeZone: tz}
	b := array.NewTimestampBuilder(allocator, at)
	defer b.Release()
	for i, v := range values {
		if !validAt(validity, i) {
			b.AppendNull()
			continue
		}
		b.Append(arrow.Timestamp(v))
	}
	kind := KindDatetime
	if unit == Nanoseconds {
		kind = KindTimestamp
	}
	return &Series{name: name, dt: DataType{Kind: kind, Unit: unit, Timezone: tz}, arr: b.NewArray()}, nil
}

// NewDurationSeries builds a Duration series for the given unit.
func NewDurationSeries(name string, values []int64, unit Unit, validity []bool) (*Series, error) {
	dtype := &arrow.DurationType{Unit: unit}
	b := array.NewDurationBuilder(allocator, dtype)
	defer b.Release()
	for i, v := range values {
		if !validAt(validity, i) {
			b.AppendNull()
			continue
		}
		b.Append(arrow.Duration(v))
	}
	return &Series{name: name, dt: DataType{Kind: KindDuration, Unit: unit}, arr: b.NewArray()}, nil
}

// NewNullSeries builds a length-n series of the Null dtype (the
// "empty null series" of spec.md §4.6's singleton-empty-token rule, and
// j.Null's IntoSeries lift).
func NewNullSeries(name string, n int) *Series {
	b := array.NewNullBuilder(allocator)
	defer b.Release()
	for i := 0; i < n; i++ {
		b.AppendNull()
	}
	return &Series{name: name, dt: DataType{Kind: KindNull}, arr: b.NewArray()}
}

// Int64Values returns the series' backing values as int64, failing unless
// the dtype is one of the signed/unsigned integer kinds or Date, Time,
// Datetime/Timestamp or Duration.
func (s *Series) Int64Values() ([]int64, error) {
	switch a := s.arr.(type) {
	case *array.Int64:
		return append([]int64(nil), a.Int64Values()...), nil
	case *array.Int32:
		return widen32(a), nil
	case *array.Int16:
		out := make([]int64, a.Len())
		for i := range out {
			out[i] = int64(a.Value(i))
		}
		return out, nil
	case *array.Int8:
		out := make([]int64, a.Len())
		for i := range out {
			out[i] = int64(a.Value(i))
		}
		return out, nil
	case *array.Uint64:
		out := make([]int64, a.Len())
		for i := range out {
			out[i] = int64(a.Value(i))
		}
		return out, nil
	case *array.Uint32:
		out := make([]int64, a.Len())
		for i := range out {
			out[i] = int64(a.Value(i))
		}
		return out, nil
	case *array.Uint16:
		out := make([]int64, a.Len())
		for i := range out {
			out[i] = int64(a.Value(i))
		}
		return out, nil
	case *array.Uint8:
		out := make([]int64, a.Len())
		for i := range out {
			out[i] = int64(a.Value(i))
		}
		return out, nil
	case *array.Date32:
		out := make([]int64, a.Len())
		for i := range out {
			out[i] = int64(a.Value(i))
		}
		return out, nil
	case *array.Time64:
		out := make([]int64, a.Len())
		for i := range out {
			out[i] = int64(a.Value(i))
		}
		return out, nil
	case *array.Timestamp:
		out := make([]int64, a.Len())
		for i := range out {
			out[i] = int64(a.Value(i))
		}
		return out, nil
	case *array.Duration:
		out := make([]int64, a.Len())
		for i := range out {
			out[i] = int64(a.Value(i))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("series of dtype %s has no int64 view", s.dt)
	}
}

func widen32(a *array.Int32) []int64 {
	out := make([]int64, a.Len())
	for i := range out {
		out[i] = int64(a.Value(i))
	}
	return out
}

// Float64Values returns the series' backing values as float64, failing
// unless the dtype is Float32 or Float64.
func (s *Series) Float64Values() ([]float64, error) {
	switch a := s.arr.(type) {
	case *array.Float64:
		return append([]float64(nil), a.Float64Values()...), nil
	case *array.Float32:
		out := make([]float64, a.Len())
		for i := range out {
			out[i] = float64(a.Value(i))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("series of dtype %s has no float64 view", s.dt)
	}
}

// StringValues returns the series' backing values as strings, failing
// unless the dtype is String or Categorical.
func (s *Series) StringValues() ([]string, error) {
	a, ok := s.arr.(*array.String)
	if !ok {
		return nil, fmt.Errorf("series of dtype %s has no string view", s.dt)
	}
	out := make([]string, a.Len())
	for i := range out {
		out[i] = a.Value(i)
	}
	return out, nil
}

// BoolValues returns the series' backing values as bools, failing unless
// the dtype is Boolean.
func (s *Series) BoolValues() ([]bool, error) {
	a, ok := s.arr.(*array.Boolean)
	if !ok {
		return nil, fmt.Errorf("series of dtype %s has no bool view", s.dt)
	}
	out := make([]bool, a.Len())
	for i := range out {
		out[i] = a.Value(i)
	}
	return out, nil
}

// Cast converts s losslessly between its integer backing type and a
// temporal overlay sharing the same width, per the backend contract
// ("Lossless cast(&DataType) between the integer backing types and their
// temporal overlays").
func (s *Series) Cast(to DataType) (*Series, error) {
	if s.dt.Kind == to.Kind && s.dt.Unit == to.Unit && s.dt.Timezone == to.Timezone {
		return s, nil
	}
	switch to.Kind {
	case KindFloat64:
		vals, err := s.asFloat64()
		if err != nil {
			return nil, err
		}
		return NewFloat64Series(s.name, vals, nil)
	case KindInt64:
		vals, err := s.Int64Values()
		if err != nil {
			return nil, err
		}
		return NewInt64Series(s.name, vals, nil)
	case KindDate:
		vals, err := s.Int64Values()
		if err != nil {
			return nil, err
		}
		days := make([]int32, len(vals))
		for i, v := range vals {
			days[i] = int32(v)
		}
		return NewDateSeries(s.name, days, nil)
	case KindTime, KindDuration:
		vals, err := s.Int64Values()
		if err != nil {
			return nil, err
		}
		if to.Kind == KindTime {
			return NewTimeSeries(s.name, vals, nil)
		}
		return NewDurationSeries(s.name, vals, to.Unit, nil)
	case KindDatetime, KindTimestamp:
		vals, err := s.Int64Values()
		if err != nil {
			return nil, err
		}
		return NewDatetimeSeries(s.name, vals, to.Unit, to.Timezone, nil)
	default:
		return nil, fmt.Errorf("cast from %s to %s is not supported", s.dt, to)
	}
}

func (s *Series) asFloat64() ([]float64, error) {
	if s.dt.isFloat() {
		return s.Float64Values()
	}
	ints, err := s.Int64Values()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(ints))
	for i, v := range ints {
		out[i] = float64(v)
	}
	return out, nil
}

// Floor applies math.Floor element-wise; fails unless s is a float series
// (backend contract: "floor for floats").
func (s *Series) Floor() (*Series, error) {
	vals, err := s.Float64Values()
	if err != nil {
		return nil, fmt.Errorf("floor requires a float series: %w", err)
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = math.Floor(v)
	}
	return NewFloat64Series(s.name, out, nil)
}

type arithOp byte

const (
	opAdd arithOp = '+'
	opSub arithOp = '-'
	opMul arithOp = '*'
	opDiv arithOp = '/'
)

// arith applies op element-wise between two same-typed (or same-width
// numeric) series, matching the backend contract's "Arithmetic:
// element-wise + - * / between same-typed series or series and scalar".
func arith(op arithOp, a, b *Series) (*Series, error) {
	if a.Len() != b.Len() && a.Len() != 1 && b.Len() != 1 {
		return nil, fmt.Errorf("length mismatch: %d vs %d", a.Len(), b.Len())
	}
	if a.dt.isFloat() || b.dt.isFloat() {
		av, err := a.asFloat64()
		if err != nil {
			return nil, err
		}
		bv, err := b.asFloat64()
		if err != nil {
			return nil, err
		}
		out := applyFloat(op, av, bv)
		return NewFloat64Series(a.name, out, nil)
	}
	av, err := a.Int64Values()
	if err != nil {
		return nil, err
	}
	bv, err := b.Int64Values()
	if err != nil {
		return nil, err
	}
	out := applyInt(op, av, bv)
	return NewInt64Series(a.name, out, nil)
}

func applyFloat(op arithOp, a, b []float64) []float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		x := a[i%len(a)]
		y := b[i%len(b)]
		out[i] = applyOneFloat(op, x, y)
	}
	return out
}

func applyOneFloat(op arithOp, x, y float64) float64 {
	switch op {
	case opAdd:
		return x + y
	case opSub:
		return x - y
	case opMul:
		return x * y
	case opDiv:
		return x / y
	default:
		return 0
	}
}

func applyInt(op arithOp, a, b []int64) []int64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		x := a[i%len(a)]
		y := b[i%len(b)]
		out[i] = applyOneInt(op, x, y)
	}
	return out
}

func applyOneInt(op arithOp, x, y int64) int64 {
	switch op {
	case opAdd:
		return x + y
	case opSub:
		return x - y
	case opMul:
		return x * y
	case opDiv:
		return x / y
	default:
		return 0
	}
}

// Add, Sub, Mul, Div implement the backend's element-wise arithmetic.
func (s *Series) Add(o *Series) (*Series, error) { return arith(opAdd, s, o) }
func (s *Series) Sub(o *Series) (*Series, error) { return arith(opSub, s, o) }
func (s *Series) Mul(o *Series) (*Series, error) { return arith(opMul, s, o) }
func (s *Series) Div(o *Series) (*Series, error) { return arith(opDiv, s, o) }
