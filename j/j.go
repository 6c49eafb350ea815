// Package j implements the tagged value model described in spec.md §3.1: a
// closed union of scalar atoms, temporal scalars, and the composite
// columnar types (Series/Matrix/DataFrame) provided by the columnar
// backend.
//
// Each variant is its own struct implementing the J marker interface, the
// same shape sqldef's (deleted) schema package used for its DDL node
// kinds — one struct per kind, a private marker method instead of a big
// discriminated struct.
package j

import (
	"fmt"

	"github.com/hinmeru/jlang/columnar"
)

// J is any runtime value jlang can produce. It is a closed set; the listed
// types below are its only implementations.
type J interface {
	isJ()
	// TypeName returns the stable domain name used verbatim in error
	// messages (spec.md §4.3); see TypeName for the canonical mapping.
	TypeName() string
}

// Boolean is a scalar bool atom.
type Boolean struct{ Value bool }

// I64 is a scalar 64-bit signed integer atom.
type I64 struct{ Value int64 }

// F64 is a scalar 64-bit float atom.
type F64 struct{ Value float64 }

// String is a scalar text atom.
type String struct{ Value string }

// Cat is a scalar categorical ("symbol") atom.
type Cat struct{ Value string }

// Date is days since 1970-01-01, negative allowed.
type Date struct{ Days int32 }

// Time is nanoseconds within a day, in [0, NsInDay).
type Time struct{ Nanos int64 }

// Datetime is milliseconds since the UNIX epoch, tagged with the local zone
// name captured at parse time (see temporal.LocalZoneCapture).
type Datetime struct {
	Millis   int64
	Timezone string
}

// Timestamp is nanoseconds since the UNIX epoch, tagged with the local zone
// name captured at parse time (see temporal.LocalZoneCapture).
type Timestamp struct {
	Nanos    int64
	Timezone string
}

// Duration is signed nanoseconds.
type Duration struct{ Nanos int64 }

// Null is the type-agnostic missing value, distinct from a typed null
// inside a Series.
type Null struct{}

// Series is a typed 1-D vector, backed by the columnar package.
type Series struct{ S *columnar.Series }

// Matrix is a dense 2-D f64 array, backed by the columnar package.
type Matrix struct{ M *columnar.Matrix }

// MixedList is a heterogeneous ordered sequence.
type MixedList struct{ Values []J }

// Dict is an insertion-ordered mapping from string keys to values.
type Dict struct {
	Keys   []string
	Values []J
}

// DataFrame is a named, ordered collection of equally-lengthed series,
// backed by the columnar package.
type DataFrame struct{ D *columnar.DataFrame }

// Err is an error carried as a value rather than a Go error return, so it
// can flow through try/catch (ast.Try) like any other value.
type Err struct{ Message string }

func (Boolean) isJ()   {}
func (I64) isJ()       {}
func (F64) isJ()       {}
func (String) isJ()    {}
func (Cat) isJ()       {}
func (Date) isJ()      {}
func (Time) isJ()      {}
func (Datetime) isJ()  {}
func (Timestamp) isJ() {}
func (Duration) isJ()  {}
func (Null) isJ()      {}
func (Series) isJ()    {}
func (Matrix) isJ()    {}
func (MixedList) isJ() {}
func (Dict) isJ()      {}
func (DataFrame) isJ() {}
func (Err) isJ()       {}

// TypeName returns the stable domain name for v, per spec.md §4.3. These
// strings appear verbatim in error messages and must never change.
func TypeName(v J) string { return v.TypeName() }

func (Boolean) TypeName() string   { return "bool" }
func (I64) TypeName() string       { return "i64" }
func (F64) TypeName() string       { return "f64" }
func (String) TypeName() string    { return "str" }
func (Cat) TypeName() string       { return "sym" }
func (Date) TypeName() string      { return "date" }
func (Time) TypeName() string      { return "time" }
func (Datetime) TypeName() string  { return "datetime" }
func (Timestamp) TypeName() string { return "timestamp" }
func (Duration) TypeName() string  { return "duration" }
func (Null) TypeName() string      { return "null" }
func (Series) TypeName() string    { return "series" }
func (Matrix) TypeName() string    { return "matrix" }
func (MixedList) TypeName() string { return "list" }
func (Dict) TypeName() string      { return "dict" }
func (DataFrame) TypeName() string { return "df" }
func (Err) TypeName() string       { return "err" }

// IsNumeric reports whether v's dtype participates in numeric arithmetic
// (i64/f64 scalars; bool is excluded even though it casts to numeric,
// matching the columnar backend's own Boolean/Int64/Float64 distinction).
func IsNumeric(v J) bool {
	switch v.(type) {
	case I64, F64:
		return true
	default:
		return false
	}
}

// IsBool reports whether v is the Boolean scalar variant.
func IsBool(v J) bool {
	_, ok := v.(Boolean)
	return ok
}

// IntoSeries lifts a scalar (or Null) into a length-1 typed series of the
// matching backend dtype. It fails for composite variants (Series, Matrix,
// MixedList, Dict, DataFrame, Err), which have no single-scalar lift.
func IntoSeries(v J) (*columnar.Series, error) {
	switch x := v.(type) {
	case Boolean:
		return columnar.NewBooleanSeries("", []bool{x.Value}, nil)
	case I64:
		return columnar.NewInt64Series("", []int64{x.Value}, nil)
	case F64:
		return columnar.NewFloat64Series("", []float64{x.Value}, nil)
	case String:
		return columnar.NewStringSeries("", []string{x.Value}, nil)
	case Cat:
		return columnar.NewCatSeries("", []string{x.Value}, nil)
	case Date:
		return columnar.NewDateSeries("", []int32{x.Days}, nil)
	case Time:
		return columnar.NewTimeSeries("", []int64{x.Nanos}, nil)
	case Datetime:
		return columnar.NewDatetimeSeries("", []int64{x.Millis}, columnar.Milliseconds, x.Timezone, nil)
	case Timestamp:
		return columnar.NewDatetimeSeries("", []int64{x.Nanos}, columnar.Nanoseconds, x.Timezone, nil)
	case Duration:
		return columnar.NewDurationSeries("", []int64{x.Nanos}, columnar.Nanoseconds, nil)
	case Null:
		return columnar.NewNullSeries("", 1), nil
	default:
		return nil, fmt.Errorf("cannot lift %s into a series", v.TypeName())
	}
}
