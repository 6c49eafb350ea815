// Package columnar is the concrete implementation of the "Columnar
// Backend" contract spec.md §6.1 treats as an external black box: a typed
// Series, a named DataFrame of equal-length Series, and a dense f64
// Matrix.
//
// Series storage is backed by real Arrow arrays (apache/arrow-go), the
// same columnar array library present in the pack's dependency graph
// (canonica-labs, a data-platform repo, pulls it in transitively for
// exactly this "typed column" role). Matrix storage is backed by
// gonum/mat.Dense, present in the pack's dependency graph for dense
// numeric arrays (labours-go, grafana-tempo).
package columnar

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
)

// Unit is the time-resolution tag for Datetime/Timestamp/Duration dtypes.
// It is a direct alias of arrow's own TimeUnit so the dtype round-trips
// losslessly through arrow.DataType.
type Unit = arrow.TimeUnit

const (
	Seconds      = arrow.Second
	Milliseconds = arrow.Millisecond
	Microseconds = arrow.Microsecond
	Nanoseconds  = arrow.Nanosecond
)

// Kind enumerates the dtype families the backend contract requires
// (spec.md §6.1): Null, Boolean, signed/unsigned integers of each width,
// both floats, Date, Time, Datetime, Timestamp, Duration, Categorical and
// String.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindDate
	KindTime
	KindDatetime
	KindTimestamp
	KindDuration
	KindCategorical
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "bool"
	case KindInt8:
		return "i8"
	case KindInt16:
		return "i16"
	case KindInt32:
		return "i32"
	case KindInt64:
		return "i64"
	case KindUint8:
		return "u8"
	case KindUint16:
		return "u16"
	case KindUint32:
		return "u32"
	case KindUint64:
		return "u64"
	case KindFloat32:
		return "f32"
	case KindFloat64:
		return "f64"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindDatetime:
		return "datetime"
	case KindTimestamp:
		return "timestamp"
	case KindDuration:
		return "duration"
	case KindCategorical:
		return "sym"
	case KindString:
		return "str"
	default:
		return "unknown"
	}
}

// DataType is the backend's dtype descriptor: a Kind plus the extra fields
// Datetime/Timestamp/Duration need (spec.md §6.1: "Unit tags: Milliseconds,
// Microseconds, Nanoseconds").
type DataType struct {
	Kind     Kind
	Unit     Unit   // meaningful for KindDatetime, KindTimestamp, KindDuration
	Timezone string // meaningful for KindDatetime, KindTimestamp; must be a valid IANA name
}

func (dt DataType) String() string { return dt.Kind.String() }

// Arrow returns the real arrow.DataType this dtype corresponds to, so
// Series construction always goes through genuine Arrow builders rather
// than a parallel type system that merely resembles one.
func (dt DataType) Arrow() arrow.DataType {
	switch dt.Kind {
	case KindNull:
		return arrow.Null
	case KindBoolean:
		return arrow.FixedWidthTypes.Boolean
	case KindInt8:
		return arrow.PrimitiveTypes.Int8
	case KindInt16:
		return arrow.PrimitiveTypes.Int16
	case KindInt32:
		return arrow.PrimitiveTypes.Int32
	case KindInt64:
		return arrow.PrimitiveTypes.Int64
	case KindUint8:
		return arrow.PrimitiveTypes.Uint8
	case KindUint16:
		return arrow.PrimitiveTypes.Uint16
	case KindUint32:
		return arrow.PrimitiveTypes.Uint32
	case KindUint64:
		return arrow.PrimitiveTypes.Uint64
	case KindFloat32:
		return arrow.PrimitiveTypes.Float32
	case KindFloat64:
		return arrow.PrimitiveTypes.Float64
	case KindDate:
		return arrow.FixedWidthTypes.Date32
	case KindTime:
		return arrow.FixedWidthTypes.Time64ns
	case KindDatetime:
		return &arrow.TimestampType{Unit: dt.Unit, TimeZone: dt.Timezone}
	case KindTimestamp:
		return &arrow.TimestampType{Unit: dt.Unit, TimeZone: dt.Timezone}
	case KindDuration:
		return &arrow.DurationType{Unit: dt.Unit}
	case KindCategorical:
		// Lexical-ordered dictionary-of-strings; see series.go for why the
		// in-memory representation here is a plain String array tagged
		// KindCategorical rather than a literal arrow.Dictionary.
		return arrow.BinaryTypes.String
	case KindString:
		return arrow.BinaryTypes.String
	default:
		return arrow.Null
	}
}

func (dt DataType) isNumeric() bool {
	switch dt.Kind {
	case KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64,
		KindFloat32, KindFloat64:
		return true
	default:
		return false
	}
}

func (dt DataType) isFloat() bool {
	return dt.Kind == KindFloat32 || dt.Kind == KindFloat64
}

func (dt DataType) isTemporal() bool {
	switch dt.Kind {
	case KindDate, KindTime, KindDatetime, KindTimestamp, KindDuration:
		return true
	default:
		return false
	}
}

// ErrIncompatible reports that two dtypes cannot be combined.
func ErrIncompatible(op string, a, b DataType) error {
	return fmt.Errorf("InvalidOperation: %s is not defined between %s and %s", op, a, b)
}
