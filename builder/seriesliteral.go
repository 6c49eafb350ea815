// This file is the C5 delegate spec.md §4.6 describes: classifying a
// whitespace-separated run of scalar tokens into a single typed series.
//
// Unlike the Rust original (original_source/crates/jasmine/src/parser.rs),
// which re-derives each token's dtype by matching it against a
// precedence-ordered list of regular expressions, this implementation
// reuses the lexical classification the tokenizer (package grammar)
// already performed: each token's Name *is* the scalar family spec.md's
// regex table would have produced, so a second regex pass would just
// duplicate work the lexer already did correctly. The dtype-sniffing
// *order of precedence* spec.md specifies is preserved wherever it still
// matters, i.e. when a bare, unsuffixed Integer/Decimal token must default
// to i64/f64 (spec.md §4.6: "a suffix-less token is allowed only for i64
// and f64 defaults").
package builder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hinmeru/jlang/columnar"
	"github.com/hinmeru/jlang/grammar"
	"github.com/hinmeru/jlang/j"
	"github.com/hinmeru/jlang/temporal"
)

// isScalarKind reports whether a token's lexical kind can participate in
// a series literal run.
func isScalarKind(name string) bool {
	switch name {
	case grammar.Boolean, grammar.Integer, grammar.Decimal, grammar.Date,
		grammar.Time, grammar.Datetime, grammar.Timestamp, grammar.Duration,
		grammar.CatRun, grammar.CatAlt, grammar.String:
		return true
	case grammar.Ident:
		return true // only "null" is accepted; checked by isNullToken/dtype code
	default:
		return false
	}
}

func isNullToken(t grammar.Tok) bool {
	return t.Value == "null" || t.Value == "0n" || t.Value == ""
}

// seriesDType is the concrete dtype a run of tokens settles on, derived
// from the first non-null token, per spec.md §4.6.
type seriesDType struct {
	kind   columnar.Kind
	suffix string // raw suffix text, e.g. "i16"; "" means default width
}

// classify returns the dtype the first non-null token selects.
func classify(t grammar.Tok) (seriesDType, error) {
	switch t.Name {
	case grammar.Boolean:
		return seriesDType{kind: columnar.KindBoolean}, nil
	case grammar.Integer:
		kind, suf := intKind(t.Value)
		return seriesDType{kind: kind, suffix: suf}, nil
	case grammar.Decimal:
		kind, suf := floatKind(t.Value)
		return seriesDType{kind: kind, suffix: suf}, nil
	case grammar.Date:
		return seriesDType{kind: columnar.KindDate}, nil
	case grammar.Time:
		return seriesDType{kind: columnar.KindTime}, nil
	case grammar.Datetime:
		return seriesDType{kind: columnar.KindDatetime}, nil
	case grammar.Timestamp:
		return seriesDType{kind: columnar.KindTimestamp}, nil
	case grammar.Duration:
		return seriesDType{kind: columnar.KindDuration}, nil
	case grammar.CatRun:
		return seriesDType{kind: columnar.KindCategorical}, nil
	case grammar.CatAlt:
		return seriesDType{kind: columnar.KindCategorical}, nil
	case grammar.String:
		return seriesDType{kind: columnar.KindString}, nil
	case grammar.Ident:
		if t.Value == "null" {
			return seriesDType{kind: columnar.KindNull}, nil
		}
		return seriesDType{}, fmt.Errorf("LiteralError: %q is not a valid series token", t.Value)
	default:
		return seriesDType{}, fmt.Errorf("LiteralError: %q is not a valid series token", t.Value)
	}
}

func intSuffixes() []string {
	return []string{"u8", "i8", "u16", "i16", "u32", "i32", "u64", "i64"}
}

func intKind(text string) (columnar.Kind, string) {
	for _, suf := range intSuffixes() {
		if strings.HasSuffix(text, suf) {
			return intKindForSuffix(suf), suf
		}
	}
	if strings.HasSuffix(text, "f32") {
		return columnar.KindFloat32, "f32"
	}
	if strings.HasSuffix(text, "f64") {
		return columnar.KindFloat64, "f64"
	}
	return columnar.KindInt64, ""
}

func intKindForSuffix(suf string) columnar.Kind {
	switch suf {
	case "u8":
		return columnar.KindUint8
	case "i8":
		return columnar.KindInt8
	case "u16":
		return columnar.KindUint16
	case "i16":
		return columnar.KindInt16
	case "u32":
		return columnar.KindUint32
	case "i32":
		return columnar.KindInt32
	case "u64":
		return columnar.KindUint64
	case "i64":
		return columnar.KindInt64
	default:
		return columnar.KindInt64
	}
}

func floatKind(text string) (columnar.Kind, string) {
	if strings.HasSuffix(text, "f32") {
		return columnar.KindFloat32, "f32"
	}
	if strings.HasSuffix(text, "f64") {
		return columnar.KindFloat64, "f64"
	}
	return columnar.KindFloat64, ""
}

func stripSuffix(text, suffix string) string {
	return strings.TrimSuffix(text, suffix)
}

// scalarValue parses a single token (outside of any series run) into its
// default J scalar, used when a run has exactly one token.
func scalarValue(t grammar.Tok) (j.J, error) {
	switch t.Name {
	case grammar.Boolean:
		return j.Boolean{Value: t.Value == "true" || t.Value == "1b"}, nil
	case grammar.Integer:
		kind, suf := intKind(t.Value)
		n, err := strconv.ParseInt(stripSuffix(t.Value, suf), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("LiteralError: invalid integer literal %q", t.Value)
		}
		if kind == columnar.KindFloat32 || kind == columnar.KindFloat64 {
			return j.F64{Value: float64(n)}, nil
		}
		return j.I64{Value: n}, nil
	case grammar.Decimal:
		_, suf := floatKind(t.Value)
		f, err := strconv.ParseFloat(stripSuffix(t.Value, suf), 64)
		if err != nil {
			return nil, fmt.Errorf("LiteralError: invalid decimal literal %q", t.Value)
		}
		return j.F64{Value: f}, nil
	case grammar.Date:
		days, err := temporal.ParseDate(t.Value)
		if err != nil {
			return nil, fmt.Errorf("LiteralError: %v", err)
		}
		return j.Date{Days: days}, nil
	case grammar.Time:
		ns, err := temporal.ParseTime(t.Value)
		if err != nil {
			return nil, fmt.Errorf("LiteralError: %v", err)
		}
		return j.Time{Nanos: ns}, nil
	case grammar.Datetime:
		ms, tz, err := temporal.ParseDatetime(t.Value)
		if err != nil {
			return nil, fmt.Errorf("LiteralError: %v", err)
		}
		return j.Datetime{Millis: ms, Timezone: tz}, nil
	case grammar.Timestamp:
		ns, tz, err := temporal.ParseTimestamp(t.Value)
		if err != nil {
			return nil, fmt.Errorf("LiteralError: %v", err)
		}
		return j.Timestamp{Nanos: ns, Timezone: tz}, nil
	case grammar.Duration:
		ns, err := temporal.ParseDuration(t.Value)
		if err != nil {
			return nil, fmt.Errorf("LiteralError: %v", err)
		}
		return j.Duration{Nanos: ns}, nil
	case grammar.CatRun:
		names := strings.Split(t.Value, "`")[1:]
		if len(names) == 1 {
			return j.Cat{Value: names[0]}, nil
		}
		return buildCatsSeries(names)
	case grammar.CatAlt:
		return j.Cat{Value: unquote(t.Value, '\'')}, nil
	case grammar.String:
		return j.String{Value: unquote(t.Value, '"')}, nil
	case grammar.Ident:
		if t.Value == "null" {
			return j.Null{}, nil
		}
		return nil, fmt.Errorf("LiteralError: %q is not a literal", t.Value)
	default:
		return nil, fmt.Errorf("LiteralError: %q is not a literal", t.Value)
	}
}

func unquote(text string, quote byte) string {
	if len(text) >= 2 {
		return text[1 : len(text)-1]
	}
	return text
}

func buildCatsSeries(names []string) (j.J, error) {
	s, err := columnar.NewCatSeries("", names, nil)
	if err != nil {
		return nil, err
	}
	return j.Series{S: s}, nil
}

// buildSeriesLiteral folds a multi-token run of scalar tokens into a
// typed j.Series per spec.md §4.6: the first non-empty, non-null token
// selects the dtype; later tokens disagreeing with that dtype fail with
// the offending literal in the message; a singleton run whose sole token
// is an empty string is the empty null series.
func buildSeriesLiteral(toks []grammar.Tok) (j.J, error) {
	if len(toks) == 1 && toks[0].Value == "" {
		return j.Series{S: columnar.NewNullSeries("", 1)}, nil
	}
	var dt seriesDType
	found := false
	for _, t := range toks {
		if isNullToken(t) {
			continue
		}
		d, err := classify(t)
		if err != nil {
			return nil, err
		}
		dt = d
		found = true
		break
	}
	if !found {
		return j.Series{S: columnar.NewNullSeries("", len(toks))}, nil
	}
	validity := make([]bool, len(toks))
	for i := range validity {
		validity[i] = !isNullToken(toks[i])
	}
	return buildTypedSeries(dt, toks, validity)
}

func buildTypedSeries(dt seriesDType, toks []grammar.Tok, validity []bool) (j.J, error) {
	switch dt.kind {
	case columnar.KindBoolean:
		vals := make([]bool, len(toks))
		for i, t := range toks {
			if !validity[i] {
				continue
			}
			if t.Value != "true" && t.Value != "false" && t.Value != "1b" && t.Value != "0b" {
				return nil, fmt.Errorf("SeriesTypeError: %q is not a bool literal", t.Value)
			}
			vals[i] = t.Value == "true" || t.Value == "1b"
		}
		s, err := columnar.NewBooleanSeries("", vals, validity)
		return wrap(s, err)
	case columnar.KindFloat32, columnar.KindFloat64:
		vals := make([]float64, len(toks))
		for i, t := range toks {
			if !validity[i] {
				continue
			}
			if t.Name != grammar.Decimal && t.Name != grammar.Integer {
				return nil, fmt.Errorf("SeriesTypeError: %q does not match float series dtype", t.Value)
			}
			_, suf := floatKind(t.Value)
			if suf == "" {
				if t.Name == grammar.Integer {
					_, isuf := intKind(t.Value)
					suf = isuf
				}
			}
			if suf != "" && suf != dt.suffix {
				return nil, fmt.Errorf("SeriesTypeError: %q does not match series dtype", t.Value)
			}
			f, err := strconv.ParseFloat(stripSuffix(t.Value, suf), 64)
			if err != nil {
				return nil, fmt.Errorf("LiteralError: invalid float literal %q", t.Value)
			}
			vals[i] = f
		}
		if dt.kind == columnar.KindFloat32 {
			narrow := make([]float32, len(vals))
			for i, v := range vals {
				narrow[i] = float32(v)
			}
			s, err := columnar.NewFloat32Series("", narrow, validity)
			return wrap(s, err)
		}
		s, err := columnar.NewFloat64Series("", vals, validity)
		return wrap(s, err)
	case columnar.KindDate:
		vals := make([]int32, len(toks))
		for i, t := range toks {
			if !validity[i] {
				continue
			}
			if t.Name != grammar.Date {
				return nil, fmt.Errorf("SeriesTypeError: %q is not a date literal", t.Value)
			}
			d, err := temporal.ParseDate(t.Value)
			if err != nil {
				return nil, fmt.Errorf("LiteralError: %v", err)
			}
			vals[i] = d
		}
		s, err := columnar.NewDateSeries("", vals, validity)
		return wrap(s, err)
	case columnar.KindTime:
		vals := make([]int64, len(toks))
		for i, t := range toks {
			if !validity[i] {
				continue
			}
			if t.Name != grammar.Time {
				return nil, fmt.Errorf("SeriesTypeError: %q is not a time literal", t.Value)
			}
			n, err := temporal.ParseTime(t.Value)
			if err != nil {
				return nil, fmt.Errorf("LiteralError: %v", err)
			}
			vals[i] = n
		}
		s, err := columnar.NewTimeSeries("", vals, validity)
		return wrap(s, err)
	case columnar.KindDatetime:
		vals := make([]int64, len(toks))
		tz := ""
		for i, t := range toks {
			if !validity[i] {
				continue
			}
			if t.Name != grammar.Datetime {
				return nil, fmt.Errorf("SeriesTypeError: %q is not a datetime literal", t.Value)
			}
			ms, z, err := temporal.ParseDatetime(t.Value)
			if err != nil {
				return nil, fmt.Errorf("LiteralError: %v", err)
			}
			vals[i] = ms
			tz = z
		}
		s, err := columnar.NewDatetimeSeries("", vals, columnar.Milliseconds, tz, validity)
		return wrap(s, err)
	case columnar.KindTimestamp:
		vals := make([]int64, len(toks))
		tz := ""
		for i, t := range toks {
			if !validity[i] {
				continue
			}
			if t.Name != grammar.Timestamp {
				return nil, fmt.Errorf("SeriesTypeError: %q is not a timestamp literal", t.Value)
			}
			ns, z, err := temporal.ParseTimestamp(t.Value)
			if err != nil {
				return nil, fmt.Errorf("LiteralError: %v", err)
			}
			vals[i] = ns
			tz = z
		}
		s, err := columnar.NewDatetimeSeries("", vals, columnar.Nanoseconds, tz, validity)
		return wrap(s, err)
	case columnar.KindDuration:
		vals := make([]int64, len(toks))
		for i, t := range toks {
			if !validity[i] {
				continue
			}
			if t.Name != grammar.Duration {
				return nil, fmt.Errorf("SeriesTypeError: %q is not a duration literal", t.Value)
			}
			n, err := temporal.ParseDuration(t.Value)
			if err != nil {
				return nil, fmt.Errorf("LiteralError: %v", err)
			}
			vals[i] = n
		}
		s, err := columnar.NewDurationSeries("", vals, columnar.Nanoseconds, validity)
		return wrap(s, err)
	case columnar.KindCategorical:
		vals := make([]string, len(toks))
		for i, t := range toks {
			if !validity[i] {
				continue
			}
			switch t.Name {
			case grammar.CatRun:
				names := strings.Split(t.Value, "`")[1:]
				if len(names) != 1 {
					return nil, fmt.Errorf("SeriesTypeError: %q is not a single symbol", t.Value)
				}
				vals[i] = names[0]
			case grammar.CatAlt:
				vals[i] = unquote(t.Value, '\'')
			default:
				return nil, fmt.Errorf("SeriesTypeError: %q is not a symbol literal", t.Value)
			}
		}
		s, err := columnar.NewCatSeries("", vals, validity)
		return wrap(s, err)
	case columnar.KindString:
		vals := make([]string, len(toks))
		for i, t := range toks {
			if !validity[i] {
				continue
			}
			if t.Name != grammar.String {
				return nil, fmt.Errorf("SeriesTypeError: %q is not a string literal", t.Value)
			}
			vals[i] = unquote(t.Value, '"')
		}
		s, err := columnar.NewStringSeries("", vals, validity)
		return wrap(s, err)
	case columnar.KindInt64, columnar.KindInt8, columnar.KindInt16, columnar.KindInt32,
		columnar.KindUint8, columnar.KindUint16, columnar.KindUint32, columnar.KindUint64:
		vals := make([]int64, len(toks))
		for i, t := range toks {
			if !validity[i] {
				continue
			}
			if t.Name != grammar.Integer {
				return nil, fmt.Errorf("SeriesTypeError: %q does not match series dtype %s", t.Value, dt.kind)
			}
			_, suf := intKind(t.Value)
			if suf != "" && suf != dt.suffix {
				return nil, fmt.Errorf("SeriesTypeError: %q does not match series dtype %s", t.Value, dt.kind)
			}
			n, err := strconv.ParseInt(stripSuffix(t.Value, suf), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("LiteralError: invalid integer literal %q", t.Value)
			}
			vals[i] = n
		}
		s, err := buildSizedIntSeries(dt.kind, vals, validity)
		return wrap(s, err)
	case columnar.KindNull:
		return j.Series{S: columnar.NewNullSeries("", len(toks))}, nil
	default:
		return nil, fmt.Errorf("LiteralError: unsupported series dtype")
	}
}

func wrap(s *columnar.Series, err error) (j.J, error) {
	if err != nil {
		return nil, err
	}
	return j.Series{S: s}, nil
}

// buildSizedIntSeries dispatches to the constructor matching kind, so a
// suffix like "i16" keeps its own width end to end rather than being
// widened to i64 (spec.md §8 worked example 2: "qty = 7i16 8 9" keeps
// dtype i16).
func buildSizedIntSeries(kind columnar.Kind, vals []int64, validity []bool) (*columnar.Series, error) {
	switch kind {
	case columnar.KindInt8:
		narrow := make([]int8, len(vals))
		for i, v := range vals {
			narrow[i] = int8(v)
		}
		return columnar.NewInt8Series("", narrow, validity)
	case columnar.KindInt16:
		narrow := make([]int16, len(vals))
		for i, v := range vals {
			narrow[i] = int16(v)
		}
		return columnar.NewInt16Series("", narrow, validity)
	case columnar.KindInt32:
		narrow := make([]int32, len(vals))
		for i, v := range vals {
			narrow[i] = int32(v)
		}
		return columnar.NewInt32Series("", narrow, validity)
	case columnar.KindUint8:
		narrow := make([]uint8, len(vals))
		for i, v := range vals {
			narrow[i] = uint8(v)
		}
		return columnar.NewUint8Series("", narrow, validity)
	case columnar.KindUint16:
		narrow := make([]uint16, len(vals))
		for i, v := range vals {
			narrow[i] = uint16(v)
		}
		return columnar.NewUint16Series("", narrow, validity)
	case columnar.KindUint32:
		narrow := make([]uint32, len(vals))
		for i, v := range vals {
			narrow[i] = uint32(v)
		}
		return columnar.NewUint32Series("", narrow, validity)
	case columnar.KindUint64:
		narrow := make([]uint64, len(vals))
		for i, v := range vals {
			narrow[i] = uint64(v)
		}
		return columnar.NewUint64Series("", narrow, validity)
	default:
		return columnar.NewInt64Series("", vals, validity)
	}
}
