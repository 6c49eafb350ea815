package j

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeNameStableDomainNames(t *testing.T) {
	cases := []struct {
		v    J
		want string
	}{
		{Boolean{Value: true}, "bool"},
		{I64{Value: 1}, "i64"},
		{F64{Value: 1}, "f64"},
		{String{Value: "x"}, "str"},
		{Cat{Value: "x"}, "sym"},
		{Date{Days: 0}, "date"},
		{Time{Nanos: 0}, "time"},
		{Datetime{Millis: 0}, "datetime"},
		{Timestamp{Nanos: 0}, "timestamp"},
		{Duration{Nanos: 0}, "duration"},
		{Null{}, "null"},
		{MixedList{}, "list"},
		{Dict{}, "dict"},
		{Err{}, "err"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, TypeName(c.v))
	}
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric(I64{Value: 1}))
	assert.True(t, IsNumeric(F64{Value: 1}))
	assert.False(t, IsNumeric(Boolean{Value: true}))
	assert.False(t, IsNumeric(String{Value: "1"}))
}

func TestIsBool(t *testing.T) {
	assert.True(t, IsBool(Boolean{Value: false}))
	assert.False(t, IsBool(I64{Value: 0}))
}

func TestIntoSeriesLiftsScalars(t *testing.T) {
	s, err := IntoSeries(I64{Value: 42})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	vals, err := s.Int64Values()
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, vals)
}

func TestIntoSeriesFailsForComposites(t *testing.T) {
	_, err := IntoSeries(MixedList{Values: []J{I64{Value: 1}}})
	assert.Error(t, err)
}
