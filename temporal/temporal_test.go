package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	days, err := ParseDate("1970-01-01")
	require.NoError(t, err)
	assert.Equal(t, int32(0), days)
}

func TestParseTimeFractionalRightPad(t *testing.T) {
	ns, err := ParseTime("00:00:00.123")
	require.NoError(t, err)
	assert.Equal(t, int64(123_000_000), ns)
}

func TestParseTimeRejectsOutOfRangeFields(t *testing.T) {
	_, err := ParseTime("24:00:00")
	assert.Error(t, err)
}

func TestParseDatetimeTrailingT(t *testing.T) {
	ms, _, err := ParseDatetime("2024-01-02T")
	require.NoError(t, err)

	expected, _, err2 := ParseDatetime("2024-01-02T00:00:00.0")
	require.NoError(t, err2)
	assert.Equal(t, expected, ms)
}

func TestParseTimestampTrailingD(t *testing.T) {
	ns, _, err := ParseTimestamp("2024-01-02D")
	require.NoError(t, err)

	expected, _, err2 := ParseTimestamp("2024-01-02D00:00:00.0")
	require.NoError(t, err2)
	assert.Equal(t, expected, ns)
}

func TestParseDurationSuffixForms(t *testing.T) {
	cases := map[string]int64{
		"5ns": 5,
		"2s":  2_000_000_000,
		"3m":  180_000_000_000,
		"1h":  3_600_000_000_000,
	}
	for in, want := range cases {
		got, err := ParseDuration(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

// TestParseDurationNegativeDayForm pins the worked example from spec.md
// §3.1: a negative-day duration of "-0D23:59:59" is minus 23h59m59s (one
// second short of minus one day), not negative-zero-days-plus-positive-time.
func TestParseDurationNegativeDayForm(t *testing.T) {
	got, err := ParseDuration("-0D23:59:59")
	require.NoError(t, err)
	assert.Equal(t, int64(-86_399_000_000_000), got)
}

func TestParseDurationPositiveDayForm(t *testing.T) {
	got, err := ParseDuration("1D00:00:01")
	require.NoError(t, err)
	assert.Equal(t, NsInDay+1_000_000_000, got)
}
