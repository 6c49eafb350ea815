// Package temporal implements the date/time/datetime/timestamp/duration
// literal codec (C2): parsing source text to the integer representations
// the value model (j.J) stores, with the exact unit and epoch conventions
// spec.md §3.1/§4.2 requires.
//
// The general shape — validate each field, accumulate an integer, fail with
// the offending text in the error message — follows gravwell/timegrinder's
// TimeGrinder.Extract, the closest ambient precedent in the pack for
// "parse a handful of time formats to an integer, cheaply, without a full
// calendar library's error-recovery machinery".
package temporal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// UnixEpochDay is the day number of 1970-01-01 when 0001-01-01 (proleptic
// Gregorian, "CE year 1") is counted as day 1. Subtracted from a Gregorian day count to
// produce the UNIX epoch-relative Date representation (spec.md §3.1).
const UnixEpochDay = 719_163

// NsInDay is the number of nanoseconds in one day, used by Time bounds
// checking and the Duration day-form subtraction rule (spec.md §3.1/§4.2).
const NsInDay int64 = 86_400_000_000_000

// ParseDate parses a "YYYY-MM-DD" literal and returns days since
// 1970-01-01 (the caller never needs to subtract UnixEpochDay separately;
// this function already does it).
func ParseDate(s string) (int32, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, fmt.Errorf("invalid date literal %q: %w", s, err)
	}
	days := gregorianDayNumber(t) - UnixEpochDay
	return int32(days), nil
}

// gregorianDayNumber returns the day number of t counted from CE year 1,
// with 0001-01-01 as day 1 (so 1970-01-01 is UnixEpochDay), for a date
// constructed via time.Parse with no location offset.
func gregorianDayNumber(t time.Time) int64 {
	return t.Unix()/86_400 + UnixEpochDay
}

// ParseTime parses "HH:MM:SS(.frac<=9)" and returns nanoseconds within the
// day, in [0, NsInDay). The fractional part is right-padded with zeros to 9
// digits before being parsed, so ".123" means 123 milliseconds, not 123
// nanoseconds.
func ParseTime(s string) (int64, error) {
	hh, mm, ss, fracNs, err := splitClock(s)
	if err != nil {
		return 0, fmt.Errorf("invalid time literal %q: %w", s, err)
	}
	if hh > 23 {
		return 0, fmt.Errorf("invalid time literal %q: hour %d out of range", s, hh)
	}
	if mm > 59 {
		return 0, fmt.Errorf("invalid time literal %q: minute %d out of range", s, mm)
	}
	if ss > 59 {
		return 0, fmt.Errorf("invalid time literal %q: second %d out of range", s, ss)
	}
	total := int64(hh)*3600_000_000_000 + int64(mm)*60_000_000_000 + int64(ss)*1_000_000_000 + fracNs
	if total < 0 || total >= NsInDay {
		return 0, fmt.Errorf("invalid time literal %q: out of day bounds", s)
	}
	return total, nil
}

// splitClock parses "HH:MM:SS(.frac)?" into its integer fields.
func splitClock(s string) (hh, mm, ss int, fracNs int64, err error) {
	main := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		main = s[:i]
		frac = s[i+1:]
		if len(frac) > 9 {
			return 0, 0, 0, 0, fmt.Errorf("fractional part has more than 9 digits")
		}
	}
	parts := strings.Split(main, ":")
	if len(parts) != 3 {
		return 0, 0, 0, 0, fmt.Errorf("expected HH:MM:SS")
	}
	hh, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	mm, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	ss, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	padded := (frac + "000000000")[:9]
	fracVal, err := strconv.ParseInt(padded, 10, 64)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return hh, mm, ss, fracVal, nil
}

// LocalZoneCapture returns the local timezone name as it should be
// captured at parse time (spec.md §5: "the local timezone is read once per
// literal"). Implementations that defer this to evaluation time diverge;
// this function is the single point where that read happens.
//
// The name is Go's name for time.Local: the zone the TZ environment
// variable names when TZ is set (for example "Europe/Paris", or "UTC"),
// and "Local" when the zone comes from the system's /etc/localtime. That
// last value is not an IANA zone name; no lookup of the system zone's
// IANA name is made.
func LocalZoneCapture() string {
	name, _ := time.Now().Zone()
	if loc := time.Local; loc != nil && loc.String() != "" {
		return loc.String()
	}
	return name
}

// ParseDatetime parses "YYYY-MM-DDTHH:MM:SS(.frac<=3)?" (a trailing bare
// "T" expands to "T00:00:00.0") and returns milliseconds since the UNIX
// epoch, interpreted in the local timezone captured at call time. The
// returned timezone name must accompany the value (j.Datetime.Timezone).
func ParseDatetime(s string) (ms int64, tz string, err error) {
	if strings.HasSuffix(s, "T") {
		s += "00:00:00.0"
	}
	parts := strings.SplitN(s, "T", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("invalid datetime literal %q: missing 'T'", s)
	}
	days, err := ParseDate(parts[0])
	if err != nil {
		return 0, "", fmt.Errorf("invalid datetime literal %q: %w", s, err)
	}
	timePart := parts[1]
	if i := strings.IndexByte(timePart, '.'); i >= 0 && len(timePart)-i-1 > 3 {
		return 0, "", fmt.Errorf("invalid datetime literal %q: fractional part exceeds 3 digits", s)
	}
	ns, err := ParseTime(timePart)
	if err != nil {
		return 0, "", fmt.Errorf("invalid datetime literal %q: %w", s, err)
	}
	tz = LocalZoneCapture()
	wall := time.UnixMilli(int64(days)*86_400_000 + ns/1_000_000).UTC()
	local := time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), time.Local)
	return local.UnixMilli(), tz, nil
}

// ParseTimestamp parses "YYYY-MM-DDDHH:MM:SS(.frac<=9)?" (a trailing bare
// "D" expands to "D00:00:00.0") and returns nanoseconds since the UNIX
// epoch in the local timezone captured at call time.
func ParseTimestamp(s string) (ns int64, tz string, err error) {
	if strings.HasSuffix(s, "D") {
		s += "00:00:00.0"
	}
	idx := strings.IndexByte(s, 'D')
	if idx < 0 {
		return 0, "", fmt.Errorf("invalid timestamp literal %q: missing 'D'", s)
	}
	days, err := ParseDate(s[:idx])
	if err != nil {
		return 0, "", fmt.Errorf("invalid timestamp literal %q: %w", s, err)
	}
	timeNs, err := ParseTime(s[idx+1:])
	if err != nil {
		return 0, "", fmt.Errorf("invalid timestamp literal %q: %w", s, err)
	}
	tz = LocalZoneCapture()
	wall := time.Unix(0, int64(days)*NsInDay+timeNs).UTC()
	local := time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), time.Local)
	return local.UnixNano(), tz, nil
}

// ParseDuration parses either a suffixed form ("Nns"/"Ns"/"Nm"/"Nh") or the
// day-form "[-]?ND HH:MM:SS(.frac<=9)?" and returns signed nanoseconds. For
// a negative day-form count, the intra-day nanoseconds are subtracted from
// N*NsInDay rather than added (spec.md §3.1), so "-0D23:59:59" is
// -86_399e9, not -86_401e9.
func ParseDuration(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, ok := trySuffixed(s, "ns", 1); ok {
		return n, nil
	}
	if n, ok := trySuffixed(s, "s", 1_000_000_000); ok {
		return n, nil
	}
	if n, ok := trySuffixed(s, "m", 60*1_000_000_000); ok {
		return n, nil
	}
	if n, ok := trySuffixed(s, "h", 3600*1_000_000_000); ok {
		return n, nil
	}
	return parseDayForm(s)
}

func trySuffixed(s, suffix string, unitNs int64) (int64, bool) {
	if !strings.HasSuffix(s, suffix) {
		return 0, false
	}
	numPart := strings.TrimSuffix(s, suffix)
	if numPart == "" {
		return 0, false
	}
	// Reject day-form strings like "23:59:59" masquerading as suffixed by
	// virtue of ending in a letter that happens to match; day-form never
	// contains a bare numeric-only prefix with no 'D' separator before a
	// unit suffix, so a ':' in numPart means this wasn't a suffix form.
	if strings.ContainsAny(numPart, ":D") {
		return 0, false
	}
	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, false
	}
	return n * unitNs, true
}

func parseDayForm(s string) (int64, error) {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	idx := strings.IndexByte(s, 'D')
	if idx < 0 {
		return 0, fmt.Errorf("invalid duration literal %q", s)
	}
	days, err := strconv.ParseInt(s[:idx], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration literal %q: %w", s, err)
	}
	intraDay, err := ParseTime(s[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("invalid duration literal %q: %w", s, err)
	}
	if neg {
		return -(days*NsInDay + intraDay), nil
	}
	return days*NsInDay + intraDay, nil
}
