package codec

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/mumingpo/primate"
	"github.com/mumingpo/primate/strict"
	js "github.com/mumingpo/primate/jsonschema"
)

// ISOLayout renders instants the way an ISO-8601 timestamp with millisecond
// precision does: always UTC, always three fractional digits.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// maxEpochMillis bounds the representable instants to ±100,000,000 days
// around the Unix epoch, the range of an ECMAScript Date.
const maxEpochMillis = 8.64e15

var (
	minTime = time.UnixMilli(-maxEpochMillis).UTC()
	maxTime = time.UnixMilli(maxEpochMillis).UTC()
)

var timeCodec = primate.Primitive(serializeTime, deserializeTime).
	Named("dateCodec").
	WithSchema(&js.Schema{Type: "string", Format: "date-time"})

// Time returns a codec between time.Time and ISO-8601 strings.
//
// Deserialize accepts RFC 3339 strings (with or without fractional seconds),
// plain dates ("2006-01-02", read as UTC midnight) and numbers, which are
// read as milliseconds since the Unix epoch. Years outside 0..9999 use the
// expanded form "+012000-01-01T00:00:00.000Z" in both directions.
func Time() *primate.PrimitiveCodec[time.Time, string] { return timeCodec }

func serializeTime(t time.Time) (string, error) {
	// Normalize to UTC; sub-millisecond precision is dropped.
	t = t.UTC()
	if t.Before(minTime) || t.After(maxTime) {
		return "", primate.NewError("dateCodec", primate.OpSerialize, primate.CodeInvalidFormat, map[string]string{
			"value":    t.Format(time.RFC3339),
			"expected": "a date within the representable range",
		})
	}
	if y := t.Year(); y < 0 || y > 9999 {
		sign := "+"
		if y < 0 {
			sign, y = "-", -y
		}
		return fmt.Sprintf("%s%06d", sign, y) + t.Format(ISOLayout[4:]), nil
	}
	return t.Format(ISOLayout), nil
}

func deserializeTime(raw any) (time.Time, error) {
	if ms, ok := strict.AsFloat(raw); ok {
		if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxEpochMillis {
			return time.Time{}, invalidTime(raw, nil)
		}
		return time.UnixMilli(int64(ms)).UTC(), nil
	}
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, invalidTime(raw, nil)
	}
	t, err := parseTime(s)
	if err != nil {
		return time.Time{}, invalidTime(raw, err)
	}
	if t.Before(minTime) || t.After(maxTime) {
		return time.Time{}, invalidTime(raw, nil)
	}
	return t, nil
}

func parseTime(s string) (time.Time, error) {
	if len(s) > 7 && (s[0] == '+' || s[0] == '-') && s[7] == '-' {
		return parseExpandedYear(s)
	}
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t, nil
	}
	if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
		return t2, nil
	}
	if t3, err3 := time.Parse(time.DateOnly, s); err3 == nil {
		return t3, nil
	}
	return time.Time{}, err
}

// parseExpandedYear reads "+YYYYYY-MM-DDTHH:MM:SS.sssZ". The remainder is
// parsed against a leap year and the calendar date is then checked against
// the real year.
func parseExpandedYear(s string) (time.Time, error) {
	year, err := strconv.Atoi(s[1:7])
	if err != nil {
		return time.Time{}, err
	}
	if s[0] == '-' {
		year = -year
	}
	rest, err := time.Parse(time.RFC3339Nano, "2000"+s[7:])
	if err != nil {
		return time.Time{}, err
	}
	rest = rest.UTC()
	t := time.Date(year, rest.Month(), rest.Day(), rest.Hour(), rest.Minute(), rest.Second(), rest.Nanosecond(), time.UTC)
	if t.Month() != rest.Month() || t.Day() != rest.Day() {
		return time.Time{}, fmt.Errorf("day %d out of range for %d-%02d", rest.Day(), year, rest.Month())
	}
	return t, nil
}

func invalidTime(raw any, cause error) error {
	e := primate.NewError("dateCodec", primate.OpDeserialize, primate.CodeInvalidFormat, map[string]string{
		"value":    fmt.Sprint(raw),
		"expected": "a date",
	})
	e.Cause = cause
	return e
}
