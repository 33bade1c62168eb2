// Package dates canonicalizes the order-date encodings the backend has been
// observed to emit. The same logical timestamp arrives as a plain ISO string,
// as Jackson's component array for OffsetDateTime
// ([year, month, day, hour, minute, second, nanos, offsetSeconds]), or as a
// raw epoch-seconds float. Canonicalization never fails: anything
// unrecognizable is replaced with the current time so rendering can proceed.
package dates

import (
	"encoding/json"
	"log"
	"math"
	"time"
)

// Kind discriminates the wire shapes a date value can arrive in.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindArray
	KindNumber
)

// canonical output format, millisecond precision with a UTC designator.
const canonicalLayout = "2006-01-02T15:04:05.000Z07:00"

// string inputs may carry an offset, be a bare LocalDateTime, or a bare date.
var stringLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

var timeNow = time.Now

// Timestamp is an order date as received from the backend. Decoding
// canonicalizes immediately; the zero value renders as an empty string.
type Timestamp struct {
	value string
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	// Absent and explicit-null fields both read as the zero Timestamp;
	// fallback-to-now is reserved for values that claim to be dates.
	if string(b) == "null" {
		return nil
	}
	t.value = Canonicalize(b)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

func (t Timestamp) String() string {
	return t.value
}

// Time parses the canonical value back into a time.Time. ok is false for the
// zero Timestamp.
func (t Timestamp) Time() (time.Time, bool) {
	if t.value == "" {
		return time.Time{}, false
	}
	for _, layout := range stringLayouts {
		if parsed, err := time.Parse(layout, t.value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// Canonicalize converts a raw JSON date value into a single ISO-8601 string.
// Unrecognizable input falls back to the current time.
func Canonicalize(raw json.RawMessage) string {
	return CanonicalizeAt(raw, timeNow())
}

// CanonicalizeAt is Canonicalize with an explicit fallback instant.
func CanonicalizeAt(raw json.RawMessage, now time.Time) string {
	s, kind := convert(raw)
	if kind == KindInvalid {
		log.Printf("dates: unrecognized order date %s, substituting current time", raw)
		return now.UTC().Format(canonicalLayout)
	}
	return s
}

// DetectKind reports which wire shape the raw value decodes as, without
// producing output.
func DetectKind(raw json.RawMessage) Kind {
	_, kind := convert(raw)
	return kind
}

func convert(raw json.RawMessage) (string, Kind) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", KindInvalid
	}

	switch date := v.(type) {
	case string:
		return convertString(date)
	case []any:
		return convertArray(date)
	case float64:
		return convertEpochSeconds(date)
	default:
		return "", KindInvalid
	}
}

// convertString accepts an already well-formed date string and returns it
// unchanged. Strings parsing to a pre-2000 instant are rejected; the backend
// never legitimately emits them, so they indicate an encoding bug upstream.
func convertString(s string) (string, Kind) {
	for _, layout := range stringLayouts {
		parsed, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if parsed.Year() < 2000 {
			return "", KindInvalid
		}
		return s, KindString
	}
	return "", KindInvalid
}

// convertArray decodes Jackson's positional form. Trailing elements past the
// seconds slot (nanos, offset) are ignored.
func convertArray(parts []any) (string, Kind) {
	if len(parts) < 3 {
		return "", KindInvalid
	}

	nums := make([]int, 0, 6)
	for i := 0; i < len(parts) && i < 6; i++ {
		f, ok := parts[i].(float64)
		if !ok {
			return "", KindInvalid
		}
		nums = append(nums, int(f))
	}
	for len(nums) < 6 {
		nums = append(nums, 0)
	}

	year, month, day := nums[0], nums[1], nums[2]
	if year < 2000 || year > 2100 || month < 1 || month > 12 || day < 1 || day > 31 {
		return "", KindInvalid
	}

	t := time.Date(year, time.Month(month), day, nums[3], nums[4], nums[5], 0, time.UTC)
	// time.Date normalizes out-of-range components; a shifted year means the
	// input did not encode a real calendar date.
	if t.Year() != year {
		return "", KindInvalid
	}

	return t.Format(canonicalLayout), KindArray
}

// convertEpochSeconds handles the raw-float form. The value is seconds, not
// milliseconds; the fractional part carries sub-second precision.
func convertEpochSeconds(seconds float64) (string, Kind) {
	// Round rather than truncate: the seconds-to-millis product can land a
	// fraction below the intended integer.
	t := time.UnixMilli(int64(math.Round(seconds * 1000))).UTC()
	if t.Year() < 2000 {
		return "", KindInvalid
	}
	return t.Format(canonicalLayout), KindNumber
}
