package dates

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fallback = time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)

func TestCanonicalize_ValidISOStringUnchanged(t *testing.T) {
	got := CanonicalizeAt(json.RawMessage(`"2025-06-01T10:00:00Z"`), fallback)
	assert.Equal(t, "2025-06-01T10:00:00Z", got)
}

func TestCanonicalize_LocalDateTimeStringUnchanged(t *testing.T) {
	// Jackson's LocalDateTime form has no offset designator.
	got := CanonicalizeAt(json.RawMessage(`"2025-06-01T10:00:00"`), fallback)
	assert.Equal(t, "2025-06-01T10:00:00", got)
}

func TestCanonicalize_ComponentArray(t *testing.T) {
	got := CanonicalizeAt(json.RawMessage(`[2025, 12, 6, 14, 32, 2]`), fallback)
	assert.Equal(t, "2025-12-06T14:32:02.000Z", got)
}

func TestCanonicalize_ComponentArrayIgnoresNanosAndOffset(t *testing.T) {
	got := CanonicalizeAt(json.RawMessage(`[2025, 12, 6, 14, 32, 2, 411578000, -21600]`), fallback)
	assert.Equal(t, "2025-12-06T14:32:02.000Z", got)
}

func TestCanonicalize_ComponentArrayDateOnly(t *testing.T) {
	got := CanonicalizeAt(json.RawMessage(`[2025, 3, 9]`), fallback)
	assert.Equal(t, "2025-03-09T00:00:00.000Z", got)
}

func TestCanonicalize_EpochSeconds(t *testing.T) {
	got := CanonicalizeAt(json.RawMessage(`1762462416.848`), fallback)

	want := time.UnixMilli(1762462416848).UTC()
	parsed, err := time.Parse(time.RFC3339Nano, got)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(want), "expected %v, got %v", want, parsed)
}

func TestCanonicalize_FallsBackToNow(t *testing.T) {
	cases := map[string]string{
		"pre-2000 array":       `[1987, 3, 1]`,
		"garbage string":       `"not-a-date"`,
		"pre-2000 string":      `"1970-01-01T00:00:00Z"`,
		"pre-2000 epoch":       `12345.0`,
		"null":                 `null`,
		"object":               `{"year": 2025}`,
		"short array":          `[2025, 6]`,
		"non-numeric array":    `[2025, "12", 6]`,
		"month out of range":   `[2025, 13, 6]`,
		"day out of range":     `[2025, 12, 0]`,
		"year above 2100":      `[2101, 1, 1]`,
		"non-round-trip array": `[2100, 12, 31, 24, 0, 0]`,
	}

	want := fallback.Format(canonicalLayout)
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, CanonicalizeAt(json.RawMessage(raw), fallback))
		})
	}
}

func TestDetectKind(t *testing.T) {
	assert.Equal(t, KindString, DetectKind(json.RawMessage(`"2025-06-01T10:00:00Z"`)))
	assert.Equal(t, KindArray, DetectKind(json.RawMessage(`[2025, 12, 6]`)))
	assert.Equal(t, KindNumber, DetectKind(json.RawMessage(`1762462416.848`)))
	assert.Equal(t, KindInvalid, DetectKind(json.RawMessage(`true`)))
}

func TestTimestamp_DecodesInsideStruct(t *testing.T) {
	var payload struct {
		OrderDate Timestamp `json:"orderDate"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"orderDate": [2025, 12, 6, 14, 32, 2]}`), &payload))
	assert.Equal(t, "2025-12-06T14:32:02.000Z", payload.OrderDate.String())

	parsed, ok := payload.OrderDate.Time()
	require.True(t, ok)
	assert.Equal(t, 2025, parsed.Year())
}

func TestTimestamp_NeverErrorsOnGarbage(t *testing.T) {
	var payload struct {
		OrderDate Timestamp `json:"orderDate"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"orderDate": {"bad": true}}`), &payload))
	assert.NotEmpty(t, payload.OrderDate.String())
}

func TestTimestamp_ZeroValue(t *testing.T) {
	var ts Timestamp
	assert.Equal(t, "", ts.String())
	_, ok := ts.Time()
	assert.False(t, ok)
}

func TestTimestamp_NullStaysZero(t *testing.T) {
	var payload struct {
		ExpiryDate Timestamp `json:"expiryDate"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"expiryDate": null}`), &payload))
	assert.Equal(t, "", payload.ExpiryDate.String())
}

func TestTimestamp_MarshalRoundTrip(t *testing.T) {
	var ts Timestamp
	require.NoError(t, ts.UnmarshalJSON([]byte(`"2025-06-01T10:00:00Z"`)))

	out, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-01T10:00:00Z"`, string(out))
}
