package sanitize

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-termmeta/pkg/field"
)

var (
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
)

// Number parses raw as an integer, or as a decimal when the field's step is
// fractional, then clamps to the declared bounds. Unparseable input reads as
// zero; blank input yields "" so the stored entry is removed.
func Number(raw string, n field.Number) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if n.IsDecimal() {
		value := ParseFloat(trimmed)
		return formatFloat(clamp(value, n))
	}

	value := ParseInt(trimmed)
	asFloat := float64(value)
	if clamped := clamp(asFloat, n); clamped != asFloat {
		return formatFloat(clamped)
	}
	return strconv.FormatInt(value, 10)
}

// ParseInt reads the leading integer of s, ignoring any trailing text.
// "10.7" reads as 10 and "abc" as 0.
func ParseInt(s string) int64 {
	match := leadingInt.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0
	}
	value, err := strconv.ParseInt(match, 10, 64)
	if err != nil {
		if strings.HasPrefix(match, "-") {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return value
}

// ParseFloat reads the leading decimal of s, ignoring any trailing text.
func ParseFloat(s string) float64 {
	match := leadingFloat.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return value
}

// clamp applies the declared bounds. Overflowed input past an unset bound
// saturates at the largest finite float.
func clamp(value float64, n field.Number) float64 {
	if n.Min != nil && value < *n.Min {
		value = *n.Min
	}
	if n.Max != nil && value > *n.Max {
		value = *n.Max
	}
	switch {
	case math.IsInf(value, 1):
		value = math.MaxFloat64
	case math.IsInf(value, -1):
		value = -math.MaxFloat64
	}
	return value
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
