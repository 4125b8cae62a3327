package costing

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// NormalizeCell coerces a free-form currency-like value into a float.
// Anything that cannot be read as a number becomes 0.
func NormalizeCell(v any) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		return finite(val)
	case float32:
		return finite(float64(val))
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case int32:
		return float64(val)
	case uint:
		return float64(val)
	case uint64:
		return float64(val)
	case decimal.Decimal:
		return finite(val.InexactFloat64())
	case string:
		return parseNumeric(val)
	case []byte:
		return parseNumeric(string(val))
	default:
		return parseNumeric(fmt.Sprint(val))
	}
}

// NormalizeColumn applies NormalizeCell to every value, preserving length.
func NormalizeColumn(values []string) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = parseNumeric(v)
	}
	return out
}

func parseNumeric(s string) float64 {
	cleaned := cleanNumeric(s)
	if cleaned == "" {
		return 0
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	return finite(d.InexactFloat64())
}

// cleanNumeric drops currency symbols and whitespace and resolves the
// decimal mark. With both '.' and ',' present the rightmost one is the
// decimal mark. A lone comma followed by one or two digits is a decimal
// comma ("2,75"); any other comma groups thousands.
func cleanNumeric(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '$' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')

	switch {
	case lastComma < 0:
		return s
	case lastDot >= 0 && lastDot > lastComma:
		return strings.ReplaceAll(s, ",", "")
	case lastDot >= 0:
		s = strings.ReplaceAll(s, ".", "")
		return strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ",") == 1 && isDecimalTail(s[lastComma+1:]):
		return strings.Replace(s, ",", ".", 1)
	default:
		return strings.ReplaceAll(s, ",", "")
	}
}

func isDecimalTail(tail string) bool {
	if len(tail) == 0 || len(tail) > 2 {
		return false
	}
	for _, r := range tail {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
