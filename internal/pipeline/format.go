package pipeline

import (
	"math"
	"strconv"
	"strings"
)

// RoundFloat rounds v to the given number of decimal places.
func RoundFloat(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(v)
	}

	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

// FormatFloat renders v with the shortest representation that round-trips.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatThousands formats v with ',' as thousands separator and '.' as
// decimal separator, always printing the requested decimals.
// Example: 1234.5 (2 decimals) => "1,234.50"; 1000 (0 decimals) => "1,000".
func FormatThousands(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}

	neg := v < 0
	if neg {
		v = -v
	}

	s := strconv.FormatFloat(v, 'f', decimals, 64)
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}

	// format integer part with comma as thousands separator
	if len(intPart) > 3 {
		var buf []byte
		count := 0
		for i := len(intPart) - 1; i >= 0; i-- {
			buf = append(buf, intPart[i])
			count++
			if count == 3 && i != 0 {
				buf = append(buf, ',')
				count = 0
			}
		}
		// reverse buf
		for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
			buf[i], buf[j] = buf[j], buf[i]
		}
		intPart = string(buf)
	}

	prefix := ""
	if neg && strings.Trim(intPart+fracPart, "0,") != "" {
		prefix = "-"
	}

	if fracPart == "" {
		return prefix + intPart
	}
	return prefix + intPart + "." + fracPart
}

// FormatMoney formats v as a dollar amount, e.g. "$1,234.50".
func FormatMoney(v float64, decimals int) string {
	s := FormatThousands(v, decimals)
	if strings.HasPrefix(s, "-") {
		return "-$" + s[1:]
	}
	return "$" + s
}

// FormatPercent formats a ratio as a percentage with one decimal,
// e.g. 0.142857 => "14.3%".
func FormatPercent(ratio float64) string {
	return strconv.FormatFloat(ratio*100, 'f', 1, 64) + "%"
}
