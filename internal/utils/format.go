// internal/utils/format.go
package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var decimalPattern = regexp.MustCompile(`^[+-]?(\d+([.,]\d+)*|[.,]\d+)$`)

// FormatBRL renders an amount as "R$ 1234,50": two decimals, comma separator, no grouping.
func FormatBRL(amount float64) string {
	return "R$ " + FormatDecimalComma(amount)
}

func FormatDecimalComma(amount float64) string {
	return strings.Replace(strconv.FormatFloat(amount, 'f', 2, 64), ".", ",", 1)
}

// ParseDecimal reads plain decimal text with "." or "," as separators.
// When both appear the last one is the decimal point; a separator that repeats
// on its own groups thousands. Only finite values are returned.
func ParseDecimal(raw string) (float64, error) {
	text := strings.TrimSpace(raw)
	if !decimalPattern.MatchString(text) {
		return 0, fmt.Errorf("invalid decimal %q", raw)
	}

	decimalSep := ""
	lastDot, lastComma := strings.LastIndex(text, "."), strings.LastIndex(text, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		decimalSep = "."
		if lastComma > lastDot {
			decimalSep = ","
		}
	case lastDot >= 0 && strings.Count(text, ".") == 1:
		decimalSep = "."
	case lastComma >= 0 && strings.Count(text, ",") == 1:
		decimalSep = ","
	}

	var b strings.Builder
	for i, r := range text {
		switch {
		case r == '.' || r == ',':
			if decimalSep != "" && i == strings.LastIndex(text, decimalSep) {
				b.WriteByte('.')
			}
		default:
			b.WriteRune(r)
		}
	}

	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid decimal %q: %w", raw, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("invalid decimal %q", raw)
	}
	return value, nil
}
