package utils

import (
	"math"
	"strconv"
	"strings"
)

func formatInt(v int64) string { return strconv.FormatInt(v, 10) }

// FormatNumberWithCommas renders a rounded amount with thousands separators,
// e.g. 127500 -> "127,500".
func FormatNumberWithCommas(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}

func FormatPKR(v float64) string {
	return "Rs. " + FormatNumberWithCommas(v)
}
