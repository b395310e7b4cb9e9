// Package pricing turns free-text prices produced by the model into validated
// numbers and derives booking totals from them.
package pricing

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var ErrUnparseablePrice = errors.New("price could not be parsed")

// A minus sign only counts when it opens the text or follows whitespace, so
// the dash of "25,000-50,000" is never read as a sign.
const (
	signedNumber = `(?:(?:^|\s)([-−]))?(\d[\d,]*(?:\.\d+)?)`
	rangeDash    = `\s*(?:-|–|—|to)\s*(?:(?i:rs\.?|pkr|usd|\$)\s*)?`
)

var (
	rangePattern  = regexp.MustCompile(signedNumber + rangeDash + signedNumber)
	singlePattern = regexp.MustCompile(signedNumber)
)

// Extractor parses price text. Offset is added to the midpoint of a range and
// only to ranges; a lone number is taken as is.
type Extractor struct {
	Offset float64
}

// HotelRates converts a hotel's nightly price range, adding the booking fee.
func HotelRates(offset float64) Extractor {
	return Extractor{Offset: offset}
}

// RideCosts converts a ride cost. No fee is added.
var RideCosts = Extractor{}

// Extract returns the normalized price of text or ErrUnparseablePrice.
func (e Extractor) Extract(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrUnparseablePrice
	}

	if low, high, ok := bounds(text); ok {
		return (low+high)/2 + e.Offset, nil
	}

	if m := singlePattern.FindStringSubmatch(text); m != nil {
		if v, ok := parseAmount(m[1], m[2]); ok {
			return v, nil
		}
	}
	return 0, ErrUnparseablePrice
}

// ExtractWithFallback tries each candidate in order and returns the first
// value that parses. Candidates are typically the range text followed by a
// separate price field.
func (e Extractor) ExtractWithFallback(candidates ...string) (float64, error) {
	for _, c := range candidates {
		if v, err := e.Extract(c); err == nil {
			return v, nil
		}
	}
	return 0, ErrUnparseablePrice
}

// bounds returns the two ends of a range without the offset applied.
func bounds(text string) (low, high float64, ok bool) {
	m := rangePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	low, okLow := parseAmount(m[1], m[2])
	high, okHigh := parseAmount(m[3], m[4])
	if !okLow || !okHigh {
		return 0, 0, false
	}
	return low, high, true
}

func parseAmount(sign, digits string) (float64, bool) {
	if sign != "" {
		return 0, false
	}
	return parsePositive(digits)
}

func parsePositive(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !IsValidAmount(v) {
		return 0, false
	}
	return v, true
}

// IsValidAmount reports whether v is a finite, strictly positive amount.
func IsValidAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
