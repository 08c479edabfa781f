package search

import (
	"strconv"
	"strings"
)

var (
	onesWords = []string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight",
		"nine", "ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
		"sixteen", "seventeen", "eighteen", "nineteen",
	}
	tensWords = []string{
		"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy",
		"eighty", "ninety",
	}
	scaleWords = []string{"", "thousand", "million", "billion", "trillion", "quadrillion", "quintillion"}
)

// IsNumeric reports whether s consists purely of ASCII digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NumberToWords converts a purely numeric query into its English words form,
// e.g. "404" -> "four hundred four". It is the isolated normalization step
// behind the numeric-query search fallback; keeping it pure makes the
// fallback trigger independently testable.
//
// Numbers too large for int64 are spelled digit by digit. Non-numeric input
// is returned unchanged.
func NumberToWords(s string) string {
	if !IsNumeric(s) {
		return s
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		digits := make([]string, 0, len(s))
		for _, r := range s {
			digits = append(digits, onesWords[r-'0'])
		}
		return strings.Join(digits, " ")
	}

	if n == 0 {
		return "zero"
	}

	// Decompose into groups of three digits, least significant first.
	var groups []int64
	for n > 0 {
		groups = append(groups, n%1000)
		n /= 1000
	}

	var parts []string
	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		if g == 0 {
			continue
		}
		part := hundredsToWords(g)
		if scaleWords[i] != "" {
			part += " " + scaleWords[i]
		}
		parts = append(parts, part)
	}

	return strings.Join(parts, " ")
}

func hundredsToWords(n int64) string {
	var parts []string

	if n >= 100 {
		parts = append(parts, onesWords[n/100], "hundred")
		n %= 100
	}

	switch {
	case n == 0:
	case n < 20:
		parts = append(parts, onesWords[n])
	default:
		tens := tensWords[n/10]
		if n%10 != 0 {
			tens += "-" + onesWords[n%10]
		}
		parts = append(parts, tens)
	}

	return strings.Join(parts, " ")
}
