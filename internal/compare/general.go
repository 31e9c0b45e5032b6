// SPDX-License-Identifier: MPL-2.0

package compare

import (
	"errors"
	"math"
	"strconv"
)

// General compares the leading floating-point numbers of a and b, in the
// syntax accepted by strtod: optional sign, decimal mantissa, optional
// exponent, or one of "inf", "infinity" and "nan" in any case. Text with no
// number sorts first, two such texts are equal, and NaNs sort after every
// other number, ordered among themselves by bit pattern. -0 equals +0.
func General(a, b []byte) int {
	fa, okA := parseFloatPrefix(a)
	fb, okB := parseFloatPrefix(b)
	switch {
	case !okA:
		if !okB {
			return 0
		}
		return -1
	case !okB:
		return 1
	}

	nanA, nanB := math.IsNaN(fa), math.IsNaN(fb)
	switch {
	case nanA && nanB:
		ba, bb := math.Float64bits(fa), math.Float64bits(fb)
		switch {
		case ba < bb:
			return -1
		case ba > bb:
			return 1
		default:
			return 0
		}
	case nanA:
		return 1
	case nanB:
		return -1
	case fa < fb:
		return -1
	case fa > fb:
		return 1
	default:
		return 0
	}
}

// parseFloatPrefix parses the longest floating-point prefix of s after
// leading white space. ok is false when s does not start with a number.
func parseFloatPrefix(s []byte) (v float64, ok bool) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	if hasWordPrefix(s[i:], "inf") {
		return signed(s[start], math.Inf(1)), true
	}
	if hasWordPrefix(s[i:], "nan") {
		return math.NaN(), true
	}

	digits := 0
	for i < len(s) && isDigit(int(s[i])) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(int(s[i])) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	end := i

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s) && isDigit(int(s[j])) {
			j++
			expDigits++
		}
		if expDigits > 0 {
			end = j
		}
	}

	v, err := strconv.ParseFloat(string(s[start:end]), 64)
	if err != nil {
		// Out of range values come back as ±Inf or zero, which is what
		// strtod yields as well.
		if !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
	}
	return v, true
}

func signed(c byte, v float64) float64 {
	if c == '-' {
		return -v
	}
	return v
}

// hasWordPrefix reports whether s starts with word, ignoring ASCII case.
// "inf" also covers "infinity".
func hasWordPrefix(s []byte, word string) bool {
	if len(s) < len(word) {
		return false
	}
	for i := range len(word) {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != word[i] {
			return false
		}
	}
	return true
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}
