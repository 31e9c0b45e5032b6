// SPDX-License-Identifier: MPL-2.0

package compare

// NoThousandsSeparator disables digit grouping in numeric comparison.
const NoThousandsSeparator = -1

// Number formatting used by Numeric. The zero value is invalid; use
// CNumberFormat for the C locale.
type NumberFormat struct {
	// DecimalPoint separates the integer and fractional parts.
	DecimalPoint byte
	// ThousandsSeparator is the digit grouping byte, or NoThousandsSeparator.
	ThousandsSeparator int
}

// CNumberFormat returns the C locale formatting: '.' and no grouping.
func CNumberFormat() NumberFormat {
	return NumberFormat{DecimalPoint: '.', ThousandsSeparator: NoThousandsSeparator}
}

// endOfKey is what a cursor yields past the end of its key. It lies outside
// the byte range, so no separator or decimal point can match it.
const endOfKey = -1

// cursor walks a byte slice, yielding endOfKey past its end.
type cursor struct {
	s []byte
	i int
}

func (c *cursor) cur() int {
	if c.i < len(c.s) {
		return int(c.s[c.i])
	}
	return endOfKey
}

func (c *cursor) next() int {
	c.i++
	return c.cur()
}

func isDigit(c int) bool { return c >= '0' && c <= '9' }

// ValidSeparator reports whether c may serve as a decimal point or
// thousands separator: not NUL, a digit, a sign or a blank.
func ValidSeparator(c byte) bool {
	switch {
	case c == 0, isDigit(int(c)), c == '-', c == '+':
		return false
	case c == ' ', c == '\t', c == '\n', c == '\v', c == '\f', c == '\r':
		return false
	default:
		return true
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Numeric compares the leading decimal numbers of a and b without converting
// them: an optional '-', digits optionally grouped by the thousands separator,
// and an optional fraction. Exponents are not recognized, and text that is
// not a number compares as zero. Leading blanks must already be skipped.
func Numeric(a, b []byte, nf NumberFormat) int {
	ca, cb := &cursor{s: a}, &cursor{s: b}
	ta, tb := ca.cur(), cb.cur()
	dp, ts := int(nf.DecimalPoint), nf.ThousandsSeparator
	isSep := func(c int) bool { return c != endOfKey && c == ts }

	switch {
	case ta == '-' && tb != '-':
		ta = ca.next()
		for ta == '0' || isSep(ta) {
			ta = ca.next()
		}
		if ta == dp {
			ta = ca.next()
			for ta == '0' {
				ta = ca.next()
			}
		}
		if isDigit(ta) {
			return -1
		}
		for tb == '0' || isSep(tb) {
			tb = cb.next()
		}
		if tb == dp {
			tb = cb.next()
			for tb == '0' {
				tb = cb.next()
			}
		}
		return -boolInt(isDigit(tb))

	case tb == '-' && ta != '-':
		tb = cb.next()
		for tb == '0' || isSep(tb) {
			tb = cb.next()
		}
		if tb == dp {
			tb = cb.next()
			for tb == '0' {
				tb = cb.next()
			}
		}
		if isDigit(tb) {
			return 1
		}
		for ta == '0' || isSep(ta) {
			ta = ca.next()
		}
		if ta == dp {
			ta = ca.next()
			for ta == '0' {
				ta = ca.next()
			}
		}
		return boolInt(isDigit(ta))

	case ta == '-':
		// Both negative: compare magnitudes with the operands swapped.
		ta = ca.next()
		tb = cb.next()
		return magnitude(cb, ca, tb, ta, nf)

	default:
		return magnitude(ca, cb, ta, tb, nf)
	}
}

// magnitude compares two unsigned numbers whose first bytes are ta and tb.
func magnitude(ca, cb *cursor, ta, tb int, nf NumberFormat) int {
	dp, ts := int(nf.DecimalPoint), nf.ThousandsSeparator
	isSep := func(c int) bool { return c != endOfKey && c == ts }

	for ta == '0' || isSep(ta) {
		ta = ca.next()
	}
	for tb == '0' || isSep(tb) {
		tb = cb.next()
	}

	for ta == tb && isDigit(ta) {
		ta = ca.next()
		for isSep(ta) {
			ta = ca.next()
		}
		tb = cb.next()
		for isSep(tb) {
			tb = cb.next()
		}
	}

	if (ta == dp && !isDigit(tb)) || (tb == dp && !isDigit(ta)) {
		return fraction(ca, cb, dp)
	}

	first := sign(ta - tb)

	logA := 0
	for isDigit(ta) {
		logA++
		ta = ca.next()
		for isSep(ta) {
			ta = ca.next()
		}
	}
	logB := 0
	for isDigit(tb) {
		logB++
		tb = cb.next()
		for isSep(tb) {
			tb = cb.next()
		}
	}

	switch {
	case logA != logB:
		if logA < logB {
			return -1
		}
		return 1
	case logA == 0:
		return 0
	default:
		return first
	}
}

// fraction compares the fractional parts that start at the cursors. A side
// that is not at a decimal point has a zero fraction.
func fraction(ca, cb *cursor, dp int) int {
	ta, tb := ca.cur(), cb.cur()
	switch {
	case ta == dp && tb == dp:
		for {
			ta, tb = ca.next(), cb.next()
			if ta != tb {
				break
			}
			if !isDigit(ta) {
				return 0
			}
		}
		switch {
		case isDigit(ta) && isDigit(tb):
			return sign(ta - tb)
		case isDigit(ta):
			return trailingNonzero(ca)
		case isDigit(tb):
			return -trailingNonzero(cb)
		default:
			return 0
		}
	case ta == dp:
		ca.next()
		return trailingNonzero(ca)
	case tb == dp:
		cb.next()
		return -trailingNonzero(cb)
	default:
		return 0
	}
}

// trailingNonzero reports 1 when a nonzero digit follows any zeros at c.
func trailingNonzero(c *cursor) int {
	t := c.cur()
	for t == '0' {
		t = c.next()
	}
	return boolInt(isDigit(t))
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
