// SPDX-License-Identifier: MPL-2.0

package keys

// Tables holds the byte classification tables used for field splitting and
// key comparison. A Tables value is read-only after NewTables returns.
type Tables struct {
	blank         [256]bool
	nonprinting   [256]bool
	nondictionary [256]bool
	fold          [256]byte
}

// NewTables builds the classification tables for the C locale. Newline is
// treated as a blank so that it separates fields in zero-terminated input.
func NewTables() *Tables {
	t := &Tables{}
	for i := range 256 {
		c := byte(i)
		isBlank := c == ' ' || c == '\t'
		isAlnum := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')

		t.blank[i] = isBlank || c == '\n'
		t.nonprinting[i] = c < 0x20 || c >= 0x7f
		t.nondictionary[i] = !isAlnum && !isBlank
		t.fold[i] = c
		if c >= 'a' && c <= 'z' {
			t.fold[i] = c - 'a' + 'A'
		}
	}
	return t
}

// IsBlank reports whether c separates whitespace-delimited fields.
func (t *Tables) IsBlank(c byte) bool { return t.blank[c] }

// Fold maps lower-case ASCII letters to upper case.
func (t *Tables) Fold(c byte) byte { return t.fold[c] }

// Ignored reports whether c is skipped under the given ignore set.
func (t *Tables) Ignored(set IgnoreSet, c byte) bool {
	switch set {
	case IgnoreNonprinting:
		return t.nonprinting[c]
	case IgnoreNondictionary:
		return t.nondictionary[c]
	default:
		return false
	}
}

// SkipBlanks returns the first index at or after i (and before lim) that is
// not a blank.
func (t *Tables) SkipBlanks(text []byte, i, lim int) int {
	for i < lim && t.blank[text[i]] {
		i++
	}
	return i
}

// TrimTrailingBlanks returns the end index after dropping blanks that
// precede lim, stopping at beg.
func (t *Tables) TrimTrailingBlanks(text []byte, beg, lim int) int {
	for lim > beg && t.blank[text[lim-1]] {
		lim--
	}
	return lim
}
