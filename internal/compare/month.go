// SPDX-License-Identifier: MPL-2.0

package compare

import "github.com/xsort/xsort/internal/keys"

// monthTable is sorted by name for binary search.
var monthTable = [12]struct {
	name string
	val  int
}{
	{"APR", 4}, {"AUG", 8}, {"DEC", 12}, {"FEB", 2},
	{"JAN", 1}, {"JUL", 7}, {"JUN", 6}, {"MAR", 3},
	{"MAY", 5}, {"NOV", 11}, {"OCT", 10}, {"SEP", 9},
}

// Month returns 1 to 12 when the text, after leading blanks, starts with an
// English month abbreviation in any case, and 0 otherwise.
func Month(text []byte, t *keys.Tables) int {
	text = text[t.SkipBlanks(text, 0, len(text)):]
	lo, hi := 0, len(monthTable)
	for lo < hi {
		ix := (lo + hi) / 2
		name := monthTable[ix].name
		c := comparePrefix(text, name, t)
		switch {
		case c == 0:
			return monthTable[ix].val
		case c < 0:
			hi = ix
		default:
			lo = ix + 1
		}
	}
	return 0
}

// comparePrefix compares the folded start of text with name; 0 means text
// starts with name.
func comparePrefix(text []byte, name string, t *keys.Tables) int {
	for i := range len(name) {
		var c byte
		if i < len(text) {
			c = t.Fold(text[i])
		}
		switch {
		case c < name[i]:
			return -1
		case c > name[i]:
			return 1
		}
	}
	return 0
}
