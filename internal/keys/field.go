// SPDX-License-Identifier: MPL-2.0

package keys

// NoSeparator selects whitespace field splitting: a field is a run of blanks
// followed by a run of non-blanks.
const NoSeparator = -1

// Extractor locates keys inside line text. The text passed to its methods
// never includes the line terminator, and every returned offset lies in
// [0, len(text)].
type Extractor struct {
	tab    int
	tables *Tables
}

// NewExtractor returns an extractor that splits fields on sep, or on blank
// runs when sep is NoSeparator.
func NewExtractor(sep int, tables *Tables) *Extractor {
	return &Extractor{tab: sep, tables: tables}
}

// Range returns the key's byte range [beg, lim) within text. A key whose end
// precedes its start, or which lies past the end of the line, yields an
// empty range.
func (x *Extractor) Range(text []byte, k *Spec) (beg, lim int) {
	lim = x.End(text, k)
	if k.StartField != NoField {
		beg = x.Begin(text, k)
	} else if k.SkipStartBlanks {
		beg = x.tables.SkipBlanks(text, 0, lim)
	}
	if lim < beg {
		lim = beg
	}
	return beg, lim
}

// Begin returns the offset where the key starts: after StartField complete
// fields, optional leading blanks, then StartChar bytes clamped to the end
// of the field.
func (x *Extractor) Begin(text []byte, k *Spec) int {
	lim := len(text)
	ptr := 0
	if k.StartField != NoField {
		ptr = x.skipFields(text, k.StartField, true)
	}
	if k.SkipStartBlanks {
		ptr = x.tables.SkipBlanks(text, ptr, lim)
	}
	if k.StartChar > 0 {
		ptr = minOffset(x.fieldEnd(text, ptr), ptr, k.StartChar)
	}
	return ptr
}

// End returns the offset just past the key: the end of EndField when EndChar
// is zero, otherwise EndChar bytes into EndField clamped to the end of that
// field. Trailing blanks are then trimmed when SkipEndBlanks is set.
func (x *Extractor) End(text []byte, k *Spec) int {
	lim := len(text)
	if k.EndField == NoField {
		return x.trimEnd(text, lim, k)
	}
	var ptr int
	if k.EndChar == 0 {
		// The whole end field is included: stop after skipping one more field.
		ptr = x.skipFields(text, k.EndField+1, false)
	} else {
		ptr = x.skipFields(text, k.EndField, true)
		ptr = minOffset(x.fieldEnd(text, ptr), ptr, k.EndChar)
	}
	return x.trimEnd(text, ptr, k)
}

// skipFields advances over n complete fields. In separator mode the
// separator after the last skipped field is consumed only when into is set,
// so that an end position stops just before it.
func (x *Extractor) skipFields(text []byte, n int, into bool) int {
	lim := len(text)
	ptr := 0
	if x.tab != NoSeparator {
		sep := byte(x.tab)
		for ptr < lim && n > 0 {
			n--
			for ptr < lim && text[ptr] != sep {
				ptr++
			}
			if ptr < lim && (n > 0 || into) {
				ptr++
			}
		}
		return ptr
	}
	for ptr < lim && n > 0 {
		n--
		ptr = x.tables.SkipBlanks(text, ptr, lim)
		for ptr < lim && !x.tables.IsBlank(text[ptr]) {
			ptr++
		}
	}
	return ptr
}

// fieldEnd returns the end of the field that contains offset ptr.
func (x *Extractor) fieldEnd(text []byte, ptr int) int {
	lim := len(text)
	if x.tab != NoSeparator {
		sep := byte(x.tab)
		for ptr < lim && text[ptr] != sep {
			ptr++
		}
		return ptr
	}
	ptr = x.tables.SkipBlanks(text, ptr, lim)
	for ptr < lim && !x.tables.IsBlank(text[ptr]) {
		ptr++
	}
	return ptr
}

func (x *Extractor) trimEnd(text []byte, lim int, k *Spec) int {
	if !k.SkipEndBlanks {
		return lim
	}
	return x.tables.TrimTrailingBlanks(text, 0, lim)
}

// minOffset advances ptr by n bytes without passing end.
func minOffset(end, ptr, n int) int {
	if n >= end-ptr {
		return end
	}
	return ptr + n
}
