// SPDX-License-Identifier: MPL-2.0

package compare

import (
	"bytes"

	"github.com/xsort/xsort/internal/collate"
	"github.com/xsort/xsort/internal/keys"
)

// Field compares the extracted keys of two lines under one key's ordering.
type Field struct {
	tables   *keys.Tables
	collator collate.Collator
	numbers  NumberFormat

	// scratch holds filtered copies of keys for the orderings that need a
	// contiguous transformed value.
	scratchA []byte
	scratchB []byte
}

// NewField returns a field comparator. A nil collator selects byte order.
func NewField(tables *keys.Tables, coll collate.Collator, nf NumberFormat) *Field {
	if coll == nil {
		coll = collate.Ordinal()
	}
	return &Field{tables: tables, collator: coll, numbers: nf}
}

// Compare returns -1, 0 or 1. The key's reverse flag is not applied.
func (f *Field) Compare(k *keys.Spec, a, b []byte) int {
	filtered := k.Ignore != keys.IgnoreNone || k.FoldCase
	if k.IsNumeric() || !f.collator.Ordinal() {
		if filtered {
			f.scratchA = f.filter(f.scratchA[:0], a, k)
			f.scratchB = f.filter(f.scratchB[:0], b, k)
			a, b = f.scratchA, f.scratchB
		}
		switch k.Ordering {
		case keys.OrderNumeric:
			return Numeric(a[f.tables.SkipBlanks(a, 0, len(a)):], b[f.tables.SkipBlanks(b, 0, len(b)):], f.numbers)
		case keys.OrderGeneralNumeric:
			return General(a, b)
		case keys.OrderMonth:
			return sign(Month(a, f.tables) - Month(b, f.tables))
		default:
			return f.collated(a, b)
		}
	}
	if k.Ignore != keys.IgnoreNone {
		return f.ignoring(k, a, b)
	}
	if k.FoldCase {
		return f.folded(a, b)
	}
	return bytes.Compare(a, b)
}

// collated orders a and b with the collator; an empty key sorts first.
func (f *Field) collated(a, b []byte) int {
	switch {
	case len(a) == 0:
		return -boolInt(len(b) != 0)
	case len(b) == 0:
		return 1
	default:
		return sign(f.collator.Compare(a, b))
	}
}

// ignoring walks both keys in lock step, skipping ignored bytes. When one
// key runs out, the one with bytes left is greater.
func (f *Field) ignoring(k *keys.Spec, a, b []byte) int {
	t := f.tables
	i, j := 0, 0
	for {
		for i < len(a) && t.Ignored(k.Ignore, a[i]) {
			i++
		}
		for j < len(b) && t.Ignored(k.Ignore, b[j]) {
			j++
		}
		if i >= len(a) || j >= len(b) {
			break
		}
		ca, cb := a[i], b[j]
		if k.FoldCase {
			ca, cb = t.Fold(ca), t.Fold(cb)
		}
		if ca != cb {
			return sign(int(ca) - int(cb))
		}
		i++
		j++
	}
	return boolInt(i < len(a)) - boolInt(j < len(b))
}

func (f *Field) folded(a, b []byte) int {
	t := f.tables
	n := min(len(a), len(b))
	for i := range n {
		ca, cb := t.Fold(a[i]), t.Fold(b[i])
		if ca != cb {
			return sign(int(ca) - int(cb))
		}
	}
	return sign(len(a) - len(b))
}

// filter appends the bytes of src that the key does not ignore to dst,
// folded when the key folds case.
func (f *Field) filter(dst, src []byte, k *keys.Spec) []byte {
	for _, c := range src {
		if f.tables.Ignored(k.Ignore, c) {
			continue
		}
		if k.FoldCase {
			c = f.tables.Fold(c)
		}
		dst = append(dst, c)
	}
	return dst
}
