// SPDX-License-Identifier: MPL-2.0

package compare

import (
	"github.com/xsort/xsort/internal/collate"
	"github.com/xsort/xsort/internal/keys"
)

type (
	// Options configure a line Comparator.
	Options struct {
		// Keys is the resolved key list; empty means the whole line.
		Keys []keys.Spec
		// Separator is the field separator byte, or keys.NoSeparator.
		Separator int
		// Reverse reverses the whole-line fallback comparison.
		Reverse bool
		// Stable and Unique disable the whole-line fallback.
		Stable bool
		Unique bool
		// Collator orders default-order keys; nil means byte order.
		Collator collate.Collator
		// Numbers is the formatting used by numeric keys.
		Numbers NumberFormat
		// Tables defaults to keys.NewTables().
		Tables *keys.Tables
	}

	// View is a line's text without its terminator, plus the precomputed
	// range of the first key.
	View struct {
		Text   []byte
		KeyBeg int
		KeyLim int
	}

	// Comparator orders whole lines.
	Comparator struct {
		keys      []keys.Spec
		extractor *keys.Extractor
		field     *Field
		collator  collate.Collator
		reverse   bool
		noLast    bool
	}
)

// New builds a Comparator. An empty key list is replaced by a single
// whole-line key with default options.
func New(opts Options) *Comparator {
	tables := opts.Tables
	if tables == nil {
		tables = keys.NewTables()
	}
	coll := opts.Collator
	if coll == nil {
		coll = collate.Ordinal()
	}
	ks := opts.Keys
	if len(ks) == 0 {
		ks = keys.Resolve(nil, keys.Options{})
	}
	return &Comparator{
		keys:      ks,
		extractor: keys.NewExtractor(opts.Separator, tables),
		field:     NewField(tables, coll, opts.Numbers),
		collator:  coll,
		reverse:   opts.Reverse,
		noLast:    opts.Stable || opts.Unique,
	}
}

// KeyRange returns the range of the first key in text.
func (c *Comparator) KeyRange(text []byte) (beg, lim int) {
	return c.extractor.Range(text, &c.keys[0])
}

// View computes the first-key range of text.
func (c *Comparator) View(text []byte) View {
	beg, lim := c.KeyRange(text)
	return View{Text: text, KeyBeg: beg, KeyLim: lim}
}

// Compare orders a and b: each key in turn with its own reverse flag, then,
// unless stable or unique, the whole line with the global reverse flag.
func (c *Comparator) Compare(a, b View) int {
	if d := c.compareKeys(a, b); d != 0 || c.noLast {
		return d
	}
	var d int
	switch {
	case len(a.Text) == 0:
		d = -boolInt(len(b.Text) != 0)
	case len(b.Text) == 0:
		d = 1
	default:
		d = sign(c.collator.Compare(a.Text, b.Text))
	}
	if c.reverse {
		return -d
	}
	return d
}

// CompareText orders two lines without cached key ranges.
func (c *Comparator) CompareText(a, b []byte) int {
	return c.Compare(c.View(a), c.View(b))
}

func (c *Comparator) compareKeys(a, b View) int {
	begA, limA, begB, limB := a.KeyBeg, a.KeyLim, b.KeyBeg, b.KeyLim
	for i := range c.keys {
		k := &c.keys[i]
		if i > 0 {
			begA, limA = c.extractor.Range(a.Text, k)
			begB, limB = c.extractor.Range(b.Text, k)
		}
		d := c.field.Compare(k, a.Text[begA:limA], b.Text[begB:limB])
		if d != 0 {
			if k.Reverse {
				return -d
			}
			return d
		}
	}
	return 0
}
