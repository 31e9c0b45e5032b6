// SPDX-License-Identifier: MPL-2.0

package keys

import "fmt"

// NoField marks a key position that is not tied to a field: as a start
// position it means "beginning of line", as an end position "end of line".
const NoField = -1

const (
	// OrderDefault compares key bytes (or collates them when a locale is set).
	OrderDefault Ordering = iota
	// OrderNumeric compares leading decimal numbers without exponents.
	OrderNumeric
	// OrderGeneralNumeric compares leading floating-point numbers.
	OrderGeneralNumeric
	// OrderMonth compares three-letter English month abbreviations.
	OrderMonth
)

const (
	// IgnoreNone compares every byte of the key.
	IgnoreNone IgnoreSet = iota
	// IgnoreNonprinting skips bytes outside printable ASCII.
	IgnoreNonprinting
	// IgnoreNondictionary skips bytes that are neither alphanumeric nor blank.
	IgnoreNondictionary
)

type (
	// Ordering selects how the bytes of a key are compared.
	Ordering int

	// IgnoreSet selects which bytes a text comparison skips.
	IgnoreSet int

	// Spec describes one sort key. Field and character positions are
	// zero-origin. Spec is a value type and is treated as immutable once
	// Resolve has produced the final key list.
	Spec struct {
		// StartField is the index of the field the key starts in, or NoField
		// for the start of the line.
		StartField int
		// StartChar is the byte offset inside the start field.
		StartChar int
		// SkipStartBlanks skips blanks at the start of the key.
		SkipStartBlanks bool
		// EndField is the index of the field the key ends in, or NoField for
		// the end of the line.
		EndField int
		// EndChar is the number of bytes of the end field included in the
		// key. Zero means the whole end field.
		EndChar int
		// SkipEndBlanks trims blanks at the end of the key.
		SkipEndBlanks bool
		// Ordering is the comparison mode.
		Ordering Ordering
		// FoldCase compares lower-case letters as upper case.
		FoldCase bool
		// Ignore selects bytes skipped by text comparison.
		Ignore IgnoreSet
		// Reverse inverts the result of this key's comparison.
		Reverse bool

		// inherit is set when the key was specified without any ordering
		// options of its own.
		inherit bool
	}

	// Options are the global ordering options. They apply to every key that
	// was given without options, and to the synthesized whole-line key.
	Options struct {
		Ordering   Ordering
		FoldCase   bool
		Ignore     IgnoreSet
		Reverse    bool
		SkipBlanks bool
	}
)

// WholeLine returns a key covering the entire line with the given options.
func WholeLine(opts Options) Spec {
	return Spec{
		StartField:      NoField,
		EndField:        NoField,
		SkipStartBlanks: opts.SkipBlanks,
		SkipEndBlanks:   opts.SkipBlanks,
		Ordering:        opts.Ordering,
		FoldCase:        opts.FoldCase,
		Ignore:          opts.Ignore,
		Reverse:         opts.Reverse,
	}
}

// Resolve completes a parsed key list. Keys that carry no options of their
// own take the global options; when the list is empty a single whole-line
// key with the global options is returned. The input slice is not modified.
func Resolve(specs []Spec, opts Options) []Spec {
	if len(specs) == 0 {
		return []Spec{WholeLine(opts)}
	}
	out := make([]Spec, len(specs))
	for i, k := range specs {
		if k.inherit {
			k.SkipStartBlanks = opts.SkipBlanks
			k.SkipEndBlanks = opts.SkipBlanks
			k.Ordering = opts.Ordering
			k.FoldCase = opts.FoldCase
			k.Ignore = opts.Ignore
			k.Reverse = opts.Reverse
			k.inherit = false
		}
		out[i] = k
	}
	return out
}

// IsNumeric reports whether the key uses a numeric-like ordering, for which
// equal values never fall back to comparing the key bytes.
func (k Spec) IsNumeric() bool {
	return k.Ordering == OrderNumeric || k.Ordering == OrderGeneralNumeric || k.Ordering == OrderMonth
}

// String renders the key in POSIX -k syntax.
func (k Spec) String() string {
	start := "1"
	if k.StartField != NoField {
		start = fmt.Sprintf("%d", k.StartField+1)
	}
	if k.StartChar > 0 {
		start += fmt.Sprintf(".%d", k.StartChar+1)
	}
	s := start + k.optionLetters(k.SkipStartBlanks)
	if k.EndField != NoField {
		end := fmt.Sprintf(",%d", k.EndField+1)
		if k.EndChar > 0 {
			end += fmt.Sprintf(".%d", k.EndChar)
		}
		if k.SkipEndBlanks {
			end += "b"
		}
		s += end
	}
	return s
}

func (k Spec) optionLetters(blanks bool) string {
	var b []byte
	if blanks {
		b = append(b, 'b')
	}
	switch k.Ignore {
	case IgnoreNondictionary:
		b = append(b, 'd')
	case IgnoreNonprinting:
		b = append(b, 'i')
	}
	if k.FoldCase {
		b = append(b, 'f')
	}
	switch k.Ordering {
	case OrderNumeric:
		b = append(b, 'n')
	case OrderGeneralNumeric:
		b = append(b, 'g')
	case OrderMonth:
		b = append(b, 'M')
	}
	if k.Reverse {
		b = append(b, 'r')
	}
	return string(b)
}

// String returns a readable name for the ordering.
func (o Ordering) String() string {
	switch o {
	case OrderNumeric:
		return "numeric"
	case OrderGeneralNumeric:
		return "general-numeric"
	case OrderMonth:
		return "month"
	default:
		return "default"
	}
}
