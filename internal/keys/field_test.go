// SPDX-License-Identifier: MPL-2.0

package keys

import "testing"

func mustParse(t *testing.T, s string) Spec {
	t.Helper()
	k, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) unexpected error: %v", s, err)
	}
	return Resolve([]Spec{k}, Options{})[0]
}

func TestExtractor_RangeWhitespace(t *testing.T) {
	t.Parallel()

	x := NewExtractor(NoSeparator, NewTables())

	tests := []struct {
		name string
		key  string
		line string
		want string
	}{
		{name: "whole line", key: "1", line: "  alpha beta", want: "  alpha beta"},
		{name: "second field keeps leading blank", key: "2,2", line: "a  bb c", want: "  bb"},
		{name: "second to third field", key: "2,3", line: "a b c d", want: " b c"},
		{name: "start char in field", key: "2.2,2", line: "a xyz q", want: "xyz"},
		{name: "end char in field", key: "1,1.2", line: "abcd e", want: "ab"},
		{name: "start char clamps to field end", key: "1.9,1", line: "ab cd", want: ""},
		{name: "end char clamps to field end", key: "2,2.9", line: "ab cd ef", want: " cd"},
		{name: "field past end of line", key: "5,5", line: "a b", want: ""},
		{name: "end before start", key: "3,2", line: "a b c", want: ""},
		{name: "empty line", key: "2,2", line: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			k := mustParse(t, tt.key)
			text := []byte(tt.line)
			beg, lim := x.Range(text, &k)
			if beg < 0 || lim > len(text) || beg > lim {
				t.Fatalf("Range() = [%d,%d) out of bounds for %q", beg, lim, tt.line)
			}
			if got := string(text[beg:lim]); got != tt.want {
				t.Errorf("key %q on %q = %q, want %q", tt.key, tt.line, got, tt.want)
			}
		})
	}
}

func TestExtractor_RangeSeparator(t *testing.T) {
	t.Parallel()

	x := NewExtractor(':', NewTables())

	tests := []struct {
		key  string
		line string
		want string
	}{
		{key: "1,1", line: "root:x:0", want: "root"},
		{key: "2,2", line: "root:x:0", want: "x"},
		{key: "2,3", line: "root:x:0:0", want: "x:0"},
		{key: "3", line: "root:x:0:0", want: "0:0"},
		{key: "2,2", line: "a::c", want: ""},
		{key: "3,3", line: "a::c", want: "c"},
		{key: "1.2,1.3", line: "abcd:e", want: "bc"},
		{key: "4,4", line: "a:b", want: ""},
	}

	for _, tt := range tests {
		k := mustParse(t, tt.key)
		text := []byte(tt.line)
		beg, lim := x.Range(text, &k)
		if got := string(text[beg:lim]); got != tt.want {
			t.Errorf("key %q on %q = %q, want %q", tt.key, tt.line, got, tt.want)
		}
	}
}

func TestExtractor_BeginEnd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sep      int
		key      string
		line     string
		beg, end int
	}{
		{sep: NoSeparator, key: "2.2,2", line: "a xyz q", beg: 2, end: 5},
		{sep: NoSeparator, key: "1,1.2", line: "abcd e", beg: 0, end: 2},
		{sep: NoSeparator, key: "1.9,1", line: "ab cd", beg: 2, end: 2},
		{sep: NoSeparator, key: "5,5", line: "a b", beg: 3, end: 3},
		{sep: NoSeparator, key: "2b,2", line: "a   bb c", beg: 4, end: 6},
		{sep: ':', key: "2,2", line: "root:x:0", beg: 5, end: 6},
		{sep: ':', key: "3", line: "root:x:0:0", beg: 7, end: 10},
		{sep: ':', key: "2,2", line: "a::c", beg: 2, end: 2},
		{sep: ':', key: "1,1b", line: "ab  :c", beg: 0, end: 2},
	}

	for _, tt := range tests {
		x := NewExtractor(tt.sep, NewTables())
		k := mustParse(t, tt.key)
		text := []byte(tt.line)
		if got := x.Begin(text, &k); got != tt.beg {
			t.Errorf("Begin(%q) for key %q = %d, want %d", tt.line, tt.key, got, tt.beg)
		}
		if got := x.End(text, &k); got != tt.end {
			t.Errorf("End(%q) for key %q = %d, want %d", tt.line, tt.key, got, tt.end)
		}
	}
}

func TestExtractor_Blanks(t *testing.T) {
	t.Parallel()

	x := NewExtractor(NoSeparator, NewTables())

	tests := []struct {
		key  string
		line string
		want string
	}{
		{key: "2b,2", line: "a   bb c", want: "bb"},
		{key: "1b", line: "   lead", want: "lead"},
		{key: "1,1b", line: "x", want: "x"},
		{key: "2,2.1b", line: "a  b", want: ""},
	}

	for _, tt := range tests {
		k := mustParse(t, tt.key)
		text := []byte(tt.line)
		beg, lim := x.Range(text, &k)
		if got := string(text[beg:lim]); got != tt.want {
			t.Errorf("key %q on %q = %q, want %q", tt.key, tt.line, got, tt.want)
		}
	}
}

func TestExtractor_TrailingBlanksWithSeparator(t *testing.T) {
	t.Parallel()

	x := NewExtractor(':', NewTables())

	k := mustParse(t, "1,1b")
	text := []byte("ab  :c")
	beg, lim := x.Range(text, &k)
	if got := string(text[beg:lim]); got != "ab" {
		t.Errorf("key 1,1b on %q = %q, want %q", text, got, "ab")
	}

	whole := WholeLine(Options{SkipBlanks: true})
	text = []byte("  mid  ")
	beg, lim = x.Range(text, &whole)
	if got := string(text[beg:lim]); got != "mid" {
		t.Errorf("whole-line key with blanks skipped on %q = %q, want %q", text, got, "mid")
	}
}

func TestTables(t *testing.T) {
	t.Parallel()

	tab := NewTables()
	if !tab.IsBlank(' ') || !tab.IsBlank('\t') || !tab.IsBlank('\n') || tab.IsBlank('a') {
		t.Error("IsBlank() misclassified bytes")
	}
	if tab.Fold('a') != 'A' || tab.Fold('Z') != 'Z' || tab.Fold('1') != '1' {
		t.Error("Fold() should map only lower-case letters")
	}
	if !tab.Ignored(IgnoreNonprinting, 0x01) || tab.Ignored(IgnoreNonprinting, 'a') {
		t.Error("IgnoreNonprinting misclassified bytes")
	}
	if !tab.Ignored(IgnoreNondictionary, '-') || tab.Ignored(IgnoreNondictionary, ' ') || tab.Ignored(IgnoreNondictionary, 'q') {
		t.Error("IgnoreNondictionary misclassified bytes")
	}
	if tab.Ignored(IgnoreNone, 0x01) {
		t.Error("IgnoreNone should not ignore anything")
	}
}
