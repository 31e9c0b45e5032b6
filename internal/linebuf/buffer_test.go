// SPDX-License-Identifier: MPL-2.0

package linebuf

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

// collect drains r through b and returns every line's bytes, batch by batch.
func collect(t *testing.T, b *Buffer, r io.Reader) [][]string {
	t.Helper()
	var batches [][]string
	for {
		ok, err := b.Fill(r)
		if err != nil {
			t.Fatalf("Fill() error: %v", err)
		}
		if !ok {
			return batches
		}
		var batch []string
		for _, l := range b.Lines() {
			batch = append(batch, string(b.Bytes(l)))
		}
		batches = append(batches, batch)
	}
}

func flatten(batches [][]string) []string {
	var out []string
	for _, b := range batches {
		out = append(out, b...)
	}
	return out
}

func TestFill(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		eol   byte
		want  []string
	}{
		{name: "terminated", input: "a\nbb\nccc\n", eol: '\n', want: []string{"a\n", "bb\n", "ccc\n"}},
		{name: "missing final terminator", input: "a\nb", eol: '\n', want: []string{"a\n", "b\n"}},
		{name: "empty lines", input: "\n\n", eol: '\n', want: []string{"\n", "\n"}},
		{name: "zero terminated", input: "a b\x00c\nd\x00", eol: 0, want: []string{"a b\x00", "c\nd\x00"}},
		{name: "empty input", input: "", eol: '\n', want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := New(Options{Budget: 1 << 20, Terminator: tt.eol})
			got := flatten(collect(t, b, strings.NewReader(tt.input)))
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("lines = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFill_TextExcludesTerminator(t *testing.T) {
	t.Parallel()

	b := New(Options{Budget: 1 << 20, Terminator: '\n'})
	ok, err := b.Fill(strings.NewReader("one\ntwo"))
	if err != nil || !ok {
		t.Fatalf("Fill() = %v, %v", ok, err)
	}
	lines := b.Lines()
	if len(lines) != 2 {
		t.Fatalf("len(Lines()) = %d, want 2", len(lines))
	}
	for i, want := range []string{"one", "two"} {
		if got := string(b.Text(lines[i])); got != want {
			t.Errorf("Text(line %d) = %q, want %q", i, got, want)
		}
		if lines[i].Len != len(want)+1 {
			t.Errorf("line %d Len = %d, want %d", i, lines[i].Len, len(want)+1)
		}
	}
}

func TestFill_BudgetSplitsBatches(t *testing.T) {
	t.Parallel()

	input := "alpha\nbeta\ngamma\ndelta\n"
	b := New(Options{Budget: 1, Terminator: '\n'})

	ok, err := b.Fill(strings.NewReader(input))
	if err != nil || !ok {
		t.Fatalf("Fill() = %v, %v", ok, err)
	}
	if n := len(b.Lines()); n != 1 {
		t.Fatalf("first batch has %d lines, want 1", n)
	}
	if b.Leftover() != len(input)-len("alpha\n") {
		t.Errorf("Leftover() = %d, want %d", b.Leftover(), len(input)-len("alpha\n"))
	}

	b.Reset()
	batches := collect(t, b, strings.NewReader(input))
	if len(batches) != 4 {
		t.Fatalf("got %d batches, want 4: %q", len(batches), batches)
	}
	if got := strings.Join(flatten(batches), ""); got != input {
		t.Errorf("joined batches = %q, want %q", got, input)
	}

	// A budget covering two lines plus their descriptors.
	b = New(Options{Budget: len("alpha\nbeta\n") + 2*LineOverhead, Terminator: '\n'})
	batches = collect(t, b, strings.NewReader(input))
	if len(batches) != 2 || len(batches[0]) != 2 {
		t.Errorf("batches = %q, want two batches of two lines", batches)
	}
}

func TestFill_SmallReads(t *testing.T) {
	t.Parallel()

	input := "x1\ny22\nz333\nw"
	b := New(Options{Budget: 1 << 20, Terminator: '\n'})
	got := flatten(collect(t, b, iotest.OneByteReader(strings.NewReader(input))))
	want := []string{"x1\n", "y22\n", "z333\n", "w\n"}
	if strings.Join(got, "") != strings.Join(want, "") {
		t.Errorf("lines = %q, want %q", got, want)
	}
}

func TestFill_GrowsForLongLine(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 3*minArena)
	input := "short\n" + long + "\nend\n"
	b := New(Options{Budget: 1, Terminator: '\n'})
	got := flatten(collect(t, b, strings.NewReader(input)))
	if len(got) != 3 || got[1] != long+"\n" {
		t.Fatalf("got %d lines, want the long line intact", len(got))
	}
	if b.Cap() < len(long)+1 {
		t.Errorf("Cap() = %d, want at least %d", b.Cap(), len(long)+1)
	}
}

func TestFill_LineTooLong(t *testing.T) {
	t.Parallel()

	b := New(Options{Budget: 1, MaxArena: 16, Terminator: '\n'})
	_, err := b.Fill(strings.NewReader(strings.Repeat("a", 20) + "\n"))
	if !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("Fill() error = %v, want ErrLineTooLong", err)
	}
}

func TestFill_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	b := New(Options{Budget: 1 << 20, Terminator: '\n'})
	_, err := b.Fill(iotest.ErrReader(boom))
	if !errors.Is(err, boom) {
		t.Fatalf("Fill() error = %v, want %v", err, boom)
	}
}

func TestFill_KeyFunc(t *testing.T) {
	t.Parallel()

	firstWord := func(text []byte) (int, int) {
		if i := bytes.IndexByte(text, ' '); i >= 0 {
			return 0, i
		}
		return 0, len(text)
	}
	b := New(Options{Budget: 1 << 20, Terminator: '\n', Key: firstWord})
	if _, err := b.Fill(strings.NewReader("ab cd\nxyz\n")); err != nil {
		t.Fatalf("Fill() error: %v", err)
	}
	lines := b.Lines()
	for i, want := range []string{"ab", "xyz"} {
		l := lines[i]
		if got := string(b.Text(l)[l.KeyBeg:l.KeyLim]); got != want {
			t.Errorf("line %d key = %q, want %q", i, got, want)
		}
	}
}

func TestReset_ReusesArena(t *testing.T) {
	t.Parallel()

	b := New(Options{Budget: 1 << 20, Terminator: '\n'})
	first := flatten(collect(t, b, strings.NewReader("a\nb\n")))
	capBefore := b.Cap()
	b.Reset()
	second := flatten(collect(t, b, strings.NewReader("c")))
	if len(first) != 2 || len(second) != 1 || second[0] != "c\n" {
		t.Errorf("first = %q, second = %q", first, second)
	}
	if b.Cap() != capBefore {
		t.Errorf("Cap() changed from %d to %d", capBefore, b.Cap())
	}
}

func TestExhausted(t *testing.T) {
	t.Parallel()

	b := New(Options{Budget: 1, Terminator: '\n'})
	r := iotest.DataErrReader(strings.NewReader("a\nb\n"))
	if ok, err := b.Fill(r); !ok || err != nil {
		t.Fatalf("Fill() = %v, %v", ok, err)
	}
	if b.Exhausted() {
		t.Error("Exhausted() = true with a line still buffered")
	}
	if ok, err := b.Fill(r); !ok || err != nil {
		t.Fatalf("Fill() = %v, %v", ok, err)
	}
	if !b.Exhausted() {
		t.Error("Exhausted() = false after the final line")
	}
}

func TestExtend_SpansSources(t *testing.T) {
	t.Parallel()

	b := New(Options{Budget: 1 << 20, Terminator: '\n'})
	if ok, err := b.Fill(strings.NewReader("a\nb")); !ok || err != nil {
		t.Fatalf("Fill() = %v, %v", ok, err)
	}
	if !b.Exhausted() {
		t.Fatal("first source not exhausted")
	}
	if ok, err := b.Extend(strings.NewReader("c\n")); !ok || err != nil {
		t.Fatalf("Extend() = %v, %v", ok, err)
	}
	var got []string
	for _, l := range b.Lines() {
		got = append(got, string(b.Bytes(l)))
	}
	if strings.Join(got, "") != "a\nb\nc\n" || len(got) != 3 {
		t.Errorf("lines = %q, want [a b c]", got)
	}

	if ok, err := b.Extend(strings.NewReader("")); ok || err != nil {
		t.Errorf("Extend(empty) = %v, %v, want false, nil", ok, err)
	}
	if len(b.Lines()) != 3 {
		t.Errorf("empty source changed the batch to %d lines", len(b.Lines()))
	}
}

func TestExtend_StopsAtBudget(t *testing.T) {
	t.Parallel()

	b := New(Options{Budget: 1, Terminator: '\n'})
	if ok, err := b.Fill(iotest.DataErrReader(strings.NewReader("a\n"))); !ok || err != nil {
		t.Fatalf("Fill() = %v, %v", ok, err)
	}
	ok, err := b.Extend(strings.NewReader("b\n"))
	if ok || err != nil {
		t.Fatalf("Extend() on a full batch = %v, %v, want false, nil", ok, err)
	}
	if b.Exhausted() {
		t.Error("Exhausted() = true for a full batch with a fresh source")
	}
}
