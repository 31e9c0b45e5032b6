// SPDX-License-Identifier: MPL-2.0

package linebuf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

const (
	// LineOverhead is the number of bytes a Line descriptor is charged
	// against the memory budget.
	LineOverhead = 32

	// DefaultMaxArena bounds arena growth when Options.MaxArena is zero.
	DefaultMaxArena = 1 << 30

	minArena = 4096
)

// ErrLineTooLong is returned by Fill when a single line does not fit in the
// largest arena the buffer may allocate.
var ErrLineTooLong = errors.New("line too long")

type (
	// Line describes one line inside the arena. Len includes the terminator.
	// KeyBeg and KeyLim are the first key's range relative to the start of
	// the line text.
	Line struct {
		Start  int
		Len    int
		KeyBeg int
		KeyLim int
	}

	// KeyFunc computes the first key range of a line's text.
	KeyFunc func(text []byte) (beg, lim int)

	// Options configure a Buffer.
	Options struct {
		// Budget is the target memory footprint of one batch: line bytes
		// plus LineOverhead per line. Every Fill yields at least one line.
		Budget int
		// MaxArena caps the arena size. Zero means DefaultMaxArena.
		MaxArena int
		// Terminator is the line terminator byte.
		Terminator byte
		// Key, when set, precomputes the first key range of every line.
		Key KeyFunc
	}

	// Buffer is a line-splitting arena. It is not safe for concurrent use.
	Buffer struct {
		data     []byte
		used     int // bytes of data holding input
		left     int // start of bytes not yet published as lines
		searched int // bytes before this offset hold no terminator
		lines    []Line
		eof      bool

		// footprint is the budget charge of the current batch.
		footprint int

		budget   int
		maxArena int
		eol      byte
		key      KeyFunc
	}
)

// New returns an empty buffer. The arena is allocated on the first Fill.
func New(opts Options) *Buffer {
	maxArena := opts.MaxArena
	if maxArena <= 0 {
		maxArena = DefaultMaxArena
	}
	budget := max(opts.Budget, 1)
	return &Buffer{budget: budget, maxArena: maxArena, eol: opts.Terminator, key: opts.Key}
}

// Reset prepares the buffer for a new source, dropping any buffered input.
// The arena is kept.
func (b *Buffer) Reset() {
	b.used, b.left, b.searched = 0, 0, 0
	b.lines = b.lines[:0]
	b.footprint = 0
	b.eof = false
}

// Fill publishes the next batch of complete lines read from r. It returns
// false when r is exhausted and no lines remain. A final line without a
// terminator gets one appended.
func (b *Buffer) Fill(r io.Reader) (bool, error) {
	b.compact()
	return b.read(r)
}

// Extend appends lines read from r to the current batch until the budget is
// reached, the arena is full, or r is exhausted. It is meant for starting the
// next source once Exhausted reports true, so that one batch may span
// several sources. It reports whether the batch gained lines.
func (b *Buffer) Extend(r io.Reader) (bool, error) {
	n := len(b.lines)
	b.eof = false
	if _, err := b.read(r); err != nil {
		return false, err
	}
	return len(b.lines) > n, nil
}

func (b *Buffer) read(r io.Reader) (bool, error) {
	if b.data == nil {
		b.data = make([]byte, min(max(b.budget, minArena), b.maxArena))
	}
	for {
		for b.left < b.used && b.footprint < b.budget {
			i := bytes.IndexByte(b.data[b.searched:b.used], b.eol)
			if i < 0 {
				b.searched = b.used
				break
			}
			end := b.searched + i + 1
			b.publish(b.left, end)
			b.left, b.searched = end, end
		}
		if b.footprint >= b.budget {
			return true, nil
		}

		if b.eof {
			if b.left < b.used {
				if err := b.ensure(b.used + 1); err != nil {
					return false, err
				}
				b.data[b.used] = b.eol
				b.used++
				b.publish(b.left, b.used)
				b.left, b.searched = b.used, b.used
			}
			return len(b.lines) > 0, nil
		}

		if b.used == len(b.data) {
			if len(b.lines) > 0 {
				return true, nil
			}
			if err := b.ensure(b.used + 1); err != nil {
				return false, err
			}
		}

		n, err := r.Read(b.data[b.used:])
		b.used += n
		switch {
		case errors.Is(err, io.EOF):
			b.eof = true
		case err != nil:
			return false, err
		}
	}
}

// Lines returns the lines published by the last Fill.
func (b *Buffer) Lines() []Line { return b.lines }

// Text returns the line's bytes without its terminator.
func (b *Buffer) Text(l Line) []byte { return b.data[l.Start : l.Start+l.Len-1] }

// Bytes returns the line's bytes including its terminator.
func (b *Buffer) Bytes(l Line) []byte { return b.data[l.Start : l.Start+l.Len] }

// Leftover returns the number of buffered bytes not yet published as lines.
func (b *Buffer) Leftover() int { return b.used - b.left }

// Exhausted reports whether the source has hit EOF and every buffered byte
// has been published.
func (b *Buffer) Exhausted() bool { return b.eof && b.left == b.used }

// Cap returns the current arena size.
func (b *Buffer) Cap() int { return len(b.data) }

// Terminator returns the line terminator byte.
func (b *Buffer) Terminator() byte { return b.eol }

func (b *Buffer) publish(start, end int) {
	l := Line{Start: start, Len: end - start}
	b.footprint += l.Len + LineOverhead
	text := b.data[start : end-1]
	if b.key != nil {
		l.KeyBeg, l.KeyLim = b.key(text)
	} else {
		l.KeyLim = len(text)
	}
	b.lines = append(b.lines, l)
}

// compact moves unpublished bytes to the front of the arena.
func (b *Buffer) compact() {
	b.lines = b.lines[:0]
	b.footprint = 0
	if b.left == 0 {
		return
	}
	n := copy(b.data, b.data[b.left:b.used])
	b.searched -= b.left
	b.used = n
	b.left = 0
}

// ensure grows the arena by doubling until it holds at least size bytes.
func (b *Buffer) ensure(size int) error {
	if size <= len(b.data) {
		return nil
	}
	if size > b.maxArena {
		return fmt.Errorf("%w: exceeds %d bytes", ErrLineTooLong, b.maxArena)
	}
	n := max(len(b.data), 1)
	for n < size {
		n *= 2
	}
	n = min(n, b.maxArena)
	grown := make([]byte, n)
	copy(grown, b.data[:b.used])
	b.data = grown
	return nil
}
