// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/xsort/xsort/internal/compare"
	"github.com/xsort/xsort/internal/linebuf"
	"github.com/xsort/xsort/internal/tempfile"
)

// engine carries the state shared by one run.
type engine struct {
	opts Options
	cmp  *compare.Comparator
	temp *tempfile.Factory
	reg  *tempfile.Registry
	log  *log.Logger

	// aux is the merge sort scratch space, grown to the largest batch.
	aux []linebuf.Line
}

func newEngine(opts Options) (*engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	cmp := compare.New(compare.Options{
		Keys:      opts.Keys,
		Separator: opts.Separator,
		Reverse:   opts.Reverse,
		Stable:    opts.Stable,
		Unique:    opts.Unique,
		Collator:  opts.Collator,
		Numbers:   opts.Numbers,
	})
	return &engine{
		opts: opts,
		cmp:  cmp,
		temp: opts.Temp,
		reg:  opts.Temp.Registry(),
		log:  opts.Logger,
	}, nil
}

func (e *engine) newBuffer(budget int) *linebuf.Buffer {
	return linebuf.New(linebuf.Options{
		Budget:     budget,
		MaxArena:   e.opts.MaxArena,
		Terminator: e.opts.Terminator,
		Key:        e.cmp.KeyRange,
	})
}

func view(buf *linebuf.Buffer, l linebuf.Line) compare.View {
	return compare.View{Text: buf.Text(l), KeyBeg: l.KeyBeg, KeyLim: l.KeyLim}
}

// sortLines sorts one batch in place.
func (e *engine) sortLines(buf *linebuf.Buffer, lines []linebuf.Line) {
	if cap(e.aux) < len(lines) {
		e.aux = make([]linebuf.Line, len(lines))
	}
	mergeSort(lines, e.aux[:len(lines)], func(a, b linebuf.Line) int {
		return e.cmp.Compare(view(buf, a), view(buf, b))
	})
}

// readError classifies a failed Fill of the named source.
func readError(name string, err error) error {
	if errors.Is(err, linebuf.ErrLineTooLong) {
		return &ResourceError{Path: name, Err: err}
	}
	return &IOError{Op: "read", Path: name, Err: err}
}

// finish removes every remaining temporary file and maps err to an exit
// status. It runs exactly once per run.
func (e *engine) finish(err error) error {
	live := e.reg.Len()
	if cerr := e.reg.Cleanup(); cerr != nil {
		e.log.Warn("removing temporary files", "err", cerr)
		if err == nil {
			err = &IOError{Op: "remove", Path: "temporary files", Err: cerr}
		}
	} else if live > 0 {
		e.log.Debug("removed temporary files", "count", live)
	}
	return err
}
