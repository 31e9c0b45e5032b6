// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"bufio"
	"errors"
	"io"

	"github.com/xsort/xsort/internal/compare"
	"github.com/xsort/xsort/internal/linebuf"
)

// writeBatch writes sorted lines to w. In unique mode a line whose keys
// equal the last written line is dropped, so the first of each run of
// equal lines survives.
func (e *engine) writeBatch(w io.Writer, buf *linebuf.Buffer, lines []linebuf.Line) error {
	var prev compare.View
	have := false
	for _, l := range lines {
		if e.opts.Unique {
			v := view(buf, l)
			if have && e.cmp.Compare(prev, v) == 0 {
				continue
			}
			prev, have = v, true
		}
		if _, err := w.Write(buf.Bytes(l)); err != nil {
			return err
		}
	}
	return nil
}

// writeOutput emits a batch that holds the whole input straight to the sink.
func (e *engine) writeOutput(buf *linebuf.Buffer, lines []linebuf.Line, out io.Writer) error {
	w := bufio.NewWriter(out)
	err := e.writeBatch(w, buf, lines)
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		return &IOError{Op: "write", Path: e.opts.OutputName, Err: err}
	}
	e.log.Debug("wrote batch to output", "lines", len(lines))
	return nil
}

// spill writes a sorted batch to a new temporary run.
func (e *engine) spill(buf *linebuf.Buffer, lines []linebuf.Line) (run, error) {
	path, f, err := e.temp.Create()
	if err != nil {
		return run{}, &IOError{Op: "create", Path: path, Err: err}
	}
	w := bufio.NewWriter(f)
	err = e.writeBatch(w, buf, lines)
	if err == nil {
		err = w.Flush()
	}
	err = errors.Join(err, f.Close())
	if err != nil {
		return run{}, &IOError{Op: "write", Path: path, Err: err}
	}
	e.log.Debug("spilled run", "path", path, "lines", len(lines))
	return tempRun(path), nil
}
