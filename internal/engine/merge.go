// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"bufio"
	"context"
	"errors"
	"io"
	"slices"

	"github.com/xsort/xsort/internal/compare"
	"github.com/xsort/xsort/internal/linebuf"
)

type runKind int

const (
	runTemp runKind = iota
	runInput
	runMemory
)

// run is one sorted stream waiting to be merged: a temporary file, an
// input that is already sorted, or the final batch kept in memory.
type run struct {
	kind  runKind
	name  string
	path  string
	input Input
	buf   *linebuf.Buffer
	lines []linebuf.Line
}

func tempRun(path string) run { return run{kind: runTemp, name: path, path: path} }

func inputRun(in Input) run { return run{kind: runInput, name: in.Name, input: in} }

func memoryRun(buf *linebuf.Buffer, lines []linebuf.Line) run {
	return run{kind: runMemory, name: "memory", buf: buf, lines: lines}
}

// source yields the lines of a run one at a time. The current line stays
// valid until the next advance.
type source struct {
	run    run
	rc     io.ReadCloser
	buf    *linebuf.Buffer
	lines  []linebuf.Line
	pos    int
	closed bool
}

func (s *source) advance() (bool, error) {
	s.pos++
	if s.pos < len(s.lines) {
		return true, nil
	}
	if s.rc == nil {
		return false, nil
	}
	ok, err := s.buf.Fill(s.rc)
	if err != nil {
		return false, readError(s.run.name, err)
	}
	if !ok {
		return false, nil
	}
	s.lines, s.pos = s.buf.Lines(), 0
	return true, nil
}

func (s *source) view() compare.View { return view(s.buf, s.lines[s.pos]) }

func (s *source) bytes() []byte { return s.buf.Bytes(s.lines[s.pos]) }

func (s *source) close() error {
	if s.closed || s.rc == nil {
		s.closed = true
		return nil
	}
	s.closed = true
	return s.rc.Close()
}

// open prepares a run for merging with a read buffer of budget bytes.
func (e *engine) open(r run, budget int) (*source, error) {
	s := &source{run: r, pos: -1}
	switch r.kind {
	case runMemory:
		s.buf, s.lines = r.buf, r.lines
		return s, nil
	case runTemp:
		f, err := e.temp.Fs().Open(r.path)
		if err != nil {
			return nil, &IOError{Op: "open", Path: r.path, Err: err}
		}
		s.rc = f
	default:
		rc, err := r.input.Open()
		if err != nil {
			return nil, &IOError{Op: "open", Path: r.name, Err: err}
		}
		s.rc = rc
	}
	s.buf = e.newBuffer(budget)
	return s, nil
}

// release closes an exhausted source and deletes its file when it is a
// temporary run.
func (e *engine) release(s *source) error {
	if err := s.close(); err != nil {
		return &IOError{Op: "close", Path: s.run.name, Err: err}
	}
	if s.run.kind != runTemp {
		return nil
	}
	if err := e.reg.Remove(s.run.path); err != nil {
		return &IOError{Op: "remove", Path: s.run.path, Err: err}
	}
	e.log.Debug("removed run", "path", s.run.path)
	return nil
}

// merge combines runs into out. While there are more runs than the fan-in,
// contiguous groups are merged into temporary runs, which keeps equal lines
// in input order.
func (e *engine) merge(ctx context.Context, runs []run, out io.Writer) error {
	nmerge := e.opts.BatchSize
	for pass := 1; len(runs) > nmerge; pass++ {
		next := make([]run, 0, (len(runs)+nmerge-1)/nmerge)
		for i := 0; i < len(runs); i += nmerge {
			group := runs[i:min(i+nmerge, len(runs))]
			if len(group) == 1 {
				next = append(next, group[0])
				continue
			}
			r, err := e.mergeToTemp(ctx, group)
			if err != nil {
				return err
			}
			next = append(next, r)
		}
		e.log.Debug("merge pass", "pass", pass, "runs", len(runs), "merged", len(next))
		runs = next
	}

	w := bufio.NewWriter(out)
	if err := e.mergeGroup(ctx, runs, w, e.opts.OutputName); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return &IOError{Op: "write", Path: e.opts.OutputName, Err: err}
	}
	return nil
}

func (e *engine) mergeToTemp(ctx context.Context, group []run) (run, error) {
	path, f, err := e.temp.Create()
	if err != nil {
		return run{}, &IOError{Op: "create", Path: path, Err: err}
	}
	w := bufio.NewWriter(f)
	err = e.mergeGroup(ctx, group, w, path)
	if err == nil {
		if ferr := w.Flush(); ferr != nil {
			err = &IOError{Op: "write", Path: path, Err: ferr}
		}
	}
	if cerr := f.Close(); cerr != nil && err == nil {
		err = &IOError{Op: "close", Path: path, Err: cerr}
	}
	if err != nil {
		return run{}, err
	}
	e.log.Debug("merged runs into temporary run", "path", path, "runs", len(group))
	return tempRun(path), nil
}

// mergeGroup merges at most BatchSize runs into w. ord lists the live
// sources so that ord[0] holds the smallest current line; equal lines are
// taken from the lower-numbered source first.
func (e *engine) mergeGroup(ctx context.Context, runs []run, w io.Writer, outName string) (err error) {
	budget := max(e.opts.Budget/(len(runs)+1), minSourceBudget)
	srcs := make([]*source, 0, len(runs))
	defer func() {
		for _, s := range srcs {
			err = errors.Join(err, s.close())
		}
	}()

	ord := make([]int, 0, len(runs))
	for _, r := range runs {
		s, err := e.open(r, budget)
		if err != nil {
			return err
		}
		srcs = append(srcs, s)
		ok, err := s.advance()
		if err != nil {
			return err
		}
		if !ok {
			if err := e.release(s); err != nil {
				return err
			}
			continue
		}
		ord = append(ord, len(srcs)-1)
	}
	slices.SortStableFunc(ord, func(a, b int) int {
		return e.cmp.Compare(srcs[a].view(), srcs[b].view())
	})

	emit := func(line []byte) error {
		if _, err := w.Write(line); err != nil {
			return &IOError{Op: "write", Path: outName, Err: err}
		}
		return nil
	}

	var (
		saved     []byte
		savedView compare.View
		haveSaved bool
		merged    int
	)
	for len(ord) > 0 {
		merged++
		if merged%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		s := srcs[ord[0]]
		if e.opts.Unique {
			// Hold the first line of each run of equal lines until a
			// different line shows up, possibly from another source.
			if !haveSaved || e.cmp.Compare(savedView, s.view()) != 0 {
				if haveSaved {
					if err := emit(saved); err != nil {
						return err
					}
				}
				saved = append(saved[:0], s.bytes()...)
				savedView = e.cmp.View(saved[:len(saved)-1])
				haveSaved = true
			}
		} else if err := emit(s.bytes()); err != nil {
			return err
		}

		ok, err := s.advance()
		if err != nil {
			return err
		}
		if !ok {
			if err := e.release(s); err != nil {
				return err
			}
			ord = ord[1:]
			continue
		}
		e.reinsert(srcs, ord)
	}
	if haveSaved {
		return emit(saved)
	}
	return nil
}

// reinsert moves ord[0] to its place among ord[1:], which is ordered.
func (e *engine) reinsert(srcs []*source, ord []int) {
	first := ord[0]
	v := srcs[first].view()
	lo, hi := 1, len(ord)
	for lo < hi {
		probe := (lo + hi) / 2
		c := e.cmp.Compare(v, srcs[ord[probe]].view())
		if c < 0 || (c == 0 && first < ord[probe]) {
			hi = probe
		} else {
			lo = probe + 1
		}
	}
	copy(ord[:lo-1], ord[1:lo])
	ord[lo-1] = first
}
