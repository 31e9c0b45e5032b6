// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"io"

	"github.com/xsort/xsort/internal/linebuf"
	"github.com/xsort/xsort/pkg/types"
)

// RunSort sorts the concatenation of inputs into out. The sink is first
// written only after every input has been read, so out may replace one of
// the inputs once RunSort starts writing.
func RunSort(ctx context.Context, inputs []Input, out io.Writer, opts Options) (types.ExitCode, error) {
	e, err := newEngine(opts)
	if err != nil {
		return types.ExitFatal, err
	}
	err = e.finish(e.sort(ctx, inputs, out))
	return ExitCodeFor(err), err
}

// RunMerge merges inputs that are each already sorted into out.
func RunMerge(ctx context.Context, inputs []Input, out io.Writer, opts Options) (types.ExitCode, error) {
	e, err := newEngine(opts)
	if err != nil {
		return types.ExitFatal, err
	}
	runs := make([]run, 0, len(inputs))
	for _, in := range inputs {
		runs = append(runs, inputRun(in))
	}
	err = e.finish(e.merge(ctx, runs, out))
	return ExitCodeFor(err), err
}

// RunCheck reports whether the single input is sorted. Disorder is part of
// the report, not an error; the error is reserved for failures.
func RunCheck(ctx context.Context, inputs []Input, opts Options) (CheckReport, error) {
	if len(inputs) != 1 {
		return CheckReport{}, &InvalidOptionError{Option: "check", Reason: "requires exactly one input"}
	}
	e, err := newEngine(opts)
	if err != nil {
		return CheckReport{}, err
	}
	report, err := e.check(ctx, inputs[0])
	return report, e.finish(err)
}

// sort reads every input into batches that may span inputs. Full batches
// are spilled; the last batch goes straight to out when nothing was spilled
// and is otherwise merged from memory together with the spilled runs.
func (e *engine) sort(ctx context.Context, inputs []Input, out io.Writer) error {
	buf := e.newBuffer(e.opts.Budget)
	var runs []run
	pending := false
	for _, in := range inputs {
		rc, err := in.Open()
		if err != nil {
			return &IOError{Op: "open", Path: in.Name, Err: err}
		}
		runs, pending, err = e.sortInput(ctx, in.Name, rc, buf, runs, pending)
		rc.Close()
		if err != nil {
			return err
		}
	}

	if pending {
		lines := buf.Lines()
		e.sortLines(buf, lines)
		if len(runs) == 0 {
			return e.writeOutput(buf, lines, out)
		}
		runs = append(runs, memoryRun(buf, lines))
	}
	e.log.Debug("merging runs", "runs", len(runs), "fan-in", e.opts.BatchSize)
	return e.merge(ctx, runs, out)
}

// sortInput reads one input. pending reports whether buf holds lines that
// are not yet sorted; such a batch is extended with the next input.
func (e *engine) sortInput(ctx context.Context, name string, r io.Reader, buf *linebuf.Buffer, runs []run, pending bool) ([]run, bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return runs, pending, err
		}
		var (
			ok  bool
			err error
		)
		if pending {
			ok, err = buf.Extend(r)
		} else {
			ok, err = buf.Fill(r)
		}
		if err != nil {
			return runs, pending, readError(name, err)
		}
		pending = pending || ok
		if buf.Exhausted() || !pending {
			return runs, pending, nil
		}

		lines := buf.Lines()
		e.sortLines(buf, lines)
		spilled, err := e.spill(buf, lines)
		if err != nil {
			return runs, false, err
		}
		runs = append(runs, spilled)
		pending = false
	}
}
