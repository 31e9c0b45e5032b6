// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"bytes"
	"context"

	"github.com/xsort/xsort/internal/compare"
	"github.com/xsort/xsort/pkg/types"
)

type (
	// Disorder locates a line that sorts before its predecessor, or equals
	// it when checking for unique order. Line is 1-based and Text excludes
	// the terminator.
	Disorder struct {
		Input string
		Line  int64
		Text  []byte
	}

	// CheckReport is the result of RunCheck.
	CheckReport struct {
		Input string
		// Lines is the number of lines examined.
		Lines     int64
		Disorders []Disorder
	}
)

// Ordered reports whether no disorder was found.
func (r CheckReport) Ordered() bool { return len(r.Disorders) == 0 }

// Status returns ExitOK for ordered input and ExitDisorder otherwise.
func (r CheckReport) Status() types.ExitCode {
	if r.Ordered() {
		return types.ExitOK
	}
	return types.ExitDisorder
}

// check compares every line with its predecessor. It stops at the first
// disorder unless CheckAll is set.
func (e *engine) check(ctx context.Context, in Input) (CheckReport, error) {
	report := CheckReport{Input: in.Name}
	rc, err := in.Open()
	if err != nil {
		return report, &IOError{Op: "open", Path: in.Name, Err: err}
	}
	defer rc.Close()

	// Under unique order equal neighbours are a disorder too.
	threshold := 0
	if e.opts.Unique {
		threshold = -1
	}

	buf := e.newBuffer(e.opts.Budget)
	var (
		prev     []byte
		prevView compare.View
		have     bool
	)
	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		ok, err := buf.Fill(rc)
		if err != nil {
			return report, readError(in.Name, err)
		}
		if !ok {
			return report, nil
		}

		lines := buf.Lines()
		for _, l := range lines {
			report.Lines++
			v := view(buf, l)
			if have && e.cmp.Compare(prevView, v) > threshold {
				report.Disorders = append(report.Disorders, Disorder{
					Input: in.Name,
					Line:  report.Lines,
					Text:  bytes.Clone(v.Text),
				})
				if !e.opts.CheckAll {
					return report, nil
				}
			}
			prevView, have = v, true
		}

		// The next Fill reuses the arena, so keep a copy of the last line.
		prev = append(prev[:0], buf.Text(lines[len(lines)-1])...)
		prevView = e.cmp.View(prev)
	}
}
