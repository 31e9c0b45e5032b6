// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/xsort/xsort/internal/collate"
	"github.com/xsort/xsort/internal/compare"
	"github.com/xsort/xsort/internal/keys"
	"github.com/xsort/xsort/internal/tempfile"
)

const (
	// DefaultBudget is the memory budget used when Options.Budget is zero.
	DefaultBudget = 64 << 20

	// DefaultBatchSize is the merge fan-in used when Options.BatchSize is zero.
	DefaultBatchSize = 16

	// MinBatchSize is the smallest usable merge fan-in.
	MinBatchSize = 2

	// minSourceBudget keeps per-source merge buffers useful when the fan-in
	// divides a small budget.
	minSourceBudget = 4096

	// cancelCheckInterval is the number of merged lines between context
	// checks.
	cancelCheckInterval = 1024
)

// Options configure a run. Keys must already be resolved with keys.Resolve;
// an empty list means a whole-line key with default options. Start from
// DefaultOptions: the zero Separator and Terminator select NUL.
type Options struct {
	Keys []keys.Spec
	// Separator is the field separator byte, or keys.NoSeparator.
	Separator  int
	Terminator byte

	Reverse bool
	Stable  bool
	Unique  bool

	// CheckAll makes RunCheck report every disorder instead of the first.
	CheckAll bool

	Collator collate.Collator
	Numbers  compare.NumberFormat

	// Budget is the memory budget in bytes for one in-memory batch.
	Budget int
	// MaxArena caps the size of a single buffer; zero means the linebuf default.
	MaxArena int
	// BatchSize is the merge fan-in (NMERGE).
	BatchSize int

	// Temp creates temporary runs. Nil means the OS temp directory.
	Temp *tempfile.Factory
	// OutputName names the sink in errors.
	OutputName string
	Logger     *log.Logger
}

// DefaultOptions returns options for newline-terminated lines with
// whitespace-separated fields.
func DefaultOptions() Options {
	return Options{Separator: keys.NoSeparator, Terminator: '\n'}
}

// Validate reports options that cannot run.
func (o *Options) Validate() error {
	if o.Budget < 0 {
		return &InvalidOptionError{Option: "buffer size", Reason: "must not be negative"}
	}
	if o.BatchSize != 0 && o.BatchSize < MinBatchSize {
		return &InvalidOptionError{Option: "batch size", Reason: "must be at least 2"}
	}
	if o.Separator != keys.NoSeparator && (o.Separator < 0 || o.Separator > 0xff) {
		return &InvalidOptionError{Option: "field separator", Reason: "must be a single byte"}
	}
	tp := o.Numbers
	if tp != (compare.NumberFormat{}) {
		if !compare.ValidSeparator(tp.DecimalPoint) {
			return &InvalidOptionError{Option: "number format", Reason: fmt.Sprintf("invalid decimal point %q", tp.DecimalPoint)}
		}
		ts := tp.ThousandsSeparator
		if ts != compare.NoThousandsSeparator && (ts < 0 || ts > 0xff || !compare.ValidSeparator(byte(ts))) {
			return &InvalidOptionError{Option: "number format", Reason: fmt.Sprintf("invalid thousands separator %q", rune(ts))}
		}
		if int(tp.DecimalPoint) == ts {
			return &InvalidOptionError{Option: "number format", Reason: "decimal point and thousands separator are the same"}
		}
	}
	return nil
}

// withDefaults returns a copy with zero values replaced by defaults.
func (o Options) withDefaults() Options {
	if o.Budget == 0 {
		o.Budget = DefaultBudget
	}
	if o.BatchSize == 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Numbers == (compare.NumberFormat{}) {
		o.Numbers = compare.CNumberFormat()
	}
	if o.Temp == nil {
		fs := afero.NewOsFs()
		o.Temp = tempfile.NewFactory(fs, nil, tempfile.NewRegistry(fs))
	}
	if o.OutputName == "" {
		o.OutputName = StdinName
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}
