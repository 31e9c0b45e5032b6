// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/xsort/xsort/internal/collate"
	"github.com/xsort/xsort/internal/compare"
	"github.com/xsort/xsort/internal/engine"
	"github.com/xsort/xsort/internal/issue"
	"github.com/xsort/xsort/internal/keys"
	"github.com/xsort/xsort/internal/tempfile"
	"github.com/xsort/xsort/pkg/types"
)

// runSort is the root command's RunE: it sorts, merges or checks args.
func runSort(cmd *cobra.Command, app *App, f *sortFlags, args []string) error {
	opts, err := buildOptions(cmd, app, f)
	if err != nil {
		return &ExitError{Code: types.ExitFatal, Err: err}
	}
	if f.checking() && len(args) > 1 {
		return &ExitError{Code: types.ExitFatal, Err: issue.NewErrorContext().
			WithOperation("check input").
			WithResource(args[1]).
			WithSuggestion("Check one file at a time; -c accepts at most one FILE").
			WithIssue(issue.InvalidOptionId).
			Wrap(&engine.InvalidOptionError{Option: "operand", Reason: "extra operand with --check"}).
			BuildError()}
	}
	if len(args) == 0 {
		args = []string{engine.StdinName}
	}
	inputs := app.inputs(args)

	ctx := cmd.Context()
	done := make(chan struct{})
	defer close(done)
	go watchInterrupt(ctx, opts.Temp.Registry(), app.logger, done, os.Exit)

	if f.checking() {
		return app.check(ctx, inputs, opts, f.checkQuiet)
	}

	out, closeOut := app.openOutput(f.output)
	var code types.ExitCode
	if f.merge {
		inputs, err = app.protectOutput(inputs, f.output, opts.Temp)
		if err != nil {
			if cerr := opts.Temp.Registry().Cleanup(); cerr != nil {
				app.logger.Warn("failed to remove temporary files", "err", cerr)
			}
			_ = closeOut(false)
			return &ExitError{Code: types.ExitFatal, Err: describeRunError(err)}
		}
		code, err = engine.RunMerge(ctx, inputs, out, opts)
	} else {
		code, err = engine.RunSort(ctx, inputs, out, opts)
	}
	if cerr := closeOut(err == nil); cerr != nil && err == nil {
		code, err = types.ExitFatal, &engine.IOError{Op: "close", Path: f.output, Err: cerr}
	}
	if err != nil {
		return &ExitError{Code: code, Err: describeRunError(err)}
	}
	return nil
}

// buildOptions merges flags over the loaded configuration. Everything that
// can be rejected without I/O is rejected here.
func buildOptions(cmd *cobra.Command, app *App, f *sortFlags) (engine.Options, error) {
	cfg := app.cfg
	flags := cmd.Flags()

	global, err := keys.ParseOptions(f.globalLetters())
	if err != nil {
		return engine.Options{}, optionError("ordering options", err)
	}

	opts := engine.DefaultOptions()
	opts.Keys = keys.Resolve(f.keys.specs, global)
	opts.Reverse = global.Reverse
	opts.Stable = f.stable
	opts.Unique = f.unique
	opts.CheckAll = f.checkAll
	opts.Logger = app.logger

	if flags.Changed("field-separator") {
		sep, err := parseSeparator(f.separator)
		if err != nil {
			return engine.Options{}, optionError("field separator", err)
		}
		opts.Separator = int(sep)
	}
	if f.zeroTerminated {
		opts.Terminator = 0
	}

	var budget types.ByteSize
	if flags.Changed("buffer-size") {
		budget, err = types.ParseByteSize(f.bufferSize)
	} else {
		budget, err = cfg.BufferSize.Bytes()
	}
	if err != nil {
		return engine.Options{}, optionError("buffer size", err)
	}
	opts.Budget = budget.Int()

	opts.BatchSize = int(cfg.BatchSize)
	if flags.Changed("batch-size") {
		opts.BatchSize = f.batchSize
	}
	if opts.BatchSize < engine.MinBatchSize {
		return engine.Options{}, optionError("batch size", fmt.Errorf("%d is below the minimum of %d", opts.BatchSize, engine.MinBatchSize))
	}

	opts.Numbers = compare.NumberFormat{
		DecimalPoint:       '.',
		ThousandsSeparator: cfg.ThousandsSeparator.Byte(),
	}
	if dp := cfg.DecimalPoint.Byte(); dp >= 0 {
		opts.Numbers.DecimalPoint = byte(dp)
	}
	opts.Collator = app.collator(f.locale)

	dirs := f.tempDirs
	if len(dirs) == 0 {
		for _, d := range cfg.TempDirs {
			dirs = append(dirs, string(d))
		}
	}
	opts.Temp = tempfile.NewFactory(app.Fs, dirs, tempfile.NewRegistry(app.Fs))

	opts.OutputName = engine.StdinName
	if f.output != "" {
		opts.OutputName = f.output
	}

	if err := opts.Validate(); err != nil {
		return engine.Options{}, optionError("options", err)
	}
	return opts, nil
}

// parseSeparator accepts a single byte, or "\0" for NUL.
func parseSeparator(s string) (byte, error) {
	switch {
	case s == `\0`:
		return 0, nil
	case len(s) == 1:
		return s[0], nil
	case s == "":
		return 0, errors.New("empty tab")
	default:
		return 0, fmt.Errorf("multi-character tab %q", s)
	}
}

func optionError(option string, err error) error {
	return issue.NewErrorContext().
		WithOperation("parse " + option).
		WithIssue(issue.InvalidOptionId).
		WithSuggestion("Run 'xsort --help' for the accepted values").
		Wrap(err).
		BuildError()
}

// collator resolves the locale from --locale, the config file and the
// environment, in that order. An unknown locale falls back to byte order.
func (a *App) collator(flagLocale string) collate.Collator {
	name := flagLocale
	if name == "" {
		name = a.cfg.Locale
	}
	if name == "" {
		name = collate.FromEnvironment(a.lookupEnv)
	}
	coll, err := collate.ForLocale(name)
	if err != nil {
		a.logger.Warn("using byte order", "err", err)
		return collate.Ordinal()
	}
	a.logger.Debug("collation", "locale", coll.Name())
	return coll
}

// inputs maps FILE operands to engine inputs; "-" is standard input.
func (a *App) inputs(args []string) []engine.Input {
	inputs := make([]engine.Input, len(args))
	for i, name := range args {
		if name == engine.StdinName {
			inputs[i] = engine.ReaderInput(name, a.stdin)
		} else {
			inputs[i] = engine.FileInput(a.Fs, name)
		}
	}
	return inputs
}

func (a *App) check(ctx context.Context, inputs []engine.Input, opts engine.Options, quiet bool) error {
	report, err := engine.RunCheck(ctx, inputs, opts)
	if err != nil {
		return &ExitError{Code: engine.ExitCodeFor(err), Err: describeRunError(err)}
	}
	if !quiet {
		for _, d := range report.Disorders {
			fmt.Fprintf(a.stderr, "%s: %s:%d: disorder: %s\n", "xsort", d.Input, d.Line, d.Text)
		}
	}
	a.logger.Debug("checked input", "input", report.Input, "lines", report.Lines, "disorders", len(report.Disorders))
	if status := report.Status(); status != types.ExitOK {
		return &ExitError{Code: status}
	}
	return nil
}

// openOutput returns the sink for -o (standard output when empty) and a
// function that closes it. The file is opened on the first write, so
// that sorting can read the file it replaces; a successful run that wrote
// nothing still creates it. closeOut(false) never creates the file.
func (a *App) openOutput(path string) (io.Writer, func(ok bool) error) {
	if path == "" || path == engine.StdinName {
		return a.stdout, func(bool) error { return nil }
	}
	out := &lazyFile{fs: a.Fs, path: path}
	return out, out.finish
}

// protectOutput copies any input that is also the -o file into a
// temporary file, since merging writes output while inputs are still
// being read. The copies are registered and removed with the other runs.
func (a *App) protectOutput(inputs []engine.Input, output string, temp *tempfile.Factory) ([]engine.Input, error) {
	if output == "" || output == engine.StdinName {
		return inputs, nil
	}
	outInfo, err := a.Fs.Stat(output)
	if err != nil {
		// Nothing to protect when the output does not exist yet.
		return inputs, nil
	}
	for i, in := range inputs {
		if in.Name == engine.StdinName {
			continue
		}
		info, err := a.Fs.Stat(in.Name)
		if err != nil || !sameFile(in.Name, output, info, outInfo) {
			continue
		}
		copyPath, err := a.copyToTemp(in, temp)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("copied input that is also the output", "input", in.Name, "copy", copyPath)
		inputs[i] = engine.Input{Name: in.Name, Open: func() (io.ReadCloser, error) { return a.Fs.Open(copyPath) }}
	}
	return inputs, nil
}

func sameFile(a, b string, ai, bi os.FileInfo) bool {
	if os.SameFile(ai, bi) {
		return true
	}
	return cleanPath(a) == cleanPath(b)
}

func (a *App) copyToTemp(in engine.Input, temp *tempfile.Factory) (string, error) {
	src, err := in.Open()
	if err != nil {
		return "", &engine.IOError{Op: "open", Path: in.Name, Err: err}
	}
	defer src.Close()

	path, dst, err := temp.Create()
	if err != nil {
		return "", &engine.IOError{Op: "create", Path: path, Err: err}
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return "", &engine.IOError{Op: "write", Path: path, Err: err}
	}
	if err := dst.Close(); err != nil {
		return "", &engine.IOError{Op: "close", Path: path, Err: err}
	}
	return path, nil
}

// describeRunError attaches user guidance to errors from the engine.
func describeRunError(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}

	var (
		ioErr  *engine.IOError
		resErr *engine.ResourceError
		optErr *engine.InvalidOptionError
	)
	ec := issue.NewErrorContext().Wrap(err)
	switch {
	case errors.As(err, &resErr):
		ec.WithOperation("read input").
			WithResource(resErr.Path).
			WithIssue(issue.LineTooLongId).
			WithSuggestion("Use -z if the input is NUL-terminated")
	case errors.As(err, &ioErr) && ioErr.Op == "create":
		ec.WithOperation("create temporary file").
			WithResource(ioErr.Path).
			WithIssue(issue.TempDirUnavailableId).
			WithSuggestion("Pass a writable directory with -T, or set temp_dirs in the config file")
	case errors.As(err, &ioErr) && (ioErr.Op == "write" || ioErr.Op == "close"):
		ec.WithOperation("write output").
			WithResource(ioErr.Path).
			WithIssue(issue.WriteFailedId).
			WithSuggestion("Check free space and permissions for the output and temp directories")
	case errors.As(err, &ioErr) && (ioErr.Op == "open" || ioErr.Op == "read"):
		ec.WithOperation("read input").
			WithResource(ioErr.Path).
			WithIssue(issue.InputUnreadableId).
			WithSuggestion("Check that the file exists and is readable")
	case errors.As(err, &optErr):
		ec.WithOperation("validate options").
			WithIssue(issue.InvalidOptionId)
	default:
		return err
	}
	return ec.BuildError()
}
