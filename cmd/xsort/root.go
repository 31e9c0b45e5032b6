// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/xsort/xsort/internal/issue"
	"github.com/xsort/xsort/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// newRootCommand builds the xsort command tree around app.
func newRootCommand(app *App) *cobra.Command {
	flags := &sortFlags{}
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "xsort [flags] [FILE...]",
		Short: "Sort, merge or check lines of text files of any size",
		Long: TitleStyle.Render("xsort") + SubtitleStyle.Render(" - external merge sort for text lines") + `

Write the sorted concatenation of all FILEs to standard output. With no
FILE, or when FILE is -, read standard input. Inputs larger than the
memory budget (-S) are sorted in runs spilled to temporary files (-T) and
merged back with at most --batch-size runs open at once.

` + SubtitleStyle.Render("KEYDEF") + ` is F[.C][OPTS][,F[.C][OPTS]] for start and stop position, where F
is a field number and C a character position in the field; both are
origin 1, and the stop position defaults to the line's end. OPTS is one or
more single-letter ordering options [bdfgiMnr], which override global
ordering options for that key.

` + SubtitleStyle.Render("Examples:") + `
  xsort -n sizes.txt              Sort numerically
  xsort -t: -k3,3n /etc/passwd    Sort by the third colon-separated field
  xsort -m -o all.txt a.txt b.txt Merge already sorted files
  xsort -c data.txt               Exit 1 if data.txt is not sorted
  xsort config show               Show the effective configuration`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.loadConfig(cmd.Context(), verbose); err != nil {
				return &ExitError{Code: types.ExitFatal, Err: configLoadError(err)}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, app, flags, args)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/xsort/config.cue)")
	flags.register(rootCmd.Flags())

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		// Flags before the bad one are parsed; honor an early -v.
		app.verbose = app.verbose || verbose
		id := issue.InvalidOptionId
		if flags.keys.err != nil {
			id = issue.InvalidKeySpecId
		}
		return &ExitError{Code: types.ExitFatal, Err: issue.NewErrorContext().
			WithOperation("parse flags").
			WithIssue(id).
			WithSuggestion("Run 'xsort --help' for usage").
			Wrap(err).
			BuildError()}
	})

	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.AddCommand(newConfigCommand(app))
	return rootCmd
}

// Execute runs xsort with the process arguments and exits with its status.
// This is called by main.main().
func Execute() {
	os.Exit(Run())
}

// Run executes the root command and returns the process exit status.
func Run() int {
	app := NewApp(Dependencies{})
	rootCmd := newRootCommand(app)

	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			reportError(w, app, err)
		}),
	)
	return int(exitCode(err))
}

// exitCode maps a command error to the process exit status. Errors that
// carry no status, such as cobra usage errors, are fatal.
func exitCode(err error) types.ExitCode {
	if err == nil {
		return types.ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, context.Canceled) {
		return types.ExitInterrupted
	}
	return types.ExitFatal
}

// reportError prints err as "xsort: message". Verbose mode adds the
// rendered catalog guide linked to the error.
func reportError(w io.Writer, app *App, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fmt.Fprintln(w, "xsort: "+formatErrorForDisplay(err, app.verbose))

	var ae *issue.ActionableError
	if !app.verbose || !errors.As(err, &ae) {
		return
	}
	if guide := ae.CatalogIssue(); guide != nil {
		rendered, rerr := guide.Render(app.glamourStyle())
		if rerr != nil {
			app.logger.Debug("failed to render issue guide", "err", rerr)
			return
		}
		fmt.Fprint(w, rendered)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
