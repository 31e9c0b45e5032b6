// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/xsort/xsort/internal/config"
)

type (
	// App wires CLI services and shared dependencies. Every command handler
	// receives the App and reaches files, streams and configuration through it.
	App struct {
		Config config.Provider
		Fs     afero.Fs

		stdin     io.Reader
		stdout    io.Writer
		stderr    io.Writer
		lookupEnv func(string) (string, bool)

		// Set by the root command's PersistentPreRunE.
		configPath string
		verbose    bool
		cfg        *config.Config
		logger     *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config    config.Provider
		Fs        afero.Fs
		Stdin     io.Reader
		Stdout    io.Writer
		Stderr    io.Writer
		LookupEnv func(string) (string, bool)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.LookupEnv == nil {
		deps.LookupEnv = os.LookupEnv
	}

	return &App{
		Config:    deps.Config,
		Fs:        deps.Fs,
		stdin:     deps.Stdin,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
		lookupEnv: deps.LookupEnv,
		cfg:       config.DefaultConfig(),
		logger:    newLogger(deps.Stderr, false),
	}
}

// newLogger logs warnings, or debug events when verbose.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: config.AppName})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// loadConfig loads the configuration named by --config (or the default
// location) and applies ui.verbose unless --verbose was given.
func (a *App) loadConfig(ctx context.Context, verboseFlag bool) error {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.configPath})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.verbose = verboseFlag || cfg.UI.Verbose
	a.logger = newLogger(a.stderr, a.verbose)
	return nil
}

// glamourStyle maps ui.color_scheme to a glamour style name.
func (a *App) glamourStyle() string {
	switch a.cfg.UI.ColorScheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}
