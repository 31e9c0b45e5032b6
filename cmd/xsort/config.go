// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xsort/xsort/internal/config"
	"github.com/xsort/xsort/internal/issue"
)

// newConfigCommand creates the `xsort config` command tree. Its
// subcommands load configuration themselves, so that `path` and `init`
// keep working while the config file is broken.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize the xsort configuration",
		Long: `Inspect and initialize the xsort configuration.

Configuration is read from config.cue, or config.toml when no CUE file exists, in:
  - Linux: ~/.config/xsort/
  - macOS: ~/Library/Application Support/xsort/
  - Windows: %APPDATA%\xsort\

XSORT_* environment variables override file values, and flags override both.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.verbose, _ = cmd.Flags().GetBool("verbose")
			app.logger = newLogger(app.stderr, app.verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd.OutOrStdout(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd.OutOrStdout())
		},
	})

	var format string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration as CUE or TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: app.configPath})
			if err != nil {
				return configLoadError(err)
			}
			var out string
			switch strings.ToLower(format) {
			case config.ConfigFileExt:
				out = config.GenerateCUE(cfg)
			case config.TOMLFileExt:
				if out, err = config.GenerateTOML(cfg); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q: use cue or toml", format)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
	dumpCmd.Flags().StringVar(&format, "format", config.ConfigFileExt, "output format: cue or toml")
	cfgCmd.AddCommand(dumpCmd)

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App) error {
	cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: app.configPath})
	if err != nil {
		return configLoadError(err)
	}
	path, err := config.FindConfigFile(config.LoadOptions{ConfigFilePath: app.configPath})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if path != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("buffer_size"), valueStyle.Render(string(cfg.BufferSize)))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("batch_size"), valueStyle.Render(fmt.Sprint(cfg.BatchSize)))

	fmt.Fprintf(w, "%s:\n", keyStyle.Render("temp_dirs"))
	if len(cfg.TempDirs) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(system temporary directory)"))
	}
	for _, dir := range cfg.TempDirs {
		fmt.Fprintf(w, "  - %s\n", valueStyle.Render(string(dir)))
	}

	locale := cfg.Locale
	if locale == "" {
		locale = SubtitleStyle.Render("(from environment)")
	} else {
		locale = valueStyle.Render(locale)
	}
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("locale"), locale)
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("decimal_point"), valueStyle.Render(fmt.Sprintf("%q", cfg.DecimalPoint)))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("thousands_separator"), valueStyle.Render(fmt.Sprintf("%q", cfg.ThousandsSeparator)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprint(cfg.UI.Verbose)))
	return nil
}

func showConfigPath(w io.Writer, app *App) error {
	path, err := config.FindConfigFile(config.LoadOptions{ConfigFilePath: app.configPath})
	if err != nil {
		return err
	}
	if path == "" {
		dir, err := config.ConfigDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt)
		fmt.Fprintf(w, "%s (not created)\n", path)
		return nil
	}
	fmt.Fprintln(w, path)
	return nil
}

func initConfig(w io.Writer) error {
	existing, err := config.FindConfigFile(config.LoadOptions{})
	if err != nil {
		return err
	}
	path, err := config.CreateDefaultConfig("")
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("create configuration").
			WithSuggestion("Check that the config directory is writable").
			Wrap(err).
			BuildError()
	}
	if existing != "" {
		fmt.Fprintf(w, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(w, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

// configLoadError links a load failure to the configuration guide.
func configLoadError(err error) error {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		if ae.Issue == 0 {
			ae.Issue = issue.ConfigLoadFailedId
		}
		return ae
	}
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithIssue(issue.ConfigLoadFailedId).
		Wrap(err).
		BuildError()
}
