// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/xsort/xsort/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "xsort"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the primary config file extension.
	ConfigFileExt = "cue"
	// TOMLFileExt is the extension of the alternative TOML config file.
	TOMLFileExt = "toml"
	// EnvPrefix prefixes environment overrides, e.g. XSORT_BUFFER_SIZE.
	EnvPrefix = "XSORT"

	maxConfigFileSize = 1 << 20
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the xsort configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// FindConfigFile returns the config file that Load would read, or "" when
// none exists and defaults apply. An explicit ConfigFilePath must exist.
func FindConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'xsort config show' to see the default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	for _, ext := range []string{ConfigFileExt, TOMLFileExt} {
		path := filepath.Join(cfgDir, ConfigFileName+"."+ext)
		if fileExists(path) {
			return path, nil
		}
	}
	return "", nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. Precedence, lowest first: defaults, config file,
// XSORT_* environment variables.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath, err := FindConfigFile(opts)
	if err != nil {
		return nil, "", err
	}
	if resolvedPath != "" {
		if err := loadFileIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE or TOML syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'xsort config init' to write a commented default file").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	environ := os.Environ()
	for i, dir := range cfg.TempDirs {
		expanded, err := ExpandPath(string(dir), environ)
		if err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("expand temp_dirs").
				WithResource(string(dir)).
				WithSuggestion("Only parameter expansion such as $TMPDIR or ${TMPDIR:-/tmp} is supported").
				Wrap(err).
				BuildError()
		}
		cfg.TempDirs[i] = TempDir(expanded)
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("buffer_size takes a size such as 64MiB, batch_size must be at least 2").
			WithSuggestion("decimal_point and thousands_separator must be single, distinct characters").
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func setDefaults(v *viper.Viper, defaults *Config) {
	v.SetDefault("buffer_size", string(defaults.BufferSize))
	v.SetDefault("batch_size", int(defaults.BatchSize))
	v.SetDefault("temp_dirs", []string{})
	v.SetDefault("locale", defaults.Locale)
	v.SetDefault("decimal_point", string(defaults.DecimalPoint))
	v.SetDefault("thousands_separator", string(defaults.ThousandsSeparator))
	v.SetDefault("ui.color_scheme", string(defaults.UI.ColorScheme))
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadFileIntoViper reads a CUE or TOML config file, validates it against
// the #Config schema and merges it into Viper. TOML documents are encoded
// into CUE so both formats share one schema.
func loadFileIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) > maxConfigFileSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", path, len(data), maxConfigFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))

	var userValue cue.Value
	if strings.EqualFold(filepath.Ext(path), "."+TOMLFileExt) {
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		userValue = ctx.Encode(doc)
	} else {
		userValue = ctx.CompileBytes(data, cue.Filename(path))
	}
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err(), path)
	}

	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return formatCUEError(err, path)
	}

	// Merging keeps defaults for absent keys and lets env overrides win.
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a default config.cue into dir (the platform
// config dir when empty) unless a config file already exists there. It
// returns the path of the existing or created file.
func CreateDefaultConfig(dir string) (string, error) {
	cfgDir, err := configDirWithOverride(dir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	existing, err := FindConfigFile(LoadOptions{ConfigDirPath: cfgDir})
	if err != nil {
		return "", err
	}
	if existing != "" {
		return existing, nil
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// xsort configuration file\n")
	sb.WriteString("// Environment variables prefixed with XSORT_ override these values.\n\n")

	fmt.Fprintf(&sb, "buffer_size: %q\n", cfg.BufferSize)
	fmt.Fprintf(&sb, "batch_size:  %d\n", cfg.BatchSize)

	if len(cfg.TempDirs) > 0 {
		sb.WriteString("temp_dirs: [\n")
		for _, dir := range cfg.TempDirs {
			fmt.Fprintf(&sb, "\t%q,\n", dir)
		}
		sb.WriteString("]\n")
	} else {
		sb.WriteString("// temp_dirs: [\"${TMPDIR:-/tmp}\"]\n")
	}

	if cfg.Locale != "" {
		fmt.Fprintf(&sb, "locale: %q\n", cfg.Locale)
	} else {
		sb.WriteString("// locale: \"en_US.UTF-8\"\n")
	}
	fmt.Fprintf(&sb, "decimal_point: %q\n", cfg.DecimalPoint)
	fmt.Fprintf(&sb, "thousands_separator: %q\n", cfg.ThousandsSeparator)

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}

// GenerateTOML renders the configuration as a config.toml document.
func GenerateTOML(cfg *Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config as TOML: %w", err)
	}
	return string(data), nil
}
