// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xsort/xsort/internal/compare"
	"github.com/xsort/xsort/pkg/types"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultBufferSize is the in-memory budget used when none is configured.
	DefaultBufferSize BufferSize = "64MiB"
	// DefaultBatchSize is the default merge fan-in.
	DefaultBatchSize BatchSize = 16
	// MinBatchSize is the smallest fan-in that still makes progress.
	MinBatchSize BatchSize = 2
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidBufferSize is the sentinel error wrapped by InvalidBufferSizeError.
	ErrInvalidBufferSize = errors.New("invalid buffer size")
	// ErrInvalidBatchSize is the sentinel error wrapped by InvalidBatchSizeError.
	ErrInvalidBatchSize = errors.New("invalid batch size")
	// ErrInvalidTempDir is returned when a temp_dirs entry is whitespace-only.
	ErrInvalidTempDir = errors.New("invalid temp dir")
	// ErrInvalidNumberSeparator is the sentinel error wrapped by InvalidNumberSeparatorError.
	ErrInvalidNumberSeparator = errors.New("invalid number separator")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// BufferSize is a human-readable memory budget such as "64MiB" or "512k".
	// Suffixes are binary multiples.
	BufferSize string

	// InvalidBufferSizeError is returned when a BufferSize cannot be parsed.
	InvalidBufferSizeError struct {
		Value BufferSize
		Cause error
	}

	// BatchSize is the number of runs merged in a single pass.
	BatchSize int

	// InvalidBatchSizeError is returned when a BatchSize is below MinBatchSize.
	InvalidBatchSizeError struct {
		Value BatchSize
	}

	// TempDir is a candidate directory for spilled runs. Entries may contain
	// shell parameter expansions, resolved by ExpandPath at load time.
	TempDir string

	// InvalidTempDirError is returned when a TempDir value is empty or whitespace-only.
	InvalidTempDirError struct {
		Value TempDir
	}

	// NumberSeparator is a single-byte decimal point or thousands separator.
	// The empty value means "none" and is only valid for the thousands separator.
	NumberSeparator string

	// InvalidNumberSeparatorError is returned for multi-byte separators, an
	// empty decimal point, or a decimal point equal to the thousands separator.
	InvalidNumberSeparatorError struct {
		Field  string
		Value  NumberSeparator
		Reason string
	}

	// InvalidUIConfigError collects field-level validation errors of a UIConfig.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError collects field-level validation errors of a Config.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// BufferSize is the in-memory budget before a batch is spilled.
		BufferSize BufferSize `json:"buffer_size" mapstructure:"buffer_size" toml:"buffer_size"`
		// BatchSize is the merge fan-in (NMERGE).
		BatchSize BatchSize `json:"batch_size" mapstructure:"batch_size" toml:"batch_size"`
		// TempDirs lists directories for spilled runs, used round-robin.
		TempDirs []TempDir `json:"temp_dirs" mapstructure:"temp_dirs" toml:"temp_dirs"`
		// Locale selects the collation; empty defers to LC_ALL/LC_COLLATE/LANG.
		Locale string `json:"locale" mapstructure:"locale" toml:"locale"`
		// DecimalPoint is the radix character for numeric keys.
		DecimalPoint NumberSeparator `json:"decimal_point" mapstructure:"decimal_point" toml:"decimal_point"`
		// ThousandsSeparator is the digit grouping character for numeric keys.
		ThousandsSeparator NumberSeparator `json:"thousands_separator" mapstructure:"thousands_separator" toml:"thousands_separator"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
		// Verbose enables debug logging
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}
)

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// String returns the string representation of the BufferSize.
func (s BufferSize) String() string { return string(s) }

// Bytes parses the size with types.ParseByteSize, so "64m", "64MB" and
// "64MiB" all mean 64 << 20. The size must be positive.
func (s BufferSize) Bytes() (types.ByteSize, error) {
	n, err := types.ParseByteSize(string(s))
	if err != nil {
		return 0, &InvalidBufferSizeError{Value: s, Cause: err}
	}
	return n, nil
}

// IsValid returns whether the BufferSize parses.
func (s BufferSize) IsValid() (bool, []error) {
	if _, err := s.Bytes(); err != nil {
		return false, []error{err}
	}
	return true, nil
}

// Error implements the error interface for InvalidBufferSizeError.
func (e *InvalidBufferSizeError) Error() string {
	return fmt.Sprintf("invalid buffer size %q: %v", e.Value, e.Cause)
}

// Unwrap returns ErrInvalidBufferSize for errors.Is() compatibility.
func (e *InvalidBufferSizeError) Unwrap() error { return ErrInvalidBufferSize }

// IsValid returns whether the BatchSize is at least MinBatchSize.
func (b BatchSize) IsValid() (bool, []error) {
	if b < MinBatchSize {
		return false, []error{&InvalidBatchSizeError{Value: b}}
	}
	return true, nil
}

// Error implements the error interface for InvalidBatchSizeError.
func (e *InvalidBatchSizeError) Error() string {
	return fmt.Sprintf("invalid batch size %d: must be at least %d", e.Value, MinBatchSize)
}

// Unwrap returns ErrInvalidBatchSize for errors.Is() compatibility.
func (e *InvalidBatchSizeError) Unwrap() error { return ErrInvalidBatchSize }

// String returns the string representation of the TempDir.
func (d TempDir) String() string { return string(d) }

// IsValid returns whether the TempDir is non-empty and not whitespace-only.
func (d TempDir) IsValid() (bool, []error) {
	if strings.TrimSpace(string(d)) == "" {
		return false, []error{&InvalidTempDirError{Value: d}}
	}
	return true, nil
}

// Error implements the error interface for InvalidTempDirError.
func (e *InvalidTempDirError) Error() string {
	return fmt.Sprintf("invalid temp dir %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidTempDir for errors.Is() compatibility.
func (e *InvalidTempDirError) Unwrap() error { return ErrInvalidTempDir }

// Byte returns the separator byte, or -1 when the separator is empty.
func (s NumberSeparator) Byte() int {
	if s == "" {
		return -1
	}
	return int(s[0])
}

// Error implements the error interface for InvalidNumberSeparatorError.
func (e *InvalidNumberSeparatorError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidNumberSeparator for errors.Is() compatibility.
func (e *InvalidNumberSeparatorError) Unwrap() error { return ErrInvalidNumberSeparator }

// IsValid returns whether the UIConfig has valid fields.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields. The number
// separators are checked together since they must differ.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.BufferSize.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.BatchSize.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, dir := range c.TempDirs {
		if valid, fieldErrs := dir.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	errs = append(errs, c.validateSeparators()...)
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

func (c Config) validateSeparators() []error {
	var errs []error
	switch len(c.DecimalPoint) {
	case 0:
		errs = append(errs, &InvalidNumberSeparatorError{Field: "decimal_point", Value: c.DecimalPoint, Reason: "must not be empty"})
	case 1:
		if !compare.ValidSeparator(c.DecimalPoint[0]) {
			errs = append(errs, &InvalidNumberSeparatorError{Field: "decimal_point", Value: c.DecimalPoint, Reason: "must not be NUL, a digit, a sign or a blank"})
		}
	default:
		errs = append(errs, &InvalidNumberSeparatorError{Field: "decimal_point", Value: c.DecimalPoint, Reason: "must be a single byte"})
	}
	switch len(c.ThousandsSeparator) {
	case 0:
	case 1:
		if !compare.ValidSeparator(c.ThousandsSeparator[0]) {
			errs = append(errs, &InvalidNumberSeparatorError{Field: "thousands_separator", Value: c.ThousandsSeparator, Reason: "must not be NUL, a digit, a sign or a blank"})
		}
	default:
		errs = append(errs, &InvalidNumberSeparatorError{Field: "thousands_separator", Value: c.ThousandsSeparator, Reason: "must be a single byte or empty"})
	}
	if len(errs) == 0 && c.DecimalPoint == c.ThousandsSeparator {
		errs = append(errs, &InvalidNumberSeparatorError{Field: "thousands_separator", Value: c.ThousandsSeparator, Reason: "must differ from decimal_point"})
	}
	return errs
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid config: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BufferSize:         DefaultBufferSize,
		BatchSize:          DefaultBatchSize,
		TempDirs:           []TempDir{},
		Locale:             "",
		DecimalPoint:       ".",
		ThousandsSeparator: "",
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
