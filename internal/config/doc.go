// SPDX-License-Identifier: MPL-2.0

// Package config handles xsort configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/xsort/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/xsort/config.cue on macOS, %APPDATA%\xsort\config.cue
// on Windows). A config.toml in the same directory is read when no config.cue exists.
// Environment variables prefixed with XSORT_ override file values, and command-line
// flags override both.
//
// Both file formats are validated against the embedded CUE schema (config_schema.cue).
package config
