// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for xsort.
//
// The root command sorts, merges or checks its FILE arguments; the config
// subcommands inspect and initialize the configuration file.
package cmd
