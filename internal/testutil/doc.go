// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// The helpers work on an afero.Fs so the same calls serve in-memory and
// on-disk tests: file setup (MustWriteFile, MustReadFile), resource cleanup
// (MustClose) and leftover temporary run detection (LeftoverRuns).
package testutil
