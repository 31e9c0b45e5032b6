// SPDX-License-Identifier: MPL-2.0

// Package compare implements key and line comparison.
//
// Field comparisons (byte order, ignore sets and case folding, numeric,
// general numeric, month names) live on Field; Comparator chains them over a
// resolved key list and falls back to whole-line comparison. Neither type is
// safe for concurrent use: both keep scratch buffers between calls.
package compare
