// SPDX-License-Identifier: MPL-2.0

// Package engine implements external merge sorting of text lines.
//
// RunSort reads its inputs in batches bounded by a memory budget, sorts each
// batch with a stable merge sort, spills batches to temporary files when the
// input does not fit, and merges the runs with a bounded fan-in. RunMerge
// merges inputs that are already sorted, and RunCheck verifies that an input
// is sorted. Every temporary file lives in a tempfile.Registry that is
// emptied before the run functions return.
//
// The engine is single-threaded. Cancellation through the context is
// observed between batches and periodically while merging.
package engine
