// SPDX-License-Identifier: MPL-2.0

// Package tempfile creates and tracks the temporary run files of a sort.
//
// A Factory creates uniquely named files in a round-robin over the
// configured directories and records each one in a Registry before handing
// it out. The Registry is the single list of live temporary files: the
// merger removes files through it once they are consumed, and signal or
// error paths call Cleanup to remove whatever is left.
package tempfile
