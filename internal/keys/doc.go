// SPDX-License-Identifier: MPL-2.0

// Package keys describes sort keys and locates them inside a line.
//
// A Spec is an immutable description of one key (start and end positions,
// ordering mode, case folding, ignore set, reverse flag). Specs are usually
// produced by Parse from POSIX "-k POS1[,POS2]" syntax and then completed by
// Resolve, which applies the global ordering options to keys that carry none
// of their own and synthesizes a whole-line key when none were given.
//
// Character classes (blanks, non-printing, non-dictionary, case folding) are
// held in a Tables value that is built once and shared read-only by the
// extractor and the comparators.
package keys
