// SPDX-License-Identifier: MPL-2.0

// Package linebuf reads terminator-delimited lines into a reusable arena.
//
// A Buffer owns one growable byte slice. Each Fill call moves the partial
// line left over from the previous call to the front of the arena, reads
// more input, and publishes the complete lines as Line descriptors (offset
// and length into the arena). Descriptors and the byte slices returned for
// them are valid only until the next Fill or Reset.
package linebuf
