// SPDX-License-Identifier: MPL-2.0

// Package collate provides the collation strategies used for default-order
// key comparison: ordinal byte order, or locale-aware order backed by
// golang.org/x/text/collate.
package collate
