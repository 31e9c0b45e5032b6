// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/docker/go-units"
)

// ErrInvalidByteSize is the sentinel error wrapped by InvalidByteSizeError.
var ErrInvalidByteSize = errors.New("invalid byte size")

type (
	// ByteSize is a memory amount in bytes. It is used for the sort memory
	// budget, where exceeding the budget triggers spilling rather than failure.
	ByteSize int64

	// InvalidByteSizeError is returned when a size string cannot be parsed or
	// the resulting size is not positive.
	InvalidByteSizeError struct {
		Input string
		Cause error
	}
)

// ParseByteSize parses a human-readable size such as "64M", "1g" or "4096".
// Suffixes are binary multiples (K = 1024), matching sort's -S convention.
// A bare number is taken as bytes.
func ParseByteSize(s string) (ByteSize, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, &InvalidByteSizeError{Input: s}
	}
	n, err := units.RAMInBytes(trimmed)
	if err != nil {
		return 0, &InvalidByteSizeError{Input: s, Cause: err}
	}
	size := ByteSize(n)
	if err := size.Validate(); err != nil {
		return 0, &InvalidByteSizeError{Input: s, Cause: err}
	}
	return size, nil
}

// Validate returns an error if the size is not positive.
func (b ByteSize) Validate() error {
	if b <= 0 {
		return fmt.Errorf("size %d must be positive", int64(b))
	}
	return nil
}

// Int returns the size as an int, clamped to the platform's int range.
func (b ByteSize) Int() int {
	const maxInt = int64(^uint(0) >> 1)
	if int64(b) > maxInt {
		return int(maxInt)
	}
	return int(b)
}

// String renders the size using binary units (e.g. "64MiB").
func (b ByteSize) String() string { return units.BytesSize(float64(b)) }

// Error implements the error interface for InvalidByteSizeError.
func (e *InvalidByteSizeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid byte size %q: %v", e.Input, e.Cause)
	}
	return fmt.Sprintf("invalid byte size %q", e.Input)
}

// Unwrap returns ErrInvalidByteSize for errors.Is() compatibility.
func (e *InvalidByteSizeError) Unwrap() error { return ErrInvalidByteSize }
