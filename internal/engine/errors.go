// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/xsort/xsort/internal/keys"
	"github.com/xsort/xsort/pkg/types"
)

var (
	// ErrIO is wrapped by every IOError.
	ErrIO = errors.New("i/o failure")

	// ErrResource marks resource exhaustion, such as a line that does not
	// fit in the largest allowed buffer.
	ErrResource = errors.New("resource exhausted")

	// ErrConfig marks options that cannot run.
	ErrConfig = errors.New("invalid configuration")
)

type (
	// IOError is a failed read, write, open or create. Path names the file
	// involved, or "-" for the standard streams.
	IOError struct {
		Op   string
		Path string
		Err  error
	}

	// ResourceError reports exhaustion while processing Path.
	ResourceError struct {
		Path string
		Err  error
	}

	// InvalidOptionError is returned when Options fail validation.
	InvalidOptionError struct {
		Option string
		Reason string
	}
)

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes both ErrIO and the underlying error to errors.Is.
func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }

// Error implements the error interface.
func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrResource and the underlying error to errors.Is.
func (e *ResourceError) Unwrap() []error { return []error{ErrResource, e.Err} }

// Error implements the error interface.
func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Option, e.Reason)
}

// Unwrap returns ErrConfig for errors.Is() compatibility.
func (e *InvalidOptionError) Unwrap() error { return ErrConfig }

// ExitCodeFor maps an error returned by the run functions to the process
// exit status.
func ExitCodeFor(err error) types.ExitCode {
	switch {
	case err == nil:
		return types.ExitOK
	case errors.Is(err, context.Canceled):
		return types.ExitInterrupted
	default:
		return types.ExitFatal
	}
}

// IsConfigError reports whether err is a configuration problem detected
// before any input was read.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfig) || errors.Is(err, keys.ErrInvalidKeySpec)
}
