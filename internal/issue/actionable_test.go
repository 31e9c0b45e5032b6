// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "sort input"},
			expected: "failed to sort input",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "read input", Resource: "data.txt"},
			expected: "failed to read input: data.txt",
		},
		{
			name:     "operation with cause",
			err:      &ActionableError{Operation: "parse key", Cause: errors.New("field number is zero")},
			expected: "failed to parse key: field number is zero",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "write output",
				Resource:  "out.txt",
				Cause:     errors.New("no space left on device"),
			},
			expected: "failed to write output: out.txt: no space left on device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_ErrorsIsAs(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("open /scratch/xsort-1: %w", fs.ErrPermission)
	err := NewErrorContext().WithOperation("create temporary file").Wrap(cause).BuildError()

	if !errors.Is(err, fs.ErrPermission) {
		t.Error("errors.Is should see through ActionableError")
	}
	var ae *ActionableError
	if !errors.As(err, &ae) || ae.Operation != "create temporary file" {
		t.Errorf("errors.As failed: %v", err)
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("disk full")
	err := &ActionableError{
		Operation:   "write output",
		Resource:    "out.txt",
		Suggestions: []string{"Free some space", "Use -o on another device"},
		Cause:       fmt.Errorf("flush: %w", inner),
	}

	plain := err.Format(false)
	if !strings.HasPrefix(plain, "failed to write output: out.txt: flush: disk full") {
		t.Errorf("Format(false) = %q", plain)
	}
	if !strings.Contains(plain, "\n  • Free some space") || !strings.Contains(plain, "\n  • Use -o on another device") {
		t.Errorf("Format(false) missing suggestions: %q", plain)
	}
	if strings.Contains(plain, "Error chain") {
		t.Error("Format(false) should not include the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:\n  1. flush: disk full\n  2. disk full") {
		t.Errorf("Format(true) chain wrong: %q", verbose)
	}
}

func TestActionableError_FormatNoSuggestions(t *testing.T) {
	t.Parallel()

	err := &ActionableError{Operation: "sort input"}
	if got := err.Format(true); got != "failed to sort input" {
		t.Errorf("Format(true) = %q", got)
	}
	if err.HasSuggestions() {
		t.Error("HasSuggestions() = true, want false")
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	ae := NewErrorContext().
		WithOperation("merge runs").
		WithResource("/tmp/xsort-a").
		WithSuggestion("one").
		WithSuggestions("two", "three").
		WithIssue(WriteFailedId).
		Wrap(cause).
		Build()

	if ae == nil {
		t.Fatal("Build() returned nil")
	}
	if ae.Operation != "merge runs" || ae.Resource != "/tmp/xsort-a" || ae.Cause != cause {
		t.Errorf("unexpected fields: %+v", ae)
	}
	if len(ae.Suggestions) != 3 || ae.Suggestions[2] != "three" {
		t.Errorf("suggestions = %v", ae.Suggestions)
	}
	if got := ae.CatalogIssue(); got == nil || got.Id() != WriteFailedId {
		t.Errorf("CatalogIssue() = %v", got)
	}
}

func TestErrorContext_RequiresOperation(t *testing.T) {
	t.Parallel()

	if ae := NewErrorContext().WithResource("x").Build(); ae != nil {
		t.Errorf("Build() without operation = %+v, want nil", ae)
	}
	if err := NewErrorContext().Wrap(errors.New("x")).BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil interface", err)
	}
}

func TestActionableError_CatalogIssueUnset(t *testing.T) {
	t.Parallel()

	if got := (&ActionableError{Operation: "x"}).CatalogIssue(); got != nil {
		t.Errorf("CatalogIssue() = %v, want nil", got)
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	if WrapWithContext(nil, "read input", "a") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}

	cause := errors.New("gone")
	ae := WrapWithContext(cause, "read input", "a.txt")
	if ae.Error() != "failed to read input: a.txt: gone" {
		t.Errorf("Error() = %q", ae.Error())
	}
	if !errors.Is(ae, cause) {
		t.Error("wrapped error should match cause")
	}
}
