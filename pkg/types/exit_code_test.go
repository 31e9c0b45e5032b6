// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestExitCodeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     ExitCode
		wantValid bool
	}{
		{name: "ok is valid", value: ExitOK, wantValid: true},
		{name: "disorder is valid", value: ExitDisorder, wantValid: true},
		{name: "fatal is valid", value: ExitFatal, wantValid: true},
		{name: "interrupted is valid", value: ExitInterrupted, wantValid: true},
		{name: "255 is valid", value: 255, wantValid: true},
		{name: "negative is invalid", value: -1, wantValid: false},
		{name: "256 is invalid", value: 256, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if tt.wantValid {
				if err != nil {
					t.Errorf("ExitCode(%d).Validate() returned error for valid value: %v", tt.value, err)
				}
				return
			}
			if err == nil {
				t.Fatal("ExitCode.Validate() returned nil for invalid value")
			}
			if !errors.Is(err, ErrInvalidExitCode) {
				t.Errorf("error does not wrap ErrInvalidExitCode: %v", err)
			}
		})
	}
}

func TestExitCodePredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code         ExitCode
		wantSuccess  bool
		wantDisorder bool
	}{
		{ExitOK, true, false},
		{ExitDisorder, false, true},
		{ExitFatal, false, false},
		{ExitInterrupted, false, false},
	}

	for _, tt := range tests {
		if got := tt.code.IsSuccess(); got != tt.wantSuccess {
			t.Errorf("ExitCode(%d).IsSuccess() = %v, want %v", tt.code, got, tt.wantSuccess)
		}
		if got := tt.code.IsDisorder(); got != tt.wantDisorder {
			t.Errorf("ExitCode(%d).IsDisorder() = %v, want %v", tt.code, got, tt.wantDisorder)
		}
	}
}

func TestExitCodeString(t *testing.T) {
	t.Parallel()

	if got := ExitFatal.String(); got != "2" {
		t.Errorf("ExitFatal.String() = %q, want %q", got, "2")
	}
}
