// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name: "operation only",
			err: &ActionableError{
				Operation: "load build manifest",
			},
			expected: "failed to load build manifest",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "load build manifest",
				Resource:  "./girder.cue",
			},
			expected: "failed to load build manifest: ./girder.cue",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "write descriptor",
				Cause:     errors.New("permission denied"),
			},
			expected: "failed to write descriptor: permission denied",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "load build manifest",
				Resource:  "./girder.cue",
				Cause:     errors.New("file not found"),
			},
			expected: "failed to load build manifest: ./girder.cue: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Run("suggestions are bulleted", func(t *testing.T) {
		err := &ActionableError{
			Operation:   "load build manifest",
			Suggestions: []string{"Run 'girder init' to scaffold one", "Check the path"},
		}
		got := err.Format(false)
		if !strings.Contains(got, "• Run 'girder init' to scaffold one") {
			t.Errorf("Format() missing first suggestion:\n%s", got)
		}
		if !strings.Contains(got, "• Check the path") {
			t.Errorf("Format() missing second suggestion:\n%s", got)
		}
	})

	t.Run("verbose includes error chain", func(t *testing.T) {
		inner := errors.New("root cause")
		err := &ActionableError{
			Operation: "write descriptor",
			Cause:     WrapWithOperation(inner, "render"),
		}
		got := err.Format(true)
		if !strings.Contains(got, "Error chain:") {
			t.Errorf("Format(true) missing chain:\n%s", got)
		}
		if !strings.Contains(got, "root cause") {
			t.Errorf("Format(true) missing root cause:\n%s", got)
		}
	})

	t.Run("non-verbose omits chain", func(t *testing.T) {
		err := &ActionableError{
			Operation: "write descriptor",
			Cause:     errors.New("disk full"),
		}
		if got := err.Format(false); strings.Contains(got, "Error chain:") {
			t.Errorf("Format(false) should omit chain:\n%s", got)
		}
	})
}

func TestActionableError_Unwrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := WrapWithContext(sentinel, "load build manifest", "./girder.cue")
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should reach the wrapped cause")
	}
}

func TestWrapHelpers_NilError(t *testing.T) {
	if got := WrapWithOperation(nil, "x"); got != nil {
		t.Errorf("WrapWithOperation(nil) = %v, want nil", got)
	}
	if got := WrapWithContext(nil, "x", "y"); got != nil {
		t.Errorf("WrapWithContext(nil) = %v, want nil", got)
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Run("full builder", func(t *testing.T) {
		cause := errors.New("boom")
		err := NewErrorContext().
			WithOperation("load build manifest").
			WithResource("./girder.cue").
			WithSuggestion("Check the manifest syntax").
			Wrap(cause).
			Build()
		if err == nil {
			t.Fatal("Build() = nil")
		}
		if err.Operation != "load build manifest" || err.Resource != "./girder.cue" {
			t.Errorf("Build() = %+v", err)
		}
		if !err.HasSuggestions() {
			t.Error("HasSuggestions() = false")
		}
		if !errors.Is(err, cause) {
			t.Error("cause not wrapped")
		}
	})

	t.Run("missing operation yields nil", func(t *testing.T) {
		if err := NewErrorContext().WithResource("x").Build(); err != nil {
			t.Errorf("Build() = %v, want nil", err)
		}
		if err := NewErrorContext().BuildError(); err != nil {
			t.Errorf("BuildError() = %v, want nil", err)
		}
	})
}
