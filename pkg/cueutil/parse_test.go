// SPDX-License-Identifier: MPL-2.0

package cueutil_test

import (
	"strings"
	"testing"

	"girder/pkg/cueutil"
)

const testSchema = `
#Widget: {
	name:    string & !=""
	size:    int & >0
	labels?: [...string]
}
`

type widget struct {
	Name   string   `json:"name"`
	Size   int      `json:"size"`
	Labels []string `json:"labels,omitempty"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	t.Run("valid input decodes", func(t *testing.T) {
		t.Parallel()

		data := []byte(`name: "gear", size: 3, labels: ["a", "b"]`)
		result, err := cueutil.ParseAndDecodeString[widget](testSchema, data, "#Widget")
		if err != nil {
			t.Fatalf("ParseAndDecodeString() error = %v", err)
		}
		if result.Value.Name != "gear" || result.Value.Size != 3 {
			t.Errorf("decoded widget = %+v", *result.Value)
		}
		if len(result.Value.Labels) != 2 {
			t.Errorf("labels = %v, want 2 entries", result.Value.Labels)
		}
	})

	t.Run("schema violation reports field path", func(t *testing.T) {
		t.Parallel()

		data := []byte(`name: "gear", size: "big"`)
		_, err := cueutil.ParseAndDecodeString[widget](testSchema, data, "#Widget")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "size") {
			t.Errorf("error should name the invalid field, got: %v", err)
		}
	})

	t.Run("missing required field fails concrete validation", func(t *testing.T) {
		t.Parallel()

		data := []byte(`name: "gear"`)
		_, err := cueutil.ParseAndDecodeString[widget](testSchema, data, "#Widget")
		if err == nil {
			t.Fatal("expected error for missing size")
		}
	})

	t.Run("syntax error includes filename", func(t *testing.T) {
		t.Parallel()

		data := []byte(`name: "gear`)
		_, err := cueutil.ParseAndDecodeString[widget](testSchema, data, "#Widget",
			cueutil.WithFilename("widget.cue"))
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "widget.cue") {
			t.Errorf("error should contain filename, got: %v", err)
		}
	})

	t.Run("oversized input rejected", func(t *testing.T) {
		t.Parallel()

		data := []byte(`name: "gear", size: 3`)
		_, err := cueutil.ParseAndDecodeString[widget](testSchema, data, "#Widget",
			cueutil.WithMaxFileSize(4))
		if err == nil {
			t.Fatal("expected size limit error")
		}
		if !strings.Contains(err.Error(), "exceeds maximum") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unknown schema path is internal error", func(t *testing.T) {
		t.Parallel()

		data := []byte(`name: "gear", size: 3`)
		_, err := cueutil.ParseAndDecodeString[widget](testSchema, data, "#Nope")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "internal error") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
