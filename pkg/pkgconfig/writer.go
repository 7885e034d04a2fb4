// SPDX-License-Identifier: MPL-2.0

package pkgconfig

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"girder/pkg/verspec"
)

// Render serializes a resolved descriptor into the on-disk text format.
// Output is line-oriented, UTF-8, LF-terminated, and byte-for-byte
// deterministic for equal inputs.
func Render(r *Resolved) ([]byte, error) {
	var buf bytes.Buffer

	for _, v := range r.Variables {
		fmt.Fprintf(&buf, "%s=%s\n", v.Name, v.Value)
	}
	buf.WriteByte('\n')

	writeField(&buf, "Name", r.DescName)
	writeField(&buf, "Description", r.Desc)
	writeField(&buf, "URL", r.URL)
	writeField(&buf, "Version", r.Version)
	writeField(&buf, "Requires", renderRequirements(r.Requires, string(verspec.OpEqual)))
	writeField(&buf, "Requires.private", renderRequirements(r.RequiresPrivate, string(verspec.OpEqual)))
	writeField(&buf, "Conflicts", renderRequirements(r.Conflicts, "="))

	cflags, err := renderTokens(r.Cflags)
	if err != nil {
		return nil, err
	}
	writeField(&buf, "Cflags", cflags)

	ldflags, err := renderTokens(r.Ldflags)
	if err != nil {
		return nil, err
	}
	writeField(&buf, "Libs", ldflags)

	ldflagsPrivate, err := renderTokens(r.LdflagsPrivate)
	if err != nil {
		return nil, err
	}
	writeField(&buf, "Libs.private", ldflagsPrivate)

	return buf.Bytes(), nil
}

// WriteFile renders the descriptor and writes it atomically: the content
// goes to a temporary file in the target directory which is renamed into
// place, so a failure never leaves a partially written descriptor behind.
func WriteFile(path string, r *Resolved) (err error) {
	data, err := Render(r)
	if err != nil {
		return fmt.Errorf("render %q: %w", r.Name, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create descriptor directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temporary descriptor file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %q: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// writeField appends "Name: value" lines, omitting fields with no value.
func writeField(buf *bytes.Buffer, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(buf, "%s: %s\n", name, value)
}

func renderRequirements(reqs []SimpleRequirement, equalOp string) string {
	parts := make([]string, len(reqs))
	for i, r := range reqs {
		parts[i] = r.render(equalOp)
	}
	return strings.Join(parts, ", ")
}

// renderTokens shell-escapes flag tokens and joins them with spaces.
// Tokens referencing descriptor variables like ${libdir} must stay
// literal, so quoting only kicks in for tokens containing whitespace or
// quote characters.
func renderTokens(tokens []string) (string, error) {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		if !strings.ContainsAny(tok, " \t\n'\"\\\x00") {
			parts[i] = tok
			continue
		}
		quoted, err := syntax.Quote(tok, syntax.LangPOSIX)
		if err != nil {
			return "", fmt.Errorf("unquotable token %q: %w", tok, err)
		}
		parts[i] = quoted
	}
	return strings.Join(parts, " "), nil
}
