// SPDX-License-Identifier: MPL-2.0

package distmanifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"girder/internal/installpath"
)

func TestAdd(t *testing.T) {
	t.Parallel()

	var m Manifest
	m.Add("pkgconfig/scaffold.pc", installpath.Libdir)
	m.Add("pkgconfig/scaffold.pc", installpath.Libdir)
	m.Add("pkgconfig/extra.pc", installpath.Libdir)

	if len(m.Files) != 2 {
		t.Fatalf("Files = %v, want 2 entries", m.Files)
	}
	if m.Files[0].Path != "pkgconfig/scaffold.pc" || m.Files[1].Path != "pkgconfig/extra.pc" {
		t.Errorf("Files = %v, order not preserved", m.Files)
	}
}

func TestWriteRead(t *testing.T) {
	t.Parallel()

	m := &Manifest{Project: "scaffold", Version: "1.4.0"}
	m.Add("pkgconfig/scaffold.pc", installpath.Libdir)

	path := filepath.Join(t.TempDir(), DefaultFilename)
	if err := Write(path, m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.Project != "scaffold" || got.Version != "1.4.0" {
		t.Errorf("round trip identity = %q %q", got.Project, got.Version)
	}
	if len(got.Files) != 1 || got.Files[0].Root != installpath.Libdir {
		t.Errorf("round trip files = %v", got.Files)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `project = 'scaffold'`) &&
		!strings.Contains(string(data), `project = "scaffold"`) {
		t.Errorf("manifest not TOML-encoded:\n%s", data)
	}
}

func TestWrite_LeavesNoTempOnSuccess(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFilename)
	if err := Write(path, &Manifest{Project: "p"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != DefaultFilename {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("directory contents = %v", names)
	}
}
