// SPDX-License-Identifier: MPL-2.0

package pkgconfig

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFinalizeDuplicateNames(t *testing.T) {
	t.Parallel()

	d1 := mustDescriptor(t, DescriptorSpec{Name: "foo"})
	d2 := mustDescriptor(t, DescriptorSpec{Name: "foo"})

	outDir := t.TempDir()
	_, err := Finalize([]*Descriptor{d1, d2}, Defaults{}, fakeCC{}, fakeLayout{}, outDir, nil)
	if err == nil {
		t.Fatal("Finalize() with duplicate names succeeded, want error")
	}
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("error %v is not ErrDuplicateName", err)
	}
	var dup *DuplicateNameError
	if !errors.As(err, &dup) || dup.Name != "foo" || dup.Count != 2 {
		t.Errorf("DuplicateNameError = %+v, want name foo count 2", dup)
	}

	// No file may have been written for either descriptor.
	if _, statErr := os.Stat(filepath.Join(outDir, DescriptorDir)); !os.IsNotExist(statErr) {
		t.Error("descriptor directory created despite duplicate-name failure")
	}
}

func TestFinalizeAutoFill(t *testing.T) {
	t.Parallel()

	d := mustDescriptor(t, DescriptorSpec{})
	defaults := Defaults{
		ProjectName:    "myproject",
		ProjectVersion: "2.1",
		Headers:        []HeaderDir{&fakeHeader{}},
		Libraries:      []Library{&fakeLib{name: "myproject"}},
	}

	outDir := t.TempDir()
	gen, err := Finalize([]*Descriptor{d}, defaults, fakeCC{}, fakeLayout{}, outDir, nil)
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if len(gen) != 1 || gen[0].Name != "myproject" {
		t.Fatalf("generated = %+v, want one entry for myproject", gen)
	}
	if gen[0].RelPath != "pkgconfig/myproject.pc" {
		t.Errorf("RelPath = %q, want %q", gen[0].RelPath, "pkgconfig/myproject.pc")
	}

	data, err := os.ReadFile(gen[0].Path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	content := string(data)
	for _, want := range []string{
		"Name: myproject\n",
		"Version: 2.1\n",
		"Cflags: -I${includedir}\n",
		"Libs: -L${libdir} -lmyproject\n",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("descriptor missing %q:\n%s", want, content)
		}
	}
}

func TestFinalizeAutoFillVersionFallback(t *testing.T) {
	t.Parallel()

	d := mustDescriptor(t, DescriptorSpec{Name: "foo"})
	outDir := t.TempDir()
	gen, err := Finalize([]*Descriptor{d}, Defaults{ProjectName: "p"}, fakeCC{}, fakeLayout{}, outDir, nil)
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	data, err := os.ReadFile(gen[0].Path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !strings.Contains(string(data), "Version: 0.0\n") {
		t.Errorf("descriptor missing fallback version:\n%s", data)
	}
}

func TestFinalizeAutoFillDisabled(t *testing.T) {
	t.Parallel()

	off := false
	d := mustDescriptor(t, DescriptorSpec{AutoFill: &off})
	_, err := Finalize([]*Descriptor{d}, Defaults{ProjectName: "p"}, fakeCC{}, fakeLayout{}, t.TempDir(), nil)
	if !errors.Is(err, ErrEmptyName) {
		t.Errorf("Finalize() error = %v, want ErrEmptyName", err)
	}
}

func TestFinalizeExplicitFieldsWin(t *testing.T) {
	t.Parallel()

	d := mustDescriptor(t, DescriptorSpec{
		Name:    "custom",
		Version: "9.9",
		// Explicitly empty lists must not be back-filled.
		Includes: []HeaderDir{},
		Libs:     []Library{},
	})
	defaults := Defaults{
		ProjectName:    "myproject",
		ProjectVersion: "2.1",
		Headers:        []HeaderDir{&fakeHeader{}},
		Libraries:      []Library{&fakeLib{name: "myproject"}},
	}

	gen, err := Finalize([]*Descriptor{d}, defaults, fakeCC{}, fakeLayout{}, t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	data, err := os.ReadFile(gen[0].Path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "Name: custom\n") || !strings.Contains(content, "Version: 9.9\n") {
		t.Errorf("explicit fields overwritten:\n%s", content)
	}
	if strings.Contains(content, "Cflags:") || strings.Contains(content, "Libs:") {
		t.Errorf("explicitly empty lists were back-filled:\n%s", content)
	}
}
