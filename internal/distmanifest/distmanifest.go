// SPDX-License-Identifier: MPL-2.0

// Package distmanifest records the files a build delivers to the install
// step: each entry names a path relative to the build output directory
// and the install root it lands under.
package distmanifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"girder/internal/installpath"
)

// DefaultFilename is the manifest's conventional location in the build
// output directory.
const DefaultFilename = "girder-dist.toml"

type (
	// Manifest is the serialized install record for one build.
	Manifest struct {
		Project string  `toml:"project"`
		Version string  `toml:"version,omitempty"`
		Files   []Entry `toml:"files,omitempty"`
	}

	// Entry is one delivered file.
	Entry struct {
		// Path is relative to the build output directory.
		Path string `toml:"path"`
		// Root is the install root the file is delivered under.
		Root installpath.Root `toml:"root"`
	}
)

// Add appends an entry, skipping exact duplicates.
func (m *Manifest) Add(path string, root installpath.Root) {
	for _, e := range m.Files {
		if e.Path == path && e.Root == root {
			return
		}
	}
	m.Files = append(m.Files, Entry{Path: path, Root: root})
}

// Write serializes the manifest to path atomically: a failure leaves any
// previous manifest untouched.
func Write(path string, m *Manifest) (err error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode dist manifest: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temporary manifest file: %w", err)
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

// Read loads a manifest written by Write.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dist manifest: %w", err)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode dist manifest %q: %w", path, err)
	}
	return &m, nil
}
