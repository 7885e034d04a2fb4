// SPDX-License-Identifier: MPL-2.0

package pkgconfig

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Generated records one descriptor file produced by Finalize, for
// registration with the installation step.
type Generated struct {
	// Name is the descriptor's package name.
	Name string
	// RelPath is the file path relative to the build output directory.
	RelPath string
	// Path is the absolute path of the written file.
	Path string
}

// Finalize runs the single finalization pass over all declared
// descriptors: back-fill build-wide defaults into descriptors with
// auto-fill enabled, validate global name uniqueness, resolve every
// descriptor against the build graph, and only then write the descriptor
// files under outDir. Any failure aborts before the first file is
// written. Descriptors are processed in declaration order.
func Finalize(descs []*Descriptor, defaults Defaults, tc Toolchain, layout Layout, outDir string, logger *log.Logger) ([]Generated, error) {
	if logger == nil {
		logger = log.Default()
	}

	projectVersion := defaults.ProjectVersion
	if projectVersion == "" {
		projectVersion = "0.0"
	}
	for _, d := range descs {
		if !d.autoFill {
			continue
		}
		if d.name == "" {
			d.name = defaults.ProjectName
		}
		if d.version == "" {
			d.version = projectVersion
		}
		if !d.includesSet {
			d.includes = uniqueHeaders(defaults.Headers)
		}
		if !d.libsSet {
			d.libs = uniqueLibs(defaults.Libraries)
		}
	}

	counts := make(map[string]int, len(descs))
	for _, d := range descs {
		counts[d.name]++
	}
	for _, d := range descs {
		if counts[d.name] > 1 {
			return nil, &DuplicateNameError{Name: d.name, Count: counts[d.name]}
		}
	}

	resolved := make([]*Resolved, len(descs))
	for i, d := range descs {
		r, err := Resolve(d, tc, layout)
		if err != nil {
			return nil, fmt.Errorf("resolve descriptor %q: %w", d.name, err)
		}
		resolved[i] = r
		logger.Debug("resolved package descriptor",
			"name", r.Name,
			"requires", len(r.Requires),
			"requires_private", len(r.RequiresPrivate))
	}

	out := make([]Generated, 0, len(descs))
	for i, r := range resolved {
		rel := descs[i].OutputPath()
		path := filepath.Join(outDir, filepath.FromSlash(rel))
		if err := WriteFile(path, r); err != nil {
			return nil, err
		}
		logger.Info("wrote package descriptor", "name", r.Name, "path", path)
		out = append(out, Generated{Name: r.Name, RelPath: rel, Path: path})
	}
	return out, nil
}
