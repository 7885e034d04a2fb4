// SPDX-License-Identifier: MPL-2.0

package buildgraph

import (
	"girder/pkg/pkgconfig"
	"girder/pkg/verspec"
)

// Interface conformance with the descriptor subsystem's borrowed handles.
var (
	_ pkgconfig.Library          = (*Library)(nil)
	_ pkgconfig.HeaderDir        = (*HeaderDir)(nil)
	_ pkgconfig.SystemPackage    = (*SystemPackage)(nil)
	_ pkgconfig.PkgConfigPackage = (*PkgConfig)(nil)
)

type (
	// Library is a buildable library declared in the manifest. A library
	// may forward other libraries and link options to its consumers, and
	// may be a sub-library of a parent (a convenience build of the same
	// installed artifact).
	Library struct {
		name     string
		linkName string
		parent   *Library
		fwdLibs  []*Library
		fwdOpts  []string
		pkgDeps  []pkgconfig.PackageRef
	}

	// HeaderDir is an installed header directory, identified by its
	// subdirectory under the include install root.
	HeaderDir struct {
		name   string
		subdir string
	}

	// SystemPackage is a catalog package resolved outside pkg-config. Its
	// option fields carry per-field token lists such as include dirs and
	// library names.
	SystemPackage struct {
		name   string
		fields map[string][]string
	}

	// PkgConfig is a catalog package already resolved through pkg-config,
	// with the version constraint it was resolved against.
	PkgConfig struct {
		name string
		spec verspec.Set
	}
)

// LibraryName uniquely identifies the library within the graph.
func (l *Library) LibraryName() string { return l.name }

// LinkName is the name the linker resolves, e.g. "foo" for -lfoo.
func (l *Library) LinkName() string { return l.linkName }

// Parent returns the parent library, or nil for a top-level library.
func (l *Library) Parent() *Library { return l.parent }

// ForwardedLibs are libraries this library's consumers must also link.
func (l *Library) ForwardedLibs() []pkgconfig.Library {
	out := make([]pkgconfig.Library, len(l.fwdLibs))
	for i, fl := range l.fwdLibs {
		out[i] = fl
	}
	return out
}

// ForwardedLinkOptions are link options this library's consumers must pass.
func (l *Library) ForwardedLinkOptions() []string {
	return append([]string(nil), l.fwdOpts...)
}

// PackageDeps are the library's declared package dependencies, in
// declaration order.
func (l *Library) PackageDeps() []pkgconfig.PackageRef {
	return append([]pkgconfig.PackageRef(nil), l.pkgDeps...)
}

// root follows the parent chain to the installed artifact.
func (l *Library) root() *Library {
	r := l
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// HeaderName is the manifest name of the header directory.
func (h *HeaderDir) HeaderName() string { return h.name }

// IncludeSubdir is the subdirectory under the include install root, or ""
// for the root itself.
func (h *HeaderDir) IncludeSubdir() string { return h.subdir }

// SystemName identifies the system package.
func (p *SystemPackage) SystemName() string { return p.name }

// OptionFields returns a copy of the package's per-field token lists.
func (p *SystemPackage) OptionFields() map[string][]string {
	out := make(map[string][]string, len(p.fields))
	for k, v := range p.fields {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// PkgConfigName is the package's pkg-config name.
func (p *PkgConfig) PkgConfigName() string { return p.name }

// Specifier is the version constraint the package was resolved against.
func (p *PkgConfig) Specifier() verspec.Set { return p.spec }

// Graph is the loaded build model. It owns every entity and hands out
// borrowed read-only handles.
type Graph struct {
	project string
	version string

	libs     map[string]*Library
	libOrder []*Library
	headers  map[string]*HeaderDir
	systems  map[string]*SystemPackage
	pcPkgs   map[string]*PkgConfig

	installedLibs    []*Library
	installedHeaders []*HeaderDir
}

// ProjectName returns the manifest's project name.
func (g *Graph) ProjectName() string { return g.project }

// ProjectVersion returns the manifest's project version, or "".
func (g *Graph) ProjectVersion() string { return g.version }

// Libraries returns the graph's libraries in declaration order.
func (g *Graph) Libraries() []*Library {
	return append([]*Library(nil), g.libOrder...)
}

// Library looks up a library by name.
func (g *Graph) Library(name string) (*Library, error) {
	l, ok := g.libs[name]
	if !ok {
		return nil, &UnknownEntityError{Kind: "library", Name: name, Where: "graph"}
	}
	return l, nil
}

// Header looks up a header directory by name.
func (g *Graph) Header(name string) (*HeaderDir, error) {
	h, ok := g.headers[name]
	if !ok {
		return nil, &UnknownEntityError{Kind: "header", Name: name, Where: "graph"}
	}
	return h, nil
}

// Defaults returns the build-wide defaults used to back-fill descriptors
// with auto-fill enabled. Installed libraries are reduced to their parent
// artifacts, deduplicated in first-seen order, so a sub-library install
// never yields a duplicate link entry.
func (g *Graph) Defaults() pkgconfig.Defaults {
	seen := make(map[string]bool, len(g.installedLibs))
	libs := make([]pkgconfig.Library, 0, len(g.installedLibs))
	for _, l := range g.installedLibs {
		r := l.root()
		if seen[r.name] {
			continue
		}
		seen[r.name] = true
		libs = append(libs, r)
	}

	headers := make([]pkgconfig.HeaderDir, len(g.installedHeaders))
	for i, h := range g.installedHeaders {
		headers[i] = h
	}

	return pkgconfig.Defaults{
		ProjectName:    g.project,
		ProjectVersion: g.version,
		Headers:        headers,
		Libraries:      libs,
	}
}
