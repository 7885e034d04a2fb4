// SPDX-License-Identifier: MPL-2.0

package pkgconfig

import "girder/pkg/verspec"

// Minimal in-memory stand-ins for the build-graph collaborators.

type fakeLib struct {
	name    string
	link    string
	fwdLibs []Library
	fwdOpts []string
	deps    []PackageRef
}

func (f *fakeLib) LibraryName() string { return f.name }

func (f *fakeLib) LinkName() string {
	if f.link != "" {
		return f.link
	}
	return f.name
}

func (f *fakeLib) ForwardedLibs() []Library { return f.fwdLibs }
func (f *fakeLib) ForwardedLinkOptions() []string { return f.fwdOpts }
func (f *fakeLib) PackageDeps() []PackageRef { return f.deps }

type fakeHeader struct {
	subdir string
}

func (f *fakeHeader) IncludeSubdir() string { return f.subdir }

type fakeSystem struct {
	name    string
	options map[string][]string
}

func (f *fakeSystem) SystemName() string { return f.name }
func (f *fakeSystem) OptionFields() map[string][]string { return f.options }

type fakePC struct {
	name string
	spec verspec.Set
}

func (f *fakePC) PkgConfigName() string { return f.name }
func (f *fakePC) Specifier() verspec.Set { return f.spec }

// fakeLayout mirrors the conventional prefix-derived install layout.
type fakeLayout struct{}

func (fakeLayout) Variables() []Variable {
	return []Variable{
		{Name: "prefix", Value: "/usr/local"},
		{Name: "exec_prefix", Value: "${prefix}"},
		{Name: "libdir", Value: "${exec_prefix}/lib"},
		{Name: "includedir", Value: "${prefix}/include"},
	}
}

func (fakeLayout) IncludeDir(subdir string) string {
	if subdir == "" {
		return "${includedir}"
	}
	return "${includedir}/" + subdir
}

func (fakeLayout) LibDir() string { return "${libdir}" }

// fakeCC computes gcc-style flags.
type fakeCC struct{}

func (fakeCC) Compile(_ string, includeDirs []string) []string {
	out := make([]string, 0, len(includeDirs))
	for _, d := range includeDirs {
		out = append(out, "-I"+d)
	}
	return out
}

func (fakeCC) Link(_ string, libDirs, libNames []string) []string {
	var out []string
	for _, d := range libDirs {
		out = append(out, "-L"+d)
	}
	for _, n := range libNames {
		out = append(out, "-l"+n)
	}
	return out
}
