// SPDX-License-Identifier: MPL-2.0

package pkgconfig

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
)

// Resolved is the fully computed form of a descriptor, ready for
// serialization. It is produced once per descriptor and never mutated.
type Resolved struct {
	Name     string
	DescName string
	Desc     string
	URL      string
	Version  string
	Lang     string

	Variables []Variable

	Requires        []SimpleRequirement
	RequiresPrivate []SimpleRequirement
	Conflicts       []SimpleRequirement

	Cflags         []string
	Ldflags        []string
	LdflagsPrivate []string

	// IncludeDirsPrivate are include directories contributed by private
	// system packages. The descriptor format has no private compile-flag
	// field, so they are carried for consumers but never serialized.
	IncludeDirsPrivate []string

	// ExtraFields collects list-valued system-package options that are
	// not core include/lib fields, keyed by field name. This lets system
	// packages contribute toolchain-specific data without the resolver
	// knowing every possible field kind.
	ExtraFields map[string][]string
}

// Resolve computes the final partitioned, deduplicated requirement and
// flag lists for a descriptor against the build graph. It is a pure
// transformation: the descriptor and the borrowed graph handles are not
// mutated, so resolving twice yields identical results. Any failure
// aborts atomically with no partial output.
func Resolve(d *Descriptor, tc Toolchain, layout Layout) (*Resolved, error) {
	if d.name == "" {
		return nil, ErrEmptyName
	}
	descName := d.descName
	if descName == "" {
		descName = d.name
	}
	desc := d.desc
	if desc == "" {
		desc = descName + " library"
	}

	libs := append([]Library(nil), d.libs...)
	inPublic := make(map[string]bool, len(libs))
	for _, l := range libs {
		inPublic[l.LibraryName()] = true
	}

	// Gather forwarded link data from the declared public and private
	// libraries, then add every forwarded library not already public to
	// libs_private, first-seen order, ahead of the declared private ones.
	var fwdOpts []string
	var fwdLibs []Library
	for _, l := range append(append([]Library(nil), libs...), d.libsPrivate...) {
		fwdOpts = append(fwdOpts, l.ForwardedLinkOptions()...)
		fwdLibs = append(fwdLibs, l.ForwardedLibs()...)
	}
	var libsPrivate []Library
	seenPrivate := make(map[string]bool)
	for _, l := range append(fwdLibs, d.libsPrivate...) {
		name := l.LibraryName()
		if inPublic[name] || seenPrivate[name] {
			continue
		}
		seenPrivate[name] = true
		libsPrivate = append(libsPrivate, l)
	}

	// Auto-discover package dependencies from all involved libraries.
	var deps []PackageRef
	for _, l := range append(append([]Library(nil), libs...), libsPrivate...) {
		deps = append(deps, l.PackageDeps()...)
	}
	autoRequires, autoExtra, err := FilterPackages(deps)
	if err != nil {
		return nil, fmt.Errorf("package deps of %q: %w", d.name, err)
	}

	// Fold auto-discovered requirements into the private set, then let
	// declared public requirements absorb matching private ones so no
	// dependency is listed as both public and private.
	requires := d.requires.clone()
	requiresPrivate := d.requiresPrivate.clone()
	requiresPrivate.Update(autoRequires.Requirements())
	requires.MergeInto(requiresPrivate)

	r := &Resolved{
		Name:     d.name,
		DescName: descName,
		Desc:     desc,
		URL:      d.url,
		Version:  d.version,
		Lang:     d.lang,

		Variables:   layout.Variables(),
		ExtraFields: make(map[string][]string),
	}

	if r.Requires, err = requires.Split(true); err != nil {
		return nil, err
	}
	if r.RequiresPrivate, err = requiresPrivate.Split(true); err != nil {
		return nil, err
	}
	if r.Conflicts, err = d.conflicts.clone().Split(false); err != nil {
		return nil, err
	}

	includeDirs := make([]string, 0, len(d.includes))
	for _, h := range d.includes {
		includeDirs = append(includeDirs, layout.IncludeDir(h.IncludeSubdir()))
	}
	libNames := make([]string, 0, len(libs))
	for _, l := range libs {
		libNames = append(libNames, l.LinkName())
	}
	libNamesPrivate := make([]string, 0, len(libsPrivate))
	for _, l := range libsPrivate {
		libNamesPrivate = append(libNamesPrivate, l.LinkName())
	}

	// Route system-package option fields: core include/lib entries feed
	// the resolved lists, everything else lands in ExtraFields.
	route := func(pkgs []SystemPackage, private bool) {
		for _, pkg := range pkgs {
			fields := pkg.OptionFields()
			keys := maps.Keys(fields)
			sort.Strings(keys)
			for _, k := range keys {
				switch {
				case k == "includes" && !private:
					includeDirs = append(includeDirs, fields[k]...)
				case k == "libs" && !private:
					libNames = append(libNames, fields[k]...)
				case k == "includes" || k == "includes_private":
					r.IncludeDirsPrivate = append(r.IncludeDirsPrivate, fields[k]...)
				case k == "libs" || k == "libs_private":
					libNamesPrivate = append(libNamesPrivate, fields[k]...)
				default:
					r.ExtraFields[k] = append(r.ExtraFields[k], fields[k]...)
				}
			}
		}
	}
	route(d.requiresExtra, false)
	route(d.requiresPrivateExtra, true)
	route(autoExtra, true)

	includeDirs = uniqueStrings(includeDirs)
	libNames = uniqueStrings(libNames)
	libNamesPrivate = uniqueStrings(libNamesPrivate)
	r.IncludeDirsPrivate = uniqueStrings(r.IncludeDirsPrivate)

	r.Cflags = append(tc.Compile(d.lang, includeDirs), d.options...)

	var libDirs []string
	if len(libNames) > 0 {
		libDirs = []string{layout.LibDir()}
	}
	r.Ldflags = append(tc.Link(d.lang, libDirs, libNames), d.linkOptions...)

	var libDirsPrivate []string
	if len(libNamesPrivate) > 0 {
		libDirsPrivate = []string{layout.LibDir()}
	}
	r.LdflagsPrivate = append(tc.Link(d.lang, libDirsPrivate, libNamesPrivate), fwdOpts...)
	r.LdflagsPrivate = append(r.LdflagsPrivate, d.linkOptionsPrivate...)

	return r, nil
}

// clone returns an independent copy of the set so resolution never
// mutates descriptor state.
func (s *RequirementSet) clone() *RequirementSet {
	out := NewRequirementSet()
	for name, req := range s.reqs {
		out.reqs[name] = req
	}
	return out
}

// Requirements returns the set's entries in name-sorted order.
func (s *RequirementSet) Requirements() []Requirement {
	out := make([]Requirement, 0, len(s.reqs))
	for _, name := range s.Names() {
		out = append(out, s.reqs[name])
	}
	return out
}

func uniqueStrings(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
