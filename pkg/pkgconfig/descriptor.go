// SPDX-License-Identifier: MPL-2.0

package pkgconfig

import (
	"errors"
	"fmt"
	"path"
)

// DescriptorDir is the subdirectory of the build output dedicated to
// package descriptor files.
const DescriptorDir = "pkgconfig"

// ErrEmptyName is returned when a descriptor reaches resolution without a
// name (neither declared nor auto-filled).
var ErrEmptyName = errors.New("descriptor has no name")

type (
	// DescriptorSpec is the raw declaration of an exported package
	// descriptor, as it appears in the build manifest. Nil slices mean
	// "unset" and are eligible for auto-fill; empty non-nil slices are
	// explicitly empty.
	DescriptorSpec struct {
		Name     string
		DescName string
		Desc     string
		URL      string
		Version  string
		// Lang selects the toolchain language; defaults to "c".
		Lang string
		// AutoFill controls back-filling of unset name/version/includes/
		// libs from build-wide defaults. Nil means enabled.
		AutoFill *bool

		Includes    []HeaderDir
		Libs        []Library
		LibsPrivate []Library

		Requires        []PackageRef
		RequiresPrivate []PackageRef
		Conflicts       []PackageRef

		// Options are extra compiler options appended to Cflags.
		Options []string
		// LinkOptions and LinkOptionsPrivate are extra link options
		// appended to Libs and Libs.private respectively.
		LinkOptions        []string
		LinkOptionsPrivate []string
	}

	// Descriptor is a validated, normalized package-export declaration.
	// It is created during build-graph construction, mutated only by the
	// finalization pass, and immutable once resolved.
	Descriptor struct {
		name     string
		descName string
		desc     string
		url      string
		version  string
		lang     string
		autoFill bool

		includes    []HeaderDir
		includesSet bool
		libs        []Library
		libsSet     bool
		libsPrivate []Library

		requires             *RequirementSet
		requiresExtra        []SystemPackage
		requiresPrivate      *RequirementSet
		requiresPrivateExtra []SystemPackage
		conflicts            *RequirementSet

		options            []string
		linkOptions        []string
		linkOptionsPrivate []string
	}
)

// NewDescriptor validates and normalizes a DescriptorSpec: library and
// header lists are deduplicated preserving first-seen order, and the
// requires/conflicts reference lists are partitioned into requirement
// sets and system-package extras. Declaration errors surface here, before
// the finalization pass begins.
func NewDescriptor(spec DescriptorSpec) (*Descriptor, error) {
	d := &Descriptor{
		name:     spec.Name,
		descName: spec.DescName,
		desc:     spec.Desc,
		url:      spec.URL,
		version:  spec.Version,
		lang:     spec.Lang,
		autoFill: spec.AutoFill == nil || *spec.AutoFill,

		includesSet: spec.Includes != nil,
		libsSet:     spec.Libs != nil,

		options:            append([]string(nil), spec.Options...),
		linkOptions:        append([]string(nil), spec.LinkOptions...),
		linkOptionsPrivate: append([]string(nil), spec.LinkOptionsPrivate...),
	}
	if d.lang == "" {
		d.lang = "c"
	}

	d.includes = uniqueHeaders(spec.Includes)
	d.libs = uniqueLibs(spec.Libs)
	d.libsPrivate = uniqueLibs(spec.LibsPrivate)

	var err error
	if d.requires, d.requiresExtra, err = FilterPackages(spec.Requires); err != nil {
		return nil, fmt.Errorf("requires of %q: %w", spec.Name, err)
	}
	if d.requiresPrivate, d.requiresPrivateExtra, err = FilterPackages(spec.RequiresPrivate); err != nil {
		return nil, fmt.Errorf("requires_private of %q: %w", spec.Name, err)
	}
	// Conflicts cannot carry system packages; any supplied are dropped
	// along with their options, matching the requirement-set-only shape
	// of the Conflicts field.
	if d.conflicts, _, err = FilterPackages(spec.Conflicts); err != nil {
		return nil, fmt.Errorf("conflicts of %q: %w", spec.Name, err)
	}
	return d, nil
}

// Name returns the descriptor's package name, which is also the output
// file's base name.
func (d *Descriptor) Name() string { return d.name }

// Version returns the descriptor's declared (or auto-filled) version.
func (d *Descriptor) Version() string { return d.version }

// AutoFill reports whether unset fields are back-filled from build-wide
// defaults at finalization time.
func (d *Descriptor) AutoFill() bool { return d.autoFill }

// OutputPath returns the descriptor file path relative to the build
// output directory.
func (d *Descriptor) OutputPath() string {
	return path.Join(DescriptorDir, d.name+".pc")
}

func uniqueLibs(libs []Library) []Library {
	seen := make(map[string]bool, len(libs))
	out := make([]Library, 0, len(libs))
	for _, l := range libs {
		if seen[l.LibraryName()] {
			continue
		}
		seen[l.LibraryName()] = true
		out = append(out, l)
	}
	return out
}

func uniqueHeaders(headers []HeaderDir) []HeaderDir {
	seen := make(map[HeaderDir]bool, len(headers))
	out := make([]HeaderDir, 0, len(headers))
	for _, h := range headers {
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}
