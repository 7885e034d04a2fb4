// SPDX-License-Identifier: MPL-2.0

package pkgconfig

import (
	"fmt"

	"girder/pkg/verspec"
)

type refKind int

const (
	refInvalid refKind = iota
	refName
	refVersioned
	refPkgConfig
	refSystem
)

// PackageRef is a closed tagged variant over the shapes a package
// dependency can be declared in: a bare name, a name plus version
// constraint, an already-resolved pkg-config package, or a system package
// with its own option set. The zero value is invalid and is rejected by
// FilterPackages.
type PackageRef struct {
	kind refKind
	name string
	spec verspec.Set
	pc   PkgConfigPackage
	sys  SystemPackage
}

// NameRef references a pkg-config package by bare name, any version.
func NameRef(name string) PackageRef {
	return PackageRef{kind: refName, name: name}
}

// VersionedRef references a pkg-config package with a version constraint.
func VersionedRef(name string, constraint verspec.Set) PackageRef {
	return PackageRef{kind: refVersioned, name: name, spec: constraint}
}

// PkgConfigRef references an already-resolved pkg-config package handle
// from the build graph.
func PkgConfigRef(pkg PkgConfigPackage) PackageRef {
	return PackageRef{kind: refPkgConfig, pc: pkg}
}

// SystemRef references a pre-resolved system package that is not managed
// by pkg-config and carries its own option fields.
func SystemRef(pkg SystemPackage) PackageRef {
	return PackageRef{kind: refSystem, sys: pkg}
}

func (r PackageRef) describe() string {
	switch r.kind {
	case refName:
		return fmt.Sprintf("name %q", r.name)
	case refVersioned:
		return fmt.Sprintf("name %q with constraint %q", r.name, r.spec)
	case refPkgConfig:
		return fmt.Sprintf("pkg-config package %q", r.pc.PkgConfigName())
	case refSystem:
		return fmt.Sprintf("system package %q", r.sys.SystemName())
	default:
		return fmt.Sprintf("invalid reference (kind %d)", r.kind)
	}
}

// FilterPackages partitions references into a RequirementSet for
// pkg-config-style entries and a first-seen-ordered, deduplicated list of
// system packages. A zero or unrecognized reference fails the whole call
// with UnsupportedRefError.
func FilterPackages(refs []PackageRef) (*RequirementSet, []SystemPackage, error) {
	reqs := NewRequirementSet()
	var system []SystemPackage
	seen := make(map[string]bool)

	for _, ref := range refs {
		switch ref.kind {
		case refName:
			reqs.Add(NewRequirement(ref.name, verspec.Set{}))
		case refVersioned:
			reqs.Add(NewRequirement(ref.name, ref.spec))
		case refPkgConfig:
			reqs.Add(NewRequirement(ref.pc.PkgConfigName(), ref.pc.Specifier()))
		case refSystem:
			if name := ref.sys.SystemName(); !seen[name] {
				seen[name] = true
				system = append(system, ref.sys)
			}
		default:
			return nil, nil, &UnsupportedRefError{Ref: ref}
		}
	}
	return reqs, system, nil
}
