// SPDX-License-Identifier: MPL-2.0

// Package installpath models the install directory layout. Paths for the
// derived roots are expressed as ${...} references to their base root, so
// a descriptor stays relocatable when only the prefix changes.
package installpath

import (
	"errors"
	"fmt"

	"girder/pkg/pkgconfig"
)

// Root identifies one install directory kind.
type Root string

const (
	Prefix     Root = "prefix"
	ExecPrefix Root = "exec_prefix"
	Bindir     Root = "bindir"
	Libdir     Root = "libdir"
	Includedir Root = "includedir"
)

// ErrUnknownRoot is returned for an override key that is not a Root.
var ErrUnknownRoot = errors.New("unknown install root")

// rootOrder is the fixed declaration order used everywhere roots are
// enumerated.
var rootOrder = []Root{Prefix, ExecPrefix, Bindir, Libdir, Includedir}

// Roots returns every install root in declaration order.
func Roots() []Root {
	return append([]Root(nil), rootOrder...)
}

// Valid reports whether r names a known install root.
func (r Root) Valid() bool {
	for _, known := range rootOrder {
		if r == known {
			return true
		}
	}
	return false
}

var _ pkgconfig.Layout = (*Layout)(nil)

// Layout maps each install root to its path value. Derived roots default
// to the conventional prefix-relative locations.
type Layout struct {
	paths map[Root]string
}

// NewLayout builds a layout rooted at prefix. Overrides replace the
// default value of individual roots; an override key that is not a known
// root fails with ErrUnknownRoot.
func NewLayout(prefix string, overrides map[Root]string) (*Layout, error) {
	paths := map[Root]string{
		Prefix:     prefix,
		ExecPrefix: "${prefix}",
		Bindir:     "${exec_prefix}/bin",
		Libdir:     "${exec_prefix}/lib",
		Includedir: "${prefix}/include",
	}
	for root, value := range overrides {
		if !root.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRoot, root)
		}
		paths[root] = value
	}
	return &Layout{paths: paths}, nil
}

// Path returns the configured value of one root.
func (l *Layout) Path(root Root) string { return l.paths[root] }

// Variables returns the descriptor header entries in declaration order.
// The executable-binary root is omitted: descriptors describe compile and
// link inputs, not programs.
func (l *Layout) Variables() []pkgconfig.Variable {
	out := make([]pkgconfig.Variable, 0, len(rootOrder)-1)
	for _, root := range rootOrder {
		if root == Bindir {
			continue
		}
		out = append(out, pkgconfig.Variable{Name: string(root), Value: l.paths[root]})
	}
	return out
}

// IncludeDir returns the include path for a header subdirectory, as a
// variable reference usable in flag lists.
func (l *Layout) IncludeDir(subdir string) string {
	if subdir == "" {
		return "${includedir}"
	}
	return "${includedir}/" + subdir
}

// LibDir returns the library install path as a variable reference.
func (l *Layout) LibDir() string { return "${libdir}" }
