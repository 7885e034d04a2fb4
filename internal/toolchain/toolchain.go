// SPDX-License-Identifier: MPL-2.0

// Package toolchain provides the compiler flag vocabularies used when
// descriptors are resolved. Implementations are pure functions of their
// inputs and hold no state.
package toolchain

import (
	"errors"
	"fmt"

	"girder/pkg/pkgconfig"
)

// ErrUnknownToolchain is returned by New for an unrecognized name.
var ErrUnknownToolchain = errors.New("unknown toolchain")

var (
	_ pkgconfig.Toolchain = CC{}
	_ pkgconfig.Toolchain = MSVC{}
)

// New selects a toolchain by configuration name.
func New(name string) (pkgconfig.Toolchain, error) {
	switch name {
	case "cc":
		return CC{}, nil
	case "msvc":
		return MSVC{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownToolchain, name)
	}
}

// CC speaks the Unix compiler driver vocabulary (gcc, clang). The flag
// shapes are shared across the C-family languages, so lang is accepted
// for interface symmetry and otherwise unused.
type CC struct{}

// Compile returns -I flags for the given include directories.
func (CC) Compile(_ string, includeDirs []string) []string {
	out := make([]string, 0, len(includeDirs))
	for _, dir := range includeDirs {
		out = append(out, "-I"+dir)
	}
	return out
}

// Link returns -L search flags followed by -l entries.
func (CC) Link(_ string, libDirs, libNames []string) []string {
	out := make([]string, 0, len(libDirs)+len(libNames))
	for _, dir := range libDirs {
		out = append(out, "-L"+dir)
	}
	for _, name := range libNames {
		out = append(out, "-l"+name)
	}
	return out
}

// MSVC speaks the Microsoft toolchain vocabulary.
type MSVC struct{}

// Compile returns /I flags for the given include directories.
func (MSVC) Compile(_ string, includeDirs []string) []string {
	out := make([]string, 0, len(includeDirs))
	for _, dir := range includeDirs {
		out = append(out, "/I"+dir)
	}
	return out
}

// Link returns /LIBPATH: search flags followed by .lib entries.
func (MSVC) Link(_ string, libDirs, libNames []string) []string {
	out := make([]string, 0, len(libDirs)+len(libNames))
	for _, dir := range libDirs {
		out = append(out, "/LIBPATH:"+dir)
	}
	for _, name := range libNames {
		out = append(out, name+".lib")
	}
	return out
}
