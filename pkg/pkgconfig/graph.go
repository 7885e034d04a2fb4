// SPDX-License-Identifier: MPL-2.0

package pkgconfig

import "girder/pkg/verspec"

// Collaborator handles borrowed from the build graph. The descriptor
// subsystem reads them and never mutates them; concrete implementations
// live with the graph (internal/buildgraph).
type (
	// Library is a buildable library in the graph. Forwarded data is what
	// the library requires its consumers to also link.
	Library interface {
		// LibraryName uniquely identifies the library within the graph.
		LibraryName() string
		// LinkName is the name the linker resolves, e.g. "foo" for -lfoo.
		LinkName() string
		// ForwardedLibs are libraries that consumers must link as well.
		ForwardedLibs() []Library
		// ForwardedLinkOptions are link options consumers must pass.
		ForwardedLinkOptions() []string
		// PackageDeps are the library's declared system-package
		// dependencies, in declaration order.
		PackageDeps() []PackageRef
	}

	// HeaderDir is an installed header directory handle.
	HeaderDir interface {
		// IncludeSubdir is the subdirectory under the include install
		// root, or "" for the root itself.
		IncludeSubdir() string
	}

	// PkgConfigPackage is a dependency already resolved through pkg-config.
	PkgConfigPackage interface {
		PkgConfigName() string
		Specifier() verspec.Set
	}

	// SystemPackage is a dependency resolved outside pkg-config. Its
	// option fields contribute per-field token lists (include dirs,
	// library names, and toolchain-specific extras).
	SystemPackage interface {
		SystemName() string
		OptionFields() map[string][]string
	}

	// Toolchain computes baseline compile and link flags. Implementations
	// are pure functions of their inputs.
	Toolchain interface {
		// Compile returns compiler flags for the given include dirs.
		Compile(lang string, includeDirs []string) []string
		// Link returns linker flags and libraries for the given search
		// dirs and link names.
		Link(lang string, libDirs, libNames []string) []string
	}

	// Variable is one name=value line in the descriptor header block.
	Variable struct {
		Name  string
		Value string
	}

	// Layout provides install-root paths for the variable header block
	// and for flag computation.
	Layout interface {
		// Variables returns the header block entries in fixed order,
		// excluding the executable-binary root.
		Variables() []Variable
		// IncludeDir returns the include path for a header subdirectory.
		IncludeDir(subdir string) string
		// LibDir returns the library install path.
		LibDir() string
	}

	// Defaults are the build-wide values back-filled into descriptors
	// with auto-fill enabled.
	Defaults struct {
		ProjectName    string
		ProjectVersion string
		// Headers are the installed header directories.
		Headers []HeaderDir
		// Libraries are the installed libraries, already deduplicated to
		// their parents in first-seen order.
		Libraries []Library
	}
)
