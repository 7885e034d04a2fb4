// SPDX-License-Identifier: MPL-2.0

// Package verspec implements the version-specifier algebra used by package
// requirements: single comparisons (Specifier), conjunctions of comparisons
// (Set), intersection, and reduction to a minimal ordered comparison list
// that line-oriented descriptor formats can express.
//
// Version parsing and ordering delegate to github.com/Masterminds/semver;
// the literal spelling of each version is preserved for output.
package verspec
