// SPDX-License-Identifier: MPL-2.0

// Package pkgconfig resolves and serializes pkg-config package
// descriptors for a build: given exported descriptor declarations and the
// library graph, it merges version requirements, propagates forwarded
// link data across the public/private partition, computes flag lists via
// the toolchain collaborator, and renders one deterministic .pc file per
// descriptor.
//
// The package owns requirement-merge state only; library, package, and
// install-layout handles are borrowed read-only from the build graph.
// Resolution is a synchronous batch computation: any error aborts the
// whole pass before a single file is written.
package pkgconfig
