// SPDX-License-Identifier: MPL-2.0

// Package buildgraph holds the in-memory model of a build manifest: the
// project's libraries, header directories, and external package catalog,
// plus the descriptor export declarations. The graph owns its entities;
// the descriptor subsystem borrows them through the pkgconfig interfaces.
package buildgraph
