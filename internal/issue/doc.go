// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly
// messages. Errors carry the failed operation, the resource involved, and
// remediation suggestions rendered by the CLI layer.
package issue
