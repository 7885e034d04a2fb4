// SPDX-License-Identifier: MPL-2.0

package buildgraph

import (
	"errors"
	"fmt"
)

// ErrUnknownEntity is returned when a manifest entry references a
// library, header, or catalog package that is not defined.
var ErrUnknownEntity = errors.New("unknown entity")

// UnknownEntityError reports a dangling reference in the build manifest.
type UnknownEntityError struct {
	// Kind is the referenced entity kind ("library", "header", "package").
	Kind string
	// Name is the referenced name.
	Name string
	// Where locates the referencing manifest entry.
	Where string
}

func (e *UnknownEntityError) Error() string {
	return fmt.Sprintf("%s: %s %q is not defined in the build manifest", e.Where, e.Kind, e.Name)
}

func (e *UnknownEntityError) Unwrap() error { return ErrUnknownEntity }
