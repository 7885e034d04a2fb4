// SPDX-License-Identifier: MPL-2.0

package pkgconfig

import (
	"errors"
	"fmt"

	"girder/pkg/verspec"
)

var (
	// ErrConstraint is the sentinel error wrapped by ConstraintError.
	ErrConstraint = errors.New("inexpressible version constraint")
	// ErrUnsupportedRef is the sentinel error wrapped by UnsupportedRefError.
	ErrUnsupportedRef = errors.New("unsupported package reference")
	// ErrDuplicateName is the sentinel error wrapped by DuplicateNameError.
	ErrDuplicateName = errors.New("duplicate descriptor name")
	// ErrNotFound is the sentinel error wrapped by NotFoundError.
	ErrNotFound = errors.New("requirement not found")
)

type (
	// ConstraintError is returned when a requirement's constraint needs
	// more than one comparison but the target field only allows a single
	// one per entry.
	ConstraintError struct {
		Name       string
		Constraint verspec.Set
	}

	// UnsupportedRefError is returned when a PackageRef of unrecognized
	// shape reaches FilterPackages.
	UnsupportedRefError struct {
		Ref PackageRef
	}

	// DuplicateNameError is returned when two descriptors in the same
	// build share a name.
	DuplicateNameError struct {
		Name  string
		Count int
	}

	// NotFoundError is returned when removing a requirement name that is
	// not present in the set.
	NotFoundError struct {
		Name string
	}
)

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("multiple comparisons (%s) used in pkg-config requirement for %q", e.Constraint, e.Name)
}

// Unwrap returns ErrConstraint so callers can use errors.Is.
func (e *ConstraintError) Unwrap() error { return ErrConstraint }

func (e *UnsupportedRefError) Error() string {
	return fmt.Sprintf("unsupported package reference: %s", e.Ref.describe())
}

// Unwrap returns ErrUnsupportedRef so callers can use errors.Is.
func (e *UnsupportedRefError) Unwrap() error { return ErrUnsupportedRef }

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate pkg-config descriptor %q (declared %d times)", e.Name, e.Count)
}

// Unwrap returns ErrDuplicateName so callers can use errors.Is.
func (e *DuplicateNameError) Unwrap() error { return ErrDuplicateName }

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("requirement %q not in set", e.Name)
}

// Unwrap returns ErrNotFound so callers can use errors.Is.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }
