// SPDX-License-Identifier: MPL-2.0

package pkgconfig

import (
	"fmt"

	"girder/pkg/verspec"
)

type (
	// Requirement is a named dependency plus the version range a consumer
	// must satisfy. The constraint only ever tightens: Merge intersects.
	Requirement struct {
		Name       string
		Constraint verspec.Set
	}

	// SimpleRequirement is a flattened requirement carrying at most one
	// comparison, the shape descriptor fields can express per entry.
	SimpleRequirement struct {
		Name string
		Spec *verspec.Specifier
	}
)

// NewRequirement builds a Requirement for a package name. An empty
// constraint means "any version".
func NewRequirement(name string, constraint verspec.Set) Requirement {
	return Requirement{Name: name, Constraint: constraint}
}

// Merge intersects another requirement's constraint into this one. Both
// requirements must name the same package.
func (r *Requirement) Merge(other Requirement) error {
	if other.Name != r.Name {
		return fmt.Errorf("cannot merge requirement %q into %q", other.Name, r.Name)
	}
	r.Constraint = r.Constraint.Intersect(other.Constraint)
	return nil
}

// Split flattens the requirement into simple single-comparison entries.
// An empty constraint yields one unconstrained entry. With single set,
// a constraint that simplifies to more than one comparison fails with
// ConstraintError, since the target field cannot express a conjunction.
func (r Requirement) Split(single bool) ([]SimpleRequirement, error) {
	specs := r.Constraint.Simplify()
	if len(specs) == 0 {
		return []SimpleRequirement{{Name: r.Name}}, nil
	}
	if single && len(specs) > 1 {
		return nil, &ConstraintError{Name: r.Name, Constraint: r.Constraint}
	}
	out := make([]SimpleRequirement, len(specs))
	for i := range specs {
		spec := specs[i]
		out[i] = SimpleRequirement{Name: r.Name, Spec: &spec}
	}
	return out, nil
}

// String renders the entry as it appears in a Requires field.
func (r SimpleRequirement) String() string {
	return r.render(string(verspec.OpEqual))
}

// render writes "name op version", using equalOp in place of "==". The
// Conflicts field spells equality "=" where Requires uses "==" as-is.
func (r SimpleRequirement) render(equalOp string) string {
	if r.Spec == nil {
		return r.Name
	}
	op := string(r.Spec.Op)
	if r.Spec.Op == verspec.OpEqual {
		op = equalOp
	}
	return fmt.Sprintf("%s %s %s", r.Name, op, r.Spec.Version)
}
