// SPDX-License-Identifier: MPL-2.0

package pkgconfig

import (
	"sort"

	"golang.org/x/exp/maps"
)

// RequirementSet is a name-keyed collection of Requirements with
// merge-on-insert semantics: at most one Requirement per name at any time.
type RequirementSet struct {
	reqs map[string]Requirement
}

// NewRequirementSet builds a set from the given requirements, merging
// entries that share a name.
func NewRequirementSet(items ...Requirement) *RequirementSet {
	s := &RequirementSet{reqs: make(map[string]Requirement, len(items))}
	s.Update(items)
	return s
}

// Len returns the number of distinct requirement names.
func (s *RequirementSet) Len() int { return len(s.reqs) }

// Names returns the requirement names in sorted order.
func (s *RequirementSet) Names() []string {
	names := maps.Keys(s.reqs)
	sort.Strings(names)
	return names
}

// Get returns the requirement for a name, if present.
func (s *RequirementSet) Get(name string) (Requirement, bool) {
	r, ok := s.reqs[name]
	return r, ok
}

// Add inserts a requirement, intersecting its constraint into any existing
// entry with the same name. This is a mapping, not a multiset.
func (s *RequirementSet) Add(item Requirement) {
	if existing, ok := s.reqs[item.Name]; ok {
		// Merge cannot fail here: the names match by construction.
		_ = existing.Merge(item)
		s.reqs[item.Name] = existing
		return
	}
	s.reqs[item.Name] = item
}

// Remove deletes the requirement with the given name, failing with
// NotFoundError if absent.
func (s *RequirementSet) Remove(name string) error {
	if _, ok := s.reqs[name]; !ok {
		return &NotFoundError{Name: name}
	}
	delete(s.reqs, name)
	return nil
}

// Update adds every requirement in items: union with merge-on-conflict.
func (s *RequirementSet) Update(items []Requirement) {
	for _, item := range items {
		s.Add(item)
	}
}

// MergeInto folds matching entries of other into this set: every item of
// other whose name already exists here is intersected into this set's
// entry and removed from other. Items with no match stay in other. This
// is how automatically discovered private requirements are absorbed by
// already-declared public ones, leaving only the genuinely private
// remainder in other.
func (s *RequirementSet) MergeInto(other *RequirementSet) {
	for _, name := range other.Names() {
		existing, ok := s.reqs[name]
		if !ok {
			continue
		}
		_ = existing.Merge(other.reqs[name])
		s.reqs[name] = existing
		delete(other.reqs, name)
	}
}

// Split flattens every requirement via Requirement.Split, concatenated and
// sorted by name.
func (s *RequirementSet) Split(single bool) ([]SimpleRequirement, error) {
	var out []SimpleRequirement
	for _, name := range s.Names() {
		simple, err := s.reqs[name].Split(single)
		if err != nil {
			return nil, err
		}
		out = append(out, simple...)
	}
	return out, nil
}
