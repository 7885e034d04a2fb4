// SPDX-License-Identifier: MPL-2.0

package verspec

import (
	"sort"
	"strings"
)

// Set is a conjunction of version comparisons for one package. The zero
// value is the empty set, which admits any version. Sets are immutable:
// Intersect returns a new Set.
type Set struct {
	specs []Specifier
}

// NewSet builds a Set from specifiers, deduplicating repeated
// operator+version pairs while preserving first-seen order.
func NewSet(specs ...Specifier) Set {
	out := Set{}
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		k := s.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out.specs = append(out.specs, s)
	}
	return out
}

// ParseSet parses a comma-separated conjunction such as ">=1.0, <2.0".
// The empty string parses to the empty set ("any version").
func ParseSet(raw string) (Set, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Set{}, nil
	}
	var specs []Specifier
	for _, part := range strings.Split(trimmed, ",") {
		s, err := ParseSpecifier(part)
		if err != nil {
			return Set{}, err
		}
		specs = append(specs, s)
	}
	return NewSet(specs...), nil
}

// MustSet is like ParseSet but panics on error.
func MustSet(raw string) Set {
	s, err := ParseSet(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Empty reports whether the set places no restriction on the version.
func (s Set) Empty() bool { return len(s.specs) == 0 }

// Specifiers returns a copy of the comparisons in insertion order.
func (s Set) Specifiers() []Specifier {
	out := make([]Specifier, len(s.specs))
	copy(out, s.specs)
	return out
}

// Intersect combines two conjunctions. Merging only ever tightens the
// admitted range; duplicate operator+version pairs collapse.
func (s Set) Intersect(other Set) Set {
	combined := make([]Specifier, 0, len(s.specs)+len(other.specs))
	combined = append(combined, s.specs...)
	combined = append(combined, other.specs...)
	return NewSet(combined...)
}

// String renders the conjunction as a comma-separated list, e.g. ">=1.0,<2.0".
func (s Set) String() string {
	parts := make([]string, len(s.specs))
	for i, spec := range s.specs {
		parts[i] = spec.String()
	}
	return strings.Join(parts, ",")
}

// Simplify reduces the conjunction to a minimal equivalent ordered list of
// single comparisons: the tightest lower bound, then "!=" exclusions that
// fall inside the admitted range (ascending), then the tightest upper
// bound. Compatible-release comparisons are expanded into their bound pair
// first. "==" pins that satisfy every other comparison collapse the whole
// set to the pin. The result is independent of insertion order; the empty
// set simplifies to nil.
func (s Set) Simplify() []Specifier {
	var pins, excludes, lowers, uppers []Specifier
	for _, spec := range s.specs {
		switch spec.Op {
		case OpCompatible:
			lo, hi := spec.compatBounds()
			lowers = append(lowers, lo)
			uppers = append(uppers, hi)
		case OpEqual:
			pins = append(pins, spec)
		case OpNotEqual:
			excludes = append(excludes, spec)
		case OpGreater, OpGreaterEqual:
			lowers = append(lowers, spec)
		case OpLess, OpLessEqual:
			uppers = append(uppers, spec)
		}
	}

	lower := tightestBound(lowers, func(cmp int, strictA bool) bool {
		return cmp > 0 || (cmp == 0 && strictA)
	})
	upper := tightestBound(uppers, func(cmp int, strictA bool) bool {
		return cmp < 0 || (cmp == 0 && strictA)
	})

	pins = dedupeSorted(pins)
	excludes = dedupeSorted(excludes)

	// Keep only exclusions that matter inside the admitted range.
	kept := excludes[:0]
	for _, ex := range excludes {
		if lower != nil && !lower.admits(ex.parsed) {
			continue
		}
		if upper != nil && !upper.admits(ex.parsed) {
			continue
		}
		kept = append(kept, ex)
	}
	excludes = kept

	if len(pins) > 0 && pinsCollapse(pins, lower, upper, excludes) {
		return []Specifier{pins[0]}
	}

	var out []Specifier
	out = append(out, pins...)
	if lower != nil {
		out = append(out, *lower)
	}
	out = append(out, excludes...)
	if upper != nil {
		out = append(out, *upper)
	}
	return out
}

// pinsCollapse reports whether the "==" pins subsume the rest of the
// conjunction: all pins name the same version and that version satisfies
// every bound and exclusion.
func pinsCollapse(pins []Specifier, lower, upper *Specifier, excludes []Specifier) bool {
	for _, p := range pins[1:] {
		if !p.parsed.Equal(pins[0].parsed) {
			return false
		}
	}
	v := pins[0].parsed
	if lower != nil && !lower.admits(v) {
		return false
	}
	if upper != nil && !upper.admits(v) {
		return false
	}
	for _, ex := range excludes {
		if !ex.admits(v) {
			return false
		}
	}
	return true
}

// tightestBound picks the strongest bound. tighter reports whether a beats
// b given their version comparison and whether a is the strict operator.
func tightestBound(bounds []Specifier, tighter func(cmp int, strictA bool) bool) *Specifier {
	var best *Specifier
	for i := range bounds {
		b := &bounds[i]
		if best == nil {
			best = b
			continue
		}
		strict := b.Op == OpGreater || b.Op == OpLess
		if tighter(b.parsed.Compare(best.parsed), strict) {
			best = b
		}
	}
	return best
}

// dedupeSorted removes same-version duplicates and orders ascending by
// version, breaking ties on the literal spelling.
func dedupeSorted(specs []Specifier) []Specifier {
	seen := make(map[string]bool, len(specs))
	out := make([]Specifier, 0, len(specs))
	for _, s := range specs {
		if seen[s.key()] {
			continue
		}
		seen[s.key()] = true
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].parsed.Compare(out[j].parsed); cmp != 0 {
			return cmp < 0
		}
		return out[i].Version < out[j].Version
	})
	return out
}
