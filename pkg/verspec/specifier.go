// SPDX-License-Identifier: MPL-2.0

package verspec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalidSpecifier is the sentinel error wrapped by InvalidSpecifierError.
var ErrInvalidSpecifier = errors.New("invalid version specifier")

type (
	// Op is a version comparison operator.
	Op string

	// Specifier is a single version comparison, e.g. ">= 1.2".
	// The version is kept as written so that output reproduces the
	// author's spelling ("1.0", not "1.0.0").
	Specifier struct {
		Op      Op
		Version string

		parsed *semver.Version
	}

	// InvalidSpecifierError is returned when a specifier string cannot be
	// parsed. It wraps ErrInvalidSpecifier for errors.Is() compatibility.
	InvalidSpecifierError struct {
		Raw    string
		Reason string
	}
)

const (
	OpEqual        Op = "=="
	OpNotEqual     Op = "!="
	OpLess         Op = "<"
	OpLessEqual    Op = "<="
	OpGreater      Op = ">"
	OpGreaterEqual Op = ">="
	// OpCompatible is the compatible-release operator: "~= X.Y" admits
	// every version >= X.Y that stays within the X release series.
	OpCompatible Op = "~="
)

// twoCharOps are tried before the one-character operators so that ">=" is
// not parsed as ">" followed by a version beginning with "=".
var twoCharOps = []Op{OpEqual, OpNotEqual, OpLessEqual, OpGreaterEqual, OpCompatible}

func (e *InvalidSpecifierError) Error() string {
	return fmt.Sprintf("invalid version specifier %q: %s", e.Raw, e.Reason)
}

// Unwrap returns ErrInvalidSpecifier so callers can use errors.Is.
func (e *InvalidSpecifierError) Unwrap() error { return ErrInvalidSpecifier }

// ParseSpecifier parses a single comparison such as ">=1.0" or "~= 2.4".
func ParseSpecifier(raw string) (Specifier, error) {
	s := strings.TrimSpace(raw)
	var op Op
	for _, candidate := range twoCharOps {
		if strings.HasPrefix(s, string(candidate)) {
			op = candidate
			s = s[len(candidate):]
			break
		}
	}
	if op == "" {
		switch {
		case strings.HasPrefix(s, string(OpLess)):
			op, s = OpLess, s[1:]
		case strings.HasPrefix(s, string(OpGreater)):
			op, s = OpGreater, s[1:]
		default:
			return Specifier{}, &InvalidSpecifierError{Raw: raw, Reason: "missing comparison operator"}
		}
	}

	version := strings.TrimSpace(s)
	if version == "" {
		return Specifier{}, &InvalidSpecifierError{Raw: raw, Reason: "missing version"}
	}
	return NewSpecifier(op, version)
}

// NewSpecifier builds a Specifier from an operator and a version literal.
func NewSpecifier(op Op, version string) (Specifier, error) {
	switch op {
	case OpEqual, OpNotEqual, OpLess, OpLessEqual, OpGreater, OpGreaterEqual, OpCompatible:
	default:
		return Specifier{}, &InvalidSpecifierError{Raw: string(op) + version, Reason: "unknown operator"}
	}

	parsed, err := semver.NewVersion(version)
	if err != nil {
		return Specifier{}, &InvalidSpecifierError{Raw: string(op) + version, Reason: err.Error()}
	}
	if op == OpCompatible && (parsed.Prerelease() != "" || parsed.Metadata() != "") {
		return Specifier{}, &InvalidSpecifierError{
			Raw:    string(op) + version,
			Reason: "compatible-release versions must be plain release segments",
		}
	}
	return Specifier{Op: op, Version: version, parsed: parsed}, nil
}

// MustSpecifier is like ParseSpecifier but panics on error. Intended for
// tests and compile-time-constant specifiers.
func MustSpecifier(raw string) Specifier {
	s, err := ParseSpecifier(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// String renders the specifier in its compact form, e.g. ">=1.0".
func (s Specifier) String() string {
	return string(s.Op) + s.Version
}

// key identifies a specifier for deduplication: same operator and same
// version value (not spelling, so ">=1.0" and ">=1.0.0" collapse).
func (s Specifier) key() string {
	return string(s.Op) + " " + s.parsed.String()
}

// admits reports whether a version satisfies this single comparison.
func (s Specifier) admits(v *semver.Version) bool {
	cmp := v.Compare(s.parsed)
	switch s.Op {
	case OpEqual:
		return cmp == 0
	case OpNotEqual:
		return cmp != 0
	case OpLess:
		return cmp < 0
	case OpLessEqual:
		return cmp <= 0
	case OpGreater:
		return cmp > 0
	case OpGreaterEqual:
		return cmp >= 0
	case OpCompatible:
		lo, hi := s.compatBounds()
		return lo.admits(v) && hi.admits(v)
	}
	return false
}

// compatBounds expands a compatible-release specifier into its equivalent
// lower and upper bounds: "~=1.4" becomes ">=1.4, <2.0" and "~=1.4.5"
// becomes ">=1.4.5, <1.5.0".
func (s Specifier) compatBounds() (lo, hi Specifier) {
	lo = Specifier{Op: OpGreaterEqual, Version: s.Version, parsed: s.parsed}

	segments := strings.Split(s.Version, ".")
	var upper []string
	if len(segments) < 2 {
		upper = []string{bumpSegment(segments[0])}
	} else {
		upper = append(upper, segments[:len(segments)-2]...)
		upper = append(upper, bumpSegment(segments[len(segments)-2]))
		upper = append(upper, "0")
	}
	version := strings.Join(upper, ".")
	parsed, err := semver.NewVersion(version)
	if err != nil {
		// compatBounds only runs on specifiers validated by NewSpecifier,
		// whose release segments are numeric.
		panic(fmt.Sprintf("verspec: derived bound %q: %v", version, err))
	}
	hi = Specifier{Op: OpLess, Version: version, parsed: parsed}
	return lo, hi
}

func bumpSegment(segment string) string {
	n, err := strconv.Atoi(segment)
	if err != nil {
		panic(fmt.Sprintf("verspec: non-numeric release segment %q", segment))
	}
	return strconv.Itoa(n + 1)
}
