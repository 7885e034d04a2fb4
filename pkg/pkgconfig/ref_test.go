// SPDX-License-Identifier: MPL-2.0

package pkgconfig

import (
	"errors"
	"testing"

	"girder/pkg/verspec"
)

func TestFilterPackagesMergesNamedShapes(t *testing.T) {
	t.Parallel()

	// A bare name and a (name, version) pair route into the same entry.
	reqs, system, err := FilterPackages([]PackageRef{
		NameRef("zlib"),
		VersionedRef("zlib", verspec.MustSet(">=1.2")),
	})
	if err != nil {
		t.Fatalf("FilterPackages() error: %v", err)
	}
	if len(system) != 0 {
		t.Errorf("system packages = %d, want 0", len(system))
	}
	if reqs.Len() != 1 {
		t.Fatalf("requirement count = %d, want 1", reqs.Len())
	}
	r, _ := reqs.Get("zlib")
	if got := r.Constraint.String(); got != ">=1.2" {
		t.Errorf("zlib constraint = %q, want %q", got, ">=1.2")
	}
}

func TestFilterPackagesResolvedPkgConfig(t *testing.T) {
	t.Parallel()

	reqs, _, err := FilterPackages([]PackageRef{
		PkgConfigRef(&fakePC{name: "libpng", spec: verspec.MustSet(">=1.6")}),
	})
	if err != nil {
		t.Fatalf("FilterPackages() error: %v", err)
	}
	r, ok := reqs.Get("libpng")
	if !ok || r.Constraint.String() != ">=1.6" {
		t.Errorf("libpng requirement = %v (found %t), want >=1.6", r.Constraint, ok)
	}
}

func TestFilterPackagesDeduplicatesSystem(t *testing.T) {
	t.Parallel()

	gl := &fakeSystem{name: "opengl"}
	x11 := &fakeSystem{name: "x11"}
	_, system, err := FilterPackages([]PackageRef{
		SystemRef(gl),
		SystemRef(x11),
		SystemRef(gl),
	})
	if err != nil {
		t.Fatalf("FilterPackages() error: %v", err)
	}
	if len(system) != 2 || system[0].SystemName() != "opengl" || system[1].SystemName() != "x11" {
		names := make([]string, len(system))
		for i, s := range system {
			names[i] = s.SystemName()
		}
		t.Errorf("system packages = %v, want [opengl x11]", names)
	}
}

func TestFilterPackagesRejectsInvalidRef(t *testing.T) {
	t.Parallel()

	_, _, err := FilterPackages([]PackageRef{NameRef("zlib"), {}})
	if err == nil {
		t.Fatal("FilterPackages() with zero ref succeeded, want error")
	}
	if !errors.Is(err, ErrUnsupportedRef) {
		t.Errorf("error %v is not ErrUnsupportedRef", err)
	}
}
