// SPDX-License-Identifier: MPL-2.0

package installpath

import (
	"errors"
	"reflect"
	"testing"

	"girder/pkg/pkgconfig"
)

func TestNewLayout(t *testing.T) {
	t.Parallel()

	t.Run("conventional defaults", func(t *testing.T) {
		t.Parallel()

		l, err := NewLayout("/usr/local", nil)
		if err != nil {
			t.Fatalf("NewLayout() error = %v", err)
		}
		want := []pkgconfig.Variable{
			{Name: "prefix", Value: "/usr/local"},
			{Name: "exec_prefix", Value: "${prefix}"},
			{Name: "libdir", Value: "${exec_prefix}/lib"},
			{Name: "includedir", Value: "${prefix}/include"},
		}
		if got := l.Variables(); !reflect.DeepEqual(got, want) {
			t.Errorf("Variables() = %v, want %v", got, want)
		}
	})

	t.Run("bindir excluded but configured", func(t *testing.T) {
		t.Parallel()

		l, err := NewLayout("/usr", nil)
		if err != nil {
			t.Fatalf("NewLayout() error = %v", err)
		}
		if got := l.Path(Bindir); got != "${exec_prefix}/bin" {
			t.Errorf("Path(Bindir) = %q", got)
		}
		for _, v := range l.Variables() {
			if v.Name == string(Bindir) {
				t.Error("Variables() should not include bindir")
			}
		}
	})

	t.Run("override replaces one root", func(t *testing.T) {
		t.Parallel()

		l, err := NewLayout("/usr", map[Root]string{Libdir: "/usr/lib64"})
		if err != nil {
			t.Fatalf("NewLayout() error = %v", err)
		}
		if got := l.Path(Libdir); got != "/usr/lib64" {
			t.Errorf("Path(Libdir) = %q", got)
		}
		if got := l.Path(Includedir); got != "${prefix}/include" {
			t.Errorf("Path(Includedir) = %q", got)
		}
	})

	t.Run("unknown override root", func(t *testing.T) {
		t.Parallel()

		_, err := NewLayout("/usr", map[Root]string{"datadir": "/usr/share"})
		if !errors.Is(err, ErrUnknownRoot) {
			t.Errorf("error = %v, want ErrUnknownRoot", err)
		}
	})
}

func TestLayoutDirs(t *testing.T) {
	t.Parallel()

	l, err := NewLayout("/usr/local", nil)
	if err != nil {
		t.Fatalf("NewLayout() error = %v", err)
	}

	if got := l.IncludeDir(""); got != "${includedir}" {
		t.Errorf("IncludeDir(\"\") = %q", got)
	}
	if got := l.IncludeDir("scaffold"); got != "${includedir}/scaffold" {
		t.Errorf("IncludeDir(scaffold) = %q", got)
	}
	if got := l.LibDir(); got != "${libdir}" {
		t.Errorf("LibDir() = %q", got)
	}
}

func TestRoots(t *testing.T) {
	t.Parallel()

	want := []Root{Prefix, ExecPrefix, Bindir, Libdir, Includedir}
	if got := Roots(); !reflect.DeepEqual(got, want) {
		t.Errorf("Roots() = %v, want %v", got, want)
	}
	if Root("datadir").Valid() {
		t.Error("datadir should not be a valid root")
	}
}
