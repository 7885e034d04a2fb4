// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"girder/internal/distmanifest"
)

const cliManifest = `
project: {
	name:    "scaffold"
	version: "1.4.0"
}

headers: core: subdir: "scaffold"

libraries: [{name: "scaffold"}]

pkgconfig: [{desc: "scaffolding library"}]
`

func TestPkgconfigCommand(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "girder.cue")
	if err := os.WriteFile(manifest, []byte(cliManifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	outDir := filepath.Join(dir, "build")

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{
		"pkgconfig",
		"--manifest", manifest,
		"--out", outDir,
		"--prefix", "/usr/local",
		"--toolchain", "cc",
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	pcPath := filepath.Join(outDir, "pkgconfig", "scaffold.pc")
	data, err := os.ReadFile(pcPath)
	if err != nil {
		t.Fatalf("descriptor not written: %v", err)
	}
	content := string(data)
	for _, want := range []string{
		"prefix=/usr/local",
		"Name: scaffold",
		"Version: 1.4.0",
		"Cflags: -I${includedir}/scaffold",
		"Libs: -L${libdir} -lscaffold",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("descriptor missing %q:\n%s", want, content)
		}
	}

	dist, err := distmanifest.Read(filepath.Join(outDir, distmanifest.DefaultFilename))
	if err != nil {
		t.Fatalf("dist manifest not written: %v", err)
	}
	if dist.Project != "scaffold" || len(dist.Files) != 1 {
		t.Errorf("dist manifest = %+v", dist)
	}
	if dist.Files[0].Path != "pkgconfig/scaffold.pc" {
		t.Errorf("dist entry = %+v", dist.Files[0])
	}

	if !strings.Contains(stdout.String(), "1 descriptor(s) generated") {
		t.Errorf("summary line missing:\n%s", stdout.String())
	}
}
