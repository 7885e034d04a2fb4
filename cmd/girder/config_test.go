// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"girder/internal/config"
)

// runCommand executes the root command with args, capturing stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), err
}

func TestConfigCommand(t *testing.T) {
	cfgDir := t.TempDir()
	config.SetConfigDirOverride(cfgDir)
	t.Cleanup(config.Reset)

	cfgPath := filepath.Join(cfgDir, "config.cue")

	t.Run("path", func(t *testing.T) {
		out, err := runCommand(t, "config", "path")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(out, cfgDir) {
			t.Errorf("output missing config directory %q:\n%s", cfgDir, out)
		}
		if !strings.Contains(out, cfgPath) {
			t.Errorf("output missing config file path %q:\n%s", cfgPath, out)
		}
	})

	t.Run("init creates default file", func(t *testing.T) {
		out, err := runCommand(t, "config", "init")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(out, "Created default configuration") {
			t.Errorf("unexpected output:\n%s", out)
		}

		data, err := os.ReadFile(cfgPath)
		if err != nil {
			t.Fatalf("config file not written: %v", err)
		}
		if !strings.Contains(string(data), `toolchain: "cc"`) {
			t.Errorf("default config missing toolchain:\n%s", data)
		}
	})

	t.Run("init leaves existing file untouched", func(t *testing.T) {
		marker := []byte("prefix: \"/opt/girder\"\n")
		if err := os.WriteFile(cfgPath, marker, 0o644); err != nil {
			t.Fatalf("write marker config: %v", err)
		}

		out, err := runCommand(t, "config", "init")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(out, "already exists") {
			t.Errorf("expected already-exists notice:\n%s", out)
		}

		data, err := os.ReadFile(cfgPath)
		if err != nil {
			t.Fatalf("read config: %v", err)
		}
		if string(data) != string(marker) {
			t.Errorf("existing config was overwritten:\n%s", data)
		}
	})

	t.Run("show reports values and file", func(t *testing.T) {
		out, err := runCommand(t, "config", "show")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		for _, want := range []string{cfgPath, "/opt/girder", "cc", "girder.cue"} {
			if !strings.Contains(out, want) {
				t.Errorf("show output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("set persists a value", func(t *testing.T) {
		out, err := runCommand(t, "config", "set", "toolchain", "msvc")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(out, "Set toolchain = msvc") {
			t.Errorf("unexpected output:\n%s", out)
		}

		cfg, err := config.NewProvider().Load(t.Context(), config.LoadOptions{ConfigDirPath: cfgDir})
		if err != nil {
			t.Fatalf("reload config: %v", err)
		}
		if cfg.Toolchain != config.ToolchainMSVC {
			t.Errorf("Toolchain = %q, want %q", cfg.Toolchain, config.ToolchainMSVC)
		}
		if cfg.Prefix != "/opt/girder" {
			t.Errorf("Prefix = %q, want marker value preserved", cfg.Prefix)
		}
	})

	t.Run("set rejects invalid toolchain", func(t *testing.T) {
		if _, err := runCommand(t, "config", "set", "toolchain", "clangd"); err == nil {
			t.Fatal("Execute() expected error for invalid toolchain")
		}
	})

	t.Run("set rejects unknown key", func(t *testing.T) {
		_, err := runCommand(t, "config", "set", "color_scheme", "dark")
		if err == nil {
			t.Fatal("Execute() expected error for unknown key")
		}
		if !strings.Contains(err.Error(), "unknown configuration key") {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("dump emits CUE", func(t *testing.T) {
		out, err := runCommand(t, "config", "dump")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		for _, want := range []string{`prefix: "/opt/girder"`, `toolchain: "msvc"`} {
			if !strings.Contains(out, want) {
				t.Errorf("dump output missing %q:\n%s", want, out)
			}
		}
	})
}
