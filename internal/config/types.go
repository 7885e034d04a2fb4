// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"girder/internal/installpath"
)

const (
	// ToolchainCC selects the Unix compiler driver flag vocabulary.
	ToolchainCC ToolchainName = "cc"
	// ToolchainMSVC selects the Microsoft toolchain flag vocabulary.
	ToolchainMSVC ToolchainName = "msvc"
)

var (
	// ErrInvalidToolchainName is returned when a ToolchainName value is not recognized.
	ErrInvalidToolchainName = errors.New("invalid toolchain name")
	// ErrInvalidInstallDir is the sentinel error wrapped by InvalidInstallDirError.
	ErrInvalidInstallDir = errors.New("invalid install dir override")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ToolchainName selects the flag vocabulary used when descriptors are
	// resolved.
	ToolchainName string

	// InvalidToolchainNameError is returned when a ToolchainName value is
	// not recognized. It wraps ErrInvalidToolchainName for errors.Is()
	// compatibility.
	InvalidToolchainNameError struct {
		Value ToolchainName
	}

	// InvalidInstallDirError is returned when an install_dirs key is not a
	// known install root, or its value is blank.
	InvalidInstallDirError struct {
		Key    string
		Reason string
	}

	// InvalidConfigError aggregates the validation failures of one Config.
	InvalidConfigError struct {
		Errs []error
	}

	// Config is the application configuration.
	Config struct {
		// Prefix is the install prefix descriptors are anchored to.
		Prefix string `mapstructure:"prefix"`
		// Toolchain selects the flag vocabulary ("cc" or "msvc").
		Toolchain ToolchainName `mapstructure:"toolchain"`
		// OutDir is the build output directory.
		OutDir string `mapstructure:"out_dir"`
		// Manifest is the build manifest path.
		Manifest string `mapstructure:"manifest"`
		// Verbose enables debug logging and full error chains.
		Verbose bool `mapstructure:"verbose"`
		// InstallDirs overrides individual install roots, keyed by root
		// name (e.g. libdir: "/usr/lib64").
		InstallDirs map[string]string `mapstructure:"install_dirs"`
	}
)

func (e *InvalidToolchainNameError) Error() string {
	return fmt.Sprintf("invalid toolchain name %q (valid: cc, msvc)", e.Value)
}

func (e *InvalidToolchainNameError) Unwrap() error { return ErrInvalidToolchainName }

func (e *InvalidInstallDirError) Error() string {
	return fmt.Sprintf("install_dirs[%q]: %s", e.Key, e.Reason)
}

func (e *InvalidInstallDirError) Unwrap() error { return ErrInvalidInstallDir }

func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.Errs...)
}

// Validate reports whether the toolchain name is recognized.
func (t ToolchainName) Validate() error {
	switch t {
	case ToolchainCC, ToolchainMSVC:
		return nil
	default:
		return &InvalidToolchainNameError{Value: t}
	}
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Prefix:    "/usr/local",
		Toolchain: ToolchainCC,
		OutDir:    "build",
		Manifest:  "girder.cue",
	}
}

// Validate checks constraints the CUE schema cannot express on merged
// values: the toolchain name and the install-root override keys.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Toolchain.Validate(); err != nil {
		errs = append(errs, err)
	}
	for key, value := range c.InstallDirs {
		if !installpath.Root(key).Valid() {
			errs = append(errs, &InvalidInstallDirError{Key: key, Reason: "not a known install root"})
			continue
		}
		if strings.TrimSpace(value) == "" {
			errs = append(errs, &InvalidInstallDirError{Key: key, Reason: "path is blank"})
		}
	}

	if len(errs) > 0 {
		return &InvalidConfigError{Errs: errs}
	}
	return nil
}

// RootOverrides converts the install_dirs map to installpath override keys.
// Call only after Validate.
func (c *Config) RootOverrides() map[installpath.Root]string {
	if len(c.InstallDirs) == 0 {
		return nil
	}
	out := make(map[installpath.Root]string, len(c.InstallDirs))
	for key, value := range c.InstallDirs {
		out[installpath.Root(key)] = value
	}
	return out
}
