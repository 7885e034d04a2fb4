// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"girder/internal/config"
	"girder/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "girder",
		Short: "A build scaffolding generator",
		Long: TitleStyle.Render("girder") + SubtitleStyle.Render(" - A build scaffolding generator") + `

girder reads a CUE build manifest describing a project's libraries,
headers, and external package dependencies, and generates the install
artifacts a build needs: pkg-config descriptor (.pc) files and a
distribution manifest for the install step.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Write a girder.cue manifest in your project directory
  2. Declare libraries, headers, and pkgconfig export blocks
  3. Generate descriptors with: girder pkgconfig

` + SubtitleStyle.Render("Examples:") + `
  girder pkgconfig                  Generate descriptors into ./build
  girder pkgconfig --out dist      Generate into ./dist
  girder pkgconfig --prefix /usr   Anchor install paths at /usr`,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/girder/config.cue)")

	rootCmd.AddCommand(pkgconfigCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// fang.Execute provides enhanced Cobra styling; version goes through
	// fang.WithVersion since fang overrides rootCmd.Version.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// loadConfig resolves configuration for a command invocation, honoring the
// --config flag, and applies flag-level overrides afterwards.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{
		ConfigFilePath: cfgFile,
	})
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// newLogger builds the CLI logger at the level the config asks for.
func newLogger(cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "girder",
	})
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
