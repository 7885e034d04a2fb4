// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"girder/internal/buildgraph"
	"girder/internal/config"
	"girder/internal/distmanifest"
	"girder/internal/installpath"
	"girder/internal/issue"
	"girder/internal/toolchain"
	"girder/pkg/pkgconfig"
)

var (
	flagManifest  string
	flagOut       string
	flagPrefix    string
	flagToolchain string

	pkgconfigCmd = &cobra.Command{
		Use:   "pkgconfig",
		Short: "Generate pkg-config descriptors from the build manifest",
		Long: `Generate one .pc descriptor file per pkgconfig export block in the
build manifest, plus a distribution manifest recording the generated
files for the install step.

Descriptors land under <out>/pkgconfig/. Generation is all-or-nothing:
nothing is written unless every descriptor resolves.`,
		Args: cobra.NoArgs,
		RunE: runPkgConfig,
	}
)

func init() {
	pkgconfigCmd.Flags().StringVar(&flagManifest, "manifest", "", "build manifest path (default girder.cue)")
	pkgconfigCmd.Flags().StringVar(&flagOut, "out", "", "build output directory (default build)")
	pkgconfigCmd.Flags().StringVar(&flagPrefix, "prefix", "", "install prefix (default /usr/local)")
	pkgconfigCmd.Flags().StringVar(&flagToolchain, "toolchain", "", "flag vocabulary, cc or msvc (default cc)")
}

func runPkgConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return reportError(err, verbose)
	}
	applyFlagOverrides(cmd, cfg)

	tc, err := toolchain.New(string(cfg.Toolchain))
	if err != nil {
		return reportError(err, cfg.Verbose)
	}
	layout, err := installpath.NewLayout(cfg.Prefix, cfg.RootOverrides())
	if err != nil {
		return reportError(err, cfg.Verbose)
	}

	logger := newLogger(cfg)
	logger.Debug("loading build manifest", "path", cfg.Manifest)

	build, err := buildgraph.Load(cfg.Manifest)
	if err != nil {
		return reportError(issue.NewErrorContext().
			WithOperation("load build manifest").
			WithResource(cfg.Manifest).
			WithSuggestion("Run from the directory containing girder.cue, or pass --manifest").
			Wrap(err).
			BuildError(), cfg.Verbose)
	}

	generated, err := pkgconfig.Finalize(
		build.Descriptors, build.Graph.Defaults(), tc, layout, cfg.OutDir, logger)
	if err != nil {
		return reportError(issue.WrapWithContext(err, "generate package descriptors", cfg.Manifest), cfg.Verbose)
	}

	dist := &distmanifest.Manifest{
		Project: build.Graph.ProjectName(),
		Version: build.Graph.ProjectVersion(),
	}
	for _, g := range generated {
		dist.Add(g.RelPath, installpath.Libdir)
	}
	distPath := filepath.Join(cfg.OutDir, distmanifest.DefaultFilename)
	if err := distmanifest.Write(distPath, dist); err != nil {
		return reportError(issue.WrapWithContext(err, "write dist manifest", distPath), cfg.Verbose)
	}

	out := cmd.OutOrStdout()
	for _, g := range generated {
		fmt.Fprintf(out, "%s %s\n", SuccessStyle.Render("✓"), PathStyle.Render(g.RelPath))
	}
	fmt.Fprintln(out, SubtitleStyle.Render(
		fmt.Sprintf("%d descriptor(s) generated in %s", len(generated), cfg.OutDir)))

	return nil
}

// applyFlagOverrides lets explicit command-line flags win over the config
// file and environment.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("manifest") {
		cfg.Manifest = flagManifest
	}
	if cmd.Flags().Changed("out") {
		cfg.OutDir = flagOut
	}
	if cmd.Flags().Changed("prefix") {
		cfg.Prefix = flagPrefix
	}
	if cmd.Flags().Changed("toolchain") {
		cfg.Toolchain = config.ToolchainName(flagToolchain)
	}
}

// reportError prints a user-facing rendering of err and passes it back to
// Cobra for exit status handling.
func reportError(err error, verboseMode bool) error {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verboseMode))
	return &ExitError{Code: 1, Err: err}
}
