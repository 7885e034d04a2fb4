// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"

	"girder/internal/config"
)

// configCmd is the `girder config` command tree. Subcommands that read
// configuration go through the same provider the generator commands use.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage girder configuration",
	Long: `Manage girder configuration.

Configuration is stored in:
  - Linux: ~/.config/girder/config.cue
  - macOS: ~/Library/Application Support/girder/config.cue
  - Windows: %APPDATA%\girder\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile(cmd)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd, args[0], args[1])
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	})
}

func showConfig(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return reportError(err, verbose)
	}

	out := cmd.OutOrStdout()
	keyStyle := PathStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	// The provider does not cache resolved paths; derive the file path from
	// the standard config directory.
	if cfgPath, err := configFilePath(); err == nil && fileExistsCheck(cfgPath) {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("prefix"), valueStyle.Render(cfg.Prefix))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("toolchain"), valueStyle.Render(string(cfg.Toolchain)))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("out_dir"), valueStyle.Render(cfg.OutDir))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("manifest"), valueStyle.Render(cfg.Manifest))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("verbose"), valueStyle.Render(strconv.FormatBool(cfg.Verbose)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("install_dirs"))
	if len(cfg.InstallDirs) == 0 {
		fmt.Fprintf(out, "  %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		for _, root := range sortedStrings(cfg.InstallDirs) {
			fmt.Fprintf(out, "  %s: %s\n", root, valueStyle.Render(cfg.InstallDirs[root]))
		}
	}

	return nil
}

func initConfigFile(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	cfgPath, err := configFilePath()
	if err != nil {
		return err
	}

	if fileExistsCheck(cfgPath) {
		fmt.Fprintf(out, "%s Configuration already exists at %s, leaving it untouched\n",
			WarningStyle.Render("!"), cfgPath)
		return nil
	}

	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Fprintf(out, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(out, "Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

func setConfigValue(cmd *cobra.Command, key, value string) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return reportError(err, verbose)
	}

	switch key {
	case "prefix":
		cfg.Prefix = value
	case "toolchain":
		cfg.Toolchain = config.ToolchainName(value)
	case "out_dir":
		cfg.OutDir = value
	case "manifest":
		cfg.Manifest = value
	case "verbose":
		cfg.Verbose = value == "true" || value == "1"
	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: prefix, toolchain, out_dir, manifest, verbose", key)
	}

	if err := cfg.Validate(); err != nil {
		return reportError(err, verbose)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

// configFilePath derives the config file path from the standard config
// directory.
func configFilePath() (string, error) {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt), nil
}

// sortedStrings returns the map keys in sorted order for stable output.
func sortedStrings(m map[string]string) []string {
	keys := maps.Keys(m)
	sort.Strings(keys)
	return keys
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
