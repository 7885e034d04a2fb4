// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as
// the file format.
//
// Configuration is loaded from ~/.config/girder/config.cue (or XDG
// equivalent on Linux, ~/Library/Application Support/girder/config.cue on
// macOS, %APPDATA%\girder\config.cue on Windows), falling back to a
// config.cue in the current directory. Values can be overridden through
// GIRDER_* environment variables.
//
// Configuration validation is performed against a CUE schema
// (config_schema.cue) to ensure type safety and clear error messages for
// invalid configurations.
package config
