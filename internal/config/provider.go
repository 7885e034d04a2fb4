// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set,
	// as the --config flag does. The file must exist.
	ConfigFilePath string
	// ConfigDirPath overrides the directory searched for config.cue,
	// bypassing the platform config-directory lookup.
	ConfigDirPath string
}

// Provider loads girder configuration from explicit options. Commands hold
// a Provider rather than calling the package-level loader so tests can
// substitute fixed configurations.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider creates the file-backed provider: defaults, then config.cue
// validated against the #Config schema, then GIRDER_* environment overrides.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads and validates configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
