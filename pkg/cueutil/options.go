// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize is the maximum input size accepted by ParseAndDecode
// unless overridden with WithMaxFileSize.
const DefaultMaxFileSize int64 = 4 << 20 // 4 MiB

// Option configures ParseAndDecode behavior.
type Option func(*parseOptions)

type parseOptions struct {
	filename    string
	maxFileSize int64
	concrete    bool
}

func defaultOptions() parseOptions {
	return parseOptions{
		maxFileSize: DefaultMaxFileSize,
		concrete:    true,
	}
}

// WithFilename sets the filename used in error messages. Defaults to "<input>".
func WithFilename(name string) Option {
	return func(o *parseOptions) {
		o.filename = name
	}
}

// WithMaxFileSize overrides the maximum accepted input size in bytes.
func WithMaxFileSize(n int64) Option {
	return func(o *parseOptions) {
		o.maxFileSize = n
	}
}

// WithConcrete controls whether validation requires all values to be concrete.
// Concrete validation is the default; disable it when the caller only needs
// structural checks against the schema.
func WithConcrete(concrete bool) Option {
	return func(o *parseOptions) {
		o.concrete = concrete
	}
}
