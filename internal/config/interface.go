package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given path and translates it into
	// the format-agnostic model. An empty path yields the built-in
	// defaults, preserving the zero-config contract of the original
	// startup scripts.
	Load(ctx context.Context, path string) (*Model, error)
}
