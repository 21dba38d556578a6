// Package cli parses command-line arguments and environment overrides into
// an app.Config. It owns the usage text and the ExitError type that maps
// failures to process exit codes.
package cli
