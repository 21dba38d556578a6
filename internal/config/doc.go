// Package config defines the format-agnostic configuration model for the
// launcher, along with the Loader interface for reading it from a source
// format. Concrete implementations, such as for HCL, are provided in
// separate packages.
package config
