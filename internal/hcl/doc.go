// Package hcl implements the config.Loader interface on top of HCL. The
// launcher config file is a single optional file with `environment`,
// `server`, and `watch` blocks; anything left unspecified falls back to the
// built-in defaults. Process environment variables are exposed to
// expressions as `env.<NAME>`.
package hcl
