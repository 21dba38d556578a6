// Package bootstrap implements the environment lifecycle that precedes the
// server launch: ensure the environment directory exists (creating it
// exactly once), decide whether dependencies need installing, and keep a
// small metadata file inside the environment recording its identity and the
// manifest it was installed from.
//
// The existence check happens in exactly one place, EnsureEnvironment, which
// returns an explicit result instead of leaving later steps to re-probe the
// filesystem.
package bootstrap
