// Package toolchain isolates everything platform- and interpreter-specific
// about the environment directory: where its binaries live, how it is
// created, and how dependencies are installed into it. The bootstrap and
// supervise packages only ever talk to the Toolchain interface, so tests can
// substitute a recording fake and other toolchains can be added without
// touching the launch sequence.
package toolchain
