package toolchain

import "context"

// Command describes a single external tool invocation.
type Command struct {
	// Path is the executable to run, either bare (resolved via PATH) or an
	// explicit file path.
	Path string
	// Args are the arguments passed to the executable, not including the
	// executable name itself.
	Args []string
	// Env holds extra KEY=VALUE entries appended to the process environment.
	Env []string
}

// Toolchain is the capability surface the bootstrap procedure needs: create
// the environment, install the manifest into it, and shape the server
// command that runs from it.
type Toolchain interface {
	// Name identifies the toolchain in logs and environment metadata.
	Name() string
	// CreateEnv creates the environment directory. It is only called when
	// the directory does not exist yet.
	CreateEnv(ctx context.Context, dir string) error
	// Install installs the dependency manifest into the environment.
	Install(ctx context.Context, dir, manifest string) error
	// ServerCommand builds the server invocation for the given environment
	// and endpoint. It does not start anything.
	ServerCommand(dir string, command []string, host string, port int) Command
}
