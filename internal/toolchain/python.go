package toolchain

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
)

// Python is the venv-based Python toolchain. It reproduces the command set
// of the original startup scripts: `python -m venv` to create the
// environment, the environment's own pip to install the manifest, and the
// environment's server executable bound to the configured endpoint.
type Python struct {
	layout      Layout
	runner      Runner
	interpreter string
}

// NewPython builds a Python toolchain. The interpreter is the base Python
// used to create environments; callers pick a platform default via
// DefaultInterpreter when the config leaves it unset.
func NewPython(layout Layout, runner Runner, interpreter string) *Python {
	return &Python{
		layout:      layout,
		runner:      runner,
		interpreter: interpreter,
	}
}

// Name implements Toolchain.
func (p *Python) Name() string { return "python-venv" }

// CreateEnv creates a virtual environment at dir.
func (p *Python) CreateEnv(ctx context.Context, dir string) error {
	cmd := Command{
		Path: p.interpreter,
		Args: []string{"-m", "venv", dir},
	}
	if err := p.runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("create environment: %w", err)
	}
	return nil
}

// Install installs the manifest into the environment using its own pip, the
// equivalent of activating the environment before installing.
func (p *Python) Install(ctx context.Context, dir, manifest string) error {
	cmd := Command{
		Path: filepath.Join(p.layout.BinDir(dir), p.layout.Executable("pip")),
		Args: []string{"install", "-r", manifest},
	}
	if err := p.runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("install dependencies: %w", err)
	}
	return nil
}

// ServerCommand resolves the server executable inside the environment and
// appends the host/port binding. Reload is owned by the launcher's own
// watcher, so no reload flag is passed to the server.
func (p *Python) ServerCommand(dir string, command []string, host string, port int) Command {
	args := make([]string, 0, len(command)+3)
	args = append(args, command[1:]...)
	args = append(args, "--host", host, "--port", strconv.Itoa(port))

	return Command{
		Path: filepath.Join(p.layout.BinDir(dir), p.layout.Executable(command[0])),
		Args: args,
	}
}
