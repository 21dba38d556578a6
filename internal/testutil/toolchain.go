package testutil

import (
	"context"
	"os"
	"strconv"
	"sync"

	"github.com/adeptcoder014/devstrap/internal/toolchain"
)

// InstallCall records one Install invocation on the fake toolchain.
type InstallCall struct {
	Dir      string
	Manifest string
}

// FakeToolchain implements toolchain.Toolchain without running any external
// tools. CreateEnv creates the directory itself, the way a real environment
// tool would, so the bootstrap existence check behaves as in production.
type FakeToolchain struct {
	mu           sync.Mutex
	CreateCalls  []string
	InstallCalls []InstallCall

	CreateErr  error
	InstallErr error
}

// Name implements toolchain.Toolchain.
func (f *FakeToolchain) Name() string { return "fake" }

// CreateEnv records the call and creates the directory.
func (f *FakeToolchain) CreateEnv(_ context.Context, dir string) error {
	f.mu.Lock()
	f.CreateCalls = append(f.CreateCalls, dir)
	f.mu.Unlock()

	if f.CreateErr != nil {
		return f.CreateErr
	}
	return os.MkdirAll(dir, 0755)
}

// Install records the call.
func (f *FakeToolchain) Install(_ context.Context, dir, manifest string) error {
	f.mu.Lock()
	f.InstallCalls = append(f.InstallCalls, InstallCall{Dir: dir, Manifest: manifest})
	f.mu.Unlock()

	return f.InstallErr
}

// ServerCommand returns a harmless command shape for assertions.
func (f *FakeToolchain) ServerCommand(dir string, command []string, host string, port int) toolchain.Command {
	args := append([]string(nil), command[1:]...)
	args = append(args, "--host", host, "--port", strconv.Itoa(port))
	return toolchain.Command{Path: "fake-server", Args: args}
}

// Creates returns a copy of the recorded CreateEnv calls.
func (f *FakeToolchain) Creates() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.CreateCalls...)
}

// Installs returns a copy of the recorded Install calls.
func (f *FakeToolchain) Installs() []InstallCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]InstallCall(nil), f.InstallCalls...)
}
