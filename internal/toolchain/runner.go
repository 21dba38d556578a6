package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/adeptcoder014/devstrap/internal/ctxlog"
)

// Runner executes external tool commands to completion.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands through os/exec with inherited stdio, so the
// operator sees the underlying tool's output exactly as the original
// scripts showed it.
type ExecRunner struct{}

// Run executes the command and blocks until it exits. Failures carry the
// underlying tool's error unmodified beneath the wrap.
func (ExecRunner) Run(ctx context.Context, cmd Command) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Running tool command.", "path", cmd.Path, "args", strings.Join(cmd.Args, " "))

	ec := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	ec.Stdout = os.Stdout
	ec.Stderr = os.Stderr
	ec.Env = append(os.Environ(), cmd.Env...)

	if err := ec.Run(); err != nil {
		return fmt.Errorf("%s: %w", cmd.Path, err)
	}
	return nil
}
