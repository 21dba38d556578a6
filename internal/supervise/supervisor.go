package supervise

import (
	"context"
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"github.com/adeptcoder014/devstrap/internal/ctxlog"
)

// State describes what the supervised process is currently doing.
type State string

const (
	StateRunning    State = "running"
	StateRestarting State = "restarting"
	StateCrashed    State = "crashed"
)

// defaultGrace is the period between SIGTERM and SIGKILL on restart or
// shutdown.
const defaultGrace = 5 * time.Second

// Options tunes the supervisor.
type Options struct {
	// Grace overrides the SIGTERM-to-SIGKILL period. Zero means the default.
	Grace time.Duration
	// OnState, when set, is invoked on every state transition with the
	// current child pid (zero when no child is running).
	OnState func(state State, pid int)
}

// Supervisor keeps the server child process alive across source changes.
type Supervisor struct {
	newCommand func() *exec.Cmd
	changes    <-chan string
	grace      time.Duration
	onState    func(State, int)
	restarts   int
}

// New builds a Supervisor. newCommand must return a fresh, unstarted command
// on every call; changes delivers debounced source-change events.
func New(newCommand func() *exec.Cmd, changes <-chan string, opts Options) *Supervisor {
	grace := opts.Grace
	if grace <= 0 {
		grace = defaultGrace
	}
	onState := opts.OnState
	if onState == nil {
		onState = func(State, int) {}
	}

	return &Supervisor{
		newCommand: newCommand,
		changes:    changes,
		grace:      grace,
		onState:    onState,
	}
}

// Restarts returns how many times the child was restarted.
func (s *Supervisor) Restarts() int {
	return s.restarts
}

// Run starts the child and supervises it until the context is cancelled.
// Cancellation terminates the child gracefully and returns nil, unless the
// child had already crashed, in which case the crash error is returned so
// the exit code can be propagated.
func (s *Supervisor) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	for {
		cmd := s.newCommand()
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("start server process: %w", err)
		}
		logger.Info("Server process started.", "pid", cmd.Process.Pid)
		s.onState(StateRunning, cmd.Process.Pid)

		exitCh := make(chan error, 1)
		go func() { exitCh <- cmd.Wait() }()

		select {
		case <-ctx.Done():
			s.terminate(ctx, cmd, exitCh)
			return nil

		case path := <-s.changes:
			logger.Info("Restarting server after source change.", "path", path)
			s.onState(StateRestarting, 0)
			s.terminate(ctx, cmd, exitCh)
			s.restarts++

		case err := <-exitCh:
			if err == nil {
				logger.Warn("Server process exited cleanly; waiting for a source change to restart.")
			} else {
				logger.Error("Server process exited unexpectedly; waiting for a source change to restart.", "error", err)
			}
			s.onState(StateCrashed, 0)

			select {
			case <-ctx.Done():
				if err != nil {
					return fmt.Errorf("server process failed: %w", err)
				}
				return nil
			case path := <-s.changes:
				logger.Info("Restarting server after source change.", "path", path)
				s.onState(StateRestarting, 0)
				s.restarts++
			}
		}
	}
}

// terminate asks the child to stop and escalates to SIGKILL after the grace
// period.
func (s *Supervisor) terminate(ctx context.Context, cmd *exec.Cmd, exitCh <-chan error) {
	logger := ctxlog.FromContext(ctx)

	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Signal(syscall.SIGTERM)

	timer := time.NewTimer(s.grace)
	defer timer.Stop()

	select {
	case <-exitCh:
	case <-timer.C:
		logger.Warn("Server process did not stop in time, killing it.", "pid", cmd.Process.Pid)
		_ = cmd.Process.Kill()
		<-exitCh
	}
}
