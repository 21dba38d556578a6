package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adeptcoder014/devstrap/internal/app"
	"github.com/adeptcoder014/devstrap/internal/bootstrap"
	"github.com/adeptcoder014/devstrap/internal/hcl"
)

// HarnessOption mutates the app config before a harness run.
type HarnessOption func(*app.Config)

// WithReinstall forces the dependency sync on an existing environment.
func WithReinstall() HarnessOption {
	return func(cfg *app.Config) { cfg.Reinstall = true }
}

// HarnessResult holds the outcomes of a bootstrap test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	Ensure    *bootstrap.EnsureResult
	Toolchain *FakeToolchain
}

// RunBootstrapTest provides a standardized harness for bootstrap tests: it
// writes the given files into a fresh temp working directory, builds the app
// with a fake toolchain, and runs the bootstrap phase. Startup panics are
// recovered into the result's Err, matching the entrypoint behavior.
func RunBootstrapTest(t *testing.T, files map[string]string, opts ...HarnessOption) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	appConfig := &app.Config{
		LogLevel:  "debug",
		LogFormat: "text",
	}
	for _, opt := range opts {
		opt(appConfig)
	}

	logBuffer := &SafeBuffer{}
	fake := &FakeToolchain{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, hcl.NewLoader(), fake)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
			Toolchain: fake,
		}
	}

	// The serve phase launches a real child process, so the harness stops
	// at the bootstrap phase, which is where the testable contract lives.
	ensure, err := testApp.Bootstrap(context.Background())

	if os.Getenv("DEVSTRAP_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       err,
		App:       testApp,
		Ensure:    ensure,
		Toolchain: fake,
	}
}
