package integration_tests

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adeptcoder014/devstrap/internal/cli"
)

func TestCLI_DisplaysHelp(t *testing.T) {
	t.Parallel()

	outW := &bytes.Buffer{}

	appConfig, shouldExit, err := cli.Parse([]string{"-h"}, outW)

	require.NoError(t, err)
	require.True(t, shouldExit, "help must signal a clean exit")
	require.Nil(t, appConfig, "no config is returned when displaying help")

	output := outW.String()
	require.Contains(t, output, "Usage:")
	require.Contains(t, output, "devstrap [options] [CONFIG_PATH]")
	for _, flagName := range []string{"-config", "-log-format", "-log-level", "-status-port", "-reinstall"} {
		require.Contains(t, output, flagName)
	}
}

func TestCLI_UnknownFlagPrintsUsage(t *testing.T) {
	t.Parallel()

	outW := &bytes.Buffer{}

	_, _, err := cli.Parse([]string{"-no-such-flag"}, outW)

	require.Error(t, err)
	exitErr, ok := err.(*cli.ExitError)
	require.True(t, ok, "flag errors surface as ExitError")
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, outW.String(), "Usage:", "a bad flag should point the user at the usage text")
}
