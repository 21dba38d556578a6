package integration_tests

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adeptcoder014/devstrap/internal/cli"
)

// The config path can come from three places; the flags win over the
// positional argument.
func TestCLI_ConfigPathPrecedence(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "long flag beats positional",
			args:     []string{"-config", "from-flag.hcl", "positional.hcl"},
			expected: "from-flag.hcl",
		},
		{
			name:     "long flag beats shorthand",
			args:     []string{"-config", "from-flag.hcl", "-c", "from-short.hcl"},
			expected: "from-flag.hcl",
		},
		{
			name:     "shorthand beats positional",
			args:     []string{"-c", "from-short.hcl", "positional.hcl"},
			expected: "from-short.hcl",
		},
		{
			name:     "positional alone",
			args:     []string{"positional.hcl"},
			expected: "positional.hcl",
		},
		{
			name:     "nothing given defers to the loader",
			args:     []string{},
			expected: "",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			appConfig, shouldExit, err := cli.Parse(tc.args, &bytes.Buffer{})

			require.NoError(t, err)
			require.False(t, shouldExit)
			require.Equal(t, tc.expected, appConfig.ConfigPath)
		})
	}
}

// DEVSTRAP_* environment variables override the corresponding flags, so a
// containerized deployment can reconfigure the launcher without editing its
// invocation.
func TestCLI_EnvironmentOverridesFlags(t *testing.T) {
	t.Setenv("DEVSTRAP_LOG_FORMAT", "json")
	t.Setenv("DEVSTRAP_STATUS_PORT", "9900")

	appConfig, shouldExit, err := cli.Parse([]string{"-log-format", "text", "-status-port", "8800"}, &bytes.Buffer{})

	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, "json", appConfig.LogFormat)
	require.Equal(t, 9900, appConfig.StatusPort)
}

func TestCLI_EnvironmentOverrideStillValidated(t *testing.T) {
	t.Setenv("DEVSTRAP_LOG_LEVEL", "shouty")

	_, _, err := cli.Parse(nil, &bytes.Buffer{})

	require.Error(t, err)
	exitErr, ok := err.(*cli.ExitError)
	require.True(t, ok)
	require.Equal(t, 2, exitErr.Code)
}
