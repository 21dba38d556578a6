package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adeptcoder014/devstrap/internal/testutil"
)

// A fresh environment with no manifest to install from is a hard error, not
// a silent empty install.
func TestMissingManifest_FailsBootstrap(t *testing.T) {
	result := testutil.RunBootstrapTest(t, map[string]string{
		"main.py": "app = None\n",
	})

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "open manifest")
	require.Empty(t, result.Toolchain.Installs())
}

// A pre-existing environment does not need the manifest unless a reinstall
// is forced.
func TestMissingManifest_ToleratedForExistingEnvironment(t *testing.T) {
	result := testutil.RunBootstrapTest(t, map[string]string{
		".venv/pyvenv.cfg": "home = /usr/bin\n",
	})

	require.NoError(t, result.Err)
	require.False(t, result.Ensure.Created)
}

func TestMissingManifest_FailsForcedReinstall(t *testing.T) {
	result := testutil.RunBootstrapTest(t, map[string]string{
		".venv/pyvenv.cfg": "home = /usr/bin\n",
	}, testutil.WithReinstall())

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "open manifest")
}
