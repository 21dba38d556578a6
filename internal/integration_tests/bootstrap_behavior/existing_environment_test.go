package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adeptcoder014/devstrap/internal/testutil"
)

const existingMetadata = `{
  "id": "6d1f7a9e-3f3c-4a62-9a1d-000000000001",
  "created_at": "2026-08-01T09:00:00Z",
  "toolchain": "fake"
}`

// An existing environment is reused: no creation, no reinstall.
func TestExistingEnvironment_SkipsSetup(t *testing.T) {
	files := map[string]string{
		"requirements.txt":    "fastapi\n",
		".venv/devstrap.json": existingMetadata,
	}

	result := testutil.RunBootstrapTest(t, files)

	require.NoError(t, result.Err)
	require.False(t, result.Ensure.Created)
	require.Empty(t, result.Toolchain.Creates())
	require.Empty(t, result.Toolchain.Installs())
	require.Contains(t, result.LogOutput, "reusing")
}

// The -reinstall path forces a dependency sync on an existing environment.
func TestExistingEnvironment_ForcedReinstall(t *testing.T) {
	files := map[string]string{
		"requirements.txt":    "fastapi\n",
		".venv/devstrap.json": existingMetadata,
	}

	result := testutil.RunBootstrapTest(t, files, testutil.WithReinstall())

	require.NoError(t, result.Err)
	require.False(t, result.Ensure.Created)
	require.Empty(t, result.Toolchain.Creates())
	require.Len(t, result.Toolchain.Installs(), 1)
}

// An environment left behind by the old shell scripts has no metadata file;
// it is still reused without reinstalling.
func TestExistingEnvironment_WithoutMetadata(t *testing.T) {
	files := map[string]string{
		"requirements.txt": "fastapi\n",
		".venv/pyvenv.cfg": "home = /usr/bin\n",
	}

	result := testutil.RunBootstrapTest(t, files)

	require.NoError(t, result.Err)
	require.False(t, result.Ensure.Created)
	require.Nil(t, result.Ensure.Meta)
	require.Empty(t, result.Toolchain.Installs())
}
