package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "key")
	require.NoError(t, os.WriteFile(file, []byte(" from-file \n"), 0o600))
	t.Setenv("RESUME_MATCHER_TEST_KEY", " from-env ")

	got, err := Load(Source{Name: "api key", File: file, Value: "inline", Env: "RESUME_MATCHER_TEST_KEY"})
	require.NoError(t, err)
	assert.Equal(t, "from-file", got)

	got, err = Load(Source{Value: " inline ", Env: "RESUME_MATCHER_TEST_KEY"})
	require.NoError(t, err)
	assert.Equal(t, "inline", got)

	got, err = Load(Source{Env: "RESUME_MATCHER_TEST_KEY"})
	require.NoError(t, err)
	assert.Equal(t, "from-env", got)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o600))
	t.Setenv("RESUME_MATCHER_TEST_EMPTY", "")

	_, err := Load(Source{Name: "api key", File: filepath.Join(dir, "missing")})
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(Source{Name: "api key", File: empty, Value: "ignored"})
	require.ErrorContains(t, err, "is empty")

	_, err = Load(Source{Name: "api key", Env: "RESUME_MATCHER_TEST_EMPTY"})
	require.EqualError(t, err, "api key is not configured (set RESUME_MATCHER_TEST_EMPTY)")

	_, err = Load(Source{})
	require.EqualError(t, err, "secret is not configured")
}
