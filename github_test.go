package benchreport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteGitHubOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")

	require.NoError(t, WriteGitHubOutput(path, "line one\nline two\n", true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "comment<<EOF\nline one\nline two\n\nEOF\nhas_regression=true\n", string(data))
}

func TestWriteGitHubOutputAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	require.NoError(t, os.WriteFile(path, []byte("earlier=1\n"), 0o644))

	require.NoError(t, WriteGitHubOutput(path, "report", false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "earlier=1\ncomment<<EOF\nreport\nEOF\nhas_regression=false\n", string(data))
}

func TestWriteGitHubOutputBadPath(t *testing.T) {
	err := WriteGitHubOutput(filepath.Join(t.TempDir(), "no", "such", "dir", "output"), "x", false)
	assert.Error(t, err)
}
