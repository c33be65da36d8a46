package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutput(t *testing.T) {
	r := New()

	out, err := r.Output(context.Background(), "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestRunFailure(t *testing.T) {
	r := New()

	err := r.Run(context.Background(), "sh", "-c", "exit 3")
	require.Error(t, err)
}

func TestRunInWorkingDirectory(t *testing.T) {
	r := New()
	dir := t.TempDir()

	out, err := r.Output(context.Background(), "pwd")
	require.NoError(t, err)
	assert.NotEqual(t, dir+"\n", out)

	require.NoError(t, r.RunIn(context.Background(), dir, "sh", "-c", "test \"$(pwd)\" = \""+dir+"\""))
}

func TestLookPath(t *testing.T) {
	r := New()

	path, err := r.LookPath("sh")
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	_, err = r.LookPath("definitely-not-a-binary-xyz")
	require.Error(t, err)
}
