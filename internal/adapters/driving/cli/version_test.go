package cli

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	old := version
	SetVersion(v)
	t.Cleanup(func() { version = old })
}

func TestVersionCmd(t *testing.T) {
	withVersion(t, "1.4.0")
	cleanup := installServices(nil)
	defer cleanup()

	out, err := executeCommand("version")

	require.NoError(t, err)
	assert.Contains(t, out, "linkcard version 1.4.0")
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
}

func TestVersionCmd_Short(t *testing.T) {
	withVersion(t, "1.4.0")
	cleanup := installServices(nil)
	defer cleanup()

	out, err := executeCommand("version", "--short")

	require.NoError(t, err)
	assert.Equal(t, "1.4.0\n", out)
}

func TestVersionCmd_SkipsServiceBuilder(t *testing.T) {
	cleanup := installServices(nil)
	defer cleanup()
	built := false
	SetBuilder(func(Options) (*Services, error) {
		built = true
		return nil, errors.New("must not build")
	})

	_, err := executeCommand("version")

	require.NoError(t, err)
	assert.False(t, built)
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	cleanup := installServices(nil)
	defer cleanup()

	_, err := executeCommand("version", "extra")

	assert.Error(t, err)
}
