package pidfile_test

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/infrastructure/pidfile"
)

func TestPIDFile_AcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "homestead.pid")
	p := pidfile.New(path)

	require.NoError(t, p.Acquire())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), strings.TrimSpace(string(data)))

	// Re-acquiring from the same process is fine
	require.NoError(t, p.Acquire())

	require.NoError(t, p.Release())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestPIDFile_ReplacesGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "homestead.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid"), 0644))

	require.NoError(t, pidfile.New(path).Acquire())
}

func TestPIDFile_RejectsLiveOwner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "homestead.pid")
	// PID 1 always exists on unix
	require.NoError(t, os.WriteFile(path, []byte("1\n"), 0644))

	err := pidfile.New(path).Acquire()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running (PID 1)")
}
