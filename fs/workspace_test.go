package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/fwojciec/docset"
	"github.com/fwojciec/docset/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspace_Create(t *testing.T) {
	t.Parallel()

	t.Run("creates package directories and lock", func(t *testing.T) {
		t.Parallel()

		l := docset.NewLayout(filepath.Join(t.TempDir(), "out"), "Vhdl93")
		ws := fs.NewWorkspace()

		require.NoError(t, ws.Create(l))
		defer ws.Release(l)

		info, err := os.Stat(l.DocumentsDir())
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		_, err = os.Stat(l.LockPath())
		assert.NoError(t, err)
	})

	t.Run("returns ErrDocsetExists when package exists", func(t *testing.T) {
		t.Parallel()

		l := docset.NewLayout(t.TempDir(), "Vhdl93")
		require.NoError(t, os.MkdirAll(l.Root, 0o755))
		ws := fs.NewWorkspace()

		err := ws.Create(l)
		defer ws.Release(l)

		require.Error(t, err)
		assert.True(t, errors.Is(err, docset.ErrDocsetExists))
		assert.Equal(t, docset.ECONFLICT, docset.ErrorCode(err))
	})

	t.Run("rejects a second build while locked", func(t *testing.T) {
		t.Parallel()

		l := docset.NewLayout(t.TempDir(), "Vhdl93")
		first := fs.NewWorkspace()
		require.NoError(t, first.Create(l))
		defer first.Release(l)

		second := fs.NewWorkspace()
		err := second.Create(docset.NewLayout(l.Dir(), "Vhdl93"))

		require.Error(t, err)
		assert.Equal(t, docset.ECONFLICT, docset.ErrorCode(err))
	})
}

func TestWorkspace_Create_PartialFailure(t *testing.T) {
	t.Parallel()
	if runtime.GOOS != "linux" {
		t.Skip("relies on the linux PATH_MAX limit")
	}

	// Place the package root so that its Contents/Resources directories fit
	// within PATH_MAX but Contents/Resources/Documents does not.
	const rootLen = 4070
	dir := t.TempDir()
	for len(dir)+1+200 < rootLen-50 {
		dir = filepath.Join(dir, strings.Repeat("d", 200))
	}
	name := strings.Repeat("n", rootLen-len(dir)-1-len(".docset"))
	l := docset.NewLayout(dir, name)
	require.Len(t, l.Root, rootLen)

	ws := fs.NewWorkspace()
	err := ws.Create(l)
	require.NoError(t, ws.Release(l))

	require.Error(t, err)
	assert.Equal(t, docset.ECOPY, docset.ErrorCode(err))
	_, statErr := os.Lstat(l.Root)
	assert.True(t, os.IsNotExist(statErr))

	// A retry must not report the broken package as an existing docset.
	retry := fs.NewWorkspace()
	err = retry.Create(l)
	require.NoError(t, retry.Release(l))
	assert.Equal(t, docset.ECOPY, docset.ErrorCode(err))
	assert.False(t, errors.Is(err, docset.ErrDocsetExists))
}

func TestWorkspace_Abort(t *testing.T) {
	t.Parallel()

	l := docset.NewLayout(t.TempDir(), "Vhdl93")
	ws := fs.NewWorkspace()
	require.NoError(t, ws.Create(l))
	require.NoError(t, os.WriteFile(filepath.Join(l.DocumentsDir(), "index.html"), []byte("x"), 0o644))

	require.NoError(t, ws.Abort(l))
	require.NoError(t, ws.Release(l))

	_, err := os.Stat(l.Root)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(l.LockPath())
	assert.True(t, os.IsNotExist(err))
}

func TestWorkspace_Release(t *testing.T) {
	t.Parallel()

	t.Run("is safe without a lock", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, fs.NewWorkspace().Release(docset.NewLayout(t.TempDir(), "x")))
	})

	t.Run("allows a new build after release", func(t *testing.T) {
		t.Parallel()

		l := docset.NewLayout(t.TempDir(), "Vhdl93")
		first := fs.NewWorkspace()
		require.NoError(t, first.Create(l))
		require.NoError(t, first.Abort(l))
		require.NoError(t, first.Release(l))

		second := fs.NewWorkspace()
		require.NoError(t, second.Create(l))
		assert.NoError(t, second.Release(l))
	})
}
