package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/docset/cmd/docset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDocs creates a documentation tree named dirName with an index page.
func writeDocs(t *testing.T, dirName string) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), dirName)
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "index.html"),
		[]byte(`<a href="page1.html">Page 1</a><a href="page2.html" class="Guide">Page 2</a>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "page1.html"), []byte("one"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "page2.html"), []byte("two"), 0o644))
	return src
}

func readMeta(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var meta map[string]any
	require.NoError(t, json.Unmarshal(data, &meta))
	return meta
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "docset")
	assert.Contains(t, stdout.String(), "--index-page")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_Build(t *testing.T) {
	t.Parallel()

	t.Run("builds docset named after source", func(t *testing.T) {
		t.Parallel()

		src := writeDocs(t, "vhdl93")
		dest := t.TempDir()
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(),
			[]string{src + string(filepath.Separator), "-d", dest, "-v", "2.1", "-k", "vhdl", "-k", "hdl"},
			&stdout, &stderr)

		require.NoError(t, err)
		root := filepath.Join(dest, "vhdl93.docset")
		assert.Contains(t, stdout.String(), "Generated docset "+root+" (3 files, 2 entries, 0 skipped, 0 failed)")
		assert.NotContains(t, stdout.String(), "**Warning**")

		meta := readMeta(t, filepath.Join(root, "meta.json"))
		assert.Equal(t, "vhdl93", meta["name"])
		assert.Equal(t, "2.1", meta["revision"])
		assert.Equal(t, []any{"vhdl", "hdl"}, meta["extra"].(map[string]any)["keywords"])

		plist, err := os.ReadFile(filepath.Join(root, "Contents", "info.plist"))
		require.NoError(t, err)
		assert.Contains(t, string(plist), "<string>Vhdl93</string>")
	})

	t.Run("uses explicit name and index page", func(t *testing.T) {
		t.Parallel()

		dest := t.TempDir()
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(),
			[]string{writeDocs(t, "docs"), "-n", "mylib", "-d", dest, "-p", "start.html", "-v", "1"},
			&stdout, &stderr)

		require.NoError(t, err)
		meta := readMeta(t, filepath.Join(dest, "mylib.docset", "meta.json"))
		assert.Equal(t, "start.html", meta["extra"].(map[string]any)["indexFilePath"])
	})

	t.Run("warns and uses default version", func(t *testing.T) {
		t.Parallel()

		dest := t.TempDir()
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(),
			[]string{writeDocs(t, "docs"), "-d", dest, "--version", "latest"},
			&stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "**Warning**: docset version must be a non-negative number")
		meta := readMeta(t, filepath.Join(dest, "docs.docset", "meta.json"))
		assert.Equal(t, "0.0", meta["revision"])
	})

	t.Run("warns and exits cleanly when docset exists", func(t *testing.T) {
		t.Parallel()

		dest := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dest, "docs.docset"), 0o755))
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(),
			[]string{writeDocs(t, "docs"), "-d", dest, "-v", "1"},
			&stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "**Warning**: the docset folder already exists")
	})

	t.Run("fails for missing source", func(t *testing.T) {
		t.Parallel()

		dest := t.TempDir()
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(),
			[]string{filepath.Join(t.TempDir(), "missing"), "-d", dest},
			&stdout, &stderr)

		require.Error(t, err)
		_, statErr := os.Stat(filepath.Join(dest, "missing.docset"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("fails and cleans up for invalid icon", func(t *testing.T) {
		t.Parallel()

		dest := t.TempDir()
		icon := filepath.Join(t.TempDir(), "icon.jpg")
		require.NoError(t, os.WriteFile(icon, []byte("jpg"), 0o644))
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(),
			[]string{writeDocs(t, "docs"), "-d", dest, "-i", icon, "-v", "1"},
			&stdout, &stderr)

		require.Error(t, err)
		_, statErr := os.Stat(filepath.Join(dest, "docs.docset"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("reads settings from config file", func(t *testing.T) {
		t.Parallel()

		dest := t.TempDir()
		cfgPath := filepath.Join(t.TempDir(), "docset.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("name: fromfile\nversion: \"3.0\"\njobs: 2\nverify: true\nkeywords: [a]\n"), 0o644))
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(),
			[]string{writeDocs(t, "docs"), "-d", dest, "-c", cfgPath, "-k", "b"},
			&stdout, &stderr)

		require.NoError(t, err)
		meta := readMeta(t, filepath.Join(dest, "fromfile.docset", "meta.json"))
		assert.Equal(t, "3.0", meta["revision"])
		assert.Equal(t, []any{"b"}, meta["extra"].(map[string]any)["keywords"])
	})

	t.Run("rejects negative jobs", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(),
			[]string{writeDocs(t, "docs"), "-d", t.TempDir(), "--jobs=-1"},
			&stdout, &stderr)

		require.Error(t, err)
	})
}
