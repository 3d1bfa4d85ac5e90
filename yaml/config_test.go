package yaml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docset"
	"github.com/fwojciec/docset/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("parses all fields", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
name: vhdl93
destination: /tmp/out
icon: icon.png
index_page: start.html
version: "1.2"
keywords:
  - vhdl
  - vhdl93
platform_family: hdl
jobs: 4
verify: true
`)

		cfg, err := yaml.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, &docset.Config{
			Name:           "vhdl93",
			Destination:    "/tmp/out",
			Icon:           "icon.png",
			IndexPage:      "start.html",
			Version:        "1.2",
			Keywords:       []string{"vhdl", "vhdl93"},
			PlatformFamily: "hdl",
			Jobs:           4,
			Verify:         true,
		}, cfg)
	})

	t.Run("leaves absent fields zero", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.LoadConfig(writeConfig(t, "name: only\n"))

		require.NoError(t, err)
		assert.Equal(t, "only", cfg.Name)
		assert.Zero(t, cfg.Jobs)
		assert.Empty(t, cfg.Keywords)
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("returns EINVALID for malformed YAML", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadConfig(writeConfig(t, "name: [unterminated\n"))

		require.Error(t, err)
		assert.Equal(t, docset.EINVALID, docset.ErrorCode(err))
	})

	t.Run("returns EINVALID for wrong field type", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadConfig(writeConfig(t, "jobs: many\n"))

		require.Error(t, err)
		assert.Equal(t, docset.EINVALID, docset.ErrorCode(err))
	})

	t.Run("returns EINVALID for negative jobs", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadConfig(writeConfig(t, "jobs: -2\n"))

		require.Error(t, err)
		assert.Equal(t, docset.EINVALID, docset.ErrorCode(err))
	})
}
