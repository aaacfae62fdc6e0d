package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesProvidedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tabular.toml")
	content := `
data_dir = "/srv/tables"
log_level = "debug"
`
	require.NoError(t, writeFile(path, content))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/tables", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "commands.tag", cfg.TagsFile, "fields absent from the file keep their default")
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tabular.toml")
	require.NoError(t, writeFile(path, "this is not = [valid toml"))

	_, err := Load(path)
	assert.Error(t, err)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
