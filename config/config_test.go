package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easeltools/easel/errors"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "easel.yml", `
version: "1.0"
host:
  url: http://127.0.0.1:8188
model_roots:
  - /models
browser:
  view: tree
  sort: lastused-desc
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, "http://127.0.0.1:8188", cfg.Host.URL)
	assert.Equal(t, []string{"/models"}, cfg.ModelRoots)
	require.NotNil(t, cfg.Browser)
	assert.Equal(t, "tree", cfg.Browser.View)
	assert.Equal(t, path, cfg.Path)
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "easel.toml", `
version = "1.0"

[host]
url = "http://127.0.0.1:8188"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, "http://127.0.0.1:8188", cfg.Host.URL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "easel.yml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigNotFound, errors.GetCode(err))
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "easel.yml", "version: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetCode(err))
}

func TestFindConfigFileWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "easel.yml", `version: "1.0"`)

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	found, ok := FindConfigFile(nested)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "easel.yml"), found)
}

func TestFindConfigFileNotFound(t *testing.T) {
	_, ok := FindConfigFile(t.TempDir())
	assert.False(t, ok)
}

func TestUnmarshalExtension(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "easel.yml", `
version: "1.0"
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	var ext struct {
		Level string `yaml:"level"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &ext))
	assert.Equal(t, "debug", ext.Level)
}

func TestUnmarshalExtensionUnknownIsNoop(t *testing.T) {
	cfg := Default()

	var ext struct {
		Level string `yaml:"level"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &ext))
	assert.Empty(t, ext.Level)
}

func TestValidatorAcceptsDefault(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)
	assert.NoError(t, v.Validate(Default()))
}

func TestValidatorRejectsBadView(t *testing.T) {
	cfg := Default()
	cfg.Browser = &BrowserConfig{View: "grid"}

	v, err := NewValidator()
	require.NoError(t, err)

	err = v.Validate(cfg)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigValidation, errors.GetCode(err))
}

func TestValidatorRejectsBadIcons(t *testing.T) {
	cfg := Default()
	cfg.TUI = &TUIConfig{Icons: "emoji"}

	v, err := NewValidator()
	require.NoError(t, err)

	err = v.Validate(cfg)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigValidation, errors.GetCode(err))
}

func TestGenerateSchemaMarksVersionRequired(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version"`)
	assert.Contains(t, string(data), `"required"`)
}
