package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/DaSilvaRemi/tooncsv/internal/errors"
)

func TestLoadFromFile_Defaults(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "data/exports", cfg.Export.OutDir)
	assert.Equal(t, "data/archives/exports.zip", cfg.Export.ArchivePath)
	assert.Equal(t, "nested", cfg.Export.Layout)
	assert.False(t, cfg.Export.IncludeBOM)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile_YAMLOverridesDefaults(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "tooncsv.yml")
	content := `export:
  out_dir: /tmp/out
  layout: flat
  include_bom: true
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	cfg, err := LoadFromFile(configFile)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/out", cfg.Export.OutDir)
	assert.Equal(t, "flat", cfg.Export.Layout)
	assert.True(t, cfg.Export.IncludeBOM)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched fields keep their defaults
	assert.Equal(t, "data/archives/exports.zip", cfg.Export.ArchivePath)
}

func TestLoadFromFile_EnvOverridesFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "tooncsv.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("export:\n  layout: flat\n"), 0644))

	t.Setenv("TOONCSV_EXPORT_LAYOUT", "nested")
	t.Setenv("TOONCSV_EXPORT_OUT_DIR", "/env/out")

	cfg, err := LoadFromFile(configFile)
	require.NoError(t, err)

	assert.Equal(t, "nested", cfg.Export.Layout)
	assert.Equal(t, "/env/out", cfg.Export.OutDir)
}

func TestLoadFromFile_InvalidLayout(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "tooncsv.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("export:\n  layout: sideways\n"), 0644))

	_, err := LoadFromFile(configFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestLoadFromFile_MalformedYAML(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "tooncsv.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("export: [not a map"), 0644))

	_, err := LoadFromFile(configFile)
	require.Error(t, err)
}

func TestExportConfig_Flat(t *testing.T) {
	assert.True(t, ExportConfig{Layout: "flat"}.Flat())
	assert.False(t, ExportConfig{Layout: "nested"}.Flat())
}
