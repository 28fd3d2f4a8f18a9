package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenAbsent(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Dir)
	assert.Empty(t, cfg.ProjectPath())
	assert.Equal(t, 24*time.Hour, cfg.MaxAge())
}

func TestLoadParsesSettings(t *testing.T) {
	dir := t.TempDir()
	body := `project: Demo.xcodeproj/project.pbxproj
diff_source: https://ci.example.com/latest.diff
cache_max_age: 2h
ignore:
  - "Generated/"
  - "*.snapshot"
strict: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Demo.xcodeproj", "project.pbxproj"), cfg.ProjectPath())
	assert.Equal(t, "https://ci.example.com/latest.diff", cfg.DiffSource)
	assert.Equal(t, 2*time.Hour, cfg.MaxAge())
	assert.Equal(t, []string{"Generated/", "*.snapshot"}, cfg.Ignore)
	assert.True(t, cfg.Strict)
}

func TestLoadWalksToParentDirectory(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "App", "Sources")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("project: App.pbxproj\n"), 0o644))

	cfg, err := Load(nested)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Dir)
	assert.Equal(t, filepath.Join(root, "App.pbxproj"), cfg.ProjectPath())
}

func TestLoadRejectsBadDuration(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("cache_max_age: soon\n"), 0o644))

	_, err := Load(dir)
	assert.ErrorContains(t, err, "cache_max_age")
}

func TestResolveCacheDirRelative(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("cache_dir: .cache/diffs\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	got, err := cfg.ResolveCacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".cache", "diffs"), got)
}
