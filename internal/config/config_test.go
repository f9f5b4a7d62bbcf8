package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"riftreplay/internal/timeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("RIFTREPLAY_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 0.5, cfg.Policy.RespawnBase)
	assert.Equal(t, 0.05, cfg.Policy.RespawnScaling)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "riftreplay.yaml")
	yml := `
server:
  port: "9000"
  playback_tick: 100ms
analysis:
  source: mongo
  mongo_uri: mongodb://localhost:27017
policy:
  respawn_base: 0.75
  ward_lifetimes:
    SIGHT_WARD: 3
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv("PORT", "9100")
	t.Setenv("ANALYSIS_SOURCE", "postgres")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port, "env wins over file")
	assert.Equal(t, 100*time.Millisecond, cfg.Server.PlaybackTick)
	assert.Equal(t, "postgres", cfg.Analysis.Source)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Analysis.MongoURI)
	assert.Equal(t, 0.75, cfg.Policy.RespawnBase)
	assert.Equal(t, 0.05, cfg.Policy.RespawnScaling, "unset policy keys keep defaults")
	assert.Equal(t, 3.0, cfg.Policy.WardLifetime(timeline.WardSight))
	assert.Equal(t, 1.5, cfg.Policy.WardLifetime(timeline.WardYellowTrinket))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("policy:\n  respawn_base: -1\n"), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, timeline.ErrInvalidPolicy)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RIFTREPLAY_TEST_VAR=loaded\n"), 0o644))
	chdir(t, dir)
	t.Setenv("RIFTREPLAY_TEST_VAR", "")
	os.Unsetenv("RIFTREPLAY_TEST_VAR")

	path, ok := LoadEnvFile()
	require.True(t, ok)
	assert.Equal(t, ".env", path)
	assert.Equal(t, "loaded", os.Getenv("RIFTREPLAY_TEST_VAR"))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
