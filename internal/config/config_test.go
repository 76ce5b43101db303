package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaults and rejected values.
func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := &Config{DataDir: "/tmp/fliptime"}
	require.NoError(t, Validate(cfg))
	require.Equal(t, filepath.Join("/tmp/fliptime", DefaultLogFilename), cfg.LogFile)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
	require.Equal(t, time.Second, cfg.TickInterval)
	require.Equal(t, 500*time.Millisecond, cfg.FlipDuration)
	require.Equal(t, DefaultTimezones(), cfg.Timezones)
	require.Equal(t, filepath.Join("/tmp/fliptime", "assets"), cfg.Assets.CacheDir)
	require.Len(t, cfg.Assets.URLs, 10)

	require.Error(t, Validate(&Config{LogLevel: "loud"}))
	require.ErrorIs(t, Validate(&Config{TickInterval: -time.Second}), errNegativeDuration)
	require.ErrorIs(t, Validate(&Config{Timezones: []Zone{{Name: "x"}}}), errZoneWithoutID)
	require.Error(t, Validate(&Config{Assets: Assets{BaseURL: "not a url"}}))
	require.ErrorIs(t, Validate(nil), errConfigIsNotSet)
}

// TestSaveLoadRoundtrip ensures config is persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "fliptime.yaml")

	cfg := &Config{
		DataDir:      dir,
		LogLevel:     "debug",
		FlipDuration: 600 * time.Millisecond,
		Timezones:    []Zone{{ID: "Asia/Tokyo"}},
		Assets:       Assets{BaseURL: "https://clock.example.com/"},
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.DataDir, loaded.DataDir)
	require.Equal(t, "debug", loaded.LogLevel)
	require.Equal(t, 600*time.Millisecond, loaded.FlipDuration)
	require.Equal(t, []Zone{{Name: "Asia/Tokyo", ID: "Asia/Tokyo"}}, loaded.Timezones)
	require.Equal(t, "https://clock.example.com/", loaded.Assets.BaseURL)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoad_MissingExplicitPath fails when a named config file does not exist.
func TestLoad_MissingExplicitPath(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestLoad_EnvOverrides applies FLIPTIME_* variables over the file.
func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fliptime.yaml")

	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\ndata_dir: "+dir+"\n"), DefaultFilePermissions))

	t.Setenv("FLIPTIME_LOG_LEVEL", "debug")
	t.Setenv("FLIPTIME_DISABLE_WAKE_LOCK", "true")
	t.Setenv("FLIPTIME_ASSETS_DIR", filepath.Join(dir, "cache"))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.True(t, cfg.DisableWakeLock)
	require.Equal(t, dir, cfg.DataDir)
	require.Equal(t, filepath.Join(dir, "cache"), cfg.Assets.CacheDir)
}

// TestPickerZones appends an unlisted zone.
func TestPickerZones(t *testing.T) {
	t.Parallel()

	cfg := Default()

	require.Len(t, cfg.PickerZones("Asia/Taipei"), 5)

	zones := cfg.PickerZones("Australia/Sydney")
	require.Len(t, zones, 6)
	require.Equal(t, Zone{Name: "Australia/Sydney", ID: "Australia/Sydney"}, zones[5])
	require.Len(t, cfg.Timezones, 5)
	require.Equal(t, 1, cfg.ZoneIndex("Asia/Tokyo"))
}

// TestSetDataDir moves derived paths but keeps explicit ones.
func TestSetDataDir(t *testing.T) {
	t.Parallel()

	cfg := &Config{DataDir: "/var/lib/old"}
	require.NoError(t, Validate(cfg))

	cfg.SetDataDir("/srv/new")
	require.Equal(t, "/srv/new", cfg.DataDir)
	require.Equal(t, filepath.Join("/srv/new", DefaultLogFilename), cfg.LogFile)
	require.Equal(t, filepath.Join("/srv/new", "assets"), cfg.Assets.CacheDir)

	cfg.LogFile = "/tmp/clock.log"
	cfg.SetDataDir("/srv/other")
	require.Equal(t, "/tmp/clock.log", cfg.LogFile)
	require.Equal(t, filepath.Join("/srv/other", "assets"), cfg.Assets.CacheDir)
}
