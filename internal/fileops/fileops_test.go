package fileops

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeOutputPath(t *testing.T) {
	cases := map[string]string{
		"out":            "out.mp3",
		"out.mp3":        "out.mp3",
		"out.MP3":        "out.MP3",
		"out.wav":        "out.mp3",
		"dir/take.WAV":   "dir/take.mp3",
		"episode.1":      "episode.1.mp3",
		"scene.wav.back": "scene.wav.back.mp3",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeOutputPath(in), in)
	}
}

func TestRemoveExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.mp3")

	require.NoError(t, RemoveExisting(path), "missing file is fine")

	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
	require.NoError(t, RemoveExisting(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	sub := filepath.Join(dir, "sub.mp3")
	require.NoError(t, os.Mkdir(sub, 0o755))
	assert.Error(t, RemoveExisting(sub))
}

func TestIsRegularFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	assert.True(t, IsRegularFile(path))
	assert.False(t, IsRegularFile(dir))
	assert.False(t, IsRegularFile(filepath.Join(dir, "nope.txt")))
}

func TestCreateIntermediate(t *testing.T) {
	dir := t.TempDir()
	path, cleanup, err := CreateIntermediate(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".wav"))
	assert.True(t, IsRegularFile(path))

	cleanup()
	cleanup()
	assert.False(t, IsRegularFile(path))
}

func TestConfigRoundTrip(t *testing.T) {
	ops := NewFileOpsAt(filepath.Join(t.TempDir(), "cfg"))
	require.NoError(t, ops.EnsureDirectories())

	_, err := ops.LoadConfig("scriptvoice.yaml")
	assert.True(t, errors.Is(err, ErrConfigNotFound))

	require.NoError(t, ops.SaveConfig("scriptvoice.yaml", []byte("notify: true\n")))
	data, err := ops.LoadConfig("scriptvoice.yaml")
	require.NoError(t, err)
	assert.Equal(t, "notify: true\n", string(data))
	assert.Equal(t, filepath.Join(ops.GetConfigDir(), "stats.json"), ops.GetStatsPath())
}
