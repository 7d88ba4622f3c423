package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/dooshek/scriptvoice/internal/stats"
	"github.com/dooshek/scriptvoice/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFlagsOverridesConfig(t *testing.T) {
	cfg := &types.Config{
		TTS:     types.TTSConfig{Provider: "openai", Voice: "onyx"},
		Encoder: types.EncoderConfig{Quality: "medium"},
	}

	applyFlags(cfg, "espeak", "en-gb", "extreme", true)

	assert.Equal(t, "espeak", cfg.TTS.Provider)
	assert.Equal(t, "en-gb", cfg.TTS.Voice)
	assert.Equal(t, "extreme", cfg.Encoder.Quality)
	assert.True(t, cfg.Notify)
}

func TestApplyFlagsKeepsConfigWhenUnset(t *testing.T) {
	cfg := &types.Config{
		TTS:    types.TTSConfig{Provider: "openai", Voice: "onyx"},
		Notify: true,
	}

	applyFlags(cfg, "", "", "", false)

	assert.Equal(t, "openai", cfg.TTS.Provider)
	assert.Equal(t, "onyx", cfg.TTS.Voice)
	assert.True(t, cfg.Notify)
}

func TestStatsCommandPrintsAndResets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	sm := stats.NewStatsManager(path)
	require.NoError(t, sm.AddNarration(stats.Narration{Provider: "espeak", Seconds: 2, Segments: 3, OutputBytes: 500}))

	var out strings.Builder
	assert.Equal(t, 0, statsCommand(sm, false, &out))
	assert.Contains(t, out.String(), "espeak: 1 narrations, 3 segments")

	out.Reset()
	assert.Equal(t, 0, statsCommand(sm, true, &out))
	assert.Equal(t, "Statistics cleared.\n", out.String())

	// the cleared state is what a later run loads
	out.Reset()
	assert.Equal(t, 0, statsCommand(stats.NewStatsManager(path), false, &out))
	assert.Equal(t, "No narrations recorded yet.\n", out.String())
}
