package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetTTSConfigDefaults(t *testing.T) {
	var c Config
	tts := c.GetTTSConfig()

	assert.Equal(t, "espeak", tts.Provider)
	assert.Equal(t, "en-us", tts.Voice)
	assert.Equal(t, 175, tts.Espeak.Speed)
	assert.Equal(t, "tts-1-hd", tts.OpenAI.Model)
	assert.Equal(t, 1.0, tts.OpenAI.Speed)
}

func TestGetTTSConfigVoiceDefaultFollowsProvider(t *testing.T) {
	c := Config{TTS: TTSConfig{Provider: "openai"}}
	assert.Equal(t, "onyx", c.GetTTSConfig().Voice)

	c.TTS.Voice = "nova"
	assert.Equal(t, "nova", c.GetTTSConfig().Voice)
}

func TestGetNarrationAndEncoderDefaults(t *testing.T) {
	var c Config
	n := c.GetNarrationConfig()
	assert.Equal(t, 400*time.Millisecond, n.Pause)
	assert.Equal(t, 0.5, n.BackgroundGain)
	assert.Equal(t, "soft", n.BackgroundVolume)
	assert.Equal(t, "standard", c.GetEncoderConfig().Quality)

	c.Encoder.Quality = "extreme"
	assert.Equal(t, "extreme", c.GetEncoderConfig().Quality)
}
