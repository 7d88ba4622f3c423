package types

import "time"

type TTSProvider string

const (
	ProviderEspeak   TTSProvider = "espeak"
	ProviderOpenAI   TTSProvider = "openai"
	ProviderRealtime TTSProvider = "realtime"
)

// TTSConfig holds configuration for Text-to-Speech
type TTSConfig struct {
	Provider string            `yaml:"provider" env:"SCRIPTVOICE_PROVIDER"` // "espeak", "openai", "realtime"
	Voice    string            `yaml:"voice" env:"SCRIPTVOICE_VOICE"`       // voice name understood by the provider
	Espeak   TTSEspeakConfig   `yaml:"espeak"`
	OpenAI   TTSOpenAIConfig   `yaml:"openai"`
	Realtime TTSRealtimeConfig `yaml:"realtime"`
}

// TTSEspeakConfig holds espeak-ng specific configuration
type TTSEspeakConfig struct {
	Binary string `yaml:"binary" env:"SCRIPTVOICE_ESPEAK_BINARY"` // empty means espeak-ng, then espeak
	Speed  int    `yaml:"speed" env:"SCRIPTVOICE_ESPEAK_SPEED"`   // words per minute, default 175
}

// TTSOpenAIConfig holds OpenAI TTS specific configuration
type TTSOpenAIConfig struct {
	Model string  `yaml:"model" env:"SCRIPTVOICE_OPENAI_MODEL"` // "tts-1" or "tts-1-hd"
	Speed float64 `yaml:"speed" env:"SCRIPTVOICE_OPENAI_SPEED"` // 0.25-4.0, default 1.0
}

// TTSRealtimeConfig holds OpenAI Realtime API TTS specific configuration
type TTSRealtimeConfig struct {
	Model string `yaml:"model" env:"SCRIPTVOICE_REALTIME_MODEL"` // "gpt-4o-realtime-preview" or "gpt-4o-mini-realtime-preview"
}

// NarrationConfig controls how segments are styled
type NarrationConfig struct {
	Pause            time.Duration `yaml:"pause" env:"SCRIPTVOICE_PAUSE"`                         // length of one pause for PCM providers
	BackgroundGain   float64       `yaml:"background_gain" env:"SCRIPTVOICE_BACKGROUND_GAIN"`     // amplitude factor for other characters' lines
	BackgroundVolume string        `yaml:"background_volume" env:"SCRIPTVOICE_BACKGROUND_VOLUME"` // SSML prosody volume for other characters' lines
}

// EncoderConfig holds MP3 encoder configuration
type EncoderConfig struct {
	Quality string `yaml:"quality" env:"SCRIPTVOICE_QUALITY"` // "medium", "standard", "extreme", "insane"
}

type Config struct {
	OpenAIKey string          `yaml:"openai_api_key" env:"OPENAI_API_KEY"`
	TTS       TTSConfig       `yaml:"tts"`
	Narration NarrationConfig `yaml:"narration"`
	Encoder   EncoderConfig   `yaml:"encoder"`
	Notify    bool            `yaml:"notify" env:"SCRIPTVOICE_NOTIFY"`
}

// GetTTSConfig returns TTS configuration with defaults
func (c *Config) GetTTSConfig() TTSConfig {
	config := c.TTS

	if config.Provider == "" {
		config.Provider = string(ProviderEspeak)
	}

	if config.Voice == "" {
		switch TTSProvider(config.Provider) {
		case ProviderOpenAI, ProviderRealtime:
			config.Voice = "onyx"
		default:
			config.Voice = "en-us"
		}
	}

	if config.Espeak.Speed == 0 {
		config.Espeak.Speed = 175
	}

	if config.OpenAI.Model == "" {
		config.OpenAI.Model = "tts-1-hd"
	}
	if config.OpenAI.Speed == 0 {
		config.OpenAI.Speed = 1.0
	}

	if config.Realtime.Model == "" {
		config.Realtime.Model = "gpt-4o-realtime-preview"
	}

	return config
}

// GetNarrationConfig returns narration styling with defaults
func (c *Config) GetNarrationConfig() NarrationConfig {
	config := c.Narration

	if config.Pause == 0 {
		config.Pause = 400 * time.Millisecond
	}
	if config.BackgroundGain == 0 {
		config.BackgroundGain = 0.5
	}
	if config.BackgroundVolume == "" {
		config.BackgroundVolume = "soft"
	}

	return config
}

// GetEncoderConfig returns encoder configuration with defaults
func (c *Config) GetEncoderConfig() EncoderConfig {
	config := c.Encoder

	if config.Quality == "" {
		config.Quality = "standard"
	}

	return config
}
