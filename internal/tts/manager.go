package tts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dooshek/scriptvoice/internal/logger"
	"github.com/dooshek/scriptvoice/internal/narration"
	"github.com/dooshek/scriptvoice/internal/types"
)

// Manager manages TTS providers and handles text-to-speech operations
type Manager struct {
	provider TTSProvider
	config   types.TTSConfig
}

// NewManager creates a new TTS Manager with the specified configuration and API key
func NewManager(config types.TTSConfig, narrationConfig types.NarrationConfig, apiKey string) (*Manager, error) {
	provider, err := createProvider(config, narrationConfig, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS provider: %w", err)
	}

	logger.Debugf("Initialized TTS Manager with provider: %s", provider.GetProviderName())

	return NewManagerWithProvider(provider, config), nil
}

// NewManagerWithProvider wraps an already constructed provider
func NewManagerWithProvider(provider TTSProvider, config types.TTSConfig) *Manager {
	return &Manager{
		provider: provider,
		config:   config,
	}
}

// Voice returns the configured voice
func (m *Manager) Voice() string {
	return m.config.Voice
}

// Synthesize verifies the configured voice and renders the plan into wavPath
func (m *Manager) Synthesize(ctx context.Context, plan *narration.Plan, wavPath string) error {
	voice := m.config.Voice

	if err := m.checkVoice(ctx, voice); err != nil {
		return err
	}

	logger.Infof("🗣️ Synthesizing %d segments with %s (voice: %s)...",
		len(plan.Segments), m.provider.GetProviderName(), voice)
	start := time.Now()

	if err := m.provider.Synthesize(ctx, plan, voice, wavPath); err != nil {
		return fmt.Errorf("%s synthesis failed: %w", m.provider.GetProviderName(), err)
	}

	logger.Debugf("Synthesis took: %d ms", time.Since(start).Milliseconds())
	return nil
}

// GetAvailableVoices returns list of available voices
func (m *Manager) GetAvailableVoices(ctx context.Context) ([]string, error) {
	return m.provider.GetAvailableVoices(ctx)
}

// GetProviderName returns the name of the current provider
func (m *Manager) GetProviderName() string {
	return m.provider.GetProviderName()
}

// checkVoice fails with ErrVoiceUnavailable unless voice, ignoring an
// espeak "+variant" suffix, is offered by the provider
func (m *Manager) checkVoice(ctx context.Context, voice string) error {
	voices, err := m.provider.GetAvailableVoices(ctx)
	if err != nil {
		return fmt.Errorf("failed to list voices: %w", err)
	}

	base, _, _ := strings.Cut(voice, "+")
	for _, v := range voices {
		if strings.EqualFold(v, base) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (provider: %s)", ErrVoiceUnavailable, voice, m.provider.GetProviderName())
}

// createProvider creates appropriate TTS provider based on configuration and API key
func createProvider(config types.TTSConfig, narrationConfig types.NarrationConfig, apiKey string) (TTSProvider, error) {
	switch types.TTSProvider(config.Provider) {
	case types.ProviderEspeak:
		style := narration.DefaultStyle
		style.BackgroundVolume = narrationConfig.BackgroundVolume
		return NewEspeakProvider(config.Espeak, style), nil

	case types.ProviderOpenAI:
		if apiKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required for OpenAI TTS provider - set OPENAI_API_KEY or run the wizard")
		}

		return NewOpenAITTSProvider(apiKey, OpenAIConfig{
			Model: config.OpenAI.Model,
			Speed: config.OpenAI.Speed,
		}, narrationConfig), nil

	case types.ProviderRealtime:
		if apiKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required for Realtime TTS provider - set OPENAI_API_KEY or run the wizard")
		}

		return NewRealtimeTTSProvider(apiKey, RealtimeConfig{
			Model: config.Realtime.Model,
		}, narrationConfig), nil

	default:
		return nil, fmt.Errorf("unsupported TTS provider: %s (supported: espeak, openai, realtime)", config.Provider)
	}
}
