package tts

import (
	"context"
	"fmt"
	"io"

	"github.com/dooshek/scriptvoice/internal/logger"
	"github.com/dooshek/scriptvoice/internal/narration"
	"github.com/dooshek/scriptvoice/internal/types"
	"github.com/dustin/go-humanize"
	"github.com/sashabaranov/go-openai"
)

// OpenAITTSProvider implements TTSProvider for OpenAI TTS API
type OpenAITTSProvider struct {
	client   *openai.Client
	config   OpenAIConfig
	renderer *segmentRenderer
}

// OpenAIConfig holds OpenAI TTS configuration
type OpenAIConfig struct {
	Model string  `yaml:"model"` // "tts-1" or "tts-1-hd"
	Speed float64 `yaml:"speed"` // 0.25-4.0, default 1.0
}

// NewOpenAITTSProvider creates a new OpenAI TTS provider
func NewOpenAITTSProvider(apiKey string, config OpenAIConfig, narrationConfig types.NarrationConfig) *OpenAITTSProvider {
	return newOpenAITTSProvider(openai.NewClient(apiKey), config, narrationConfig)
}

func newOpenAITTSProvider(client *openai.Client, config OpenAIConfig, narrationConfig types.NarrationConfig) *OpenAITTSProvider {
	if config.Model == "" {
		config.Model = "tts-1-hd" // Better quality
	}
	if config.Speed == 0 {
		config.Speed = 1.0
	}

	p := &OpenAITTSProvider{
		client: client,
		config: config,
	}
	p.renderer = newSegmentRenderer(p, narrationConfig)
	return p
}

// Synthesize requests every segment separately and stitches the PCM together
func (p *OpenAITTSProvider) Synthesize(ctx context.Context, plan *narration.Plan, voice string, wavPath string) error {
	return p.renderer.writeWAV(ctx, plan, voice, wavPath)
}

func (p *OpenAITTSProvider) synthesizeText(ctx context.Context, text string, voice string) ([]byte, error) {
	logger.Debugf("Generating TTS for text (length: %d chars) with voice: %s", len(text), voice)

	response, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.Model),
		Input:          text,
		Voice:          openai.SpeechVoice(voice),
		Speed:          p.config.Speed,
		ResponseFormat: openai.SpeechResponseFormat("pcm"),
	})
	if err != nil {
		logger.Error("OpenAI TTS API error", err)
		return nil, fmt.Errorf("TTS request failed: %w", err)
	}
	defer response.Close()

	audioData, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	logger.Debugf("Generated %s of PCM audio", humanize.Bytes(uint64(len(audioData))))
	return audioData, nil
}

// GetAvailableVoices returns OpenAI TTS voices
func (p *OpenAITTSProvider) GetAvailableVoices(ctx context.Context) ([]string, error) {
	return openAIVoices(), nil
}

// GetProviderName returns provider name
func (p *OpenAITTSProvider) GetProviderName() string {
	return "OpenAI TTS"
}

func openAIVoices() []string {
	return []string{
		"alloy",   // Neutral, balanced
		"echo",    // Male, clear
		"fable",   // British accent
		"onyx",    // Deep male
		"nova",    // Young female
		"shimmer", // Warm female
	}
}
