package tts

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	openairt "github.com/WqyJh/go-openai-realtime"
	"github.com/dooshek/scriptvoice/internal/logger"
	"github.com/dooshek/scriptvoice/internal/narration"
	"github.com/dooshek/scriptvoice/internal/types"
)

const realtimeInstructions = "You are a text-to-speech system. Read the provided text aloud exactly as written, " +
	"in the language it is written in. Do not add any commentary, greeting or explanation."

// RealtimeTTSProvider implements TTSProvider using OpenAI Realtime API
type RealtimeTTSProvider struct {
	apiKey   string
	config   RealtimeConfig
	renderer *segmentRenderer
}

// RealtimeConfig holds Realtime API TTS configuration
type RealtimeConfig struct {
	Model string `yaml:"model"` // "gpt-4o-realtime-preview" or "gpt-4o-mini-realtime-preview"
}

// NewRealtimeTTSProvider creates a new Realtime TTS provider
func NewRealtimeTTSProvider(apiKey string, config RealtimeConfig, narrationConfig types.NarrationConfig) *RealtimeTTSProvider {
	if config.Model == "" {
		config.Model = "gpt-4o-realtime-preview"
	}

	p := &RealtimeTTSProvider{
		apiKey: apiKey,
		config: config,
	}
	p.renderer = newSegmentRenderer(p, narrationConfig)
	return p
}

// Synthesize requests every segment separately and stitches the PCM together
func (p *RealtimeTTSProvider) Synthesize(ctx context.Context, plan *narration.Plan, voice string, wavPath string) error {
	return p.renderer.writeWAV(ctx, plan, voice, wavPath)
}

// synthesizeText converts text to raw 24 kHz PCM16 over a realtime session
func (p *RealtimeTTSProvider) synthesizeText(ctx context.Context, text string, voice string) ([]byte, error) {
	logger.Debugf("Generating Realtime TTS for text (length: %d chars) with voice: %s", len(text), voice)

	client := openairt.NewClient(p.apiKey)

	conn, err := client.Connect(ctx, openairt.WithModel(p.config.Model))
	if err != nil {
		logger.Error("Failed to connect to Realtime API", err)
		return nil, fmt.Errorf("realtime API connection failed: %w", err)
	}
	defer conn.Close()

	err = conn.SendMessage(ctx, &openairt.SessionUpdateEvent{
		Session: openairt.ClientSession{
			Modalities:        []openairt.Modality{openairt.ModalityText, openairt.ModalityAudio},
			Voice:             openairt.Voice(voice),
			OutputAudioFormat: openairt.AudioFormatPcm16,
			Instructions:      realtimeInstructions,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("session update failed: %w", err)
	}

	err = conn.SendMessage(ctx, &openairt.ConversationItemCreateEvent{
		Item: openairt.MessageItem{
			Type: openairt.MessageItemTypeMessage,
			Role: openairt.MessageRoleUser,
			Content: []openairt.MessageContentPart{
				{
					Type: openairt.MessageContentTypeInputText,
					Text: text,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("conversation item creation failed: %w", err)
	}

	// Request response with audio and text (API requires both)
	err = conn.SendMessage(ctx, &openairt.ResponseCreateEvent{
		Response: openairt.ResponseCreateParams{
			Modalities:        []openairt.Modality{openairt.ModalityAudio, openairt.ModalityText},
			Voice:             openairt.Voice(voice),
			OutputAudioFormat: openairt.AudioFormatPcm16,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("response creation failed: %w", err)
	}

	var audioData []byte

	timeout := time.NewTimer(30 * time.Second)
	defer timeout.Stop()

	for {
		select {
		case <-timeout.C:
			return nil, fmt.Errorf("timeout waiting for audio response")
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			msgCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			event, err := conn.ReadMessage(msgCtx)
			cancel()

			if err != nil {
				return nil, fmt.Errorf("message read failed: %w", err)
			}

			switch event.ServerEventType() {
			case openairt.ServerEventTypeResponseAudioDelta:
				deltaEvent := event.(openairt.ResponseAudioDeltaEvent)

				audioChunk, err := base64.StdEncoding.DecodeString(deltaEvent.Delta)
				if err != nil {
					logger.Error("Failed to decode audio delta", err)
					continue
				}
				audioData = append(audioData, audioChunk...)

			case openairt.ServerEventTypeResponseDone:
				if len(audioData) == 0 {
					return nil, fmt.Errorf("no audio data received")
				}
				return audioData, nil

			case openairt.ServerEventTypeError:
				errorEvent := event.(openairt.ErrorEvent)
				return nil, fmt.Errorf("realtime API error: %s: %s", errorEvent.Error.Type, errorEvent.Error.Message)

			default:
				logger.Debugf("Received event: %s", event.ServerEventType())
			}
		}
	}
}

// GetAvailableVoices returns Realtime API voices
func (p *RealtimeTTSProvider) GetAvailableVoices(ctx context.Context) ([]string, error) {
	return append(openAIVoices(), "ash", "ballad", "coral", "sage", "verse"), nil
}

// GetProviderName returns provider name
func (p *RealtimeTTSProvider) GetProviderName() string {
	return "OpenAI Realtime"
}
