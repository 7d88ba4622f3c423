package tts

import (
	"context"
	"errors"

	"github.com/dooshek/scriptvoice/internal/narration"
)

// ErrVoiceUnavailable is returned when the configured voice is not offered by the provider
var ErrVoiceUnavailable = errors.New("voice is not available")

// TTSProvider defines the interface for text-to-speech providers
type TTSProvider interface {
	// Synthesize renders the whole plan with the given voice into a WAV file at wavPath
	Synthesize(ctx context.Context, plan *narration.Plan, voice string, wavPath string) error

	// GetAvailableVoices returns list of available voices
	GetAvailableVoices(ctx context.Context) ([]string, error)

	// GetProviderName returns the name of the provider
	GetProviderName() string
}
