package tts

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	gcache "github.com/Code-Hex/go-generics-cache"
	"github.com/dooshek/scriptvoice/internal/audio"
	"github.com/dooshek/scriptvoice/internal/logger"
	"github.com/dooshek/scriptvoice/internal/narration"
	"github.com/dooshek/scriptvoice/internal/types"
	"github.com/dooshek/scriptvoice/pkg/wav"
)

// OpenAI speech endpoints return 24 kHz 16-bit mono PCM
const (
	pcmSampleRate = 24000
	pcmChannels   = 1
)

// segmentSynthesizer turns one piece of text into raw PCM
type segmentSynthesizer interface {
	synthesizeText(ctx context.Context, text string, voice string) ([]byte, error)
}

// segmentRenderer builds a narration from per-segment PCM: silence stands in
// for pauses and background lines are attenuated
type segmentRenderer struct {
	synth  segmentSynthesizer
	config types.NarrationConfig
	cache  *gcache.Cache[string, []byte]
}

func newSegmentRenderer(synth segmentSynthesizer, config types.NarrationConfig) *segmentRenderer {
	if config.Pause == 0 {
		config.Pause = 400 * time.Millisecond
	}
	if config.BackgroundGain == 0 {
		config.BackgroundGain = 0.5
	}

	return &segmentRenderer{
		synth:  synth,
		config: config,
		cache:  gcache.New[string, []byte](),
	}
}

// writeWAV renders plan and stores it as a WAV file at wavPath
func (r *segmentRenderer) writeWAV(ctx context.Context, plan *narration.Plan, voice string, wavPath string) error {
	pcm, err := r.render(ctx, plan, voice)
	if err != nil {
		return err
	}
	return wav.WriteFile(wavPath, pcm, pcmChannels, pcmSampleRate)
}

func (r *segmentRenderer) render(ctx context.Context, plan *narration.Plan, voice string) ([]byte, error) {
	pause := silence(r.config.Pause)
	var out []byte

	for i, seg := range plan.Segments {
		for n := 0; n < seg.PausesBefore(); n++ {
			out = append(out, pause...)
		}

		if seg.Text != "" {
			pcm, err := r.segmentAudio(ctx, seg.Text, voice)
			if err != nil {
				return nil, fmt.Errorf("segment %d (line %d): %w", i+1, seg.LineNo, err)
			}
			if seg.Kind == narration.BackgroundLine {
				pcm = applyGain(pcm, r.config.BackgroundGain)
			}
			out = append(out, pcm...)
		}

		for n := 0; n < seg.PausesAfter(); n++ {
			out = append(out, pause...)
		}
	}
	return out, nil
}

func (r *segmentRenderer) segmentAudio(ctx context.Context, text, voice string) ([]byte, error) {
	key := voice + "\x00" + text
	if cached, ok := r.cache.Get(key); ok {
		logger.Debugf("Reusing audio for %q", text)
		return cached, nil
	}

	pcm, err := r.synth.synthesizeText(ctx, text, voice)
	if err != nil {
		return nil, err
	}
	if len(pcm)%2 != 0 {
		pcm = pcm[:len(pcm)-1]
	}
	if audio.IsSilent(pcm) {
		logger.Warnf("Provider returned no audible audio for %q", text)
	}

	r.cache.Set(key, pcm, gcache.WithExpiration(time.Hour))
	return pcm, nil
}

// silence returns d worth of zero samples
func silence(d time.Duration) []byte {
	samples := int64(d) * pcmSampleRate * pcmChannels / int64(time.Second)
	return make([]byte, samples*2)
}

// applyGain returns a copy of 16-bit little-endian pcm scaled by gain
func applyGain(pcm []byte, gain float64) []byte {
	out := make([]byte, len(pcm))
	for i := 0; i+1 < len(pcm); i += 2 {
		s := float64(int16(binary.LittleEndian.Uint16(pcm[i:]))) * gain
		s = math.Max(math.MinInt16, math.Min(math.MaxInt16, math.Round(s)))
		binary.LittleEndian.PutUint16(out[i:], uint16(int16(s)))
	}
	return out
}
