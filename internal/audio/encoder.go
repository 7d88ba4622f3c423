package audio

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"time"

	"github.com/dooshek/scriptvoice/internal/logger"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// DefaultPreset matches LAME's "standard" preset.
const DefaultPreset = "standard"

var ErrFFmpegNotInstalled = fmt.Errorf("FFmpeg is not installed. Please install FFmpeg to encode MP3 output")

// presets mirror the LAME named presets
var presets = map[string]ffmpeg.KwArgs{
	"medium":   {"q:a": "4"},
	"standard": {"q:a": "2"},
	"extreme":  {"q:a": "0"},
	"insane":   {"b:a": "320k"},
}

func CheckFFmpegInstalled() error {
	cmd := exec.Command("ffmpeg", "-version")
	if err := cmd.Run(); err != nil {
		return ErrFFmpegNotInstalled
	}
	return nil
}

func init() {
	ffmpeg.LogCompiledCommand = false
}

// PresetNames returns the supported quality presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Encoder transcodes raw WAV audio to MP3 at a fixed quality preset.
type Encoder struct {
	preset string
}

// NewEncoder returns an encoder for the named preset.
func NewEncoder(preset string) (*Encoder, error) {
	if preset == "" {
		preset = DefaultPreset
	}
	if _, ok := presets[preset]; !ok {
		return nil, fmt.Errorf("unknown quality preset %q (supported: %v)", preset, PresetNames())
	}
	return &Encoder{preset: preset}, nil
}

func (e *Encoder) Preset() string {
	return e.preset
}

// Encode writes mp3Path from the WAV file at wavPath.
func (e *Encoder) Encode(wavPath, mp3Path string) error {
	logger.Infof("🎚️ Encoding MP3 (%s preset)...", e.preset)
	start := time.Now()

	if err := e.stream(wavPath, mp3Path).Run(); err != nil {
		return fmt.Errorf("ffmpeg failed to encode %s: %w", wavPath, err)
	}

	if fileInfo, err := os.Stat(mp3Path); err == nil {
		logger.Debugf("Conversion from WAV to MP3 took: %d ms, file size is: %.2f kB",
			time.Since(start).Milliseconds(), float64(fileInfo.Size())/1024)
	}
	return nil
}

func (e *Encoder) stream(wavPath, mp3Path string) *ffmpeg.Stream {
	kwargs := ffmpeg.KwArgs{
		"loglevel": "error",
		"acodec":   "libmp3lame",
	}
	for k, v := range presets[e.preset] {
		kwargs[k] = v
	}

	return ffmpeg.Input(wavPath).
		Output(mp3Path, kwargs).
		OverWriteOutput()
}
