// Package pipeline runs one narration: script -> plan -> raw WAV -> MP3.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dooshek/scriptvoice/internal/fileops"
	"github.com/dooshek/scriptvoice/internal/logger"
	"github.com/dooshek/scriptvoice/internal/narration"
	"github.com/dooshek/scriptvoice/pkg/wav"
)

var (
	ErrUsage             = errors.New("usage error")
	ErrInputNotFound     = errors.New("input file not found")
	ErrOutputNotWritable = errors.New("output file not writable")
	ErrSynthesis         = errors.New("speech synthesis failed")
	ErrEncoding          = errors.New("audio encoding failed")
)

// Synthesizer renders a plan into a raw WAV file.
type Synthesizer interface {
	Synthesize(ctx context.Context, plan *narration.Plan, wavPath string) error
}

// Encoder compresses a WAV file into the final output format.
type Encoder interface {
	Encode(wavPath, outPath string) error
}

// Request describes one narration run.
type Request struct {
	InputPath  string
	OutputPath string
	Character  string
}

// Result describes a finished narration.
type Result struct {
	OutputPath  string
	Stats       narration.Stats
	Segments    int
	OutputBytes int64

	// AudioSeconds is the narration length, zero when the intermediate
	// header could not be read.
	AudioSeconds float64
	Elapsed      time.Duration
}

// Pipeline wires the synthesis and encoding adapters.
type Pipeline struct {
	synth   Synthesizer
	encoder Encoder
}

func New(synth Synthesizer, encoder Encoder) *Pipeline {
	return &Pipeline{synth: synth, encoder: encoder}
}

// Validate checks the request and resolves the final output path without
// touching any file.
func Validate(req Request) (string, error) {
	if strings.TrimSpace(req.Character) == "" {
		return "", fmt.Errorf("%w: character name must not be empty", ErrUsage)
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return "", fmt.Errorf("%w: output path must not be empty", ErrUsage)
	}
	if !fileops.IsRegularFile(req.InputPath) {
		return "", fmt.Errorf("%w: could not find input file '%s'", ErrInputNotFound, absPath(req.InputPath))
	}
	return fileops.NormalizeOutputPath(req.OutputPath), nil
}

// BuildPlan validates the input and builds its narration plan.
func BuildPlan(req Request) (*narration.Plan, error) {
	if _, err := Validate(req); err != nil {
		return nil, err
	}
	return narration.BuildFile(req.InputPath, req.Character)
}

// Run narrates req.InputPath into an MP3 at the normalized output path.
// The intermediate WAV never outlives the call.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	outPath, err := Validate(req)
	if err != nil {
		return nil, err
	}

	if err := fileops.RemoveExisting(outPath); err != nil {
		return nil, fmt.Errorf("%w: could not overwrite existing output file '%s': %v",
			ErrOutputNotWritable, absPath(outPath), err)
	}

	plan, err := narration.BuildFile(req.InputPath, req.Character)
	if err != nil {
		return nil, err
	}
	st := plan.Stats()
	logger.Infof("📜 Script parsed: %s", st)
	if st.ActiveLines == 0 {
		logger.Warnf("No dialogue found for character %q", plan.Target)
	}

	wavPath, cleanup, err := fileops.CreateIntermediate(filepath.Dir(outPath))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutputNotWritable, err)
	}
	defer cleanup()

	if err := p.synth.Synthesize(ctx, plan, wavPath); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesis, err)
	}

	audioSeconds := wavDuration(wavPath)

	if err := p.encoder.Encode(wavPath, outPath); err != nil {
		os.Remove(outPath)
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	result := &Result{
		OutputPath:   outPath,
		Stats:        st,
		Segments:     len(plan.Segments),
		AudioSeconds: audioSeconds,
		Elapsed:      time.Since(start),
	}
	if info, err := os.Stat(outPath); err == nil {
		result.OutputBytes = info.Size()
	}
	return result, nil
}

// ExitCode maps an error returned by Run to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		return 2
	default:
		return 1
	}
}

func wavDuration(path string) float64 {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	h, err := wav.ReadHeader(f)
	if err != nil {
		logger.Debugf("Could not read intermediate header: %v", err)
		return 0
	}
	return h.Duration()
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
