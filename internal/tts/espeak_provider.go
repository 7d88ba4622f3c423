package tts

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/dooshek/scriptvoice/internal/logger"
	"github.com/dooshek/scriptvoice/internal/narration"
	"github.com/dooshek/scriptvoice/internal/types"
)

var espeakBinaries = []string{"espeak-ng", "espeak"}

// commandRunner runs name with args, feeding stdin, and returns combined output
type commandRunner func(ctx context.Context, name string, args []string, stdin io.Reader) ([]byte, error)

func execRunner(ctx context.Context, name string, args []string, stdin io.Reader) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	return cmd.CombinedOutput()
}

// EspeakProvider implements TTSProvider with the espeak-ng command line
// synthesizer in SSML mode
type EspeakProvider struct {
	config types.TTSEspeakConfig
	style  narration.Style
	run    commandRunner
}

// NewEspeakProvider creates a new espeak provider
func NewEspeakProvider(config types.TTSEspeakConfig, style narration.Style) *EspeakProvider {
	if config.Speed == 0 {
		config.Speed = 175
	}

	return &EspeakProvider{
		config: config,
		style:  style,
		run:    execRunner,
	}
}

// Synthesize renders the plan as SSML and lets espeak write the WAV file
func (p *EspeakProvider) Synthesize(ctx context.Context, plan *narration.Plan, voice string, wavPath string) error {
	bin, err := p.binary()
	if err != nil {
		return err
	}

	ssml := narration.RenderSSML(plan, p.style)
	logger.Debugf("Sending %d bytes of SSML to %s", len(ssml), bin)

	out, err := p.run(ctx, bin, p.synthArgs(voice, wavPath), strings.NewReader(ssml))
	if err != nil {
		return fmt.Errorf("%s failed: %w: %s", bin, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (p *EspeakProvider) synthArgs(voice, wavPath string) []string {
	return []string{
		"-m",
		"-v", voice,
		"-s", strconv.Itoa(p.config.Speed),
		"-w", wavPath,
		"--stdin",
	}
}

// GetAvailableVoices returns the languages, voice names and voice files espeak knows
func (p *EspeakProvider) GetAvailableVoices(ctx context.Context) ([]string, error) {
	bin, err := p.binary()
	if err != nil {
		return nil, err
	}

	out, err := p.run(ctx, bin, []string{"--voices"}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s --voices failed: %w", bin, err)
	}
	return parseEspeakVoices(out), nil
}

// GetProviderName returns provider name
func (p *EspeakProvider) GetProviderName() string {
	return "espeak"
}

func (p *EspeakProvider) binary() (string, error) {
	if p.config.Binary != "" {
		return p.config.Binary, nil
	}
	for _, bin := range espeakBinaries {
		if path, err := exec.LookPath(bin); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("speech not available: install espeak-ng or espeak")
}

// parseEspeakVoices reads the table printed by "espeak-ng --voices":
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  af              --/M      Afrikaans          gmw/af
func parseEspeakVoices(out []byte) []string {
	var voices []string
	seen := map[string]struct{}{}
	add := func(v string) {
		if _, ok := seen[v]; ok || v == "" {
			return
		}
		seen[v] = struct{}{}
		voices = append(voices, v)
	}

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 5 || fields[0] == "Pty" {
			continue
		}
		add(fields[1])
		add(fields[3])
		add(fields[4])
	}
	return voices
}
