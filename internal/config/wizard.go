package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dooshek/scriptvoice/internal/audio"
	"github.com/dooshek/scriptvoice/internal/fileops"
	"github.com/dooshek/scriptvoice/internal/logger"
	"github.com/dooshek/scriptvoice/internal/types"
	"github.com/fatih/color"
)

var providers = []string{
	string(types.ProviderEspeak),
	string(types.ProviderOpenAI),
	string(types.ProviderRealtime),
}

func RunWizard() error {
	fileOps, err := fileops.NewDefaultFileOps()
	if err != nil {
		return fmt.Errorf("failed to initialize file operations: %w", err)
	}

	config, err := runWizard(os.Stdin, os.Stdout)
	if err != nil {
		logger.Error("Wizard failed", err)
		return err
	}

	if err := SaveConfigTo(fileOps, config); err != nil {
		return err
	}

	color.New(color.FgGreen).Printf("\n✅ Configuration saved to %s\n", fileOps.GetConfigDir())
	return nil
}

// runWizard asks for the narration settings and returns them as a config.
func runWizard(in io.Reader, out io.Writer) (*types.Config, error) {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	bold.Fprintln(out, "\n🎭 Welcome to ScriptVoice Configuration Wizard!")
	fmt.Fprintln(out, "\nPress Enter to keep the default shown in brackets.")

	reader := bufio.NewReader(in)
	var config types.Config

	cyan.Fprintln(out, "\nSpeech synthesizer")
	provider, err := choose(reader, out, "Provider", providers, string(types.ProviderEspeak))
	if err != nil {
		return nil, err
	}
	config.TTS.Provider = provider

	defaultVoice := config.GetTTSConfig().Voice
	voice, err := ask(reader, out, "Voice", defaultVoice)
	if err != nil {
		return nil, err
	}
	config.TTS.Voice = voice

	if provider != string(types.ProviderEspeak) {
		key, err := ask(reader, out, "OpenAI API key (leave empty to use OPENAI_API_KEY)", "")
		if err != nil {
			return nil, err
		}
		config.OpenAIKey = key
	}

	cyan.Fprintln(out, "\nMP3 encoding")
	quality, err := choose(reader, out, "Quality preset", audio.PresetNames(), audio.DefaultPreset)
	if err != nil {
		return nil, err
	}
	config.Encoder.Quality = quality

	notify, err := ask(reader, out, "Desktop notification when done? [y/N]", "n")
	if err != nil {
		return nil, err
	}
	config.Notify = strings.HasPrefix(strings.ToLower(notify), "y")

	yellow.Fprintf(out, "\nProvider: %s, voice: %s, quality: %s\n", provider, voice, quality)
	return &config, nil
}

func ask(reader *bufio.Reader, out io.Writer, prompt, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(out, "%s [%s]: ", prompt, def)
	} else {
		fmt.Fprintf(out, "%s: ", prompt)
	}

	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	// Remove any control characters
	response = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, response)
	response = strings.TrimSpace(response)

	if response == "" {
		return def, nil
	}
	return response, nil
}

func choose(reader *bufio.Reader, out io.Writer, prompt string, options []string, def string) (string, error) {
	for {
		answer, err := ask(reader, out, fmt.Sprintf("%s (%s)", prompt, strings.Join(options, "|")), def)
		if err != nil {
			return "", err
		}
		answer = strings.ToLower(answer)
		for _, o := range options {
			if o == answer {
				return o, nil
			}
		}
		color.New(color.FgRed).Fprintf(out, "Unknown choice %q\n", answer)
	}
}
