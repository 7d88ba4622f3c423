package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/dooshek/scriptvoice/internal/fileops"
	"github.com/dooshek/scriptvoice/internal/logger"
	"github.com/dooshek/scriptvoice/internal/types"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configFilename = "scriptvoice.yaml"
)

// LoadConfig reads the user config file, then applies .env and environment
// overrides. A missing config file yields an empty config.
func LoadConfig() (*types.Config, error) {
	fileOps, err := fileops.NewDefaultFileOps()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file operations: %w", err)
	}

	// .env in the working directory is optional
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded environment from .env")
	}

	return LoadConfigFrom(fileOps)
}

// LoadConfigFrom reads the config file through fileOps and applies
// environment overrides.
func LoadConfigFrom(fileOps fileops.FileOps) (*types.Config, error) {
	var config types.Config

	data, err := fileOps.LoadConfig(configFilename)
	switch {
	case errors.Is(err, fileops.ErrConfigNotFound):
		logger.Debugf("No config file in %s, using defaults", fileOps.GetConfigDir())
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := env.Parse(&config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return &config, nil
}

func SaveConfig(config *types.Config) error {
	fileOps, err := fileops.NewDefaultFileOps()
	if err != nil {
		return fmt.Errorf("failed to initialize file operations: %w", err)
	}
	return SaveConfigTo(fileOps, config)
}

// SaveConfigTo merges config into the existing file and writes it back.
func SaveConfigTo(fileOps fileops.FileOps, config *types.Config) error {
	if err := fileOps.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	// Read the file directly so environment overrides are not persisted
	if data, err := fileOps.LoadConfig(configFilename); err == nil {
		var existingConfig types.Config
		if err := yaml.Unmarshal(data, &existingConfig); err != nil {
			logger.Warnf("Failed to parse existing config, overwriting: %v", err)
		} else {
			mergeConfigs(&existingConfig, config)
			config = &existingConfig
		}
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := fileOps.SaveConfig(configFilename, data); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// mergeConfigs merges the sourceConfig into targetConfig, preserving existing values in targetConfig
// that are not explicitly set in sourceConfig
func mergeConfigs(targetConfig, sourceConfig *types.Config) {
	if sourceConfig.OpenAIKey != "" {
		targetConfig.OpenAIKey = sourceConfig.OpenAIKey
	}

	if sourceConfig.TTS.Provider != "" {
		targetConfig.TTS.Provider = sourceConfig.TTS.Provider
	}
	if sourceConfig.TTS.Voice != "" {
		targetConfig.TTS.Voice = sourceConfig.TTS.Voice
	}
	if sourceConfig.TTS.Espeak.Binary != "" {
		targetConfig.TTS.Espeak.Binary = sourceConfig.TTS.Espeak.Binary
	}
	if sourceConfig.TTS.Espeak.Speed != 0 {
		targetConfig.TTS.Espeak.Speed = sourceConfig.TTS.Espeak.Speed
	}
	if sourceConfig.TTS.OpenAI.Model != "" {
		targetConfig.TTS.OpenAI.Model = sourceConfig.TTS.OpenAI.Model
	}
	if sourceConfig.TTS.OpenAI.Speed != 0 {
		targetConfig.TTS.OpenAI.Speed = sourceConfig.TTS.OpenAI.Speed
	}
	if sourceConfig.TTS.Realtime.Model != "" {
		targetConfig.TTS.Realtime.Model = sourceConfig.TTS.Realtime.Model
	}

	if sourceConfig.Narration.Pause != 0 {
		targetConfig.Narration.Pause = sourceConfig.Narration.Pause
	}
	if sourceConfig.Narration.BackgroundGain != 0 {
		targetConfig.Narration.BackgroundGain = sourceConfig.Narration.BackgroundGain
	}
	if sourceConfig.Narration.BackgroundVolume != "" {
		targetConfig.Narration.BackgroundVolume = sourceConfig.Narration.BackgroundVolume
	}

	if sourceConfig.Encoder.Quality != "" {
		targetConfig.Encoder.Quality = sourceConfig.Encoder.Quality
	}

	// Notify is always taken from the source, false is a valid choice
	targetConfig.Notify = sourceConfig.Notify
}
