package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/lixenwraith/spell-smash/config"
)

const (
	envConfig = "SPELL_SMASH_CONFIG"
	envAudio  = "SPELL_SMASH_AUDIO"
	envSpeech = "SPELL_SMASH_SPEECH"

	defaultConfigFile = "spell-smash.toml"
)

// loadEnv reads .env when present, existing variables win
func loadEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// resolveConfig picks the config file: flag, then environment, then the default file if it exists
// An empty result means built-in defaults
func resolveConfig(flagPath string, getenv func(string) string) string {
	if flagPath != "" {
		return flagPath
	}
	if p := getenv(envConfig); p != "" {
		return p
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	return ""
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// applyEnv overrides audio toggles from the environment
func applyEnv(cfg *config.Config, getenv func(string) string) error {
	if v := getenv(envAudio); v != "" {
		on, err := parseToggle(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envAudio, err)
		}
		cfg.Audio.Enabled = on
	}
	if v := getenv(envSpeech); v != "" {
		on, err := parseToggle(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envSpeech, err)
		}
		cfg.Audio.Speech = on
	}
	return nil
}

func parseToggle(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "on", "true", "yes":
		return true, nil
	case "0", "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid toggle %q", v)
}
