package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is everything lyrstage reads from lyrstage.yaml. Secrets (the
// OpenRouter API key) stay in the environment, never in the file.
type Config struct {
	// DBPath is the sqlite project file.
	DBPath string `yaml:"db_path"`

	// CacheDir holds extracted audio and transcripts.
	CacheDir string `yaml:"cache_dir"`

	// GlobalOffsetSec shifts every segment uniformly to correct audio/
	// subtitle sync drift. May be negative.
	GlobalOffsetSec float64 `yaml:"global_offset_sec"`

	// PlaceDurationSec is the initial length of a tapped-in segment.
	PlaceDurationSec float64 `yaml:"place_duration_sec"`

	// AutosaveDelayMS is the debounce between the last edit and the save.
	AutosaveDelayMS int `yaml:"autosave_delay_ms"`

	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`

	WhisperBin   string `yaml:"whisper_bin"`
	WhisperModel string `yaml:"whisper_model"`

	OpenRouter struct {
		Model        string   `yaml:"model"`
		BaseURL      string   `yaml:"base_url"`
		AllowedHosts []string `yaml:"allowed_hosts"`
	} `yaml:"openrouter"`
}

func Default() *Config {
	c := &Config{}
	c.DBPath = "lyrstage.db"
	c.CacheDir = ".cache"
	c.GlobalOffsetSec = 0
	c.PlaceDurationSec = 3
	c.AutosaveDelayMS = 1000
	c.FFmpegPath = "ffmpeg"
	c.FFprobePath = "ffprobe"
	c.WhisperBin = ".cache/bin/whisper.cpp"
	c.WhisperModel = ".cache/models/ggml-base.bin"
	c.OpenRouter.Model = ""
	c.OpenRouter.BaseURL = "https://openrouter.ai"
	return c
}

// Load reads path over the defaults. A missing file is not an error: the
// defaults make a usable zero-setup project in the working directory.
func Load(path string) (*Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("db_path is empty")
	}
	if c.PlaceDurationSec <= 0 {
		return errors.New("place_duration_sec must be > 0")
	}
	if c.AutosaveDelayMS < 0 {
		return errors.New("autosave_delay_ms must be >= 0")
	}
	return nil
}
