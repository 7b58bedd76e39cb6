// Package pipeline wires the concrete adapters into a usecase session.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/ksenko/lyrstage/internal/ports"
	"github.com/ksenko/lyrstage/internal/ports/adapters/ffmpeg"
	"github.com/ksenko/lyrstage/internal/ports/adapters/openrouter"
	"github.com/ksenko/lyrstage/internal/ports/adapters/sqlite"
	"github.com/ksenko/lyrstage/internal/ports/adapters/whispercpp"
	"github.com/ksenko/lyrstage/internal/usecase"
)

type Config struct {
	DBPath   string
	CacheDir string

	GlobalOffsetSec  float64
	PlaceDurationSec float64
	AutosaveDelay    time.Duration

	FFmpegPath  string
	FFprobePath string

	WhisperBin   string
	WhisperModel string

	OpenRouterAPIKey       string
	OpenRouterModel        string
	OpenRouterBaseURL      string
	OpenRouterAllowedHosts []string

	Logf func(format string, args ...any)
}

func (c Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("project db path is empty")
	}
	if c.PlaceDurationSec <= 0 {
		return fmt.Errorf("place duration must be > 0")
	}
	return openrouter.ValidateBaseURL(
		c.OpenRouterBaseURL,
		c.OpenRouterAllowedHosts,
	)
}

// New builds a session over the real adapters. The advisor is only wired
// when an API key is present; every flow that uses it has a local fallback
// or a clear error. The returned cleanup closes the project store.
func New(cfg Config) (*usecase.Session, func() error, error) {
	project, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}

	deps := usecase.Deps{
		Project: project,
		Media:   ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath),
		ASR:     whispercpp.New(cfg.WhisperBin, cfg.WhisperModel),
	}
	if cfg.OpenRouterAPIKey != "" {
		deps.Advisor = openrouter.New(cfg.OpenRouterAPIKey, cfg.OpenRouterModel, cfg.OpenRouterBaseURL)
	}

	sess := usecase.New(deps, usecase.Options{
		GlobalOffset:  cfg.GlobalOffsetSec,
		PlaceDuration: cfg.PlaceDurationSec,
		AutosaveDelay: cfg.AutosaveDelay,
		CacheDir:      cfg.CacheDir,
		Logf:          cfg.Logf,
	})
	return sess, project.Close, nil
}

// ensure adapters implement ports
var _ ports.ProjectStore = (*sqlite.Store)(nil)
var _ ports.MediaTool = (*ffmpeg.Adapter)(nil)
var _ ports.ASR = (*whispercpp.Adapter)(nil)
var _ ports.StyleAdvisor = (*openrouter.Adapter)(nil)
