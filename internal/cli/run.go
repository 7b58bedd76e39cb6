package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/ksenko/lyrstage/internal/config"
	"github.com/ksenko/lyrstage/internal/domain/timeline"
	"github.com/ksenko/lyrstage/internal/export"
	"github.com/ksenko/lyrstage/internal/pipeline"
	"github.com/ksenko/lyrstage/internal/usecase"
)

// withSession loads config and the saved project, runs fn, then flushes the
// debounced save so edits land on disk before the process exits. Each CLI
// invocation is one short authoring session.
func withSession(cmd *cobra.Command, restore bool, fn func(ctx context.Context, sess *usecase.Session, cfg *config.Config) error) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logf := func(string, ...any) {}
	if verbose {
		logf = func(format string, args ...any) {
			fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
		}
	}

	pcfg := pipeline.Config{
		DBPath:           cfg.DBPath,
		CacheDir:         cfg.CacheDir,
		GlobalOffsetSec:  cfg.GlobalOffsetSec,
		PlaceDurationSec: cfg.PlaceDurationSec,
		AutosaveDelay:    time.Duration(cfg.AutosaveDelayMS) * time.Millisecond,

		FFmpegPath:  cfg.FFmpegPath,
		FFprobePath: cfg.FFprobePath,

		WhisperBin:   cfg.WhisperBin,
		WhisperModel: cfg.WhisperModel,

		OpenRouterAPIKey:       os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:        getenvDefault("OPENROUTER_MODEL", cfg.OpenRouter.Model),
		OpenRouterBaseURL:      getenvDefault("OPENROUTER_BASE_URL", cfg.OpenRouter.BaseURL),
		OpenRouterAllowedHosts: cfg.OpenRouter.AllowedHosts,

		Logf: logf,
	}
	if err := pcfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	sess, cleanup, err := pipeline.New(pcfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	if restore {
		data, ok, err := sess.Restore(ctx)
		if err != nil {
			return fmt.Errorf("restore project: %w", err)
		}
		if ok {
			sess.AcceptRestore(data)
		}
	}

	if err := fn(ctx, sess, cfg); err != nil {
		return err
	}
	return sess.Flush(ctx)
}

func runLines(cmd *cobra.Command, src string) error {
	raw, err := readAllFrom(cmd, src)
	if err != nil {
		return err
	}
	return withSession(cmd, true, func(_ context.Context, sess *usecase.Session, _ *config.Config) error {
		sess.Store().EnqueueFromText(raw)
		_, pending := sess.Store().Partition()
		fmt.Fprintf(cmd.OutOrStdout(), "queued %d pending lines\n", len(pending))
		return nil
	})
}

func runPlace(cmd *cobra.Command, _ []string) error {
	at, _ := cmd.Flags().GetFloat64("at")
	text, _ := cmd.Flags().GetString("text")

	opts := timeline.PlaceOptions{Text: text}
	if cmd.Flags().Changed("end") {
		end, _ := cmd.Flags().GetFloat64("end")
		if end <= at {
			return errors.New("--end must be after --at")
		}
		opts.End = &end
	}

	return withSession(cmd, true, func(_ context.Context, sess *usecase.Session, _ *config.Config) error {
		seg := sess.PlaceNext(at, opts)
		fmt.Fprintf(cmd.OutOrStdout(), "placed %q at [%.2f, %.2f] (id %s)\n",
			seg.Text, seg.StartTime, seg.EndTime, seg.ID)
		return nil
	})
}

func runCue(cmd *cobra.Command, arg string) error {
	now, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", arg, err)
	}
	return withSession(cmd, true, func(_ context.Context, sess *usecase.Session, _ *config.Config) error {
		cue := sess.CueAt(now)
		out := cmd.OutOrStdout()
		if len(cue.Segments) == 0 {
			fmt.Fprintf(out, "t=%.2f: no active lines\n", now)
			return nil
		}
		for _, seg := range cue.Segments {
			fmt.Fprintf(out, "t=%.2f: [%.2f-%.2f] %s (%s, %s)\n",
				now, seg.StartTime, seg.EndTime, seg.Text,
				seg.Style.Animation, seg.Style.Position)
		}
		if len(cue.Effects) > 0 {
			names := make([]string, 0, len(cue.Effects))
			for e := range cue.Effects {
				names = append(names, string(e))
			}
			sort.Strings(names)
			fmt.Fprintf(out, "effects: %s\n", strings.Join(names, ", "))
		}
		return nil
	})
}

func runTranscribe(cmd *cobra.Command, media string) error {
	var reference string
	if path, _ := cmd.Flags().GetString("lyrics"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read lyrics: %w", err)
		}
		reference = string(b)
	}
	return withSession(cmd, false, func(ctx context.Context, sess *usecase.Session, _ *config.Config) error {
		if _, err := sess.AttachMedia(ctx, media, "audio"); err != nil {
			return err
		}
		segs, err := sess.TranscribeMedia(ctx, media, reference)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "generated %d segments\n", len(segs))
		return nil
	})
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, true, func(ctx context.Context, sess *usecase.Session, _ *config.Config) error {
		n, err := sess.SuggestStyles(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "applied %d style suggestions\n", n)
		return nil
	})
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")
	toClipboard, _ := cmd.Flags().GetBool("copy")

	return withSession(cmd, true, func(_ context.Context, sess *usecase.Session, cfg *config.Config) error {
		rendered, err := export.Render(format, sess.Store().Segments(), cfg.GlobalOffsetSec)
		if err != nil {
			return err
		}
		if outPath != "" {
			if err := os.WriteFile(outPath, []byte(rendered), 0o644); err != nil {
				return err
			}
		} else if !toClipboard {
			fmt.Fprint(cmd.OutOrStdout(), rendered)
		}
		if toClipboard {
			if err := clipboard.WriteAll(rendered); err != nil {
				return fmt.Errorf("copy to clipboard: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "copied to clipboard")
		}
		return nil
	})
}

func runAttach(cmd *cobra.Command, media string) error {
	kind, _ := cmd.Flags().GetString("kind")
	if kind != "audio" && kind != "video" {
		return fmt.Errorf("invalid --kind %q (want audio or video)", kind)
	}
	return withSession(cmd, true, func(ctx context.Context, sess *usecase.Session, _ *config.Config) error {
		dur, err := sess.AttachMedia(ctx, media, kind)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "attached %s (%s, %.1fs)\n", media, kind, dur.Seconds())
		return nil
	})
}

func runClear(cmd *cobra.Command, _ []string) error {
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		return errors.New("refusing to clear without --yes")
	}
	return withSession(cmd, false, func(ctx context.Context, sess *usecase.Session, _ *config.Config) error {
		if err := sess.ClearProject(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "project cleared")
		return nil
	})
}

func readAllFrom(cmd *cobra.Command, src string) (string, error) {
	if src == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := os.ReadFile(src)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
