package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "lyrstage",
		Short:        "Author a timed, styled lyric timeline against a song",
		SilenceUsage: true,
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.PersistentFlags().String("config", "lyrstage.yaml", "Path to config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log progress to stderr")

	root.AddCommand(
		newLinesCmd(),
		newPlaceCmd(),
		newCueCmd(),
		newTranscribeCmd(),
		newSuggestCmd(),
		newExportCmd(),
		newAttachCmd(),
		newClearCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lines <textfile|->",
		Short: "Queue reference lyrics as pending lines (replaces the current queue)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLines(cmd, args[0])
		},
	}
	return cmd
}

func newPlaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place the next pending line (or explicit text) on the timeline",
		Args:  cobra.NoArgs,
		RunE:  runPlace,
	}
	cmd.Flags().Float64("at", 0, "Start time in seconds (required: no live clock in the CLI)")
	cmd.Flags().Float64("end", 0, "End time in seconds")
	cmd.Flags().String("text", "", "Place this text instead of the queue head")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func newCueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cue <seconds>",
		Short: "Show active lines and the background effect union at a playback time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCue(cmd, args[0])
		},
	}
}

func newTranscribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcribe <media>",
		Short: "Build the timeline from the media's audio (replaces all segments)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranscribe(cmd, args[0])
		},
	}
	cmd.Flags().String("lyrics", "", "Reference lyrics file guiding line wording")
	return cmd
}

func newSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Apply AI style suggestions to every placed line",
		Args:  cobra.NoArgs,
		RunE:  runSuggest,
	}
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the timeline as lrc, ass or json",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	cmd.Flags().String("format", "lrc", "Output format: lrc, ass or json")
	cmd.Flags().String("out", "", "Write to file instead of stdout")
	cmd.Flags().Bool("copy", false, "Also copy the output to the clipboard")
	return cmd
}

func newAttachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attach <media>",
		Short: "Attach the song or video the timeline is authored against",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAttach(cmd, args[0])
		},
	}
	cmd.Flags().String("kind", "audio", "Media kind: audio or video")
	return cmd
}

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every segment and the saved project",
		Args:  cobra.NoArgs,
		RunE:  runClear,
	}
	cmd.Flags().Bool("yes", false, "Confirm: clearing is not undoable")
	return cmd
}
