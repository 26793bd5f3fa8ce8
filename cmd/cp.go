package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/cruxrec/cruxrec/internal"
)

// cpCmd copies the transcript to the system clipboard instead of printing to stdout.
var cpCmd = &cobra.Command{
	Use:   "cp [video URL or ID]",
	Short: "Copy a video transcript to the clipboard",
	Example: `  # Copy a transcript from video captions
  cruxrec cp "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  cruxrec cp tAP1eZYEuKA

  # Use Whisper if no captions are available (costs money)
  cruxrec cp tAP1eZYEuKA --fallback-whisper`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		internal.HandleSubtitleFlags(cmd, config)
		internal.HandleTranscriptionFlags(cmd, config)

		app := internal.NewApp(config)

		fallbackWhisper, _ := cmd.Flags().GetBool("fallback-whisper")
		transcript, _, err := app.Transcript(cmd.Context(), args[0], fallbackWhisper)
		if err != nil {
			return err
		}

		if err := clipboard.WriteAll(transcript); err != nil {
			return fmt.Errorf("copying transcript to clipboard: %w", err)
		}

		if !config.Quiet {
			fmt.Println("Transcript copied to clipboard")
		}

		return nil
	},
}

func init() {
	internal.AddSubtitleFlags(cpCmd)
	internal.AddTranscriptionFlags(cpCmd)
	rootCmd.AddCommand(cpCmd)
}
