package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cruxrec/cruxrec/internal"
)

// transcribeCmd represents the transcribe command
var transcribeCmd = &cobra.Command{
	Use:   "transcribe [video URL or ID]",
	Short: "Get a transcript for a video (cached or downloaded)",
	Example: `  # Get a transcript from video captions
  cruxrec transcribe "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  cruxrec transcribe tAP1eZYEuKA

  # Save the transcript to a file
  cruxrec transcribe tAP1eZYEuKA -o transcript.txt

  # Use Whisper if no captions are available (costs money)
  cruxrec transcribe tAP1eZYEuKA --fallback-whisper`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		internal.HandleSubtitleFlags(cmd, config)
		internal.HandleTranscriptionFlags(cmd, config)

		app := internal.NewApp(config)

		fallbackWhisper, _ := cmd.Flags().GetBool("fallback-whisper")
		transcript, source, err := app.Transcript(cmd.Context(), args[0], fallbackWhisper)
		if err != nil {
			return err
		}

		if config.Verbose && source != internal.SourceNone {
			fmt.Printf("Transcript source: %s\n", source)
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			return os.WriteFile(outputFile, []byte(transcript), 0644)
		}

		fmt.Println(transcript)
		return nil
	},
}

func init() {
	internal.AddSubtitleFlags(transcribeCmd)
	internal.AddTranscriptionFlags(transcribeCmd)
	transcribeCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	rootCmd.AddCommand(transcribeCmd)
}
