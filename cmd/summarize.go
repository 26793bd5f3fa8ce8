package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cruxrec/cruxrec/internal"
)

// summarizeCmd represents the summarize command
var summarizeCmd = &cobra.Command{
	Use:   "summarize [video URL or ID]",
	Short: "Generate a summary for a video",
	Example: `  # Generate a summary
  cruxrec summarize "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  cruxrec summarize tAP1eZYEuKA

  # Use a specific Gemini model
  cruxrec summarize tAP1eZYEuKA --model gemini-2.5-pro

  # Use a custom prompt
  cruxrec summarize tAP1eZYEuKA --prompt "tldr: {{.Transcript}}"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ValidateSummaryRequirements(cmd, config); err != nil {
			return err
		}
		internal.HandleSubtitleFlags(cmd, config)
		internal.HandleTranscriptionFlags(cmd, config)

		app := internal.NewApp(config)
		if err := internal.HandlePromptFlag(cmd, app); err != nil {
			return err
		}

		return app.Summarize(cmd.Context(), args[0])
	},
}

func init() {
	internal.AddSubtitleFlags(summarizeCmd)
	internal.AddTranscriptionFlags(summarizeCmd)
	internal.AddSummaryFlags(summarizeCmd)
	rootCmd.AddCommand(summarizeCmd)
}
