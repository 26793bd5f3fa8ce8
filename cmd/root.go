package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cruxrec/cruxrec/internal"
)

var (
	config *internal.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cruxrec [video URL or ID]",
	Short: "Extract the crux of a video: transcript acquisition + AI summary",
	Long: `CruxRec summarizes videos using AI.

It downloads official subtitles when available, falls back to
auto-generated subtitles, and as a last resort transcribes the audio
with OpenAI's Whisper. The summary is generated with Google Gemini.`,
	Example: `  # Summarize a video (default behavior)
  cruxrec "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  cruxrec tAP1eZYEuKA

  # Request Russian subtitles
  cruxrec "https://youtu.be/tAP1eZYEuKA" --lang ru

  # Prefer auto-generated subtitles
  cruxrec tAP1eZYEuKA --auto-subs

  # Use a custom prompt for the summary
  cruxrec tAP1eZYEuKA --prompt "tldr: {{.Transcript}}"`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return internal.HandleVerboseFlag(cmd, config)
	},
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

		arg := args[0]
		if internal.IsLikelyCommand(arg) {
			availableCommands := []string{"mcp", "transcribe", "summarize", "metadata", "clean", "version", "paths", "help"}
			var suggestions []string
			for _, cmdName := range availableCommands {
				if strings.Contains(cmdName, arg) {
					suggestions = append(suggestions, cmdName)
				}
			}

			if len(suggestions) > 0 {
				return fmt.Errorf("'%s' doesn't look like a video URL or ID. Did you mean: %s?", arg, strings.Join(suggestions, ", "))
			}
			return fmt.Errorf("'%s' doesn't look like a video URL or ID. Use --help to see available commands", arg)
		}

		return app.Summarize(cmd.Context(), arg)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config = internal.InitConfig()

	if err := internal.EnsureDirs(config.ConfigDir, config.DataDir, config.CacheDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating XDG directories: %v\n", err)
		os.Exit(1)
	}

	if err := internal.EnsureDefaultConfig(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
	}

	if err := internal.EnsureDefaultPrompt(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default prompt: %v\n", err)
	}

	// Graceful shutdown: purge run workspaces before exiting, but don't
	// hang on a stuck filesystem.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nReceived interrupt signal. Cleaning up and shutting down...")

		cancel()

		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cleanupCancel()

		cleanupDone := make(chan struct{})
		go func() {
			if _, err := internal.CleanupRunDirs(config.CacheDir); err != nil {
				fmt.Fprintf(os.Stderr, "Error cleaning up workspaces: %v\n", err)
			}
			close(cleanupDone)
		}()

		select {
		case <-cleanupDone:
		case <-cleanupCtx.Done():
			fmt.Fprintln(os.Stderr, "Warning: Cleanup timed out, forcing exit")
		}

		os.Exit(0)
	}()

	rootCmd.SetContext(ctx)

	return rootCmd.Execute()
}

func init() {
	internal.AddSubtitleFlags(rootCmd)
	internal.AddTranscriptionFlags(rootCmd)
	internal.AddSummaryFlags(rootCmd)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is $XDG_CONFIG_HOME/cruxrec/config.toml)")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}
