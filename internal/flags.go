package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddSubtitleFlags adds flags controlling subtitle acquisition
func AddSubtitleFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("lang", "l", "", "Subtitle language code (default from config)")
	cmd.Flags().Bool("auto-subs", false, "Prefer auto-generated subtitles over official ones")
}

// AddTranscriptionFlags adds flags related to the Whisper fallback
func AddTranscriptionFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("fallback-whisper", false, "Fallback to Whisper if no captions available (costs money)")
	cmd.Flags().Duration("max-duration", 0, "Longest video the Whisper fallback will download (default from config)")
}

// AddSummaryFlags adds flags related to summarization
func AddSummaryFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("model", "m", "", "Gemini model to use for summaries")
	cmd.Flags().StringP("prompt", "p", "", "Custom prompt (string or file path)")
}

// HandleSubtitleFlags applies subtitle acquisition flags to the config
func HandleSubtitleFlags(cmd *cobra.Command, config *Config) {
	if lang, _ := cmd.Flags().GetString("lang"); lang != "" {
		config.Lang = lang
	}
	if autoSubs, _ := cmd.Flags().GetBool("auto-subs"); autoSubs {
		config.PreferAuto = true
	}
}

// HandleTranscriptionFlags applies Whisper fallback flags to the config
func HandleTranscriptionFlags(cmd *cobra.Command, config *Config) {
	if maxDuration, _ := cmd.Flags().GetDuration("max-duration"); maxDuration > 0 {
		config.MaxDuration = maxDuration
	}
}

// HandlePromptFlag processes the --prompt flag to set a custom prompt
func HandlePromptFlag(cmd *cobra.Command, app *App) error {
	promptFlag := cmd.Flags().Lookup("prompt")
	if promptFlag == nil || !promptFlag.Changed {
		return nil
	}

	prompt, err := cmd.Flags().GetString("prompt")
	if err != nil {
		return fmt.Errorf("failed to get prompt flag: %w", err)
	}

	if prompt == "" {
		return nil
	}

	app.SetPromptManager(NewPromptManager(app.config.ConfigDir, prompt))
	return nil
}

// HandleVerboseFlag processes the --verbose flag to update config
func HandleVerboseFlag(cmd *cobra.Command, config *Config) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	config.Verbose = verbose
	return nil
}

// ValidateSummaryRequirements checks the Gemini credential and model before
// any acquisition work is started
func ValidateSummaryRequirements(cmd *cobra.Command, config *Config) error {
	if config.GeminiAPIKey == "" {
		return fmt.Errorf("%w: set GEMINI_API_KEY or gemini_api_key in config.toml", ErrMissingCredential)
	}

	if modelFlag, _ := cmd.Flags().GetString("model"); modelFlag != "" {
		config.GeminiModel = modelFlag
	}
	if config.GeminiModel == "" {
		return fmt.Errorf("gemini model is required - set it in config.toml or with --model")
	}

	return nil
}
