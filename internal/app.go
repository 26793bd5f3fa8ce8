package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// App holds the application state and dependencies
type App struct {
	downloader    Downloader
	audio         *Audio
	whisper       TranscriptionClient
	summarizer    Summarizer
	promptManager *PromptManager
	config        *Config
	ui            UIManager
}

// NewApp initializes the application
func NewApp(config *Config, options ...AppOption) *App {
	cmdRunner := &DefaultCommandRunner{}

	app := &App{
		downloader:    NewYTDLP(config.Verbose),
		audio:         NewAudio(cmdRunner, config.Verbose),
		whisper:       NewWhisperClient(config.OpenAIAPIKey, config.WhisperTimeout, config.Verbose),
		summarizer:    NewGeminiSummarizer(config.GeminiAPIKey, config.GeminiModel, config.SummaryTimeout, config.Verbose),
		promptManager: NewPromptManager(config.ConfigDir, config.Prompt),
		config:        config,
		ui:            NewUIManager(config.Verbose, config.Quiet),
	}

	for _, option := range options {
		option(app)
	}

	return app
}

// AppOption customizes App creation
type AppOption func(*App)

// WithDownloader sets a custom downloader
func WithDownloader(downloader Downloader) AppOption {
	return func(a *App) {
		a.downloader = downloader
	}
}

// WithTranscriptionClient sets a custom transcription client
func WithTranscriptionClient(client TranscriptionClient) AppOption {
	return func(a *App) {
		a.whisper = client
	}
}

// WithSummarizer sets a custom summarizer
func WithSummarizer(summarizer Summarizer) AppOption {
	return func(a *App) {
		a.summarizer = summarizer
	}
}

// SetPromptManager sets a new prompt manager
func (app *App) SetPromptManager(pm *PromptManager) {
	app.promptManager = pm
}

// NewWorkspace creates a run-scoped workspace in the cache directory
func (app *App) NewWorkspace() (*Workspace, error) {
	if err := EnsureDirs(app.config.CacheDir); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return NewWorkspace(app.config.CacheDir)
}

// NewPipeline wires a pipeline controller around the given workspace
func (app *App) NewPipeline(ws *Workspace) *Pipeline {
	subs := NewSubsProvider(app.downloader, ws, app.config.Verbose)
	transcriber := NewTranscriber(app.downloader, app.audio, app.whisper, ws,
		app.config.MaxDuration, app.config.Verbose)

	return NewPipeline(subs, transcriber, app.summarizer, app.promptManager,
		app.config.Credentials(), app.config.Lang, app.config.PreferAuto, app.config.Verbose)
}

// Summarize performs the complete workflow for one video: acquire a
// transcript (subtitles, then Whisper) and print the rendered summary.
func (app *App) Summarize(ctx context.Context, arg string) error {
	videoURL, videoID := ParseArg(arg)

	ws, err := app.NewWorkspace()
	if err != nil {
		return err
	}

	spinner := app.ui.NewSpinner("Resolving video metadata...")

	// Metadata only enriches the prompt; failures are not fatal.
	metadata, err := app.Metadata(ctx, videoURL)
	if err != nil {
		app.ui.Verbose("Failed to extract video metadata: %v\n", err)
		metadata = nil
	}

	spinner.Describe("Acquiring transcript...")
	result := app.NewPipeline(ws).Run(ctx, videoURL, metadata)
	spinner.Finish()

	if result.Failed() {
		return result.Err
	}

	app.ui.Verbose("Transcript source: %s\n", result.Source)
	if result.Transcript != "" {
		app.saveTranscript(videoID, result.Transcript)
	}

	rendered, err := RenderMarkdown(result.Summary)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}

	fmt.Println(rendered)
	return nil
}

// Transcript gets a transcript for a video: cached if available, then
// subtitles, then optionally the Whisper fallback.
func (app *App) Transcript(ctx context.Context, arg string, fallbackWhisper bool) (string, TranscriptSource, error) {
	videoURL, videoID := ParseArg(arg)

	if cached, err := app.cachedTranscript(videoID); err == nil {
		app.ui.Verbose("Found cached transcript for %s\n", videoID)
		return cached, SourceNone, nil
	}

	ws, err := app.NewWorkspace()
	if err != nil {
		return "", SourceNone, err
	}

	subs := NewSubsProvider(app.downloader, ws, app.config.Verbose)
	transcript, source := subs.Fetch(ctx, videoURL, app.config.Lang, app.config.PreferAuto)
	text := transcript.Text()

	if text == "" && fallbackWhisper {
		transcriber := NewTranscriber(app.downloader, app.audio, app.whisper, ws,
			app.config.MaxDuration, app.config.Verbose)
		text = transcriber.TranscribeFromURL(ctx, videoURL)
		source = SourceWhisper
	}

	if text == "" {
		return "", SourceNone, fmt.Errorf("%w for %s", ErrNoTranscript, videoID)
	}

	app.saveTranscript(videoID, text)
	return text, source, nil
}

// Metadata gets metadata for a video (cached or fresh)
func (app *App) Metadata(ctx context.Context, arg string) (*VideoMetadata, error) {
	videoURL, videoID := ParseArg(arg)

	if cached, err := LoadCachedMetadata(videoID, app.config.TranscriptsDir); err == nil {
		app.ui.Verbose("Using cached metadata for %s\n", videoID)
		return cached, nil
	}

	metadata, err := app.downloader.ProbeMetadata(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	if err := EnsureDirs(app.config.TranscriptsDir); err == nil {
		if err := SaveMetadata(videoID, metadata, app.config.TranscriptsDir); err != nil {
			app.ui.Verbose("Warning: failed to cache metadata: %v\n", err)
		}
	}

	return metadata, nil
}

// CleanWorkspaces removes leftover run workspaces from the cache directory
func (app *App) CleanWorkspaces() (int, error) {
	return CleanupRunDirs(app.config.CacheDir)
}

func (app *App) cachedTranscript(videoID string) (string, error) {
	path := filepath.Join(app.config.TranscriptsDir, videoID+".txt")
	if !FileExists(path) {
		return "", fmt.Errorf("no cached transcript")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading cached transcript: %w", err)
	}
	return string(data), nil
}

func (app *App) saveTranscript(videoID, text string) {
	if err := EnsureDirs(app.config.TranscriptsDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: creating transcripts directory: %v\n", err)
		return
	}
	if err := SaveTranscript(videoID, text, app.config.TranscriptsDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}
