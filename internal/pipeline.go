package internal

import (
	"context"
	"fmt"
)

// Credentials holds the two independent API secrets the pipeline may need.
// The summarization key is required for every run; the transcription key is
// only checked when the subtitle path comes up empty.
type Credentials struct {
	GeminiAPIKey string
	OpenAIAPIKey string
}

// SubtitleAcquirer is the subtitle stage as the controller sees it
type SubtitleAcquirer interface {
	Fetch(ctx context.Context, url, lang string, preferAuto bool) (CleanedTranscript, TranscriptSource)
}

// AudioTranscriber is the audio fallback stage as the controller sees it
type AudioTranscriber interface {
	TranscribeFromURL(ctx context.Context, url string) string
}

// Pipeline runs the acquisition fallback chain and hands the transcript to
// the summarizer: subtitles first, audio transcription only when subtitles
// yield nothing. The two paths are strictly sequential alternatives.
type Pipeline struct {
	subs       SubtitleAcquirer
	transcribe AudioTranscriber
	summarizer Summarizer
	prompts    *PromptManager
	creds      Credentials
	lang       string
	preferAuto bool
	verbose    bool
}

// NewPipeline wires a pipeline controller from its stages
func NewPipeline(subs SubtitleAcquirer, transcribe AudioTranscriber, summarizer Summarizer, prompts *PromptManager, creds Credentials, lang string, preferAuto bool, verbose bool) *Pipeline {
	return &Pipeline{
		subs:       subs,
		transcribe: transcribe,
		summarizer: summarizer,
		prompts:    prompts,
		creds:      creds,
		lang:       lang,
		preferAuto: preferAuto,
		verbose:    verbose,
	}
}

// Run executes the pipeline for one video. metadata may be nil; it only
// enriches the summarization prompt. The result is always non-nil and
// classifies failures instead of surfacing stack traces.
func (p *Pipeline) Run(ctx context.Context, videoURL string, metadata *VideoMetadata) *PipelineResult {
	// The summarization key gates the whole run. Checking it before any
	// acquisition work avoids wasted downloads.
	if p.creds.GeminiAPIKey == "" {
		return &PipelineResult{
			Failure: FailureMissingCredential,
			Err:     fmt.Errorf("%w: GEMINI_API_KEY", ErrMissingCredential),
		}
	}

	transcript, source := p.subs.Fetch(ctx, videoURL, p.lang, p.preferAuto)
	text := transcript.Text()

	if text == "" {
		if p.verbose {
			fmt.Println("Failed to retrieve subtitles, falling back to audio transcription...")
		}
		if p.creds.OpenAIAPIKey == "" {
			return &PipelineResult{
				Failure: FailureMissingCredential,
				Err:     fmt.Errorf("%w: OPENAI_API_KEY", ErrMissingCredential),
			}
		}
		text = p.transcribe.TranscribeFromURL(ctx, videoURL)
		source = SourceWhisper
	}

	if text == "" {
		return &PipelineResult{
			Source:  SourceNone,
			Failure: FailureNoTranscript,
			Err:     ErrNoTranscript,
		}
	}

	if p.verbose {
		fmt.Printf("Obtained transcript from %s (%d characters)\n", source, len(text))
	}

	prompt, err := p.prompts.CreatePrompt(text, metadata)
	if err != nil {
		return &PipelineResult{
			Source:  source,
			Failure: FailureSummarization,
			Err:     fmt.Errorf("creating prompt: %w", err),
		}
	}

	summary, err := p.summarizer.Summarize(ctx, prompt)
	if err != nil {
		return &PipelineResult{
			Transcript: text,
			Source:     source,
			Failure:    FailureSummarization,
			Err:        fmt.Errorf("generating summary: %w", err),
		}
	}

	return &PipelineResult{Summary: summary, Transcript: text, Source: source}
}
