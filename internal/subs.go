package internal

import (
	"context"
	"fmt"
	"os"
)

// Downloader is the video-site download capability the pipeline consumes.
// Implemented by YTDLP; replaced with fakes in tests.
type Downloader interface {
	// FetchSubtitles writes subtitle file(s) for url under outputTemplate.
	// wantAuto selects auto-generated captions instead of official ones.
	FetchSubtitles(ctx context.Context, url, lang string, wantAuto bool, outputTemplate string) error
	// ProbeMetadata resolves video metadata without downloading anything.
	ProbeMetadata(ctx context.Context, url string) (*VideoMetadata, error)
	// DownloadVideo downloads the full video to outputTemplate.
	DownloadVideo(ctx context.Context, url, outputTemplate string) error
}

// SubsProvider acquires subtitles for a video: official captions first,
// auto-generated captions as fallback, normalized through CleanSubtitles.
type SubsProvider struct {
	downloader Downloader
	ws         *Workspace
	verbose    bool
}

// NewSubsProvider creates a subtitle acquisition stage bound to a workspace
func NewSubsProvider(downloader Downloader, ws *Workspace, verbose bool) *SubsProvider {
	return &SubsProvider{
		downloader: downloader,
		ws:         ws,
		verbose:    verbose,
	}
}

// Fetch tries to obtain a normalized transcript from subtitles. Download
// failures are logged and treated as "no file produced", never as errors;
// the caller checks for an empty result. Downloaded subtitle files stay in
// the workspace until Remove is called.
func (sp *SubsProvider) Fetch(ctx context.Context, url, lang string, preferAuto bool) (CleanedTranscript, TranscriptSource) {
	stem := sp.ws.SubtitleStem()
	template := sp.ws.OutputTemplate(stem)

	download := func(wantAuto bool) bool {
		if sp.verbose {
			fmt.Printf("Downloading subtitles (auto=%t, lang=%q)\n", wantAuto, lang)
		}
		if err := sp.downloader.FetchSubtitles(ctx, url, lang, wantAuto, template); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: subtitle download failed: %v\n", err)
			return false
		}
		return true
	}

	source := SourceOfficialSubtitle
	if preferAuto {
		source = SourceAutoSubtitle
	}

	download(preferAuto)
	subFile := sp.ws.Find(stem)

	// Official captions missing or empty: retry with auto-generated ones.
	if subFile == "" && !preferAuto {
		if sp.verbose {
			fmt.Println("Official subtitles not found or empty, trying auto-generated subtitles...")
		}
		if !download(true) {
			return nil, SourceNone
		}
		subFile = sp.ws.Find(stem)
		source = SourceAutoSubtitle
	}

	if subFile == "" {
		if sp.verbose {
			fmt.Println("Could not locate a valid downloaded subtitle file")
		}
		return nil, SourceNone
	}

	content, err := os.ReadFile(subFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: reading subtitle file %s: %v\n", subFile, err)
		return nil, SourceNone
	}

	transcript := CleanSubtitles(string(content))
	if transcript.Empty() {
		if sp.verbose {
			fmt.Println("Parsed subtitles are empty")
		}
		return nil, SourceNone
	}

	return transcript, source
}

// Remove deletes the subtitle files this run downloaded. Acquisition leaves
// them on disk; cleanup is this separate, explicit operation.
func (sp *SubsProvider) Remove() int {
	return sp.ws.RemoveMatching(sp.ws.SubtitleStem())
}
