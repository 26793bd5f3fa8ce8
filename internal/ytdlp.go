package internal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lrstanley/go-ytdlp"
)

// VideoMetadata contains the video information the pipeline consumes
type VideoMetadata struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Channel     string  `json:"channel"`
	Uploader    string  `json:"uploader"`
	Duration    float64 `json:"duration"`
	HasCaptions bool    `json:"has_captions"`
}

// YTDLP implements the Downloader capability using yt-dlp
type YTDLP struct {
	verbose bool
}

// NewYTDLP creates a new yt-dlp backed downloader
func NewYTDLP(verbose bool) *YTDLP {
	return &YTDLP{verbose: verbose}
}

// FetchSubtitles downloads subtitle files for the video without downloading
// the video itself. wantAuto switches between official and auto-generated
// caption tracks.
func (d *YTDLP) FetchSubtitles(ctx context.Context, url, lang string, wantAuto bool, outputTemplate string) error {
	dl := ytdlp.New().
		SkipDownload().
		NoPlaylist().
		Output(outputTemplate)

	if wantAuto {
		dl = dl.WriteAutoSubs()
	} else {
		dl = dl.WriteSubs()
	}
	if lang != "" {
		dl = dl.SubLangs(lang)
	}

	result, err := dl.Run(ctx, url)
	if err != nil {
		if d.verbose && result != nil {
			fmt.Printf("Subtitle download stderr: %s\n", result.Stderr)
		}
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	return nil
}

// ProbeMetadata resolves video metadata without downloading the video
func (d *YTDLP) ProbeMetadata(ctx context.Context, url string) (*VideoMetadata, error) {
	dl := ytdlp.New().
		DumpSingleJSON().
		NoPlaylist().
		SkipDownload()

	result, err := dl.Run(ctx, url)
	if err != nil {
		if d.verbose && result != nil {
			fmt.Printf("Metadata probe stderr: %s\n", result.Stderr)
		}
		return nil, fmt.Errorf("extracting video metadata: %w", err)
	}

	var metadata VideoMetadata
	if err := json.Unmarshal([]byte(result.Stdout), &metadata); err != nil {
		return nil, fmt.Errorf("parsing video metadata: %w", err)
	}

	// Caption availability lives in nested maps the struct doesn't model.
	var rawData map[string]any
	if err := json.Unmarshal([]byte(result.Stdout), &rawData); err == nil {
		metadata.HasCaptions = hasSubtitleTracks(rawData)
	}

	if d.verbose {
		fmt.Printf("Resolved metadata: %q (%.0fs, captions=%t)\n",
			metadata.Title, metadata.Duration, metadata.HasCaptions)
	}
	return &metadata, nil
}

// DownloadVideo downloads the full video to the given output template
func (d *YTDLP) DownloadVideo(ctx context.Context, url, outputTemplate string) error {
	dl := ytdlp.New().
		NoPlaylist().
		Output(outputTemplate)

	result, err := dl.Run(ctx, url)
	if err != nil {
		if d.verbose && result != nil {
			fmt.Printf("Video download stderr: %s\n", result.Stderr)
		}
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	return nil
}

// hasSubtitleTracks reports caption availability from yt-dlp JSON output
func hasSubtitleTracks(rawData map[string]any) bool {
	if subtitles, ok := rawData["subtitles"].(map[string]any); ok && len(subtitles) > 0 {
		return true
	}
	if autoCaptions, ok := rawData["automatic_captions"].(map[string]any); ok && len(autoCaptions) > 0 {
		return true
	}
	return false
}
