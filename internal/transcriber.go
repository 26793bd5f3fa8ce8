package internal

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
)

// TranscriptionClient converts an audio file to text
type TranscriptionClient interface {
	Transcribe(ctx context.Context, audioFile string) (string, error)
}

// Transcriber is the audio fallback stage: download the video, extract and
// normalize its audio, and run it through the transcription API.
type Transcriber struct {
	downloader  Downloader
	audio       *Audio
	stt         TranscriptionClient
	ws          *Workspace
	maxDuration time.Duration
	verbose     bool
}

// NewTranscriber creates an audio transcription stage bound to a workspace
func NewTranscriber(downloader Downloader, audio *Audio, stt TranscriptionClient, ws *Workspace, maxDuration time.Duration, verbose bool) *Transcriber {
	return &Transcriber{
		downloader:  downloader,
		audio:       audio,
		stt:         stt,
		ws:          ws,
		maxDuration: maxDuration,
		verbose:     verbose,
	}
}

// TranscribeFromURL transcribes a video's audio track. Any failure is
// logged and collapses to an empty string; callers treat "" as "no
// transcript". Intermediate video and audio files are removed whether the
// run succeeds or not.
func (t *Transcriber) TranscribeFromURL(ctx context.Context, videoURL string) string {
	text, err := t.run(ctx, videoURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: audio transcription failed: %v\n", err)
		return ""
	}
	return text
}

func (t *Transcriber) run(ctx context.Context, videoURL string) (string, error) {
	metadata, err := t.downloader.ProbeMetadata(ctx, videoURL)
	if err != nil {
		return "", fmt.Errorf("probing video metadata: %w", err)
	}

	// Reject long videos before any download work happens.
	if t.maxDuration > 0 && metadata.Duration > t.maxDuration.Seconds() {
		return "", fmt.Errorf("%w: %.0fs > %.0fs", ErrVideoTooLong, metadata.Duration, t.maxDuration.Seconds())
	}

	// Host plus provider id keeps concurrent runs from clobbering each other.
	stem := fmt.Sprintf("%s-%s", hostLabel(videoURL), metadata.ID)

	// yt-dlp and ffmpeg create their output files before they can fail
	// mid-write, so cleanup is keyed on the stem rather than on the paths
	// each step returned.
	defer t.ws.RemoveMatching(stem)

	if err := t.downloader.DownloadVideo(ctx, videoURL, t.ws.OutputTemplate(stem)); err != nil {
		return "", fmt.Errorf("downloading video: %w", err)
	}

	videoFile := t.ws.Find(stem)
	if videoFile == "" {
		return "", errors.New("downloaded video file not found")
	}

	if t.verbose {
		fmt.Printf("Downloaded video: %s\n", videoFile)
	}

	audioFile, err := t.audio.Extract(ctx, videoFile)
	if err != nil {
		return "", fmt.Errorf("extracting audio: %w", err)
	}

	codec, err := t.audio.Codec(ctx, audioFile)
	if err != nil {
		return "", fmt.Errorf("probing audio codec: %w", err)
	}

	sttInput := audioFile
	if codec != "pcm_s16le" {
		wavFile, err := t.audio.ConvertPCM(ctx, audioFile)
		if err != nil {
			return "", fmt.Errorf("converting audio to PCM: %w", err)
		}
		sttInput = wavFile
	}

	if t.verbose {
		fmt.Printf("Transcribing %s via Whisper API...\n", sttInput)
	}

	text, err := t.stt.Transcribe(ctx, sttInput)
	if err != nil {
		return "", fmt.Errorf("whisper transcription: %w", err)
	}
	return text, nil
}

// hostLabel extracts the hostname of a video URL for use in filenames
func hostLabel(videoURL string) string {
	u, err := url.Parse(videoURL)
	if err != nil || u.Hostname() == "" {
		return "video"
	}
	return u.Hostname()
}
