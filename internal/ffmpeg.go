package internal

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Audio handles audio extraction and conversion using FFmpeg
type Audio struct {
	cmdRunner CommandRunner
	verbose   bool
}

// NewAudio creates a new audio processor
func NewAudio(cmdRunner CommandRunner, verbose bool) *Audio {
	return &Audio{
		cmdRunner: cmdRunner,
		verbose:   verbose,
	}
}

// Extract pulls the audio track out of a video file into an m4a next to it.
// A nonzero ffmpeg exit status is a hard failure.
func (a *Audio) Extract(ctx context.Context, videoFile string) (string, error) {
	audioFile := strings.TrimSuffix(videoFile, filepath.Ext(videoFile)) + ".m4a"

	output, err := a.cmdRunner.Run(ctx, "ffmpeg",
		"-i", videoFile,
		"-q:a", "0",
		"-map", "a",
		"-y", audioFile)
	if err != nil {
		return "", fmt.Errorf("ffmpeg failed: %w\nOutput: %s", err, string(output))
	}

	if a.verbose {
		fmt.Printf("Extracted audio track: %s\n", audioFile)
	}
	return audioFile, nil
}

// Codec returns the codec name of the first audio stream
func (a *Audio) Codec(ctx context.Context, audioFile string) (string, error) {
	output, err := a.cmdRunner.Run(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=codec_name",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioFile)
	if err != nil {
		return "", fmt.Errorf("ffprobe failed: %w\nOutput: %s", err, string(output))
	}

	return strings.TrimSpace(string(output)), nil
}

// ConvertPCM re-encodes an audio file to uncompressed pcm_s16le WAV, the
// format the transcription API expects
func (a *Audio) ConvertPCM(ctx context.Context, audioFile string) (string, error) {
	wavFile := strings.TrimSuffix(audioFile, filepath.Ext(audioFile)) + ".wav"

	output, err := a.cmdRunner.Run(ctx, "ffmpeg",
		"-i", audioFile,
		"-acodec", "pcm_s16le",
		"-y", wavFile)
	if err != nil {
		return "", fmt.Errorf("ffmpeg failed: %w\nOutput: %s", err, string(output))
	}

	if a.verbose {
		fmt.Printf("Audio converted to WAV: %s\n", wavFile)
	}
	return wavFile, nil
}
