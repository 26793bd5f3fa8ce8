package internal

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// WhisperClient transcribes audio files with OpenAI's Whisper API. The
// underlying client initializes lazily from the API key, so a missing
// OPENAI_API_KEY only surfaces when transcription is actually attempted.
type WhisperClient struct {
	apiKey     string
	timeout    time.Duration
	verbose    bool
	client     *openai.Client
	clientOnce sync.Once
}

// NewWhisperClient creates a Whisper transcription client
func NewWhisperClient(apiKey string, timeout time.Duration, verbose bool) *WhisperClient {
	return &WhisperClient{
		apiKey:  apiKey,
		timeout: timeout,
		verbose: verbose,
	}
}

func (w *WhisperClient) ensureClient() error {
	if w.apiKey == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY", ErrMissingCredential)
	}
	w.clientOnce.Do(func() {
		client := openai.NewClient(option.WithAPIKey(w.apiKey))
		w.client = &client
	})
	return nil
}

// Transcribe submits an audio file to the Whisper API and returns its text
func (w *WhisperClient) Transcribe(ctx context.Context, audioFile string) (string, error) {
	if err := w.ensureClient(); err != nil {
		return "", err
	}

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	file, err := os.Open(audioFile)
	if err != nil {
		return "", fmt.Errorf("opening audio file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close file %s: %v\n", audioFile, closeErr)
		}
	}()

	resp, err := w.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  file,
		Model: openai.AudioModelWhisper1,
	})
	if err != nil {
		return "", fmt.Errorf("creating transcription: %w", err)
	}

	if w.verbose {
		fmt.Printf("Whisper returned %d characters\n", len(resp.Text))
	}
	return resp.Text, nil
}
