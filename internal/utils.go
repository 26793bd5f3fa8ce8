package internal

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ParseArg normalizes a video URL or bare YouTube video ID into
// (url, cacheID). The cache id is the video id when one can be extracted,
// otherwise the argument itself.
func ParseArg(arg string) (string, string) {
	arg = strings.TrimSpace(arg)

	if strings.HasPrefix(arg, "https://") || strings.HasPrefix(arg, "http://") {
		if videoID, err := getVideoID(arg); err == nil {
			return arg, videoID
		}
		return arg, arg
	}

	// Bare 11-character IDs are treated as YouTube videos.
	return "https://www.youtube.com/watch?v=" + arg, arg
}

// getVideoID extracts the video id from a URL's query or last path segment
func getVideoID(videoURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(videoURL))
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}

	if v := u.Query().Get("v"); v != "" {
		return v, nil
	}

	parts := strings.Split(u.Path, "/")
	if len(parts) > 0 && parts[len(parts)-1] != "" {
		return parts[len(parts)-1], nil
	}

	return "", fmt.Errorf("could not extract video ID from URL: %s", videoURL)
}

// IsValidYouTubeID checks if a string looks like a valid YouTube video ID
func IsValidYouTubeID(id string) bool {
	if len(id) != 11 {
		return false
	}
	matched, _ := regexp.MatchString(`^[A-Za-z0-9_-]+$`, id)
	return matched
}

// IsLikelyCommand checks if a string looks like it might be a mistyped command
func IsLikelyCommand(arg string) bool {
	return len(arg) <= 10 && !IsValidYouTubeID(arg) && !strings.Contains(arg, "://")
}

// FileExists checks if a file exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// EnsureDirs creates directories if needed
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if !FileExists(dir) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
	}
	return nil
}

// getTerminalWidth gets terminal width with fallback
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}

	if width > 10 {
		return width - 4
	}

	return width
}

// RenderMarkdown renders markdown content with glamour
func RenderMarkdown(content string) (string, error) {
	width := getTerminalWidth()
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.EnvColorProfile()),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}

	renderedContent, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	return renderedContent, nil
}

// SaveTranscript saves a transcript to the transcripts directory
func SaveTranscript(videoID, transcript, transcriptsDir string) error {
	transcriptPath := filepath.Join(transcriptsDir, videoID+".txt")
	if err := os.WriteFile(transcriptPath, []byte(transcript), 0644); err != nil {
		return fmt.Errorf("saving transcript: %w", err)
	}
	return nil
}

// CachedVideoMetadata extends VideoMetadata with cache information
type CachedVideoMetadata struct {
	VideoMetadata
	CachedAt time.Time `json:"cached_at"`
}

// SaveMetadata saves video metadata to the cache as JSON
func SaveMetadata(videoID string, metadata *VideoMetadata, transcriptsDir string) error {
	cached := CachedVideoMetadata{
		VideoMetadata: *metadata,
		CachedAt:      time.Now(),
	}

	data, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}

	metadataPath := filepath.Join(transcriptsDir, videoID+".meta.json")
	if err := os.WriteFile(metadataPath, data, 0644); err != nil {
		return fmt.Errorf("saving metadata: %w", err)
	}

	return nil
}

// LoadCachedMetadata loads video metadata from the cache
func LoadCachedMetadata(videoID, transcriptsDir string) (*VideoMetadata, error) {
	metadataPath := filepath.Join(transcriptsDir, videoID+".meta.json")

	if !FileExists(metadataPath) {
		return nil, fmt.Errorf("metadata cache not found")
	}

	data, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata cache: %w", err)
	}

	var cached CachedVideoMetadata
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("parsing metadata cache: %w", err)
	}

	metadata := cached.VideoMetadata
	return &metadata, nil
}
