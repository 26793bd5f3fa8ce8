package internal

import (
	"regexp"
	"strings"
)

var (
	// Matches "HH:MM:SS.fff --> HH:MM:SS.fff" cue lines at line start.
	// Lines that only resemble timestamps are kept as caption text.
	timestampRe = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d+\s*-->\s*\d{2}:\d{2}:\d{2}\.\d+`)
	markupRe    = regexp.MustCompile(`<[^>]*>`)
)

// CleanSubtitles converts raw subtitle-file content (WebVTT or SRT-style)
// into a CleanedTranscript. Header metadata, cue timestamps and inline
// markup are dropped; a line identical to the previously retained line is
// suppressed, since captions often repeat across adjacent timed blocks.
func CleanSubtitles(raw string) CleanedTranscript {
	var cleaned CleanedTranscript
	prev := ""

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "WEBVTT") ||
			strings.HasPrefix(line, "Kind:") ||
			strings.HasPrefix(line, "Language:") {
			continue
		}

		if timestampRe.MatchString(line) {
			continue
		}

		line = strings.TrimSpace(markupRe.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}

		if line != prev {
			cleaned = append(cleaned, line)
			prev = line
		}
	}

	return cleaned
}
