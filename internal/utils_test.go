package internal

import (
	"testing"
)

func TestParseArg(t *testing.T) {
	tests := []struct {
		arg         string
		wantURL     string
		wantCacheID string
	}{
		{
			arg:         "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantURL:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantCacheID: "dQw4w9WgXcQ",
		},
		{
			arg:         "https://youtu.be/dQw4w9WgXcQ",
			wantURL:     "https://youtu.be/dQw4w9WgXcQ",
			wantCacheID: "dQw4w9WgXcQ",
		},
		{
			arg:         "dQw4w9WgXcQ",
			wantURL:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantCacheID: "dQw4w9WgXcQ",
		},
		{
			arg:         "  dQw4w9WgXcQ  ",
			wantURL:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantCacheID: "dQw4w9WgXcQ",
		},
		{
			arg:         "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
			wantURL:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
			wantCacheID: "dQw4w9WgXcQ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			gotURL, gotCacheID := ParseArg(tt.arg)
			if gotURL != tt.wantURL {
				t.Errorf("url = %q, want %q", gotURL, tt.wantURL)
			}
			if gotCacheID != tt.wantCacheID {
				t.Errorf("cacheID = %q, want %q", gotCacheID, tt.wantCacheID)
			}
		})
	}
}

func TestGetVideoID(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{url: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{url: "https://www.youtube.com/shorts/abc123DEF45", want: "abc123DEF45"},
		{url: "https://example.com/", wantErr: true},
	}

	for _, tt := range tests {
		got, err := getVideoID(tt.url)
		if tt.wantErr {
			if err == nil {
				t.Errorf("getVideoID(%q) = %q, want error", tt.url, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("getVideoID(%q) error = %v", tt.url, err)
			continue
		}
		if got != tt.want {
			t.Errorf("getVideoID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestIsValidYouTubeID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"dQw4w9WgXcQ", true},
		{"abc_-123XYZ", true},
		{"tooshort", false},
		{"waytoolongvideoid", false},
		{"bad$chars!!", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidYouTubeID(tt.id); got != tt.want {
			t.Errorf("IsValidYouTubeID(%q) = %t, want %t", tt.id, got, tt.want)
		}
	}
}

func TestIsLikelyCommand(t *testing.T) {
	tests := []struct {
		arg  string
		want bool
	}{
		{"sumarize", true},
		{"dQw4w9WgXcQ", false},
		{"https://a", false},
		{"somethingreallylong", false},
	}

	for _, tt := range tests {
		if got := IsLikelyCommand(tt.arg); got != tt.want {
			t.Errorf("IsLikelyCommand(%q) = %t, want %t", tt.arg, got, tt.want)
		}
	}
}

func TestMetadataCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	meta := &VideoMetadata{
		ID:          "dQw4w9WgXcQ",
		Title:       "A Talk",
		Channel:     "ConfChannel",
		Description: "About things",
		Duration:    212,
		HasCaptions: true,
	}

	if err := SaveMetadata(meta.ID, meta, dir); err != nil {
		t.Fatalf("SaveMetadata() error = %v", err)
	}

	got, err := LoadCachedMetadata(meta.ID, dir)
	if err != nil {
		t.Fatalf("LoadCachedMetadata() error = %v", err)
	}
	if *got != *meta {
		t.Errorf("round trip = %+v, want %+v", got, meta)
	}

	if _, err := LoadCachedMetadata("missing-id00", dir); err == nil {
		t.Error("expected error for uncached id")
	}
}
