package internal

import (
	"context"
	"os"
	"strings"
	"testing"
)

// fakeDownloader writes canned subtitle content into the output template.
// Content keyed by wantAuto; a missing key means the download "succeeds"
// without producing a file, an entry in fail means the command errors.
type fakeDownloader struct {
	subs  map[bool]string
	fail  map[bool]bool
	calls []bool

	meta              *VideoMetadata
	metaErr           error
	video             string
	videoErr          error
	videoCalls        int
	probeCalls        int
	lastVideoTemplate string
}

func (f *fakeDownloader) FetchSubtitles(_ context.Context, _, _ string, wantAuto bool, outputTemplate string) error {
	f.calls = append(f.calls, wantAuto)
	if f.fail[wantAuto] {
		return ErrDownloadFailed
	}
	content, ok := f.subs[wantAuto]
	if !ok {
		return nil
	}
	path := strings.Replace(outputTemplate, "%(ext)s", "en.vtt", 1)
	return os.WriteFile(path, []byte(content), 0o644)
}

func (f *fakeDownloader) ProbeMetadata(_ context.Context, _ string) (*VideoMetadata, error) {
	f.probeCalls++
	return f.meta, f.metaErr
}

func (f *fakeDownloader) DownloadVideo(_ context.Context, _, outputTemplate string) error {
	f.videoCalls++
	f.lastVideoTemplate = outputTemplate
	if f.videoErr != nil {
		return f.videoErr
	}
	path := strings.Replace(outputTemplate, "%(ext)s", "mp4", 1)
	return os.WriteFile(path, []byte(f.video), 0o644)
}

const officialVTT = "WEBVTT\n00:00:01.000 --> 00:00:04.000\nofficial line"
const autoVTT = "WEBVTT\n00:00:01.000 --> 00:00:04.000\nauto line"

func TestSubsProviderFetch(t *testing.T) {
	tests := []struct {
		name       string
		dl         *fakeDownloader
		preferAuto bool
		wantText   string
		wantSource TranscriptSource
		wantCalls  []bool
	}{
		{
			name:       "official captions found",
			dl:         &fakeDownloader{subs: map[bool]string{false: officialVTT}},
			wantText:   "official line",
			wantSource: SourceOfficialSubtitle,
			wantCalls:  []bool{false},
		},
		{
			name:       "official missing falls back to auto",
			dl:         &fakeDownloader{subs: map[bool]string{true: autoVTT}},
			wantText:   "auto line",
			wantSource: SourceAutoSubtitle,
			wantCalls:  []bool{false, true},
		},
		{
			name:       "official download error falls back to auto",
			dl:         &fakeDownloader{subs: map[bool]string{true: autoVTT}, fail: map[bool]bool{false: true}},
			wantText:   "auto line",
			wantSource: SourceAutoSubtitle,
			wantCalls:  []bool{false, true},
		},
		{
			name:       "zero-byte official file treated as absent",
			dl:         &fakeDownloader{subs: map[bool]string{false: "", true: autoVTT}},
			wantText:   "auto line",
			wantSource: SourceAutoSubtitle,
			wantCalls:  []bool{false, true},
		},
		{
			name:       "prefer auto skips official attempt",
			dl:         &fakeDownloader{subs: map[bool]string{true: autoVTT}},
			preferAuto: true,
			wantText:   "auto line",
			wantSource: SourceAutoSubtitle,
			wantCalls:  []bool{true},
		},
		{
			name:       "prefer auto does not retry on failure",
			dl:         &fakeDownloader{fail: map[bool]bool{true: true}},
			preferAuto: true,
			wantText:   "",
			wantSource: SourceNone,
			wantCalls:  []bool{true},
		},
		{
			name:       "auto fallback fails too",
			dl:         &fakeDownloader{fail: map[bool]bool{false: true, true: true}},
			wantText:   "",
			wantSource: SourceNone,
			wantCalls:  []bool{false, true},
		},
		{
			name:       "nothing downloaded",
			dl:         &fakeDownloader{},
			wantText:   "",
			wantSource: SourceNone,
			wantCalls:  []bool{false, true},
		},
		{
			name:       "file empty after normalization",
			dl:         &fakeDownloader{subs: map[bool]string{false: "WEBVTT\n00:00:01.000 --> 00:00:04.000\n"}},
			wantText:   "",
			wantSource: SourceNone,
			wantCalls:  []bool{false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := newTestWorkspace(t)
			sp := NewSubsProvider(tt.dl, ws, false)

			transcript, source := sp.Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "en", tt.preferAuto)

			if got := transcript.Text(); got != tt.wantText {
				t.Errorf("transcript = %q, want %q", got, tt.wantText)
			}
			if source != tt.wantSource {
				t.Errorf("source = %v, want %v", source, tt.wantSource)
			}
			if len(tt.dl.calls) != len(tt.wantCalls) {
				t.Fatalf("download calls = %v, want %v", tt.dl.calls, tt.wantCalls)
			}
			for i := range tt.dl.calls {
				if tt.dl.calls[i] != tt.wantCalls[i] {
					t.Errorf("download call %d wantAuto = %t, want %t", i, tt.dl.calls[i], tt.wantCalls[i])
				}
			}
		})
	}
}

func TestSubsProviderLeavesFilesUntilRemove(t *testing.T) {
	ws := newTestWorkspace(t)
	dl := &fakeDownloader{subs: map[bool]string{false: officialVTT}}
	sp := NewSubsProvider(dl, ws, false)

	transcript, _ := sp.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "en", false)
	if transcript.Empty() {
		t.Fatal("expected transcript from official captions")
	}

	if ws.Find(ws.SubtitleStem()) == "" {
		t.Fatal("subtitle file should remain on disk after Fetch")
	}

	if removed := sp.Remove(); removed != 1 {
		t.Errorf("Remove() = %d, want 1", removed)
	}
	if got := ws.Find(ws.SubtitleStem()); got != "" {
		t.Errorf("subtitle file %q survived Remove", got)
	}
}
