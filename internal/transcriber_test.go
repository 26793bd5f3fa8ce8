package internal

import (
	"context"
	"errors"
	"os"
	"slices"
	"strings"
	"testing"
	"time"
)

// fakeRunner simulates ffmpeg/ffprobe: ffmpeg invocations create their last
// argument as a file, ffprobe reports a canned codec. Like real ffmpeg with
// -y, the output file is created even when the invocation then fails.
type fakeRunner struct {
	codec       string
	failExtract bool
	failConvert bool
	cmds        [][]string
}

func (r *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.cmds = append(r.cmds, append([]string{name}, args...))

	switch name {
	case "ffprobe":
		return []byte(r.codec + "\n"), nil
	case "ffmpeg":
		out := args[len(args)-1]
		if err := os.WriteFile(out, []byte("audio-bytes"), 0o644); err != nil {
			return nil, err
		}
		convert := slices.Contains(args, "-acodec")
		if (convert && r.failConvert) || (!convert && r.failExtract) {
			return []byte("conversion failed"), errors.New("exit status 1")
		}
		return nil, nil
	default:
		return nil, errors.New("unexpected command: " + name)
	}
}

func (r *fakeRunner) ran(name string, arg string) bool {
	for _, cmd := range r.cmds {
		if cmd[0] == name && slices.Contains(cmd[1:], arg) {
			return true
		}
	}
	return false
}

type fakeSTT struct {
	text  string
	err   error
	calls []string
}

func (f *fakeSTT) Transcribe(_ context.Context, audioFile string) (string, error) {
	f.calls = append(f.calls, audioFile)
	return f.text, f.err
}

func newTestTranscriber(t *testing.T, dl *fakeDownloader, runner *fakeRunner, stt *fakeSTT, maxDuration time.Duration) (*Transcriber, *Workspace) {
	t.Helper()
	ws := newTestWorkspace(t)
	audio := NewAudio(runner, false)
	return NewTranscriber(dl, audio, stt, ws, maxDuration, false), ws
}

func requireEmptyWorkspace(t *testing.T, ws *Workspace) {
	t.Helper()
	entries, err := os.ReadDir(ws.Dir())
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		t.Errorf("leftover file in workspace: %s", e.Name())
	}
}

func TestTranscriberSuccess(t *testing.T) {
	dl := &fakeDownloader{
		meta:  &VideoMetadata{ID: "dQw4w9WgXcQ", Duration: 120},
		video: "video-bytes",
	}
	runner := &fakeRunner{codec: "aac"}
	stt := &fakeSTT{text: "spoken words"}
	tr, ws := newTestTranscriber(t, dl, runner, stt, 5*time.Minute)

	got := tr.TranscribeFromURL(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")

	if got != "spoken words" {
		t.Errorf("TranscribeFromURL() = %q, want %q", got, "spoken words")
	}
	// aac is not pcm_s16le, so the WAV conversion must run and Whisper must
	// receive the converted file
	if !runner.ran("ffmpeg", "-acodec") {
		t.Error("expected PCM conversion for non-pcm codec")
	}
	if len(stt.calls) != 1 || !strings.HasSuffix(stt.calls[0], ".wav") {
		t.Errorf("Whisper input = %v, want single .wav file", stt.calls)
	}
	if !strings.HasPrefix(dl.lastVideoTemplate, ws.Dir()) {
		t.Errorf("video download template %q outside workspace %q", dl.lastVideoTemplate, ws.Dir())
	}
	requireEmptyWorkspace(t, ws)
}

func TestTranscriberSkipsConversionForPCM(t *testing.T) {
	dl := &fakeDownloader{
		meta:  &VideoMetadata{ID: "dQw4w9WgXcQ", Duration: 120},
		video: "video-bytes",
	}
	runner := &fakeRunner{codec: "pcm_s16le"}
	stt := &fakeSTT{text: "spoken words"}
	tr, ws := newTestTranscriber(t, dl, runner, stt, 5*time.Minute)

	got := tr.TranscribeFromURL(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")

	if got != "spoken words" {
		t.Errorf("TranscribeFromURL() = %q, want %q", got, "spoken words")
	}
	if runner.ran("ffmpeg", "-acodec") {
		t.Error("PCM input should not be converted again")
	}
	if len(stt.calls) != 1 || !strings.HasSuffix(stt.calls[0], ".m4a") {
		t.Errorf("Whisper input = %v, want the extracted .m4a", stt.calls)
	}
	requireEmptyWorkspace(t, ws)
}

func TestTranscriberRejectsLongVideoBeforeDownload(t *testing.T) {
	dl := &fakeDownloader{
		meta: &VideoMetadata{ID: "dQw4w9WgXcQ", Duration: 3600},
	}
	tr, ws := newTestTranscriber(t, dl, &fakeRunner{}, &fakeSTT{}, 5*time.Minute)

	got := tr.TranscribeFromURL(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")

	if got != "" {
		t.Errorf("TranscribeFromURL() = %q, want \"\"", got)
	}
	if dl.probeCalls != 1 {
		t.Errorf("ProbeMetadata called %d times, want 1", dl.probeCalls)
	}
	if dl.videoCalls != 0 {
		t.Errorf("DownloadVideo called %d times for over-length video", dl.videoCalls)
	}
	requireEmptyWorkspace(t, ws)
}

func TestTranscriberFailuresCollapseToEmpty(t *testing.T) {
	meta := &VideoMetadata{ID: "dQw4w9WgXcQ", Duration: 120}

	tests := []struct {
		name   string
		dl     *fakeDownloader
		runner *fakeRunner
		stt    *fakeSTT
	}{
		{
			name:   "metadata probe fails",
			dl:     &fakeDownloader{metaErr: errors.New("unreachable")},
			runner: &fakeRunner{codec: "aac"},
			stt:    &fakeSTT{text: "x"},
		},
		{
			name:   "video download fails",
			dl:     &fakeDownloader{meta: meta, videoErr: ErrDownloadFailed},
			runner: &fakeRunner{codec: "aac"},
			stt:    &fakeSTT{text: "x"},
		},
		{
			name:   "audio extraction fails leaving partial output",
			dl:     &fakeDownloader{meta: meta, video: "v"},
			runner: &fakeRunner{codec: "aac", failExtract: true},
			stt:    &fakeSTT{text: "x"},
		},
		{
			name:   "pcm conversion fails leaving partial output",
			dl:     &fakeDownloader{meta: meta, video: "v"},
			runner: &fakeRunner{codec: "aac", failConvert: true},
			stt:    &fakeSTT{text: "x"},
		},
		{
			name:   "whisper call fails",
			dl:     &fakeDownloader{meta: meta, video: "v"},
			runner: &fakeRunner{codec: "aac"},
			stt:    &fakeSTT{err: errors.New("api error")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, ws := newTestTranscriber(t, tt.dl, tt.runner, tt.stt, 5*time.Minute)

			got := tr.TranscribeFromURL(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")

			if got != "" {
				t.Errorf("TranscribeFromURL() = %q, want \"\"", got)
			}
			requireEmptyWorkspace(t, ws)
		})
	}
}

func TestHostLabel(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=abc", "www.youtube.com"},
		{"https://youtu.be/abc", "youtu.be"},
		{"not a url", "video"},
		{"", "video"},
	}
	for _, tt := range tests {
		if got := hostLabel(tt.url); got != tt.want {
			t.Errorf("hostLabel(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
