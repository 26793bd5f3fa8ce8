package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws, err := NewWorkspace(t.TempDir())
	if err != nil {
		t.Fatalf("NewWorkspace() error = %v", err)
	}
	t.Cleanup(func() { _ = ws.Remove() })
	return ws
}

func TestWorkspaceLayout(t *testing.T) {
	base := t.TempDir()
	ws, err := NewWorkspace(base)
	if err != nil {
		t.Fatalf("NewWorkspace() error = %v", err)
	}
	defer func() { _ = ws.Remove() }()

	if info, err := os.Stat(ws.Dir()); err != nil || !info.IsDir() {
		t.Fatalf("workspace dir %q not created: %v", ws.Dir(), err)
	}
	if !strings.HasPrefix(filepath.Base(ws.Dir()), "run-") {
		t.Errorf("workspace dir %q missing run- prefix", ws.Dir())
	}
	if !strings.HasPrefix(ws.SubtitleStem(), "subs-") {
		t.Errorf("subtitle stem %q missing subs- prefix", ws.SubtitleStem())
	}
	got := ws.OutputTemplate(ws.SubtitleStem())
	if !strings.HasSuffix(got, ".%(ext)s") || !strings.HasPrefix(got, ws.Dir()) {
		t.Errorf("OutputTemplate() = %q, want path under %q ending in .%%(ext)s", got, ws.Dir())
	}

	other, err := NewWorkspace(base)
	if err != nil {
		t.Fatalf("NewWorkspace() error = %v", err)
	}
	defer func() { _ = other.Remove() }()
	if ws.SubtitleStem() == other.SubtitleStem() {
		t.Error("two workspaces produced the same subtitle stem")
	}
}

func TestWorkspaceFind(t *testing.T) {
	ws := newTestWorkspace(t)
	stem := ws.SubtitleStem()

	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(ws.Dir(), name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if got := ws.Find(stem); got != "" {
		t.Errorf("Find() on empty workspace = %q, want \"\"", got)
	}

	// a zero-byte artifact counts as absent
	write(stem+".en.vtt", "")
	if got := ws.Find(stem); got != "" {
		t.Errorf("Find() matched zero-byte file %q", got)
	}

	write(stem+".en.vtt", "WEBVTT\nHello")
	got := ws.Find(stem)
	if filepath.Base(got) != stem+".en.vtt" {
		t.Errorf("Find() = %q, want %q", got, stem+".en.vtt")
	}

	// deterministic: lexicographically first match wins
	write(stem+".en.srt", "Hello")
	got = ws.Find(stem)
	if filepath.Base(got) != stem+".en.srt" {
		t.Errorf("Find() = %q, want sorted first match %q", got, stem+".en.srt")
	}

	// other runs' files never match
	write("subs-other.en.vtt", "Hello")
	got = ws.Find(stem)
	if strings.Contains(got, "subs-other") {
		t.Errorf("Find() matched foreign stem: %q", got)
	}
}

func TestWorkspaceRemoveMatching(t *testing.T) {
	ws := newTestWorkspace(t)
	stem := ws.SubtitleStem()

	for _, name := range []string{stem + ".en.vtt", stem + ".en.srt", "keep.txt"} {
		if err := os.WriteFile(filepath.Join(ws.Dir(), name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if removed := ws.RemoveMatching(stem); removed != 2 {
		t.Errorf("RemoveMatching() = %d, want 2", removed)
	}

	entries, err := os.ReadDir(ws.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "keep.txt" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("after RemoveMatching remaining = %v, want [keep.txt]", names)
	}
}

func TestCleanupRunDirs(t *testing.T) {
	base := t.TempDir()

	ws, err := NewWorkspace(base)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(ws.Dir(), "leftover.mp4"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	unrelated := filepath.Join(base, "transcripts")
	if err := os.MkdirAll(unrelated, 0o755); err != nil {
		t.Fatal(err)
	}

	removed, err := CleanupRunDirs(base)
	if err != nil {
		t.Fatalf("CleanupRunDirs() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("CleanupRunDirs() = %d, want 1", removed)
	}

	if _, err := os.Stat(ws.Dir()); !os.IsNotExist(err) {
		t.Errorf("run dir %q survived cleanup", ws.Dir())
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Errorf("unrelated dir removed: %v", err)
	}
}
