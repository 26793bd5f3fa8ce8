package internal

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Workspace is a per-run scratch directory for downloaded files. Every run
// gets its own directory and token under the cache dir, so concurrent runs
// cannot collide on the fixed subtitle output name.
type Workspace struct {
	dir   string
	token string
}

// NewWorkspace creates a run-scoped directory under baseDir
func NewWorkspace(baseDir string) (*Workspace, error) {
	token := strings.Split(uuid.NewString(), "-")[0]
	dir := filepath.Join(baseDir, "run-"+token)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating workspace directory: %w", err)
	}
	return &Workspace{dir: dir, token: token}, nil
}

// Dir returns the workspace directory path
func (ws *Workspace) Dir() string {
	return ws.dir
}

// SubtitleStem is the run-unique basename (without extension) that subtitle
// downloads are written under
func (ws *Workspace) SubtitleStem() string {
	return "subs-" + ws.token
}

// OutputTemplate builds a yt-dlp output template for the given stem
func (ws *Workspace) OutputTemplate(stem string) string {
	return filepath.Join(ws.dir, stem+".%(ext)s")
}

// Find locates a non-empty file named "<stem>.<ext>" in the workspace tree.
// Matches are visited in sorted traversal order and the first non-empty one
// wins; a file of size 0 is treated as absent. Returns "" when nothing
// usable exists.
func (ws *Workspace) Find(stem string) string {
	for _, path := range ws.matches(stem) {
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			continue
		}
		return path
	}
	return ""
}

// RemoveMatching deletes all files named "<stem>.<ext>" and reports how
// many were removed
func (ws *Workspace) RemoveMatching(stem string) int {
	removed := 0
	for _, path := range ws.matches(stem) {
		if err := os.Remove(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove file %s: %v\n", path, err)
			continue
		}
		removed++
	}
	return removed
}

// Remove deletes the workspace directory and everything in it
func (ws *Workspace) Remove() error {
	return os.RemoveAll(ws.dir)
}

func (ws *Workspace) matches(stem string) []string {
	var found []string
	_ = filepath.WalkDir(ws.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), stem+".") {
			found = append(found, path)
		}
		return nil
	})
	sort.Strings(found)
	return found
}

// CleanupRunDirs removes leftover run-* workspace directories under baseDir.
// Subtitle files are deliberately left behind by acquisition, so this is the
// explicit cleanup operation callers opt into.
func CleanupRunDirs(baseDir string) (int, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading cache directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "run-") {
			continue
		}
		path := filepath.Join(baseDir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove workspace %s: %v\n", path, err)
			continue
		}
		removed++
	}
	return removed, nil
}
