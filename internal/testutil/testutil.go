// Package testutil provides shared fixtures: sample Doxygen sites written to
// temporary directories.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/doxnav/internal/storage"
)

// WriteFiles writes files (relative path → content) under dir.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// TestDocs creates a temporary docs directory holding the WiMOD navigation
// tree and its fragments.
func TestDocs(t *testing.T) (string, storage.Provider) {
	t.Helper()
	return docsWith(t, WiMODFiles())
}

// TestSmallDocs creates a temporary docs directory holding a small site whose
// flat index matches its fully expanded tree and whose pages carry every
// anchor the tree references.
func TestSmallDocs(t *testing.T) (string, storage.Provider) {
	t.Helper()
	return docsWith(t, SmallFiles())
}

func docsWith(t *testing.T, files map[string]string) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	WriteFiles(t, dir, files)
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}
