package blob_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipflow/internal/blob"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("stream aborted")
}

func TestSaveWritesBlob(t *testing.T) {
	store, err := blob.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	written, err := store.Save("clip.mp4", strings.NewReader("video-bytes"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if written != int64(len("video-bytes")) {
		t.Fatalf("unexpected byte count: %d", written)
	}

	file, err := store.Open("clip.mp4")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if string(content) != "video-bytes" {
		t.Fatalf("unexpected content: %q", content)
	}
}

func TestSaveAbortedStreamLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	store, err := blob.NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if _, err := store.Save("clip.mp4", failingReader{}); err == nil {
		t.Fatal("expected error from aborted stream")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty directory after abort, found %d entries", len(entries))
	}
}

func TestCleanNameRejectsTraversal(t *testing.T) {
	for _, name := range []string{"", "  ", ".", "..", "../../etc/passwd"} {
		cleaned, err := blob.CleanName(name)
		if name == "../../etc/passwd" {
			if err != nil || cleaned != "passwd" {
				t.Fatalf("expected traversal reduced to base, got %q err=%v", cleaned, err)
			}
			continue
		}
		if err == nil {
			t.Fatalf("expected error for %q, got %q", name, cleaned)
		}
	}
}

func TestPathStaysInsideStore(t *testing.T) {
	dir := t.TempDir()
	store, err := blob.NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	path, err := store.Path("nested/dir/clip.mp4")
	if err != nil {
		t.Fatalf("Path failed: %v", err)
	}
	if path != filepath.Join(dir, "clip.mp4") {
		t.Fatalf("expected base name only, got %q", path)
	}
}

func TestRemoveMissingBlobIsNotAnError(t *testing.T) {
	store, err := blob.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := store.Remove("absent.mp4"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
}
