package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteAndReadRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	key, err := store.Write(context.Background(), "job-1/hero_facade.png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if key != "job-1/hero_facade.png" {
		t.Fatalf("key = %q", key)
	}

	data, err := store.Read(context.Background(), key)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("data = %q", data)
	}
	if !store.Exists(key) {
		t.Fatalf("Exists should report true")
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewFileStore(dir)
	if _, err := store.Write(context.Background(), "job-2/a.png", []byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "job-2"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestReadMissingKey(t *testing.T) {
	store, _ := NewFileStore(t.TempDir())
	_, err := store.Read(context.Background(), "job-x/missing.png")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSanitizeKeyRejectsTraversal(t *testing.T) {
	store, _ := NewFileStore(t.TempDir())
	for _, key := range []string{"../escape.png", "..", "job/../../escape.png", "a/../..", "", "  "} {
		if _, err := store.Write(context.Background(), key, []byte("x")); err == nil {
			t.Fatalf("key %q should be rejected", key)
		}
	}

	// A leading slash is stripped rather than rejected.
	key, err := store.Write(context.Background(), "/job-3/b.png", []byte("x"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if key != "job-3/b.png" {
		t.Fatalf("key = %q, want job-3/b.png", key)
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	store, _ := NewFileStore(t.TempDir())
	if err := store.Remove("job-9/none.png"); err != nil {
		t.Fatalf("Remove missing: %v", err)
	}
}
