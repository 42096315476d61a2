package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestBundle(t *testing.T) {
	archive, err := Bundle([]Asset{
		{Filename: "hero_facade.png", MIME: "image/png", Data: []byte("hero-bytes")},
		{Filename: "interior_kitchen.png", MIME: "image/png", Data: []byte("kitchen-bytes")},
		{MIME: "image/png", Data: []byte("nameless, skipped")},
	})
	if err != nil {
		t.Fatalf("Bundle: %v", err)
	}
	if len(archive) == 0 {
		t.Fatalf("archive is empty")
	}

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("got %d entries, want 2", len(zr.File))
	}

	want := map[string]string{
		"hero_facade.png":      "hero-bytes",
		"interior_kitchen.png": "kitchen-bytes",
	}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		if string(data) != want[f.Name] {
			t.Fatalf("%s: got %q, want %q", f.Name, data, want[f.Name])
		}
	}
}

func TestBundleEmpty(t *testing.T) {
	archive, err := Bundle(nil)
	if err != nil {
		t.Fatalf("Bundle: %v", err)
	}
	if _, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive))); err != nil {
		t.Fatalf("empty archive should still be valid: %v", err)
	}
}
