package fsio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadText_Missing(t *testing.T) {
	content, ok, err := ReadText(filepath.Join(t.TempDir(), "absent.txt"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if ok || content != "" {
		t.Errorf("expected (\"\", false), got (%q, %v)", content, ok)
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "out.txt")
	if err := WriteText(path, "hello\nworld\n"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	content, ok, err := ReadText(path)
	if err != nil || !ok {
		t.Fatalf("ReadText: ok=%v err=%v", ok, err)
	}
	if content != "hello\nworld\n" {
		t.Errorf("content mismatch: %q", content)
	}
}

func TestWriteText_OverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	if err := WriteText(path, "first"); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteText(path, "second"); err != nil {
		t.Fatalf("second write: %v", err)
	}

	content, _, err := ReadText(path)
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if content != "second" {
		t.Errorf("expected overwrite, got %q", content)
	}

	// No temp files may survive.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}
