package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteIfChangedCreatesAndSkips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")

	wrote, err := WriteIfChanged(path, []byte("one\n"))
	if err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if !wrote {
		t.Fatalf("expected first write to report a change")
	}

	wrote, err = WriteIfChanged(path, []byte("one\n"))
	if err != nil {
		t.Fatalf("identical write failed: %v", err)
	}
	if wrote {
		t.Fatalf("expected identical content to be skipped")
	}

	wrote, err = WriteIfChanged(path, []byte("two\n"))
	if err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if !wrote {
		t.Fatalf("expected changed content to be written")
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if string(got) != "two\n" {
		t.Fatalf("expected two, got %q", got)
	}
}

func TestWriteIfChangedLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	for _, body := range []string{"a\n", "b\n", "b\n", "c\n"} {
		if _, err := WriteIfChanged(path, []byte(body)); err != nil {
			t.Fatalf("write %q failed: %v", body, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.txt" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected only out.txt, got %v", names)
	}
}

func TestHashFileMatchesHashBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.diff")
	body := []byte("diff --git a/x b/x\n")
	if err := os.WriteFile(path, body, 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	fromFile, err := HashFile(path)
	if err != nil {
		t.Fatalf("hashing file: %v", err)
	}
	if fromBytes := HashBytes(body); fromFile != fromBytes {
		t.Fatalf("hash mismatch: file %s, bytes %s", fromFile, fromBytes)
	}
	if len(fromFile) != 16 {
		t.Fatalf("expected short hash, got %q", fromFile)
	}
}

func TestHashFileMissing(t *testing.T) {
	if _, err := HashFile(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
