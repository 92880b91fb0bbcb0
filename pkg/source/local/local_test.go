package local

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fromsvg/svgraster/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.svg", "<svg/>")
	writeFile(t, dir, "a.SVG", "<svg/>")
	writeFile(t, dir, "notes.txt", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "sub.svg"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := List(dir)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(files))
	}
	// Sorted by name, case-insensitive extension match
	if files[0].Name != "a.SVG" || files[1].Name != "b.svg" {
		t.Errorf("unexpected order: %s, %s", files[0].Name, files[1].Name)
	}
	if files[0].Path != filepath.Join(dir, "a.SVG") {
		t.Errorf("unexpected path: %s", files[0].Path)
	}
}

func TestListMissingDir(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("missing directory should fail")
	}
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("code = %s, want NOT_FOUND", errors.GetCode(err))
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "icon.svg", "<svg viewBox='0 0 1 1'/>")

	data, hash, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if string(data) != "<svg viewBox='0 0 1 1'/>" {
		t.Error("unexpected file contents")
	}
	if len(hash) != 64 {
		t.Errorf("hash length = %d, want 64", len(hash))
	}

	// Same content, same hash; changed content, changed hash.
	_, hash2, _ := Load(path)
	if hash != hash2 {
		t.Error("hash should be stable for unchanged content")
	}
	writeFile(t, dir, "icon.svg", "<svg viewBox='0 0 2 2'/>")
	_, hash3, _ := Load(path)
	if hash == hash3 {
		t.Error("hash should change when content changes")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.svg"))
	if err == nil {
		t.Fatal("missing file should fail")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("code = %s, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}
