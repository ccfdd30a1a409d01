package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAtomic_CreatesParentAndSetsMode(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "creds")
	if err := WriteAtomic(path, []byte("secret\n"), 0o600); err != nil {
		t.Fatalf("WriteAtomic failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "secret\n" {
		t.Errorf("content = %q, want %q", data, "secret\n")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("mode = %o, want 600", perm)
	}
}

func TestWriteAtomic_ReplacesAndLeavesNoTemp(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "file")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteAtomic(path, []byte("new"), 0o600); err != nil {
		t.Fatalf("WriteAtomic failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("content = %q, want new", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}

func TestWriteNew_RefusesExisting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteNew(path, []byte("a"), 0o644); err != nil {
		t.Fatalf("first WriteNew failed: %v", err)
	}
	if err := WriteNew(path, []byte("b"), 0o644); err == nil {
		t.Error("second WriteNew = nil error, want already exists")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "a" {
		t.Errorf("content = %q, want a", data)
	}
}
