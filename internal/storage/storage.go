// Package storage provides atomic file writes for files agentkit owns or
// edits in place: the git-credentials store, config files and report output.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteAtomic writes data to path with the given permissions.
// It ensures the parent directory exists, writes to a temp file in the
// same directory, then renames it over path. Readers see either the old
// or the new content, never a partial file.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// WriteNew writes data to path atomically, failing if path already exists.
func WriteNew(path string, data []byte, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	return WriteAtomic(path, data, perm)
}
