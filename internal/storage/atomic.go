// ABOUTME: Atomic file replacement used for every persisted write.
// ABOUTME: Writes to a temp file in the target directory, syncs, then renames over the target.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeHooks lets tests interrupt a write between the temp file and the rename.
type writeHooks struct {
	beforeRename func(tmpPath string) error
}

// atomicWrite replaces path with data. The target is either left untouched
// or fully replaced; the temp file never survives a failure.
func atomicWrite(path string, data []byte, perm os.FileMode, hooks *writeHooks) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if hooks != nil && hooks.beforeRename != nil {
		if err = hooks.beforeRename(tmpPath); err != nil {
			return err
		}
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	// Best effort: persist the rename itself.
	if d, derr := os.Open(dir); derr == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}
