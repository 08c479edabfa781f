package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix is the prefix used for temporary atomic write files.
const TempFilePrefix = "devlog-tmp-"

// writeFileAtomic replaces filename with data in one step: the bytes go to a
// temp file in the same directory, get synced, and the temp file is renamed
// over the target. Readers see either the old content or the new, never a
// partial write. The directory is synced afterwards so the rename itself
// survives a crash.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmp, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	discard := func(cause error) error {
		tmp.Close()
		os.Remove(tmpName)
		return cause
	}

	if _, err := tmp.Write(data); err != nil {
		return discard(fmt.Errorf("failed to write temp file: %w", err))
	}
	if err := tmp.Chmod(perm); err != nil {
		return discard(fmt.Errorf("failed to chmod temp file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return discard(fmt.Errorf("failed to sync temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, filename); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}

	syncDir(dir)
	return nil
}

// syncDir flushes a directory's entries to disk, making a just-renamed file
// durable. Platforms that cannot sync a directory handle are left as-is; the
// rename already succeeded.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()
	_ = d.Sync()
}
