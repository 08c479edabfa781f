package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const lockRetryDelay = 10 * time.Millisecond

// acquireLock takes an exclusive cross-process lock guarding a store file.
// It blocks until the lock is acquired and returns the unlock function.
//
// The lock is a plain file created with O_EXCL: portable, and safe for the
// short read-modify-write cycles this CLI performs. Concurrent invocations
// serialize on it instead of interleaving writes.
func acquireLock(path string) (func(), error) {
	lockPath := path + ".lock"

	// The lock guards a store file that may not exist yet; the very first
	// mutation in a fresh folder takes the lock before anything has created
	// the directory.
	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL, 0666)
		if err == nil {
			f.Close()
			return func() {
				os.Remove(lockPath)
			}, nil
		}

		if os.IsExist(err) {
			// Lock held by another invocation. Spin with a small delay.
			time.Sleep(lockRetryDelay)
			continue
		}

		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
}
