package fs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAcquireLock(t *testing.T) {
	t.Run("Acquire And Release", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "db.json")

		unlock, err := acquireLock(path)
		if err != nil {
			t.Fatalf("acquireLock failed: %v", err)
		}

		if _, err := os.Stat(path + ".lock"); err != nil {
			t.Fatalf("Lock file not created: %v", err)
		}

		unlock()

		if _, err := os.Stat(path + ".lock"); !os.IsNotExist(err) {
			t.Error("Lock file not removed after unlock")
		}
	})

	t.Run("Creates Missing Directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "project", ".devtrack", "logs.json")

		unlock, err := acquireLock(path)
		if err != nil {
			t.Fatalf("acquireLock in fresh folder failed: %v", err)
		}
		unlock()
	})

	t.Run("Blocks Until Released", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "db.json")

		unlock, err := acquireLock(path)
		if err != nil {
			t.Fatalf("acquireLock failed: %v", err)
		}

		acquired := make(chan struct{})
		go func() {
			second, err := acquireLock(path)
			if err != nil {
				t.Errorf("second acquireLock failed: %v", err)
				close(acquired)
				return
			}
			close(acquired)
			second()
		}()

		select {
		case <-acquired:
			t.Fatal("Second acquire succeeded while lock was held")
		case <-time.After(50 * time.Millisecond):
		}

		unlock()

		select {
		case <-acquired:
		case <-time.After(time.Second):
			t.Fatal("Second acquire never completed after release")
		}
	})
}
