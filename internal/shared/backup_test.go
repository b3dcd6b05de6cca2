package shared

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBackupDatabase(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)

	t.Run("BackupPath", func(t *testing.T) {
		got := BackupPath("/data/songs.db", now)
		want := "/data/songs.db.backup_2024-03-09_14-05-07"
		if got != want {
			t.Errorf("BackupPath() = %s, want %s", got, want)
		}
	})

	t.Run("copies bytes", func(t *testing.T) {
		dir := t.TempDir()
		storePath := filepath.Join(dir, "songs.db")
		content := []byte("SQLite format 3\x00 not really a database")
		if err := os.WriteFile(storePath, content, 0644); err != nil {
			t.Fatalf("failed to write store: %v", err)
		}

		dest, err := BackupDatabase(storePath, now)
		if err != nil {
			t.Fatalf("BackupDatabase failed: %v", err)
		}

		if dest != BackupPath(storePath, now) {
			t.Errorf("unexpected backup path %s", dest)
		}

		got, err := os.ReadFile(dest)
		if err != nil {
			t.Fatalf("failed to read backup: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Error("backup content differs from store")
		}

		live, _ := os.ReadFile(storePath)
		if !bytes.Equal(live, content) {
			t.Error("live store was modified")
		}
	})

	t.Run("missing store", func(t *testing.T) {
		_, err := BackupDatabase(filepath.Join(t.TempDir(), "missing.db"), now)
		if !errors.Is(err, ErrStoreNotFound) {
			t.Errorf("expected ErrStoreNotFound, got %v", err)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := BackupDatabase("", now)
		if !errors.Is(err, ErrMissingStore) {
			t.Errorf("expected ErrMissingStore, got %v", err)
		}
	})

	t.Run("unwritable destination", func(t *testing.T) {
		dir := t.TempDir()
		storePath := filepath.Join(dir, "songs.db")
		if err := os.WriteFile(storePath, []byte("data"), 0644); err != nil {
			t.Fatalf("failed to write store: %v", err)
		}
		// A directory squatting on the backup name makes the copy fail.
		if err := os.Mkdir(BackupPath(storePath, now), 0755); err != nil {
			t.Fatalf("failed to create blocking directory: %v", err)
		}

		_, err := BackupDatabase(storePath, now)
		if !errors.Is(err, ErrBackupFailed) {
			t.Errorf("expected ErrBackupFailed, got %v", err)
		}
	})
}
