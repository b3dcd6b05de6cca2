package shared

import (
	"fmt"
	"io"
	"os"
	"time"
)

// BackupLayout is the timestamp layout appended to backup file names.
const BackupLayout = "2006-01-02_15-04-05"

// BackupPath returns the sibling path used for a backup of the store taken at now.
func BackupPath(storePath string, now time.Time) string {
	return fmt.Sprintf("%s.backup_%s", storePath, now.Format(BackupLayout))
}

// BackupDatabase copies the store byte-for-byte to [BackupPath].
//
// The live store is only read. A failed copy leaves no partial backup behind.
func BackupDatabase(storePath string, now time.Time) (string, error) {
	if err := CheckStore(storePath); err != nil {
		return "", err
	}

	src, err := os.Open(storePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackupFailed, err)
	}
	defer src.Close()

	dest := BackupPath(storePath, now)
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackupFailed, err)
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dest)
		return "", fmt.Errorf("%w: %v", ErrBackupFailed, err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(dest)
		return "", fmt.Errorf("%w: %v", ErrBackupFailed, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("%w: %v", ErrBackupFailed, err)
	}

	return dest, nil
}
