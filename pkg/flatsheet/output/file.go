package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// BackupSuffix is appended to the output path to name the single-generation backup.
const BackupSuffix = ".backup"

// ErrBackupFailed indicates the existing output could not be backed up;
// the output file is left untouched.
var ErrBackupFailed = errors.New("backup failed")

// BackupPath returns the backup file name for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// WriteFile replaces path with data. An existing file is first copied to
// BackupPath(path), clobbering any previous backup; if that copy fails nothing
// is written. The new content goes to a temporary file in the same directory
// that is renamed over path, so readers never observe a partial file.
func WriteFile(path string, data []byte) error {
	if err := backup(path); err != nil {
		return fmt.Errorf("%w: %v", ErrBackupFailed, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}

	return nil
}

// backup copies an existing regular file at path to its backup path.
func backup(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}

	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(BackupPath(path), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
