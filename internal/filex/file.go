// Package filex contains file-system helpers for uploads, reports and
// backups.
package filex

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// EnsureSubdDir creates dirName under the current working directory (if
// missing) and returns its absolute path.
func EnsureSubdDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// RemoveAfter deletes path once d has elapsed. A file that is already gone
// is not an error; any other failure is passed to onErr when it is set.
// The returned timer may be stopped to cancel the removal.
func RemoveAfter(path string, d time.Duration, onErr func(error)) *time.Timer {
	return time.AfterFunc(d, func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) && onErr != nil {
			onErr(err)
		}
	})
}

// CopyFile copies src to dst, creating or truncating dst.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy: %w", err)
	}
	return out.Close()
}

// TimestampedName returns prefix_YYYYMMDD_HHMMSS.ext for t.
func TimestampedName(prefix, ext string, t time.Time) string {
	return fmt.Sprintf("%s_%s%s", prefix, t.Format("20060102_150405"), ext)
}
