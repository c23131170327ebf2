// Package scratch manages the directory that holds extracted dependency
// sources. Its presence is the only state this tool keeps between runs.
package scratch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"
)

// ErrNotDirectory is returned when the scratch path exists but is not a directory.
var ErrNotDirectory = errors.New("scratch path is not a directory")

// Ensure creates dir and its parents if needed. It reports an error unless
// dir is a directory once the attempt is over.
func Ensure(fs afero.Fs, dir string) error {
	mkErr := fs.MkdirAll(dir, 0o755)

	info, err := fs.Stat(dir)
	if err != nil {
		if mkErr != nil {
			return fmt.Errorf("create %s: %w", dir, mkErr)
		}
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}
	return nil
}

// Exists reports whether dir is present as a directory.
func Exists(fs afero.Fs, dir string) bool {
	ok, err := afero.DirExists(fs, dir)
	return err == nil && ok
}

// Remove deletes dir and everything below it. A missing directory is a
// no-op. The outcome is only logged; Remove reports whether dir is gone.
func Remove(fs afero.Fs, dir string, log *slog.Logger) bool {
	if _, err := fs.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Info("scratch directory not present, nothing to clean", "dir", dir)
			return true
		}
		log.Warn("could not inspect scratch directory", "dir", dir, "error", err)
		return false
	}

	if err := fs.RemoveAll(dir); err != nil {
		log.Warn("failed to remove scratch directory", "dir", dir, "error", err)
		return false
	}
	log.Info("removed scratch directory", "dir", dir)
	return true
}
