package tags

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// VisitFunc is called once per filesystem entry.
type VisitFunc func(path string, info os.FileInfo)

// WalkPostOrder visits root and everything below it depth first. The
// contents of a directory, sorted by name, are visited before the directory
// itself. Unreadable directories are logged and their contents skipped.
func WalkPostOrder(fs afero.Fs, root string, log *slog.Logger, visit VisitFunc) {
	info, err := fs.Stat(root)
	if err != nil {
		log.Warn("cannot walk project root", "dir", root, "error", err)
		return
	}
	walk(fs, root, info, log, visit)
}

func walk(fs afero.Fs, path string, info os.FileInfo, log *slog.Logger, visit VisitFunc) {
	if info.IsDir() {
		entries, err := afero.ReadDir(fs, path)
		if err != nil {
			log.Warn("cannot read directory", "dir", path, "error", err)
		}
		for _, entry := range entries {
			walk(fs, filepath.Join(path, entry.Name()), entry, log, visit)
		}
	}
	visit(path, info)
}
