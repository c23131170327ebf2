package tags

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/josephgoksu/cljtags/internal/options"
)

// Regular expressions (emacs syntax) passed to etags for every file. The
// leading character is the separator, so a literal slash inside a pattern
// must be written as \/.
const (
	// DefinitionRegex captures the name introduced by any def form.
	DefinitionRegex = `/[ \t\(]*def[a-z\-]* \([a-zA-Z0-9\-!?*<>=+_\/.]+\)/\1/`
	// NamespaceRegex captures the name of an ns declaration.
	NamespaceRegex = `/[ \t\(]*ns \([a-zA-Z0-9.\-_]+\)/\1/`
)

// Etags is the line/regex based generator.
type Etags struct {
	Config
}

// Args returns the etags arguments for one file, relative to the root.
func (e *Etags) Args(file string) []string {
	return []string{
		"-a",
		"-o", e.EtagsTagFile,
		"--regex=" + DefinitionRegex,
		"--regex=" + NamespaceRegex,
		file,
	}
}

// Generate deletes the previous tag file, since etags can only append, then
// indexes every matching file found by a post-order walk of the root.
func (e *Etags) Generate() Summary {
	summary := Summary{Engine: options.EngineEtags, TagFile: e.EtagsTagFile}

	tagPath := filepath.Join(e.Root, e.EtagsTagFile)
	if err := e.FS.Remove(tagPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		e.Log.Warn("could not delete previous tag file", "file", tagPath, "error", err)
	}

	WalkPostOrder(e.FS, e.Root, e.Log, func(path string, info os.FileInfo) {
		if !e.Filter.Match(path, info) {
			return
		}
		rel, err := filepath.Rel(e.Root, path)
		if err != nil {
			rel = path
		}
		summary.Files++

		res, err := e.Commander.Run(e.Root, e.EtagsBinary, e.Args(rel)...)
		if stderr := strings.TrimSpace(res.Stderr); stderr != "" {
			summary.Warnings++
			e.Log.Warn("etags reported a problem", "file", rel, "stderr", stderr)
		}
		if err != nil {
			summary.Failed++
			e.Log.Warn("etags failed", "file", rel, "error", err)
		}
	})

	e.Log.Info("tag generation finished",
		"engine", summary.Engine.String(),
		"tagFile", summary.TagFile,
		"files", summary.Files,
		"failed", summary.Failed)
	return summary
}
