package project

import (
	"errors"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrNoProjectFound is returned when no project root could be detected.
var ErrNoProjectFound = errors.New("no project root found")

// Detect implements the Detector interface.
//
// For each directory from startPath up to the filesystem root:
//   - the first directory containing the build file is the project root
//   - the first directory containing .git is remembered as GitRoot
//
// If no build file is found, a .git directory makes its parent the root
// with MarkerGit. Otherwise ErrNoProjectFound is returned.
func (d *detector) Detect(startPath string) (*Context, error) {
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return nil, err
	}

	var ctx *Context
	gitRoot := ""
	for dir := absPath; ; {
		if ctx == nil && d.isFile(filepath.Join(dir, d.buildFile)) {
			ctx = &Context{RootPath: dir, MarkerType: MarkerBuildFile}
		}
		if gitRoot == "" && d.exists(filepath.Join(dir, ".git")) {
			gitRoot = dir
		}
		if ctx != nil && gitRoot != "" {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	switch {
	case ctx != nil:
		ctx.GitRoot = gitRoot
		return ctx, nil
	case gitRoot != "":
		return &Context{RootPath: gitRoot, MarkerType: MarkerGit, GitRoot: gitRoot}, nil
	default:
		return nil, ErrNoProjectFound
	}
}

func (d *detector) isFile(path string) bool {
	info, err := d.fs.Stat(path)
	return err == nil && !info.IsDir()
}

func (d *detector) exists(path string) bool {
	ok, err := afero.Exists(d.fs, path)
	return err == nil && ok
}
