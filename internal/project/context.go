// Package project locates the root of a Leiningen project.
//
// Detection walks up from a starting directory and stops at the first
// directory holding the build descriptor. A .git directory further up is
// recorded so callers can tell a nested project from a standalone one.
package project

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// MarkerType represents the type of project marker that was detected.
type MarkerType int

const (
	// MarkerNone indicates no project marker was found.
	MarkerNone MarkerType = iota

	// MarkerBuildFile indicates the build descriptor (project.clj) was found.
	MarkerBuildFile

	// MarkerGit indicates only a .git directory was found.
	MarkerGit
)

// String returns a human-readable name for the marker type.
func (m MarkerType) String() string {
	switch m {
	case MarkerNone:
		return "none"
	case MarkerBuildFile:
		return "build file"
	case MarkerGit:
		return ".git"
	default:
		return "unknown"
	}
}

// Context contains information about the detected project boundary.
type Context struct {
	// RootPath is the absolute path to the detected project root.
	RootPath string

	// MarkerType indicates which marker was used to identify the project root.
	MarkerType MarkerType

	// GitRoot is the absolute path to the nearest directory holding .git at
	// or above RootPath. Empty if none was found.
	GitRoot string
}

// IsNested reports whether the project lives below its repository root.
func (c *Context) IsNested() bool {
	return c.GitRoot != "" && c.GitRoot != c.RootPath
}

// RelativeGitPath returns the path from GitRoot to RootPath, or "." when
// they are equal or either is unknown.
func (c *Context) RelativeGitPath() string {
	if c.GitRoot == "" || c.RootPath == "" || c.GitRoot == c.RootPath {
		return "."
	}
	rel, err := filepath.Rel(c.GitRoot, c.RootPath)
	if err != nil {
		return "."
	}
	return rel
}

// Detector defines the interface for project detection.
// This abstraction allows for easy testing with mock filesystems.
type Detector interface {
	// Detect finds the project root starting from the given path.
	Detect(startPath string) (*Context, error)
}

// detector implements Detector using an afero filesystem.
type detector struct {
	fs        afero.Fs
	buildFile string
}

// NewDetector creates a new Detector looking for buildFile on fs.
// Use afero.NewOsFs() for real filesystem operations,
// or afero.NewMemMapFs() for testing.
func NewDetector(fs afero.Fs, buildFile string) Detector {
	return &detector{fs: fs, buildFile: buildFile}
}
