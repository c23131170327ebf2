/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

import (
	"path/filepath"
	"time"
)

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose  bool          `mapstructure:"verbose" yaml:"verbose"`
	Config   string        `mapstructure:"config" yaml:"config,omitempty"`
	IndexDir string        `mapstructure:"indexDir" yaml:"indexDir" validate:"required"`
	Project  ProjectConfig `mapstructure:"project" yaml:"project" validate:"required"`
	Deps     DepsConfig    `mapstructure:"deps" yaml:"deps"`
	Extract  ExtractConfig `mapstructure:"extract" yaml:"extract" validate:"required"`
	Etags    EtagsConfig   `mapstructure:"etags" yaml:"etags" validate:"required"`
	Ctags    CtagsConfig   `mapstructure:"ctags" yaml:"ctags" validate:"required"`
	Watch    WatchConfig   `mapstructure:"watch" yaml:"watch"`

	// CrashLogDir is the directory crash_logs/ is created in. Empty means
	// the OS temp dir.
	CrashLogDir string `mapstructure:"crashLogDir" yaml:"crashLogDir,omitempty"`
}

// ProjectConfig describes the Leiningen project being indexed.
type ProjectConfig struct {
	Root        string `mapstructure:"root" yaml:"root" validate:"required"`
	BuildFile   string `mapstructure:"buildFile" yaml:"buildFile" validate:"required"`
	MetadataDir string `mapstructure:"metadataDir" yaml:"metadataDir" validate:"required"`

	// Detected is set when Root was found by walking up from the working
	// directory rather than configured.
	Detected *Detection `mapstructure:"-" yaml:"detected,omitempty"`
}

// Detection records how the project root was located.
type Detection struct {
	Marker  string `yaml:"marker"`
	GitRoot string `yaml:"gitRoot,omitempty"`
	// RepoPath is the project root relative to GitRoot.
	RepoPath string `yaml:"repoPath,omitempty"`
	Nested   bool   `yaml:"nested"`
}

// DepsConfig controls how the dependency archive list is obtained.
// A non-empty Archives list takes precedence over Command.
type DepsConfig struct {
	Command  []string `mapstructure:"command" yaml:"command"`
	Archives []string `mapstructure:"archives" yaml:"archives,omitempty"`
}

// ExtractConfig holds the archive extraction command. The archive path is
// appended as the last argument.
type ExtractConfig struct {
	Command []string `mapstructure:"command" yaml:"command" validate:"required,min=1"`
}

// EtagsConfig configures the line based indexer.
type EtagsConfig struct {
	Binary  string `mapstructure:"binary" yaml:"binary" validate:"required"`
	TagFile string `mapstructure:"tagFile" yaml:"tagFile" validate:"required"`
}

// CtagsConfig configures the language aware indexer.
type CtagsConfig struct {
	Binary string `mapstructure:"binary" yaml:"binary" validate:"required"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// IndexPath returns the scratch directory, resolved against the project root
// when relative.
func (c *AppConfig) IndexPath() string {
	if c.IndexDir == "" || filepath.IsAbs(c.IndexDir) {
		return c.IndexDir
	}
	return filepath.Join(c.Project.Root, c.IndexDir)
}
