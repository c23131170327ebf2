// Package tags drives the two external tag generators over a project tree.
//
// etags is run once per matching source file in append mode with two fixed
// regular expressions. ctags is run once, recursively, with an optional
// Clojure language mapping. Engine failures are logged and counted in the
// Summary, never returned.
package tags

import (
	"log/slog"

	"github.com/josephgoksu/cljtags/internal/options"
	"github.com/josephgoksu/cljtags/internal/shell"
	"github.com/spf13/afero"
)

// Summary describes one generator run.
type Summary struct {
	Engine options.Engine
	// TagFile is the index written, relative to the project root. It is
	// empty when the engine picks its own file name.
	TagFile string
	// Files counts the source files handed to the engine (etags only).
	Files int
	// Failed counts engine invocations that exited with an error.
	Failed int
	// Warnings counts invocations that wrote to stderr.
	Warnings int
}

// Generator produces a tag index for a project.
type Generator interface {
	Generate() Summary
}

// Config carries what both engines need.
type Config struct {
	FS        afero.Fs
	Commander shell.Commander
	// Root is the project directory; engines run with it as working dir.
	Root string
	Log  *slog.Logger

	EtagsBinary  string
	EtagsTagFile string
	CtagsBinary  string
	Filter       Filter
}

// Select returns the engine chosen by opts.
func Select(opts options.Options, cfg Config) Generator {
	if opts.Engine == options.EngineCtags {
		return &Ctags{Config: cfg, Vi: opts.Vi, Langmap: opts.Langmap}
	}
	return &Etags{Config: cfg}
}
