// Package options turns the flat flag list accepted by the tags command into
// an explicit set of choices.
package options

// Recognised flags.
const (
	FlagClean     = "--clean"
	FlagUpdate    = "--update"
	FlagCtags     = "--ctags"
	FlagVi        = "--vi"
	FlagVim       = "--vim"
	FlagNoLangmap = "--no-langmap"
)

// Mode selects the execution path.
type Mode int

const (
	// ModeFull extracts dependencies and then generates tags.
	ModeFull Mode = iota
	// ModeClean removes the scratch directory and nothing else.
	ModeClean
	// ModeUpdate regenerates tags without extracting, then exits the process.
	ModeUpdate
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeClean:
		return "clean"
	case ModeUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Engine selects the external indexer.
type Engine int

const (
	// EngineEtags is the line/regex based indexer, run once per file.
	EngineEtags Engine = iota
	// EngineCtags is the language aware indexer, run once over the tree.
	EngineCtags
)

// String returns the program name of the engine.
func (e Engine) String() string {
	switch e {
	case EngineEtags:
		return "etags"
	case EngineCtags:
		return "ctags"
	default:
		return "unknown"
	}
}

// Options is the parsed form of the tags command arguments.
type Options struct {
	Mode   Mode
	Engine Engine
	// Vi requests vi-compatible output from ctags instead of emacs style.
	Vi bool
	// Langmap passes the built-in Clojure language definition to ctags.
	Langmap bool
	// Unknown lists arguments that matched no flag, in order.
	Unknown []string
}

// Parse interprets args. Only the first element selects the mode; engine
// flags are matched by membership anywhere in the list. Unrecognised values
// are kept in Unknown and otherwise ignored, so an unknown first element
// falls through to ModeFull.
func Parse(args []string) Options {
	opts := Options{Mode: ModeFull, Engine: EngineEtags, Langmap: true}

	if len(args) > 0 {
		switch args[0] {
		case FlagClean:
			opts.Mode = ModeClean
		case FlagUpdate:
			opts.Mode = ModeUpdate
		}
	}

	ctags := false
	for _, arg := range args {
		switch arg {
		case FlagCtags:
			ctags = true
		case FlagVi, FlagVim:
			opts.Vi = true
		case FlagNoLangmap:
			opts.Langmap = false
		case FlagClean, FlagUpdate:
		default:
			opts.Unknown = append(opts.Unknown, arg)
		}
	}

	if ctags || opts.Vi {
		opts.Engine = EngineCtags
	}
	return opts
}
