package tags

import (
	"strings"

	"github.com/josephgoksu/cljtags/internal/options"
	"github.com/josephgoksu/cljtags/internal/shell"
)

// Output format flags. Exactly one is always passed.
const (
	FlagViFormat    = "--format=2"
	FlagEmacsFormat = "-e"
)

// Ctags is the language aware generator.
type Ctags struct {
	Config
	// Vi selects vi-compatible output; otherwise emacs style is requested.
	Vi bool
	// Langmap appends the built-in Clojure definition. When false the
	// user's own ctags configuration applies.
	Langmap bool
}

// Args returns the complete ctags argument vector.
func (c *Ctags) Args() []string {
	args := []string{"-R"}
	if c.Vi {
		args = append(args, FlagViFormat)
	} else {
		args = append(args, FlagEmacsFormat)
	}
	if c.Langmap {
		args = append(args, LangmapArgs()...)
	}
	return append(args, ".")
}

// Generate runs ctags once over the whole root. The engine owns its output
// file, so nothing is deleted beforehand.
func (c *Ctags) Generate() Summary {
	summary := Summary{Engine: options.EngineCtags}

	res, err := c.Commander.Run(c.Root, c.CtagsBinary, c.Args()...)
	if stderr := strings.TrimSpace(res.Stderr); stderr != "" {
		summary.Warnings++
		c.Log.Warn("ctags reported a problem", "stderr", stderr)
	}
	if err != nil {
		summary.Failed++
		c.Log.Warn("ctags failed", "exitCode", shell.ExitCode(err), "error", err)
	}

	c.Log.Info("tag generation finished",
		"engine", summary.Engine.String(),
		"vi", c.Vi,
		"langmap", c.Langmap,
		"failed", summary.Failed)
	return summary
}
