// Package dispatch chooses between the clean, update and full execution
// paths of the tags command.
package dispatch

import "github.com/josephgoksu/cljtags/internal/options"

// Steps are the operations a run may perform.
type Steps struct {
	// Extract resolves and unpacks the dependency archives.
	Extract func()
	// Clean removes the scratch directory.
	Clean func()
	// Generate builds the tag index with the engine chosen by opts.
	Generate func(opts options.Options)
	// Exit terminates the process. It is only called on the update path.
	Exit func(code int)
}

// Run executes the path selected by opts.Mode.
func Run(opts options.Options, steps Steps) {
	switch opts.Mode {
	case options.ModeClean:
		steps.Clean()
	case options.ModeUpdate:
		steps.Generate(opts)
		steps.Exit(0)
	default:
		steps.Extract()
		steps.Generate(opts)
	}
}
