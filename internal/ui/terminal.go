package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ConfigureOutput drops styling when w is not a terminal or NO_COLOR is set,
// so redirected summaries stay plain text.
func ConfigureOutput(w io.Writer) {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor || !IsTerminal(w) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
