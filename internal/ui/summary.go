package ui

import (
	"fmt"
	"io"

	"github.com/josephgoksu/cljtags/internal/extract"
	"github.com/josephgoksu/cljtags/internal/tags"
)

// PrintExtractReport writes a one line summary of an extraction batch.
func PrintExtractReport(w io.Writer, dir string, r extract.Report) {
	switch {
	case r.Aborted:
		fmt.Fprintf(w, "%s extraction skipped: %s is not usable\n", Icon("!", StyleWarning), dir)
	case len(r.Failed) > 0:
		fmt.Fprintf(w, "%s extracted %d archives into %s, %s\n",
			Icon("!", StyleWarning), len(r.Extracted), dir,
			StyleWarning.Render(fmt.Sprintf("%d failed", len(r.Failed))))
	default:
		fmt.Fprintf(w, "%s extracted %d archives into %s\n", Icon("✓", StyleSuccess), len(r.Extracted), dir)
	}
}

// PrintTagSummary writes a one line summary of a generator run.
func PrintTagSummary(w io.Writer, s tags.Summary) {
	icon := Icon("✓", StyleSuccess)
	if s.Failed > 0 {
		icon = Icon("!", StyleWarning)
	}

	target := s.TagFile
	if target == "" {
		target = "engine default"
	}
	detail := StyleSubtle.Render(fmt.Sprintf("(%s)", target))

	if s.Files > 0 || s.TagFile != "" {
		fmt.Fprintf(w, "%s %s indexed %d files %s", icon, s.Engine, s.Files, detail)
	} else {
		fmt.Fprintf(w, "%s %s indexed the project tree %s", icon, s.Engine, detail)
	}
	if s.Failed > 0 {
		fmt.Fprintf(w, " %s", StyleWarning.Render(fmt.Sprintf("%d failed", s.Failed)))
	}
	fmt.Fprintln(w)
}

// PrintClean writes the outcome of removing the scratch directory. existed
// tells whether there was anything to remove.
func PrintClean(w io.Writer, dir string, existed, ok bool) {
	if ok && !existed {
		fmt.Fprintf(w, "%s nothing to clean at %s\n", Icon("✓", StyleSuccess), dir)
		return
	}
	if ok {
		fmt.Fprintf(w, "%s cleaned %s\n", Icon("✓", StyleSuccess), dir)
		return
	}
	fmt.Fprintf(w, "%s could not clean %s\n", Icon("✗", StyleError), dir)
}
