// Package extract unpacks dependency archives into the scratch directory.
package extract

import (
	"log/slog"
	"strings"

	"github.com/josephgoksu/cljtags/internal/scratch"
	"github.com/josephgoksu/cljtags/internal/shell"
	"github.com/spf13/afero"
)

// Report summarises one extraction batch.
type Report struct {
	// Aborted is set when the scratch directory could not be created and
	// no archive was attempted.
	Aborted   bool
	Extracted []string
	Failed    []string
}

// Extractor runs the archive tool once per archive inside Dir.
type Extractor struct {
	FS        afero.Fs
	Commander shell.Commander
	// Dir is the scratch directory, also the working directory of Command.
	Dir string
	// Command is the extraction program and its fixed arguments. The archive
	// path is appended last.
	Command []string
	Log     *slog.Logger
}

// Extract unpacks every archive in order. A failing archive is logged with
// its error output and skipped; it never stops the batch.
func (e *Extractor) Extract(archives []string) Report {
	if err := scratch.Ensure(e.FS, e.Dir); err != nil {
		e.Log.Warn("could not create scratch directory, skipping extraction", "dir", e.Dir, "error", err)
		return Report{Aborted: true}
	}

	name, fixed, err := shell.Split(e.Command)
	if err != nil {
		e.Log.Warn("no extraction command configured, skipping extraction", "error", err)
		return Report{Aborted: true}
	}

	var report Report
	for _, archive := range archives {
		args := append(append([]string(nil), fixed...), archive)
		res, err := e.Commander.Run(e.Dir, name, args...)
		if err != nil {
			e.Log.Warn("failed to extract archive",
				"archive", archive,
				"stderr", strings.TrimSpace(res.Stderr),
				"error", err)
			report.Failed = append(report.Failed, archive)
			continue
		}
		e.Log.Debug("extracted archive", "archive", archive)
		report.Extracted = append(report.Extracted, archive)
	}

	e.Log.Info("dependency extraction finished",
		"dir", e.Dir,
		"extracted", len(report.Extracted),
		"failed", len(report.Failed))
	return report
}
