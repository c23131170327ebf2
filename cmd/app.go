package cmd

import (
	"errors"
	"io"
	"log/slog"

	"github.com/josephgoksu/cljtags/internal/deps"
	"github.com/josephgoksu/cljtags/internal/dispatch"
	"github.com/josephgoksu/cljtags/internal/extract"
	"github.com/josephgoksu/cljtags/internal/options"
	"github.com/josephgoksu/cljtags/internal/scratch"
	"github.com/josephgoksu/cljtags/internal/shell"
	"github.com/josephgoksu/cljtags/internal/tags"
	"github.com/josephgoksu/cljtags/internal/ui"
	"github.com/josephgoksu/cljtags/types"
	"github.com/spf13/afero"
)

// app wires the loaded configuration to the extraction and generation
// components for one command run.
type app struct {
	cfg       *types.AppConfig
	fs        afero.Fs
	commander shell.Commander
	log       *slog.Logger
	out       io.Writer
}

func newApp(cfg *types.AppConfig, log *slog.Logger, out io.Writer) *app {
	if d := cfg.Project.Detected; d != nil {
		log.Debug("detected project root", "dir", cfg.Project.Root, "marker", d.Marker,
			"gitRoot", d.GitRoot, "repoPath", d.RepoPath, "nested", d.Nested)
	}
	return &app{
		cfg:       cfg,
		fs:        appFs,
		commander: newCommander(),
		log:       log,
		out:       out,
	}
}

func (a *app) steps() dispatch.Steps {
	return dispatch.Steps{
		Extract:  a.extract,
		Clean:    a.clean,
		Generate: a.generate,
		Exit:     exitFunc,
	}
}

func (a *app) resolver() deps.Resolver {
	if len(a.cfg.Deps.Archives) > 0 {
		return &deps.StaticResolver{Root: a.cfg.Project.Root, Paths: a.cfg.Deps.Archives}
	}
	return &deps.CommandResolver{
		Commander: a.commander,
		Root:      a.cfg.Project.Root,
		Command:   a.cfg.Deps.Command,
	}
}

func (a *app) extract() {
	if err := deps.CheckProject(a.fs, a.cfg.Project.Root, a.cfg.Project.BuildFile); err != nil {
		if errors.Is(err, deps.ErrNoBuildFile) {
			a.log.Warn("no build descriptor in project root", "file", a.cfg.Project.BuildFile, "dir", a.cfg.Project.Root)
		} else {
			a.log.Warn("could not check project root", "error", err)
		}
	}

	var archives []string
	var err error
	ui.Spin(a.out, "resolving dependencies", func() {
		archives, err = a.resolver().Archives()
	})
	if err != nil {
		a.log.Warn("could not resolve dependencies, skipping extraction", "error", err)
		return
	}
	a.log.Debug("resolved dependency archives", "count", len(archives))

	dir := a.cfg.IndexPath()
	extractor := &extract.Extractor{
		FS:        a.fs,
		Commander: a.commander,
		Dir:       dir,
		Command:   a.cfg.Extract.Command,
		Log:       a.log,
	}
	ui.PrintExtractReport(a.out, dir, extractor.Extract(archives))
}

func (a *app) clean() {
	dir := a.cfg.IndexPath()
	existed := scratch.Exists(a.fs, dir)
	ui.PrintClean(a.out, dir, existed, scratch.Remove(a.fs, dir, a.log))
}

func (a *app) generator(opts options.Options) tags.Generator {
	return tags.Select(opts, tags.Config{
		FS:           a.fs,
		Commander:    a.commander,
		Root:         a.cfg.Project.Root,
		Log:          a.log,
		EtagsBinary:  a.cfg.Etags.Binary,
		EtagsTagFile: a.cfg.Etags.TagFile,
		CtagsBinary:  a.cfg.Ctags.Binary,
		Filter:       a.filter(),
	})
}

func (a *app) filter() tags.Filter {
	return tags.Filter{
		BuildFile:   a.cfg.Project.BuildFile,
		MetadataDir: a.cfg.Project.MetadataDir,
		Extensions:  tags.SourceExtensions,
	}
}

func (a *app) generate(opts options.Options) {
	ui.PrintTagSummary(a.out, a.generator(opts).Generate())
}
