/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/josephgoksu/cljtags/internal/logger"
	"github.com/josephgoksu/cljtags/internal/options"
	"github.com/josephgoksu/cljtags/internal/tags"
	"github.com/josephgoksu/cljtags/internal/ui"
	"github.com/josephgoksu/cljtags/internal/watch"
	"github.com/spf13/cobra"
)

// watchCmd regenerates tags as project sources change.
var watchCmd = &cobra.Command{
	Use:   "watch [--ctags] [--vi | --vim] [--no-langmap]",
	Short: "Regenerate the tag index whenever project sources change",
	Long: `Index the project once, then watch it and re-index after every burst of
changes to Clojure sources. Dependencies are not extracted; run
"cljtags tags" first. Engine flags are the same as for the tags command.
Stop with Ctrl-C.`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags, help, err := splitGlobalFlags(args)
		if err != nil {
			return err
		}
		if help {
			return cmd.Help()
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger.SetBasePath(cfg.CrashLogDir)
		log := logger.New(cmd.ErrOrStderr(), cfg.Verbose)
		ui.ConfigureOutput(cmd.OutOrStdout())
		runID := logger.SetCommand("watch", flags)
		log.Debug("run started", "run", runID, "command", "watch")

		a := newApp(cfg, log, cmd.OutOrStdout())
		opts := options.Parse(flags)
		gen := a.generator(opts)
		ui.PrintTagSummary(a.out, gen.Generate())

		w, err := watch.New(watch.Config{
			Root:       cfg.Project.Root,
			SkipDirs:   []string{cfg.IndexPath()},
			Filter:     a.filter(),
			Generator:  gen,
			Delay:      cfg.Watch.Debounce,
			Log:        log,
			OnGenerate: func(s tags.Summary) { ui.PrintTagSummary(a.out, s) },
		})
		if err != nil {
			return err
		}

		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}
		ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return w.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
