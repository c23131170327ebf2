/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/josephgoksu/cljtags/internal/dispatch"
	"github.com/josephgoksu/cljtags/internal/logger"
	"github.com/josephgoksu/cljtags/internal/options"
	"github.com/josephgoksu/cljtags/internal/ui"
	"github.com/spf13/cobra"
)

// tagsCmd represents the tags command
var tagsCmd = &cobra.Command{
	Use:   "tags [--clean | --update] [--ctags] [--vi | --vim] [--no-langmap]",
	Short: "Extract dependency sources and build the tag index",
	Long: `Build a tag index for the project and its dependency jars.

With no flags, dependencies are resolved and unpacked into the scratch
directory, then etags indexes every .clj, .cljs, .cljc and .edn file below the
project root into TAGS.

Flags (the mode flag is only honoured in first position):
  --clean        remove the scratch directory and exit
  --update       regenerate tags without extracting, then exit
  --ctags        use ctags instead of etags (emacs output)
  --vi, --vim    use ctags with vi-compatible output
  --no-langmap   do not pass the built-in Clojure definition to ctags

The scratch directory defaults to .cljtags-deps and can be overridden with
CLJTAGS_INDEX_DIR.

Examples:
  cljtags tags                     # extract and index with etags
  cljtags tags --update --vim      # re-index with ctags for vim
  cljtags tags --ctags --no-langmap
  cljtags tags --clean`,
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
		runID := logger.SetCommand("tags", flags)
		log.Debug("run started", "run", runID, "command", "tags")

		opts := options.Parse(flags)
		if len(opts.Unknown) > 0 {
			log.Debug("ignoring unrecognised flags", "flags", opts.Unknown)
		}
		log.Debug("running tags", "mode", opts.Mode.String(), "engine", opts.Engine.String(),
			"vi", opts.Vi, "langmap", opts.Langmap)

		dispatch.Run(opts, newApp(cfg, log, cmd.OutOrStdout()).steps())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
