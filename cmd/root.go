/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/josephgoksu/cljtags/internal/logger"
	"github.com/josephgoksu/cljtags/internal/shell"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "0.1.0"
)

// Process level collaborators, replaced in tests.
var (
	appFs        afero.Fs = afero.NewOsFs()
	newCommander          = func() shell.Commander { return shell.ExecCommander{} }
	exitFunc              = os.Exit
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cljtags",
	Short: "cljtags builds editor tag files for a Clojure project and its dependencies.",
	Long: `cljtags builds TAGS/tags indexes covering a Leiningen project and the
sources inside its dependency jars.

Dependencies are resolved with the build tool, unpacked into a scratch
directory below the project root, and indexed together with the project by
etags (default) or ctags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	logger.SetVersion(version)
	if err := rootCmd.Execute(); err != nil {
		HandleFatalError(err.Error(), err)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cljtags version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cljtags %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.cljtags.yaml or $HOME/.cljtags.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Bind persistent flags to Viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}
