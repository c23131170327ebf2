package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// splitGlobalFlags pulls the root level flags out of a raw argument list for
// commands that disable cobra flag parsing. It reports whether help was
// requested and returns the remaining arguments in order. A config flag
// without a file name is an error; a following flag is never taken as one.
func splitGlobalFlags(args []string) (rest []string, help bool, err error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			help = true
		case arg == "-v" || arg == "--verbose":
			verbose = true
			viper.Set("verbose", true)
		case arg == "-c" || arg == "--config":
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
				return nil, false, fmt.Errorf("flag needs an argument: %s", arg)
			}
			i++
			cfgFile = args[i]
			viper.Set("config", cfgFile)
		case strings.HasPrefix(arg, "--config="):
			value := strings.TrimPrefix(arg, "--config=")
			if value == "" {
				return nil, false, fmt.Errorf("flag needs an argument: --config")
			}
			cfgFile = value
			viper.Set("config", cfgFile)
		default:
			rest = append(rest, arg)
		}
	}
	return rest, help, nil
}
