package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/XsystemH/ToyCO/coro"
)

var (
	procsFlag   int
	verboseFlag bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "toyco",
		Short: "Demo harness for the ToyCO G-M-P coroutine runtime",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verboseFlag {
				level = zerolog.DebugLevel
			}
			coro.SetLogger(consoleLogger(level))
			coro.Bootstrap()
			if procsFlag > 0 {
				coro.SetGOMAXPROCS(procsFlag)
			}
		},
	}
	root.PersistentFlags().IntVar(&procsFlag, "procs", 0, "gomaxprocs cap (0 = runtime default)")
	root.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug-level scheduler logging")
	root.AddCommand(newRunCmd())
	return root
}
