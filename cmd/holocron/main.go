package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	logLevel string
	logFile  string
)

func main() {
	root := &cobra.Command{
		Use:     "holocron",
		Short:   "Star Wars character lookup with response caching and search analytics",
		Version: version,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "also append logs to this file")

	root.AddCommand(
		newSearchCmd(),
		newCacheCmd(),
		newHistoryCmd(),
		newPlotCmd(),
		newFakeCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
