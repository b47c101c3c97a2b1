package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command every subcommand in this package attaches
// to via init().
var rootCmd = &cobra.Command{
	Use:   "csv_parser",
	Short: "A fast, flexible CSV parsing and analysis tool",
	Long: `csv_parser reads, validates, converts, and analyzes delimiter-separated
text files, including RFC 4180 quoting, configurable delimiters, multiple
text encodings, and an interactive statistics REPL.`,
}

// Execute runs rootCmd, printing any error to stderr and exiting with
// status 1. It is called by main.main(); it only needs to happen once
// for rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
