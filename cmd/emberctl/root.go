package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "emberctl",
	Short: "Inspect an Ember source tree through the incremental analysis front-end",
	Long: "emberctl drives internal/analysis directly: it loads the given files into\n" +
		"one Analysis database, applies their text as a single change, then prints\n" +
		"each file's structure outline and diagnostic set from a fresh snapshot.",
}

// Execute runs the root command, dispatching to whichever subcommand was
// invoked.
func Execute() error {
	return rootCmd.Execute()
}
