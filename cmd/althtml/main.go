package main

import (
	"fmt"
	"os"
)

var flagVerbose bool

func main() {
	rootCmd.AddCommand(compileCmd, buildCmd, watchCmd)

	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"log every dispatched line and build step")
	compileCmd.Flags().StringArrayVarP(&flagHeaders, "header", "H", nil,
		"althtml file compiled first, only for its definitions (repeatable)")
	compileCmd.Flags().StringVarP(&flagOut, "out", "o", "",
		"write HTML to this file instead of stdout")
	watchCmd.Flags().DurationVar(&flagSettle, "settle", 0,
		"how long to wait for changes to settle before rebuilding")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleErr.Render("Error:"), err.Error())
		os.Exit(1)
	}
}
