package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hxnotify",
	Short: "hxnotify turns htmx responses into loading, modal and error feedback",
	Long: `hxnotify classifies htmx responses by status and drives the matching feedback:
loading indicators, a confirm modal for validation errors and an error modal or alert
for server and transport failures.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML configuration file")
}
