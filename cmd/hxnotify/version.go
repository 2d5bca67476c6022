package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/hxnotify"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of hxnotify",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hxnotify version %s\n", strings.TrimSpace(hxnotify.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
