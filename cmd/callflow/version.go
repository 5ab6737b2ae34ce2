package main

import (
	"fmt"
	"strings"

	"github.com/drelynlikescode26/callflow-assist"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of callflow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "callflow version %s\n", strings.TrimSpace(callflow.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
