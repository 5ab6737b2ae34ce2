package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "callflow",
	Short: "Callflow guides a sales rep through a scripted phone call",
	Long: `Callflow walks a branching call script: it shows the prescribed text for each
step, offers the choices, remembers what the customer said and produces the
end-of-call summary, CRM note, confirmation text and voicemail script.`,
	SilenceUsage:  true,
	SilenceErrors: true,
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
	rootCmd.PersistentFlags().String("graph", "callflow.yaml", "Call script document (YAML or JSON)")
	rootCmd.PersistentFlags().Bool("debug", false, "Write debug logs to stderr")
}

// graphPath returns --graph, or the first positional argument when the flag
// was not set explicitly.
func graphPath(cmd *cobra.Command, args []string) string {
	path, _ := cmd.Flags().GetString("graph")
	if !cmd.Flags().Changed("graph") && len(args) > 0 {
		path = args[0]
	}
	return path
}
