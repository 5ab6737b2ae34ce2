package main

import (
	"fmt"

	"github.com/drelynlikescode26/callflow-assist"
	"github.com/drelynlikescode26/callflow-assist/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [graph]",
	Short: "Check the call script for consistency",
	Long: `Loads the document against its schema, then crawls the script from the start
node and reports dead links, broken redirects, unreachable nodes and unknown tokens.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		report, err := runValidate(graphPath(cmd, args))
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		for _, w := range report.Warnings() {
			fmt.Fprintln(out, w)
		}
		if err := report.Err(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(out, "Graph is valid! ✅ (%d nodes reachable)\n", len(report.Reachable))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) (*validator.Report, error) {
	eng, err := callflow.New(path)
	if err != nil {
		return nil, err
	}
	return validator.ValidateGraph(eng.Graph(), eng.RedirectRules()), nil
}
