package main

import (
	"fmt"

	"github.com/drelynlikescode26/callflow-assist"
	"github.com/drelynlikescode26/callflow-assist/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [graph]",
	Short: "Export the call script as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph TD) of the script, including redirection rules.
Use --visited and --current to highlight a call path.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := callflow.New(graphPath(cmd, args))
		if err != nil {
			return fmt.Errorf("error initializing callflow: %w", err)
		}

		var overlay *graph.GraphOverlay
		visited, _ := cmd.Flags().GetStringSlice("visited")
		current, _ := cmd.Flags().GetString("current")
		if len(visited) > 0 || current != "" {
			overlay = &graph.GraphOverlay{VisitedNodes: visited, CurrentNode: current}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(eng.Graph(), eng.RedirectRules(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringSlice("visited", nil, "Node ids to mark as visited")
	graphCmd.Flags().String("current", "", "Node id to mark as current")
}
