package main

import (
	"fmt"

	"github.com/aretw0/nfasim/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph NAME",
	Short: "Export the automaton as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart of the automaton. With --input the states active
at the end of the run are highlighted and earlier ones marked as visited.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		def, err := app.Engine.Describe(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			verdict, err := app.Engine.Evaluate(cmd.Context(), args[0], input)
			if err != nil {
				return err
			}
			overlay = graph.OverlayFromVerdict(verdict)
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(*def, overlay))
		return nil
	},
}

func init() {
	graphCmd.Flags().String("input", "", "Highlight the run of this input")
	rootCmd.AddCommand(graphCmd)
}
