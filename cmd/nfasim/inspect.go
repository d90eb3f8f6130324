package main

import (
	"fmt"

	"github.com/aretw0/nfasim/internal/cli"
	"github.com/aretw0/nfasim/internal/presentation/tui"
	"github.com/aretw0/nfasim/internal/validator"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect NAME",
	Short: "Describe an automaton",
	Long:  `Prints the definition, its transitions and structural warnings as a rendered Markdown report.`,
	Args:  cobra.ExactArgs(1),
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
		report, _, err := validator.Validate(*def)
		if err != nil {
			return err
		}

		md := tui.InspectMarkdown(*def, report)
		raw, _ := cmd.Flags().GetBool("raw")
		if raw || !cli.IsTerminal(cmd.OutOrStdout()) {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		rendered, err := tui.NewRenderer()(md)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	inspectCmd.Flags().Bool("raw", false, "Print Markdown without terminal rendering")
	rootCmd.AddCommand(inspectCmd)
}
