package main

import (
	"fmt"
	"os"

	"github.com/aretw0/nfasim/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var acceptsCmd = &cobra.Command{
	Use:   "accepts NAME INPUT",
	Short: "Decide whether an automaton accepts an input",
	Long: `Runs INPUT through the automaton and prints ACCEPT, REJECT or INVALID
(a symbol outside the alphabet). The exit status is 0 only when the input is accepted.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		verbose, _ := cmd.Flags().GetBool("trace")
		verdict, err := app.Engine.Evaluate(cmd.Context(), args[0], inputArg(args))
		if err != nil {
			return err
		}
		tui.NewPrinter(cmd.OutOrStdout(), verbose).Verdict(verdict)
		if !verdict.Accepted {
			app.Close()
			os.Exit(1)
		}
		return nil
	},
}

var copiesCmd = &cobra.Command{
	Use:   "copies NAME INPUT",
	Short: "Print the maximum number of parallel copies while reading an input",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		copies, err := app.Engine.MaxCopies(cmd.Context(), args[0], inputArg(args))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), copies)
		return nil
	},
}

var closureCmd = &cobra.Command{
	Use:   "closure NAME STATE...",
	Short: "Print the epsilon-closure of one or more states",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		states, err := app.Engine.Closure(cmd.Context(), args[0], args[1:]...)
		if err != nil {
			return err
		}
		tui.NewPrinter(cmd.OutOrStdout(), false).States(states)
		return nil
	},
}

// inputArg returns the input argument; a missing one is the empty string.
func inputArg(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return ""
}

func init() {
	acceptsCmd.Flags().BoolP("trace", "t", false, "Print the active states after each symbol")
	rootCmd.AddCommand(acceptsCmd, copiesCmd, closureCmd)
}
