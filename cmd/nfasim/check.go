package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/nfasim/internal/validator"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [NAME...]",
	Short: "Check automata for consistency",
	Long: `Compiles each automaton (all of them when no name is given) and reports
broken references, unreachable states, dead states and whether it is a DFA.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		names := args
		if len(names) == 0 {
			if names, err = app.Engine.List(ctx); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		failed := 0
		for _, name := range names {
			def, err := app.Engine.Loader().Load(ctx, name)
			if err != nil {
				fmt.Fprintf(out, "✗ %s: %v\n", name, err)
				failed++
				continue
			}
			report, _, err := validator.Validate(*def)
			if err != nil {
				fmt.Fprintf(out, "✗ %s: %v\n", name, err)
				failed++
				continue
			}

			kind := "NFA"
			if report.IsDFA {
				kind = "DFA"
			}
			fmt.Fprintf(out, "✓ %s (%s, %d states)\n", name, kind, report.States)
			for _, w := range report.Warnings {
				fmt.Fprintf(out, "    warning: %s\n", w)
			}
			if len(report.Dead) > 0 {
				fmt.Fprintf(out, "    warning: dead states: %s\n", strings.Join(report.Dead, ", "))
			}
		}

		if failed > 0 {
			return errors.New("check failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
