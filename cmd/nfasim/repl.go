package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/nfasim/internal/cli"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl [NAME]",
	Short: "Evaluate inputs interactively",
	Long: `Reads one input per line and prints its verdict and trace.
Lines starting with ':' are commands; type :help for the list.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		return cli.NewREPL(app.Engine, name, os.Stdin, cmd.OutOrStdout()).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
