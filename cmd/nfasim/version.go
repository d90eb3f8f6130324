package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/nfasim"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of nfasim",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "nfasim version %s\n", strings.TrimSpace(nfasim.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
