package main

import (
	"fmt"
	"os"

	"github.com/aretw0/nfasim/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nfasim",
	Short: "nfasim simulates non-deterministic finite automata",
	Long: `nfasim loads automata from Markdown/YAML documents (or Redis) and answers
acceptance, epsilon-closure and parallel-copy questions about them.

The symbol "e" is reserved for epsilon transitions.`,
	SilenceUsage: true,
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
	rootCmd.PersistentFlags().String("dir", "", "Directory containing automaton documents (default \".\")")
	rootCmd.PersistentFlags().String("config", "", "Configuration file (default ./nfasim.yaml when present)")
	rootCmd.PersistentFlags().String("redis", "", "Redis URL to read definitions from instead of --dir")
	rootCmd.PersistentFlags().StringSliceP("file", "f", nil, "YAML or JSON definition files to load instead of --dir")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}

// optionsFrom collects the persistent flags.
func optionsFrom(cmd *cobra.Command) cli.Options {
	flags := cmd.Flags()
	dir, _ := flags.GetString("dir")
	configPath, _ := flags.GetString("config")
	redisURL, _ := flags.GetString("redis")
	files, _ := flags.GetStringSlice("file")
	debug, _ := flags.GetBool("debug")

	return cli.Options{
		ConfigPath: configPath,
		Dir:        dir,
		RedisURL:   redisURL,
		Files:      files,
		Debug:      debug,
	}
}

// openApp builds the engine for a command. The caller must Close the app.
func openApp(cmd *cobra.Command) (*cli.App, error) {
	return cli.NewApp(cmd.Context(), optionsFrom(cmd))
}
