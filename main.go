package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/GEizaguirre/duckdb-tpc/config"
)

type rootFlags struct {
	configPath string
	queriesDir string
	source     string
	target     string
	extended   bool
	showAST    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "duckdb-tpc <benchmark> <query-number>",
		Short: "Translate a TPC benchmark query and show its physical plan",
		Long: `duckdb-tpc reads one query of a TPC benchmark suite, translates it
into the target dialect and asks a throwaway in-memory session with the
benchmark schema declared for the physical plan it would execute.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runExplain(cmd.Context(), cfg, args[0], args[1], cmd.OutOrStdout())
		},
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&flags.queriesDir, "queries", "", "directory holding the query folders (default: next to the executable)")
	cmd.Flags().StringVar(&flags.source, "source", "", "dialect the query files are written in")
	cmd.Flags().StringVar(&flags.target, "target", "", "dialect to translate the query into")
	cmd.Flags().BoolVar(&flags.extended, "extended", false, "also print the bytecode program of the query")
	cmd.Flags().BoolVar(&flags.showAST, "show-ast", false, "dump the parsed syntax tree of the query")
	cmd.AddCommand(newListCmd(flags))
	return cmd
}

// resolveConfig layers the configuration sources: defaults, then the config
// file when one is given, then environment variables, then explicit flags.
func resolveConfig(cmd *cobra.Command, flags *rootFlags) (config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if flags.queriesDir != "" {
		cfg.QueriesDir = flags.queriesDir
	}
	if cmd.Flags().Changed("source") {
		cfg.Transpile.Source = flags.source
	}
	if cmd.Flags().Changed("target") {
		cfg.Transpile.Target = flags.target
	}
	if cmd.Flags().Changed("extended") {
		cfg.Output.Extended = flags.extended
	}
	if cmd.Flags().Changed("show-ast") {
		cfg.Output.ShowAST = flags.showAST
	}
	return cfg, nil
}

func main() {
	_ = godotenv.Load()
	applyLogLevel()
	defer Logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
